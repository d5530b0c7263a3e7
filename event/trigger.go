package event

// Trigger is a structural predicate over events
// Matches when the kind agrees (or AnyKind is set) and every Where entry equals the event parameter
type Trigger struct {
	Kind    Kind
	AnyKind bool
	Where   Params
}

// On matches every event of a kind
func On(kind Kind) Trigger {
	return Trigger{Kind: kind}
}

// OnKey matches key events of a kind for one logical button
func OnKey(kind Kind, button string) Trigger {
	return Trigger{Kind: kind, Where: Params{ParamKey: button}}
}

// Always matches any event
func Always() Trigger {
	return Trigger{AnyKind: true}
}

// With returns a copy of the trigger with an additional parameter constraint
func (t Trigger) With(name string, value any) Trigger {
	where := make(Params, len(t.Where)+1)
	for k, v := range t.Where {
		where[k] = v
	}
	where[name] = value
	t.Where = where
	return t
}

// Matches reports whether the event satisfies the trigger
func (t Trigger) Matches(e Event) bool {
	if !t.AnyKind && t.Kind != e.kind {
		return false
	}
	for k, want := range t.Where {
		got, ok := e.params[k]
		if !ok || !valueEqual(got, want) {
			return false
		}
	}
	return true
}
