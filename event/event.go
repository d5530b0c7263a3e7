package event

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
)

// Params holds event parameters keyed by name
type Params map[string]any

// Event is an immutable tagged message used for notifications, timeouts and collisions
// Params are copied on construction; callers never see the internal map
type Event struct {
	kind   Kind
	params Params
}

// New creates an event of the given kind, copying params
func New(kind Kind, params Params) Event {
	e := Event{kind: kind}
	if len(params) > 0 {
		e.params = make(Params, len(params))
		for k, v := range params {
			e.params[k] = v
		}
	}
	return e
}

// Key creates a key event for a logical button
func Key(kind Kind, button string) Event {
	return New(kind, Params{ParamKey: button})
}

// Kind returns the event classification
func (e Event) Kind() Kind {
	return e.kind
}

// Param returns a single parameter value
func (e Event) Param(name string) (any, bool) {
	v, ok := e.params[name]
	return v, ok
}

// Params returns a copy of the event parameters
func (e Event) Params() Params {
	out := make(Params, len(e.params))
	for k, v := range e.params {
		out[k] = v
	}
	return out
}

// Len returns the parameter count
func (e Event) Len() int {
	return len(e.params)
}

// Equal reports structural equality of kind and parameters
func (e Event) Equal(other Event) bool {
	if e.kind != other.kind || len(e.params) != len(other.params) {
		return false
	}
	for k, v := range e.params {
		ov, ok := other.params[k]
		if !ok || !valueEqual(v, ov) {
			return false
		}
	}
	return true
}

// String renders "[kind]( name->value ... )" with parameters in sorted order
// Diagnostic only; matching never depends on this form
func (e Event) String() string {
	var b strings.Builder
	b.WriteString("[")
	b.WriteString(e.kind.String())
	b.WriteString("](")
	keys := make([]string, 0, len(e.params))
	for k := range e.params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s->%v", k, e.params[k])
	}
	b.WriteString(" )")
	return b.String()
}

// valueEqual compares comparable values with == and falls back to deep equality
func valueEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == b
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb {
		return false
	}
	if ta.Comparable() {
		return a == b
	}
	return reflect.DeepEqual(a, b)
}
