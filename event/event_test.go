package event

import "testing"

func TestEventEquality(t *testing.T) {
	a := New(KindKeyDown, Params{ParamKey: ButtonUp})
	b := Key(KindKeyDown, ButtonUp)
	c := Key(KindKeyUp, ButtonUp)
	d := Key(KindKeyDown, ButtonDown)

	if !a.Equal(b) {
		t.Errorf("expected %s == %s", a, b)
	}
	if a.Equal(c) {
		t.Errorf("kinds differ but %s == %s", a, c)
	}
	if a.Equal(d) {
		t.Errorf("params differ but %s == %s", a, d)
	}
	if !New(KindTimeout, nil).Equal(New(KindTimeout, Params{})) {
		t.Error("nil and empty params should compare equal")
	}
}

func TestEventImmutability(t *testing.T) {
	params := Params{ParamKey: ButtonLeft}
	e := New(KindKeyDown, params)

	params[ParamKey] = ButtonRight
	if v, _ := e.Param(ParamKey); v != ButtonLeft {
		t.Fatalf("event mutated through constructor map: got %v", v)
	}

	out := e.Params()
	out[ParamKey] = ButtonRight
	if v, _ := e.Param(ParamKey); v != ButtonLeft {
		t.Fatalf("event mutated through Params copy: got %v", v)
	}
}

func TestEventEqualityNonComparableParams(t *testing.T) {
	a := New(KindCollision, Params{ParamVolumes: []int{1, 2}})
	b := New(KindCollision, Params{ParamVolumes: []int{1, 2}})
	c := New(KindCollision, Params{ParamVolumes: []int{2, 1}})

	if !a.Equal(b) {
		t.Error("slices with equal contents should compare equal")
	}
	if a.Equal(c) {
		t.Error("slices with different contents should not compare equal")
	}
}

func TestTriggerMatches(t *testing.T) {
	tests := []struct {
		name    string
		trigger Trigger
		event   Event
		want    bool
	}{
		{"kind match", On(KindTimeout), New(KindTimeout, nil), true},
		{"kind mismatch", On(KindTimeout), New(KindCollision, nil), false},
		{"kind match ignores extra params", On(KindCollision), New(KindCollision, Params{ParamObjects: 1}), true},
		{"key match", OnKey(KindKeyDown, ButtonUp), Key(KindKeyDown, ButtonUp), true},
		{"key mismatch", OnKey(KindKeyDown, ButtonUp), Key(KindKeyDown, ButtonLeft), false},
		{"key missing", OnKey(KindKeyDown, ButtonUp), New(KindKeyDown, nil), false},
		{"always", Always(), New(KindDeath, nil), true},
		{"with constraint", On(KindNotify).With("phase", 2), New(KindNotify, Params{"phase": 2}), true},
		{"with constraint type differs", On(KindNotify).With("phase", 2), New(KindNotify, Params{"phase": 2.0}), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.trigger.Matches(tc.event); got != tc.want {
				t.Errorf("Matches(%s) = %v, want %v", tc.event, got, tc.want)
			}
		})
	}
}

func TestTriggerWithCopies(t *testing.T) {
	base := OnKey(KindKeyDown, ButtonUp)
	_ = base.With("extra", true)
	if _, ok := base.Where["extra"]; ok {
		t.Fatal("With mutated the receiver's constraint map")
	}
}

func TestKindNames(t *testing.T) {
	for _, k := range []Kind{KindNotify, KindTimeout, KindCollision, KindKeyDown, KindKeyUp, KindDeath, KindSegmentChange} {
		got, ok := KindFromName(k.String())
		if !ok || got != k {
			t.Errorf("KindFromName(%q) = %v, %v", k.String(), got, ok)
		}
	}
	if _, ok := KindFromName("TIMEOUT"); !ok {
		t.Error("kind lookup should be case-insensitive")
	}
	if _, ok := KindFromName("explode"); ok {
		t.Error("unknown kind resolved")
	}
}

func TestQueueFIFO(t *testing.T) {
	q := NewQueue()
	q.Push(Key(KindKeyDown, ButtonUp))
	q.Push(Key(KindKeyUp, ButtonUp))
	q.Push(New(KindTimeout, nil))

	if q.Len() != 3 {
		t.Fatalf("Len = %d, want 3", q.Len())
	}

	got := q.Consume()
	want := []Kind{KindKeyDown, KindKeyUp, KindTimeout}
	for i, e := range got {
		if e.Kind() != want[i] {
			t.Errorf("event %d kind = %s, want %s", i, e.Kind(), want[i])
		}
	}
	if q.Len() != 0 || q.Consume() != nil {
		t.Error("queue not empty after Consume")
	}

	var zero Queue
	zero.Push(New(KindNotify, nil))
	if zero.Len() != 1 {
		t.Error("zero-value queue should accept pushes")
	}
}
