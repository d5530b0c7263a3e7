package content

import (
	"errors"
	"reflect"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/lixenwraith/tile-raider/engine/fsm"
	"github.com/lixenwraith/tile-raider/event"
	"github.com/lixenwraith/tile-raider/physics"
)

func TestDefaultCatalog(t *testing.T) {
	c, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	want := []string{"hound", "monster", "player", "spike"}
	if got := c.Kinds(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Kinds = %v, want %v", got, want)
	}

	p, err := c.Spawn(1, "player", 100, 60)
	if err != nil {
		t.Fatal(err)
	}
	if !p.IsPlayer() || p.Anchored() {
		t.Errorf("player flags wrong: player=%v anchored=%v", p.IsPlayer(), p.Anchored())
	}
	if p.Bounds() != (physics.Rect{X: 100, Y: 60, W: 20, H: 30}) {
		t.Errorf("bounds = %v", p.Bounds())
	}
	if p.StateName() != "idle_1" || p.Health() != 5 {
		t.Errorf("state = %s health = %d", p.StateName(), p.Health())
	}

	s, err := c.Spawn(2, "spike", 40, 70)
	if err != nil {
		t.Fatal(err)
	}
	if !s.Anchored() || !s.Immobile() {
		t.Error("spike should be anchored and immobile")
	}
	if s.Volume().Box(0).Kind != physics.HitboxHurt {
		t.Errorf("spike box = %v", s.Volume().Box(0).Kind)
	}
	t.Logf("✓ %d kinds loaded", len(c.Kinds()))
}

func TestSpawnUnknownKind(t *testing.T) {
	c, err := Default()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := c.Spawn(1, "dragon", 0, 0); !errors.Is(err, ErrUnknownKind) {
		t.Fatalf("err = %v, want ErrUnknownKind", err)
	}
}

func TestSpawnBuildsIndependentEntities(t *testing.T) {
	c, err := Default()
	if err != nil {
		t.Fatal(err)
	}
	a, _ := c.Spawn(1, "monster", 0, 0)
	b, _ := c.Spawn(2, "monster", 100, 0)
	if a.Mind() == b.Mind() || a.Volume().Box(0) == b.Volume().Box(0) {
		t.Fatal("spawned entities share mutable state")
	}

	a.Update(60)
	a.Update(60)
	if a.StateName() != "move_up" {
		t.Errorf("a state = %s, want move_up after idle timeout", a.StateName())
	}
	if a.Physical().Velocity != (physics.Vec{Y: -1}) {
		t.Errorf("a velocity = %v", a.Physical().Velocity)
	}
	if b.StateName() != "idle_1" || b.StateActiveTime() != 0 {
		t.Errorf("b disturbed: %s %g", b.StateName(), b.StateActiveTime())
	}
}

func TestPlayerLungeSwapsTemplate(t *testing.T) {
	c, err := Default()
	if err != nil {
		t.Fatal(err)
	}
	p, _ := c.Spawn(1, "player", 100, 100)

	p.NotifyOf(event.Key(event.KindKeyDown, event.ButtonAction))
	p.Update(1)
	if p.StateName() != "shift_lunge" {
		t.Fatalf("state = %s", p.StateName())
	}
	if want := (physics.Rect{X: 106, Y: 100, W: 30, H: 30}); p.Bounds() != want {
		t.Errorf("lunge bounds = %v, want %v", p.Bounds(), want)
	}
	hurt := 0
	for _, b := range p.Volume().Boxes() {
		if b.Kind == physics.HitboxHurt {
			hurt++
		}
	}
	if hurt != 1 {
		t.Errorf("hurt boxes = %d, want 1", hurt)
	}

	p.Update(16)
	if p.StateName() != "idle_1" {
		t.Fatalf("state = %s, want idle_1 after timeout", p.StateName())
	}
	if want := (physics.Rect{X: 100, Y: 100, W: 20, H: 30}); p.Bounds() != want {
		t.Errorf("idle bounds = %v, want %v", p.Bounds(), want)
	}
}

func TestHoundFollowsNotifiedTarget(t *testing.T) {
	c, err := Default()
	if err != nil {
		t.Fatal(err)
	}
	target, _ := c.Spawn(1, "player", 200, 0)
	h, _ := c.Spawn(2, "hound", 0, 0)

	h.NotifyOf(event.New(event.KindNotify, event.Params{event.ParamTarget: target}))
	h.Update(0)
	if h.StateName() != "follow_chase" {
		t.Fatalf("state = %s", h.StateName())
	}
	before := h.Center()
	h.Update(10)
	if moved := h.Center().Sub(before); moved.X <= 0 {
		t.Errorf("hound did not approach: moved %v", moved)
	}
}

const minimal = `{
  "kind": "blob",
  "body": {"width": 10, "height": 10},
  "states": [{"type": "idle", "id": "1"}]
}`

func TestParseDescriptorDefaults(t *testing.T) {
	d, err := ParseDescriptor([]byte(minimal))
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewBlueprint(d, nil)
	if err != nil {
		t.Fatal(err)
	}
	if b.Start != "idle_1" || b.Body.Mass != 1 || b.Body.Health != 1 {
		t.Errorf("defaults = start %q mass %g health %d", b.Start, b.Body.Mass, b.Body.Health)
	}
	m, err := b.Machine()
	if err != nil {
		t.Fatal(err)
	}
	if st, _ := m.State("idle_1"); st.HasTimeout() {
		t.Error("absent timeout should mean none")
	}
}

func TestHitTimeout(t *testing.T) {
	const desc = `{
  "kind": "blob",
  "body": {"width": 10, "height": 10},
  "states": [
    {"type": "idle", "id": "1"},
    {"type": "hit", "id": "flash", "damage": 1},
    {"type": "hit", "id": "stun", "damage": 2, "timeout": 5}
  ]
}`
	d, err := ParseDescriptor([]byte(desc))
	if err != nil {
		t.Fatalf("ParseDescriptor: %v", err)
	}
	b, err := NewBlueprint(d, nil)
	if err != nil {
		t.Fatal(err)
	}
	m, err := b.Machine()
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		state string
		want  float64
	}{
		{"hit_flash", 0},
		{"hit_stun", 5},
	}
	for _, tt := range tests {
		t.Run(tt.state, func(t *testing.T) {
			st, ok := m.State(tt.state)
			if !ok {
				t.Fatalf("state %s missing", tt.state)
			}
			if st.Timeout() != tt.want {
				t.Errorf("timeout = %v, want %v", st.Timeout(), tt.want)
			}
		})
	}
	t.Logf("✓ hit timeout defaults to 0 and honors descriptor value")
}

func TestParseDescriptorRejects(t *testing.T) {
	tests := []struct {
		name string
		json string
	}{
		{"not json", `{"kind":`},
		{"missing kind", `{"body": {"width": 1, "height": 1}, "states": [{"type": "idle", "id": "1"}]}`},
		{"bad kind name", `{"kind": "Big Blob", "body": {"width": 1, "height": 1}, "states": [{"type": "idle", "id": "1"}]}`},
		{"no states", `{"kind": "b", "body": {"width": 1, "height": 1}, "states": []}`},
		{"unknown state type", `{"kind": "b", "body": {"width": 1, "height": 1}, "states": [{"type": "fly", "id": "1"}]}`},
		{"move without velocity", `{"kind": "b", "body": {"width": 1, "height": 1}, "states": [{"type": "move", "id": "up"}]}`},
		{"zero width", `{"kind": "b", "body": {"width": 0, "height": 1}, "states": [{"type": "idle", "id": "1"}]}`},
		{"unknown field", `{"kind": "b", "color": "red", "body": {"width": 1, "height": 1}, "states": [{"type": "idle", "id": "1"}]}`},
		{"unknown event", `{"kind": "b", "body": {"width": 1, "height": 1}, "states": [{"type": "idle", "id": "1"}],
			"transitions": [{"from": "idle_1", "to": "idle_1", "on": "explode"}]}`},
		{"numeric where", `{"kind": "b", "body": {"width": 1, "height": 1}, "states": [{"type": "idle", "id": "1"}],
			"transitions": [{"from": "idle_1", "to": "idle_1", "on": "keydown", "where": {"key": 3}}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseDescriptor([]byte(tt.json)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestNewBlueprintErrors(t *testing.T) {
	base := func() *Descriptor {
		d, err := ParseDescriptor([]byte(minimal))
		if err != nil {
			t.Fatal(err)
		}
		return d
	}

	d := base()
	d.Transitions = []TransitionSpec{{From: "idle_1", To: "move_up", On: "timeout"}}
	if _, err := NewBlueprint(d, nil); !errors.Is(err, fsm.ErrUnknownState) {
		t.Errorf("unknown destination err = %v", err)
	}

	d = base()
	d.Start = "idle_9"
	if _, err := NewBlueprint(d, nil); !errors.Is(err, fsm.ErrUnknownState) {
		t.Errorf("unknown start err = %v", err)
	}

	d = base()
	d.States = append(d.States, StateSpec{Type: "idle", ID: "1"})
	if _, err := NewBlueprint(d, nil); !errors.Is(err, fsm.ErrDuplicateState) {
		t.Errorf("duplicate err = %v", err)
	}

	d = base()
	tpl := map[string]*physics.CompositeHitbox{"move_up": physics.NewCompositeHitbox(0, 0)}
	if _, err := NewBlueprint(d, tpl); err == nil {
		t.Error("template for undeclared state accepted")
	}
}

const blobSVG = `<svg>
  <g id="idle_1">
    <rect x="0" y="4" width="10" height="6" class="vulnerable"/>
    <rect x="2" y="0" width="6" height="4"/>
    <circle cx="5" cy="10" r="1"/>
  </g>
  <g id="idle_2">
    <rect x="0" y="0" width="12" height="3" class="intangible"/>
  </g>
</svg>`

func TestParseHitboxes(t *testing.T) {
	tpl, err := ParseHitboxes(strings.NewReader(blobSVG))
	if err != nil {
		t.Fatal(err)
	}
	if len(tpl) != 2 {
		t.Fatalf("templates = %d", len(tpl))
	}
	idle := tpl["idle_1"]
	if idle.Bounds() != (physics.Rect{W: 10, H: 10}) {
		t.Errorf("bounds = %v", idle.Bounds())
	}
	if idle.Anchor() != (physics.Vec{X: 5, Y: 10}) {
		t.Errorf("anchor = %v", idle.Anchor())
	}
	if idle.Box(1).Kind != physics.HitboxDefault {
		t.Errorf("unclassed rect kind = %v", idle.Box(1).Kind)
	}
	if tpl["idle_2"].Anchor() != (physics.Vec{}) {
		t.Errorf("missing circle should anchor at origin")
	}
}

func TestParseHitboxesRejects(t *testing.T) {
	tooMany := "<svg><g id=\"a\">" + strings.Repeat(`<rect width="1" height="1"/>`, 7) + "</g></svg>"
	tests := []struct {
		name string
		svg  string
	}{
		{"malformed", `<svg><g id="a">`},
		{"missing id", `<svg><g><rect width="1" height="1"/></g></svg>`},
		{"duplicate id", `<svg><g id="a"/><g id="a"/></svg>`},
		{"unknown class", `<svg><g id="a"><rect width="1" height="1" class="sticky"/></g></svg>`},
		{"empty rect", `<svg><g id="a"><rect width="0" height="1"/></g></svg>`},
		{"too many rects", tooMany},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseHitboxes(strings.NewReader(tt.svg)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoadCatalogFromFS(t *testing.T) {
	blob := strings.Replace(minimal, `"kind": "blob",`, `"kind": "blob", "hitboxes": "blob.svg",`, 1)
	fsys := fstest.MapFS{
		"blob.json": {Data: []byte(blob)},
		"blob.svg":  {Data: []byte(`<svg><g id="idle_1"><rect width="10" height="10" class="vulnerable"/></g></svg>`)},
		"notes.txt": {Data: []byte("ignored")},
	}
	c, err := LoadCatalog(fsys)
	if err != nil {
		t.Fatal(err)
	}
	e, err := c.Spawn(3, "blob", 20, 20)
	if err != nil {
		t.Fatal(err)
	}
	if e.Bounds() != (physics.Rect{X: 20, Y: 20, W: 10, H: 10}) {
		t.Errorf("bounds = %v", e.Bounds())
	}

	fsys["blob2.json"] = &fstest.MapFile{Data: []byte(blob)}
	if _, err := LoadCatalog(fsys); err == nil {
		t.Error("duplicate kind accepted")
	}

	delete(fsys, "blob2.json")
	delete(fsys, "blob.svg")
	if _, err := LoadCatalog(fsys); err == nil {
		t.Error("missing hitbox file accepted")
	}
}
