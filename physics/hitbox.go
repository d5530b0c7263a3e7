package physics

import "strings"

// HitboxKind classifies collision behavior of a box
type HitboxKind uint8

const (
	// HitboxDefault collides and resolves with no role
	HitboxDefault HitboxKind = iota
	// HitboxVulnerable marks a box that takes damage from Hurt boxes
	HitboxVulnerable
	// HitboxHurt marks an attacking box
	HitboxHurt
	// HitboxIntangible reports collisions but never resolves interpenetration
	HitboxIntangible
)

var hitboxKindNames = [...]string{
	HitboxDefault:    "default",
	HitboxVulnerable: "vulnerable",
	HitboxHurt:       "hurt",
	HitboxIntangible: "intangible",
}

func (k HitboxKind) String() string {
	if int(k) < len(hitboxKindNames) {
		return hitboxKindNames[k]
	}
	return "unknown"
}

// HitboxKindFromName resolves a descriptor class name, empty maps to default
func HitboxKindFromName(name string) (HitboxKind, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return HitboxDefault, true
	}
	for k, n := range hitboxKindNames {
		if n == name {
			return HitboxKind(k), true
		}
	}
	return HitboxDefault, false
}

// Hitbox is a typed collision rectangle
// Identity is the pointer: two boxes with equal geometry are distinct collidables
type Hitbox struct {
	Rect
	Kind HitboxKind
}

// NewHitbox allocates a hitbox
func NewHitbox(x, y, w, h float64, kind HitboxKind) *Hitbox {
	return &Hitbox{Rect: Rect{X: x, Y: y, W: w, H: h}, Kind: kind}
}

// Tangible reports whether the box takes part in resolution
func (h *Hitbox) Tangible() bool {
	return h.Kind != HitboxIntangible
}

// Bounds returns the box rectangle
func (h *Hitbox) Bounds() Rect {
	return h.Rect
}
