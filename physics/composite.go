package physics

import (
	"fmt"

	"github.com/lixenwraith/tile-raider/parameter"
)

// CompositeHitbox is a fixed set of typed boxes sharing a common origin
// Slots are allocated once; shape changes rewrite slot contents in place so
// the *Hitbox pointers registered with a collision detector stay valid
// Unused slots hold zero-size intangible boxes
type CompositeHitbox struct {
	origin Vec
	anchor Vec // relative to origin
	bounds Rect
	boxes  [parameter.HitboxSlots]*Hitbox
}

// NewCompositeHitbox places boxes given relative to (x, y)
// Panics when more boxes than slots are supplied; loaders validate counts first
func NewCompositeHitbox(x, y float64, boxes ...Hitbox) *CompositeHitbox {
	if len(boxes) > parameter.HitboxSlots {
		panic(fmt.Sprintf("composite hitbox: %d boxes exceed %d slots", len(boxes), parameter.HitboxSlots))
	}
	c := &CompositeHitbox{origin: Vec{x, y}}
	for i := range c.boxes {
		if i < len(boxes) {
			b := boxes[i]
			c.boxes[i] = NewHitbox(b.X+x, b.Y+y, b.W, b.H, b.Kind)
		} else {
			c.boxes[i] = NewHitbox(x, y, 0, 0, HitboxIntangible)
		}
	}
	c.recompute()
	return c
}

// SetAnchor sets the anchor point relative to the origin
func (c *CompositeHitbox) SetAnchor(ax, ay float64) {
	c.anchor = Vec{ax, ay}
}

// Anchor returns the anchor relative to the origin
func (c *CompositeHitbox) Anchor() Vec {
	return c.anchor
}

// Origin returns the world position of the composite
func (c *CompositeHitbox) Origin() Vec {
	return c.origin
}

// Bounds returns the union of tangible boxes, or a zero box at the origin
func (c *CompositeHitbox) Bounds() Rect {
	return c.bounds
}

// Center returns the center of the bounding box
func (c *CompositeHitbox) Center() Vec {
	return c.bounds.Center()
}

// Boxes returns the slot boxes in slot order
// The pointers are stable for the lifetime of the composite
func (c *CompositeHitbox) Boxes() []*Hitbox {
	out := make([]*Hitbox, len(c.boxes))
	copy(out, c.boxes[:])
	return out
}

// Box returns the box in slot i
func (c *CompositeHitbox) Box(i int) *Hitbox {
	return c.boxes[i]
}

// Owns reports whether h is one of this composite's slots
func (c *CompositeHitbox) Owns(h *Hitbox) bool {
	for _, b := range c.boxes {
		if b == h {
			return true
		}
	}
	return false
}

// Relative returns slot boxes as values positioned relative to the origin
func (c *CompositeHitbox) Relative() []Hitbox {
	out := make([]Hitbox, len(c.boxes))
	for i, b := range c.boxes {
		out[i] = Hitbox{Rect: b.Rect.Translate(-c.origin.X, -c.origin.Y), Kind: b.Kind}
	}
	return out
}

// Translate moves origin, bounds and every slot by (dx, dy)
func (c *CompositeHitbox) Translate(dx, dy float64) {
	c.origin.X += dx
	c.origin.Y += dy
	c.bounds = c.bounds.Translate(dx, dy)
	for _, b := range c.boxes {
		b.X += dx
		b.Y += dy
	}
}

// MoveTo translates the composite so its origin lands on (x, y)
func (c *CompositeHitbox) MoveTo(x, y float64) {
	c.Translate(x-c.origin.X, y-c.origin.Y)
}

// AdoptTemplate copies slot shapes from tpl, keeping the world anchor point fixed
// The origin shifts by the difference between the two anchors
func (c *CompositeHitbox) AdoptTemplate(tpl *CompositeHitbox) {
	if tpl == nil {
		return
	}
	world := c.origin.Add(c.anchor)
	c.anchor = tpl.anchor
	c.origin = world.Sub(tpl.anchor)

	for i, b := range c.boxes {
		src := tpl.boxes[i]
		b.Rect = src.Rect.Translate(c.origin.X-tpl.origin.X, c.origin.Y-tpl.origin.Y)
		b.Kind = src.Kind
	}
	c.recompute()
}

// Equal compares origin, anchor and every slot's geometry and kind
func (c *CompositeHitbox) Equal(o *CompositeHitbox) bool {
	if c == nil || o == nil {
		return c == o
	}
	if c.origin != o.origin || c.anchor != o.anchor || c.bounds != o.bounds {
		return false
	}
	for i := range c.boxes {
		if *c.boxes[i] != *o.boxes[i] {
			return false
		}
	}
	return true
}

// Clone returns a deep copy with fresh slot pointers
func (c *CompositeHitbox) Clone() *CompositeHitbox {
	n := &CompositeHitbox{origin: c.origin, anchor: c.anchor, bounds: c.bounds}
	for i, b := range c.boxes {
		cp := *b
		n.boxes[i] = &cp
	}
	return n
}

func (c *CompositeHitbox) recompute() {
	var (
		box   Rect
		found bool
	)
	for _, b := range c.boxes {
		if !b.Tangible() {
			continue
		}
		if !found {
			box, found = b.Rect, true
			continue
		}
		box = box.Union(b.Rect)
	}
	if !found {
		box = Rect{X: c.origin.X, Y: c.origin.Y}
	}
	c.bounds = box
}

func (c *CompositeHitbox) String() string {
	return fmt.Sprintf("composite(%.1f,%.1f %.1fx%.1f)", c.bounds.X, c.bounds.Y, c.bounds.W, c.bounds.H)
}
