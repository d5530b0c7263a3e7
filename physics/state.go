package physics

// PhysicalState holds the mutable physical attributes of a body
// A delta uses the same representation: the volume origin is the positional
// offset and its shape is ignored; a nil Volume is a zero offset
type PhysicalState struct {
	Volume    *CompositeHitbox
	Velocity  Vec
	Mass      float64
	Health    int
	MaxHealth int
}

// NewPhysicalState creates a state owning volume; nil allocates an empty composite at the origin
func NewPhysicalState(volume *CompositeHitbox, mass float64, health int) *PhysicalState {
	if volume == nil {
		volume = NewCompositeHitbox(0, 0)
	}
	return &PhysicalState{Volume: volume, Mass: mass, Health: health, MaxHealth: health}
}

// OffsetDelta returns a delta translating position by (dx, dy)
func OffsetDelta(dx, dy float64) *PhysicalState {
	return &PhysicalState{Volume: NewCompositeHitbox(dx, dy)}
}

// VelocityDelta returns a delta adding (vx, vy) to velocity
func VelocityDelta(vx, vy float64) *PhysicalState {
	return &PhysicalState{Velocity: Vec{vx, vy}}
}

// HealthDelta returns a delta adding n to current health
func HealthDelta(n int) *PhysicalState {
	return &PhysicalState{Health: n}
}

// Position returns the volume origin
func (p *PhysicalState) Position() Vec {
	if p.Volume == nil {
		return Vec{}
	}
	return p.Volume.Origin()
}

// AddDelta accumulates d in place and returns p for chaining
// Applying the same delta twice applies it twice
func (p *PhysicalState) AddDelta(d *PhysicalState) *PhysicalState {
	if d == nil {
		return p
	}
	if p.Volume == nil {
		p.Volume = NewCompositeHitbox(0, 0)
	}
	if offset := d.Position(); !offset.IsZero() {
		p.Volume.Translate(offset.X, offset.Y)
	}
	p.Velocity = p.Velocity.Add(d.Velocity)
	p.Mass += d.Mass
	p.Health += d.Health
	p.MaxHealth += d.MaxHealth
	return p
}

// Update integrates velocity over dt; velocity, mass and health are untouched
func (p *PhysicalState) Update(dt float64) {
	if p.Velocity.IsZero() || dt == 0 {
		return
	}
	if p.Volume == nil {
		p.Volume = NewCompositeHitbox(0, 0)
	}
	step := p.Velocity.Scale(dt)
	p.Volume.Translate(step.X, step.Y)
}

// IsZero reports a delta with no effect
func (p *PhysicalState) IsZero() bool {
	return p == nil || (p.Position().IsZero() && p.Velocity.IsZero() && p.Mass == 0 && p.Health == 0 && p.MaxHealth == 0)
}

// Equal compares all attributes; nil volumes compare as empty volumes at the origin
func (p *PhysicalState) Equal(o *PhysicalState) bool {
	if p == nil || o == nil {
		return p.IsZero() && o.IsZero()
	}
	if p.Velocity != o.Velocity || p.Mass != o.Mass || p.Health != o.Health || p.MaxHealth != o.MaxHealth {
		return false
	}
	pv, ov := p.Volume, o.Volume
	if pv == nil {
		pv = NewCompositeHitbox(0, 0)
	}
	if ov == nil {
		ov = NewCompositeHitbox(0, 0)
	}
	return pv.Equal(ov)
}

// Clone returns a deep copy
func (p *PhysicalState) Clone() *PhysicalState {
	if p == nil {
		return nil
	}
	c := *p
	if p.Volume != nil {
		c.Volume = p.Volume.Clone()
	}
	return &c
}
