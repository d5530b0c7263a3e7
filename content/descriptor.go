package content

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schema/entity.schema.json
var entitySchemaJSON string

var entitySchema = jsonschema.MustCompileString("entity.schema.json", entitySchemaJSON)

// Descriptor is the JSON form of one entity kind
type Descriptor struct {
	Kind        string           `json:"kind"`
	Player      bool             `json:"player,omitempty"`
	Anchored    bool             `json:"anchored,omitempty"`
	Hitboxes    string           `json:"hitboxes,omitempty"` // SVG file relative to the descriptor
	Start       string           `json:"start,omitempty"`    // full state name, defaults to the first state
	Body        BodySpec         `json:"body"`
	States      []StateSpec      `json:"states"`
	Transitions []TransitionSpec `json:"transitions,omitempty"`
}

// BodySpec sizes the fallback hitbox used when the start state has no template
type BodySpec struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Mass   float64 `json:"mass,omitempty"`
	Health int     `json:"health,omitempty"`
	Hitbox string  `json:"hitbox,omitempty"`
}

// StateSpec describes one state; the fields used depend on Type
type StateSpec struct {
	Type     string     `json:"type"`
	ID       string     `json:"id"`
	Timeout  *float64   `json:"timeout,omitempty"` // absent means no timeout
	Velocity [2]float64 `json:"velocity"`
	Speed    float64    `json:"speed,omitempty"`
	Damage   int        `json:"damage,omitempty"`
	Offset   [2]float64 `json:"offset"`
}

// TransitionSpec is an edge; On names an event kind or "*" for any
type TransitionSpec struct {
	From  string            `json:"from"`
	To    string            `json:"to"`
	On    string            `json:"on"`
	Where map[string]string `json:"where,omitempty"`
}

// ParseDescriptor validates data against the entity schema and decodes it
func ParseDescriptor(data []byte) (*Descriptor, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse descriptor: %w", err)
	}
	if err := entitySchema.Validate(doc); err != nil {
		return nil, fmt.Errorf("invalid descriptor: %w", err)
	}

	var d Descriptor
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("decode descriptor: %w", err)
	}
	return &d, nil
}
