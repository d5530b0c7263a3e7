package content

import (
	"encoding/xml"
	"fmt"
	"io"

	"github.com/lixenwraith/tile-raider/parameter"
	"github.com/lixenwraith/tile-raider/physics"
)

// Hitbox files are a small SVG subset:
//
//	<svg>
//	  <g id="idle_1">
//	    <rect x="0" y="0" width="20" height="30" class="vulnerable"/>
//	    <circle cx="10" cy="30" r="1"/>
//	  </g>
//	</svg>
//
// Each group is the template for the state named by its id. Rect coordinates
// are relative to the template origin; the optional circle center is the anchor
// kept fixed in the world when an entity switches between templates.

type svgDoc struct {
	XMLName xml.Name   `xml:"svg"`
	Groups  []svgGroup `xml:"g"`
}

type svgGroup struct {
	ID     string     `xml:"id,attr"`
	Rects  []svgRect  `xml:"rect"`
	Circle *svgCircle `xml:"circle"`
}

type svgRect struct {
	X      float64 `xml:"x,attr"`
	Y      float64 `xml:"y,attr"`
	Width  float64 `xml:"width,attr"`
	Height float64 `xml:"height,attr"`
	Class  string  `xml:"class,attr"`
}

type svgCircle struct {
	CX float64 `xml:"cx,attr"`
	CY float64 `xml:"cy,attr"`
}

// ParseHitboxes reads hitbox templates keyed by state name
func ParseHitboxes(r io.Reader) (map[string]*physics.CompositeHitbox, error) {
	var doc svgDoc
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("parse hitboxes: %w", err)
	}

	templates := make(map[string]*physics.CompositeHitbox, len(doc.Groups))
	for _, g := range doc.Groups {
		if g.ID == "" {
			return nil, fmt.Errorf("parse hitboxes: group without id")
		}
		if _, dup := templates[g.ID]; dup {
			return nil, fmt.Errorf("parse hitboxes: duplicate group %q", g.ID)
		}
		if len(g.Rects) > parameter.HitboxSlots {
			return nil, fmt.Errorf("group %q: %d rects, at most %d", g.ID, len(g.Rects), parameter.HitboxSlots)
		}

		boxes := make([]physics.Hitbox, 0, len(g.Rects))
		for _, r := range g.Rects {
			kind, ok := physics.HitboxKindFromName(r.Class)
			if !ok {
				return nil, fmt.Errorf("group %q: unknown hitbox class %q", g.ID, r.Class)
			}
			if r.Width <= 0 || r.Height <= 0 {
				return nil, fmt.Errorf("group %q: empty rect at (%g,%g)", g.ID, r.X, r.Y)
			}
			boxes = append(boxes, physics.Hitbox{
				Rect: physics.Rect{X: r.X, Y: r.Y, W: r.Width, H: r.Height},
				Kind: kind,
			})
		}

		tpl := physics.NewCompositeHitbox(0, 0, boxes...)
		if g.Circle != nil {
			tpl.SetAnchor(g.Circle.CX, g.Circle.CY)
		}
		templates[g.ID] = tpl
	}
	return templates, nil
}
