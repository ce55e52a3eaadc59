package domain

import "fmt"

// Kind discriminates the four families of funnel steps.
// It is fixed at creation and drives default geometry and rendering.
type Kind string

const (
	KindSocial          Kind = "social"
	KindWebPage         Kind = "web-page"
	KindMarketingAction Kind = "marketing-action"
	KindConversionEvent Kind = "conversion-event"
)

// Kinds lists every supported kind in palette order.
var Kinds = []Kind{KindSocial, KindWebPage, KindMarketingAction, KindConversionEvent}

// Valid reports whether k is a supported kind.
func (k Kind) Valid() bool {
	switch k {
	case KindSocial, KindWebPage, KindMarketingAction, KindConversionEvent:
		return true
	}
	return false
}

// DefaultName returns the display name given to freshly created steps of this kind.
func (k Kind) DefaultName() string {
	switch k {
	case KindSocial:
		return "Social Channel"
	case KindWebPage:
		return "Web Page"
	case KindMarketingAction:
		return "Marketing Action"
	case KindConversionEvent:
		return "Conversion Event"
	}
	return string(k)
}

// ParseKind converts a string into a Kind.
func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	if !k.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
	return k, nil
}

// Color is one of the fixed palette entries a step can be painted with.
type Color string

const (
	ColorDefault Color = "default"
	ColorBlue    Color = "blue"
	ColorGreen   Color = "green"
	ColorPurple  Color = "purple"
	ColorOrange  Color = "orange"
	ColorRed     Color = "red"
	ColorPink    Color = "pink"
	ColorYellow  Color = "yellow"
	ColorGray    Color = "gray"
)

// Palette lists every color scheme.
var Palette = []Color{
	ColorDefault, ColorBlue, ColorGreen, ColorPurple, ColorOrange,
	ColorRed, ColorPink, ColorYellow, ColorGray,
}

// Valid reports whether c is part of the palette.
func (c Color) Valid() bool {
	for _, p := range Palette {
		if p == c {
			return true
		}
	}
	return false
}

// ParseColor converts a string into a palette Color. Empty means default.
func ParseColor(s string) (Color, error) {
	if s == "" {
		return ColorDefault, nil
	}
	c := Color(s)
	if !c.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownColor, s)
	}
	return c, nil
}

// Point is a coordinate pair. Step positions live in canvas space, independent of zoom.
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Add returns p translated by d.
func (p Point) Add(d Point) Point { return Point{X: p.X + d.X, Y: p.Y + d.Y} }

// Sub returns the vector from q to p.
func (p Point) Sub(q Point) Point { return Point{X: p.X - q.X, Y: p.Y - q.Y} }

// Scale multiplies both coordinates by f.
func (p Point) Scale(f float64) Point { return Point{X: p.X * f, Y: p.Y * f} }

// Stats holds user-entered funnel metrics. Nothing is computed automatically.
type Stats struct {
	Views       *float64 `json:"views,omitempty" yaml:"views,omitempty"`
	Conversions *float64 `json:"conversions,omitempty" yaml:"conversions,omitempty"`
	Rate        *float64 `json:"rate,omitempty" yaml:"rate,omitempty"`
}

// Clone returns a deep copy of s.
func (s *Stats) Clone() *Stats {
	if s == nil {
		return nil
	}
	return &Stats{Views: cloneFloat(s.Views), Conversions: cloneFloat(s.Conversions), Rate: cloneFloat(s.Rate)}
}

func cloneFloat(f *float64) *float64 {
	if f == nil {
		return nil
	}
	v := *f
	return &v
}

// Step is a single funnel element placed on the canvas.
//
// The canonical model stores only IconTag; the renderable glyph is resolved by the
// view layer (see package icons), so a Step never carries a non-serializable handle.
type Step struct {
	ID          string
	Kind        Kind
	DisplayName string
	Position    Point
	Scale       float64
	IconTag     string
	// Connections is an ordered set of target step ids.
	Connections []string
	Color       Color
	Label       string
	Notes       string
	Stats       *Stats
}

// NewStep creates a step with the kind defaults applied.
func NewStep(id string, kind Kind, pos Point) *Step {
	return &Step{
		ID:          id,
		Kind:        kind,
		DisplayName: kind.DefaultName(),
		Position:    pos,
		Scale:       DefaultScale,
		Color:       ColorDefault,
		Connections: []string{},
	}
}

// Clone returns a deep copy of the step.
func (s *Step) Clone() *Step {
	c := *s
	c.Connections = append([]string{}, s.Connections...)
	c.Stats = s.Stats.Clone()
	return &c
}

// ConnectsTo reports whether the step has a direct connection to id.
func (s *Step) ConnectsTo(id string) bool {
	for _, c := range s.Connections {
		if c == id {
			return true
		}
	}
	return false
}

// Anchor is one of the four attachment sides of a step's bounding box.
type Anchor string

const (
	AnchorTop    Anchor = "top"
	AnchorRight  Anchor = "right"
	AnchorBottom Anchor = "bottom"
	AnchorLeft   Anchor = "left"
)

// Anchors lists the four anchors clockwise from the top.
var Anchors = []Anchor{AnchorTop, AnchorRight, AnchorBottom, AnchorLeft}
