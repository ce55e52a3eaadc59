package geometry

import (
	"math"

	"github.com/euwesleysilv4/meu-app-digitfy-sub003/pkg/domain"
)

// Size is a width/height pair in canvas units.
type Size struct {
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Rect is an axis-aligned box in canvas units.
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Base dimensions per kind at scale 1.0.
var dimensions = map[domain.Kind]Size{
	domain.KindSocial:          {W: 100, H: 100},
	domain.KindWebPage:         {W: 140, H: 180},
	domain.KindMarketingAction: {W: 180, H: 110},
	domain.KindConversionEvent: {W: 120, H: 120},
}

// Dimensions returns the base size of a kind. Unknown kinds get the web-page box.
func Dimensions(kind domain.Kind) Size {
	if s, ok := dimensions[kind]; ok {
		return s
	}
	return dimensions[domain.KindWebPage]
}

// BoxOf returns the effective bounding box of a step: base size times scale, at its position.
func BoxOf(s *domain.Step) Rect {
	base := Dimensions(s.Kind)
	scale := s.Scale
	if scale <= 0 {
		scale = domain.DefaultScale
	}
	return Rect{X: s.Position.X, Y: s.Position.Y, W: base.W * scale, H: base.H * scale}
}

// Center returns the middle of the box.
func (r Rect) Center() domain.Point {
	return domain.Point{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.W }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Contains reports whether p lies inside the box (edges included).
func (r Rect) Contains(p domain.Point) bool {
	return p.X >= r.X && p.X <= r.Right() && p.Y >= r.Y && p.Y <= r.Bottom()
}

// Union returns the smallest box containing both r and o.
func (r Rect) Union(o Rect) Rect {
	x0 := math.Min(r.X, o.X)
	y0 := math.Min(r.Y, o.Y)
	x1 := math.Max(r.Right(), o.Right())
	y1 := math.Max(r.Bottom(), o.Bottom())
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Inset grows the box by m on every side (shrinks for negative m).
func (r Rect) Inset(m float64) Rect {
	return Rect{X: r.X - m, Y: r.Y - m, W: r.W + 2*m, H: r.H + 2*m}
}

// AnchorPoint returns the midpoint of the given side.
func (r Rect) AnchorPoint(a domain.Anchor) domain.Point {
	c := r.Center()
	switch a {
	case domain.AnchorTop:
		return domain.Point{X: c.X, Y: r.Y}
	case domain.AnchorRight:
		return domain.Point{X: r.Right(), Y: c.Y}
	case domain.AnchorBottom:
		return domain.Point{X: c.X, Y: r.Bottom()}
	case domain.AnchorLeft:
		return domain.Point{X: r.X, Y: c.Y}
	}
	return c
}

// ResizeHandle returns the bottom-right corner, where the resize handle sits.
func (r Rect) ResizeHandle() domain.Point {
	return domain.Point{X: r.Right(), Y: r.Bottom()}
}

// Bounds returns the box enclosing every step. ok is false for an empty slice.
func Bounds(steps []*domain.Step) (Rect, bool) {
	if len(steps) == 0 {
		return Rect{}, false
	}
	out := BoxOf(steps[0])
	for _, s := range steps[1:] {
		out = out.Union(BoxOf(s))
	}
	return out, true
}
