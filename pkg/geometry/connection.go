package geometry

import (
	"math"

	"github.com/euwesleysilv4/meu-app-digitfy-sub003/pkg/domain"
)

// MaxControlOffset caps how far a control point is pushed away from its anchor.
const MaxControlOffset = 80.0

// controlRatio is the share of the anchor distance used as control offset.
const controlRatio = 0.4

// Bezier is a cubic curve: start, two control points, end.
type Bezier struct {
	Start domain.Point `json:"start"`
	C1    domain.Point `json:"c1"`
	C2    domain.Point `json:"c2"`
	End   domain.Point `json:"end"`
}

// Connection is the resolved geometry of one edge.
type Connection struct {
	From  domain.Anchor `json:"from"`
	To    domain.Anchor `json:"to"`
	Curve Bezier        `json:"curve"`
}

// EdgePath is a Connection tagged with the steps it links.
type EdgePath struct {
	SourceID string `json:"source_id"`
	TargetID string `json:"target_id"`
	Connection
}

// ResolveAnchors picks the anchor pair between two boxes from their relative centers.
func ResolveAnchors(from, to Rect) (domain.Anchor, domain.Anchor) {
	fc, tc := from.Center(), to.Center()
	dx := tc.X - fc.X
	dy := tc.Y - fc.Y

	if dx != 0 && math.Abs(dy) < (from.H+to.H)/2 {
		if dx > 0 {
			return domain.AnchorRight, domain.AnchorLeft
		}
		return domain.AnchorLeft, domain.AnchorRight
	}
	if dy >= 0 {
		return domain.AnchorBottom, domain.AnchorTop
	}
	return domain.AnchorTop, domain.AnchorBottom
}

// Resolve returns the anchor pair and Bézier path connecting two boxes.
func Resolve(from, to Rect) Connection {
	fa, ta := ResolveAnchors(from, to)
	return Connection{From: fa, To: ta, Curve: Curve(from.AnchorPoint(fa), fa, to.AnchorPoint(ta), ta)}
}

// Curve builds the Bézier between two anchored points. Each control point is pushed
// outward along its anchor's axis by min(80, 0.4 * distance).
func Curve(start domain.Point, startAnchor domain.Anchor, end domain.Point, endAnchor domain.Anchor) Bezier {
	d := math.Min(MaxControlOffset, controlRatio*math.Hypot(end.X-start.X, end.Y-start.Y))
	return Bezier{
		Start: start,
		C1:    start.Add(Normal(startAnchor).Scale(d)),
		C2:    end.Add(Normal(endAnchor).Scale(d)),
		End:   end,
	}
}

// Normal returns the outward unit vector of an anchor.
func Normal(a domain.Anchor) domain.Point {
	switch a {
	case domain.AnchorTop:
		return domain.Point{Y: -1}
	case domain.AnchorRight:
		return domain.Point{X: 1}
	case domain.AnchorBottom:
		return domain.Point{Y: 1}
	case domain.AnchorLeft:
		return domain.Point{X: -1}
	}
	return domain.Point{}
}

// At evaluates the curve at t in [0, 1].
func (b Bezier) At(t float64) domain.Point {
	u := 1 - t
	a := u * u * u
	c1 := 3 * u * u * t
	c2 := 3 * u * t * t
	e := t * t * t
	return domain.Point{
		X: a*b.Start.X + c1*b.C1.X + c2*b.C2.X + e*b.End.X,
		Y: a*b.Start.Y + c1*b.C1.Y + c2*b.C2.Y + e*b.End.Y,
	}
}

// Paths resolves every edge of the graph. Connections to ids missing from steps are skipped.
func Paths(steps []*domain.Step) []EdgePath {
	boxes := make(map[string]Rect, len(steps))
	for _, s := range steps {
		boxes[s.ID] = BoxOf(s)
	}
	var out []EdgePath
	for _, s := range steps {
		from := boxes[s.ID]
		for _, target := range s.Connections {
			to, ok := boxes[target]
			if !ok {
				continue
			}
			out = append(out, EdgePath{SourceID: s.ID, TargetID: target, Connection: Resolve(from, to)})
		}
	}
	return out
}
