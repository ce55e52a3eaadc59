package geometry

import (
	"math"

	"github.com/euwesleysilv4/meu-app-digitfy-sub003/pkg/domain"
)

// HitKind says what a canvas point landed on.
type HitKind string

const (
	HitCanvas HitKind = "canvas"
	HitNode   HitKind = "node"
	HitAnchor HitKind = "anchor"
	HitResize HitKind = "resize"
)

// Hit is the result of HitTest.
type Hit struct {
	Kind   HitKind       `json:"kind"`
	StepID string        `json:"step_id,omitempty"`
	Anchor domain.Anchor `json:"anchor,omitempty"`
}

// HitOptions sizes the interactive targets around each box, in canvas units.
type HitOptions struct {
	AnchorRadius float64
	HandleRadius float64
}

// DefaultHitOptions matches the size of the anchor dots and corner handle.
var DefaultHitOptions = HitOptions{AnchorRadius: 8, HandleRadius: 10}

// HitTest finds what lies under p. Later steps are drawn on top, so they are tested first.
// Anchors and the resize handle win over the body of the same step.
func HitTest(steps []*domain.Step, p domain.Point, opts HitOptions) Hit {
	for i := len(steps) - 1; i >= 0; i-- {
		s := steps[i]
		box := BoxOf(s)
		if dist(p, box.ResizeHandle()) <= opts.HandleRadius {
			return Hit{Kind: HitResize, StepID: s.ID}
		}
		for _, a := range domain.Anchors {
			if dist(p, box.AnchorPoint(a)) <= opts.AnchorRadius {
				return Hit{Kind: HitAnchor, StepID: s.ID, Anchor: a}
			}
		}
		if box.Contains(p) {
			return Hit{Kind: HitNode, StepID: s.ID}
		}
	}
	return Hit{Kind: HitCanvas}
}

func dist(a, b domain.Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}
