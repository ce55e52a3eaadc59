package controller

import (
	"github.com/euwesleysilv4/meu-app-digitfy-sub003/pkg/domain"
	"github.com/euwesleysilv4/meu-app-digitfy-sub003/pkg/geometry"
	"github.com/euwesleysilv4/meu-app-digitfy-sub003/pkg/icons"
	"github.com/euwesleysilv4/meu-app-digitfy-sub003/pkg/portable"
)

// StepView is a step as it should be drawn right now, gesture preview included.
type StepView struct {
	domain.NodeRecord
	Box      geometry.Rect `json:"box"`
	Glyph    icons.Glyph   `json:"glyph"`
	Selected bool          `json:"selected,omitempty"`
}

// PendingView describes an armed connection and the rubber-band end point.
type PendingView struct {
	SourceID string        `json:"source_id"`
	Anchor   domain.Anchor `json:"anchor"`
	Start    domain.Point  `json:"start"`
	Cursor   domain.Point  `json:"cursor"`
}

// View is a render-ready snapshot of the editor.
type View struct {
	Name       string              `json:"name"`
	Tool       Tool                `json:"tool"`
	ActiveTool Tool                `json:"active_tool"`
	Gesture    string              `json:"gesture,omitempty"`
	Zoom       float64             `json:"zoom"`
	Scroll     domain.Point        `json:"scroll"`
	Viewport   geometry.Size       `json:"viewport"`
	Steps      []StepView          `json:"steps"`
	Edges      []geometry.EdgePath `json:"edges"`
	Selection  []string            `json:"selection"`
	Pending    *PendingView        `json:"pending,omitempty"`
	CanUndo    bool                `json:"can_undo"`
	CanRedo    bool                `json:"can_redo"`
}

// View renders the current state. Edge paths follow the previewed geometry, so they
// track steps while they are being dragged or resized.
func (c *Controller) View() View {
	steps := c.PreviewSteps()
	v := View{
		Name:       c.name,
		Tool:       c.tool,
		ActiveTool: c.ActiveTool(),
		Gesture:    c.Gesture(),
		Zoom:       c.zoom,
		Scroll:     c.scroll,
		Viewport:   c.viewport,
		Steps:      make([]StepView, 0, len(steps)),
		Edges:      geometry.Paths(steps),
		Selection:  c.Selection(),
		CanUndo:    c.history.CanUndo(),
		CanRedo:    c.history.CanRedo(),
	}
	if v.Edges == nil {
		v.Edges = []geometry.EdgePath{}
	}
	for _, st := range steps {
		v.Steps = append(v.Steps, StepView{
			NodeRecord: portable.Record(st),
			Box:        geometry.BoxOf(st),
			Glyph:      icons.Resolve(st.IconTag),
			Selected:   c.IsSelected(st.ID),
		})
	}
	if c.pending != nil {
		if src, ok := c.store.Step(c.pending.source); ok {
			v.Pending = &PendingView{
				SourceID: src.ID,
				Anchor:   c.pending.anchor,
				Start:    geometry.BoxOf(src).AnchorPoint(c.pending.anchor),
				Cursor:   c.cursor,
			}
		}
	}
	return v
}

// PreviewSteps returns copies of the steps with the gesture preview applied.
func (c *Controller) PreviewSteps() []*domain.Step {
	live := c.store.Steps()
	out := make([]*domain.Step, 0, len(live))
	for _, st := range live {
		out = append(out, st.Clone())
	}
	g := c.gesture
	if g == nil {
		return out
	}
	for _, st := range out {
		switch g.kind {
		case gestureDrag:
			for _, id := range g.ids {
				if id == st.ID {
					st.Position = st.Position.Add(g.delta)
					break
				}
			}
		case gestureResize:
			if st.ID == g.target {
				st.Scale = g.scale
			}
		}
	}
	return out
}

func iconFor(st *domain.Step) string {
	return icons.Infer(st.Kind, st.ID, st.DisplayName)
}
