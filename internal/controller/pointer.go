package controller

import (
	"math"

	"github.com/euwesleysilv4/meu-app-digitfy-sub003/pkg/domain"
	"github.com/euwesleysilv4/meu-app-digitfy-sub003/pkg/geometry"
)

// Modifiers are the modifier keys held during an input event.
type Modifiers struct {
	Shift bool `json:"shift,omitempty" mapstructure:"shift"`
	Ctrl  bool `json:"ctrl,omitempty" mapstructure:"ctrl"`
	Meta  bool `json:"meta,omitempty" mapstructure:"meta"`
	Alt   bool `json:"alt,omitempty" mapstructure:"alt"`
}

// Command reports whether the platform command modifier (Ctrl or Cmd) is held.
func (m Modifiers) Command() bool { return m.Ctrl || m.Meta }

// PointerEvent is a pointer input at a position in viewport pixels.
type PointerEvent struct {
	X         float64 `json:"x" mapstructure:"x"`
	Y         float64 `json:"y" mapstructure:"y"`
	Modifiers `mapstructure:",squash"`
	// Outside marks a release that happened outside the canvas.
	Outside bool `json:"outside,omitempty" mapstructure:"outside"`
}

// Point returns the event position in viewport pixels.
func (e PointerEvent) Point() domain.Point { return domain.Point{X: e.X, Y: e.Y} }

type gestureKind string

const (
	gestureDrag   gestureKind = "drag"
	gestureResize gestureKind = "resize"
	gesturePan    gestureKind = "pan"
)

// gesture is the short-lived state of a pointer drag. Only preview values change while
// it is active.
type gesture struct {
	kind  gestureKind
	start domain.Point // viewport pixels

	// drag
	ids   []string
	delta domain.Point // canvas units

	// resize
	target     string
	startScale float64
	scale      float64

	// pan
	startScroll domain.Point
}

type pendingConnection struct {
	source string
	anchor domain.Anchor
}

// PointerDown starts a gesture or performs a click action depending on the active tool
// and on what lies under the pointer.
func (c *Controller) PointerDown(ev PointerEvent) {
	if c.gesture != nil {
		c.cancelGesture()
	}
	screen := ev.Point()
	p := c.ToCanvas(screen)
	c.cursor = p

	if c.ActiveTool() == ToolPan {
		c.gesture = &gesture{kind: gesturePan, start: screen, startScroll: c.scroll}
		return
	}

	hit := geometry.HitTest(c.store.Steps(), p, c.hitOpts)
	if c.tool == ToolConnect {
		c.connectClick(hit)
		return
	}

	if hit.Kind == geometry.HitCanvas {
		c.selection = nil
		return
	}
	c.pick(hit.StepID, ev.Shift)

	if hit.Kind == geometry.HitResize {
		st, _ := c.store.Step(hit.StepID)
		c.gesture = &gesture{
			kind:       gestureResize,
			start:      screen,
			target:     st.ID,
			startScale: st.Scale,
			scale:      st.Scale,
		}
		return
	}
	c.gesture = &gesture{kind: gestureDrag, start: screen, ids: append([]string{}, c.selection...)}
}

// PointerMove updates the preview of the gesture in progress.
func (c *Controller) PointerMove(ev PointerEvent) {
	screen := ev.Point()
	g := c.gesture
	if g == nil {
		c.cursor = c.ToCanvas(screen)
		return
	}
	d := screen.Sub(g.start)
	switch g.kind {
	case gestureDrag:
		g.delta = d.Scale(1 / c.factor())
	case gestureResize:
		// A pure anti-diagonal drag (dx+dy == 0) leaves the scale unchanged.
		sign := 0.0
		switch sum := d.X + d.Y; {
		case sum > 0:
			sign = 1
		case sum < 0:
			sign = -1
		}
		g.scale = c.tunables.ClampScale(g.startScale + sign*math.Hypot(d.X, d.Y)*c.tunables.ResizeStep)
	case gesturePan:
		c.scroll = g.startScroll.Sub(d.Scale(1 / c.factor()))
	}
	c.cursor = c.ToCanvas(screen)
}

// PointerUp commits the gesture in progress. A release outside the canvas cancels it.
func (c *Controller) PointerUp(ev PointerEvent) {
	if c.gesture == nil {
		return
	}
	if ev.Outside {
		c.cancelGesture()
		return
	}
	c.PointerMove(ev)
	g := c.gesture
	c.gesture = nil

	switch g.kind {
	case gestureDrag:
		if g.delta == (domain.Point{}) {
			return
		}
		c.store.MoveNodes(g.ids, g.delta)
		c.commit("move")
	case gestureResize:
		if g.scale == g.startScale {
			return
		}
		if err := c.store.ResizeNode(g.target, g.scale); err != nil {
			return
		}
		c.commit("resize")
	}
}

// PointerCancel discards the gesture in progress without committing anything.
func (c *Controller) PointerCancel() {
	c.cancelGesture()
}

// Gesture returns the name of the gesture in progress, or "" when idle.
func (c *Controller) Gesture() string {
	if c.gesture == nil {
		return ""
	}
	return string(c.gesture.kind)
}

func (c *Controller) cancelGesture() {
	if c.gesture != nil && c.gesture.kind == gesturePan {
		c.scroll = c.gesture.startScroll
	}
	c.gesture = nil
}

// connectClick drives the two-click connect flow: the first anchor click arms a source,
// a click on another step completes the edge, anything else disarms.
func (c *Controller) connectClick(hit geometry.Hit) {
	if c.pending == nil {
		if hit.Kind == geometry.HitAnchor {
			c.pending = &pendingConnection{source: hit.StepID, anchor: hit.Anchor}
		}
		return
	}
	source := c.pending.source
	c.pending = nil
	if hit.Kind == geometry.HitCanvas || hit.StepID == source {
		return
	}
	if err := c.store.Connect(source, hit.StepID); err != nil {
		c.reject(err)
		return
	}
	c.commit("connect")
}
