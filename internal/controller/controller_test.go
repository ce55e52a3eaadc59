package controller_test

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/euwesleysilv4/meu-app-digitfy-sub003/internal/controller"
	"github.com/euwesleysilv4/meu-app-digitfy-sub003/pkg/domain"
	"github.com/euwesleysilv4/meu-app-digitfy-sub003/pkg/graph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	commits   []string
	rejects   []error
	snapshots []error
	saves     int
}

func (r *recorder) hooks() controller.Hooks {
	return controller.Hooks{
		OnCommit:        func(op string) { r.commits = append(r.commits, op) },
		OnReject:        func(err error) { r.rejects = append(r.rejects, err) },
		OnSnapshotError: func(err error) { r.snapshots = append(r.snapshots, err) },
		OnSaveShortcut:  func() { r.saves++ },
	}
}

// newEditor returns a controller with a social step "s1" at (100,100) and a web page
// "s2" at (400,100), plus the hook recorder.
func newEditor(t *testing.T, opts ...controller.Option) (*controller.Controller, *recorder) {
	t.Helper()
	n := 0
	rec := &recorder{}
	opts = append([]controller.Option{
		controller.WithIDFunc(func() string { n++; return fmt.Sprintf("s%d", n) }),
		controller.WithHooks(rec.hooks()),
	}, opts...)
	c, err := controller.New(domain.Document{Name: "test"}, opts...)
	require.NoError(t, err)

	_, err = c.AddStep(domain.KindSocial, domain.Point{X: 100, Y: 100})
	require.NoError(t, err)
	_, err = c.AddStep(domain.KindWebPage, domain.Point{X: 400, Y: 100})
	require.NoError(t, err)
	c.ClearSelection()
	rec.commits = nil
	return c, rec
}

func at(x, y float64) controller.PointerEvent { return controller.PointerEvent{X: x, Y: y} }

func position(t *testing.T, c *controller.Controller, id string) domain.Point {
	t.Helper()
	st, ok := c.Store().Step(id)
	require.True(t, ok, "step %s", id)
	return st.Position
}

func TestDrag_CommitsOnceOnRelease(t *testing.T) {
	c, rec := newEditor(t)

	c.PointerDown(at(150, 150))
	assert.Equal(t, []string{"s1"}, c.Selection())
	for i := 1; i <= 5; i++ {
		c.PointerMove(at(150+float64(i)*8, 150+float64(i)*6))
	}
	assert.Equal(t, domain.Point{X: 100, Y: 100}, position(t, c, "s1"), "graph untouched while dragging")
	assert.Equal(t, domain.Point{X: 140, Y: 130}, c.View().Steps[0].Position, "preview follows the pointer")

	c.PointerUp(at(190, 180))
	assert.Equal(t, domain.Point{X: 140, Y: 130}, position(t, c, "s1"))
	assert.Equal(t, []string{"move"}, rec.commits)
	assert.Empty(t, c.Gesture())
}

func TestDrag_MovesWholeSelection(t *testing.T) {
	c, _ := newEditor(t)

	c.PointerDown(controller.PointerEvent{X: 150, Y: 150})
	c.PointerUp(at(150, 150))
	c.PointerDown(controller.PointerEvent{X: 470, Y: 190, Modifiers: controller.Modifiers{Shift: true}})
	assert.Equal(t, []string{"s1", "s2"}, c.Selection())
	c.PointerUp(at(470, 190))

	c.PointerDown(at(150, 150))
	c.PointerUp(at(160, 170))
	assert.Equal(t, domain.Point{X: 110, Y: 120}, position(t, c, "s1"))
	assert.Equal(t, domain.Point{X: 410, Y: 120}, position(t, c, "s2"))
}

func TestDrag_AccountsForZoom(t *testing.T) {
	c, _ := newEditor(t)
	c.SetZoom(200)

	// s1 spans canvas 100..200, i.e. screen 200..400 at 200%.
	c.PointerDown(at(300, 300))
	c.PointerUp(at(340, 300))
	assert.Equal(t, domain.Point{X: 120, Y: 100}, position(t, c, "s1"))
}

func TestClickWithoutMovement_DoesNotRecord(t *testing.T) {
	c, rec := newEditor(t)
	before := c.CanUndo()

	c.PointerDown(at(150, 150))
	c.PointerUp(at(150, 150))

	assert.Empty(t, rec.commits)
	assert.Equal(t, before, c.CanUndo())
	assert.Equal(t, []string{"s1"}, c.Selection())
}

func TestBackgroundClick_ClearsSelection(t *testing.T) {
	c, _ := newEditor(t)
	c.SelectAll()
	c.PointerDown(at(900, 900))
	c.PointerUp(at(900, 900))
	assert.Empty(t, c.Selection())
}

func TestToolSwitch_CancelsGesture(t *testing.T) {
	c, rec := newEditor(t)

	c.PointerDown(at(150, 150))
	c.PointerMove(at(250, 250))
	require.NoError(t, c.SetTool(controller.ToolConnect))
	c.PointerUp(at(250, 250))

	assert.Equal(t, domain.Point{X: 100, Y: 100}, position(t, c, "s1"))
	assert.Empty(t, rec.commits)
	assert.Empty(t, c.Selection())
	assert.Equal(t, controller.ToolConnect, c.Tool())

	assert.Error(t, c.SetTool("lasso"))
}

func TestReleaseOutside_Cancels(t *testing.T) {
	c, rec := newEditor(t)

	c.PointerDown(at(150, 150))
	c.PointerMove(at(250, 250))
	c.PointerUp(controller.PointerEvent{X: 2000, Y: 2000, Outside: true})
	assert.Equal(t, domain.Point{X: 100, Y: 100}, position(t, c, "s1"))

	c.PointerDown(at(150, 150))
	c.PointerMove(at(250, 250))
	c.PointerCancel()
	c.PointerUp(at(250, 250))
	assert.Equal(t, domain.Point{X: 100, Y: 100}, position(t, c, "s1"))
	assert.Empty(t, rec.commits)
}

func TestResizeHandle(t *testing.T) {
	c, rec := newEditor(t)

	// Bottom-right corner of s1.
	c.PointerDown(at(200, 200))
	assert.Equal(t, "resize", c.Gesture())
	c.PointerMove(at(230, 240))
	assert.InDelta(t, 1.5, c.View().Steps[0].Scale, 1e-9)
	st, _ := c.Store().Step("s1")
	assert.Equal(t, 1.0, st.Scale, "preview only")

	c.PointerUp(at(230, 240))
	assert.InDelta(t, 1.5, st.Scale, 1e-9)
	assert.Equal(t, []string{"resize"}, rec.commits)

	// Shrinking far past the minimum clamps.
	c.PointerDown(at(250, 250))
	c.PointerUp(at(-1000, -1000))
	assert.Equal(t, domain.MinScale, st.Scale)
}

func TestResizeHandle_AntiDiagonalKeepsScale(t *testing.T) {
	c, rec := newEditor(t)

	c.PointerDown(at(200, 200))
	require.Equal(t, "resize", c.Gesture())
	c.PointerMove(at(240, 160))
	assert.Equal(t, 1.0, c.View().Steps[0].Scale)

	c.PointerUp(at(240, 160))
	st, _ := c.Store().Step("s1")
	assert.Equal(t, 1.0, st.Scale)
	assert.Empty(t, rec.commits, "unchanged scale is not recorded")
}

func TestSpaceHold_Pans(t *testing.T) {
	c, rec := newEditor(t)

	assert.True(t, c.KeyDown(controller.KeyEvent{Key: " "}))
	assert.Equal(t, controller.ToolPan, c.ActiveTool())
	assert.Equal(t, controller.ToolSelect, c.Tool())

	c.PointerDown(at(150, 150))
	c.PointerMove(at(100, 120))
	c.PointerUp(at(100, 120))
	assert.Equal(t, domain.Point{X: 50, Y: 30}, c.Scroll())
	assert.Equal(t, domain.Point{X: 100, Y: 100}, position(t, c, "s1"), "panning never moves steps")

	assert.True(t, c.KeyUp(controller.KeyEvent{Key: " "}))
	assert.Equal(t, controller.ToolSelect, c.ActiveTool())
	assert.Empty(t, rec.commits)
}

func TestPanTool_ScalesByZoom(t *testing.T) {
	c, _ := newEditor(t)
	require.NoError(t, c.SetTool(controller.ToolPan))
	c.SetZoom(200)
	start := c.Scroll()

	c.PointerDown(at(100, 100))
	c.PointerUp(at(60, 80))
	assert.Equal(t, start.Add(domain.Point{X: 20, Y: 10}), c.Scroll())

	c.PointerDown(at(100, 100))
	c.PointerMove(at(0, 0))
	c.PointerCancel()
	assert.Equal(t, start.Add(domain.Point{X: 20, Y: 10}), c.Scroll(), "cancelled pan restores scroll")
}

func TestZoomAboutCenter(t *testing.T) {
	c, _ := newEditor(t)
	c.SetViewport(800, 600)

	centerBefore := c.ToCanvas(domain.Point{X: 400, Y: 300})
	assert.Equal(t, 200.0, c.SetZoom(200))
	assert.Equal(t, domain.Point{X: 200, Y: 150}, c.Scroll())
	assert.Equal(t, centerBefore, c.ToCanvas(domain.Point{X: 400, Y: 300}))

	assert.Equal(t, domain.MaxZoom, c.SetZoom(500))
	assert.Equal(t, domain.MinZoom, c.SetZoom(10))
	assert.InDelta(t, centerBefore.X, c.ToCanvas(domain.Point{X: 400, Y: 300}).X, 1e-9)
}

func TestConnectTool(t *testing.T) {
	c, rec := newEditor(t)
	require.NoError(t, c.SetTool(controller.ToolConnect))

	// Body click without an armed source does nothing.
	c.PointerDown(at(150, 150))
	assert.Nil(t, c.View().Pending)

	// Right anchor of s1, then the body of s2.
	c.PointerDown(at(200, 150))
	c.PointerMove(at(300, 160))
	pending := c.View().Pending
	require.NotNil(t, pending)
	assert.Equal(t, "s1", pending.SourceID)
	assert.Equal(t, domain.AnchorRight, pending.Anchor)
	assert.Equal(t, domain.Point{X: 300, Y: 160}, pending.Cursor)

	c.PointerDown(at(470, 190))
	assert.Nil(t, c.View().Pending)
	st, _ := c.Store().Step("s1")
	assert.Equal(t, []string{"s2"}, st.Connections)
	assert.Equal(t, []string{"connect"}, rec.commits)

	edges := c.View().Edges
	require.Len(t, edges, 1)
	assert.Equal(t, domain.AnchorRight, edges[0].From)
	assert.Equal(t, domain.AnchorLeft, edges[0].To)

	// Closing the loop is refused silently.
	c.PointerDown(at(400, 190)) // left anchor of s2
	c.PointerDown(at(150, 150))
	assert.Nil(t, c.View().Pending)
	require.Len(t, rec.rejects, 1)
	assert.ErrorIs(t, rec.rejects[0], domain.ErrCycle)
	assert.Equal(t, []string{"connect"}, rec.commits)

	// Clicking the armed step again disarms.
	c.PointerDown(at(200, 150))
	c.PointerDown(at(150, 150))
	assert.Nil(t, c.View().Pending)
	assert.Len(t, rec.rejects, 1)
}

func TestConnect_Explicit(t *testing.T) {
	c, rec := newEditor(t)
	require.NoError(t, c.Connect("s1", "s2"))
	assert.ErrorIs(t, c.Connect("s1", "s2"), domain.ErrDuplicateConnection)
	assert.ErrorIs(t, c.Connect("s2", "s1"), domain.ErrCycle)
	assert.True(t, c.Disconnect("s1", "s2"))
	assert.False(t, c.Disconnect("s1", "s2"))
	assert.Equal(t, []string{"connect", "disconnect"}, rec.commits)
}

func TestUndoAfterDelete(t *testing.T) {
	c, _ := newEditor(t)
	require.NoError(t, c.Connect("s1", "s2"))
	c.Select("s2")

	assert.True(t, c.KeyDown(controller.KeyEvent{Key: "Delete"}))
	assert.Equal(t, 1, c.Store().Len())
	s1, _ := c.Store().Step("s1")
	assert.Empty(t, s1.Connections)

	assert.True(t, c.KeyDown(controller.KeyEvent{Key: "z", Modifiers: controller.Modifiers{Ctrl: true}}))
	assert.Equal(t, 2, c.Store().Len())
	s1, _ = c.Store().Step("s1")
	assert.Equal(t, []string{"s2"}, s1.Connections)

	assert.True(t, c.KeyDown(controller.KeyEvent{Key: "Z", Modifiers: controller.Modifiers{Meta: true, Shift: true}}))
	assert.Equal(t, 1, c.Store().Len())

	c.Undo()
	c.Select("s2")
	assert.True(t, c.KeyDown(controller.KeyEvent{Key: "Backspace"}))
	c.Undo()
	c.Select("s1", "s2")
	require.True(t, c.KeyDown(controller.KeyEvent{Key: "y", Modifiers: controller.Modifiers{Ctrl: true}}))
	assert.Equal(t, []string{"s1"}, c.Selection(), "missing ids are pruned from the selection")
}

func TestUndoRedo_RestoresEveryState(t *testing.T) {
	c, _ := newEditor(t)
	states := []domain.Document{c.Document()}

	require.NoError(t, c.Connect("s1", "s2"))
	states = append(states, c.Document())
	c.Select("s1")
	c.DuplicateSelection()
	states = append(states, c.Document())
	c.SelectAll()
	_, err := c.AlignSelection(graph.AlignTop)
	require.NoError(t, err)
	states = append(states, c.Document())
	require.NoError(t, c.Recolor(domain.ColorPurple))
	states = append(states, c.Document())

	for i := len(states) - 2; i >= 0; i-- {
		require.True(t, c.Undo())
		assert.Equal(t, states[i], c.Document(), "undo to state %d", i)
	}
	for i := 1; i < len(states); i++ {
		require.True(t, c.Redo())
		assert.Equal(t, states[i], c.Document(), "redo to state %d", i)
	}
	assert.False(t, c.Redo())
}

func TestShortcuts(t *testing.T) {
	c, rec := newEditor(t)

	assert.False(t, c.KeyDown(controller.KeyEvent{Key: "a", Modifiers: controller.Modifiers{Ctrl: true}, InTextInput: true}))
	assert.Empty(t, c.Selection())

	assert.True(t, c.KeyDown(controller.KeyEvent{Key: "a", Modifiers: controller.Modifiers{Meta: true}}))
	assert.Equal(t, []string{"s1", "s2"}, c.Selection())

	assert.True(t, c.KeyDown(controller.KeyEvent{Key: "d", Modifiers: controller.Modifiers{Ctrl: true}}))
	assert.Equal(t, 4, c.Store().Len())
	assert.Equal(t, []string{"s3", "s4"}, c.Selection())
	assert.Equal(t, domain.Point{X: 120, Y: 120}, position(t, c, "s3"))

	assert.True(t, c.KeyDown(controller.KeyEvent{Key: "s", Modifiers: controller.Modifiers{Ctrl: true}}))
	assert.Equal(t, 1, rec.saves)

	assert.True(t, c.KeyDown(controller.KeyEvent{Key: "Escape"}))
	assert.Empty(t, c.Selection())

	assert.False(t, c.KeyDown(controller.KeyEvent{Key: "Delete"}), "nothing selected")
	assert.False(t, c.KeyDown(controller.KeyEvent{Key: "q"}))
}

func TestEdit(t *testing.T) {
	c, rec := newEditor(t)
	name, notes := "Instagram Bio", "link in bio"
	green := domain.ColorGreen
	views := 500.0

	require.NoError(t, c.Edit("s1", controller.StepEdit{
		DisplayName: &name,
		Notes:       &notes,
		Color:       &green,
		Stats:       &domain.Stats{Views: &views},
	}))
	st, _ := c.Store().Step("s1")
	assert.Equal(t, name, st.DisplayName)
	assert.Equal(t, notes, st.Notes)
	assert.Equal(t, green, st.Color)
	require.NotNil(t, st.Stats)

	require.NoError(t, c.Edit("s1", controller.StepEdit{ClearStats: true}))
	assert.Nil(t, st.Stats)
	assert.Equal(t, []string{"edit", "edit"}, rec.commits)

	require.NoError(t, c.Edit("s1", controller.StepEdit{}))
	assert.Len(t, rec.commits, 2, "empty edits are not recorded")

	bad := domain.Color("neon")
	assert.ErrorIs(t, c.Edit("s1", controller.StepEdit{Color: &bad}), domain.ErrUnknownColor)
	assert.ErrorIs(t, c.Edit("ghost", controller.StepEdit{Notes: &notes}), domain.ErrStepNotFound)
}

func TestEdit_EmptyIconTagIsInferred(t *testing.T) {
	c, _ := newEditor(t)
	empty := ""
	require.NoError(t, c.Edit("s1", controller.StepEdit{IconTag: &empty}))
	st, _ := c.Store().Step("s1")
	require.NotEmpty(t, st.IconTag)
	final := c.Document()

	require.True(t, c.Undo())
	require.True(t, c.Redo())
	assert.Equal(t, final, c.Document())
}

func TestRecolor_UnknownIDChangesNothing(t *testing.T) {
	c, rec := newEditor(t)
	before := c.Document()

	err := c.Recolor(domain.ColorRed, "s1", "ghost")
	assert.ErrorIs(t, err, domain.ErrStepNotFound)
	assert.Equal(t, before, c.Document())
	assert.Empty(t, rec.commits)

	require.NoError(t, c.Recolor(domain.ColorRed, "s1", "s2"))
	assert.Equal(t, []string{"recolor"}, rec.commits)
	require.True(t, c.Undo())
	assert.Equal(t, before, c.Document())
	require.True(t, c.Redo())
	st, _ := c.Store().Step("s2")
	assert.Equal(t, domain.ColorRed, st.Color)
}

func TestAddStep_InfersIcon(t *testing.T) {
	c, _ := newEditor(t)
	id, err := c.AddStep(domain.KindConversionEvent, domain.Point{X: 10, Y: 10})
	require.NoError(t, err)
	st, _ := c.Store().Step(id)
	assert.Equal(t, "purchase", st.IconTag)
	assert.Equal(t, []string{id}, c.Selection())

	_, err = c.AddStep("banner", domain.Point{})
	assert.ErrorIs(t, err, domain.ErrUnknownKind)
}

func TestSnapshotFailure_IsSkipped(t *testing.T) {
	c, rec := newEditor(t)
	undoable := c.CanUndo()

	c.PointerDown(at(150, 150))
	c.PointerUp(at(math.NaN(), 150))

	require.Len(t, rec.snapshots, 1)
	assert.Empty(t, rec.commits)
	assert.Equal(t, undoable, c.CanUndo())

	// Undo goes back to the last recorded state.
	require.True(t, c.Undo())
	assert.Equal(t, 1, c.Store().Len())
}

func TestLoad_ResetsHistory(t *testing.T) {
	c, _ := newEditor(t)
	err := c.Load(domain.Document{ID: "tpl-1", Name: "Webinar", Nodes: []domain.NodeRecord{
		{ID: "a", Kind: domain.KindSocial, OutgoingConnections: []string{"b"}},
		{ID: "b", Kind: domain.KindWebPage},
	}})
	require.NoError(t, err)
	assert.False(t, c.CanUndo())
	assert.Equal(t, "Webinar", c.View().Name)
	assert.Equal(t, "tpl-1", c.Document().ID)

	err = c.Load(domain.Document{Nodes: []domain.NodeRecord{{ID: "x", Kind: "banner"}}})
	assert.True(t, errors.Is(err, domain.ErrInvalidDocument))
	assert.Equal(t, 2, c.Store().Len(), "a rejected load keeps the current graph")
}
