package funnelfy

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/euwesleysilv4/meu-app-digitfy-sub003/internal/controller"
	"github.com/euwesleysilv4/meu-app-digitfy-sub003/internal/logging"
	"github.com/euwesleysilv4/meu-app-digitfy-sub003/internal/metrics"
	"github.com/euwesleysilv4/meu-app-digitfy-sub003/internal/presentation/mermaid"
	"github.com/euwesleysilv4/meu-app-digitfy-sub003/pkg/adapters/raster"
	"github.com/euwesleysilv4/meu-app-digitfy-sub003/pkg/domain"
	"github.com/euwesleysilv4/meu-app-digitfy-sub003/pkg/geometry"
	"github.com/euwesleysilv4/meu-app-digitfy-sub003/pkg/graph"
	"github.com/euwesleysilv4/meu-app-digitfy-sub003/pkg/ports"
	"github.com/euwesleysilv4/meu-app-digitfy-sub003/pkg/portable"
)

// Re-exported interaction types, so hosts never import internal packages.
type (
	Tool         = controller.Tool
	PointerEvent = controller.PointerEvent
	KeyEvent     = controller.KeyEvent
	Modifiers    = controller.Modifiers
	StepEdit     = controller.StepEdit
	View         = controller.View
	StepView     = controller.StepView
	Hooks        = controller.Hooks
	Edge         = graph.Edge
)

const (
	ToolSelect  = controller.ToolSelect
	ToolMove    = controller.ToolMove
	ToolConnect = controller.ToolConnect
	ToolPan     = controller.ToolPan
)

// ParseTool converts a toolbar name into a Tool.
func ParseTool(s string) (Tool, error) { return controller.ParseTool(s) }

// ExportPadding is the margin, in canvas units, around the steps of an image export.
const ExportPadding = 40

// Editor is the high-level entry point of the funnel editor.
// It wraps the interaction controller and routes its events to the host.
// An Editor is not safe for concurrent use; see package session for shared access.
type Editor struct {
	ctrl      *controller.Controller
	doc       domain.Document
	logger    *slog.Logger
	tunables  *domain.Tunables
	idFunc    graph.IDFunc
	hooks     controller.Hooks
	onSave    func(context.Context, domain.SaveRequest)
	onExport  func(context.Context, domain.ExportRequest)
	capturer  ports.ImageCapturer
	returnURL string
	now       func() time.Time

	// ctx is the context of the key event being dispatched, handed to the save shortcut.
	ctx context.Context
}

// Option defines a functional option for configuring the Editor.
type Option func(*Editor)

// WithDocument hydrates the editor from a portable document.
func WithDocument(doc domain.Document) Option {
	return func(e *Editor) {
		e.doc = doc
	}
}

// WithLogger sets a custom structured logger for the editor.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Editor) {
		e.logger = logger
	}
}

// WithTunables overrides the default scale, zoom and duplicate constants.
func WithTunables(t domain.Tunables) Option {
	return func(e *Editor) {
		e.tunables = &t
	}
}

// WithIDFunc overrides the step id allocator. Defaults to random UUIDs.
func WithIDFunc(fn graph.IDFunc) Option {
	return func(e *Editor) {
		e.idFunc = fn
	}
}

// WithSaveHandler registers the receiver of "save requested" events.
func WithSaveHandler(fn func(context.Context, domain.SaveRequest)) Option {
	return func(e *Editor) {
		e.onSave = fn
	}
}

// WithExportHandler registers the receiver of "export requested" events.
func WithExportHandler(fn func(context.Context, domain.ExportRequest)) Option {
	return func(e *Editor) {
		e.onExport = fn
	}
}

// WithImageCapturer sets the collaborator used for PNG export. Defaults to the raster adapter.
func WithImageCapturer(c ports.ImageCapturer) Option {
	return func(e *Editor) {
		e.capturer = c
	}
}

// WithReturnURL records where the host navigates when the user leaves the editor.
// The editor never navigates itself.
func WithReturnURL(url string) Option {
	return func(e *Editor) {
		e.returnURL = url
	}
}

// WithHooks registers additional observability callbacks.
// They run after the built-in metrics.
func WithHooks(h controller.Hooks) Option {
	return func(e *Editor) {
		e.hooks = h
	}
}

// New initializes an Editor. Without WithDocument it starts on an empty funnel.
// A document that fails validation is rejected with a portable.AggregateError.
func New(opts ...Option) (*Editor, error) {
	e := &Editor{
		logger: logging.NewNop(),
		now:    time.Now,
		ctx:    context.Background(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = logging.NewNop()
	}
	if e.capturer == nil {
		e.capturer = raster.New()
	}

	copts := []controller.Option{
		controller.WithLogger(e.logger),
		controller.WithHooks(e.controllerHooks()),
	}
	if e.tunables != nil {
		copts = append(copts, controller.WithTunables(*e.tunables))
	}
	if e.idFunc != nil {
		copts = append(copts, controller.WithIDFunc(e.idFunc))
	}

	ctrl, err := controller.New(e.doc, copts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load document: %w", err)
	}
	e.ctrl = ctrl
	return e, nil
}

func (e *Editor) controllerHooks() controller.Hooks {
	user := e.hooks
	return controller.Hooks{
		OnCommit: func(op string) {
			metrics.Commits.WithLabelValues(op).Inc()
			if user.OnCommit != nil {
				user.OnCommit(op)
			}
		},
		OnReject: func(err error) {
			metrics.RejectedConnections.WithLabelValues(metrics.RejectReason(err)).Inc()
			if user.OnReject != nil {
				user.OnReject(err)
			}
		},
		OnSnapshotError: func(err error) {
			metrics.SnapshotFailures.Inc()
			if user.OnSnapshotError != nil {
				user.OnSnapshotError(err)
			}
		},
		OnSaveShortcut: func() {
			e.RequestSave(e.ctx)
			if user.OnSaveShortcut != nil {
				user.OnSaveShortcut()
			}
		},
	}
}

// ReturnURL returns the navigation target configured with WithReturnURL.
func (e *Editor) ReturnURL() string { return e.returnURL }

// PointerDown forwards a pointer press, in viewport pixels.
func (e *Editor) PointerDown(ev PointerEvent) { e.ctrl.PointerDown(ev) }

// PointerMove forwards pointer motion.
func (e *Editor) PointerMove(ev PointerEvent) { e.ctrl.PointerMove(ev) }

// PointerUp forwards a pointer release. Set Outside when it happened off the canvas.
func (e *Editor) PointerUp(ev PointerEvent) { e.ctrl.PointerUp(ev) }

// PointerCancel aborts the gesture in progress without committing it.
func (e *Editor) PointerCancel() { e.ctrl.PointerCancel() }

// KeyDown applies keyboard shortcuts. It reports whether the host should suppress
// the key's default action. Ctrl/Cmd+S emits a save request carrying ctx.
func (e *Editor) KeyDown(ctx context.Context, ev KeyEvent) bool {
	e.ctx = ctx
	defer func() { e.ctx = context.Background() }()
	return e.ctrl.KeyDown(ev)
}

// KeyUp forwards a key release.
func (e *Editor) KeyUp(ev KeyEvent) bool { return e.ctrl.KeyUp(ev) }

// SetTool switches the active tool.
func (e *Editor) SetTool(t Tool) error { return e.ctrl.SetTool(t) }

// SetZoom sets the zoom percentage, preserving the viewport center. It returns the clamped value.
func (e *Editor) SetZoom(percent float64) float64 { return e.ctrl.SetZoom(percent) }

// SetViewport records the size of the visible canvas area in pixels.
func (e *Editor) SetViewport(w, h float64) { e.ctrl.SetViewport(w, h) }

// AddStep drops a new step from the palette at a viewport position and returns its id.
func (e *Editor) AddStep(kind domain.Kind, screen domain.Point) (string, error) {
	return e.ctrl.AddStep(kind, screen)
}

// Select replaces the selection.
func (e *Editor) Select(ids ...string) { e.ctrl.Select(ids...) }

// Selection returns the selected step ids.
func (e *Editor) Selection() []string { return e.ctrl.Selection() }

// DuplicateSelection copies the selected steps and returns the new ids.
func (e *Editor) DuplicateSelection() []string { return e.ctrl.DuplicateSelection() }

// AlignSelection aligns the selected steps on edge. It reports whether anything moved.
func (e *Editor) AlignSelection(edge Edge) (bool, error) { return e.ctrl.AlignSelection(edge) }

// Recolor applies a palette color to ids, or to the selection when ids is empty.
func (e *Editor) Recolor(color domain.Color, ids ...string) error {
	return e.ctrl.Recolor(color, ids...)
}

// EditStep updates the editable fields of one step.
func (e *Editor) EditStep(id string, edit StepEdit) error { return e.ctrl.Edit(id, edit) }

// Connect links source to target. Cycles, self loops and duplicates are refused.
func (e *Editor) Connect(source, target string) error { return e.ctrl.Connect(source, target) }

// Disconnect removes an edge. It reports whether one existed.
func (e *Editor) Disconnect(source, target string) bool { return e.ctrl.Disconnect(source, target) }

// DeleteSelection removes the selected steps and every edge touching them.
func (e *Editor) DeleteSelection() int { return e.ctrl.DeleteSelection() }

// Undo steps back one history entry.
func (e *Editor) Undo() bool { return e.ctrl.Undo() }

// Redo re-applies the next history entry.
func (e *Editor) Redo() bool { return e.ctrl.Redo() }

// Rename sets the funnel name. Renaming is not an undoable edit.
func (e *Editor) Rename(name string) { e.ctrl.Rename(name) }

// Load replaces the funnel and resets the history. An invalid document leaves the editor unchanged.
func (e *Editor) Load(doc domain.Document) error { return e.ctrl.Load(doc) }

// SetDocumentID records the id assigned by the template store.
func (e *Editor) SetDocumentID(id string) { e.ctrl.SetDocumentID(id) }

// Document returns the portable form of the funnel.
func (e *Editor) Document() domain.Document { return e.ctrl.Document() }

// View returns a render-ready snapshot.
func (e *Editor) View() View { return e.ctrl.View() }

// RequestSave emits a "save requested" event with the current document.
func (e *Editor) RequestSave(ctx context.Context) {
	if e.onSave == nil {
		e.logger.Debug("save requested without handler")
		return
	}
	e.onSave(ctx, domain.SaveRequest{
		EventBase: domain.EventBase{Timestamp: e.now(), Type: domain.EventSaveRequested},
		Document:  e.ctrl.Document(),
	})
}

// RequestExport emits an "export requested" event. The host decides how to fulfil it.
func (e *Editor) RequestExport(ctx context.Context, kind domain.ExportKind) error {
	if kind != domain.ExportStructural && kind != domain.ExportImage {
		return fmt.Errorf("unknown export kind %q", kind)
	}
	if e.onExport == nil {
		e.logger.Debug("export requested without handler", "kind", kind)
		return nil
	}
	e.onExport(ctx, domain.ExportRequest{
		EventBase: domain.EventBase{Timestamp: e.now(), Type: domain.EventExportRequested},
		Kind:      kind,
		Document:  e.ctrl.Document(),
	})
	return nil
}

// Export encodes the funnel. Supported formats are json, yaml, mermaid and png.
func (e *Editor) Export(ctx context.Context, format string) ([]byte, error) {
	f, err := portable.ParseFormat(format)
	if err != nil {
		return nil, err
	}

	var out []byte
	doc := e.ctrl.Document()
	switch f {
	case portable.FormatJSON:
		out, err = portable.EncodeJSON(doc)
	case portable.FormatYAML:
		out, err = portable.EncodeYAML(doc)
	case portable.FormatMermaid:
		out = []byte(mermaid.Generate(doc, &mermaid.Overlay{Selected: e.ctrl.Selection()}))
	case portable.FormatPNG:
		out, err = e.capture(ctx)
	}
	if err != nil {
		return nil, err
	}
	metrics.Exports.WithLabelValues(string(f)).Inc()
	return out, nil
}

// capture rasterizes every step with a margin. An empty funnel captures the viewport.
func (e *Editor) capture(ctx context.Context) ([]byte, error) {
	steps := e.ctrl.Store().Steps()
	region, ok := geometry.Bounds(steps)
	if ok {
		region = region.Inset(ExportPadding)
	} else {
		vp := e.ctrl.View().Viewport
		if vp.W <= 0 || vp.H <= 0 {
			vp = geometry.Size{W: 800, H: 600}
		}
		scroll, f := e.ctrl.Scroll(), e.ctrl.Zoom()/100
		region = geometry.Rect{X: scroll.X, Y: scroll.Y, W: vp.W / f, H: vp.H / f}
	}

	img, err := e.capturer.Capture(ctx, region, steps)
	if err != nil {
		e.logger.Warn("image capture failed", "error", err)
		return nil, fmt.Errorf("image capture failed: %w", err)
	}
	return img, nil
}
