package controller

import (
	"log/slog"

	"github.com/euwesleysilv4/meu-app-digitfy-sub003/internal/logging"
	"github.com/euwesleysilv4/meu-app-digitfy-sub003/pkg/domain"
	"github.com/euwesleysilv4/meu-app-digitfy-sub003/pkg/geometry"
	"github.com/euwesleysilv4/meu-app-digitfy-sub003/pkg/graph"
	"github.com/euwesleysilv4/meu-app-digitfy-sub003/pkg/history"
	"github.com/euwesleysilv4/meu-app-digitfy-sub003/pkg/portable"
)

// Hooks are optional callbacks fired by the controller. Nil hooks are skipped.
type Hooks struct {
	// OnCommit fires after a structural mutation was applied, with the operation name.
	OnCommit func(op string)
	// OnReject fires when a connection attempt is refused by the graph.
	OnReject func(err error)
	// OnSnapshotError fires when a history snapshot could not be recorded.
	OnSnapshotError func(err error)
	// OnSaveShortcut fires on Ctrl/Cmd+S.
	OnSaveShortcut func()
}

// Controller is the interaction state machine of one editor.
// It is not safe for concurrent use.
type Controller struct {
	store    *graph.Store
	history  *history.Manager
	tunables domain.Tunables
	logger   *slog.Logger
	hooks    Hooks
	hitOpts  geometry.HitOptions
	idFunc   graph.IDFunc

	docID string
	name  string

	tool      Tool
	spaceHeld bool
	selection []string
	gesture   *gesture
	pending   *pendingConnection
	cursor    domain.Point // last pointer position, canvas space

	zoom     float64 // percent
	scroll   domain.Point
	viewport geometry.Size
}

// Option configures the Controller.
type Option func(*Controller)

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithTunables overrides the editor constants.
func WithTunables(t domain.Tunables) Option {
	return func(c *Controller) {
		c.tunables = t.Normalize()
	}
}

// WithHooks registers callbacks.
func WithHooks(h Hooks) Option {
	return func(c *Controller) {
		c.hooks = h
	}
}

// WithHitOptions sizes the anchor and resize targets.
func WithHitOptions(o geometry.HitOptions) Option {
	return func(c *Controller) {
		c.hitOpts = o
	}
}

// WithIDFunc overrides the step id allocator.
func WithIDFunc(fn graph.IDFunc) Option {
	return func(c *Controller) {
		c.idFunc = fn
	}
}

// New creates a controller editing doc. An invalid document is rejected.
func New(doc domain.Document, opts ...Option) (*Controller, error) {
	c := &Controller{
		tunables: domain.DefaultTunables(),
		logger:   logging.NewNop(),
		hitOpts:  geometry.DefaultHitOptions,
		tool:     ToolSelect,
		zoom:     domain.DefaultZoom,
	}
	for _, opt := range opts {
		opt(c)
	}

	view, err := portable.FromPortable(doc, c.storeOptions()...)
	if err != nil {
		return nil, err
	}
	c.store = view.Store
	c.docID = doc.ID
	c.name = doc.Name

	c.history, err = history.New(c.Document(), history.WithLimit(c.tunables.HistoryLimit))
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Controller) storeOptions() []graph.Option {
	opts := []graph.Option{graph.WithTunables(c.tunables)}
	if c.idFunc != nil {
		opts = append(opts, graph.WithIDFunc(c.idFunc))
	}
	return opts
}

// Document returns the portable form of the live graph.
func (c *Controller) Document() domain.Document {
	doc := portable.ToPortable(c.name, c.store.Steps())
	doc.ID = c.docID
	return doc
}

// SetDocumentID records the id assigned by the persistence layer.
func (c *Controller) SetDocumentID(id string) { c.docID = id }

// Name returns the funnel name.
func (c *Controller) Name() string { return c.name }

// Store exposes the live graph for read access.
func (c *Controller) Store() *graph.Store { return c.store }

// Tunables returns the active editor constants.
func (c *Controller) Tunables() domain.Tunables { return c.tunables }

// CanUndo reports whether Undo would change the graph.
func (c *Controller) CanUndo() bool { return c.history.CanUndo() }

// CanRedo reports whether Redo would change the graph.
func (c *Controller) CanRedo() bool { return c.history.CanRedo() }

// commit records one history entry for a structural mutation already applied to the store.
// A snapshot failure leaves the history untouched; the live graph keeps the mutation.
func (c *Controller) commit(op string) {
	if err := c.history.Record(c.Document()); err != nil {
		c.logger.Warn("history snapshot failed", "op", op, "error", err)
		if c.hooks.OnSnapshotError != nil {
			c.hooks.OnSnapshotError(err)
		}
		return
	}
	c.logger.Debug("committed", "op", op, "steps", c.store.Len())
	if c.hooks.OnCommit != nil {
		c.hooks.OnCommit(op)
	}
}

func (c *Controller) reject(err error) {
	c.logger.Debug("connection rejected", "error", err)
	if c.hooks.OnReject != nil {
		c.hooks.OnReject(err)
	}
}
