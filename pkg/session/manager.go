package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	funnelfy "github.com/euwesleysilv4/meu-app-digitfy-sub003"
	"github.com/euwesleysilv4/meu-app-digitfy-sub003/internal/logging"
	"github.com/euwesleysilv4/meu-app-digitfy-sub003/internal/metrics"
	"github.com/euwesleysilv4/meu-app-digitfy-sub003/pkg/domain"
	"github.com/euwesleysilv4/meu-app-digitfy-sub003/pkg/ports"
	"github.com/google/uuid"
)

// DefaultLockTTL bounds how long a distributed session lock survives a crashed holder.
const DefaultLockTTL = 30 * time.Second

// Info describes a live session.
type Info struct {
	ID         string    `json:"id"`
	TemplateID string    `json:"template_id,omitempty"`
	Name       string    `json:"name"`
	Steps      int       `json:"steps"`
	CreatedAt  time.Time `json:"created_at"`
}

// lockEntry holds the mutex and the reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

type live struct {
	editor    *funnelfy.Editor
	createdAt time.Time

	// Outcome of the last save request, written by the editor's save handler.
	receipt ports.Receipt
	saveErr error
}

// Manager keeps live editors keyed by session id and serializes access to each of them.
// It uses reference counting to garbage collect unused locks.
type Manager struct {
	store ports.DocumentStore

	mu       sync.Mutex            // guards locks and sessions
	locks    map[string]*lockEntry // per-session mutexes
	sessions map[string]*live

	locker     ports.DistributedLocker
	lockTTL    time.Duration
	logger     *slog.Logger
	editorOpts []funnelfy.Option
	now        func() time.Time
}

// Option configures the Manager.
type Option func(*Manager)

// WithLocker enables distributed locking.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(m *Manager) {
		m.locker = locker
	}
}

// WithLockTTL overrides DefaultLockTTL.
func WithLockTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		if ttl > 0 {
			m.lockTTL = ttl
		}
	}
}

// WithLogger configures a logger for the Manager and the editors it creates.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// WithEditorOptions are applied to every editor the Manager creates.
func WithEditorOptions(opts ...funnelfy.Option) Option {
	return func(m *Manager) {
		m.editorOpts = append(m.editorOpts, opts...)
	}
}

// NewManager creates a session manager saving templates into store.
func NewManager(store ports.DocumentStore, opts ...Option) *Manager {
	m := &Manager{
		store:    store,
		locks:    make(map[string]*lockEntry),
		sessions: make(map[string]*live),
		lockTTL:  DefaultLockTTL,
		logger:   logging.NewNop(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.logger == nil {
		m.logger = logging.NewNop()
	}
	return m
}

// Store returns the template store.
func (m *Manager) Store() ports.DocumentStore {
	return m.store
}

// Create starts a session editing doc and returns its id.
func (m *Manager) Create(ctx context.Context, doc domain.Document) (string, error) {
	id := uuid.NewString()
	s := &live{createdAt: m.now()}

	opts := append([]funnelfy.Option{}, m.editorOpts...)
	opts = append(opts,
		funnelfy.WithDocument(doc),
		funnelfy.WithLogger(m.logger.With("session_id", id)),
		funnelfy.WithSaveHandler(m.saveHandler(id, s)),
	)
	ed, err := funnelfy.New(opts...)
	if err != nil {
		return "", err
	}
	s.editor = ed

	m.mu.Lock()
	m.sessions[id] = s
	m.mu.Unlock()
	metrics.ActiveSessions.Inc()

	m.logger.Info("session created", "session_id", id, "template_id", doc.ID, "steps", len(doc.Nodes))
	return id, nil
}

// Open starts a session on a stored template.
func (m *Manager) Open(ctx context.Context, templateID string) (string, error) {
	doc, err := m.store.Load(ctx, templateID)
	if err != nil {
		return "", err
	}
	return m.Create(ctx, doc)
}

// With runs fn with exclusive access to the session's editor.
// Returns domain.ErrSessionNotFound when the session does not exist.
func (m *Manager) With(ctx context.Context, id string, fn func(context.Context, *funnelfy.Editor) error) error {
	return m.withSession(ctx, id, func(ctx context.Context, s *live) error {
		return fn(ctx, s.editor)
	})
}

// Save asks the session's editor to save and persists the result.
// The store assigns an id on the first save; later saves overwrite it.
func (m *Manager) Save(ctx context.Context, id string) (ports.Receipt, error) {
	var receipt ports.Receipt
	err := m.withSession(ctx, id, func(ctx context.Context, s *live) error {
		s.saveErr = nil
		s.editor.RequestSave(ctx)
		if s.saveErr != nil {
			return s.saveErr
		}
		receipt = s.receipt
		return nil
	})
	return receipt, err
}

// Delete ends a session. Stored templates are left alone.
func (m *Manager) Delete(ctx context.Context, id string) error {
	return m.withSession(ctx, id, func(ctx context.Context, s *live) error {
		m.mu.Lock()
		delete(m.sessions, id)
		m.mu.Unlock()
		metrics.ActiveSessions.Dec()
		m.logger.Info("session deleted", "session_id", id)
		return nil
	})
}

// List describes every live session, oldest first.
func (m *Manager) List(ctx context.Context) ([]Info, error) {
	m.mu.Lock()
	ids := make([]string, 0, len(m.sessions))
	for id := range m.sessions {
		ids = append(ids, id)
	}
	m.mu.Unlock()

	out := make([]Info, 0, len(ids))
	for _, id := range ids {
		err := m.withSession(ctx, id, func(ctx context.Context, s *live) error {
			doc := s.editor.Document()
			out = append(out, Info{ID: id, TemplateID: doc.ID, Name: doc.Name, Steps: len(doc.Nodes), CreatedAt: s.createdAt})
			return nil
		})
		if errors.Is(err, domain.ErrSessionNotFound) {
			continue // deleted meanwhile
		}
		if err != nil {
			return nil, err
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

// saveHandler persists save requests, whether they come from Save or the Ctrl/Cmd+S shortcut.
// It runs while the session lock is held.
func (m *Manager) saveHandler(id string, s *live) func(context.Context, domain.SaveRequest) {
	return func(ctx context.Context, req domain.SaveRequest) {
		receipt, err := m.store.Save(ctx, req.Document)
		if err != nil {
			m.logger.Error("failed to save template", "session_id", id, "err", err)
			s.saveErr = fmt.Errorf("failed to save template: %w", err)
			return
		}
		s.editor.SetDocumentID(receipt.ID)
		s.receipt = receipt
		m.logger.Info("template saved", "session_id", id, "template_id", receipt.ID)
	}
}

// acquire gets or creates a lock entry and increments its reference count.
// The caller MUST Lock the entry.mu, and then call release(id) after unlocking.
func (m *Manager) acquire(id string) *lockEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[id]
	if !exists {
		entry = &lockEntry{}
		m.locks[id] = entry
	}
	entry.refs++
	return entry
}

// release decrements the reference count and deletes the entry if it reaches zero.
func (m *Manager) release(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[id]
	if !exists {
		return
	}

	entry.refs--
	if entry.refs <= 0 {
		delete(m.locks, id)
	}
}

func (m *Manager) withSession(ctx context.Context, id string, fn func(context.Context, *live) error) error {
	entry := m.acquire(id)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		m.release(id)
	}()

	m.mu.Lock()
	s, ok := m.sessions[id]
	m.mu.Unlock()
	if !ok {
		return domain.ErrSessionNotFound
	}

	if m.locker != nil {
		unlock, err := m.locker.Lock(ctx, "session:"+id, m.lockTTL)
		if err != nil {
			return fmt.Errorf("failed to acquire distributed lock: %w", err)
		}
		defer func() {
			if err := unlock(ctx); err != nil {
				m.logger.Warn("Failed to release distributed lock (will expire via TTL)",
					"session_id", id,
					"err", err,
				)
			}
		}()
	}

	return fn(ctx, s)
}
