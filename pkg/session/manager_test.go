package session_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	funnelfy "github.com/euwesleysilv4/meu-app-digitfy-sub003"
	"github.com/euwesleysilv4/meu-app-digitfy-sub003/pkg/adapters/memory"
	"github.com/euwesleysilv4/meu-app-digitfy-sub003/pkg/domain"
	"github.com/euwesleysilv4/meu-app-digitfy-sub003/pkg/ports"
	"github.com/euwesleysilv4/meu-app-digitfy-sub003/pkg/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// SlowStore simulates latency to provoke race conditions if locking is missing.
type SlowStore struct {
	*memory.Store
	fail error
}

func (s *SlowStore) Save(ctx context.Context, doc domain.Document) (ports.Receipt, error) {
	time.Sleep(5 * time.Millisecond) // Simulate IO
	if s.fail != nil {
		return ports.Receipt{}, s.fail
	}
	return s.Store.Save(ctx, doc)
}

func TestManager_SerializesAccess(t *testing.T) {
	manager := session.NewManager(memory.NewStore())
	ctx := context.Background()
	id, err := manager.Create(ctx, domain.Document{Name: "race"})
	require.NoError(t, err)

	var wg sync.WaitGroup
	writers := 20
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			err := manager.With(ctx, id, func(ctx context.Context, ed *funnelfy.Editor) error {
				_, err := ed.AddStep(domain.KindWebPage, domain.Point{X: float64(n * 10)})
				return err
			})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	err = manager.With(ctx, id, func(ctx context.Context, ed *funnelfy.Editor) error {
		assert.Len(t, ed.Document().Nodes, writers)
		return nil
	})
	require.NoError(t, err)
}

func TestManager_Save(t *testing.T) {
	store := &SlowStore{Store: memory.NewStore()}
	manager := session.NewManager(store)
	ctx := context.Background()

	id, err := manager.Create(ctx, domain.Document{Name: "Launch"})
	require.NoError(t, err)

	first, err := manager.Save(ctx, id)
	require.NoError(t, err)
	require.NotEmpty(t, first.ID)

	// The assigned id sticks, so the next save overwrites the same template.
	require.NoError(t, manager.With(ctx, id, func(ctx context.Context, ed *funnelfy.Editor) error {
		assert.Equal(t, first.ID, ed.Document().ID)
		_, err := ed.AddStep(domain.KindSocial, domain.Point{})
		return err
	}))
	second, err := manager.Save(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	stored, err := store.Load(ctx, first.ID)
	require.NoError(t, err)
	assert.Len(t, stored.Nodes, 1)

	list, err := store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestManager_SaveShortcutPersists(t *testing.T) {
	store := memory.NewStore()
	manager := session.NewManager(store)
	ctx := context.Background()

	id, err := manager.Create(ctx, domain.Document{Name: "Shortcut"})
	require.NoError(t, err)

	var templateID string
	require.NoError(t, manager.With(ctx, id, func(ctx context.Context, ed *funnelfy.Editor) error {
		ed.KeyDown(ctx, funnelfy.KeyEvent{Key: "s", Modifiers: funnelfy.Modifiers{Ctrl: true}})
		templateID = ed.Document().ID
		return nil
	}))
	require.NotEmpty(t, templateID)

	doc, err := store.Load(ctx, templateID)
	require.NoError(t, err)
	assert.Equal(t, "Shortcut", doc.Name)
}

func TestManager_SaveFailure(t *testing.T) {
	boom := errors.New("disk full")
	manager := session.NewManager(&SlowStore{Store: memory.NewStore(), fail: boom})
	ctx := context.Background()

	id, err := manager.Create(ctx, domain.Document{})
	require.NoError(t, err)

	_, err = manager.Save(ctx, id)
	assert.ErrorIs(t, err, boom)

	// The session survives a failed save.
	assert.NoError(t, manager.With(ctx, id, func(context.Context, *funnelfy.Editor) error { return nil }))
}

func TestManager_OpenTemplate(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	receipt, err := store.Save(ctx, domain.Document{
		Name:  "Stored",
		Nodes: []domain.NodeRecord{{ID: "a", Kind: domain.KindSocial, Scale: 1}},
	})
	require.NoError(t, err)

	manager := session.NewManager(store)
	id, err := manager.Open(ctx, receipt.ID)
	require.NoError(t, err)

	list, err := manager.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, id, list[0].ID)
	assert.Equal(t, receipt.ID, list[0].TemplateID)
	assert.Equal(t, "Stored", list[0].Name)
	assert.Equal(t, 1, list[0].Steps)

	_, err = manager.Open(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrDocumentNotFound)
}

func TestManager_NotFound(t *testing.T) {
	manager := session.NewManager(memory.NewStore())
	ctx := context.Background()

	err := manager.With(ctx, "nope", func(context.Context, *funnelfy.Editor) error { return nil })
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	_, err = manager.Save(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	assert.ErrorIs(t, manager.Delete(ctx, "nope"), domain.ErrSessionNotFound)

	id, err := manager.Create(ctx, domain.Document{})
	require.NoError(t, err)
	require.NoError(t, manager.Delete(ctx, id))
	assert.ErrorIs(t, manager.Delete(ctx, id), domain.ErrSessionNotFound)
}

func TestManager_InvalidDocument(t *testing.T) {
	manager := session.NewManager(memory.NewStore())
	_, err := manager.Create(context.Background(), domain.Document{
		Nodes: []domain.NodeRecord{{ID: "a", Kind: "banner"}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidDocument)

	list, err := manager.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}

type countingLocker struct {
	mu       sync.Mutex
	keys     []string
	unlocked int
	err      error
}

func (l *countingLocker) Lock(_ context.Context, key string, _ time.Duration) (ports.UnlockFunc, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.err != nil {
		return nil, l.err
	}
	l.keys = append(l.keys, key)
	return func(context.Context) error {
		l.mu.Lock()
		defer l.mu.Unlock()
		l.unlocked++
		return nil
	}, nil
}

func TestManager_DistributedLock(t *testing.T) {
	locker := &countingLocker{}
	manager := session.NewManager(memory.NewStore(), session.WithLocker(locker))
	ctx := context.Background()

	id, err := manager.Create(ctx, domain.Document{})
	require.NoError(t, err)
	require.NoError(t, manager.With(ctx, id, func(context.Context, *funnelfy.Editor) error { return nil }))

	assert.Equal(t, []string{"session:" + id}, locker.keys)
	assert.Equal(t, 1, locker.unlocked)

	locker.err = errors.New("redis down")
	err = manager.With(ctx, id, func(context.Context, *funnelfy.Editor) error { return nil })
	assert.ErrorIs(t, err, locker.err)
}
