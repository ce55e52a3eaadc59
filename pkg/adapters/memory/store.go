package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/euwesleysilv4/meu-app-digitfy-sub003/pkg/domain"
	"github.com/euwesleysilv4/meu-app-digitfy-sub003/pkg/ports"
	"github.com/google/uuid"
)

type entry struct {
	doc     domain.Document
	savedAt time.Time
}

// Store implements ports.DocumentStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]entry
	mu   sync.RWMutex
	now  func() time.Time
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]entry),
		now:  time.Now,
	}
}

// Save persists a copy of the document in memory.
func (s *Store) Save(ctx context.Context, doc domain.Document) (ports.Receipt, error) {
	copied := doc.Clone()
	if copied.ID == "" {
		copied.ID = uuid.New().String()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	e := entry{doc: copied, savedAt: s.now()}
	s.data[copied.ID] = e
	return ports.Receipt{ID: copied.ID, SavedAt: e.savedAt}, nil
}

// Load retrieves a copy of the document so callers can't mutate stored state.
func (s *Store) Load(ctx context.Context, id string) (domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.data[id]
	if !ok {
		return domain.Document{}, domain.ErrDocumentNotFound
	}
	return e.doc.Clone(), nil
}

// Delete removes the document.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.data[id]; !ok {
		return domain.ErrDocumentNotFound
	}
	delete(s.data, id)
	return nil
}

// List returns stored documents, most recently saved first.
func (s *Store) List(ctx context.Context) ([]ports.Summary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]ports.Summary, 0, len(s.data))
	for id, e := range s.data {
		out = append(out, ports.Summary{ID: id, Name: e.doc.Name, Steps: len(e.doc.Nodes), SavedAt: e.savedAt})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SavedAt.Equal(out[j].SavedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].SavedAt.After(out[j].SavedAt)
	})
	return out, nil
}
