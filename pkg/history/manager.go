package history

import (
	"encoding/json"
	"fmt"

	"github.com/euwesleysilv4/meu-app-digitfy-sub003/pkg/domain"
)

// Manager is a cursor over an ordered list of snapshots.
// Index 0 holds the document the editor was opened with.
type Manager struct {
	entries [][]byte
	cursor  int
	limit   int
}

// Option configures the Manager.
type Option func(*Manager)

// WithLimit caps the number of retained snapshots. Zero or less means unbounded.
func WithLimit(n int) Option {
	return func(m *Manager) {
		if n > 0 {
			m.limit = n
		}
	}
}

// New creates a manager seeded with the initial document.
func New(initial domain.Document, opts ...Option) (*Manager, error) {
	m := &Manager{}
	for _, opt := range opts {
		opt(m)
	}
	if err := m.Reset(initial); err != nil {
		return nil, err
	}
	return m, nil
}

// Reset discards every entry and starts over from doc.
func (m *Manager) Reset(doc domain.Document) error {
	snap, err := encode(doc)
	if err != nil {
		return err
	}
	m.entries = [][]byte{snap}
	m.cursor = 0
	return nil
}

// Record appends doc after the cursor, dropping any redo entries.
// When encoding fails the history is left untouched.
func (m *Manager) Record(doc domain.Document) error {
	snap, err := encode(doc)
	if err != nil {
		return err
	}
	m.entries = append(m.entries[:m.cursor+1], snap)
	m.cursor++
	if m.limit > 0 && len(m.entries) > m.limit {
		drop := len(m.entries) - m.limit
		m.entries = append([][]byte{}, m.entries[drop:]...)
		m.cursor -= drop
	}
	return nil
}

// Undo moves the cursor back and returns the snapshot now current.
// At the first entry it returns false.
func (m *Manager) Undo() (domain.Document, bool) {
	if !m.CanUndo() {
		return domain.Document{}, false
	}
	m.cursor--
	return m.current()
}

// Redo moves the cursor forward and returns the snapshot now current.
// At the last entry it returns false.
func (m *Manager) Redo() (domain.Document, bool) {
	if !m.CanRedo() {
		return domain.Document{}, false
	}
	m.cursor++
	return m.current()
}

// Current returns the snapshot at the cursor.
func (m *Manager) Current() (domain.Document, bool) {
	if len(m.entries) == 0 {
		return domain.Document{}, false
	}
	return m.current()
}

// CanUndo reports whether there is an entry before the cursor.
func (m *Manager) CanUndo() bool { return m.cursor > 0 }

// CanRedo reports whether there is an entry after the cursor.
func (m *Manager) CanRedo() bool { return m.cursor < len(m.entries)-1 }

// Len returns the number of retained snapshots.
func (m *Manager) Len() int { return len(m.entries) }

// Cursor returns the index of the current snapshot.
func (m *Manager) Cursor() int { return m.cursor }

func (m *Manager) current() (domain.Document, bool) {
	var doc domain.Document
	if err := json.Unmarshal(m.entries[m.cursor], &doc); err != nil {
		// Entries are only ever produced by encode.
		return domain.Document{}, false
	}
	return doc, true
}

func encode(doc domain.Document) ([]byte, error) {
	b, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to snapshot document: %w", err)
	}
	return b, nil
}
