package ports

import (
	"context"
	"time"

	"github.com/euwesleysilv4/meu-app-digitfy-sub003/pkg/domain"
)

// Receipt acknowledges a successful save.
type Receipt struct {
	ID      string    `json:"id"`
	SavedAt time.Time `json:"saved_at"`
}

// Summary describes a stored document without its nodes.
type Summary struct {
	ID      string    `json:"id"`
	Name    string    `json:"name"`
	Steps   int       `json:"steps"`
	SavedAt time.Time `json:"saved_at"`
}

// DocumentStore defines the interface for persisting funnel documents.
type DocumentStore interface {
	// Save persists doc. An empty doc.ID gets a fresh id; an existing id is overwritten.
	Save(ctx context.Context, doc domain.Document) (Receipt, error)

	// Load retrieves the document with the given id.
	// Returns domain.ErrDocumentNotFound if it does not exist.
	Load(ctx context.Context, id string) (domain.Document, error)

	// Delete removes a document.
	// Returns domain.ErrDocumentNotFound if it does not exist.
	Delete(ctx context.Context, id string) error

	// List returns a summary of every stored document, most recently saved first.
	List(ctx context.Context) ([]Summary, error)
}
