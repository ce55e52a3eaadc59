package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/euwesleysilv4/meu-app-digitfy-sub003/pkg/domain"
	"github.com/euwesleysilv4/meu-app-digitfy-sub003/pkg/ports"
	"github.com/google/uuid"
)

// record is the on-disk envelope of one document.
type record struct {
	SavedAt  time.Time       `json:"saved_at"`
	Document domain.Document `json:"document"`
}

// Store implements ports.DocumentStore using the local filesystem.
// It stores one JSON file per document in a configured directory.
type Store struct {
	BasePath string
}

// New creates a new Store with the given base path.
// If basePath is empty, it defaults to ".funnelfy/templates".
func New(basePath string) *Store {
	if basePath == "" {
		basePath = filepath.Join(".funnelfy", "templates")
	}
	return &Store{BasePath: basePath}
}

func (s *Store) path(id string) (string, error) {
	if id == "" {
		return "", fmt.Errorf("document id cannot be empty")
	}
	if strings.ContainsAny(id, `/\`) || strings.Contains(id, "..") {
		return "", fmt.Errorf("invalid document id %q", id)
	}
	return filepath.Join(s.BasePath, id+".json"), nil
}

// Save persists the document to a JSON file atomically.
// It writes to a temporary file first, syncs via fsync, and then renames it to the destination.
func (s *Store) Save(ctx context.Context, doc domain.Document) (ports.Receipt, error) {
	if doc.ID == "" {
		doc.ID = uuid.New().String()
	}
	destPath, err := s.path(doc.ID)
	if err != nil {
		return ports.Receipt{}, err
	}

	if err := os.MkdirAll(s.BasePath, 0o755); err != nil {
		return ports.Receipt{}, fmt.Errorf("failed to ensure template directory: %w", err)
	}

	rec := record{SavedAt: time.Now().UTC(), Document: doc}
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return ports.Receipt{}, fmt.Errorf("failed to marshal document: %w", err)
	}

	// Same directory, so the rename stays on one filesystem.
	tmpFile, err := os.CreateTemp(s.BasePath, "tmp-"+doc.ID+"-*.json")
	if err != nil {
		return ports.Receipt{}, fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return ports.Receipt{}, fmt.Errorf("failed to write to temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		return ports.Receipt{}, fmt.Errorf("failed to fsync temp file: %w", err)
	}
	// Windows cannot rename an open file.
	if err := tmpFile.Close(); err != nil {
		return ports.Receipt{}, fmt.Errorf("failed to close temp file: %w", err)
	}

	// On Windows, os.Rename fails if dest exists.
	if _, err := os.Stat(destPath); err == nil {
		if err := os.Remove(destPath); err != nil {
			return ports.Receipt{}, fmt.Errorf("failed to remove existing template for overwrite: %w", err)
		}
	}
	if err := os.Rename(tmpPath, destPath); err != nil {
		return ports.Receipt{}, fmt.Errorf("failed to rename temp file: %w", err)
	}

	return ports.Receipt{ID: doc.ID, SavedAt: rec.SavedAt}, nil
}

func (s *Store) read(id string) (record, error) {
	filePath, err := s.path(id)
	if err != nil {
		return record{}, err
	}
	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return record{}, domain.ErrDocumentNotFound
		}
		return record{}, fmt.Errorf("failed to read template file: %w", err)
	}
	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		return record{}, fmt.Errorf("failed to unmarshal template %s: %w", id, err)
	}
	rec.Document.ID = id
	return rec, nil
}

// Load retrieves the document from its JSON file.
func (s *Store) Load(ctx context.Context, id string) (domain.Document, error) {
	rec, err := s.read(id)
	if err != nil {
		return domain.Document{}, err
	}
	return rec.Document, nil
}

// Delete removes the document file.
func (s *Store) Delete(ctx context.Context, id string) error {
	filePath, err := s.path(id)
	if err != nil {
		return err
	}
	if err := os.Remove(filePath); err != nil {
		if os.IsNotExist(err) {
			return domain.ErrDocumentNotFound
		}
		return fmt.Errorf("failed to delete template file: %w", err)
	}
	return nil
}

// List returns a summary of every stored document, most recently saved first.
// Files that cannot be parsed are skipped.
func (s *Store) List(ctx context.Context) ([]ports.Summary, error) {
	entries, err := os.ReadDir(s.BasePath)
	if err != nil {
		if os.IsNotExist(err) {
			return []ports.Summary{}, nil
		}
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}

	out := []ports.Summary{}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || filepath.Ext(name) != ".json" || strings.HasPrefix(name, "tmp-") {
			continue
		}
		id := strings.TrimSuffix(name, ".json")
		rec, err := s.read(id)
		if err != nil {
			continue
		}
		out = append(out, ports.Summary{ID: id, Name: rec.Document.Name, Steps: len(rec.Document.Nodes), SavedAt: rec.SavedAt})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SavedAt.After(out[j].SavedAt) })
	return out, nil
}
