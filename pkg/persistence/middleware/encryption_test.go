package middleware_test

import (
	"context"
	"crypto/rand"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/euwesleysilv4/meu-app-digitfy-sub003/pkg/adapters/memory"
	"github.com/euwesleysilv4/meu-app-digitfy-sub003/pkg/domain"
	"github.com/euwesleysilv4/meu-app-digitfy-sub003/pkg/persistence/middleware"
)

func generateKey(t *testing.T) []byte {
	k := make([]byte, 32)
	if _, err := io.ReadFull(rand.Reader, k); err != nil {
		t.Fatal(err)
	}
	return k
}

func noted(notes string) domain.Document {
	return domain.Document{
		Name: "Launch",
		Nodes: []domain.NodeRecord{
			{ID: "ig", Kind: domain.KindSocial, DisplayName: "Instagram", Scale: 1, OutgoingConnections: []string{"lp"}, Notes: notes},
			{ID: "lp", Kind: domain.KindWebPage, DisplayName: "Landing", Scale: 1, OutgoingConnections: []string{}},
		},
	}
}

func TestEncryptionMiddleware_Roundtrip(t *testing.T) {
	// Setup
	underlyingStore := memory.NewStore()
	mw, err := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: generateKey(t)})
	if err != nil {
		t.Fatal(err)
	}
	secureStore := mw(underlyingStore)
	ctx := context.Background()

	// 1. Save
	receipt, err := secureStore.Save(ctx, noted("client: ACME, budget 10k"))
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// 2. Verify Underlying Store directly (Should be encrypted)
	stored, err := underlyingStore.Load(ctx, receipt.ID)
	if err != nil {
		t.Fatalf("Underlying load failed: %v", err)
	}
	if strings.Contains(stored.Nodes[0].Notes, "ACME") {
		t.Fatalf("Expected notes to be hidden, found: %v", stored.Nodes[0].Notes)
	}
	if !strings.HasPrefix(stored.Nodes[0].Notes, "enc:v1:") {
		t.Fatal("Expected an encrypted envelope")
	}
	if stored.Nodes[1].Notes != "" {
		t.Errorf("Empty notes should stay empty, got %q", stored.Nodes[1].Notes)
	}
	if stored.Name != "Launch" || stored.Nodes[0].OutgoingConnections[0] != "lp" {
		t.Error("Structure should stay readable")
	}

	// 3. Load via Middleware (Should be decrypted)
	loaded, err := secureStore.Load(ctx, receipt.ID)
	if err != nil {
		t.Fatalf("Load via middleware failed: %v", err)
	}
	if loaded.Nodes[0].Notes != "client: ACME, budget 10k" {
		t.Errorf("Expected original notes, got %v", loaded.Nodes[0].Notes)
	}
}

func TestEncryptionMiddleware_KeyRotation(t *testing.T) {
	underlyingStore := memory.NewStore()
	ctx := context.Background()
	oldKey, newKey := generateKey(t), generateKey(t)

	// 1. Save with the old key
	oldMw, _ := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: oldKey})
	receipt, err := oldMw(underlyingStore).Save(ctx, noted("rotated"))
	if err != nil {
		t.Fatal(err)
	}

	// 2. Load with the new key and the old one as fallback
	newMw, _ := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{
		ActiveKey:    newKey,
		FallbackKeys: [][]byte{oldKey},
	})
	loaded, err := newMw(underlyingStore).Load(ctx, receipt.ID)
	if err != nil {
		t.Fatalf("Load with fallback key failed: %v", err)
	}
	if loaded.Nodes[0].Notes != "rotated" {
		t.Errorf("Expected 'rotated', got %q", loaded.Nodes[0].Notes)
	}

	// 3. Without the fallback the note cannot be read
	strictMw, _ := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: newKey})
	if _, err := strictMw(underlyingStore).Load(ctx, receipt.ID); err == nil {
		t.Error("Expected decryption to fail without the old key")
	}
}

func TestEncryptionMiddleware_PlainNotesPassThrough(t *testing.T) {
	underlyingStore := memory.NewStore()
	ctx := context.Background()
	receipt, err := underlyingStore.Save(ctx, noted("written before encryption"))
	if err != nil {
		t.Fatal(err)
	}

	mw, _ := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: generateKey(t)})
	loaded, err := mw(underlyingStore).Load(ctx, receipt.ID)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Nodes[0].Notes != "written before encryption" {
		t.Errorf("Plain notes should load unchanged, got %q", loaded.Nodes[0].Notes)
	}
}

func TestEncryptionMiddleware_InvalidKey(t *testing.T) {
	if _, err := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: []byte("short")}); err == nil {
		t.Error("Expected an error for a short key")
	}
}

func TestEncryptionMiddleware_NotFound(t *testing.T) {
	mw, _ := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: generateKey(t)})
	_, err := mw(memory.NewStore()).Load(context.Background(), "ghost")
	if !errors.Is(err, domain.ErrDocumentNotFound) {
		t.Errorf("Expected ErrDocumentNotFound, got %v", err)
	}
}
