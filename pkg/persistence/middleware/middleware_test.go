package middleware_test

import (
	"context"
	"errors"
	"testing"

	"github.com/euwesleysilv4/meu-app-digitfy-sub003/pkg/adapters/memory"
	"github.com/euwesleysilv4/meu-app-digitfy-sub003/pkg/domain"
	"github.com/euwesleysilv4/meu-app-digitfy-sub003/pkg/persistence/middleware"
	"github.com/euwesleysilv4/meu-app-digitfy-sub003/pkg/ports"
)

func TestRedactionMiddleware_Masking(t *testing.T) {
	underlyingStore := memory.NewStore()
	// Mask emails and phone-like digit runs
	mw, err := middleware.NewRedactionMiddleware([]string{`[\w.+-]+@[\w-]+\.[\w.]+`, `\+?\d[\d -]{7,}\d`})
	if err != nil {
		t.Fatal(err)
	}
	secureStore := mw(underlyingStore)
	ctx := context.Background()

	doc := noted("call jane@acme.com or +55 11 99999-0000 tomorrow")
	doc.Nodes[1].Label = "owner: bob@acme.com"

	// 1. Save
	receipt, err := secureStore.Save(ctx, doc)
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// Verify the caller's document is NOT MODIFIED
	if doc.Nodes[0].Notes != "call jane@acme.com or +55 11 99999-0000 tomorrow" {
		t.Error("Middleware modified the original document")
	}

	// 2. Load from Underlying Store (Should be masked)
	stored, err := underlyingStore.Load(ctx, receipt.ID)
	if err != nil {
		t.Fatalf("Underlying load failed: %v", err)
	}
	if got := stored.Nodes[0].Notes; got != "call *** or *** tomorrow" {
		t.Errorf("Notes should be masked, got: %q", got)
	}
	if got := stored.Nodes[1].Label; got != "owner: ***" {
		t.Errorf("Label should be masked, got: %q", got)
	}
	if stored.Nodes[0].DisplayName != "Instagram" {
		t.Error("Names shouldn't be masked")
	}
}

func TestRedactionMiddleware_InvalidPattern(t *testing.T) {
	if _, err := middleware.NewRedactionMiddleware([]string{"("}); err == nil {
		t.Error("Expected an error for an invalid pattern")
	}
}

func TestValidationMiddleware(t *testing.T) {
	underlyingStore := memory.NewStore()
	store := middleware.NewValidationMiddleware()(underlyingStore)
	ctx := context.Background()

	cyclic := noted("")
	cyclic.Nodes[1].OutgoingConnections = []string{"ig"}
	if _, err := store.Save(ctx, cyclic); !errors.Is(err, domain.ErrInvalidDocument) {
		t.Fatalf("Expected ErrInvalidDocument, got %v", err)
	}
	list, _ := underlyingStore.List(ctx)
	if len(list) != 0 {
		t.Fatal("Invalid documents must not reach the backend")
	}

	if _, err := store.Save(ctx, noted("")); err != nil {
		t.Fatalf("Valid document rejected: %v", err)
	}
}

func TestChain_OrderAndContract(t *testing.T) {
	redact, _ := middleware.NewRedactionMiddleware([]string{"secret"})
	encrypt, _ := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: generateKey(t)})
	underlyingStore := memory.NewStore()

	// Redaction runs before encryption so masked text is what gets sealed.
	store := middleware.Chain(underlyingStore, middleware.NewValidationMiddleware(), redact, encrypt)

	ctx := context.Background()
	receipt, err := store.Save(ctx, noted("the secret plan"))
	if err != nil {
		t.Fatal(err)
	}
	loaded, err := store.Load(ctx, receipt.ID)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Nodes[0].Notes != "the *** plan" {
		t.Errorf("Expected redacted then decrypted notes, got %q", loaded.Nodes[0].Notes)
	}

	ports.RunDocumentStoreContract(t, store)
}
