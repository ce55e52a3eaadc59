package middleware

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/euwesleysilv4/meu-app-digitfy-sub003/pkg/domain"
	"github.com/euwesleysilv4/meu-app-digitfy-sub003/pkg/ports"
)

// envelopePrefix marks an encrypted note.
const envelopePrefix = "enc:v1:"

// EncryptionConfig holds the keys for encryption and decryption.
type EncryptionConfig struct {
	// ActiveKey is the key used for encrypting new data.
	// Must be 32 bytes for AES-256.
	ActiveKey []byte

	// FallbackKeys is a list of old keys to try when decryption fails.
	// This enables zero-downtime key rotation.
	FallbackKeys [][]byte
}

type encryptionMiddleware struct {
	passthrough
	config EncryptionConfig
}

// NewEncryptionMiddleware creates a middleware that encrypts step notes using AES-GCM.
// Structure, names and positions stay readable so listing and validation keep working.
func NewEncryptionMiddleware(config EncryptionConfig) (Middleware, error) {
	if len(config.ActiveKey) != 32 {
		return nil, errors.New("active key must be 32 bytes (AES-256)")
	}
	return func(next ports.DocumentStore) ports.DocumentStore {
		return &encryptionMiddleware{passthrough: passthrough{next}, config: config}
	}, nil
}

func (m *encryptionMiddleware) Save(ctx context.Context, doc domain.Document) (ports.Receipt, error) {
	cloned := doc.Clone()
	for i, n := range cloned.Nodes {
		if n.Notes == "" {
			continue
		}
		ciphertext, err := encrypt([]byte(n.Notes), m.config.ActiveKey)
		if err != nil {
			return ports.Receipt{}, fmt.Errorf("failed to encrypt notes of %s: %w", n.ID, err)
		}
		cloned.Nodes[i].Notes = envelopePrefix + base64.StdEncoding.EncodeToString(ciphertext)
	}
	return m.DocumentStore.Save(ctx, cloned)
}

// Load decrypts notes. Notes without an envelope were stored before encryption
// was enabled and are returned as they are.
func (m *encryptionMiddleware) Load(ctx context.Context, id string) (domain.Document, error) {
	doc, err := m.DocumentStore.Load(ctx, id)
	if err != nil {
		return domain.Document{}, err
	}
	for i, n := range doc.Nodes {
		encoded, ok := strings.CutPrefix(n.Notes, envelopePrefix)
		if !ok {
			continue
		}
		ciphertext, err := base64.StdEncoding.DecodeString(encoded)
		if err != nil {
			return domain.Document{}, fmt.Errorf("failed to decode ciphertext base64: %w", err)
		}
		plainText, err := decryptWithRotation(ciphertext, m.config.ActiveKey, m.config.FallbackKeys)
		if err != nil {
			return domain.Document{}, fmt.Errorf("failed to decrypt notes of %s: %w", n.ID, err)
		}
		doc.Nodes[i].Notes = string(plainText)
	}
	return doc, nil
}

// Helpers

func encrypt(plaintext []byte, key []byte) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}

	return gcm.Seal(nonce, nonce, plaintext, nil), nil
}

func decryptWithRotation(ciphertext []byte, activeKey []byte, fallbackKeys [][]byte) ([]byte, error) {
	// Try active key first
	if plain, err := decrypt(ciphertext, activeKey); err == nil {
		return plain, nil
	}

	// Try fallbacks in order
	for _, key := range fallbackKeys {
		if plain, err := decrypt(ciphertext, key); err == nil {
			return plain, nil
		}
	}

	return nil, errors.New("decryption failed with all available keys")
}

func decrypt(ciphertext []byte, key []byte) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	if len(ciphertext) < gcm.NonceSize() {
		return nil, errors.New("ciphertext too short")
	}

	nonce := ciphertext[:gcm.NonceSize()]
	return gcm.Open(nil, nonce, ciphertext[gcm.NonceSize():], nil)
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
