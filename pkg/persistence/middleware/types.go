// Package middleware provides DocumentStore decorators applied before documents
// reach a backend: validation, note redaction and note encryption.
package middleware

import "github.com/euwesleysilv4/meu-app-digitfy-sub003/pkg/ports"

// Middleware allows wrapping a DocumentStore to add behavior.
type Middleware func(ports.DocumentStore) ports.DocumentStore

// Chain wraps store so the first middleware is the outermost.
func Chain(store ports.DocumentStore, mws ...Middleware) ports.DocumentStore {
	for i := len(mws) - 1; i >= 0; i-- {
		store = mws[i](store)
	}
	return store
}

// passthrough forwards every call; embedders override what they change.
type passthrough struct {
	ports.DocumentStore
}
