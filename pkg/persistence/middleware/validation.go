package middleware

import (
	"context"

	"github.com/euwesleysilv4/meu-app-digitfy-sub003/pkg/domain"
	"github.com/euwesleysilv4/meu-app-digitfy-sub003/pkg/portable"
	"github.com/euwesleysilv4/meu-app-digitfy-sub003/pkg/ports"
)

type validationMiddleware struct {
	passthrough
}

// NewValidationMiddleware rejects documents that could not be loaded back into an editor.
func NewValidationMiddleware() Middleware {
	return func(next ports.DocumentStore) ports.DocumentStore {
		return &validationMiddleware{passthrough{next}}
	}
}

func (m *validationMiddleware) Save(ctx context.Context, doc domain.Document) (ports.Receipt, error) {
	if err := portable.Validate(doc); err != nil {
		return ports.Receipt{}, err
	}
	return m.DocumentStore.Save(ctx, doc)
}
