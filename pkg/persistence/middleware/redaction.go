package middleware

import (
	"context"
	"fmt"
	"regexp"

	"github.com/euwesleysilv4/meu-app-digitfy-sub003/pkg/domain"
	"github.com/euwesleysilv4/meu-app-digitfy-sub003/pkg/ports"
)

// Mask replaces every redacted match.
const Mask = "***"

type redactionMiddleware struct {
	passthrough
	patterns []*regexp.Regexp
}

// NewRedactionMiddleware masks text matching any pattern in step notes and labels
// before they are stored, e.g. lead emails pasted into a note.
func NewRedactionMiddleware(patternStrings []string) (Middleware, error) {
	patterns := make([]*regexp.Regexp, len(patternStrings))
	for i, p := range patternStrings {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid redaction pattern %q: %w", p, err)
		}
		patterns[i] = re
	}
	return func(next ports.DocumentStore) ports.DocumentStore {
		return &redactionMiddleware{passthrough: passthrough{next}, patterns: patterns}
	}, nil
}

func (m *redactionMiddleware) Save(ctx context.Context, doc domain.Document) (ports.Receipt, error) {
	// Clone so the caller's in-memory document keeps the original text.
	cloned := doc.Clone()
	for i := range cloned.Nodes {
		cloned.Nodes[i].Notes = m.mask(cloned.Nodes[i].Notes)
		cloned.Nodes[i].Label = m.mask(cloned.Nodes[i].Label)
	}
	return m.DocumentStore.Save(ctx, cloned)
}

func (m *redactionMiddleware) mask(s string) string {
	if s == "" {
		return s
	}
	for _, p := range m.patterns {
		s = p.ReplaceAllString(s, Mask)
	}
	return s
}
