package dsl

import (
	"fmt"

	"github.com/euwesleysilv4/meu-app-digitfy-sub003/pkg/domain"
	"github.com/euwesleysilv4/meu-app-digitfy-sub003/pkg/portable"
)

// Builder manages the funnel construction. Steps keep the order they were added in.
type Builder struct {
	name  string
	order []string
	steps map[string]*StepBuilder
}

// New creates a new funnel builder.
func New(name string) *Builder {
	return &Builder{
		name:  name,
		steps: make(map[string]*StepBuilder),
	}
}

// Add creates a new step in the funnel with the kind's default name and scale.
// If the step already exists, it returns the existing builder unchanged.
func (b *Builder) Add(id string, kind domain.Kind) *StepBuilder {
	if sb, ok := b.steps[id]; ok {
		return sb
	}
	sb := &StepBuilder{
		rec: domain.NodeRecord{
			ID:                  id,
			Kind:                kind,
			DisplayName:         kind.DefaultName(),
			Scale:               domain.DefaultScale,
			OutgoingConnections: []string{},
			Color:               domain.ColorDefault,
		},
		builder: b,
	}
	b.steps[id] = sb
	b.order = append(b.order, id)
	return sb
}

// Build validates and returns the document.
func (b *Builder) Build() (domain.Document, error) {
	doc := domain.Document{Name: b.name, Nodes: make([]domain.NodeRecord, 0, len(b.order))}
	for _, id := range b.order {
		doc.Nodes = append(doc.Nodes, b.steps[id].rec)
	}
	if err := portable.Validate(doc); err != nil {
		return domain.Document{}, fmt.Errorf("failed to build funnel %q: %w", b.name, err)
	}
	return doc.Clone(), nil
}

// MustBuild is Build for funnels known to be valid. It panics on error.
func (b *Builder) MustBuild() domain.Document {
	doc, err := b.Build()
	if err != nil {
		panic(err)
	}
	return doc
}
