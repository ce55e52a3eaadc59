package portable

import (
	"fmt"

	"github.com/euwesleysilv4/meu-app-digitfy-sub003/pkg/domain"
	"github.com/euwesleysilv4/meu-app-digitfy-sub003/pkg/graph"
	"github.com/euwesleysilv4/meu-app-digitfy-sub003/pkg/icons"
)

// View is a hydrated document: the live graph plus the glyph resolved for every step.
type View struct {
	Name   string
	Store  *graph.Store
	Glyphs map[string]icons.Glyph
}

// ToPortable flattens steps into a document. Slices and stats are copied.
func ToPortable(name string, steps []*domain.Step) domain.Document {
	doc := domain.Document{Name: name, Nodes: make([]domain.NodeRecord, 0, len(steps))}
	for _, st := range steps {
		doc.Nodes = append(doc.Nodes, Record(st))
	}
	return doc
}

// Record converts one step into its portable form.
func Record(st *domain.Step) domain.NodeRecord {
	return domain.NodeRecord{
		ID:                  st.ID,
		Kind:                st.Kind,
		DisplayName:         st.DisplayName,
		Position:            st.Position,
		Scale:               st.Scale,
		IconTag:             st.IconTag,
		OutgoingConnections: append([]string{}, st.Connections...),
		Color:               st.Color,
		Label:               st.Label,
		Notes:               st.Notes,
		Stats:               st.Stats.Clone(),
	}
}

// FromPortable validates doc and rebuilds the live graph from it.
// Missing icon tags are inferred from the kind, id and name; unknown tags resolve to
// the generic glyph. A zero scale means the default scale.
func FromPortable(doc domain.Document, opts ...graph.Option) (*View, error) {
	if err := Validate(doc); err != nil {
		return nil, err
	}
	store := graph.NewStore(opts...)
	glyphs := make(map[string]icons.Glyph, len(doc.Nodes))
	for _, n := range doc.Nodes {
		st := Step(n)
		if err := store.AddStep(st); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidDocument, err)
		}
		glyphs[st.ID] = icons.Resolve(st.IconTag)
	}
	// Clamp through the store so configured bounds apply.
	for _, st := range store.Steps() {
		_ = store.ResizeNode(st.ID, st.Scale)
	}
	return &View{Name: doc.Name, Store: store, Glyphs: glyphs}, nil
}

// Step converts one record into a step, filling defaults for absent fields.
func Step(n domain.NodeRecord) *domain.Step {
	st := &domain.Step{
		ID:          n.ID,
		Kind:        n.Kind,
		DisplayName: n.DisplayName,
		Position:    n.Position,
		Scale:       n.Scale,
		IconTag:     n.IconTag,
		Connections: append([]string{}, n.OutgoingConnections...),
		Color:       n.Color,
		Label:       n.Label,
		Notes:       n.Notes,
		Stats:       n.Stats.Clone(),
	}
	if st.DisplayName == "" {
		st.DisplayName = st.Kind.DefaultName()
	}
	if st.Scale == 0 {
		st.Scale = domain.DefaultScale
	}
	if st.Color == "" {
		st.Color = domain.ColorDefault
	}
	if st.IconTag == "" {
		st.IconTag = icons.Infer(st.Kind, st.ID, st.DisplayName)
	}
	return st
}

// Glyphs resolves the glyph of every step.
func Glyphs(steps []*domain.Step) map[string]icons.Glyph {
	out := make(map[string]icons.Glyph, len(steps))
	for _, st := range steps {
		out[st.ID] = icons.Resolve(st.IconTag)
	}
	return out
}
