package dsl

import "github.com/euwesleysilv4/meu-app-digitfy-sub003/pkg/domain"

// StepBuilder provides a fluent API for configuring a step.
type StepBuilder struct {
	rec     domain.NodeRecord
	builder *Builder
}

// Name sets the display name.
func (s *StepBuilder) Name(name string) *StepBuilder {
	s.rec.DisplayName = name
	return s
}

// At places the step's top-left corner.
func (s *StepBuilder) At(x, y float64) *StepBuilder {
	s.rec.Position = domain.Point{X: x, Y: y}
	return s
}

// Scale sets the size multiplier. Out-of-range values are clamped when the funnel loads.
func (s *StepBuilder) Scale(f float64) *StepBuilder {
	s.rec.Scale = f
	return s
}

// Icon sets the icon tag. An empty tag is inferred from the kind and name on load.
func (s *StepBuilder) Icon(tag string) *StepBuilder {
	s.rec.IconTag = tag
	return s
}

// Color sets the palette entry.
func (s *StepBuilder) Color(c domain.Color) *StepBuilder {
	s.rec.Color = c
	return s
}

// Label sets the caption shown instead of the name.
func (s *StepBuilder) Label(label string) *StepBuilder {
	s.rec.Label = label
	return s
}

// Notes sets free-form notes.
func (s *StepBuilder) Notes(notes string) *StepBuilder {
	s.rec.Notes = notes
	return s
}

// Stats records user-entered metrics. Rate is a fraction, e.g. 0.12 for 12%.
func (s *StepBuilder) Stats(views, conversions, rate float64) *StepBuilder {
	s.rec.Stats = &domain.Stats{Views: &views, Conversions: &conversions, Rate: &rate}
	return s
}

// To adds connections to the target steps, which may be added later.
func (s *StepBuilder) To(targets ...string) *StepBuilder {
	for _, t := range targets {
		if !s.connectsTo(t) {
			s.rec.OutgoingConnections = append(s.rec.OutgoingConnections, t)
		}
	}
	return s
}

// Add starts the next step, so a whole funnel reads as one chain.
func (s *StepBuilder) Add(id string, kind domain.Kind) *StepBuilder {
	return s.builder.Add(id, kind)
}

// Build finishes the chain. See Builder.Build.
func (s *StepBuilder) Build() (domain.Document, error) {
	return s.builder.Build()
}

// MustBuild finishes the chain and panics on an invalid funnel.
func (s *StepBuilder) MustBuild() domain.Document {
	return s.builder.MustBuild()
}

func (s *StepBuilder) connectsTo(id string) bool {
	for _, t := range s.rec.OutgoingConnections {
		if t == id {
			return true
		}
	}
	return false
}
