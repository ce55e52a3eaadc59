package graph

import (
	"fmt"
	"math"

	"github.com/euwesleysilv4/meu-app-digitfy-sub003/pkg/domain"
	"github.com/euwesleysilv4/meu-app-digitfy-sub003/pkg/geometry"
	"github.com/google/uuid"
)

// IDFunc allocates identifiers for new steps.
type IDFunc func() string

// Store holds the steps of one funnel.
type Store struct {
	steps    map[string]*domain.Step
	order    []string
	newID    IDFunc
	tunables domain.Tunables
}

// Option configures the Store.
type Option func(*Store)

// WithIDFunc overrides the id allocator (uuid v4 by default).
func WithIDFunc(fn IDFunc) Option {
	return func(s *Store) {
		s.newID = fn
	}
}

// WithTunables sets the duplicate offset and scale bounds.
func WithTunables(t domain.Tunables) Option {
	return func(s *Store) {
		s.tunables = t.Normalize()
	}
}

// NewStore creates an empty store.
func NewStore(opts ...Option) *Store {
	s := &Store{
		steps:    make(map[string]*domain.Step),
		newID:    func() string { return uuid.New().String() },
		tunables: domain.DefaultTunables(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Len returns the number of steps.
func (s *Store) Len() int { return len(s.order) }

// Step returns the live step with the given id. Callers must not retain it across mutations.
func (s *Store) Step(id string) (*domain.Step, bool) {
	st, ok := s.steps[id]
	return st, ok
}

// Steps returns the live steps in insertion order (which is also draw order).
func (s *Store) Steps() []*domain.Step {
	out := make([]*domain.Step, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.steps[id])
	}
	return out
}

// IDs returns the step ids in insertion order.
func (s *Store) IDs() []string {
	return append([]string{}, s.order...)
}

// Clone returns a deep copy of the store.
func (s *Store) Clone() *Store {
	c := &Store{
		steps:    make(map[string]*domain.Step, len(s.steps)),
		order:    append([]string{}, s.order...),
		newID:    s.newID,
		tunables: s.tunables,
	}
	for id, st := range s.steps {
		c.steps[id] = st.Clone()
	}
	return c
}

// Reset replaces the whole graph with copies of steps. Connections are taken as given.
func (s *Store) Reset(steps []*domain.Step) {
	s.steps = make(map[string]*domain.Step, len(steps))
	s.order = s.order[:0]
	for _, st := range steps {
		if _, dup := s.steps[st.ID]; dup {
			continue
		}
		s.steps[st.ID] = st.Clone()
		s.order = append(s.order, st.ID)
	}
}

// AddNode creates a step of the given kind at pos and returns its id.
func (s *Store) AddNode(kind domain.Kind, pos domain.Point) (string, error) {
	if !kind.Valid() {
		return "", fmt.Errorf("%w: %q", domain.ErrUnknownKind, kind)
	}
	id := s.newID()
	s.insert(domain.NewStep(id, kind, pos))
	return id, nil
}

// AddStep inserts a copy of a fully formed step (used when hydrating documents).
func (s *Store) AddStep(st *domain.Step) error {
	if !st.Kind.Valid() {
		return fmt.Errorf("%w: %q", domain.ErrUnknownKind, st.Kind)
	}
	if _, exists := s.steps[st.ID]; exists {
		return fmt.Errorf("step %q already exists", st.ID)
	}
	c := st.Clone()
	if c.Connections == nil {
		c.Connections = []string{}
	}
	s.insert(c)
	return nil
}

func (s *Store) insert(st *domain.Step) {
	s.steps[st.ID] = st
	s.order = append(s.order, st.ID)
}

// MoveNode sets the position of one step.
func (s *Store) MoveNode(id string, pos domain.Point) error {
	st, ok := s.steps[id]
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrStepNotFound, id)
	}
	st.Position = pos
	return nil
}

// MoveNodes translates every listed step by delta, preserving their relative offsets.
// Unknown ids are ignored.
func (s *Store) MoveNodes(ids []string, delta domain.Point) {
	for _, id := range unique(ids) {
		if st, ok := s.steps[id]; ok {
			st.Position = st.Position.Add(delta)
		}
	}
}

// ResizeNode sets the scale of a step, clamped to the configured bounds.
func (s *Store) ResizeNode(id string, scale float64) error {
	st, ok := s.steps[id]
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrStepNotFound, id)
	}
	st.Scale = s.tunables.ClampScale(scale)
	return nil
}

// Connect adds the edge source→target.
// It is rejected for self-loops, existing edges, unknown ids, and when target can already
// reach source (the new edge would close a loop).
func (s *Store) Connect(source, target string) error {
	src, ok := s.steps[source]
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrStepNotFound, source)
	}
	if _, ok := s.steps[target]; !ok {
		return fmt.Errorf("%w: %s", domain.ErrStepNotFound, target)
	}
	if source == target {
		return domain.ErrSelfLoop
	}
	if src.ConnectsTo(target) {
		return domain.ErrDuplicateConnection
	}
	if s.Reaches(target, source) {
		return domain.ErrCycle
	}
	src.Connections = append(src.Connections, target)
	return nil
}

// Disconnect removes the edge source→target if present.
func (s *Store) Disconnect(source, target string) {
	if st, ok := s.steps[source]; ok {
		st.Connections = without(st.Connections, target)
	}
}

// Reaches reports whether to is reachable from from by following connections.
// A step always reaches itself.
func (s *Store) Reaches(from, to string) bool {
	seen := make(map[string]bool)
	var visit func(id string) bool
	visit = func(id string) bool {
		if id == to {
			return true
		}
		if seen[id] {
			return false
		}
		seen[id] = true
		st, ok := s.steps[id]
		if !ok {
			return false
		}
		for _, next := range st.Connections {
			if visit(next) {
				return true
			}
		}
		return false
	}
	return visit(from)
}

// RemoveNode deletes a step and strips it from every other step's connections.
func (s *Store) RemoveNode(id string) error {
	if _, ok := s.steps[id]; !ok {
		return fmt.Errorf("%w: %s", domain.ErrStepNotFound, id)
	}
	delete(s.steps, id)
	s.order = without(s.order, id)
	for _, st := range s.steps {
		st.Connections = without(st.Connections, id)
	}
	return nil
}

// Duplicate clones each listed step with a fresh id, offset by the duplicate offset.
// Clones start disconnected, whatever the originals were linked to.
func (s *Store) Duplicate(ids []string) []string {
	var out []string
	for _, id := range unique(ids) {
		st, ok := s.steps[id]
		if !ok {
			continue
		}
		c := st.Clone()
		c.ID = s.newID()
		c.Position = st.Position.Add(s.tunables.DuplicateOffset)
		c.Connections = []string{}
		s.insert(c)
		out = append(out, c.ID)
	}
	return out
}

// Edge names the side or axis used by Align.
type Edge string

const (
	AlignLeft   Edge = "left"
	AlignCenter Edge = "center"
	AlignRight  Edge = "right"
	AlignTop    Edge = "top"
	AlignMiddle Edge = "middle"
	AlignBottom Edge = "bottom"
)

// ParseEdge converts a string into an alignment Edge.
func ParseEdge(v string) (Edge, error) {
	switch e := Edge(v); e {
	case AlignLeft, AlignCenter, AlignRight, AlignTop, AlignMiddle, AlignBottom:
		return e, nil
	}
	return "", fmt.Errorf("unknown alignment %q", v)
}

// Align snaps the listed steps to one shared coordinate computed from their boxes:
// the minimum for left/top, the midpoint of the extent for center/middle and the
// maximum for right/bottom. Only the aligned axis changes. Fewer than two known
// steps is a no-op; the return value reports whether anything was aligned.
func (s *Store) Align(ids []string, edge Edge) (bool, error) {
	if _, err := ParseEdge(string(edge)); err != nil {
		return false, err
	}
	var sel []*domain.Step
	for _, id := range unique(ids) {
		if st, ok := s.steps[id]; ok {
			sel = append(sel, st)
		}
	}
	if len(sel) < 2 {
		return false, nil
	}

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, st := range sel {
		b := geometry.BoxOf(st)
		switch edge {
		case AlignLeft, AlignCenter, AlignRight:
			lo = math.Min(lo, b.X)
			hi = math.Max(hi, b.Right())
		default:
			lo = math.Min(lo, b.Y)
			hi = math.Max(hi, b.Bottom())
		}
	}
	mid := (lo + hi) / 2

	for _, st := range sel {
		b := geometry.BoxOf(st)
		switch edge {
		case AlignLeft:
			st.Position.X = lo
		case AlignCenter:
			st.Position.X = origin(mid, b.W/2)
		case AlignRight:
			st.Position.X = origin(hi, b.W)
		case AlignTop:
			st.Position.Y = lo
		case AlignMiddle:
			st.Position.Y = origin(mid, b.H/2)
		case AlignBottom:
			st.Position.Y = origin(hi, b.H)
		}
	}
	return true, nil
}

// origin returns x such that x+extent reads back as exactly target, stepping
// one ulp at a time past the rounding of target-extent.
func origin(target, extent float64) float64 {
	x := target - extent
	for i := 0; i < 16 && x+extent != target; i++ {
		if x+extent < target {
			x = math.Nextafter(x, math.Inf(1))
		} else {
			x = math.Nextafter(x, math.Inf(-1))
		}
	}
	return x
}

// Recolor changes the color scheme of a step.
func (s *Store) Recolor(id string, c domain.Color) error {
	if !c.Valid() {
		return fmt.Errorf("%w: %q", domain.ErrUnknownColor, c)
	}
	return s.update(id, func(st *domain.Step) { st.Color = c })
}

// Rename sets the display name of a step.
func (s *Store) Rename(id, name string) error {
	return s.update(id, func(st *domain.Step) { st.DisplayName = name })
}

// SetLabel sets the optional label override of a step.
func (s *Store) SetLabel(id, label string) error {
	return s.update(id, func(st *domain.Step) { st.Label = label })
}

// SetNotes sets the free-text notes of a step.
func (s *Store) SetNotes(id, notes string) error {
	return s.update(id, func(st *domain.Step) { st.Notes = notes })
}

// SetIconTag changes the icon tag of a step.
func (s *Store) SetIconTag(id, tag string) error {
	return s.update(id, func(st *domain.Step) { st.IconTag = tag })
}

// SetStats replaces the user-entered stats of a step. nil clears them.
func (s *Store) SetStats(id string, stats *domain.Stats) error {
	return s.update(id, func(st *domain.Step) { st.Stats = stats.Clone() })
}

func (s *Store) update(id string, fn func(*domain.Step)) error {
	st, ok := s.steps[id]
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrStepNotFound, id)
	}
	fn(st)
	return nil
}

func without(list []string, id string) []string {
	out := list[:0]
	for _, v := range list {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

func unique(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
