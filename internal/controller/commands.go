package controller

import (
	"errors"
	"fmt"

	"github.com/euwesleysilv4/meu-app-digitfy-sub003/pkg/domain"
	"github.com/euwesleysilv4/meu-app-digitfy-sub003/pkg/graph"
	"github.com/euwesleysilv4/meu-app-digitfy-sub003/pkg/portable"
)

// StepEdit is a partial update of a step's editable fields. Nil fields are left alone.
type StepEdit struct {
	DisplayName *string       `json:"displayName,omitempty" mapstructure:"displayName"`
	Label       *string       `json:"label,omitempty" mapstructure:"label"`
	Notes       *string       `json:"notes,omitempty" mapstructure:"notes"`
	IconTag     *string       `json:"iconTag,omitempty" mapstructure:"iconTag"`
	Color       *domain.Color `json:"color,omitempty" mapstructure:"color"`
	Stats       *domain.Stats `json:"stats,omitempty" mapstructure:"stats"`
	// ClearStats removes the stats block; it wins over Stats.
	ClearStats bool `json:"clearStats,omitempty" mapstructure:"clearStats"`
}

func (e StepEdit) empty() bool {
	return e.DisplayName == nil && e.Label == nil && e.Notes == nil && e.IconTag == nil &&
		e.Color == nil && e.Stats == nil && !e.ClearStats
}

// AddStep drops a new step of kind at a viewport position and selects it.
func (c *Controller) AddStep(kind domain.Kind, screen domain.Point) (string, error) {
	id, err := c.store.AddNode(kind, c.ToCanvas(screen))
	if err != nil {
		return "", err
	}
	st, _ := c.store.Step(id)
	if err := c.store.SetIconTag(id, iconFor(st)); err != nil {
		return "", err
	}
	c.selection = []string{id}
	c.commit("add")
	return id, nil
}

// Connect links source to target. Rejections are returned and nothing is recorded.
func (c *Controller) Connect(source, target string) error {
	if err := c.store.Connect(source, target); err != nil {
		c.reject(err)
		return err
	}
	c.commit("connect")
	return nil
}

// Disconnect removes the edge source→target. It reports whether an edge was removed.
func (c *Controller) Disconnect(source, target string) bool {
	st, ok := c.store.Step(source)
	if !ok || !st.ConnectsTo(target) {
		return false
	}
	c.store.Disconnect(source, target)
	c.commit("disconnect")
	return true
}

// DeleteSelection removes every selected step as one undoable action and returns
// how many steps were removed.
func (c *Controller) DeleteSelection() int {
	removed := 0
	for _, id := range c.selection {
		if err := c.store.RemoveNode(id); err == nil {
			removed++
		}
	}
	c.selection = nil
	c.prune()
	if removed > 0 {
		c.commit("delete")
	}
	return removed
}

// DuplicateSelection clones the selection and selects the clones.
func (c *Controller) DuplicateSelection() []string {
	ids := c.store.Duplicate(c.selection)
	if len(ids) == 0 {
		return nil
	}
	c.selection = append([]string{}, ids...)
	c.commit("duplicate")
	return ids
}

// AlignSelection aligns the selected steps on edge. It reports whether anything moved.
func (c *Controller) AlignSelection(edge graph.Edge) (bool, error) {
	ok, err := c.store.Align(c.selection, edge)
	if err != nil || !ok {
		return false, err
	}
	c.commit("align")
	return true, nil
}

// Recolor paints every listed step, or the selection when ids is empty.
func (c *Controller) Recolor(color domain.Color, ids ...string) error {
	if !color.Valid() {
		return fmt.Errorf("%w: %q", domain.ErrUnknownColor, color)
	}
	if len(ids) == 0 {
		ids = c.selection
	}
	for _, id := range ids {
		if _, ok := c.store.Step(id); !ok {
			return fmt.Errorf("%w: %s", domain.ErrStepNotFound, id)
		}
	}
	if len(ids) == 0 {
		return nil
	}
	for _, id := range ids {
		_ = c.store.Recolor(id, color)
	}
	c.commit("recolor")
	return nil
}

// Edit applies a partial update to one step as a single undoable action.
func (c *Controller) Edit(id string, e StepEdit) error {
	if _, ok := c.store.Step(id); !ok {
		return fmt.Errorf("%w: %s", domain.ErrStepNotFound, id)
	}
	if e.empty() {
		return nil
	}
	if e.Color != nil && !e.Color.Valid() {
		return fmt.Errorf("%w: %q", domain.ErrUnknownColor, *e.Color)
	}
	if e.DisplayName != nil {
		_ = c.store.Rename(id, *e.DisplayName)
	}
	if e.Label != nil {
		_ = c.store.SetLabel(id, *e.Label)
	}
	if e.Notes != nil {
		_ = c.store.SetNotes(id, *e.Notes)
	}
	if e.IconTag != nil {
		tag := *e.IconTag
		if tag == "" {
			st, _ := c.store.Step(id)
			tag = iconFor(st)
		}
		_ = c.store.SetIconTag(id, tag)
	}
	if e.Color != nil {
		_ = c.store.Recolor(id, *e.Color)
	}
	switch {
	case e.ClearStats:
		_ = c.store.SetStats(id, nil)
	case e.Stats != nil:
		_ = c.store.SetStats(id, e.Stats)
	}
	c.commit("edit")
	return nil
}

// Undo restores the previous snapshot. It reports whether anything changed.
func (c *Controller) Undo() bool {
	doc, ok := c.history.Undo()
	if !ok {
		return false
	}
	c.restore(doc)
	return true
}

// Redo restores the next snapshot. It reports whether anything changed.
func (c *Controller) Redo() bool {
	doc, ok := c.history.Redo()
	if !ok {
		return false
	}
	c.restore(doc)
	return true
}

// Load replaces the graph with doc and starts a fresh history.
func (c *Controller) Load(doc domain.Document) error {
	view, err := portable.FromPortable(doc, c.storeOptions()...)
	if err != nil {
		return err
	}
	c.cancelGesture()
	c.pending = nil
	c.selection = nil
	c.store.Reset(view.Store.Steps())
	c.docID = doc.ID
	c.name = doc.Name
	if err := c.history.Reset(c.Document()); err != nil {
		return errors.Join(domain.ErrInvalidDocument, err)
	}
	return nil
}

// Rename changes the funnel name. It is not part of the undo history.
func (c *Controller) Rename(name string) { c.name = name }

func (c *Controller) restore(doc domain.Document) {
	steps := make([]*domain.Step, 0, len(doc.Nodes))
	for _, n := range doc.Nodes {
		steps = append(steps, portable.Step(n))
	}
	c.cancelGesture()
	c.store.Reset(steps)
	c.prune()
}
