package controller

// Selection returns the selected step ids in selection order.
func (c *Controller) Selection() []string {
	return append([]string{}, c.selection...)
}

// IsSelected reports whether id is part of the selection.
func (c *Controller) IsSelected(id string) bool {
	for _, s := range c.selection {
		if s == id {
			return true
		}
	}
	return false
}

// Select replaces the selection with the known ids among ids.
func (c *Controller) Select(ids ...string) {
	c.selection = nil
	for _, id := range ids {
		if _, ok := c.store.Step(id); ok && !c.IsSelected(id) {
			c.selection = append(c.selection, id)
		}
	}
}

// SelectAll selects every step.
func (c *Controller) SelectAll() {
	c.selection = c.store.IDs()
}

// ClearSelection empties the selection.
func (c *Controller) ClearSelection() {
	c.selection = nil
}

// pick applies a click on a step: shift adds it, a plain click replaces the selection
// unless the step is already selected (so a group can be dragged).
func (c *Controller) pick(id string, additive bool) {
	switch {
	case c.IsSelected(id):
	case additive:
		c.selection = append(c.selection, id)
	default:
		c.selection = []string{id}
	}
}

// prune drops ids that are no longer in the graph.
func (c *Controller) prune() {
	kept := c.selection[:0]
	for _, id := range c.selection {
		if _, ok := c.store.Step(id); ok {
			kept = append(kept, id)
		}
	}
	c.selection = kept
	if len(c.selection) == 0 {
		c.selection = nil
	}
	if c.pending != nil {
		if _, ok := c.store.Step(c.pending.source); !ok {
			c.pending = nil
		}
	}
}
