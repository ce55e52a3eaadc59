package controller

import "strings"

// KeyEvent is a key press or release.
// Key follows the DOM KeyboardEvent.key naming ("Delete", "Escape", " ", "z").
type KeyEvent struct {
	Key       string `json:"key" mapstructure:"key"`
	Modifiers `mapstructure:",squash"`
	// InTextInput marks events coming from an editable field; shortcuts are suppressed.
	InTextInput bool `json:"in_text_input,omitempty" mapstructure:"in_text_input"`
}

func (e KeyEvent) isSpace() bool {
	return e.Key == " " || strings.EqualFold(e.Key, "space") || strings.EqualFold(e.Key, "spacebar")
}

// KeyDown applies a keyboard shortcut. It reports whether the key was handled so the
// host can suppress its default action.
func (c *Controller) KeyDown(ev KeyEvent) bool {
	if ev.InTextInput {
		return false
	}
	if ev.isSpace() {
		c.spaceHeld = true
		return true
	}

	key := strings.ToLower(ev.Key)
	if ev.Command() {
		switch key {
		case "z":
			if ev.Shift {
				c.Redo()
			} else {
				c.Undo()
			}
			return true
		case "y":
			c.Redo()
			return true
		case "d":
			c.DuplicateSelection()
			return true
		case "a":
			c.SelectAll()
			return true
		case "s":
			if c.hooks.OnSaveShortcut != nil {
				c.hooks.OnSaveShortcut()
			}
			return true
		}
		return false
	}

	switch key {
	case "delete", "backspace":
		return c.DeleteSelection() > 0
	case "escape":
		c.cancelGesture()
		c.pending = nil
		c.selection = nil
		return true
	}
	return false
}

// KeyUp ends a space-held pan. The gesture in progress, if any, finishes normally.
func (c *Controller) KeyUp(ev KeyEvent) bool {
	if ev.isSpace() && c.spaceHeld {
		c.spaceHeld = false
		return true
	}
	return false
}
