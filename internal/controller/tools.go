package controller

import "fmt"

// Tool is the active interaction mode.
type Tool string

const (
	ToolSelect  Tool = "select"
	ToolMove    Tool = "move"
	ToolConnect Tool = "connect"
	ToolPan     Tool = "pan"
)

// Tools lists every tool in toolbar order.
var Tools = []Tool{ToolSelect, ToolMove, ToolConnect, ToolPan}

// ParseTool converts a string into a Tool.
func ParseTool(s string) (Tool, error) {
	for _, t := range Tools {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown tool %q", s)
}

// Tool returns the selected tool.
func (c *Controller) Tool() Tool { return c.tool }

// ActiveTool returns the tool pointer input is interpreted with: pan while space is held.
func (c *Controller) ActiveTool() Tool {
	if c.spaceHeld {
		return ToolPan
	}
	return c.tool
}

// SetTool switches tools. Any gesture in progress is discarded, the pending connection
// is dropped and the selection is cleared.
func (c *Controller) SetTool(t Tool) error {
	if _, err := ParseTool(string(t)); err != nil {
		return err
	}
	c.cancelGesture()
	c.pending = nil
	c.selection = nil
	c.tool = t
	return nil
}
