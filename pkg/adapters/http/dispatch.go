package http

import (
	"context"
	"fmt"

	funnelfy "github.com/euwesleysilv4/meu-app-digitfy-sub003"
	"github.com/euwesleysilv4/meu-app-digitfy-sub003/pkg/domain"
	"github.com/euwesleysilv4/meu-app-digitfy-sub003/pkg/graph"
	"github.com/mitchellh/mapstructure"
)

// EventRequest is the body of POST /sessions/{id}/events.
type EventRequest struct {
	Type    string         `json:"type"`
	Payload map[string]any `json:"payload"`
}

// CommandRequest is the body of POST /sessions/{id}/commands.
type CommandRequest struct {
	Op      string         `json:"op"`
	Payload map[string]any `json:"payload"`
}

// CommandResponse carries the view after the command and an op specific result.
type CommandResponse struct {
	Result any           `json:"result,omitempty"`
	View   funnelfy.View `json:"view"`
}

// EventResponse reports whether the editor consumed the input.
type EventResponse struct {
	Handled bool          `json:"handled"`
	View    funnelfy.View `json:"view"`
}

// decode maps a JSON payload onto out. Unknown keys are rejected.
func decode(payload map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      out,
		ErrorUnused: true,
		TagName:     "mapstructure",
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(payload); err != nil {
		return malformed(fmt.Errorf("invalid payload: %w", err))
	}
	return nil
}

// applyEvent forwards one raw input event to the editor.
func applyEvent(ctx context.Context, ed *funnelfy.Editor, req EventRequest) (bool, error) {
	switch req.Type {
	case "pointer_down", "pointer_move", "pointer_up":
		var ev funnelfy.PointerEvent
		if err := decode(req.Payload, &ev); err != nil {
			return false, err
		}
		switch req.Type {
		case "pointer_down":
			ed.PointerDown(ev)
		case "pointer_move":
			ed.PointerMove(ev)
		default:
			ed.PointerUp(ev)
		}
		return true, nil
	case "pointer_cancel":
		ed.PointerCancel()
		return true, nil
	case "key_down", "key_up":
		var ev funnelfy.KeyEvent
		if err := decode(req.Payload, &ev); err != nil {
			return false, err
		}
		if req.Type == "key_up" {
			return ed.KeyUp(ev), nil
		}
		return ed.KeyDown(ctx, ev), nil
	}
	return false, malformed(fmt.Errorf("unknown event type %q", req.Type))
}

type toolPayload struct {
	Tool string
}

type zoomPayload struct {
	Zoom float64
}

type viewportPayload struct {
	Width, Height float64
}

type addStepPayload struct {
	Kind string
	X, Y float64
}

type edgePayload struct {
	Source, Target string
}

type alignPayload struct {
	Edge string
}

type recolorPayload struct {
	Color string
	IDs   []string `mapstructure:"ids"`
}

type editPayload struct {
	ID                string `mapstructure:"id"`
	funnelfy.StepEdit `mapstructure:",squash"`
}

type selectPayload struct {
	IDs []string `mapstructure:"ids"`
}

type renamePayload struct {
	Name string
}

// applyCommand runs one editor operation and returns its result.
func applyCommand(ed *funnelfy.Editor, req CommandRequest) (any, error) {
	switch req.Op {
	case "set_tool":
		var p toolPayload
		if err := decode(req.Payload, &p); err != nil {
			return nil, err
		}
		t, err := funnelfy.ParseTool(p.Tool)
		if err != nil {
			return nil, malformed(err)
		}
		return nil, ed.SetTool(t)
	case "set_zoom":
		var p zoomPayload
		if err := decode(req.Payload, &p); err != nil {
			return nil, err
		}
		return map[string]float64{"zoom": ed.SetZoom(p.Zoom)}, nil
	case "set_viewport":
		var p viewportPayload
		if err := decode(req.Payload, &p); err != nil {
			return nil, err
		}
		ed.SetViewport(p.Width, p.Height)
		return nil, nil
	case "add_step":
		var p addStepPayload
		if err := decode(req.Payload, &p); err != nil {
			return nil, err
		}
		kind, err := domain.ParseKind(p.Kind)
		if err != nil {
			return nil, err
		}
		id, err := ed.AddStep(kind, domain.Point{X: p.X, Y: p.Y})
		if err != nil {
			return nil, err
		}
		return map[string]string{"id": id}, nil
	case "connect", "disconnect":
		var p edgePayload
		if err := decode(req.Payload, &p); err != nil {
			return nil, err
		}
		if req.Op == "connect" {
			return nil, ed.Connect(p.Source, p.Target)
		}
		return map[string]bool{"removed": ed.Disconnect(p.Source, p.Target)}, nil
	case "duplicate":
		return map[string][]string{"ids": ed.DuplicateSelection()}, nil
	case "align":
		var p alignPayload
		if err := decode(req.Payload, &p); err != nil {
			return nil, err
		}
		edge, err := graph.ParseEdge(p.Edge)
		if err != nil {
			return nil, malformed(err)
		}
		moved, err := ed.AlignSelection(edge)
		if err != nil {
			return nil, err
		}
		return map[string]bool{"aligned": moved}, nil
	case "recolor":
		var p recolorPayload
		if err := decode(req.Payload, &p); err != nil {
			return nil, err
		}
		color, err := domain.ParseColor(p.Color)
		if err != nil {
			return nil, err
		}
		return nil, ed.Recolor(color, p.IDs...)
	case "edit":
		var p editPayload
		if err := decode(req.Payload, &p); err != nil {
			return nil, err
		}
		return nil, ed.EditStep(p.ID, p.StepEdit)
	case "select":
		var p selectPayload
		if err := decode(req.Payload, &p); err != nil {
			return nil, err
		}
		ed.Select(p.IDs...)
		return nil, nil
	case "rename":
		var p renamePayload
		if err := decode(req.Payload, &p); err != nil {
			return nil, err
		}
		ed.Rename(p.Name)
		return nil, nil
	case "delete_selection":
		return map[string]int{"deleted": ed.DeleteSelection()}, nil
	case "undo":
		return map[string]bool{"changed": ed.Undo()}, nil
	case "redo":
		return map[string]bool{"changed": ed.Redo()}, nil
	}
	return nil, malformed(fmt.Errorf("unknown command %q", req.Op))
}
