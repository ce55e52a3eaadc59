package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	funnelfy "github.com/euwesleysilv4/meu-app-digitfy-sub003"
	"github.com/euwesleysilv4/meu-app-digitfy-sub003/pkg/domain"
	"github.com/euwesleysilv4/meu-app-digitfy-sub003/pkg/portable"
	"github.com/go-chi/chi/v5"
)

// CreateSessionRequest is the optional body of POST /sessions.
// TemplateID opens a stored template; otherwise Document (or an empty funnel) is edited.
type CreateSessionRequest struct {
	TemplateID string           `json:"template_id,omitempty"`
	Document   *domain.Document `json:"document,omitempty"`
}

// SessionResponse identifies a session and carries its first view.
type SessionResponse struct {
	ID   string        `json:"id"`
	View funnelfy.View `json:"view"`
}

func decodeBody(r *http.Request, v any) error {
	err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(v)
	if err != nil && !errors.Is(err, io.EOF) {
		return malformed(fmt.Errorf("invalid request body: %w", err))
	}
	return nil
}

// ListSessions handles GET /sessions.
func (s *Server) ListSessions(w http.ResponseWriter, r *http.Request) {
	list, err := s.Sessions.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// CreateSession handles POST /sessions.
func (s *Server) CreateSession(w http.ResponseWriter, r *http.Request) {
	var body CreateSessionRequest
	if err := decodeBody(r, &body); err != nil {
		s.writeError(w, r, err)
		return
	}

	var (
		id  string
		err error
	)
	switch {
	case body.TemplateID != "":
		id, err = s.Sessions.Open(r.Context(), body.TemplateID)
	case body.Document != nil:
		id, err = s.Sessions.Create(r.Context(), *body.Document)
	default:
		id, err = s.Sessions.Create(r.Context(), domain.Document{})
	}
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	resp := SessionResponse{ID: id}
	if err := s.Sessions.With(r.Context(), id, func(_ context.Context, ed *funnelfy.Editor) error {
		resp.View = ed.View()
		return nil
	}); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Location", "/sessions/"+id)
	writeJSON(w, http.StatusCreated, resp)
}

// GetSession handles GET /sessions/{id}.
func (s *Server) GetSession(w http.ResponseWriter, r *http.Request) {
	var view funnelfy.View
	err := s.Sessions.With(r.Context(), chi.URLParam(r, "sessionID"), func(_ context.Context, ed *funnelfy.Editor) error {
		view = ed.View()
		return nil
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// DeleteSession handles DELETE /sessions/{id}.
func (s *Server) DeleteSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "sessionID")
	if err := s.Sessions.Delete(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.Streams.Close(id)
	w.WriteHeader(http.StatusNoContent)
}

// PostEvent handles POST /sessions/{id}/events with one raw pointer or keyboard event.
func (s *Server) PostEvent(w http.ResponseWriter, r *http.Request) {
	var body EventRequest
	if err := decodeBody(r, &body); err != nil {
		s.writeError(w, r, err)
		return
	}

	id := chi.URLParam(r, "sessionID")
	var resp EventResponse
	err := s.Sessions.With(r.Context(), id, func(ctx context.Context, ed *funnelfy.Editor) error {
		handled, err := applyEvent(ctx, ed, body)
		if err != nil {
			return err
		}
		resp = EventResponse{Handled: handled, View: ed.View()}
		return nil
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.publish(id, resp.View)
	writeJSON(w, http.StatusOK, resp)
}

// PostCommand handles POST /sessions/{id}/commands.
func (s *Server) PostCommand(w http.ResponseWriter, r *http.Request) {
	var body CommandRequest
	if err := decodeBody(r, &body); err != nil {
		s.writeError(w, r, err)
		return
	}

	id := chi.URLParam(r, "sessionID")
	var resp CommandResponse
	err := s.Sessions.With(r.Context(), id, func(_ context.Context, ed *funnelfy.Editor) error {
		result, err := applyCommand(ed, body)
		if err != nil {
			return err
		}
		resp = CommandResponse{Result: result, View: ed.View()}
		return nil
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.publish(id, resp.View)
	writeJSON(w, http.StatusOK, resp)
}

// SaveSession handles POST /sessions/{id}/save.
func (s *Server) SaveSession(w http.ResponseWriter, r *http.Request) {
	receipt, err := s.Sessions.Save(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, receipt)
}

// ExportSession handles GET /sessions/{id}/export?format=.
func (s *Server) ExportSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "sessionID")
	var (
		format portable.Format
		out    []byte
	)
	err := s.Sessions.With(r.Context(), id, func(ctx context.Context, ed *funnelfy.Editor) error {
		var err error
		format, out, err = export(ctx, ed, r.URL.Query().Get("format"))
		return err
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeAttachment(w, format, id, out)
}
