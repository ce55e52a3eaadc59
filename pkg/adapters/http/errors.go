package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/euwesleysilv4/meu-app-digitfy-sub003/pkg/domain"
	"github.com/euwesleysilv4/meu-app-digitfy-sub003/pkg/portable"
)

// ErrorResponse is the JSON envelope of every failed request.
type ErrorResponse struct {
	Error  string   `json:"error"`
	Fields []string `json:"fields,omitempty"`
}

// badRequest marks errors caused by a malformed request.
type badRequest struct{ err error }

func (b badRequest) Error() string { return b.err.Error() }
func (b badRequest) Unwrap() error { return b.err }

func malformed(err error) error { return badRequest{err: err} }

// statusFor maps an error onto a status code and the message shown to the client.
// Collaborator failures are not echoed back.
func statusFor(err error) (int, string) {
	var br badRequest
	switch {
	case errors.Is(err, domain.ErrSessionNotFound),
		errors.Is(err, domain.ErrDocumentNotFound),
		errors.Is(err, domain.ErrStepNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, domain.ErrCycle),
		errors.Is(err, domain.ErrSelfLoop),
		errors.Is(err, domain.ErrDuplicateConnection):
		return http.StatusConflict, err.Error()
	case errors.Is(err, domain.ErrInvalidDocument),
		errors.Is(err, domain.ErrUnknownKind),
		errors.Is(err, domain.ErrUnknownColor),
		errors.As(err, &br):
		return http.StatusBadRequest, err.Error()
	default:
		return http.StatusInternalServerError, "operation failed, try again"
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, msg := statusFor(err)
	level := slog.LevelDebug
	if status >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	s.logger.Log(r.Context(), level, "request failed", "path", r.URL.Path, "status", status, "err", err)
	resp := ErrorResponse{Error: msg}
	for _, fe := range portable.ValidationErrors(err) {
		resp.Fields = append(resp.Fields, fe.Error())
	}
	writeJSON(w, status, resp)
}
