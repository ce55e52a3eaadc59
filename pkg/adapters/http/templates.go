package http

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"

	funnelfy "github.com/euwesleysilv4/meu-app-digitfy-sub003"
	"github.com/euwesleysilv4/meu-app-digitfy-sub003/pkg/domain"
	"github.com/euwesleysilv4/meu-app-digitfy-sub003/pkg/portable"
	"github.com/go-chi/chi/v5"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 4 << 20

// readDocument decodes a JSON or YAML portable document from the request body.
func readDocument(r *http.Request) (domain.Document, error) {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return domain.Document{}, malformed(fmt.Errorf("failed to read body: %w", err))
	}
	format := portable.FormatJSON
	if ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type")); ct == portable.FormatYAML.ContentType() || ct == "application/x-yaml" {
		format = portable.FormatYAML
	}
	return portable.Decode(format, data)
}

// ListTemplates handles GET /templates.
func (s *Server) ListTemplates(w http.ResponseWriter, r *http.Request) {
	list, err := s.Store.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// CreateTemplate handles POST /templates. The document is validated before it is stored.
func (s *Server) CreateTemplate(w http.ResponseWriter, r *http.Request) {
	doc, err := readDocument(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := portable.Validate(doc); err != nil {
		s.writeError(w, r, err)
		return
	}
	receipt, err := s.Store.Save(r.Context(), doc)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, receipt)
}

// GetTemplate handles GET /templates/{id}.
func (s *Server) GetTemplate(w http.ResponseWriter, r *http.Request) {
	doc, err := s.Store.Load(r.Context(), chi.URLParam(r, "templateID"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

// DeleteTemplate handles DELETE /templates/{id}.
func (s *Server) DeleteTemplate(w http.ResponseWriter, r *http.Request) {
	if err := s.Store.Delete(r.Context(), chi.URLParam(r, "templateID")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ExportTemplate handles GET /templates/{id}/export?format=json|yaml|mermaid|png.
func (s *Server) ExportTemplate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "templateID")
	doc, err := s.Store.Load(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts := []funnelfy.Option{funnelfy.WithDocument(doc), funnelfy.WithLogger(s.logger)}
	if s.capturer != nil {
		opts = append(opts, funnelfy.WithImageCapturer(s.capturer))
	}
	ed, err := funnelfy.New(opts...)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	format, out, err := export(r.Context(), ed, r.URL.Query().Get("format"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeAttachment(w, format, id, out)
}

// export encodes the editor's funnel in the requested format. Empty means JSON.
func export(ctx context.Context, ed *funnelfy.Editor, name string) (portable.Format, []byte, error) {
	format, err := portable.ParseFormat(name)
	if err != nil {
		return "", nil, malformed(err)
	}
	out, err := ed.Export(ctx, string(format))
	if err != nil {
		return "", nil, err
	}
	return format, out, nil
}

func writeAttachment(w http.ResponseWriter, format portable.Format, name string, out []byte) {
	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{
		"filename": name + format.Extension(),
	}))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(out)
}
