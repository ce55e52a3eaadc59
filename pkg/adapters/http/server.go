package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	funnelfy "github.com/euwesleysilv4/meu-app-digitfy-sub003"
	"github.com/euwesleysilv4/meu-app-digitfy-sub003/internal/logging"
	"github.com/euwesleysilv4/meu-app-digitfy-sub003/internal/metrics"
	"github.com/euwesleysilv4/meu-app-digitfy-sub003/pkg/ports"
	"github.com/euwesleysilv4/meu-app-digitfy-sub003/pkg/session"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server exposes templates and live editor sessions over HTTP.
type Server struct {
	Sessions *session.Manager
	Store    ports.DocumentStore
	Streams  *StreamManager

	capturer       ports.ImageCapturer
	allowedOrigins []string
	logger         *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithAllowedOrigins restricts CORS. Defaults to any origin.
func WithAllowedOrigins(origins ...string) Option {
	return func(s *Server) {
		if len(origins) > 0 {
			s.allowedOrigins = origins
		}
	}
}

// WithImageCapturer sets the capturer used for PNG template exports.
func WithImageCapturer(c ports.ImageCapturer) Option {
	return func(s *Server) {
		s.capturer = c
	}
}

// NewHandler creates the HTTP handler. Templates are read from and saved to the
// session manager's store.
func NewHandler(sessions *session.Manager, opts ...Option) http.Handler {
	s := &Server{
		Sessions:       sessions,
		Store:          sessions.Store(),
		Streams:        NewStreamManager(),
		allowedOrigins: []string{"*"},
		logger:         logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(s.instrument)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/templates", func(r chi.Router) {
		r.Get("/", s.ListTemplates)
		r.Post("/", s.CreateTemplate)
		r.Get("/{templateID}", s.GetTemplate)
		r.Delete("/{templateID}", s.DeleteTemplate)
		r.Get("/{templateID}/export", s.ExportTemplate)
	})

	r.Route("/sessions", func(r chi.Router) {
		r.Get("/", s.ListSessions)
		r.Post("/", s.CreateSession)
		r.Get("/{sessionID}", s.GetSession)
		r.Delete("/{sessionID}", s.DeleteSession)
		r.Post("/{sessionID}/events", s.PostEvent)
		r.Post("/{sessionID}/commands", s.PostCommand)
		r.Post("/{sessionID}/save", s.SaveSession)
		r.Get("/{sessionID}/export", s.ExportSession)
		r.Get("/{sessionID}/stream", s.SubscribeSession)
	})

	return r
}

// instrument logs each request and feeds the HTTP collectors, labelled by route pattern.
func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		elapsed := time.Since(start)
		metrics.HTTPRequests.WithLabelValues(route, strconv.Itoa(status)).Inc()
		metrics.HTTPDuration.WithLabelValues(route).Observe(float64(elapsed.Microseconds()) / 1000)

		s.logger.Debug("request served",
			"method", r.Method,
			"route", route,
			"status", status,
			"duration", elapsed,
			"request_id", chimiddleware.GetReqID(r.Context()),
		)
	})
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"app":     "funnelfy-http",
		"version": strings.TrimSpace(funnelfy.Version),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response encode failed", "err", err)
	}
}
