package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	funnelfy "github.com/euwesleysilv4/meu-app-digitfy-sub003"
	"github.com/euwesleysilv4/meu-app-digitfy-sub003/internal/config"
	httpAdapter "github.com/euwesleysilv4/meu-app-digitfy-sub003/pkg/adapters/http"
	"github.com/euwesleysilv4/meu-app-digitfy-sub003/pkg/adapters/mcp"
	"github.com/euwesleysilv4/meu-app-digitfy-sub003/pkg/session"
)

const shutdownTimeout = 5 * time.Second

// NewHTTPHandler wires the session manager and HTTP API over backend.
func NewHTTPHandler(cfg config.Config, backend *Backend, logger *slog.Logger) http.Handler {
	capturer := NewCapturer(cfg.Export)

	sessionOpts := []session.Option{
		session.WithLogger(logger),
		session.WithEditorOptions(
			funnelfy.WithTunables(cfg.Editor),
			funnelfy.WithImageCapturer(capturer),
		),
	}
	if backend.Locker != nil {
		sessionOpts = append(sessionOpts, session.WithLocker(backend.Locker), session.WithLockTTL(cfg.Redis.LockTTL))
	}
	sessions := session.NewManager(backend.Store, sessionOpts...)

	return httpAdapter.NewHandler(sessions,
		httpAdapter.WithLogger(logger),
		httpAdapter.WithAllowedOrigins(cfg.Server.AllowedOrigins...),
		httpAdapter.WithImageCapturer(capturer),
	)
}

// Serve runs the HTTP API until ctx is cancelled, then drains in-flight requests.
func Serve(ctx context.Context, cfg config.Config, logger *slog.Logger, out io.Writer) error {
	backend, err := OpenBackend(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := backend.Close(); err != nil {
			logger.Warn("Failed to close store", "err", err)
		}
	}()

	srv := &http.Server{
		Addr:              net.JoinHostPort("", strconv.Itoa(cfg.Server.Port)),
		Handler:           NewHTTPHandler(cfg, backend, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		printSystemMessage(out, "FunnelFy server listening on %s (store: %s)", srv.Addr, cfg.Store.Driver)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		if sc, ok := ctx.(*SignalContext); ok && sc.Signal() != nil {
			logger.Info("Shutdown requested", "signal", sc.Signal().String())
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Graceful shutdown did not complete", "timeout", shutdownTimeout, "err", err)
			return srv.Close()
		}
		printSystemMessage(out, "FunnelFy server stopped gracefully")
		return nil
	}
}

// ServeMCP runs the MCP adapter over stdio or SSE until the transport ends or ctx is cancelled.
func ServeMCP(ctx context.Context, cfg config.Config, logger *slog.Logger, transport string, port int) error {
	backend, err := OpenBackend(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := backend.Close(); err != nil {
			logger.Warn("Failed to close store", "err", err)
		}
	}()

	srv := mcp.NewServer(backend.Store,
		mcp.WithLogger(logger),
		mcp.WithImageCapturer(NewCapturer(cfg.Export)),
	)

	switch transport {
	case "stdio":
		logger.Info("Starting FunnelFy MCP Server (Stdio)")
		return srv.ServeStdio()
	case "sse":
		logger.Info("Starting FunnelFy MCP Server (SSE)", "port", port)
		if err := srv.ServeSSE(ctx, port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		logger.Info("MCP Server stopped gracefully")
		return nil
	}
	return fmt.Errorf("unknown transport: %s. Supported: stdio, sse", transport)
}
