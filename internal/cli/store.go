package cli

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"log/slog"

	"github.com/euwesleysilv4/meu-app-digitfy-sub003/internal/config"
	"github.com/euwesleysilv4/meu-app-digitfy-sub003/pkg/adapters/file"
	"github.com/euwesleysilv4/meu-app-digitfy-sub003/pkg/adapters/memory"
	"github.com/euwesleysilv4/meu-app-digitfy-sub003/pkg/adapters/raster"
	"github.com/euwesleysilv4/meu-app-digitfy-sub003/pkg/adapters/redis"
	"github.com/euwesleysilv4/meu-app-digitfy-sub003/pkg/persistence/middleware"
	"github.com/euwesleysilv4/meu-app-digitfy-sub003/pkg/ports"
)

// Backend is the template store selected by configuration, plus the
// session locker when the store can provide one.
type Backend struct {
	Store  ports.DocumentStore
	Locker ports.DistributedLocker
	closer io.Closer
}

// Close releases the store connection, if any.
func (b *Backend) Close() error {
	return closeAll(b.closer)
}

// OpenBackend creates the store named by cfg.Store.Driver, wrapped in the
// validation, redaction and encryption middlewares the config enables.
// The redis driver is pinged so a bad address fails at startup.
func OpenBackend(ctx context.Context, cfg config.Config, logger *slog.Logger) (*Backend, error) {
	b, err := openDriver(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	mws, err := storeMiddlewares(cfg.Store)
	if err != nil {
		_ = b.Close()
		return nil, err
	}
	b.Store = middleware.Chain(b.Store, mws...)
	return b, nil
}

func storeMiddlewares(cfg config.StoreConfig) ([]middleware.Middleware, error) {
	mws := []middleware.Middleware{middleware.NewValidationMiddleware()}

	if len(cfg.RedactPatterns) > 0 {
		redact, err := middleware.NewRedactionMiddleware(cfg.RedactPatterns)
		if err != nil {
			return nil, err
		}
		mws = append(mws, redact)
	}

	if cfg.EncryptionKey != "" {
		active, err := base64.StdEncoding.DecodeString(cfg.EncryptionKey)
		if err != nil {
			return nil, fmt.Errorf("invalid encryption key: %w", err)
		}
		encCfg := middleware.EncryptionConfig{ActiveKey: active}
		for _, k := range cfg.FallbackKeys {
			key, err := base64.StdEncoding.DecodeString(k)
			if err != nil {
				return nil, fmt.Errorf("invalid fallback key: %w", err)
			}
			encCfg.FallbackKeys = append(encCfg.FallbackKeys, key)
		}
		encrypt, err := middleware.NewEncryptionMiddleware(encCfg)
		if err != nil {
			return nil, err
		}
		mws = append(mws, encrypt)
	}
	return mws, nil
}

func openDriver(ctx context.Context, cfg config.Config, logger *slog.Logger) (*Backend, error) {
	switch cfg.Store.Driver {
	case "", "memory":
		logger.Info("Using in-memory template store")
		return &Backend{Store: memory.NewStore()}, nil
	case "file":
		logger.Info("Using file template store", "path", cfg.Store.Path)
		return &Backend{Store: file.New(cfg.Store.Path)}, nil
	case "redis":
		store := redis.New(cfg.Redis.Address, cfg.Redis.Password, cfg.Redis.DB,
			redis.WithPrefix(cfg.Redis.Prefix),
			redis.WithTTL(cfg.Redis.TTL),
		)
		if err := store.Client().Ping(ctx).Err(); err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Redis.Address, err)
		}
		b := &Backend{Store: store, closer: store}
		if cfg.Redis.Lock {
			b.Locker = redis.NewLocker(store.Client(), cfg.Redis.Prefix)
		}
		logger.Info("Using redis template store", "address", cfg.Redis.Address, "lock", cfg.Redis.Lock)
		return b, nil
	}
	return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
}

// NewCapturer builds the PNG capturer from the export settings.
func NewCapturer(cfg config.ExportConfig) ports.ImageCapturer {
	return raster.New(raster.WithPixelRatio(cfg.PixelRatio), raster.WithMaxSize(cfg.MaxSize))
}
