// Package config loads runtime settings for the funnelfy binaries.
//
// Values come from, in increasing priority: built-in defaults, an optional
// YAML file, FUNNELFY_* environment variables and bound command line flags.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/euwesleysilv4/meu-app-digitfy-sub003/pkg/domain"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. FUNNELFY_SERVER_PORT.
const EnvPrefix = "FUNNELFY"

// Config is the root configuration.
type Config struct {
	Log    LogConfig       `mapstructure:"log"`
	Server ServerConfig    `mapstructure:"server"`
	Store  StoreConfig     `mapstructure:"store"`
	Redis  RedisConfig     `mapstructure:"redis"`
	Export ExportConfig    `mapstructure:"export"`
	Editor domain.Tunables `mapstructure:"editor"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" validate:"omitempty,oneof=debug info warn error DEBUG INFO WARN ERROR"`
	Format string `mapstructure:"format" validate:"omitempty,oneof=text json"`
}

type ServerConfig struct {
	Port           int      `mapstructure:"port" validate:"min=1,max=65535"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type StoreConfig struct {
	// Driver selects the template backend: memory, file or redis.
	Driver string `mapstructure:"driver" validate:"oneof=memory file redis"`
	// Path is the base directory of the file driver.
	Path string `mapstructure:"path" validate:"required_if=Driver file"`
	// RedactPatterns are regular expressions masked out of notes and labels on save.
	RedactPatterns []string `mapstructure:"redact_patterns"`
	// EncryptionKey is a base64 AES-256 key sealing step notes at rest. Empty disables it.
	EncryptionKey string `mapstructure:"encryption_key" validate:"omitempty,base64"`
	// FallbackKeys decrypt notes sealed with rotated-out keys.
	FallbackKeys []string `mapstructure:"fallback_keys" validate:"dive,base64"`
}

type RedisConfig struct {
	Address  string        `mapstructure:"address" validate:"required"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db" validate:"min=0"`
	Prefix   string        `mapstructure:"prefix"`
	TTL      time.Duration `mapstructure:"ttl" validate:"min=0"`
	// Lock serializes session access across processes sharing the same redis.
	Lock    bool          `mapstructure:"lock"`
	LockTTL time.Duration `mapstructure:"lock_ttl" validate:"min=0"`
}

type ExportConfig struct {
	PixelRatio float64 `mapstructure:"pixel_ratio" validate:"gt=0"`
	MaxSize    int     `mapstructure:"max_size" validate:"gt=0"`
}

// SetDefaults registers the stock value of every key on v.
func SetDefaults(v *viper.Viper) {
	t := domain.DefaultTunables()

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.allowed_origins", []string{"*"})

	v.SetDefault("store.driver", "memory")
	v.SetDefault("store.path", ".funnelfy/templates")
	v.SetDefault("store.redact_patterns", []string{})
	v.SetDefault("store.encryption_key", "")
	v.SetDefault("store.fallback_keys", []string{})

	v.SetDefault("redis.address", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.prefix", "funnelfy:")
	v.SetDefault("redis.ttl", time.Duration(0))
	v.SetDefault("redis.lock", false)
	v.SetDefault("redis.lock_ttl", 30*time.Second)

	v.SetDefault("export.pixel_ratio", 1.0)
	v.SetDefault("export.max_size", 4096)

	v.SetDefault("editor.duplicate_offset.x", t.DuplicateOffset.X)
	v.SetDefault("editor.duplicate_offset.y", t.DuplicateOffset.Y)
	v.SetDefault("editor.resize_step", t.ResizeStep)
	v.SetDefault("editor.min_scale", t.MinScale)
	v.SetDefault("editor.max_scale", t.MaxScale)
	v.SetDefault("editor.min_zoom", t.MinZoom)
	v.SetDefault("editor.max_zoom", t.MaxZoom)
	v.SetDefault("editor.history_limit", t.HistoryLimit)
}

// New returns a viper instance with defaults and environment overrides wired.
func New() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the optional YAML file at path into v and decodes the result.
// An empty path skips the file.
func Load(v *viper.Viper, path string) (Config, error) {
	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.Editor = cfg.Editor.Normalize()

	if err := validator.New().Struct(cfg); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return Config{}, fmt.Errorf("invalid config: %s fails %q", fe.Namespace(), fe.Tag())
		}
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
