package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

const EnvPrefix = "AMBIANCE_"

type Config struct {
	Port        string        `koanf:"port" validate:"required"`
	Storage     string        `koanf:"storage" validate:"oneof=postgres memory"`
	DatabaseURL string        `koanf:"database_url" validate:"required_if=Storage postgres"`
	AuthSecret  string        `koanf:"auth_secret" validate:"required,min=16"`
	EditWindow  time.Duration `koanf:"edit_window" validate:"gt=0"`
	CORSOrigins string        `koanf:"cors_origins"`
	LogLevel    string        `koanf:"log_level" validate:"oneof=debug info warn error"`
}

func defaults() Config {
	return Config{
		Port:        "8080",
		Storage:     "postgres",
		EditWindow:  24 * time.Hour,
		CORSOrigins: "*",
		LogLevel:    "info",
	}
}

// Origins splits the comma separated CORS origin list.
func (c Config) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

// Load layers environment variables (AMBIANCE_PORT, AMBIANCE_DATABASE_URL, ...)
// over built-in defaults.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaults(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	envProvider := env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
