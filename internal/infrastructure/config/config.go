package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=3000"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Backend BackendConfig
	Session SessionConfig
	Poller  PollerConfig
}

type BackendConfig struct {
	// BaseURL points at the external Stoq-Keep API, including the /api prefix.
	BaseURL string        `env:"BACKEND_URL,     default=http://localhost:5000/api"`
	Timeout time.Duration `env:"BACKEND_TIMEOUT, default=10s"`
}

type SessionConfig struct {
	// TokenFile is the durable slot holding the persisted session token.
	TokenFile string `env:"TOKEN_FILE, default=.stoqkeep-token"`
}

type PollerConfig struct {
	// Interval between low-stock re-fetches; mirrors the 30s dashboard refresh.
	Interval time.Duration `env:"POLL_INTERVAL, default=30s"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
