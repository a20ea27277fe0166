package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port          string        `env:"PORT,           default=8080"`
	Env           string        `env:"ENV,            default=development"`
	LogLevel      string        `env:"LOG_LEVEL,      default=info"`
	SessionSecret string        `env:"SESSION_SECRET, default=dev-only-secret"`
	SessionTTL    time.Duration `env:"SESSION_TTL,    default=30m"`

	Backend BackendConfig
	Redis   RedisConfig
}

type BackendConfig struct {
	URL string `env:"BACKEND_URL, default=http://localhost:8000"`
}

// RedisConfig selects the session store: with an empty Addr sessions live in
// process memory, otherwise they are shared through Redis.
type RedisConfig struct {
	Addr string `env:"REDIS_ADDR"`
	DB   int    `env:"REDIS_DB, default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
