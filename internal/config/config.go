// Package config loads process configuration from VITERBI_* environment variables.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the settings shared by the CLI, the HTTP server and the MCP server.
// Command-line flags override the values loaded here.
type Config struct {
	Addr      string `env:"ADDR"       envDefault:":8080"`
	LogLevel  string `env:"LOG_LEVEL"  envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`

	// ModelsDir is a directory of model documents served read-only through Loam.
	ModelsDir string `env:"MODELS_DIR"`

	// RedisAddr selects the Redis store; empty means an in-memory store.
	RedisAddr     string        `env:"REDIS_ADDR"`
	RedisPassword string        `env:"REDIS_PASSWORD"`
	RedisDB       int           `env:"REDIS_DB"     envDefault:"0"`
	RedisPrefix   string        `env:"REDIS_PREFIX" envDefault:"viterbi:"`
	RedisTTL      time.Duration `env:"REDIS_TTL"    envDefault:"0s"`

	// OtelEndpoint enables OTLP trace export when set.
	OtelEndpoint string `env:"OTEL_ENDPOINT"`
}

// Prefix is prepended to every variable name in Config.
const Prefix = "VITERBI_"

// Load parses the environment into a Config.
func Load() (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: Prefix}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
