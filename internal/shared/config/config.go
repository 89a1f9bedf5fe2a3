package config

import (
	"encoding/hex"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Version     string `env:"VERSION" envDefault:"0.1.0"`
	Port        int    `env:"PORT" envDefault:"8080"`
	Environment string `env:"ENVIRONMENT" envDefault:"dev"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	SentryDSN   string `env:"SENTRY_DSN"`
	APIBaseURL  string `env:"API_BASE_URL" envDefault:"http://localhost:5000/api"`
	SecretKey   string `env:"SECRET_KEY"`
}

func NewConfig() (*Config, error) {
	// Load .env if present (ok if missing in prod)
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) IsEnvProd() bool {
	if c.Environment == "prod" && c.SentryDSN != "" {
		return true
	}
	return false
}

// CookieSecret returns the secret key for cookie encryption
func (c *Config) CookieSecret() []byte {
	key, err := hex.DecodeString(c.SecretKey)
	if err != nil {
		panic("Invalid hex secret key: " + err.Error())
	}
	return key
}
