// Package config loads the application configuration from an optional
// YAML file with environment variable overrides. Secrets (DATABASE_URL,
// JWT_SECRET) are never read from the file; they stay env-only.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	envcfg "personal-site/pkg/config"
)

// Config is the full application configuration.
type Config struct {
	Server ServerConfig `yaml:"server"`
	Blob   BlobConfig   `yaml:"blob"`
	Auth   AuthConfig   `yaml:"auth"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"`
	RequestTimeout  time.Duration `yaml:"request_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// BlobConfig configures where uploaded images are stored and how their
// public URLs are formed.
type BlobConfig struct {
	Dir     string `yaml:"dir"`
	BaseURL string `yaml:"base_url"`
}

// AuthConfig configures session token issuance.
type AuthConfig struct {
	TokenTTL time.Duration `yaml:"token_ttl"`
}

// Default returns the built-in configuration used when no file is given.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			IdleTimeout:     60 * time.Second,
			RequestTimeout:  30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Blob: BlobConfig{
			Dir:     "./data/uploads",
			BaseURL: "/static/uploads",
		},
		Auth: AuthConfig{
			TokenTTL: time.Hour,
		},
	}
}

// Load reads the YAML file at path (if path is non-empty), applies
// environment overrides on top, validates, and returns the result.
//
// Environment overrides:
//   - SERVER_ADDR: listen address
//   - BLOB_DIR: upload storage directory
//   - BLOB_BASE_URL: public URL prefix for uploads
//   - AUTH_TOKEN_TTL: session token lifetime
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		// #nosec G304 -- path comes from the -config flag, not user input
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file: %w", err)
		}
	}

	cfg.Server.Addr = envcfg.GetEnvString("SERVER_ADDR", cfg.Server.Addr)
	cfg.Blob.Dir = envcfg.GetEnvString("BLOB_DIR", cfg.Blob.Dir)
	cfg.Blob.BaseURL = envcfg.GetEnvString("BLOB_BASE_URL", cfg.Blob.BaseURL)
	cfg.Auth.TokenTTL = envcfg.GetEnvDuration("AUTH_TOKEN_TTL", cfg.Auth.TokenTTL)

	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server addr is required")
	}
	for name, d := range map[string]time.Duration{
		"read_timeout":     c.Server.ReadTimeout,
		"write_timeout":    c.Server.WriteTimeout,
		"idle_timeout":     c.Server.IdleTimeout,
		"request_timeout":  c.Server.RequestTimeout,
		"shutdown_timeout": c.Server.ShutdownTimeout,
	} {
		if err := envcfg.ValidatePositiveDuration(d); err != nil {
			return fmt.Errorf("server %s: %w", name, err)
		}
	}
	if c.Blob.Dir == "" {
		return fmt.Errorf("blob dir is required")
	}
	if c.Blob.BaseURL == "" {
		return fmt.Errorf("blob base_url is required")
	}
	if err := envcfg.ValidatePositiveDuration(c.Auth.TokenTTL); err != nil {
		return fmt.Errorf("auth token_ttl: %w", err)
	}
	return nil
}
