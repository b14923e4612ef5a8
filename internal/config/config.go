// Package config provides YAML-based configuration loading for Impulse.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Config is the top-level Impulse configuration, loaded from config.yaml
// with secrets overridable from the environment.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	Session  SessionConfig  `yaml:"session"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Port int `yaml:"port"`
}

// DatabaseConfig holds connection settings for the backing store.
type DatabaseConfig struct {
	Driver   string `yaml:"driver"` // "sqlite" (default) or "mysql"
	Path     string `yaml:"path"`   // sqlite only
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"-" env:"IMPULSE_DB_PASSWORD"`
}

// AuthConfig holds token issuance settings. The signing secret is never
// read from the YAML file.
type AuthConfig struct {
	Secret      string `yaml:"-" env:"IMPULSE_JWT_SECRET"`
	TokenTTLHrs int    `yaml:"token_ttl_hours"`
	Issuer      string `yaml:"issuer"`
	BcryptCost  int    `yaml:"bcrypt_cost"`
}

// SessionConfig tunes the commitment session mechanics.
type SessionConfig struct {
	DurationSeconds int `yaml:"duration_seconds"`
	SpinSteps       int `yaml:"spin_steps"`
	SpinIntervalMS  int `yaml:"spin_interval_ms"`
}

// Load reads a YAML config file from path and returns a validated Config.
// A missing file yields the defaults (env overrides still apply).
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Parse(nil)
		}
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse unmarshals YAML bytes, applies environment overrides and defaults,
// and returns a validated Config.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("config: parse: %w", err)
		}
	}
	if err := env.Parse(&cfg.Database); err != nil {
		return nil, fmt.Errorf("config: env: %w", err)
	}
	if err := env.Parse(&cfg.Auth); err != nil {
		return nil, fmt.Errorf("config: env: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyDefaults fills in derived and default values.
func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Database.Driver == "" {
		c.Database.Driver = "sqlite"
	}
	if c.Database.Path == "" {
		c.Database.Path = "impulse.db"
	}
	if c.Database.Host == "" {
		c.Database.Host = "127.0.0.1"
	}
	if c.Database.Port == 0 {
		c.Database.Port = 3306
	}
	if c.Database.Name == "" {
		c.Database.Name = "impulse"
	}
	if c.Auth.TokenTTLHrs == 0 {
		c.Auth.TokenTTLHrs = 72
	}
	if c.Auth.Issuer == "" {
		c.Auth.Issuer = "impulse"
	}
	if c.Auth.BcryptCost == 0 {
		c.Auth.BcryptCost = 10
	}
	if c.Session.DurationSeconds == 0 {
		c.Session.DurationSeconds = 1200
	}
	if c.Session.SpinSteps == 0 {
		c.Session.SpinSteps = 15
	}
	if c.Session.SpinIntervalMS == 0 {
		c.Session.SpinIntervalMS = 80
	}
}

// validate checks that all required fields are present and consistent.
func (c *Config) validate() error {
	var errs []string
	switch c.Database.Driver {
	case "sqlite", "mysql":
	default:
		errs = append(errs, fmt.Sprintf("database.driver %q is not supported", c.Database.Driver))
	}
	if c.Database.Driver == "mysql" && c.Database.User == "" {
		errs = append(errs, "database.user is required for mysql")
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Sprintf("server.port %d is out of range", c.Server.Port))
	}
	if c.Session.DurationSeconds < 0 {
		errs = append(errs, "session.duration_seconds must be positive")
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}
