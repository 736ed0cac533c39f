// File: internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"school-platform/internal/domain/model"
)

type RuntimeConfig struct {
	Dev bool
}

type ServerConfig struct {
	Port int `yaml:"port"`
}

type LogConfig struct {
	Level    string `yaml:"level"`    // trace|debug|info|warn|error
	Format   string `yaml:"format"`   // json|console
	Sampling bool   `yaml:"sampling"` // enable sampling in prod
}

type AdminConfig struct {
	APIKey string `yaml:"api_key"`
}

type DatabaseConfig struct {
	URL string `yaml:"url"`
}

type RedisConfig struct {
	URL      string        `yaml:"url"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	CartTTL  time.Duration `yaml:"cart_ttl"`
}

type SecurityConfig struct {
	// TicketSecret keys the viewer-ticket integrity code. It is established
	// once at process start; rotating it invalidates all outstanding tickets,
	// which the short TTL makes acceptable.
	TicketSecret string        `yaml:"ticket_secret"`
	TicketTTL    time.Duration `yaml:"ticket_ttl"`
	ReplayGuard  bool          `yaml:"replay_guard"`
	ContentKey   string        `yaml:"content_key"` // AES key for content URLs at rest
}

type PaymentConfig struct {
	Provider string `yaml:"provider"` // noop | (future providers)
	Sandbox  bool   `yaml:"sandbox"`
}

type RateLimitConfig struct {
	RedeemPerMinute int `yaml:"redeem_per_minute"`
}

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Log       LogConfig       `yaml:"log"`
	Admin     AdminConfig     `yaml:"admin"`
	Database  DatabaseConfig  `yaml:"database"`
	Redis     RedisConfig     `yaml:"redis"`
	Security  SecurityConfig  `yaml:"security"`
	Payment   PaymentConfig   `yaml:"payment"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`

	Runtime RuntimeConfig `yaml:"-"`
}

// insecureTicketSecrets are placeholder values that must never survive into a
// non-development deployment.
var insecureTicketSecrets = map[string]struct{}{
	"":                        {},
	"secret":                  {},
	"changeme":                {},
	"dev-ticket-secret":       {},
	"school-platform-dev-key": {},
}

func LoadConfig(path string, dev bool) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	// defaults
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}
	if cfg.Redis.CartTTL <= 0 {
		cfg.Redis.CartTTL = 24 * time.Hour
	}
	if cfg.Security.TicketTTL <= 0 {
		cfg.Security.TicketTTL = model.MaxTicketTTL
	}
	if cfg.Payment.Provider == "" {
		cfg.Payment.Provider = "noop"
	}
	if cfg.RateLimit.RedeemPerMinute <= 0 {
		cfg.RateLimit.RedeemPerMinute = 30
	}

	// Minimal validation
	if cfg.Database.URL == "" {
		return nil, errors.New("database.url is required")
	}
	if cfg.Redis.URL == "" {
		return nil, errors.New("redis.url is required")
	}
	if cfg.Security.TicketTTL > model.MaxTicketTTL {
		return nil, fmt.Errorf("security.ticket_ttl %s exceeds the %s policy ceiling", cfg.Security.TicketTTL, model.MaxTicketTTL)
	}
	if _, insecure := insecureTicketSecrets[cfg.Security.TicketSecret]; insecure {
		if !dev {
			return nil, errors.New("security.ticket_secret is a known-insecure default; set a real secret")
		}
		cfg.Security.TicketSecret = "school-platform-dev-key"
	}

	cfg.Runtime.Dev = dev
	return &cfg, nil
}
