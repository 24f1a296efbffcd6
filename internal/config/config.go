// Package config defines service configuration and how it is loaded.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidConfig is returned when a loaded configuration cannot be used.
var ErrInvalidConfig = errors.New("invalid config")

// Store kinds.
const (
	StoreMongo  = "mongo"
	StoreMemory = "memory"
)

// Config contains process configuration.
type Config struct {
	// Addr is the HTTP listen address, e.g. ":5000".
	Addr string `koanf:"addr"`

	// Environment is "production" or anything else; production switches
	// the session cookie to Secure + SameSite=None.
	Environment string `koanf:"environment"`

	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// TokenSecret signs session credentials.
	TokenSecret string        `koanf:"token_secret"`
	TokenTTL    time.Duration `koanf:"token_ttl"`
	CookieName  string        `koanf:"cookie_name"`

	Store                 string `koanf:"store"`
	MongoURI              string `koanf:"mongo_uri"`
	MongoDatabase         string `koanf:"mongo_database"`
	AssignmentsCollection string `koanf:"assignments_collection"`
	SubmissionsCollection string `koanf:"submissions_collection"`

	// RedisURL enables the workflow event stream when set.
	RedisURL          string `koanf:"redis_url"`
	EventsTopicPrefix string `koanf:"events_topic_prefix"`

	CORSOrigins []string `koanf:"cors_origins"`
}

// New returns a Config holding the defaults.
func New() *Config {
	return &Config{
		Addr:                  ":5000",
		Environment:           "development",
		LogLevel:              "info",
		TokenTTL:              24 * time.Hour,
		CookieName:            "token",
		Store:                 StoreMongo,
		MongoURI:              "mongodb://localhost:27017",
		MongoDatabase:         "academiaAlliance",
		AssignmentsCollection: "assignments",
		SubmissionsCollection: "submittedAssignment",
		EventsTopicPrefix:     "academia.",
		CORSOrigins: []string{
			"http://localhost:5173",
			"http://localhost:5174",
			"https://academia-alliance.web.app",
			"https://academia-alliance.firebaseapp.com",
		},
	}
}

// IsProduction reports whether the deployment is marked as production.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}

// Validate checks the fields the service cannot start without.
func (c *Config) Validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.TokenSecret == "":
		return fmt.Errorf("%w: token_secret must not be empty", ErrInvalidConfig)
	case c.TokenTTL <= 0:
		return fmt.Errorf("%w: token_ttl must be positive", ErrInvalidConfig)
	case c.CookieName == "":
		return fmt.Errorf("%w: cookie_name must not be empty", ErrInvalidConfig)
	}

	switch c.Store {
	case StoreMemory:
	case StoreMongo:
		if c.MongoURI == "" {
			return fmt.Errorf("%w: mongo_uri must not be empty", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown store %q", ErrInvalidConfig, c.Store)
	}
	return nil
}
