package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	envPrefix     = "ACADEMIA_"
	envConfigFile = "ACADEMIA_CONFIG"
	envDotEnvFile = "ACADEMIA_DOTENV"
)

// legacyEnv maps the variable names used by earlier deployments onto config keys.
// They sit below the ACADEMIA_ variables in precedence.
var legacyEnv = map[string]string{
	"ACCESS_TOKEN_SECRET": "token_secret",
	"NODE_ENV":            "environment",
}

// Load builds a Config by layering, low to high precedence:
//  1. defaults (New)
//  2. YAML file named by ACADEMIA_CONFIG
//  3. legacy variables (ACCESS_TOKEN_SECRET, NODE_ENV, PORT)
//  4. ACADEMIA_* environment variables
//
// A .env file (or the file named by ACADEMIA_DOTENV) is loaded into the process
// environment first; variables already set are not overridden.
func Load(_ context.Context) (*Config, error) {
	dotenv := os.Getenv(envDotEnvFile)
	if dotenv == "" {
		dotenv = ".env"
	}
	if err := godotenv.Load(dotenv); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", dotenv, err)
	}

	k := koanf.New(".")

	if path := os.Getenv(envConfigFile); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	for name, key := range legacyEnv {
		if v := os.Getenv(name); v != "" {
			if err := k.Set(key, v); err != nil {
				return nil, err
			}
		}
	}
	if port := os.Getenv("PORT"); port != "" {
		if err := k.Set("addr", ":"+port); err != nil {
			return nil, err
		}
	}

	// ACADEMIA_TOKEN_SECRET -> token_secret
	envProvider := env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	cfg := New()
	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
