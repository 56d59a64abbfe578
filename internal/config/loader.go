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

	"github.com/mergington/activities/internal/domain/activity"
)

const (
	envPrefix     = "ACTIVITIES_"
	envConfigFile = envPrefix + "CONFIG"
	envDotEnvFile = envPrefix + "ENV_FILE"

	defaultDotEnv = ".env"

	// seedDelim separates nested seed keys; activity names may contain dots.
	seedDelim = "::"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if ACTIVITIES_CONFIG is set
//  3. env (prefix ACTIVITIES_), including values from a .env file
//
// The .env file (ACTIVITIES_ENV_FILE, default ".env") is optional and never
// overrides variables already present in the environment.
func Load(_ context.Context) (*Config, error) {
	if err := loadDotEnv(); err != nil {
		return nil, err
	}

	base := New()
	k := koanf.New(".")

	// Load from file if provided
	if path := os.Getenv(envConfigFile); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrLoadConfig, path, err)
		}
	}

	// Environment variables: ACTIVITIES_ADDR, ACTIVITIES_QUEUE_SIZE, ...
	// Map env keys like ACTIVITIES_QUEUE_SIZE -> queue_size (flat keys).
	envProvider := env.ProviderWithValue(envPrefix, ".", func(key, value string) (string, interface{}) {
		key = strings.TrimPrefix(strings.ToLower(key), strings.ToLower(envPrefix))
		switch key {
		case "config", "env_file":
			return "", nil
		case "allowed_origins":
			return key, splitList(value)
		}
		return key, value
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: env: %w", ErrLoadConfig, err)
	}

	// Unmarshal into a copy
	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadSeed reads an activity roster from a YAML file of the form:
//
//	activities:
//	  Chess Club:
//	    description: ...
//	    schedule: ...
//	    max_participants: 12
//	    participants: [michael@mergington.edu]
func LoadSeed(_ context.Context, path string) (activity.Directory, error) {
	k := koanf.New(seedDelim)
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("%w: seed %s: %w", ErrLoadConfig, path, err)
	}

	var seed activity.Directory
	if err := k.UnmarshalWithConf("activities", &seed, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: seed %s: %w", ErrLoadConfig, path, err)
	}
	if len(seed) == 0 {
		return nil, fmt.Errorf("%w: seed %s defines no activities", ErrInvalidConfig, path)
	}
	if err := seed.Validate(); err != nil {
		return nil, fmt.Errorf("%w: seed %s: %w", ErrInvalidConfig, path, err)
	}
	return seed, nil
}

func loadDotEnv() error {
	path := os.Getenv(envDotEnvFile)
	if path == "" {
		path = defaultDotEnv
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("%w: %s: %w", ErrLoadConfig, path, err)
	}
	return nil
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
