package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Loader sentinels, matchable with errors.Is: ErrLoadConfig wraps
// provider and unmarshal failures, ErrInvalidConfig wraps validation
// failures.
var (
	ErrInvalidConfig = errors.New("invalid config")
	ErrLoadConfig    = errors.New("load config failed")
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):.
//  1. defaults (New())
//  2. file (YAML) if TALENTFLOW_CONFIG is set
//  3. env (prefix TALENTFLOW_)
func Load(ctx context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	// Load from file if provided
	if path := os.Getenv("TALENTFLOW_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: TALENTFLOW_ADDR, TALENTFLOW_LATENCY_MIN_MS, ...
	// Map env keys like TALENTFLOW_WRITE_FAILURE_RATE -> write_failure_rate.
	// Preserve underscores to match koanf tags on the struct.
	envProvider := env.Provider("TALENTFLOW_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "talentflow_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	// Unmarshal into a copy
	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.LatencyMinMS < 0 || c.LatencyMaxMS < c.LatencyMinMS:
		return fmt.Errorf("%w: latency range [%d,%d] is not ordered", ErrInvalidConfig, c.LatencyMinMS, c.LatencyMaxMS)
	case c.WriteFailureRate < 0 || c.WriteFailureRate > 1:
		return fmt.Errorf("%w: write_failure_rate %v outside [0,1]", ErrInvalidConfig, c.WriteFailureRate)
	case c.MaxPageSize < 1:
		return fmt.Errorf("%w: max_page_size must be positive", ErrInvalidConfig)
	}
	return nil
}
