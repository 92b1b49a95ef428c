// Package config defines process configuration and its layered loading:
// defaults, an optional YAML file, then environment variables, each
// layer overriding the one below. External errors are wrapped in this
// package's sentinels so callers can match with errors.Is.
package config

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// SnapshotPath points at the JSON snapshot file backing the entity
	// store. Empty disables durability (memory only).
	SnapshotPath string `koanf:"snapshot_path"`

	// LatencyMinMS and LatencyMaxMS bound the simulated network latency
	// applied to every operation, reads and writes alike.
	LatencyMinMS int `koanf:"latency_min_ms"`
	LatencyMaxMS int `koanf:"latency_max_ms"`

	// WriteFailureRate is the probability in [0,1] that a mutating
	// operation fails with a transient error before touching the store.
	WriteFailureRate float64 `koanf:"write_failure_rate"`

	// FaultSeed seeds the fault policy's random source. Zero means a
	// time-derived seed.
	FaultSeed int64 `koanf:"fault_seed"`

	// MaxPageSize caps the pageSize accepted by list operations.
	MaxPageSize int `koanf:"max_page_size"`

	// SeedOnStart populates an empty store with fixture data at startup.
	SeedOnStart bool `koanf:"seed_on_start"`
}

// New creates a Config holding the stock simulation defaults:
// 200-1200ms latency and an 8% write failure rate.
func New() *Config {
	return &Config{
		LogLevel:         "info",
		Addr:             ":9090",
		SnapshotPath:     "",
		LatencyMinMS:     200,
		LatencyMaxMS:     1200,
		WriteFailureRate: 0.08,
		FaultSeed:        0,
		MaxPageSize:      500,
		SeedOnStart:      true,
	}
}
