package composer

import (
	"fmt"
	"time"

	"github.com/murthyn/composer/types"
)

// ReductionConfig configures the distributed state snapshot harness.
type ReductionConfig struct {
	// Bucket is the NATS JetStream KV bucket shared by all workers of a run.
	Bucket string `yaml:"bucket"`

	// KeyPrefix is the snapshot key prefix; worker snapshots are stored
	// under "<KeyPrefix>.<workerID>".
	KeyPrefix string `yaml:"keyPrefix"`

	// PublishInterval is how often workers publish state snapshots.
	// Shorter intervals tighten reduction freshness but increase KV traffic.
	// Recommended: 2-5 seconds.
	PublishInterval time.Duration `yaml:"publishInterval"`

	// SnapshotTTL is how long snapshots remain valid before a worker is
	// considered gone. Must be at least 2x PublishInterval so one missed
	// publish does not drop a live worker from the merge.
	// Recommended: 3x PublishInterval.
	SnapshotTTL time.Duration `yaml:"snapshotTtl"`
}

// Config is the configuration for the Logger.
//
// All duration fields accept standard Go duration strings like "30s", "5m".
type Config struct {
	// MinLogLevel caps the granularity the Logger accepts at all. Entries
	// finer than this are discarded before any destination filtering.
	// Default: LevelBatch (accept everything).
	MinLogLevel types.LogLevel `yaml:"minLogLevel"`

	// ShutdownTimeout bounds Close: each destination gets the remaining
	// budget to drain its queue.
	// Recommended: 10 seconds.
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout"`

	// OperationTimeout is the timeout for KV operations (snapshot publish,
	// collection reads).
	// Recommended: 10 seconds.
	OperationTimeout time.Duration `yaml:"operationTimeout"`

	// Reduction controls the distributed snapshot harness.
	Reduction ReductionConfig `yaml:"reduction"`
}

// DefaultConfig returns a Config with sensible defaults.
//
// Returns:
//   - Config: Configuration with default values
func DefaultConfig() Config {
	return Config{
		MinLogLevel:      types.LevelBatch,
		ShutdownTimeout:  10 * time.Second,
		OperationTimeout: 10 * time.Second,
		Reduction: ReductionConfig{
			Bucket:          "composer-state",
			KeyPrefix:       "state",
			PublishInterval: 2 * time.Second,
			SnapshotTTL:     6 * time.Second,
		},
	}
}

// ApplyDefaults fills in missing configuration values with production defaults.
//
// Parameters:
//   - cfg: Config to apply defaults to (modified in place)
func ApplyDefaults(cfg *Config) {
	defaults := DefaultConfig()

	if cfg.MinLogLevel == 0 {
		cfg.MinLogLevel = defaults.MinLogLevel
	}
	if cfg.ShutdownTimeout == 0 {
		cfg.ShutdownTimeout = defaults.ShutdownTimeout
	}
	if cfg.OperationTimeout == 0 {
		cfg.OperationTimeout = defaults.OperationTimeout
	}
	if cfg.Reduction.Bucket == "" {
		cfg.Reduction.Bucket = defaults.Reduction.Bucket
	}
	if cfg.Reduction.KeyPrefix == "" {
		cfg.Reduction.KeyPrefix = defaults.Reduction.KeyPrefix
	}
	if cfg.Reduction.PublishInterval == 0 {
		cfg.Reduction.PublishInterval = defaults.Reduction.PublishInterval
	}
	if cfg.Reduction.SnapshotTTL == 0 {
		cfg.Reduction.SnapshotTTL = defaults.Reduction.SnapshotTTL
	}
}

// Validate checks configuration constraints and returns an error for
// invalid values.
//
// Hard Validation Rules:
//   - MinLogLevel must be a defined level
//   - ShutdownTimeout > 0 (Close must be bounded)
//   - SnapshotTTL >= 2 * PublishInterval (allow one missed publish)
//
// Returns:
//   - error: Validation error with clear explanation, nil if valid
func (cfg *Config) Validate() error {
	if !cfg.MinLogLevel.Valid() {
		return fmt.Errorf("MinLogLevel (%d) must be one of fit, epoch, batch", cfg.MinLogLevel)
	}

	if cfg.ShutdownTimeout <= 0 {
		return fmt.Errorf("ShutdownTimeout must be > 0, got %v", cfg.ShutdownTimeout)
	}

	if cfg.Reduction.SnapshotTTL < 2*cfg.Reduction.PublishInterval {
		return fmt.Errorf(
			"SnapshotTTL (%v) must be >= 2*PublishInterval (%v) to allow one missed publish",
			cfg.Reduction.SnapshotTTL, cfg.Reduction.PublishInterval,
		)
	}

	return nil
}

// ValidateWithWarnings checks configuration and logs warnings for
// non-recommended values.
//
// This is called after Validate() in NewLogger() to provide operator
// guidance.
//
// Parameters:
//   - logger: Logger instance for warning output
func (cfg *Config) ValidateWithWarnings(logger types.Logger) {
	if cfg.Reduction.SnapshotTTL < 3*cfg.Reduction.PublishInterval {
		logger.Warn(
			"SnapshotTTL is below recommended minimum",
			"snapshotTTL", cfg.Reduction.SnapshotTTL,
			"publishInterval", cfg.Reduction.PublishInterval,
			"recommended", 3*cfg.Reduction.PublishInterval,
		)
	}

	if cfg.ShutdownTimeout < time.Second {
		logger.Warn(
			"ShutdownTimeout is very short, buffered destinations may drop entries on Close",
			"shutdownTimeout", cfg.ShutdownTimeout,
			"recommended", "1s or higher",
		)
	}
}

// TestConfig returns a configuration optimized for fast test execution.
//
// Test timings are 10-100x faster than production defaults to enable rapid
// iteration without sacrificing test coverage. Use DefaultConfig() for
// production deployments.
//
// Returns:
//   - Config: Configuration with fast timings for tests
func TestConfig() Config {
	cfg := DefaultConfig()

	cfg.ShutdownTimeout = 2 * time.Second                  // 5x faster
	cfg.OperationTimeout = 2 * time.Second                 // 5x faster
	cfg.Reduction.PublishInterval = 100 * time.Millisecond // 20x faster
	cfg.Reduction.SnapshotTTL = 500 * time.Millisecond     // 12x faster

	return cfg
}
