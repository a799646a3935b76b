package composer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/murthyn/composer/types"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	require.Equal(t, types.LevelBatch, cfg.MinLogLevel)
	require.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	require.Equal(t, "composer-state", cfg.Reduction.Bucket)
	require.Equal(t, "state", cfg.Reduction.KeyPrefix)
	require.NoError(t, cfg.Validate())
}

func TestApplyDefaults(t *testing.T) {
	t.Run("fills zero values", func(t *testing.T) {
		cfg := Config{}
		ApplyDefaults(&cfg)
		require.Equal(t, DefaultConfig(), cfg)
	})

	t.Run("keeps explicit values", func(t *testing.T) {
		cfg := Config{
			MinLogLevel:     types.LevelEpoch,
			ShutdownTimeout: 3 * time.Second,
		}
		ApplyDefaults(&cfg)

		require.Equal(t, types.LevelEpoch, cfg.MinLogLevel)
		require.Equal(t, 3*time.Second, cfg.ShutdownTimeout)
		require.Equal(t, DefaultConfig().Reduction, cfg.Reduction)
	})
}

func TestConfigValidate(t *testing.T) {
	t.Run("invalid min log level", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.MinLogLevel = 99
		require.Error(t, cfg.Validate())
	})

	t.Run("non-positive shutdown timeout", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.ShutdownTimeout = 0
		require.Error(t, cfg.Validate())
	})

	t.Run("snapshot ttl below twice publish interval", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Reduction.PublishInterval = 2 * time.Second
		cfg.Reduction.SnapshotTTL = 3 * time.Second
		require.Error(t, cfg.Validate())
	})

	t.Run("test config is valid", func(t *testing.T) {
		cfg := TestConfig()
		require.NoError(t, cfg.Validate())
	})
}

func TestConfigYAMLRoundTrip(t *testing.T) {
	in := DefaultConfig()
	in.MinLogLevel = types.LevelEpoch
	in.Reduction.Bucket = "run-42-state"

	payload, err := yaml.Marshal(&in)
	require.NoError(t, err)

	var out Config
	require.NoError(t, yaml.Unmarshal(payload, &out))
	require.Equal(t, in, out)
}
