package kvutil

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/require"

	composertest "github.com/murthyn/composer/testing"
)

// TestEnsureBucket tests the create-or-open retry utility.
func TestEnsureBucket(t *testing.T) {
	_, nc := composertest.StartEmbeddedNATS(t)

	ctx := context.Background()
	js, err := jetstream.New(nc)
	require.NoError(t, err)

	t.Run("successful creation on first try", func(t *testing.T) {
		cfg := jetstream.KeyValueConfig{
			Bucket:  "test-bucket-1",
			History: 1,
			TTL:     5 * time.Second,
		}

		kv, err := EnsureBucket(ctx, js, cfg, 3)
		require.NoError(t, err)
		require.NotNil(t, kv)
	})

	t.Run("bucket exists - should open it", func(t *testing.T) {
		cfg := jetstream.KeyValueConfig{
			Bucket:  "test-bucket-2",
			History: 1,
			TTL:     5 * time.Second,
		}

		kv1, err := js.CreateKeyValue(ctx, cfg)
		require.NoError(t, err)
		require.NotNil(t, kv1)

		// Try to create again - should open existing
		kv2, err := EnsureBucket(ctx, js, cfg, 3)
		require.NoError(t, err)
		require.NotNil(t, kv2)
	})

	t.Run("concurrent creates - 10 workers", func(t *testing.T) {
		numWorkers := 10

		var wg sync.WaitGroup
		errChan := make(chan error, numWorkers)
		kvs := make([]jetstream.KeyValue, numWorkers)

		cfg := jetstream.KeyValueConfig{
			Bucket:  "test-bucket-3",
			History: 1,
			TTL:     5 * time.Second,
		}

		// All workers race to create the same bucket
		for i := 0; i < numWorkers; i++ {
			wg.Add(1)
			go func(idx int) {
				defer wg.Done()

				kv, err := EnsureBucket(ctx, js, cfg, 5)
				if err != nil {
					errChan <- err
					return
				}

				kvs[idx] = kv
			}(i)
		}

		wg.Wait()
		close(errChan)

		var errList []error
		for err := range errChan {
			errList = append(errList, err)
		}

		require.Empty(t, errList, "All workers should succeed with retry")

		for i, kv := range kvs {
			require.NotNil(t, kv, "Worker %d should have valid KV instance", i)
		}
	})

	t.Run("context timeout - should fail gracefully", func(t *testing.T) {
		shortCtx, cancel := context.WithTimeout(context.Background(), 1*time.Nanosecond)
		defer cancel()

		// Force timeout
		time.Sleep(1 * time.Millisecond)

		cfg := jetstream.KeyValueConfig{
			Bucket:  "test-bucket-4",
			History: 1,
		}

		_, err := EnsureBucket(shortCtx, js, cfg, 3)
		require.Error(t, err)
		require.Contains(t, err.Error(), "context")
	})
}
