package stockledger_test

import (
	"context"
	"os"
	"sync"
	"sync/atomic"
	"testing"

	"fulfillment/internal/adapters/out/redis/stockledger"
	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func redisClient(t *testing.T) *redis.Client {
	t.Helper()

	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(context.Background()).Err(); err != nil {
		t.Skipf("Redis not available: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func newLedger(t *testing.T) *stockledger.RedisLedger {
	t.Helper()
	client := redisClient(t)
	namespace := "test-" + kernel.NewUUID().String()
	t.Cleanup(func() {
		ctx := context.Background()
		iter := client.Scan(ctx, 0, "stock:"+namespace+":*", 100).Iterator()
		for iter.Next(ctx) {
			client.Del(ctx, iter.Val())
		}
	})
	return stockledger.NewRedisLedger(client, namespace)
}

func TestRedisLedger(t *testing.T) {
	t.Run("should read unknown keys as zero", func(t *testing.T) {
		ledger := newLedger(t)

		n, err := ledger.Get(t.Context(), kernel.NewUUID())

		require.NoError(t, err)
		assert.Zero(t, n)
	})

	t.Run("should reserve only when enough is on hand", func(t *testing.T) {
		ledger := newLedger(t)
		pen := kernel.NewUUID()
		require.NoError(t, ledger.Add(t.Context(), pen, 5))

		ok, err := ledger.TryReserve(t.Context(), pen, 3)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = ledger.TryReserve(t.Context(), pen, 3)
		require.NoError(t, err)
		assert.False(t, ok)

		n, err := ledger.Get(t.Context(), pen)
		require.NoError(t, err)
		assert.Equal(t, 2, n)
	})

	t.Run("should reject negative deltas", func(t *testing.T) {
		ledger := newLedger(t)

		require.Error(t, ledger.Add(t.Context(), kernel.NewUUID(), -1))
		_, err := ledger.TryReserve(t.Context(), kernel.NewUUID(), -1)
		require.Error(t, err)
	})

	t.Run("should list only its own namespace", func(t *testing.T) {
		ledger := newLedger(t)
		other := newLedger(t)
		pen, pencil := kernel.NewUUID(), kernel.NewUUID()
		require.NoError(t, ledger.Add(t.Context(), pen, 2))
		require.NoError(t, ledger.Add(t.Context(), pencil, 4))
		require.NoError(t, other.Add(t.Context(), pen, 9))

		snapshot, err := ledger.Snapshot(t.Context())

		require.NoError(t, err)
		assert.Equal(t, map[kernel.UUID]int{pen: 2, pencil: 4}, snapshot)
	})

	t.Run("should roll back a partial reservation", func(t *testing.T) {
		ledger := newLedger(t)
		pen, rubber := kernel.NewUUID(), kernel.NewUUID()
		require.NoError(t, ledger.Add(t.Context(), pen, 2))
		require.NoError(t, ledger.Add(t.Context(), rubber, 1))

		ok, err := inventory.ReserveAll(t.Context(), ledger, inventory.Request{pen: 2, rubber: 3})

		require.NoError(t, err)
		assert.False(t, ok)
		snapshot, err := ledger.Snapshot(t.Context())
		require.NoError(t, err)
		assert.Equal(t, map[kernel.UUID]int{pen: 2, rubber: 1}, snapshot)
	})

	t.Run("should never oversell under concurrent reservations", func(t *testing.T) {
		ledger := newLedger(t)
		pen := kernel.NewUUID()
		require.NoError(t, ledger.Add(t.Context(), pen, 10))

		var (
			wg      sync.WaitGroup
			granted atomic.Int32
		)
		for range 50 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if ok, err := ledger.TryReserve(context.Background(), pen, 1); err == nil && ok {
					granted.Add(1)
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, int32(10), granted.Load())
		n, err := ledger.Get(t.Context(), pen)
		require.NoError(t, err)
		assert.Zero(t, n)
	})
}
