// Package stockledger keeps an inventory ledger in Redis so several
// processes can share one stock pool.
package stockledger

import (
	"context"
	"fmt"
	"strings"

	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix = "stock:"
	scanBatch = 100
)

var reserveScript = redis.NewScript(`
local key = KEYS[1]
local amount = tonumber(ARGV[1])

local current = tonumber(redis.call('GET', key) or '0')
if current >= amount then
	if amount > 0 then
		redis.call('DECRBY', key, amount)
	end
	return 1
end

return 0
`)

var _ inventory.Ledger = (*RedisLedger)(nil)

// RedisLedger stores one integer per item under stock:<namespace>:<item key>.
type RedisLedger struct {
	client    redis.UniversalClient
	namespace string
}

// NewRedisLedger returns a ledger scoped to namespace, usually the owning
// store's or supplier's ID.
func NewRedisLedger(client redis.UniversalClient, namespace string) *RedisLedger {
	return &RedisLedger{client: client, namespace: namespace}
}

func (l *RedisLedger) Get(ctx context.Context, key kernel.UUID) (int, error) {
	if err := key.Validate(); err != nil {
		return 0, err
	}

	n, err := l.client.Get(ctx, l.key(key)).Int()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("get stock %s: %w", key, err)
	}
	return n, nil
}

func (l *RedisLedger) Add(ctx context.Context, key kernel.UUID, delta int) error {
	if err := inventory.ValidateDelta(key, delta); err != nil {
		return err
	}

	if err := l.client.IncrBy(ctx, l.key(key), int64(delta)).Err(); err != nil {
		return fmt.Errorf("add stock %s: %w", key, err)
	}
	return nil
}

func (l *RedisLedger) TryReserve(ctx context.Context, key kernel.UUID, amount int) (bool, error) {
	if err := inventory.ValidateDelta(key, amount); err != nil {
		return false, err
	}

	result, err := reserveScript.Run(ctx, l.client, []string{l.key(key)}, amount).Int()
	if err != nil {
		return false, fmt.Errorf("reserve stock %s: %w", key, err)
	}
	return result == 1, nil
}

func (l *RedisLedger) Snapshot(ctx context.Context) (map[kernel.UUID]int, error) {
	prefix := l.prefix()
	snapshot := make(map[kernel.UUID]int)

	iter := l.client.Scan(ctx, 0, prefix+"*", scanBatch).Iterator()
	for iter.Next(ctx) {
		redisKey := iter.Val()
		id, err := kernel.UUIDFromString(strings.TrimPrefix(redisKey, prefix))
		if err != nil {
			continue
		}
		n, err := l.client.Get(ctx, redisKey).Int()
		if err == redis.Nil {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("snapshot %s: %w", redisKey, err)
		}
		snapshot[id] = n
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("scan %s: %w", prefix, err)
	}

	return snapshot, nil
}

func (l *RedisLedger) prefix() string {
	return keyPrefix + l.namespace + ":"
}

func (l *RedisLedger) key(id kernel.UUID) string {
	return l.prefix() + id.String()
}
