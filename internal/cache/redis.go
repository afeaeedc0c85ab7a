package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/rueidis"
)

var _ Cache = (*Redis)(nil)

// Redis is a Cache backed by a Redis server through rueidis. Keys are
// namespaced with prefix.
type Redis struct {
	client rueidis.Client
	prefix string
}

func NewRedis(client rueidis.Client, prefix string) *Redis {
	return &Redis{
		client: client,
		prefix: prefix,
	}
}

func (r *Redis) key(key string) string {
	return r.prefix + key
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool, error) {
	cmd := r.client.B().Get().Key(r.key(key)).Build()
	value, err := r.client.Do(ctx, cmd).AsBytes()
	if err != nil {
		if rueidis.IsRedisNil(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("redis get %s: %w", key, err)
	}

	return value, true, nil
}

func (r *Redis) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl < time.Millisecond {
		return r.Remove(ctx, key)
	}

	cmd := r.client.B().Set().
		Key(r.key(key)).
		Value(rueidis.BinaryString(value)).
		PxMilliseconds(ttl.Milliseconds()).
		Build()
	if err := r.client.Do(ctx, cmd).Error(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}

	return nil
}

func (r *Redis) Remove(ctx context.Context, key string) error {
	cmd := r.client.B().Del().Key(r.key(key)).Build()
	if err := r.client.Do(ctx, cmd).Error(); err != nil {
		return fmt.Errorf("redis del %s: %w", key, err)
	}

	return nil
}
