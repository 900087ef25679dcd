package limiter

import (
	"context"
	"fmt"
	"time"

	goRedis "github.com/redis/go-redis/v9"
)

// incrScript bumps the counter and stamps the window TTL in one atomic step,
// so two concurrent requests can never both observe the pre-increment count.
var incrScript = goRedis.NewScript(`
local count = redis.call("INCR", KEYS[1])
if count == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
local ttl = redis.call("PTTL", KEYS[1])
return {count, ttl}
`)

// redisStore is the shared counter backend for multi-instance deployments.
type redisStore struct {
	client *goRedis.Client
}

func NewRedisStore(client *goRedis.Client) Store {
	return &redisStore{
		client: client,
	}
}

func (s *redisStore) Incr(ctx context.Context, key string, window time.Duration) (int64, time.Time, error) {
	raw, err := incrScript.Run(ctx, s.client, []string{key}, window.Milliseconds()).Result()
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("failed to run rate-limit script: %w", err)
	}

	values, ok := raw.([]interface{})
	if !ok || len(values) != 2 {
		return 0, time.Time{}, fmt.Errorf("unexpected rate-limit script reply: %v", raw)
	}

	count, _ := values[0].(int64)
	ttlMillis, _ := values[1].(int64)

	reset := time.Now().Add(window)
	if ttlMillis > 0 {
		reset = time.Now().Add(time.Duration(ttlMillis) * time.Millisecond)
	}

	return count, reset, nil
}
