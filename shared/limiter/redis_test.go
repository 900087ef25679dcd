package limiter_test

import (
	"context"
	"roamalto/infras/otel/mocks"
	"roamalto/shared/limiter"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goRedis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *goRedis.Client) {
	t.Helper()

	srv := miniredis.RunT(t)
	client := goRedis.NewClient(&goRedis.Options{Addr: srv.Addr()})

	t.Cleanup(func() {
		_ = client.Close()
	})

	return srv, client
}

func TestRedisStore_FixedWindow(t *testing.T) {
	srv, client := newTestRedis(t)

	lim := limiter.New(limiter.NewRedisStore(client), mocks.NewOtel())
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		res, err := lim.Limit(ctx, "event:9.9.9.9:anonymous", 5, 60)
		require.NoError(t, err)
		assert.True(t, res.Success, "request %d should be admitted", i)
		assert.Equal(t, 5-i, res.Remaining)
	}

	res, err := lim.Limit(ctx, "event:9.9.9.9:anonymous", 5, 60)
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, 0, res.Remaining)

	// Expire the window server-side and check the counter restarts.
	srv.FastForward(61 * time.Second)

	res, err = lim.Limit(ctx, "event:9.9.9.9:anonymous", 5, 60)
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, 4, res.Remaining)
}

func TestRedisStore_SetsWindowTTLOnce(t *testing.T) {
	srv, client := newTestRedis(t)

	store := limiter.NewRedisStore(client)
	ctx := context.Background()

	_, firstReset, err := store.Incr(ctx, "event:ttl", 60*time.Second)
	require.NoError(t, err)

	srv.FastForward(10 * time.Second)

	_, secondReset, err := store.Incr(ctx, "event:ttl", 60*time.Second)
	require.NoError(t, err)

	// The second increment must not restart the window.
	assert.True(t, secondReset.Before(firstReset.Add(time.Second)))
}
