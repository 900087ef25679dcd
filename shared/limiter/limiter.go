package limiter

//go:generate go run go.uber.org/mock/mockgen -source=./limiter.go -destination=./mocks/limiter_mock.go -package=mocks

import (
	"context"
	"fmt"
	"roamalto/config"
	"roamalto/infras/otel"
	"roamalto/shared/constant"
	"time"

	goRedis "github.com/redis/go-redis/v9"
)

// Result describes the outcome of one rate-limit check. Reset is the wall
// clock instant at which the key's window expires.
type Result struct {
	Success   bool
	Limit     int
	Remaining int
	Reset     time.Time
}

// Store is the counter backing a Limiter. Incr must atomically bump the
// per-key counter, starting a fresh window of the given length when the key
// is unseen or expired, and report the count and the window's reset time.
type Store interface {
	Incr(ctx context.Context, key string, window time.Duration) (count int64, reset time.Time, err error)
}

type Limiter interface {
	Limit(ctx context.Context, key string, maxCount, windowSeconds int) (Result, error)
}

type limiterImpl struct {
	store Store
	otel  otel.Otel
}

func New(store Store, ot otel.Otel) Limiter {
	return &limiterImpl{
		store: store,
		otel:  ot,
	}
}

// NewFromConfig selects the counter backend. Single-instance deployments run
// on the in-process store; anything behind a load balancer should use Redis
// so all replicas share one window per key.
func NewFromConfig(cfg *config.Config, client *goRedis.Client, ot otel.Otel) Limiter {
	if cfg.App.RateLimiter.Backend == constant.RateLimiterBackendRedis {
		return New(NewRedisStore(client), ot)
	}

	return New(NewMemoryStore(), ot)
}

func (l *limiterImpl) Limit(ctx context.Context, key string, maxCount, windowSeconds int) (res Result, err error) {
	ctx, scope := l.otel.NewScope(ctx, constant.OtelLimiterScopeName, constant.OtelLimiterScopeName+".Limit")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttribute("limiter.key", key)

	window := time.Duration(windowSeconds) * time.Second

	count, reset, err := l.store.Incr(ctx, key, window)
	if err != nil {
		return Result{}, fmt.Errorf("failed to increment rate-limit counter: %w", err)
	}

	res = Result{
		Limit: maxCount,
		Reset: reset,
	}

	if count > int64(maxCount) {
		res.Success = false
		res.Remaining = 0

		return res, nil
	}

	res.Success = true
	res.Remaining = maxCount - int(count)

	return res, nil
}
