package idgen

import (
	"context"
	"errors"
	"time"

	"github.com/anthanhphan/go-idgen-service/pkg/resilience"
	"github.com/anthanhphan/gosdk/logger"
	"github.com/redis/go-redis/v9"
)

const defaultRedisClockTimeout = 50 * time.Millisecond

// TimeReader is the subset of the Redis client used by RedisClock.
type TimeReader interface {
	Time(ctx context.Context) *redis.TimeCmd
}

// RedisClockOptions tunes RedisClock. Zero values pick defaults.
type RedisClockOptions struct {
	Timeout  time.Duration
	Fallback Clock
	Breaker  *resilience.CircuitBreaker
}

// RedisClock reads the Redis TIME command so every generator of a partition
// shares one time source. When Redis is unreachable it falls back to a local
// clock; a jump between the two sources surfaces as a ClockRegressionError
// from the generator.
type RedisClock struct {
	client   TimeReader
	timeout  time.Duration
	fallback Clock
	breaker  *resilience.CircuitBreaker
}

func NewRedisClock(client TimeReader, opts RedisClockOptions) *RedisClock {
	if opts.Timeout <= 0 {
		opts.Timeout = defaultRedisClockTimeout
	}
	if opts.Fallback == nil {
		opts.Fallback = &SystemClock{}
	}
	if opts.Breaker == nil {
		opts.Breaker = resilience.NewCircuitBreaker(resilience.CircuitBreakerConfig{
			Name:             "redis-clock",
			FailureThreshold: 3,
			SuccessThreshold: 1,
			OpenTimeout:      5 * time.Second,
		})
	}

	return &RedisClock{
		client:   client,
		timeout:  opts.Timeout,
		fallback: opts.Fallback,
		breaker:  opts.Breaker,
	}
}

func (r *RedisClock) Now() int64 {
	var now int64
	err := r.breaker.Execute(context.Background(), func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, r.timeout)
		defer cancel()

		// TIME returns [seconds, microseconds]; go-redis folds both into a time.Time.
		res, err := r.client.Time(ctx).Result()
		if err != nil {
			return err
		}
		now = res.UnixMilli()
		return nil
	})
	if err != nil {
		if !errors.Is(err, resilience.ErrCircuitOpen) {
			logger.Warnw("Redis clock read failed, using local clock", "error", err.Error())
		}
		return r.fallback.Now()
	}

	return now
}
