package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testStart = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func setupTestRedis(t *testing.T) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr: "localhost:6379",
		DB:   15,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("Redis not available: %v", err)
	}

	client.FlushDB(ctx)
	t.Cleanup(func() {
		client.FlushDB(ctx)
		client.Close()
	})

	return client
}

// limiterFactory returns a fresh limiter and a pointer to its clock.
type limiterFactory func(t *testing.T) (Limiter, *time.Time)

func TestMemoryLimiter(t *testing.T) {
	runLimiterTests(t, func(t *testing.T) (Limiter, *time.Time) {
		clock := testStart
		l := NewMemoryLimiter()
		l.now = func() time.Time { return clock }
		return l, &clock
	})
}

func TestRedisLimiter(t *testing.T) {
	client := setupTestRedis(t)
	runLimiterTests(t, func(t *testing.T) (Limiter, *time.Time) {
		client.FlushDB(context.Background())
		clock := testStart
		l := NewRedisLimiter(client)
		l.now = func() time.Time { return clock }
		return l, &clock
	})
}

func runLimiterTests(t *testing.T, newLimiter limiterFactory) {
	t.Run("allows up to limit", func(t *testing.T) {
		l, _ := newLimiter(t)
		ctx := context.Background()
		for i := range 3 {
			allowed, err := l.Allow(ctx, "login:1.2.3.4", 3, time.Minute)
			require.NoError(t, err)
			assert.True(t, allowed, "attempt %d", i+1)
		}

		allowed, err := l.Allow(ctx, "login:1.2.3.4", 3, time.Minute)
		require.NoError(t, err)
		assert.False(t, allowed)

		// other keys are counted separately
		allowed, err = l.Allow(ctx, "login:5.6.7.8", 3, time.Minute)
		require.NoError(t, err)
		assert.True(t, allowed)
	})

	t.Run("window slides", func(t *testing.T) {
		l, clock := newLimiter(t)
		ctx := context.Background()
		for range 2 {
			_, err := l.Allow(ctx, "register:ip", 2, time.Minute)
			require.NoError(t, err)
		}
		allowed, err := l.Allow(ctx, "register:ip", 2, time.Minute)
		require.NoError(t, err)
		assert.False(t, allowed)

		*clock = clock.Add(61 * time.Second)

		allowed, err = l.Allow(ctx, "register:ip", 2, time.Minute)
		require.NoError(t, err)
		assert.True(t, allowed)
	})

	t.Run("reset", func(t *testing.T) {
		l, _ := newLimiter(t)
		ctx := context.Background()
		_, err := l.Allow(ctx, "k", 1, time.Minute)
		require.NoError(t, err)

		allowed, err := l.Allow(ctx, "k", 1, time.Minute)
		require.NoError(t, err)
		assert.False(t, allowed)

		require.NoError(t, l.Reset(ctx, "k"))

		allowed, err = l.Allow(ctx, "k", 1, time.Minute)
		require.NoError(t, err)
		assert.True(t, allowed)
	})

	t.Run("zero limit disables", func(t *testing.T) {
		l, _ := newLimiter(t)
		for range 5 {
			allowed, err := l.Allow(context.Background(), "k", 0, time.Minute)
			require.NoError(t, err)
			assert.True(t, allowed)
		}
	})
}
