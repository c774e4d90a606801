package redis

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLimiter(t *testing.T) (*RateLimiter, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewRateLimiter(Wrap(rdb)), mr
}

func TestRateLimiter_AllowsThenRejects(t *testing.T) {
	l, _ := newTestLimiter(t)
	ctx := context.Background()
	key := BuildClientRateLimitKey("leads", "10.0.0.1")

	for i := 0; i < 3; i++ {
		d, err := l.Allow(ctx, key, 3, time.Minute)
		require.NoError(t, err)
		assert.True(t, d.Allowed, "request %d", i)
		assert.Equal(t, 2-i, d.Remaining)
	}

	d, err := l.Allow(ctx, key, 3, time.Minute)
	require.NoError(t, err)
	assert.False(t, d.Allowed)
	assert.Greater(t, d.RetryAfter, time.Duration(0))
	assert.LessOrEqual(t, d.RetryAfter, time.Minute)
}

func TestRateLimiter_KeysAreIndependent(t *testing.T) {
	l, _ := newTestLimiter(t)
	ctx := context.Background()

	d, err := l.Allow(ctx, BuildClientRateLimitKey("leads", "a"), 1, time.Minute)
	require.NoError(t, err)
	assert.True(t, d.Allowed)

	d, err = l.Allow(ctx, BuildClientRateLimitKey("leads", "b"), 1, time.Minute)
	require.NoError(t, err)
	assert.True(t, d.Allowed)
}

func TestRateLimiter_WindowSlides(t *testing.T) {
	l, _ := newTestLimiter(t)
	ctx := context.Background()
	now := time.Unix(1_700_000_000, 0)
	l.now = func() time.Time { return now }

	d, err := l.Allow(ctx, "k", 1, time.Minute)
	require.NoError(t, err)
	require.True(t, d.Allowed)

	d, err = l.Allow(ctx, "k", 1, time.Minute)
	require.NoError(t, err)
	assert.False(t, d.Allowed)

	now = now.Add(61 * time.Second)
	d, err = l.Allow(ctx, "k", 1, time.Minute)
	require.NoError(t, err)
	assert.True(t, d.Allowed)
}

func TestRateLimiter_ConcurrentCallersShareLimit(t *testing.T) {
	l, mr := newTestLimiter(t)
	ctx := context.Background()
	key := BuildClientRateLimitKey("leads", "10.0.0.9")

	const limit, callers = 5, 40
	var (
		wg      sync.WaitGroup
		allowed atomic.Int32
	)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			d, err := l.Allow(ctx, key, limit, time.Minute)
			if assert.NoError(t, err) && d.Allowed {
				allowed.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(limit), allowed.Load())
	members, err := mr.ZMembers(key)
	require.NoError(t, err)
	assert.Len(t, members, limit)
	assert.Greater(t, mr.TTL(key), time.Duration(0))
}

func TestClient_HealthCheck(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	c := Wrap(rdb)
	defer c.Close()

	assert.NoError(t, c.HealthCheck(context.Background()))
	mr.Close()
	assert.Error(t, c.HealthCheck(context.Background()))
}
