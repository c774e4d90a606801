package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel/attribute"
)

// Decision 一次限流判定结果
type Decision struct {
	Allowed   bool
	Remaining int
	// RetryAfter 被拒绝时距窗口内最早一次请求过期的时间
	RetryAfter time.Duration
}

// slidingWindowScript 在一次原子执行内完成窗口判定与写入，并发请求不会同时通过最后一个名额。
// 返回 {allowed, count, oldestScore}；窗口为空时 oldestScore 为 -1
var slidingWindowScript = redis.NewScript(`
local key = KEYS[1]
redis.call('ZREMRANGEBYSCORE', key, '-inf', ARGV[2])
local count = redis.call('ZCARD', key)
if count >= tonumber(ARGV[3]) then
	local oldest = redis.call('ZRANGE', key, 0, 0, 'WITHSCORES')
	if oldest[2] then
		return {0, count, tonumber(oldest[2])}
	end
	return {0, count, -1}
end
redis.call('ZADD', key, ARGV[1], ARGV[4])
redis.call('PEXPIRE', key, ARGV[5])
return {1, count, -1}
`)

// RateLimiter 滑动窗口限流器
type RateLimiter struct {
	client *Client
	now    func() time.Time
}

// NewRateLimiter 创建限流器
func NewRateLimiter(client *Client) *RateLimiter {
	return &RateLimiter{client: client, now: time.Now}
}

// Allow 检查是否允许请求（滑动窗口算法）；被拒绝的请求不计入窗口
func (l *RateLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (Decision, error) {
	ctx, span := tracer.Start(ctx, "ratelimit.Allow")
	span.SetAttributes(
		attribute.String("ratelimit.key", key),
		attribute.Int("ratelimit.limit", limit),
		attribute.Int64("ratelimit.window_ms", window.Milliseconds()),
	)
	defer span.End()

	now := l.now().UnixMilli()
	windowStart := now - window.Milliseconds()
	// 成员带随机后缀，同一毫秒内的多次请求分别计数
	member := fmt.Sprintf("%d-%s", now, uuid.NewString())

	res, err := slidingWindowScript.Run(ctx, l.client.rdb, []string{key},
		now, windowStart, limit, member, (window * 2).Milliseconds(),
	).Int64Slice()
	if err != nil {
		span.RecordError(err)
		return Decision{}, err
	}
	if len(res) != 3 {
		err := fmt.Errorf("unexpected rate limit script reply: %v", res)
		span.RecordError(err)
		return Decision{}, err
	}

	allowed, count, oldest := res[0] == 1, int(res[1]), res[2]
	span.SetAttributes(
		attribute.Int("ratelimit.current_count", count),
		attribute.Bool("ratelimit.allowed", allowed),
	)

	if !allowed {
		d := Decision{Allowed: false, RetryAfter: window}
		if oldest >= 0 {
			d.RetryAfter = time.Duration(oldest+window.Milliseconds()-now) * time.Millisecond
		}
		return d, nil
	}
	return Decision{Allowed: true, Remaining: limit - count - 1}, nil
}

// BuildClientRateLimitKey 构建按客户端 IP 的限流键
func BuildClientRateLimitKey(scope, clientIP string) string {
	return fmt.Sprintf("ratelimit:%s:%s", scope, clientIP)
}
