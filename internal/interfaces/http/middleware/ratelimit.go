// Package middleware 提供 HTTP 中间件
package middleware

import (
	"context"
	"math"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"studio-site-api/internal/infrastructure/persistence/redis"
	"studio-site-api/internal/interfaces/http/dto"
	apperrors "studio-site-api/pkg/errors"
	"studio-site-api/pkg/logger"
	"studio-site-api/pkg/metrics"
)

// RateLimitConfig 限流配置
type RateLimitConfig struct {
	Enabled bool
	// Requests 窗口内允许的请求数
	Requests int
	Window   time.Duration
	// Scope 区分不同路由组的计数
	Scope string
}

// Limiter 限流器接口
type Limiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (redis.Decision, error)
}

// RateLimit 按客户端 IP 的限流中间件；限流器故障时放行
func RateLimit(cfg RateLimitConfig, limiter Limiter) gin.HandlerFunc {
	if !cfg.Enabled || limiter == nil {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	if cfg.Requests <= 0 {
		cfg.Requests = 10
	}
	if cfg.Window <= 0 {
		cfg.Window = time.Minute
	}
	if cfg.Scope == "" {
		cfg.Scope = "default"
	}

	return func(c *gin.Context) {
		ctx := c.Request.Context()
		key := redis.BuildClientRateLimitKey(cfg.Scope, c.ClientIP())

		decision, err := limiter.Allow(ctx, key, cfg.Requests, cfg.Window)
		if err != nil {
			logger.Warn(ctx, "rate limiter unavailable, allowing request", "error", err.Error())
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(cfg.Requests))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(decision.Remaining))

		if !decision.Allowed {
			if decision.RetryAfter > 0 {
				c.Header("Retry-After", strconv.Itoa(int(math.Ceil(decision.RetryAfter.Seconds()))))
			}
			path := c.FullPath()
			if path == "" {
				path = "unknown"
			}
			metrics.RateLimitRejectedTotal.WithLabelValues(path).Inc()
			dto.AbortAppError(c, apperrors.ErrTooManyRequests)
			return
		}

		c.Next()
	}
}
