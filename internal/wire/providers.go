// Package wire 提供依赖注入配置
package wire

import (
	"context"

	"studio-site-api/internal/application/lead"
	"studio-site-api/internal/application/prototype"
	"studio-site-api/internal/config"
	"studio-site-api/internal/infrastructure/email"
	"studio-site-api/internal/infrastructure/llm"
	"studio-site-api/internal/infrastructure/persistence/redis"
	"studio-site-api/internal/infrastructure/sheets"
	"studio-site-api/internal/interfaces/http/middleware"
	wfchain "studio-site-api/internal/workflow/chain"
	"studio-site-api/internal/workflow/prompt"
	"studio-site-api/pkg/logger"
)

// ProvideRedisClientOptional 未启用或不可达时返回 nil，限流随之关闭
func ProvideRedisClientOptional(ctx context.Context, cfg *config.Config) (*redis.Client, func(), error) {
	if !cfg.Cache.Redis.Enabled {
		return nil, func() {}, nil
	}
	client, err := redis.NewClient(&cfg.Cache.Redis)
	if err != nil {
		logger.Warn(ctx, "redis not available, rate limiting disabled", "error", err.Error())
		return nil, func() {}, nil
	}
	cleanup := func() {
		_ = client.Close()
	}
	return client, cleanup, nil
}

// ProvideRateLimiter 返回接口类型，避免 nil 指针被包装成非 nil 接口
func ProvideRateLimiter(client *redis.Client) middleware.Limiter {
	if client == nil {
		return nil
	}
	return redis.NewRateLimiter(client)
}

// ProvideGeminiClient 提供 Gemini 客户端；未配置 key 时仍返回可用对象
func ProvideGeminiClient(ctx context.Context, cfg *config.Config) (*llm.GeminiClient, error) {
	client, err := llm.NewGeminiClient(ctx, &cfg.LLM.Gemini)
	if err != nil {
		return nil, err
	}
	if !client.Configured() {
		logger.Warn(ctx, "gemini api key not set, prototype generation will fail with configuration error")
	}
	return client, nil
}

// ProvidePrototypePlanChain 提供原型方案生成链
func ProvidePrototypePlanChain(client *llm.GeminiClient) *wfchain.PrototypePlanChain {
	return wfchain.NewPrototypePlanChain(client, prompt.NewRegistry())
}

// ProvidePrototypeGenerator 提供原型生成器
func ProvidePrototypeGenerator(chain *wfchain.PrototypePlanChain, cfg *config.Config) *prototype.Generator {
	return prototype.NewGenerator(chain, cfg.LLM.Gemini.Temperature)
}

// ProvideMailer 提供通知邮件发送器
func ProvideMailer(cfg *config.Config) (email.Mailer, error) {
	mailer, err := email.NewResendMailer(&cfg.Email)
	if err != nil {
		return nil, err
	}
	return mailer, nil
}

// ProvideLeadService 提供线索服务
func ProvideLeadService(mailer email.Mailer, appender lead.SheetAppender, cfg *config.Config) *lead.Service {
	return lead.NewService(mailer, appender, &cfg.Sheets)
}

// ProvideSheetsClient 提供表格 webhook 客户端
func ProvideSheetsClient(cfg *config.Config) *sheets.WebhookClient {
	return sheets.NewWebhookClient(&cfg.Sheets)
}
