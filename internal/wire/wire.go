//go:build wireinject
// +build wireinject

// Package wire 提供依赖注入配置
package wire

import (
	"context"

	"github.com/google/wire"

	"studio-site-api/internal/application/lead"
	"studio-site-api/internal/config"
	"studio-site-api/internal/infrastructure/sheets"
	"studio-site-api/internal/interfaces/http/handler"
	"studio-site-api/internal/interfaces/http/router"
)

// RedisSet Redis 提供者集合（可选）
var RedisSet = wire.NewSet(
	ProvideRedisClientOptional,
	ProvideRateLimiter,
)

// PrototypeSet 原型生成提供者集合
var PrototypeSet = wire.NewSet(
	ProvideGeminiClient,
	ProvidePrototypePlanChain,
	ProvidePrototypeGenerator,
)

// LeadSet 线索表单提供者集合
var LeadSet = wire.NewSet(
	ProvideMailer,
	ProvideSheetsClient,
	wire.Bind(new(lead.SheetAppender), new(*sheets.WebhookClient)),
	ProvideLeadService,
)

// RouterSet 路由器提供者集合
var RouterSet = wire.NewSet(
	handler.NewHealthHandler,
	handler.NewPrototypeHandler,
	handler.NewLeadHandler,
	handler.NewVoiceHandler,
	wire.Struct(new(router.RouterHandlers), "*"),
	router.NewWithDeps,
)

// InitializeApp 初始化整个应用（带路由器）
func InitializeApp(ctx context.Context, cfg *config.Config) (*router.Router, func(), error) {
	wire.Build(
		RedisSet,
		PrototypeSet,
		LeadSet,
		RouterSet,
	)
	return nil, nil, nil
}
