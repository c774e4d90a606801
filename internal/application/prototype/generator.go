package prototype

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	wfchain "studio-site-api/internal/workflow/chain"
	wfmodel "studio-site-api/internal/workflow/model"
	"studio-site-api/pkg/logger"
	"studio-site-api/pkg/metrics"
	"studio-site-api/pkg/tracer"
)

// GenerateOutput 成功生成的站点方案及调用元信息
type GenerateOutput struct {
	Plan     *SitePlan
	Strategy Strategy
	Meta     *wfmodel.LLMUsageMeta
}

type Generator struct {
	chain       *wfchain.PrototypePlanChain
	temperature *float32
	example     string
	schema      map[string]any
}

// NewGenerator temperature <= 0 时使用默认值
func NewGenerator(chain *wfchain.PrototypePlanChain, temperature float64) *Generator {
	g := &Generator{chain: chain, example: mustExampleJSON(), schema: mustPlanSchema()}
	if temperature > 0 {
		t := float32(temperature)
		g.temperature = &t
	}
	return g
}

// Generate 单次调用模型并恢复、归一化、校验输出。
// 错误类型：ErrMissingAPIKey、*InvocationError、*ParseFailure、*ValidationError
func (g *Generator) Generate(ctx context.Context, brief Brief, logo *Logo) (*GenerateOutput, error) {
	ctx, span := tracer.Start(ctx, "prototype.generate")
	defer span.End()

	if err := brief.Validate(); err != nil {
		tracer.Fail(span, err)
		return nil, err
	}

	in := &wfmodel.PrototypePlanInput{
		CompanyName:    brief.CompanyName,
		Offer:          brief.Offer,
		Audience:       brief.Audience,
		PrimaryCTA:     brief.PrimaryCTA,
		Pages:          brief.Pages,
		Tone:           brief.Tone,
		Notes:          brief.Notes,
		Example:        g.example,
		ResponseSchema: g.schema,
		Temperature:    g.temperature,
	}
	if logo != nil && len(logo.Data) > 0 {
		in.Logo = &wfmodel.InlineImage{MIMEType: logo.MIMEType, Data: logo.Data}
		span.SetAttributes(attribute.Int("prototype.logo_bytes", len(logo.Data)))
	}

	res, meta, err := g.chain.Invoke(ctx, in)
	if err != nil {
		tracer.Fail(span, err)
		if IsConfigError(err) {
			metrics.PlanOutcomeTotal.WithLabelValues("misconfigured").Inc()
			return nil, ErrMissingAPIKey
		}
		metrics.PlanOutcomeTotal.WithLabelValues("invocation_failed").Inc()
		return nil, &InvocationError{Err: err}
	}

	rec := Recover(res.Text)
	metrics.RecoveryTotal.WithLabelValues(string(rec.Strategy)).Inc()
	span.SetAttributes(attribute.String("prototype.recovery_strategy", string(rec.Strategy)))
	if rec.ParseFailed {
		metrics.PlanOutcomeTotal.WithLabelValues("parse_failed").Inc()
		logger.Warn(ctx, "model output could not be recovered as json",
			"model", res.Model,
			"raw_chars", len(res.Text),
		)
		perr := &ParseFailure{Raw: rec.Raw}
		tracer.Fail(span, perr)
		return nil, perr
	}
	if rec.Strategy != StrategyStrict {
		logger.Info(ctx, "model output recovered",
			"strategy", string(rec.Strategy),
			"model", res.Model,
		)
	}

	plan, err := Validate(Normalize(rec.Value))
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			metrics.PlanValidationIssues.Observe(float64(len(verr.Issues)))
			logger.Warn(ctx, "site plan failed validation",
				"issues", len(verr.Issues),
				"first_issue", verr.Issues[0].String(),
			)
		}
		metrics.PlanOutcomeTotal.WithLabelValues("validation_failed").Inc()
		tracer.Fail(span, err)
		return nil, err
	}

	metrics.PlanOutcomeTotal.WithLabelValues("ok").Inc()
	span.SetAttributes(
		attribute.Int("prototype.pages", len(plan.Pages)),
		attribute.Int("prototype.sitemap", len(plan.Sitemap)),
	)
	return &GenerateOutput{Plan: plan, Strategy: rec.Strategy, Meta: meta}, nil
}

func mustExampleJSON() string {
	b, err := json.MarshalIndent(examplePlan, "", "  ")
	if err != nil {
		panic(fmt.Sprintf("marshal example plan: %v", err))
	}
	return string(b)
}
