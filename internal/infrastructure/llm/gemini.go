package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"google.golang.org/genai"

	"studio-site-api/internal/config"
	wfmodel "studio-site-api/internal/workflow/model"
	wfnode "studio-site-api/internal/workflow/node"
	workflowport "studio-site-api/internal/workflow/port"
	"studio-site-api/pkg/metrics"
)

const (
	ProviderGemini = "gemini"
	DefaultModel   = "gemini-3-flash-preview"
)

var _ workflowport.ContentGenerator = (*GeminiClient)(nil)

// GeminiClient 基于官方 genai SDK 的单次同步生成客户端
type GeminiClient struct {
	cli     *genai.Client
	model   string
	timeout time.Duration
}

// NewGeminiClient APIKey 为空时返回未配置的客户端，调用 Generate 时报 ErrMissingAPIKey
func NewGeminiClient(ctx context.Context, cfg *config.GeminiConfig) (*GeminiClient, error) {
	g := &GeminiClient{
		model:   strings.TrimSpace(cfg.Model),
		timeout: cfg.Timeout,
	}
	if g.model == "" {
		g.model = DefaultModel
	}

	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return g, nil
	}

	cc := &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)},
	}
	if base := strings.TrimSpace(cfg.BaseURL); base != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: base}
	}

	cli, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	g.cli = cli
	return g, nil
}

func (g *GeminiClient) Provider() string { return ProviderGemini }

// Model 返回实际使用的模型名
func (g *GeminiClient) Model() string { return g.model }

// Configured 是否已配置凭证
func (g *GeminiClient) Configured() bool { return g != nil && g.cli != nil }

// Generate 只发起一次请求，不做重试
func (g *GeminiClient) Generate(ctx context.Context, req *wfmodel.GenerateRequest) (*wfmodel.GenerateResult, error) {
	if !g.Configured() {
		return nil, workflowport.ErrMissingAPIKey
	}
	if req == nil {
		return nil, fmt.Errorf("generate request is nil")
	}

	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	parts := []*genai.Part{genai.NewPartFromText(req.Prompt)}
	if req.Image != nil && len(req.Image.Data) > 0 {
		parts = append(parts, genai.NewPartFromBytes(req.Image.Data, req.Image.MIMEType))
	}
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	gcfg := &genai.GenerateContentConfig{
		ResponseMIMEType: req.ResponseMIMEType,
		Temperature:      genai.Ptr(req.Temperature),
	}
	if s := strings.TrimSpace(req.SystemInstruction); s != "" {
		gcfg.SystemInstruction = genai.NewContentFromText(s, genai.RoleUser)
	}
	if len(req.ResponseSchema) > 0 {
		gcfg.ResponseJsonSchema = req.ResponseSchema
	}

	start := time.Now()
	resp, err := g.cli.Models.GenerateContent(ctx, g.model, contents, gcfg)
	metrics.LLMCallDuration.WithLabelValues(ProviderGemini, g.model).Observe(time.Since(start).Seconds())
	metrics.LLMCallTotal.WithLabelValues(ProviderGemini, g.model, wfnode.ClassifyLLMError(err)).Inc()
	if err != nil {
		return nil, fmt.Errorf("gemini generate content: %w", err)
	}

	out := &wfmodel.GenerateResult{Text: resp.Text(), Model: g.model}
	if u := resp.UsageMetadata; u != nil {
		out.Usage.PromptTokens = int(u.PromptTokenCount)
		out.Usage.CompletionTokens = int(u.CandidatesTokenCount)
		metrics.LLMTokensUsed.WithLabelValues(ProviderGemini, g.model, "prompt").Add(float64(u.PromptTokenCount))
		metrics.LLMTokensUsed.WithLabelValues(ProviderGemini, g.model, "completion").Add(float64(u.CandidatesTokenCount))
	}
	return out, nil
}
