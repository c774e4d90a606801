package chain

import (
	"context"
	"fmt"
	"strings"
	"time"

	wfmodel "studio-site-api/internal/workflow/model"
	workflowport "studio-site-api/internal/workflow/port"
	workflowprompt "studio-site-api/internal/workflow/prompt"
	"studio-site-api/pkg/logger"
)

const (
	defaultPrototypeTemperature float32 = 0.2
	defaultLogoMIMEType                 = "image/png"
)

// PrototypePlanChain 组装提示词并调用一次生成模型，返回模型原始文本
type PrototypePlanChain struct {
	generator workflowport.ContentGenerator
	registry  *workflowprompt.Registry
}

func NewPrototypePlanChain(generator workflowport.ContentGenerator, registry *workflowprompt.Registry) *PrototypePlanChain {
	if registry == nil {
		registry = workflowprompt.NewRegistry()
	}
	return &PrototypePlanChain{generator: generator, registry: registry}
}

// Invoke 不做重试；凭证缺失时返回 ErrMissingAPIKey
func (c *PrototypePlanChain) Invoke(ctx context.Context, in *wfmodel.PrototypePlanInput) (*wfmodel.GenerateResult, *wfmodel.LLMUsageMeta, error) {
	if c == nil || c.generator == nil {
		return nil, nil, workflowport.ErrMissingAPIKey
	}
	if in == nil {
		return nil, nil, fmt.Errorf("input is nil")
	}

	req, err := c.BuildRequest(in)
	if err != nil {
		return nil, nil, err
	}

	start := time.Now()
	res, err := c.generator.Generate(ctx, req)
	if err != nil {
		return nil, nil, err
	}
	if res == nil {
		return nil, nil, fmt.Errorf("empty llm response")
	}

	logger.Debug(ctx, "prototype plan generated",
		"provider", c.generator.Provider(),
		"model", res.Model,
		"chars", len(res.Text),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	meta := &wfmodel.LLMUsageMeta{
		Provider:         c.generator.Provider(),
		Model:            res.Model,
		PromptTokens:     res.Usage.PromptTokens,
		CompletionTokens: res.Usage.CompletionTokens,
		Temperature:      req.Temperature,
		GeneratedAt:      time.Now().UTC(),
	}
	return res, meta, nil
}

// BuildRequest 只读取输入，不访问网络
func (c *PrototypePlanChain) BuildRequest(in *wfmodel.PrototypePlanInput) (*wfmodel.GenerateRequest, error) {
	tpl, err := c.registry.Template(workflowprompt.PromptPrototypePlanV1)
	if err != nil {
		return nil, err
	}

	user, err := tpl.RenderUser(prototypePromptVars{
		CompanyName: strings.TrimSpace(in.CompanyName),
		Offer:       strings.TrimSpace(in.Offer),
		Audience:    strings.TrimSpace(in.Audience),
		PrimaryCTA:  strings.TrimSpace(in.PrimaryCTA),
		Pages:       strings.TrimSpace(in.Pages),
		Tone:        strings.TrimSpace(in.Tone),
		Notes:       strings.TrimSpace(in.Notes),
		Example:     strings.TrimSpace(in.Example),
	})
	if err != nil {
		return nil, err
	}

	system := tpl.System
	var image *wfmodel.InlineImage
	if in.Logo != nil && len(in.Logo.Data) > 0 {
		system = system + "\n\n" + tpl.Logo
		mime := strings.TrimSpace(in.Logo.MIMEType)
		if mime == "" {
			mime = defaultLogoMIMEType
		}
		image = &wfmodel.InlineImage{MIMEType: mime, Data: in.Logo.Data}
	}

	temperature := defaultPrototypeTemperature
	if in.Temperature != nil {
		temperature = *in.Temperature
	}

	return &wfmodel.GenerateRequest{
		SystemInstruction: system,
		Prompt:            user,
		Image:             image,
		ResponseMIMEType:  "application/json",
		ResponseSchema:    in.ResponseSchema,
		Temperature:       temperature,
	}, nil
}

type prototypePromptVars struct {
	CompanyName string
	Offer       string
	Audience    string
	PrimaryCTA  string
	Pages       string
	Tone        string
	Notes       string
	Example     string
}
