package dto

import (
	"time"

	"studio-site-api/internal/application/prototype"
)

// PrototypeGenerateRequest multipart 表单字段；logo 文件单独读取
type PrototypeGenerateRequest struct {
	CompanyName string `form:"companyName"`
	Offer       string `form:"offer"`
	Audience    string `form:"audience"`
	PrimaryCTA  string `form:"primaryCta"`
	Pages       string `form:"pages"`
	Tone        string `form:"tone"`
	Notes       string `form:"notes"`

	// 旧版表单字段
	BusinessName string `form:"businessName"`
	Description  string `form:"description"`
	Industry     string `form:"industry"`
	ServiceArea  string `form:"serviceArea"`
}

// ToBriefInput 转换为应用层输入结构
func (r *PrototypeGenerateRequest) ToBriefInput() prototype.BriefInput {
	return prototype.BriefInput{
		CompanyName:  r.CompanyName,
		Offer:        r.Offer,
		Audience:     r.Audience,
		PrimaryCTA:   r.PrimaryCTA,
		Pages:        r.Pages,
		Tone:         r.Tone,
		Notes:        r.Notes,
		BusinessName: r.BusinessName,
		Description:  r.Description,
		Industry:     r.Industry,
		ServiceArea:  r.ServiceArea,
	}
}

// PrototypeGenerateResponse 生成结果
type PrototypeGenerateResponse struct {
	Result   *prototype.SitePlan     `json:"result"`
	Recovery string                  `json:"recovery"`
	Usage    *PrototypeUsageResponse `json:"usage,omitempty"`
}

// PrototypeUsageResponse LLM 使用量信息
type PrototypeUsageResponse struct {
	Provider         string  `json:"provider,omitempty"`
	Model            string  `json:"model,omitempty"`
	PromptTokens     int     `json:"prompt_tokens,omitempty"`
	CompletionTokens int     `json:"completion_tokens,omitempty"`
	Temperature      float32 `json:"temperature,omitempty"`
	DurationMs       int     `json:"duration_ms,omitempty"`
	GeneratedAt      string  `json:"generated_at,omitempty"`
}

// NewPrototypeGenerateResponse 由应用层输出构建响应
func NewPrototypeGenerateResponse(out *prototype.GenerateOutput, duration time.Duration) *PrototypeGenerateResponse {
	resp := &PrototypeGenerateResponse{
		Result:   out.Plan,
		Recovery: string(out.Strategy),
	}
	if out.Meta != nil {
		resp.Usage = &PrototypeUsageResponse{
			Provider:         out.Meta.Provider,
			Model:            out.Meta.Model,
			PromptTokens:     out.Meta.PromptTokens,
			CompletionTokens: out.Meta.CompletionTokens,
			Temperature:      out.Meta.Temperature,
			DurationMs:       int(duration.Milliseconds()),
			GeneratedAt:      out.Meta.GeneratedAt.Format(time.RFC3339),
		}
	}
	return resp
}

// IssuesFrom 转换校验问题列表
func IssuesFrom(issues []prototype.Issue) []Issue {
	out := make([]Issue, 0, len(issues))
	for _, is := range issues {
		out = append(out, Issue{Path: is.Path, Message: is.Message})
	}
	return out
}
