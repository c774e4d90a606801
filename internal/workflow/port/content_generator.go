package port

import (
	"context"
	"errors"

	wfmodel "studio-site-api/internal/workflow/model"
)

// ErrMissingAPIKey 模型凭证未配置；在任何网络调用之前返回
var ErrMissingAPIKey = errors.New("model api key not configured")

// ContentGenerator 定义工作流层对生成模型的最小依赖（port）。
// 实现必须只发起一次同步调用，不做重试。
type ContentGenerator interface {
	Generate(ctx context.Context, req *wfmodel.GenerateRequest) (*wfmodel.GenerateResult, error)
	Provider() string
}
