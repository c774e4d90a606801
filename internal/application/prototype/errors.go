package prototype

import (
	"errors"

	workflowport "studio-site-api/internal/workflow/port"
)

// ErrMissingAPIKey 模型凭证未配置
var ErrMissingAPIKey = workflowport.ErrMissingAPIKey

// ParseFailure 所有恢复步骤均失败；Raw 为截断后的模型输出
type ParseFailure struct {
	Raw string
}

func (e *ParseFailure) Error() string {
	return "model did not return valid JSON"
}

// InvocationError 模型调用失败（网络、超时、服务端拒绝）
type InvocationError struct {
	Err error
}

func (e *InvocationError) Error() string {
	if e.Err == nil {
		return "model invocation failed"
	}
	return "model invocation failed: " + e.Err.Error()
}

func (e *InvocationError) Unwrap() error { return e.Err }

// IsConfigError 判断是否为凭证缺失
func IsConfigError(err error) bool {
	return errors.Is(err, ErrMissingAPIKey)
}
