package node

import (
	"context"
	"errors"
	"strings"
)

// ClassifyLLMError 将模型调用错误归类为指标标签
func ClassifyLLMError(err error) string {
	if err == nil {
		return "success"
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "timeout"
	}
	if errors.Is(err, context.Canceled) {
		return "canceled"
	}
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "resource_exhausted"):
		return "rate_limited"
	case strings.Contains(msg, "429"):
		return "rate_limited"
	case strings.Contains(msg, "permission_denied"):
		return "auth"
	case strings.Contains(msg, "api key not valid"):
		return "auth"
	case strings.Contains(msg, "invalid_argument"):
		return "invalid_request"
	case strings.Contains(msg, "deadline"):
		return "timeout"
	default:
		return "error"
	}
}
