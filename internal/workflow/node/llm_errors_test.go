package node

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyLLMError(t *testing.T) {
	cases := map[string]struct {
		err  error
		want string
	}{
		"nil":          {err: nil, want: "success"},
		"deadline":     {err: fmt.Errorf("call: %w", context.DeadlineExceeded), want: "timeout"},
		"canceled":     {err: context.Canceled, want: "canceled"},
		"quota":        {err: errors.New("Error 429, Message: quota, Status: RESOURCE_EXHAUSTED"), want: "rate_limited"},
		"bad key":      {err: errors.New("API key not valid. Please pass a valid API key."), want: "auth"},
		"bad argument": {err: errors.New("Status: INVALID_ARGUMENT"), want: "invalid_request"},
		"other":        {err: errors.New("connection reset"), want: "error"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, ClassifyLLMError(tc.err))
		})
	}
}
