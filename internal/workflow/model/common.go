package model

import "time"

// LLMUsageMeta 一次生成调用的元信息，随结果返回给调用方记录
type LLMUsageMeta struct {
	Provider         string
	Model            string
	PromptTokens     int
	CompletionTokens int
	Temperature      float32
	GeneratedAt      time.Time
}
