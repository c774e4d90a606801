package model

// InlineImage 随请求内联发送的图片（例如客户 logo）
type InlineImage struct {
	MIMEType string
	Data     []byte
}

// GenerateRequest 一次结构化生成请求；构造后不再修改
type GenerateRequest struct {
	SystemInstruction string
	Prompt            string
	Image             *InlineImage

	// ResponseMIMEType 期望的输出格式提示，如 application/json
	ResponseMIMEType string
	// ResponseSchema JSON Schema 形式的输出结构提示
	ResponseSchema map[string]any
	Temperature    float32
}

// GenerateResult 模型返回的原始文本及用量
type GenerateResult struct {
	Text  string
	Model string
	Usage LLMUsage
}

// LLMUsage Token 用量
type LLMUsage struct {
	PromptTokens     int
	CompletionTokens int
}
