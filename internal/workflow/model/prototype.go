package model

// PrototypePlanInput 站点方案生成的输入；字段均已合并默认值
type PrototypePlanInput struct {
	CompanyName string
	Offer       string
	Audience    string
	PrimaryCTA  string
	Pages       string
	Tone        string
	Notes       string

	// Example 目标结构的 JSON 示例文本
	Example string
	Logo    *InlineImage

	// ResponseSchema 输出结构的 JSON Schema 提示；为空时不下发
	ResponseSchema map[string]any

	Temperature *float32
}
