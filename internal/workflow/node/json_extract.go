package node

import (
	"encoding/json"
	"regexp"
	"strings"
)

// 整段文本被一个 ```json ... ``` 或 ``` ... ``` 包裹时匹配
var outerFence = regexp.MustCompile("(?is)^```(?:json)?\\s*(.*?)\\s*```$")

// StripCodeFence 去掉包裹整段文本的单层 Markdown 代码块；否则仅做 TrimSpace。
func StripCodeFence(s string) string {
	t := strings.TrimSpace(s)
	m := outerFence.FindStringSubmatch(t)
	if m != nil && m[1] != "" {
		return strings.TrimSpace(m[1])
	}
	return t
}

// SliceOuterObject 截取第一个 '{' 到最后一个 '}' 之间的文本（含括号）。
// 模型在合法 JSON 后追加带花括号的说明文字时会截多，调用方需自行兜底。
func SliceOuterObject(s string) (string, bool) {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end <= start {
		return "", false
	}
	return s[start : end+1], true
}

// LeadingObject 从第一个 '{' 开始解码一个完整的 JSON 对象，忽略其后的任何文本。
func LeadingObject(s string) (string, bool) {
	start := strings.Index(s, "{")
	if start < 0 {
		return "", false
	}
	dec := json.NewDecoder(strings.NewReader(s[start:]))
	dec.UseNumber()
	var raw json.RawMessage
	if err := dec.Decode(&raw); err != nil {
		return "", false
	}
	return string(raw), true
}
