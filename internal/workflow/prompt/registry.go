package prompt

import (
	"bytes"
	"embed"
	"fmt"
	"strings"
	"sync"
	"text/template"
)

//go:embed templates/*.txt
var templatesFS embed.FS

type PromptID string

const (
	PromptPrototypePlanV1 PromptID = "prototype_plan_v1"
)

// Template 一组 system/user 模板；Logo 为附带图片时追加到 system 的规则
type Template struct {
	System string
	Logo   string
	user   *template.Template
}

// RenderUser 用 data 渲染 user 模板
func (t *Template) RenderUser(data any) (string, error) {
	var buf bytes.Buffer
	if err := t.user.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render user prompt: %w", err)
	}
	return strings.TrimSpace(buf.String()), nil
}

type Registry struct {
	mu    sync.RWMutex
	cache map[PromptID]*Template
}

func NewRegistry() *Registry {
	return &Registry{
		cache: make(map[PromptID]*Template),
	}
}

func (r *Registry) Template(id PromptID) (*Template, error) {
	if r == nil {
		return nil, fmt.Errorf("prompt registry is nil")
	}

	r.mu.RLock()
	if tpl, ok := r.cache[id]; ok {
		r.mu.RUnlock()
		return tpl, nil
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()
	if tpl, ok := r.cache[id]; ok {
		return tpl, nil
	}

	base, err := resolvePromptBase(id)
	if err != nil {
		return nil, err
	}
	system, err := readEmbeddedText(base + ".system.txt")
	if err != nil {
		return nil, err
	}
	logo, err := readEmbeddedText(base + ".logo.txt")
	if err != nil {
		return nil, err
	}
	userText, err := readEmbeddedText(base + ".user.txt")
	if err != nil {
		return nil, err
	}
	user, err := template.New(string(id)).Option("missingkey=error").Parse(userText)
	if err != nil {
		return nil, fmt.Errorf("parse prompt %s: %w", id, err)
	}

	tpl := &Template{System: system, Logo: logo, user: user}
	r.cache[id] = tpl
	return tpl, nil
}

func resolvePromptBase(id PromptID) (string, error) {
	switch id {
	case PromptPrototypePlanV1:
		return "templates/prototype_plan_v1", nil
	default:
		return "", fmt.Errorf("unknown prompt id: %s", id)
	}
}

func readEmbeddedText(path string) (string, error) {
	b, err := templatesFS.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}
