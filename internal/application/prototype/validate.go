package prototype

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Issue 单条结构校验问题
type Issue struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

func (i Issue) String() string {
	return i.Path + ": " + i.Message
}

// ValidationError 归一化后仍不满足结构约束；包含全部问题而非第一条
type ValidationError struct {
	Issues []Issue
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Issues))
	for _, is := range e.Issues {
		parts = append(parts, is.String())
	}
	return "site plan validation failed: " + strings.Join(parts, "; ")
}

// Validate 校验归一化后的文档并转换为 SitePlan；未知字段被丢弃
func Validate(doc map[string]any) (*SitePlan, error) {
	v := &planValidator{}
	plan := &SitePlan{
		Brand:   v.brand(doc),
		Sitemap: v.sitemap(doc),
		Pages:   v.pages(doc),
		Files:   v.files(doc),
	}
	if len(v.issues) > 0 {
		return nil, &ValidationError{Issues: v.issues}
	}
	return plan, nil
}

type planValidator struct {
	issues []Issue
}

func (v *planValidator) add(path, format string, args ...any) {
	v.issues = append(v.issues, Issue{Path: path, Message: fmt.Sprintf(format, args...)})
}

// object 读取必填对象字段；path 为该字段的完整路径
func (v *planValidator) object(parent map[string]any, key, path string) (map[string]any, bool) {
	raw, present := parent[key]
	if !present {
		v.add(path, "is required")
		return nil, false
	}
	obj, ok := raw.(map[string]any)
	if !ok {
		v.add(path, "expected object, got %s", kindOf(raw))
		return nil, false
	}
	return obj, true
}

func (v *planValidator) list(parent map[string]any, key, path string) ([]any, bool) {
	raw, present := parent[key]
	if !present {
		v.add(path, "is required")
		return nil, false
	}
	list, ok := raw.([]any)
	if !ok {
		v.add(path, "expected array, got %s", kindOf(raw))
		return nil, false
	}
	return list, true
}

func (v *planValidator) str(parent map[string]any, key, path string) string {
	raw, present := parent[key]
	if !present {
		v.add(path, "is required")
		return ""
	}
	s, ok := raw.(string)
	if !ok {
		v.add(path, "expected string, got %s", kindOf(raw))
		return ""
	}
	return s
}

func (v *planValidator) nonEmptyStr(parent map[string]any, key, path string) string {
	before := len(v.issues)
	s := v.str(parent, key, path)
	if len(v.issues) == before && s == "" {
		v.add(path, "must not be empty")
	}
	return s
}

func (v *planValidator) boolean(parent map[string]any, key, path string) bool {
	raw, present := parent[key]
	if !present {
		v.add(path, "is required")
		return false
	}
	b, ok := raw.(bool)
	if !ok {
		v.add(path, "expected boolean, got %s", kindOf(raw))
		return false
	}
	return b
}

func (v *planValidator) strList(list []any, path string) []string {
	out := make([]string, 0, len(list))
	for i, item := range list {
		s, ok := item.(string)
		if !ok {
			v.add(indexPath(path, i), "expected string, got %s", kindOf(item))
			continue
		}
		out = append(out, s)
	}
	return out
}

func (v *planValidator) brand(doc map[string]any) Brand {
	var b Brand
	obj, ok := v.object(doc, "brand", "brand")
	if !ok {
		return b
	}

	b.Name = v.str(obj, "name", "brand.name")
	b.Tagline = v.str(obj, "tagline", "brand.tagline")
	b.Voice = []string{}
	if voice, ok := v.list(obj, "voice", "brand.voice"); ok {
		b.Voice = v.strList(voice, "brand.voice")
	}
	if colors, ok := v.object(obj, "colors", "brand.colors"); ok {
		b.Colors = BrandColors{
			Background: v.str(colors, "background", "brand.colors.background"),
			Foreground: v.str(colors, "foreground", "brand.colors.foreground"),
			Accent:     v.str(colors, "accent", "brand.colors.accent"),
		}
	}
	if typo, ok := v.object(obj, "typography", "brand.typography"); ok {
		b.Typography = Typography{
			Primary: v.str(typo, "primary", "brand.typography.primary"),
			Accent:  v.str(typo, "accent", "brand.typography.accent"),
		}
	}
	if lp, ok := v.object(obj, "logoPlacement", "brand.logoPlacement"); ok {
		b.LogoPlacement = LogoPlacement{
			Navbar:           v.boolean(lp, "navbar", "brand.logoPlacement.navbar"),
			Footer:           v.boolean(lp, "footer", "brand.logoPlacement.footer"),
			SizeHint:         v.str(lp, "sizeHint", "brand.logoPlacement.sizeHint"),
			FileNameExpected: v.str(lp, "fileNameExpected", "brand.logoPlacement.fileNameExpected"),
		}
	}
	return b
}

func (v *planValidator) sitemap(doc map[string]any) []SitemapEntry {
	out := []SitemapEntry{}
	list, ok := v.list(doc, "sitemap", "sitemap")
	if !ok {
		return out
	}
	for i, item := range list {
		path := indexPath("sitemap", i)
		obj, ok := item.(map[string]any)
		if !ok {
			v.add(path, "expected object, got %s", kindOf(item))
			continue
		}
		out = append(out, SitemapEntry{
			Path:    v.nonEmptyStr(obj, "path", path+".path"),
			Purpose: v.nonEmptyStr(obj, "purpose", path+".purpose"),
		})
	}
	return out
}

func (v *planValidator) pages(doc map[string]any) map[string]Page {
	out := map[string]Page{}
	pages, ok := v.object(doc, "pages", "pages")
	if !ok {
		return out
	}

	routes := make([]string, 0, len(pages))
	for route := range pages {
		routes = append(routes, route)
	}
	sort.Strings(routes)

	for _, route := range routes {
		path := "pages." + route
		page, ok := pages[route].(map[string]any)
		if !ok {
			v.add(path, "expected object, got %s", kindOf(pages[route]))
			continue
		}
		sections, ok := v.list(page, "sections", path+".sections")
		if !ok {
			continue
		}
		p := Page{Sections: make([]Section, 0, len(sections))}
		for i, item := range sections {
			secPath := indexPath(path+".sections", i)
			sec, ok := item.(map[string]any)
			if !ok {
				v.add(secPath, "expected object, got %s", kindOf(item))
				continue
			}
			p.Sections = append(p.Sections, v.section(sec, secPath))
		}
		out[route] = p
	}
	return out
}

// section 中 ctas 可缺省，缺省视为空列表
func (v *planValidator) section(sec map[string]any, path string) Section {
	s := Section{
		ID:       v.str(sec, "id", path+".id"),
		Headline: v.str(sec, "headline", path+".headline"),
		Subcopy:  v.str(sec, "subcopy", path+".subcopy"),
		CTAs:     []string{},
	}
	if _, present := sec["ctas"]; present {
		if ctas, ok := v.list(sec, "ctas", path+".ctas"); ok {
			s.CTAs = v.strList(ctas, path+".ctas")
		}
	}
	return s
}

func (v *planValidator) files(doc map[string]any) []File {
	if _, present := doc["files"]; !present {
		return nil
	}
	list, ok := v.list(doc, "files", "files")
	if !ok {
		return nil
	}
	out := make([]File, 0, len(list))
	for i, item := range list {
		path := indexPath("files", i)
		obj, ok := item.(map[string]any)
		if !ok {
			v.add(path, "expected object, got %s", kindOf(item))
			continue
		}
		out = append(out, File{
			Path:    v.str(obj, "path", path+".path"),
			Content: v.str(obj, "content", path+".content"),
		})
	}
	return out
}

func indexPath(path string, i int) string {
	return fmt.Sprintf("%s[%d]", path, i)
}

func kindOf(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case json.Number, float64:
		return "number"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}
