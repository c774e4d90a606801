package prototype

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	wfnode "studio-site-api/internal/workflow/node"
)

const (
	defaultSitemapPurpose = "Describe the page purpose."
	fallbackPageHeadline  = "Prototype outline"
	maxFallbackSubcopy    = 800
)

type fieldNormalizer struct {
	field string
	apply func(doc map[string]any)
}

// 每个规则只在对应字段呈现已知错误形态时改写；已合规的文档保持不变
var normalizers = []fieldNormalizer{
	{field: "brand", apply: normalizeBrand},
	{field: "sitemap", apply: normalizeSitemap},
	{field: "pages", apply: normalizePages},
	{field: "files", apply: normalizeFiles},
}

// Normalize 修正模型常见的结构偏差；非对象输入视为空对象
func Normalize(value any) map[string]any {
	doc, ok := value.(map[string]any)
	if !ok {
		doc = map[string]any{}
	}
	for _, n := range normalizers {
		n.apply(doc)
	}
	return doc
}

// normalizeBrand 解析字符串形式的 JSON 对象；仍不是对象时使用默认品牌
func normalizeBrand(doc map[string]any) {
	if s, ok := doc["brand"].(string); ok && looksLikeJSON(s) {
		if parsed, err := decodeStrict(s); err == nil {
			if obj, ok := parsed.(map[string]any); ok {
				doc["brand"] = obj
			}
		}
	}
	if _, ok := doc["brand"].(map[string]any); ok {
		return
	}

	name := "Brand"
	if raw, present := doc["brand"]; present && raw != nil {
		name = stringify(raw)
	}
	doc["brand"] = fallbackBrand(name)
}

// normalizeSitemap 字符串列表展开为 {path, purpose}
func normalizeSitemap(doc map[string]any) {
	list, ok := doc["sitemap"].([]any)
	if !ok || len(list) == 0 {
		return
	}
	if _, first := list[0].(string); !first {
		return
	}
	entries := make([]any, 0, len(list))
	for _, item := range list {
		entries = append(entries, map[string]any{
			"path":    stringify(item),
			"purpose": defaultSitemapPurpose,
		})
	}
	doc["sitemap"] = entries
}

func normalizePages(doc map[string]any) {
	switch pages := doc["pages"].(type) {
	case string:
		doc["pages"] = pagesFromString(pages)
	case []any:
		doc["pages"] = pagesFromList(pages)
	}

	pages, ok := doc["pages"].(map[string]any)
	if !ok {
		return
	}
	for _, page := range pages {
		if p, ok := page.(map[string]any); ok {
			normalizeSections(p)
		}
	}
}

// pagesFromString 字符串能解析为对象时使用该对象，否则退化为单页大纲
func pagesFromString(s string) any {
	if looksLikeJSON(s) {
		if parsed, err := decodeStrict(s); err == nil {
			if obj, ok := parsed.(map[string]any); ok {
				return obj
			}
		}
	}
	return map[string]any{
		"/": map[string]any{
			"sections": []any{
				map[string]any{
					"id":       "hero",
					"headline": fallbackPageHeadline,
					"subcopy":  wfnode.TruncateByRunes(s, maxFallbackSubcopy),
					"ctas":     []any{},
				},
			},
		},
	}
}

// pagesFromList 以 route/path/slug 中第一个有效值为键；后出现的同键条目覆盖前者
func pagesFromList(list []any) map[string]any {
	out := make(map[string]any, len(list))
	for _, item := range list {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		route := ""
		for _, key := range []string{"route", "path", "slug"} {
			if v := obj[key]; truthy(v) {
				route = stringify(v)
				break
			}
		}
		if route == "" {
			continue
		}
		sections, ok := obj["sections"].([]any)
		if !ok {
			sections = []any{}
		}
		out[route] = map[string]any{"sections": sections}
	}
	return out
}

// normalizeSections 展开字符串形式的区块，并逐字段补齐缺失值
func normalizeSections(page map[string]any) {
	sections, ok := page["sections"].([]any)
	if !ok {
		return
	}

	if len(sections) > 0 {
		if _, first := sections[0].(string); first {
			expanded := make([]any, 0, len(sections))
			for i, s := range sections {
				expanded = append(expanded, map[string]any{
					"id":       sectionID(i),
					"headline": stringify(s),
					"subcopy":  "",
					"ctas":     []any{},
				})
			}
			sections = expanded
		}
	}

	rebuilt := make([]any, 0, len(sections))
	for i, s := range sections {
		sec, _ := s.(map[string]any)
		rebuilt = append(rebuilt, map[string]any{
			"id":       stringOr(sec, "id", sectionID(i)),
			"headline": stringOr(sec, "headline", ""),
			"subcopy":  stringOr(sec, "subcopy", ""),
			"ctas":     stringList(sec["ctas"]),
		})
	}
	page["sections"] = rebuilt
}

// normalizeFiles 字符串列表无法还原内容，直接移除
func normalizeFiles(doc map[string]any) {
	list, ok := doc["files"].([]any)
	if !ok || len(list) == 0 {
		return
	}
	if _, first := list[0].(string); first {
		delete(doc, "files")
	}
}

func sectionID(i int) string {
	return fmt.Sprintf("section-%d", i+1)
}

func looksLikeJSON(s string) bool {
	t := strings.TrimSpace(s)
	return strings.HasPrefix(t, "{") || strings.HasPrefix(t, "[")
}

// stringOr 字段缺失或为 null 时返回 def
func stringOr(obj map[string]any, key, def string) string {
	v, ok := obj[key]
	if !ok || v == nil {
		return def
	}
	return stringify(v)
}

func stringList(v any) []any {
	list, ok := v.([]any)
	if !ok {
		return []any{}
	}
	out := make([]any, 0, len(list))
	for _, item := range list {
		out = append(out, stringify(item))
	}
	return out
}

// stringify 标量按字面转换，null 记为 "null"。
// 数组逐项转换后以逗号拼接，其中 null 项为空串；对象保留 JSON 文本
func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case string:
		return t
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case []any:
		parts := make([]string, len(t))
		for i, item := range t {
			if item != nil {
				parts[i] = stringify(item)
			}
		}
		return strings.Join(parts, ",")
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(b)
	}
}

func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return t != ""
	case bool:
		return t
	case json.Number:
		f, err := t.Float64()
		return err != nil || f != 0
	case float64:
		return t != 0
	default:
		return true
	}
}
