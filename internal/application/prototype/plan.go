// Package prototype 实现原型生成器：Brief -> 提示词 -> 模型 -> 文本恢复 -> 结构归一化与校验。
package prototype

// Brief 用户提交的业务描述，除 Notes 外均需非空
type Brief struct {
	CompanyName string
	Offer       string
	Audience    string
	PrimaryCTA  string
	Pages       string
	Tone        string
	Notes       string
}

// Logo 可选的 logo 图片
type Logo struct {
	MIMEType string
	Data     []byte
}

// SitePlan 校验通过后的站点方案；校验成功后不再修改
type SitePlan struct {
	Brand   Brand           `json:"brand"`
	Sitemap []SitemapEntry  `json:"sitemap"`
	Pages   map[string]Page `json:"pages" jsonschema:"object keyed by route path, never a string or array"`
	Files   []File          `json:"files,omitzero"`
}

type Brand struct {
	Name          string        `json:"name"`
	Tagline       string        `json:"tagline"`
	Voice         []string      `json:"voice"`
	Colors        BrandColors   `json:"colors"`
	Typography    Typography    `json:"typography"`
	LogoPlacement LogoPlacement `json:"logoPlacement"`
}

type BrandColors struct {
	Background string `json:"background"`
	Foreground string `json:"foreground"`
	Accent     string `json:"accent"`
}

type Typography struct {
	Primary string `json:"primary"`
	Accent  string `json:"accent"`
}

type LogoPlacement struct {
	Navbar           bool   `json:"navbar"`
	Footer           bool   `json:"footer"`
	SizeHint         string `json:"sizeHint"`
	FileNameExpected string `json:"fileNameExpected"`
}

type SitemapEntry struct {
	Path    string `json:"path"`
	Purpose string `json:"purpose"`
}

type Page struct {
	Sections []Section `json:"sections"`
}

type Section struct {
	ID       string   `json:"id"`
	Headline string   `json:"headline"`
	Subcopy  string   `json:"subcopy"`
	CTAs     []string `json:"ctas"`
}

type File struct {
	Path    string `json:"path"`
	Content string `json:"content"`
}

// fallbackBrand 品牌字段无法恢复时使用的默认品牌；不因外观字段让整个请求失败
func fallbackBrand(name string) map[string]any {
	return map[string]any{
		"name":    name,
		"tagline": "High-end systems that convert.",
		"voice":   []any{"Minimal", "Direct", "Confident"},
		"colors": map[string]any{
			"background": "#0B0F1A",
			"foreground": "#FFFFFF",
			"accent":     "#ED4D30",
		},
		"typography": map[string]any{
			"primary": "Geist Sans",
			"accent":  "Redaction Italic",
		},
		"logoPlacement": map[string]any{
			"navbar":           true,
			"footer":           true,
			"sizeHint":         "24–32px height",
			"fileNameExpected": "client-logo.png",
		},
	}
}

// examplePlan 提示词中展示给模型的目标结构示例
var examplePlan = SitePlan{
	Brand: Brand{
		Name:    "Example Co",
		Tagline: "High-end systems that convert.",
		Voice:   []string{"Minimal", "Direct", "Confident"},
		Colors: BrandColors{
			Background: "#0B0F1A",
			Foreground: "#FFFFFF",
			Accent:     "#ED4D30",
		},
		Typography: Typography{Primary: "Geist Sans", Accent: "Redaction Italic"},
		LogoPlacement: LogoPlacement{
			Navbar:           true,
			Footer:           true,
			SizeHint:         "24–32px height",
			FileNameExpected: "client-logo.png",
		},
	},
	Sitemap: []SitemapEntry{
		{Path: "/", Purpose: "Convert visitors into leads"},
		{Path: "/services", Purpose: "Explain offer + deliverables"},
	},
	Pages: map[string]Page{
		"/": {Sections: []Section{{
			ID:       "hero",
			Headline: "Secure your position.",
			Subcopy:  "Short supporting copy.",
			CTAs:     []string{"Start Project"},
		}}},
	},
}
