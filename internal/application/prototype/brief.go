package prototype

import (
	"strings"

	wfnode "studio-site-api/internal/workflow/node"
)

const maxAudienceRunes = 600

// BriefInput 表单原始字段，包含旧版表单的兼容字段
type BriefInput struct {
	CompanyName string
	Offer       string
	Audience    string
	PrimaryCTA  string
	Pages       string
	Tone        string
	Notes       string

	// 旧版表单字段
	BusinessName string
	Description  string
	Industry     string
	ServiceArea  string
}

// BriefError 列出合并默认值后仍为空的必填字段
type BriefError struct {
	Missing []string
}

func (e *BriefError) Error() string {
	return "missing required brief fields: " + strings.Join(e.Missing, ", ")
}

// ResolveBrief 合并新旧字段与默认值，并校验必填项
func ResolveBrief(in BriefInput) (Brief, error) {
	description := strings.TrimSpace(in.Description)

	b := Brief{
		CompanyName: firstNonBlank(in.CompanyName, in.BusinessName),
		Offer:       firstNonBlank(in.Offer, description, "Prototype website build"),
		Audience: firstNonBlank(
			in.Audience,
			wfnode.TruncateByRunes(wfnode.JoinNonBlank(" — ", in.Industry, in.ServiceArea, description), maxAudienceRunes),
			"Founders and operators",
		),
		PrimaryCTA: firstNonBlank(in.PrimaryCTA, "Request a prototype"),
		Pages:      firstNonBlank(in.Pages, "Home, Services, Workflows, Resources, Contact, Prototype"),
		Tone:       firstNonBlank(in.Tone, "Premium, minimal, conversion-first, no hype"),
		Notes:      strings.TrimSpace(in.Notes),
	}
	if err := b.Validate(); err != nil {
		return Brief{}, err
	}
	return b, nil
}

// Validate 检查除 Notes 外的字段去空白后非空
func (b Brief) Validate() error {
	required := []struct {
		name  string
		value string
	}{
		{"companyName", b.CompanyName},
		{"offer", b.Offer},
		{"audience", b.Audience},
		{"primaryCta", b.PrimaryCTA},
		{"pages", b.Pages},
		{"tone", b.Tone},
	}
	var missing []string
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return &BriefError{Missing: missing}
	}
	return nil
}

func firstNonBlank(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
