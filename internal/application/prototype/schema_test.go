package prototype

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanSchema_FollowsSitePlan(t *testing.T) {
	s, err := PlanSchema()
	require.NoError(t, err)

	assert.Equal(t, "object", s["type"])
	assert.Equal(t, []any{"brand", "sitemap", "pages"}, s["required"])

	props := s["properties"].(map[string]any)
	assert.Contains(t, props, "files")

	brand := props["brand"].(map[string]any)
	assert.Equal(t, []any{"name", "tagline", "voice", "colors", "typography", "logoPlacement"}, brand["required"])
	placement := brand["properties"].(map[string]any)["logoPlacement"].(map[string]any)
	assert.Equal(t, "boolean", placement["properties"].(map[string]any)["navbar"].(map[string]any)["type"])

	pages := props["pages"].(map[string]any)
	assert.Equal(t, "object", pages["type"])
	assert.Contains(t, pages["description"], "never a string or array")
	page := pages["additionalProperties"].(map[string]any)
	section := page["properties"].(map[string]any)["sections"].(map[string]any)["items"].(map[string]any)
	assert.Equal(t, []any{"id", "headline", "subcopy", "ctas"}, section["required"])
}

func TestPlanSchema_ReturnsCopies(t *testing.T) {
	a, err := PlanSchema()
	require.NoError(t, err)
	a["required"] = []any{}

	b, err := PlanSchema()
	require.NoError(t, err)
	assert.Equal(t, []any{"brand", "sitemap", "pages"}, b["required"])
}
