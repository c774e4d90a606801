package prompt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_PrototypePlan(t *testing.T) {
	r := NewRegistry()
	tpl, err := r.Template(PromptPrototypePlanV1)
	require.NoError(t, err)

	assert.Contains(t, tpl.System, "STRICT JSON")
	assert.Contains(t, tpl.System, "NEVER an array")
	assert.Contains(t, tpl.Logo, "client-logo")

	again, err := r.Template(PromptPrototypePlanV1)
	require.NoError(t, err)
	assert.Same(t, tpl, again)
}

func TestRegistry_UnknownID(t *testing.T) {
	_, err := NewRegistry().Template("nope")
	assert.Error(t, err)
}

func TestTemplate_RenderUserRequiresFields(t *testing.T) {
	tpl, err := NewRegistry().Template(PromptPrototypePlanV1)
	require.NoError(t, err)
	_, err = tpl.RenderUser(map[string]string{"CompanyName": "x"})
	assert.Error(t, err)
}
