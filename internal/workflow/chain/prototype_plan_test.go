package chain

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	wfmodel "studio-site-api/internal/workflow/model"
	workflowport "studio-site-api/internal/workflow/port"
)

type fakeGenerator struct {
	got  *wfmodel.GenerateRequest
	text string
	err  error
}

func (f *fakeGenerator) Generate(_ context.Context, req *wfmodel.GenerateRequest) (*wfmodel.GenerateResult, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &wfmodel.GenerateResult{
		Text:  f.text,
		Model: "fake-model",
		Usage: wfmodel.LLMUsage{PromptTokens: 10, CompletionTokens: 20},
	}, nil
}

func (f *fakeGenerator) Provider() string { return "fake" }

func sampleInput() *wfmodel.PrototypePlanInput {
	return &wfmodel.PrototypePlanInput{
		CompanyName:    "Acme",
		Offer:          "Plumbing",
		Audience:       "Homeowners",
		PrimaryCTA:     "Book now",
		Pages:          "Home, Contact",
		Tone:           "Warm",
		Example:        `{"brand":{}}`,
		ResponseSchema: map[string]any{"required": []any{"brand", "sitemap", "pages"}},
	}
}

func TestBuildRequest_WithoutLogo(t *testing.T) {
	c := NewPrototypePlanChain(&fakeGenerator{}, nil)
	req, err := c.BuildRequest(sampleInput())
	require.NoError(t, err)

	assert.Contains(t, req.Prompt, "- Company: Acme")
	assert.Contains(t, req.Prompt, "- Primary CTA: Book now")
	assert.Contains(t, req.Prompt, "- Notes: \n")
	assert.Contains(t, req.Prompt, `{"brand":{}}`)
	assert.Contains(t, req.SystemInstruction, "STRICT JSON")
	assert.NotContains(t, req.SystemInstruction, "client-logo")
	assert.Nil(t, req.Image)
	assert.Equal(t, "application/json", req.ResponseMIMEType)
	assert.InDelta(t, 0.2, req.Temperature, 1e-6)
	assert.Equal(t, []any{"brand", "sitemap", "pages"}, req.ResponseSchema["required"])
}

func TestBuildRequest_NoSchemaHint(t *testing.T) {
	in := sampleInput()
	in.ResponseSchema = nil

	req, err := NewPrototypePlanChain(&fakeGenerator{}, nil).BuildRequest(in)
	require.NoError(t, err)
	assert.Nil(t, req.ResponseSchema)
}

func TestBuildRequest_WithLogo(t *testing.T) {
	in := sampleInput()
	in.Logo = &wfmodel.InlineImage{Data: []byte{0x89, 'P', 'N', 'G'}}

	req, err := NewPrototypePlanChain(&fakeGenerator{}, nil).BuildRequest(in)
	require.NoError(t, err)

	require.NotNil(t, req.Image)
	assert.Equal(t, "image/png", req.Image.MIMEType)
	assert.Contains(t, req.SystemInstruction, "client-logo")
}

func TestBuildRequest_EmptyLogoIgnored(t *testing.T) {
	in := sampleInput()
	in.Logo = &wfmodel.InlineImage{MIMEType: "image/svg+xml"}

	req, err := NewPrototypePlanChain(&fakeGenerator{}, nil).BuildRequest(in)
	require.NoError(t, err)
	assert.Nil(t, req.Image)
}

func TestInvoke(t *testing.T) {
	gen := &fakeGenerator{text: `{"ok":true}`}
	res, meta, err := NewPrototypePlanChain(gen, nil).Invoke(context.Background(), sampleInput())
	require.NoError(t, err)

	assert.Equal(t, `{"ok":true}`, res.Text)
	assert.Equal(t, "fake", meta.Provider)
	assert.Equal(t, 20, meta.CompletionTokens)
	require.NotNil(t, gen.got)
}

func TestInvoke_GeneratorError(t *testing.T) {
	boom := errors.New("boom")
	_, _, err := NewPrototypePlanChain(&fakeGenerator{err: boom}, nil).Invoke(context.Background(), sampleInput())
	assert.ErrorIs(t, err, boom)
}

func TestInvoke_NoGenerator(t *testing.T) {
	_, _, err := NewPrototypePlanChain(nil, nil).Invoke(context.Background(), sampleInput())
	assert.ErrorIs(t, err, workflowport.ErrMissingAPIKey)
}
