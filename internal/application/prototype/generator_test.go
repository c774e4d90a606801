package prototype

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	wfchain "studio-site-api/internal/workflow/chain"
	wfmodel "studio-site-api/internal/workflow/model"
	workflowport "studio-site-api/internal/workflow/port"
)

type stubGenerator struct {
	text  string
	err   error
	calls int
	req   *wfmodel.GenerateRequest
}

func (s *stubGenerator) Generate(_ context.Context, req *wfmodel.GenerateRequest) (*wfmodel.GenerateResult, error) {
	s.calls++
	s.req = req
	if s.err != nil {
		return nil, s.err
	}
	return &wfmodel.GenerateResult{Text: s.text, Model: "stub"}, nil
}

func (s *stubGenerator) Provider() string { return "stub" }

func testBrief() Brief {
	return Brief{
		CompanyName: "Acme",
		Offer:       "Plumbing",
		Audience:    "Homeowners",
		PrimaryCTA:  "Book",
		Pages:       "Home",
		Tone:        "Warm",
	}
}

func newTestGenerator(gen workflowport.ContentGenerator) *Generator {
	return NewGenerator(wfchain.NewPrototypePlanChain(gen, nil), 0.2)
}

func TestGenerator_Success(t *testing.T) {
	stub := &stubGenerator{text: "```json\n" + canonicalPlan + "\n```"}
	out, err := newTestGenerator(stub).Generate(context.Background(), testBrief(), &Logo{Data: []byte("png")})
	require.NoError(t, err)

	assert.Equal(t, 1, stub.calls)
	assert.Equal(t, StrategyStrict, out.Strategy)
	assert.Equal(t, "Acme", out.Plan.Brand.Name)
	assert.Equal(t, "stub", out.Meta.Provider)

	require.NotNil(t, stub.req.Image)
	assert.Equal(t, "image/png", stub.req.Image.MIMEType)
	assert.Contains(t, stub.req.Prompt, `"fileNameExpected": "client-logo.png"`)
	assert.Equal(t, []any{"brand", "sitemap", "pages"}, stub.req.ResponseSchema["required"])
}

func TestGenerator_ParseFailure(t *testing.T) {
	_, err := newTestGenerator(&stubGenerator{text: "not json at all"}).Generate(context.Background(), testBrief(), nil)

	var perr *ParseFailure
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "not json at all", perr.Raw)
}

func TestGenerator_ValidationFailure(t *testing.T) {
	_, err := newTestGenerator(&stubGenerator{text: `{"sitemap":[{"path":""}]}`}).Generate(context.Background(), testBrief(), nil)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.NotEmpty(t, verr.Issues)
}

func TestGenerator_InvocationError(t *testing.T) {
	boom := errors.New("upstream 503")
	stub := &stubGenerator{err: boom}
	_, err := newTestGenerator(stub).Generate(context.Background(), testBrief(), nil)

	var ierr *InvocationError
	require.ErrorAs(t, err, &ierr)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, stub.calls)
}

func TestGenerator_DeadlineIsInvocationError(t *testing.T) {
	stub := &stubGenerator{err: fmt.Errorf("gemini generate content: %w", context.DeadlineExceeded)}
	_, err := newTestGenerator(stub).Generate(context.Background(), testBrief(), nil)

	var ierr *InvocationError
	require.ErrorAs(t, err, &ierr)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.False(t, IsConfigError(err))
	assert.Equal(t, 1, stub.calls)
}

func TestGenerator_MissingKey(t *testing.T) {
	_, err := newTestGenerator(&stubGenerator{err: workflowport.ErrMissingAPIKey}).Generate(context.Background(), testBrief(), nil)
	assert.True(t, IsConfigError(err))

	_, err = newTestGenerator(nil).Generate(context.Background(), testBrief(), nil)
	assert.True(t, IsConfigError(err))
}

func TestGenerator_InvalidBriefSkipsModel(t *testing.T) {
	stub := &stubGenerator{text: canonicalPlan}
	b := testBrief()
	b.Tone = "  "

	_, err := newTestGenerator(stub).Generate(context.Background(), b, nil)
	var berr *BriefError
	require.ErrorAs(t, err, &berr)
	assert.Equal(t, []string{"tone"}, berr.Missing)
	assert.Zero(t, stub.calls)
}
