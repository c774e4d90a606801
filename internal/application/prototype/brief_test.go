package prototype

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveBrief_Defaults(t *testing.T) {
	b, err := ResolveBrief(BriefInput{CompanyName: " Acme "})
	require.NoError(t, err)

	assert.Equal(t, Brief{
		CompanyName: "Acme",
		Offer:       "Prototype website build",
		Audience:    "Founders and operators",
		PrimaryCTA:  "Request a prototype",
		Pages:       "Home, Services, Workflows, Resources, Contact, Prototype",
		Tone:        "Premium, minimal, conversion-first, no hype",
	}, b)
}

func TestResolveBrief_LegacyFields(t *testing.T) {
	b, err := ResolveBrief(BriefInput{
		BusinessName: "Acme Plumbing",
		Description:  "Emergency repairs",
		Industry:     "Trades",
		ServiceArea:  "Austin",
	})
	require.NoError(t, err)

	assert.Equal(t, "Acme Plumbing", b.CompanyName)
	assert.Equal(t, "Emergency repairs", b.Offer)
	assert.Equal(t, "Trades — Austin — Emergency repairs", b.Audience)
}

func TestResolveBrief_AudienceTruncated(t *testing.T) {
	b, err := ResolveBrief(BriefInput{
		CompanyName: "Acme",
		Description: strings.Repeat("x", 1000),
	})
	require.NoError(t, err)
	assert.Len(t, []rune(b.Audience), maxAudienceRunes)
}

func TestResolveBrief_MissingCompany(t *testing.T) {
	_, err := ResolveBrief(BriefInput{Offer: "x"})
	var berr *BriefError
	require.ErrorAs(t, err, &berr)
	assert.Equal(t, []string{"companyName"}, berr.Missing)
}

func TestBriefValidate_ListsAllMissing(t *testing.T) {
	err := Brief{Notes: "n"}.Validate()
	var berr *BriefError
	require.ErrorAs(t, err, &berr)
	assert.Equal(t, []string{"companyName", "offer", "audience", "primaryCta", "pages", "tone"}, berr.Missing)
}
