package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRateCardEncode(t *testing.T) {
	rc := RateCard{
		Rates: []Rate{
			{Label: "Instagram Reel", Amount: "$1,200"},
			{Label: "TikTok Video", Amount: "$900"},
			{Label: "", Amount: "$5"},
		},
		UsageRights: "+30% per month",
		Exclusivity: "+50% for 90 days",
	}

	assert.Equal(t,
		"Instagram Reel: $1,200\nTikTok Video: $900\nUsage Rights: +30% per month\nExclusivity: +50% for 90 days",
		rc.Encode())
}

func TestParseRateCard(t *testing.T) {
	raw := "Instagram Reel: $1,200\r\n\nYouTube Integration: $2,000: negotiable\nUsage Rights: +30%\nExclusivity: +50%\nbundle discounts available"

	rc := ParseRateCard(raw)

	assert.Equal(t, []Rate{
		{Label: "Instagram Reel", Amount: "$1,200"},
		{Label: "YouTube Integration", Amount: "$2,000: negotiable"},
	}, rc.Rates)
	assert.Equal(t, "+30%", rc.UsageRights)
	assert.Equal(t, "+50%", rc.Exclusivity)
	assert.Equal(t, []string{"bundle discounts available"}, rc.Extra)
}

func TestParseRateCardEmpty(t *testing.T) {
	rc := ParseRateCard("")
	assert.Empty(t, rc.Rates)
	assert.Empty(t, rc.UsageRights)
	assert.Equal(t, "", rc.Encode())
}
