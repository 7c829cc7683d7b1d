package snapshot

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/gmercad/EDSG/internal/domain"
)

func TestValidatorAcceptsWellFormedRequests(t *testing.T) {
	v := NewValidator()

	cases := []domain.IndicatorRequest{
		{CountryCode: "USA", IndicatorCodes: []string{"NY.GDP.MKTP.CD"}, Year: 2022},
		{CountryCode: "DEU", IndicatorCodes: []string{"NY.GDP.MKTP.CD", "FP.CPI.TOTL.ZG"}},
		{CountryCode: "JPN", IndicatorCodes: []string{"SH.DYN.MORT"}, Year: 1960},
		{CountryCode: "GBR", IndicatorCodes: []string{"GC.DOD.TOTL.GD.ZS"}, Year: time.Now().Year()},
	}

	for _, req := range cases {
		assert.NoError(t, v.Validate(req), "request %+v", req)
	}
}

func TestValidatorRejectsMalformedRequests(t *testing.T) {
	v := NewValidator()

	cases := []struct {
		name string
		req  domain.IndicatorRequest
	}{
		{"empty country", domain.IndicatorRequest{IndicatorCodes: []string{"NY.GDP.MKTP.CD"}}},
		{"numeric country", domain.IndicatorRequest{CountryCode: "U5A", IndicatorCodes: []string{"NY.GDP.MKTP.CD"}}},
		{"four letters", domain.IndicatorRequest{CountryCode: "USAA", IndicatorCodes: []string{"NY.GDP.MKTP.CD"}}},
		{"no indicators", domain.IndicatorRequest{CountryCode: "USA"}},
		{"indicator without dots", domain.IndicatorRequest{CountryCode: "USA", IndicatorCodes: []string{"GDP"}}},
		{"indicator with spaces", domain.IndicatorRequest{CountryCode: "USA", IndicatorCodes: []string{"NY GDP"}}},
		{"indicator trailing dot", domain.IndicatorRequest{CountryCode: "USA", IndicatorCodes: []string{"NY.GDP."}}},
		{"year too early", domain.IndicatorRequest{CountryCode: "USA", IndicatorCodes: []string{"NY.GDP.MKTP.CD"}, Year: 1959}},
		{"year in the future", domain.IndicatorRequest{CountryCode: "USA", IndicatorCodes: []string{"NY.GDP.MKTP.CD"}, Year: time.Now().Year() + 1}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, v.Validate(tc.req), domain.ErrInvalidRequest)
		})
	}
}

func TestBuildPromptSkipsNullObservations(t *testing.T) {
	prompt := buildPrompt("United States", 2022, []domain.Indicator{
		{
			Code: "NY.GDP.MKTP.CD",
			Name: "GDP (current US$)",
			Values: []domain.ObservedValue{
				{Year: "2022", Value: floatPtr(25462700000000)},
				{Year: "2021", Value: nil},
			},
		},
	})

	assert.NotEmpty(t, prompt.Instructions)
	assert.Contains(t, prompt.Input, "United States")
	assert.Contains(t, prompt.Input, "GDP (current US$) (NY.GDP.MKTP.CD)")
	assert.Contains(t, prompt.Input, "2022:")
	assert.NotContains(t, prompt.Input, "2021:")
}
