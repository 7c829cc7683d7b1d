package worldbank

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gmercad/EDSG/internal/domain"
)

const gdpPayload = `[
  {"page": 1, "pages": 1, "per_page": 1000, "total": 3},
  [
    {
      "indicator": {"id": "NY.GDP.MKTP.CD", "value": "GDP (current US$)"},
      "country": {"id": "US", "value": "United States"},
      "countryiso3code": "USA",
      "date": "2020",
      "value": null,
      "obs_status": "",
      "unit": "",
      "decimal": 0
    },
    {
      "indicator": {"id": "NY.GDP.MKTP.CD", "value": "GDP (current US$)"},
      "country": {"id": "US", "value": "United States"},
      "countryiso3code": "USA",
      "date": "2022",
      "value": 25462700000000,
      "obs_status": "",
      "unit": "",
      "decimal": 0
    },
    {
      "indicator": {"id": "NY.GDP.MKTP.CD", "value": "GDP (current US$)"},
      "country": {"id": "US", "value": "United States"},
      "countryiso3code": "USA",
      "date": "2021",
      "value": 23315080560000,
      "obs_status": "E",
      "unit": "",
      "decimal": 0
    }
  ]
]`

func TestNormalizePreservesNullValues(t *testing.T) {
	n := NewNormalizer()

	normalized, err := n.Normalize(domain.RawSeries{Payload: []byte(gdpPayload)}, "NY.GDP.MKTP.CD")
	require.NoError(t, err)

	require.Len(t, normalized.Indicator.Values, 3)

	var nullYear *domain.ObservedValue
	for i := range normalized.Indicator.Values {
		if normalized.Indicator.Values[i].Year == "2020" {
			nullYear = &normalized.Indicator.Values[i]
		}
	}
	require.NotNil(t, nullYear, "the null observation must not be dropped")
	assert.Nil(t, nullYear.Value, "null must stay null, not become 0")
	assert.Equal(t, "", nullYear.Unit)
	assert.Equal(t, "", nullYear.ObsStatus)
}

func TestNormalizeSortsYearsDescending(t *testing.T) {
	n := NewNormalizer()

	normalized, err := n.Normalize(domain.RawSeries{Payload: []byte(gdpPayload)}, "NY.GDP.MKTP.CD")
	require.NoError(t, err)

	years := make([]string, 0, len(normalized.Indicator.Values))
	for _, v := range normalized.Indicator.Values {
		years = append(years, v.Year)
	}
	assert.Equal(t, []string{"2022", "2021", "2020"}, years)
}

func TestNormalizeExtractsNamesAndStatus(t *testing.T) {
	n := NewNormalizer()

	normalized, err := n.Normalize(domain.RawSeries{Payload: []byte(gdpPayload)}, "NY.GDP.MKTP.CD")
	require.NoError(t, err)

	assert.Equal(t, "NY.GDP.MKTP.CD", normalized.Indicator.Code)
	assert.Equal(t, "GDP (current US$)", normalized.Indicator.Name)
	assert.Equal(t, "United States", normalized.CountryName)

	var estimated *domain.ObservedValue
	for i := range normalized.Indicator.Values {
		if normalized.Indicator.Values[i].Year == "2021" {
			estimated = &normalized.Indicator.Values[i]
		}
	}
	require.NotNil(t, estimated)
	assert.Equal(t, "E", estimated.ObsStatus)
}

func TestNormalizeNullRowsMeansEmptySeries(t *testing.T) {
	n := NewNormalizer()

	payload := `[{"page": 1, "pages": 0, "per_page": 1000, "total": 0}, null]`
	normalized, err := n.Normalize(domain.RawSeries{Payload: []byte(payload)}, "SH.DYN.MORT")
	require.NoError(t, err)

	assert.Empty(t, normalized.Indicator.Values)
	assert.Equal(t, "SH.DYN.MORT", normalized.Indicator.Code)
}

func TestNormalizeRejectsMalformedPayloads(t *testing.T) {
	n := NewNormalizer()

	cases := []struct {
		name    string
		payload string
	}{
		{"not json", `<html>gateway error</html>`},
		{"not an array", `{"message": "hello"}`},
		{"single element", `[{"page": 1}]`},
		{"three elements", `[{}, [], []]`},
		{"rows not objects", `[{"page": 1}, [1, 2, 3]]`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := n.Normalize(domain.RawSeries{Payload: []byte(tc.payload)}, "NY.GDP.MKTP.CD")
			assert.ErrorIs(t, err, domain.ErrMalformedResponse)
		})
	}
}

func TestNormalizeKeepsProviderOrderForYearTies(t *testing.T) {
	n := NewNormalizer()

	payload := `[
	  {"total": 3},
	  [
	    {"indicator": {"id": "X.Y", "value": "X"}, "country": {"id": "US", "value": "United States"}, "date": "2020", "value": 1},
	    {"indicator": {"id": "X.Y", "value": "X"}, "country": {"id": "US", "value": "United States"}, "date": "2020", "value": 2},
	    {"indicator": {"id": "X.Y", "value": "X"}, "country": {"id": "US", "value": "United States"}, "date": "2021", "value": 3}
	  ]
	]`

	normalized, err := n.Normalize(domain.RawSeries{Payload: []byte(payload)}, "X.Y")
	require.NoError(t, err)

	require.Len(t, normalized.Indicator.Values, 3)
	assert.Equal(t, "2021", normalized.Indicator.Values[0].Year)
	// The two 2020 rows keep the order the provider returned them in.
	require.NotNil(t, normalized.Indicator.Values[1].Value)
	require.NotNil(t, normalized.Indicator.Values[2].Value)
	assert.Equal(t, float64(1), *normalized.Indicator.Values[1].Value)
	assert.Equal(t, float64(2), *normalized.Indicator.Values[2].Value)
}
