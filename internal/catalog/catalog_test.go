package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndicatorsAreStable(t *testing.T) {
	first := Indicators()
	require.NotEmpty(t, first)
	assert.Equal(t, "NY.GDP.MKTP.CD", first[0].Code)

	// Callers get copies, never the backing slice.
	first[0].Name = "mutated"
	again := Indicators()
	assert.Equal(t, "GDP (current US$)", again[0].Name)
}

func TestCountriesAreStable(t *testing.T) {
	first := Countries()
	require.NotEmpty(t, first)
	assert.Equal(t, "USA", first[0].Code)

	first[0].Name = "mutated"
	again := Countries()
	assert.Equal(t, "United States", again[0].Name)
}

func TestNameLookups(t *testing.T) {
	name, ok := IndicatorName("FP.CPI.TOTL.ZG")
	require.True(t, ok)
	assert.Equal(t, "Inflation, consumer prices (annual %)", name)

	_, ok = IndicatorName("XX.NOT.HERE")
	assert.False(t, ok)

	name, ok = CountryName("IND")
	require.True(t, ok)
	assert.Equal(t, "India", name)

	_, ok = CountryName("ZZZ")
	assert.False(t, ok)
}

func TestEveryEntryHasCodeAndName(t *testing.T) {
	for _, ind := range Indicators() {
		assert.NotEmpty(t, ind.Code)
		assert.NotEmpty(t, ind.Name)
	}
	for _, c := range Countries() {
		assert.Len(t, c.Code, 3)
		assert.NotEmpty(t, c.Name)
	}
}
