// Package catalog is the static mapping of known World Bank indicator
// codes to display names, plus the country list served by the API. It is
// a leaf: no dependencies, no I/O. Unknown codes are still fetchable;
// the catalog only provides display names and the browse endpoints.
package catalog

// IndicatorInfo describes one known economic indicator.
type IndicatorInfo struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// CountryInfo describes one known country.
type CountryInfo struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

var indicators = []IndicatorInfo{
	{Code: "NY.GDP.MKTP.CD", Name: "GDP (current US$)"},
	{Code: "NY.GDP.MKTP.KD.ZG", Name: "GDP growth (annual %)"},
	{Code: "NY.GDP.PCAP.CD", Name: "GDP per capita (current US$)"},
	{Code: "FP.CPI.TOTL.ZG", Name: "Inflation, consumer prices (annual %)"},
	{Code: "SL.UEM.TOTL.ZS", Name: "Unemployment, total (% of total labor force)"},
	{Code: "NE.EXP.GNFS.ZS", Name: "Exports of goods and services (% of GDP)"},
	{Code: "NE.IMP.GNFS.ZS", Name: "Imports of goods and services (% of GDP)"},
	{Code: "GC.DOD.TOTL.GD.ZS", Name: "Central government debt, total (% of GDP)"},
	{Code: "SE.ADT.LITR.ZS", Name: "Literacy rate, adult total (% of people ages 15 and above)"},
	{Code: "SH.DYN.MORT", Name: "Under-5 mortality rate, per 1,000 live births"},
}

var countries = []CountryInfo{
	{Code: "USA", Name: "United States"},
	{Code: "CHN", Name: "China"},
	{Code: "DEU", Name: "Germany"},
	{Code: "JPN", Name: "Japan"},
	{Code: "GBR", Name: "United Kingdom"},
	{Code: "IND", Name: "India"},
	{Code: "BRA", Name: "Brazil"},
	{Code: "FRA", Name: "France"},
	{Code: "ITA", Name: "Italy"},
	{Code: "CAN", Name: "Canada"},
}

var indicatorNames = func() map[string]string {
	names := make(map[string]string, len(indicators))
	for _, ind := range indicators {
		names[ind.Code] = ind.Name
	}
	return names
}()

var countryNames = func() map[string]string {
	names := make(map[string]string, len(countries))
	for _, c := range countries {
		names[c.Code] = c.Name
	}
	return names
}()

// Indicators returns the known indicators in catalog order.
func Indicators() []IndicatorInfo {
	out := make([]IndicatorInfo, len(indicators))
	copy(out, indicators)
	return out
}

// Countries returns the known countries in catalog order.
func Countries() []CountryInfo {
	out := make([]CountryInfo, len(countries))
	copy(out, countries)
	return out
}

// IndicatorName returns the display name for a known indicator code.
func IndicatorName(code string) (string, bool) {
	name, ok := indicatorNames[code]
	return name, ok
}

// CountryName returns the display name for a known ISO3 country code.
func CountryName(code string) (string, bool) {
	name, ok := countryNames[code]
	return name, ok
}
