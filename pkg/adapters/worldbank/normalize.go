package worldbank

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"github.com/gmercad/EDSG/internal/domain"
)

// Normalizer converts raw World Bank payloads into canonical indicator
// series.
//
// Ordering policy: observations are stable-sorted by year descending;
// entries whose years compare equal, or whose year is not numeric, keep
// the relative order the provider returned them in.
type Normalizer struct{}

// NewNormalizer creates a response normalizer.
func NewNormalizer() *Normalizer {
	return &Normalizer{}
}

// seriesRow is one observation as the v2 API reports it. Value is a
// pointer because the provider reports years with no observation as
// explicit nulls, and "no data" must stay distinguishable from zero.
type seriesRow struct {
	Indicator struct {
		ID    string `json:"id"`
		Value string `json:"value"`
	} `json:"indicator"`
	Country struct {
		ID    string `json:"id"`
		Value string `json:"value"`
	} `json:"country"`
	CountryISO3 string   `json:"countryiso3code"`
	Date        string   `json:"date"`
	Value       *float64 `json:"value"`
	Unit        string   `json:"unit"`
	ObsStatus   string   `json:"obs_status"`
}

// Normalize interprets one raw payload as a time series. The expected
// shape is a two-element array [metadata, rows]; anything else is a
// contract violation. A null rows element (the provider's way of saying
// "no observations in range") normalizes to an empty series.
func (n *Normalizer) Normalize(raw domain.RawSeries, indicatorCode string) (domain.NormalizedSeries, error) {
	var envelope []json.RawMessage
	if err := json.Unmarshal(raw.Payload, &envelope); err != nil {
		return domain.NormalizedSeries{}, fmt.Errorf("%w: %v", domain.ErrMalformedResponse, err)
	}
	if len(envelope) != 2 {
		return domain.NormalizedSeries{}, fmt.Errorf(
			"%w: expected [metadata, rows] envelope, got %d elements",
			domain.ErrMalformedResponse, len(envelope))
	}

	var rows []seriesRow
	if err := json.Unmarshal(envelope[1], &rows); err != nil {
		return domain.NormalizedSeries{}, fmt.Errorf("%w: rows element: %v", domain.ErrMalformedResponse, err)
	}

	indicator := domain.Indicator{
		Code:   indicatorCode,
		Values: make([]domain.ObservedValue, 0, len(rows)),
	}
	countryName := ""

	for _, row := range rows {
		if indicator.Name == "" {
			indicator.Name = row.Indicator.Value
		}
		if countryName == "" {
			countryName = row.Country.Value
		}

		indicator.Values = append(indicator.Values, domain.ObservedValue{
			Year:      row.Date,
			Value:     row.Value,
			Unit:      row.Unit,
			ObsStatus: row.ObsStatus,
		})
	}

	sortByYearDesc(indicator.Values)

	return domain.NormalizedSeries{Indicator: indicator, CountryName: countryName}, nil
}

func sortByYearDesc(values []domain.ObservedValue) {
	sort.SliceStable(values, func(i, j int) bool {
		yi, errI := strconv.Atoi(values[i].Year)
		yj, errJ := strconv.Atoi(values[j].Year)
		if errI != nil || errJ != nil {
			return false
		}
		return yi > yj
	})
}
