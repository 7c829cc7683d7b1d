package domain

import "time"

// IndicatorRequest is the input of the snapshot pipeline: which country,
// which indicator series, which year, and which text-generation backend.
type IndicatorRequest struct {
	CountryCode    string   `json:"country_code"`
	IndicatorCodes []string `json:"indicator_codes"`
	Year           int      `json:"year"`
	LLMProvider    string   `json:"llm_provider"`
}

// ObservedValue is a single data point within an indicator series.
// Value is nil when the provider reported no observation for the year;
// nil is meaningful and must never be collapsed into zero.
type ObservedValue struct {
	Year      string   `json:"year"`
	Value     *float64 `json:"value"`
	Unit      string   `json:"unit"`
	ObsStatus string   `json:"obs_status"`
}

// Indicator is one economic time series. A degraded indicator (fetch or
// normalization failed) keeps its code and name but carries no values.
type Indicator struct {
	Code   string          `json:"code"`
	Name   string          `json:"name"`
	Values []ObservedValue `json:"values"`
}

// Metadata describes how a snapshot was produced. DegradedIndicators and
// NarrativeError surface partial failures that were recovered locally
// instead of failing the request.
type Metadata struct {
	LLMProvider        string   `json:"llm_provider"`
	Year               int      `json:"year"`
	IndicatorCount     int      `json:"indicator_count"`
	DegradedIndicators []string `json:"degraded_indicators,omitempty"`
	NarrativeError     string   `json:"narrative_error,omitempty"`
}

// Snapshot is the combined structured-data-plus-narrative result for one
// request. It is created once per request and immutable afterwards.
type Snapshot struct {
	ID           string      `json:"id"`
	CountryCode  string      `json:"country_code"`
	CountryName  string      `json:"country_name"`
	Indicators   []Indicator `json:"indicators"`
	SnapshotText string      `json:"snapshot_text"`
	GeneratedAt  time.Time   `json:"generated_at"`
	Metadata     Metadata    `json:"metadata"`
}

// SeriesQuery identifies one indicator series to fetch. Year 0 means the
// trailing five calendar years.
type SeriesQuery struct {
	CountryCode   string
	IndicatorCode string
	Year          int
}

// RawSeries is an uninterpreted provider payload for one indicator.
type RawSeries struct {
	Payload []byte
}

// NormalizedSeries is the canonical form of one provider payload. The
// country name travels alongside the indicator because the provider
// reports it per series, not per request.
type NormalizedSeries struct {
	Indicator   Indicator
	CountryName string
}

// Prompt is a structured text-generation request: fixed instructions plus
// the per-request data context.
type Prompt struct {
	Instructions string
	Input        string
}
