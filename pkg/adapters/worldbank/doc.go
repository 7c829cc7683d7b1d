// Package worldbank adapts the World Bank v2 indicators API to the
// pipeline's fetcher and normalizer ports.
//
// The client fetches one (country, indicator) series per call with a
// bounded timeout and a single bounded retry on transient failures. The
// normalizer converts the provider's [metadata, rows] envelope into the
// canonical indicator shape, preserving null observations.
package worldbank
