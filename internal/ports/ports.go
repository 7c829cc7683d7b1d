package ports

import (
	"context"
	"time"

	"github.com/gmercad/EDSG/internal/domain"
)

// StatisticsFetcher retrieves the raw observations of one indicator
// series for a country. Implementations apply their own bounded timeout
// and at most one retry on transient transport errors.
type StatisticsFetcher interface {
	FetchSeries(ctx context.Context, query domain.SeriesQuery) (domain.RawSeries, error)
}

// SeriesNormalizer converts one raw provider payload into the canonical
// indicator shape, or fails with domain.ErrMalformedResponse when the
// payload cannot be interpreted as a time series at all.
type SeriesNormalizer interface {
	Normalize(raw domain.RawSeries, indicatorCode string) (domain.NormalizedSeries, error)
}

// LLMClient generates narrative text from a structured prompt. A blank
// generation is an error (domain.ErrEmptyGeneration), never an empty
// success. Implementations do not retry and do not fall back to another
// provider; that policy belongs to the caller.
type LLMClient interface {
	Generate(ctx context.Context, prompt domain.Prompt) (string, error)
	Provider() string
}

// LLMClientResolver maps a request-supplied provider key to a client.
// Unknown keys and providers without credentials fail with
// domain.ErrUnsupportedProvider before any network activity.
type LLMClientResolver interface {
	Client(key string) (LLMClient, error)
}

// MetricsCollector records pipeline metrics.
type MetricsCollector interface {
	RecordSnapshot(status string, duration time.Duration)
	RecordIndicatorFetch(outcome string)
	RecordLLMCall(provider, outcome string, duration time.Duration)
}
