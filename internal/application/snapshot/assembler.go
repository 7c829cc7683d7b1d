package snapshot

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gmercad/EDSG/internal/catalog"
	"github.com/gmercad/EDSG/internal/domain"
	"github.com/gmercad/EDSG/internal/ports"
)

// Fixed narratives used when generation is impossible or failed. The
// data portion of a snapshot stays useful either way.
const (
	InsufficientDataNotice = "Insufficient data: no economic indicator observations were available for this request, so no analysis was generated."

	NarrativeUnavailableNotice = "Economic analysis is unavailable for this snapshot; the indicator data below is unaffected."
)

// Metric label values.
const (
	outcomeSuccess  = "success"
	outcomeDegraded = "degraded"
	outcomeError    = "error"
	outcomeRejected = "rejected"
)

// Assembler orchestrates fetch, normalization and narrative generation
// into a Snapshot. It is stateless per request: all dependencies are
// fixed at construction and every request gets independent result
// storage, so no locking is needed when merging fetch results.
type Assembler struct {
	fetcher    ports.StatisticsFetcher
	normalizer ports.SeriesNormalizer
	llms       ports.LLMClientResolver
	metrics    ports.MetricsCollector
	validator  *Validator
	logger     *zap.Logger

	maxConcurrentFetches int
}

// NewAssembler creates a snapshot assembler.
func NewAssembler(
	fetcher ports.StatisticsFetcher,
	normalizer ports.SeriesNormalizer,
	llms ports.LLMClientResolver,
	metrics ports.MetricsCollector,
	logger *zap.Logger,
	maxConcurrentFetches int,
) *Assembler {
	if maxConcurrentFetches < 1 {
		maxConcurrentFetches = 1
	}

	return &Assembler{
		fetcher:              fetcher,
		normalizer:           normalizer,
		llms:                 llms,
		metrics:              metrics,
		validator:            NewValidator(),
		logger:               logger,
		maxConcurrentFetches: maxConcurrentFetches,
	}
}

// GenerateSnapshot is the single externally invoked operation of the
// pipeline. The only terminal failures are request-validation and
// provider-resolution errors, both raised before any I/O; per-indicator
// failures degrade into placeholders and LLM failures degrade into a
// fallback narrative.
func (a *Assembler) GenerateSnapshot(ctx context.Context, req domain.IndicatorRequest) (*domain.Snapshot, error) {
	start := time.Now()

	if err := a.validator.Validate(req); err != nil {
		a.metrics.RecordSnapshot(outcomeRejected, time.Since(start))
		return nil, err
	}

	client, err := a.llms.Client(req.LLMProvider)
	if err != nil {
		a.metrics.RecordSnapshot(outcomeRejected, time.Since(start))
		return nil, err
	}

	indicators, degraded, countryName, err := a.CollectIndicators(ctx, req)
	if err != nil {
		a.metrics.RecordSnapshot(outcomeError, time.Since(start))
		return nil, err
	}

	usable := make([]domain.Indicator, 0, len(indicators))
	for _, ind := range indicators {
		if len(ind.Values) > 0 {
			usable = append(usable, ind)
		}
	}

	meta := domain.Metadata{
		LLMProvider:        req.LLMProvider,
		Year:               req.Year,
		IndicatorCount:     len(usable),
		DegradedIndicators: degraded,
	}

	text := a.narrative(ctx, client, countryName, req.Year, usable, &meta)
	if ctx.Err() != nil {
		a.metrics.RecordSnapshot(outcomeError, time.Since(start))
		return nil, ctx.Err()
	}

	status := outcomeSuccess
	if len(degraded) > 0 || meta.NarrativeError != "" {
		status = outcomeDegraded
	}
	a.metrics.RecordSnapshot(status, time.Since(start))

	a.logger.Info("snapshot generated",
		zap.String("country", req.CountryCode),
		zap.String("provider", req.LLMProvider),
		zap.Int("indicators_usable", len(usable)),
		zap.Int("indicators_degraded", len(degraded)),
		zap.Duration("duration", time.Since(start)))

	return &domain.Snapshot{
		ID:           uuid.New().String(),
		CountryCode:  req.CountryCode,
		CountryName:  countryName,
		Indicators:   indicators,
		SnapshotText: text,
		GeneratedAt:  time.Now().UTC(),
		Metadata:     meta,
	}, nil
}

// CollectIndicators runs the fetch+normalize phase of the pipeline:
// bounded concurrent per-indicator fetches merged into an
// index-addressed slice, so the output order always matches the
// caller-supplied code order regardless of completion order. Malformed
// requests fail with domain.ErrInvalidRequest before any fetch. Failed
// indicators come back as present-but-empty placeholders; past
// validation the returned error is non-nil only when the request
// context was cancelled.
func (a *Assembler) CollectIndicators(ctx context.Context, req domain.IndicatorRequest) ([]domain.Indicator, []string, string, error) {
	if err := a.validator.Validate(req); err != nil {
		return nil, nil, "", err
	}

	outcomes := make([]indicatorOutcome, len(req.IndicatorCodes))

	concurrency := min(a.maxConcurrentFetches, len(req.IndicatorCodes))
	semCh := make(chan struct{}, concurrency)

	var wg sync.WaitGroup
	for i, code := range req.IndicatorCodes {
		wg.Add(1)
		semCh <- struct{}{}

		go func(i int, code string) {
			defer wg.Done()
			defer func() { <-semCh }()

			outcomes[i] = a.fetchIndicator(ctx, req, code)
		}(i, code)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, nil, "", err
	}

	indicators := make([]domain.Indicator, len(outcomes))
	var degraded []string
	countryName := ""

	for i, outcome := range outcomes {
		indicators[i] = outcome.indicator
		if outcome.err != nil {
			degraded = append(degraded, outcome.indicator.Code)
		}
		if countryName == "" && outcome.countryName != "" {
			countryName = outcome.countryName
		}
	}

	if countryName == "" {
		if name, ok := catalog.CountryName(req.CountryCode); ok {
			countryName = name
		} else {
			countryName = req.CountryCode
		}
	}

	return indicators, degraded, countryName, nil
}

type indicatorOutcome struct {
	indicator   domain.Indicator
	countryName string
	err         error
}

func (a *Assembler) fetchIndicator(ctx context.Context, req domain.IndicatorRequest, code string) indicatorOutcome {
	raw, err := a.fetcher.FetchSeries(ctx, domain.SeriesQuery{
		CountryCode:   req.CountryCode,
		IndicatorCode: code,
		Year:          req.Year,
	})
	if err != nil {
		a.metrics.RecordIndicatorFetch(outcomeError)
		a.logger.Warn("indicator fetch failed",
			zap.String("country", req.CountryCode),
			zap.String("indicator", code),
			zap.Error(err))

		return indicatorOutcome{indicator: placeholderIndicator(code), err: err}
	}

	normalized, err := a.normalizer.Normalize(raw, code)
	if err != nil {
		a.metrics.RecordIndicatorFetch(outcomeError)
		a.logger.Warn("indicator normalization failed",
			zap.String("country", req.CountryCode),
			zap.String("indicator", code),
			zap.Error(err))

		return indicatorOutcome{indicator: placeholderIndicator(code), err: err}
	}

	indicator := normalized.Indicator
	if indicator.Name == "" {
		indicator.Name = displayName(code)
	}

	a.metrics.RecordIndicatorFetch(outcomeSuccess)
	return indicatorOutcome{indicator: indicator, countryName: normalized.CountryName}
}

// narrative produces the snapshot text: the insufficient-data notice
// when nothing is usable (the backend is never invoked), the generated
// text on success, or the fallback notice with the reason recorded in
// metadata on any backend failure.
func (a *Assembler) narrative(
	ctx context.Context,
	client ports.LLMClient,
	countryName string,
	year int,
	usable []domain.Indicator,
	meta *domain.Metadata,
) string {
	if len(usable) == 0 {
		return InsufficientDataNotice
	}

	prompt := buildPrompt(countryName, year, usable)

	start := time.Now()
	text, err := client.Generate(ctx, prompt)
	if err != nil {
		a.metrics.RecordLLMCall(client.Provider(), outcomeError, time.Since(start))
		a.logger.Warn("narrative generation failed",
			zap.String("provider", client.Provider()),
			zap.Error(err))

		meta.NarrativeError = err.Error()
		return NarrativeUnavailableNotice
	}

	a.metrics.RecordLLMCall(client.Provider(), outcomeSuccess, time.Since(start))
	return text
}

// placeholderIndicator is the degraded form: present with its code and
// catalog name, but no observations.
func placeholderIndicator(code string) domain.Indicator {
	return domain.Indicator{
		Code:   code,
		Name:   displayName(code),
		Values: []domain.ObservedValue{},
	}
}

func displayName(code string) string {
	if name, ok := catalog.IndicatorName(code); ok {
		return name
	}
	return code
}
