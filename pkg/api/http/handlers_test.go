package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/gmercad/EDSG/internal/application/snapshot"
	"github.com/gmercad/EDSG/internal/domain"
	"github.com/gmercad/EDSG/internal/ports"
)

type stubFetcher struct {
	err error
}

func (f *stubFetcher) FetchSeries(_ context.Context, query domain.SeriesQuery) (domain.RawSeries, error) {
	if f.err != nil {
		return domain.RawSeries{}, f.err
	}
	return domain.RawSeries{Payload: []byte(query.IndicatorCode)}, nil
}

type stubNormalizer struct{}

func (n *stubNormalizer) Normalize(raw domain.RawSeries, code string) (domain.NormalizedSeries, error) {
	value := 2.5
	return domain.NormalizedSeries{
		Indicator: domain.Indicator{
			Code:   code,
			Name:   code,
			Values: []domain.ObservedValue{{Year: "2022", Value: &value}},
		},
		CountryName: "United States",
	}, nil
}

type stubLLM struct{}

func (s *stubLLM) Generate(context.Context, domain.Prompt) (string, error) {
	return "A steady expansion.", nil
}

func (s *stubLLM) Provider() string { return "openai" }

type stubResolver struct{}

func (r *stubResolver) Client(key string) (ports.LLMClient, error) {
	if key != "openai" {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedProvider, key)
	}
	return &stubLLM{}, nil
}

type nopMetrics struct{}

func (nopMetrics) RecordSnapshot(string, time.Duration)        {}
func (nopMetrics) RecordIndicatorFetch(string)                 {}
func (nopMetrics) RecordLLMCall(string, string, time.Duration) {}

func newTestServer(t *testing.T, fetcher ports.StatisticsFetcher) *Server {
	t.Helper()

	assembler := snapshot.NewAssembler(
		fetcher,
		&stubNormalizer{},
		&stubResolver{},
		nopMetrics{},
		zap.NewNop(),
		4,
	)

	return NewServer(&Config{
		Port:      0,
		Assembler: assembler,
		Logger:    zap.NewNop(),
	})
}

func doRequest(s *Server, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func TestHealthEndpoint(t *testing.T) {
	s := newTestServer(t, &stubFetcher{})

	w := doRequest(s, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "healthy")
}

func TestListEndpoints(t *testing.T) {
	s := newTestServer(t, &stubFetcher{})

	w := doRequest(s, http.MethodGet, "/api/v1/countries", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "USA")

	w = doRequest(s, http.MethodGet, "/api/v1/indicators", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "NY.GDP.MKTP.CD")
}

func TestGenerateSnapshotSuccess(t *testing.T) {
	s := newTestServer(t, &stubFetcher{})

	w := doRequest(s, http.MethodPost, "/api/v1/generate-snapshot",
		`{"country_code":"USA","indicator_codes":["NY.GDP.MKTP.CD"],"year":2022,"llm_provider":"openai"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var snap domain.Snapshot
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snap))
	assert.NotEmpty(t, snap.ID)
	assert.Equal(t, "USA", snap.CountryCode)
	assert.Equal(t, "United States", snap.CountryName)
	assert.Equal(t, "A steady expansion.", snap.SnapshotText)
	require.Len(t, snap.Indicators, 1)
}

func TestGenerateSnapshotMissingFields(t *testing.T) {
	s := newTestServer(t, &stubFetcher{})

	w := doRequest(s, http.MethodPost, "/api/v1/generate-snapshot", `{"country_code":"USA"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "INVALID_REQUEST", resp.Error.Code)
}

func TestGenerateSnapshotInvalidCountry(t *testing.T) {
	s := newTestServer(t, &stubFetcher{})

	w := doRequest(s, http.MethodPost, "/api/v1/generate-snapshot",
		`{"country_code":"usa!","indicator_codes":["NY.GDP.MKTP.CD"],"llm_provider":"openai"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "INVALID_REQUEST", resp.Error.Code)
}

func TestGenerateSnapshotUnsupportedProvider(t *testing.T) {
	s := newTestServer(t, &stubFetcher{})

	w := doRequest(s, http.MethodPost, "/api/v1/generate-snapshot",
		`{"country_code":"USA","indicator_codes":["NY.GDP.MKTP.CD"],"llm_provider":"bard"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "UNSUPPORTED_PROVIDER", resp.Error.Code)
}

func TestGenerateSnapshotDegradesOnUpstreamFailure(t *testing.T) {
	// Partial upstream outages never fail the request; the snapshot
	// carries placeholders instead.
	s := newTestServer(t, &stubFetcher{err: domain.ErrUpstreamUnavailable})

	w := doRequest(s, http.MethodPost, "/api/v1/generate-snapshot",
		`{"country_code":"USA","indicator_codes":["NY.GDP.MKTP.CD"],"llm_provider":"openai"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var snap domain.Snapshot
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snap))
	require.Len(t, snap.Indicators, 1)
	assert.Empty(t, snap.Indicators[0].Values)
	assert.Equal(t, []string{"NY.GDP.MKTP.CD"}, snap.Metadata.DegradedIndicators)
	assert.Equal(t, snapshot.InsufficientDataNotice, snap.SnapshotText)
}

func TestCountryDataEndpoint(t *testing.T) {
	s := newTestServer(t, &stubFetcher{})

	w := doRequest(s, http.MethodGet, "/api/v1/data/USA?indicators=NY.GDP.MKTP.CD,FP.CPI.TOTL.ZG&year=2022", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var payload struct {
		CountryCode string             `json:"country_code"`
		CountryName string             `json:"country_name"`
		Indicators  []domain.Indicator `json:"indicators"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	assert.Equal(t, "USA", payload.CountryCode)
	assert.Equal(t, "United States", payload.CountryName)
	require.Len(t, payload.Indicators, 2)
	assert.Equal(t, "NY.GDP.MKTP.CD", payload.Indicators[0].Code)
	assert.Equal(t, "FP.CPI.TOTL.ZG", payload.Indicators[1].Code)
}

func TestCountryDataRejectsMalformedInput(t *testing.T) {
	s := newTestServer(t, &stubFetcher{})

	cases := []struct {
		name string
		path string
	}{
		{"garbage country code", "/api/v1/data/x!?indicators=NY.GDP.MKTP.CD"},
		{"lowercase country code", "/api/v1/data/usa?indicators=NY.GDP.MKTP.CD"},
		{"indicator without dots", "/api/v1/data/USA?indicators=no-dots-here"},
		{"year out of range", "/api/v1/data/USA?indicators=NY.GDP.MKTP.CD&year=1800"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doRequest(s, http.MethodGet, tc.path, "")
			require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())

			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, "INVALID_REQUEST", resp.Error.Code)
		})
	}
}

func TestCancelledRequestIsNotAnInternalError(t *testing.T) {
	s := newTestServer(t, &stubFetcher{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/generate-snapshot",
		strings.NewReader(`{"country_code":"USA","indicator_codes":["NY.GDP.MKTP.CD"],"llm_provider":"openai"}`))
	req.Header.Set("Content-Type", "application/json")
	req = req.WithContext(ctx)

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	require.Equal(t, 499, w.Code, w.Body.String())

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "CLIENT_CLOSED_REQUEST", resp.Error.Code)
}

func TestCountryDataRequiresIndicators(t *testing.T) {
	s := newTestServer(t, &stubFetcher{})

	w := doRequest(s, http.MethodGet, "/api/v1/data/USA", "")
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(s, http.MethodGet, "/api/v1/data/USA?indicators=NY.GDP.MKTP.CD&year=twenty", "")
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRequestIDHeader(t *testing.T) {
	s := newTestServer(t, &stubFetcher{})

	w := doRequest(s, http.MethodGet, "/health", "")
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "fixed-id")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	assert.Equal(t, "fixed-id", rec.Header().Get("X-Request-ID"))
}
