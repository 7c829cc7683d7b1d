package worldbank

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gmercad/EDSG/internal/config"
	"github.com/gmercad/EDSG/internal/domain"
	"go.uber.org/zap"
)

const (
	formatParam   = "format"
	formatValue   = "json"
	perPageParam  = "per_page"
	dateParam     = "date"
	trailingYears = 5

	// Retry policy: exactly one retry on transport errors and 5xx
	// responses, fixed backoff. 4xx-class logical errors are never
	// retried.
	maxAttempts  = 2
	retryBackoff = 250 * time.Millisecond
)

// Client fetches raw indicator observations from the World Bank v2 API.
// Each call covers exactly one (country, indicator) pair; fan-out across
// indicators is the assembler's job.
type Client struct {
	baseURL string
	perPage int
	client  *http.Client
	logger  *zap.Logger
}

// NewClient creates a World Bank API client.
func NewClient(cfg config.WorldBankConfig, logger *zap.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		perPage: cfg.PerPage,
		client:  &http.Client{Timeout: cfg.RequestTimeout},
		logger:  logger,
	}
}

// FetchSeries retrieves the raw observation payload for one indicator.
// Year 0 requests the trailing five calendar years.
func (c *Client) FetchSeries(ctx context.Context, query domain.SeriesQuery) (domain.RawSeries, error) {
	endpoint := fmt.Sprintf("%s/country/%s/indicator/%s",
		c.baseURL,
		url.PathEscape(query.CountryCode),
		url.PathEscape(query.IndicatorCode))

	params := url.Values{}
	params.Set(formatParam, formatValue)
	params.Set(perPageParam, strconv.Itoa(c.perPage))
	params.Set(dateParam, dateRange(query.Year))

	body, err := c.doRequest(ctx, endpoint+"?"+params.Encode(), query)
	if err != nil {
		return domain.RawSeries{}, err
	}

	if err := classifyMessagePayload(body, query); err != nil {
		return domain.RawSeries{}, err
	}

	return domain.RawSeries{Payload: body}, nil
}

func (c *Client) doRequest(ctx context.Context, endpoint string, query domain.SeriesQuery) ([]byte, error) {
	var lastErr error

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return nil, fmt.Errorf("%w: %v", domain.ErrUpstreamUnavailable, ctx.Err())
			case <-time.After(retryBackoff):
			}

			c.logger.Warn("retrying world bank request",
				zap.String("endpoint", endpoint),
				zap.Int("attempt", attempt),
				zap.Error(lastErr))
		}

		body, retryable, err := c.attempt(ctx, endpoint, query)
		if err == nil {
			return body, nil
		}
		if !retryable {
			return nil, err
		}
		lastErr = err
	}

	return nil, lastErr
}

// attempt performs a single request. The second return value reports
// whether the failure is transient (transport error or 5xx).
func (c *Client) attempt(ctx context.Context, endpoint string, query domain.SeriesQuery) ([]byte, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, false, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, true, fmt.Errorf("%w: %v", domain.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, true, fmt.Errorf("%w: read body: %v", domain.ErrUpstreamUnavailable, err)
	}

	switch {
	case resp.StatusCode >= http.StatusInternalServerError:
		return nil, true, fmt.Errorf("%w: status %s", domain.ErrUpstreamUnavailable, resp.Status)
	case resp.StatusCode == http.StatusNotFound:
		// The v2 API reports unknown series both as 404 and as a 200
		// message payload; normalize the 404 form here.
		if err := classifyMessagePayload(body, query); err != nil {
			return nil, false, err
		}
		return nil, false, fmt.Errorf("%w: status %s", domain.ErrIndicatorNotFound, resp.Status)
	case resp.StatusCode >= http.StatusBadRequest:
		return nil, false, fmt.Errorf("%w: status %s", domain.ErrMalformedResponse, resp.Status)
	}

	return body, false, nil
}

// messageEnvelope is the error shape the World Bank API returns with a
// 200 status for unknown countries or indicators: a one-element array
// holding a "message" list instead of the usual [metadata, rows] pair.
type messageEnvelope struct {
	Message []struct {
		ID    string `json:"id"`
		Key   string `json:"key"`
		Value string `json:"value"`
	} `json:"message"`
}

func classifyMessagePayload(body []byte, query domain.SeriesQuery) error {
	var envelope []messageEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil
	}
	if len(envelope) != 1 || len(envelope[0].Message) == 0 {
		return nil
	}

	msg := envelope[0].Message[0]
	detail := strings.TrimSpace(msg.Key + " " + msg.Value)

	if strings.Contains(strings.ToLower(detail), "country") {
		return fmt.Errorf("%w: %s (country = %s)", domain.ErrCountryNotFound, detail, query.CountryCode)
	}
	return fmt.Errorf("%w: %s (indicator = %s)", domain.ErrIndicatorNotFound, detail, query.IndicatorCode)
}

func dateRange(year int) string {
	if year > 0 {
		return strconv.Itoa(year)
	}
	current := time.Now().Year()
	return fmt.Sprintf("%d:%d", current-trailingYears, current)
}
