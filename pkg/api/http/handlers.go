package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/gmercad/EDSG/internal/catalog"
	"github.com/gmercad/EDSG/internal/domain"
)

// SnapshotRequest represents a snapshot generation request.
type SnapshotRequest struct {
	CountryCode    string   `json:"country_code" binding:"required"`
	IndicatorCodes []string `json:"indicator_codes" binding:"required"`
	Year           int      `json:"year"`
	LLMProvider    string   `json:"llm_provider" binding:"required"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail represents error details.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// statusClientClosedRequest is the nginx convention for a request the
// client abandoned; net/http has no constant for it.
const statusClientClosedRequest = 499

// handleHealth handles health check requests.
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "economic-development-snapshot-generator",
	})
}

// handleListCountries returns the known countries.
func (s *Server) handleListCountries(c *gin.Context) {
	c.JSON(http.StatusOK, catalog.Countries())
}

// handleListIndicators returns the known economic indicators.
func (s *Server) handleListIndicators(c *gin.Context) {
	c.JSON(http.StatusOK, catalog.Indicators())
}

// handleGenerateSnapshot handles snapshot generation.
func (s *Server) handleGenerateSnapshot(c *gin.Context) {
	var req SnapshotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.logger.Warn("invalid request body", zap.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: ErrorDetail{
				Code:    "INVALID_REQUEST",
				Message: err.Error(),
			},
		})
		return
	}

	snap, err := s.assembler.GenerateSnapshot(c.Request.Context(), domain.IndicatorRequest{
		CountryCode:    req.CountryCode,
		IndicatorCodes: req.IndicatorCodes,
		Year:           req.Year,
		LLMProvider:    req.LLMProvider,
	})
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, snap)
}

// handleCountryData returns raw normalized indicator data for a country
// without invoking any LLM backend.
func (s *Server) handleCountryData(c *gin.Context) {
	countryCode := c.Param("country")

	indicatorsParam := strings.TrimSpace(c.Query("indicators"))
	if indicatorsParam == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: ErrorDetail{
				Code:    "INVALID_REQUEST",
				Message: "query parameter 'indicators' is required (comma-separated indicator codes)",
			},
		})
		return
	}

	var codes []string
	for _, code := range strings.Split(indicatorsParam, ",") {
		if code = strings.TrimSpace(code); code != "" {
			codes = append(codes, code)
		}
	}

	year := 0
	if yearParam := c.Query("year"); yearParam != "" {
		parsed, err := strconv.Atoi(yearParam)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error: ErrorDetail{
					Code:    "INVALID_REQUEST",
					Message: "query parameter 'year' must be an integer",
				},
			})
			return
		}
		year = parsed
	}

	indicators, degraded, countryName, err := s.assembler.CollectIndicators(
		c.Request.Context(),
		domain.IndicatorRequest{
			CountryCode:    countryCode,
			IndicatorCodes: codes,
			Year:           year,
		},
	)
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"country_code":        countryCode,
		"country_name":        countryName,
		"indicators":          indicators,
		"degraded_indicators": degraded,
	})
}

// respondError maps pipeline failure kinds onto HTTP status codes. Only
// terminal failures reach this point; partial upstream outages are
// folded into a successful degraded snapshot by the assembler.
func (s *Server) respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	code := "INTERNAL_ERROR"

	switch {
	case errors.Is(err, context.Canceled):
		status = statusClientClosedRequest
		code = "CLIENT_CLOSED_REQUEST"
	case errors.Is(err, domain.ErrInvalidRequest):
		status = http.StatusBadRequest
		code = "INVALID_REQUEST"
	case errors.Is(err, domain.ErrUnsupportedProvider):
		status = http.StatusBadRequest
		code = "UNSUPPORTED_PROVIDER"
	case errors.Is(err, domain.ErrCountryNotFound):
		status = http.StatusNotFound
		code = "COUNTRY_NOT_FOUND"
	case errors.Is(err, domain.ErrIndicatorNotFound):
		status = http.StatusNotFound
		code = "INDICATOR_NOT_FOUND"
	case errors.Is(err, domain.ErrUpstreamUnavailable):
		status = http.StatusBadGateway
		code = "UPSTREAM_UNAVAILABLE"
	}

	s.logger.Warn("request failed",
		zap.String("path", c.Request.URL.Path),
		zap.Int("status", status),
		zap.Error(err))

	c.JSON(status, ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: err.Error(),
		},
	})
}
