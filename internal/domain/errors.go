package domain

import "errors"

// Failure taxonomy of the snapshot pipeline. Callers classify wrapped
// errors with errors.Is; the concrete message carries the detail.
//
// ErrInvalidRequest and ErrUnsupportedProvider are terminal and surface
// before any I/O. The statistics errors and the provider errors are
// recovered by the assembler into degraded placeholders and fallback
// narratives respectively.
var (
	ErrInvalidRequest      = errors.New("invalid request")
	ErrCountryNotFound     = errors.New("country not found")
	ErrIndicatorNotFound   = errors.New("indicator not found")
	ErrUpstreamUnavailable = errors.New("statistics provider unavailable")
	ErrMalformedResponse   = errors.New("malformed provider response")

	ErrUnsupportedProvider = errors.New("unsupported llm provider")
	ErrProviderUnreachable = errors.New("llm provider unreachable")
	ErrProviderRejected    = errors.New("llm provider rejected the request")
	ErrEmptyGeneration     = errors.New("llm returned empty output")
)
