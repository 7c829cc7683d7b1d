// Package http provides the HTTP REST API implementation.
//
// The HTTP server is a thin route layer over the snapshot assembler.
// It exposes endpoints for:
//   - Snapshot generation and raw country data
//   - Country and indicator catalogs
//   - Health checks
//   - Prometheus metrics
//
// Failure kinds from the pipeline are mapped onto status codes here;
// the assembler itself never produces a generic 500 for partial
// upstream outages.
package http
