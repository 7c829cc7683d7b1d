// Package snapshot implements the core snapshot generation pipeline.
//
// The assembler coordinates one request end to end:
//   - Validating the request shape before any I/O
//   - Resolving the requested LLM backend before any fetch
//   - Fetching and normalizing each indicator concurrently, preserving
//     the caller-supplied order and degrading failures into
//     present-but-empty placeholders
//   - Building the narrative context and invoking the backend, falling
//     back to a fixed notice on any generation failure
//
// The validator ensures requests are well-formed with an ISO3 country
// code and at least one valid indicator code.
package snapshot
