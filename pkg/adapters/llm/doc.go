// Package llm provides LLM client implementations.
//
// The factory creates LLM clients based on provider configuration.
// Supported backends:
//   - OpenAI (cloud)
//   - Anthropic (cloud)
//   - LM Studio (local, OpenAI-compatible API)
//   - Ollama (local, native API)
//
// Each backend hides its own wire format behind ports.LLMClient; the
// factory only dispatches, it never retries or falls back to another
// provider.
package llm
