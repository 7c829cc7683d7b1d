// Package config provides configuration management for the snapshot
// service.
//
// Configuration is loaded from environment variables using the env
// package. All configuration values have sensible defaults for
// development use; the only secrets are the cloud LLM API keys, and the
// service runs without them as long as a local backend is selected.
//
// Example usage:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Printf("HTTP server will listen on %s\n", cfg.GetHTTPAddr())
package config
