package embedding

import (
	"fmt"
	"os"
	"strconv"
)

type Config struct {
	// Endpoint of an OpenAI-compatible embeddings API.
	Endpoint string

	// APIKey sent as a bearer token. Required.
	APIKey string

	// Model identifier passed through to the provider.
	Model string

	// Dimensions the returned vectors must have. Mismatches are provider errors.
	Dimensions int

	// HTTPTimeoutS bounds every provider call in seconds (default 30).
	HTTPTimeoutS int
}

// NewConfig reads from environment (no extra deps).
func NewConfig() *Config {
	timeout := 30
	if v := os.Getenv("EMBEDDING_HTTP_TIMEOUT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			timeout = n
		}
	}
	dimensions := 1024
	if v := os.Getenv("EMBEDDING_DIMENSIONS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			dimensions = n
		}
	}
	return &Config{
		Endpoint:     getenvDefault("EMBEDDING_ENDPOINT", "https://api.openai.com/v1/embeddings"),
		APIKey:       os.Getenv("EMBEDDING_API_KEY"),
		Model:        getenvDefault("EMBEDDING_MODEL", "text-embedding-v3"),
		Dimensions:   dimensions,
		HTTPTimeoutS: timeout,
	}
}

func getenvDefault(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func (c *Config) Validate() error {
	if c.Endpoint == "" {
		return fmt.Errorf("embedding provider requires EMBEDDING_ENDPOINT")
	}
	if c.APIKey == "" {
		return fmt.Errorf("embedding provider requires EMBEDDING_API_KEY")
	}
	if c.Dimensions <= 0 {
		return fmt.Errorf("embedding dimensions must be positive")
	}
	return nil
}
