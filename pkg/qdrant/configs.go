package qdrant

import (
	"time"
)

// PayloadIndex declares a payload field index created at collection bootstrap.
type PayloadIndex struct {
	// Field name inside the point payload.
	Field string `yaml:"field" env:"-"`

	// Schema is the index type: "keyword", "bool", "integer", "float",
	// "datetime" or "uuid".
	Schema string `yaml:"schema" env:"-"`
}

// Config holds connection and behavior settings for the Qdrant client.
//
// It is intentionally minimal, readable, and easy to override from environment
// variables, YAML, or programmatically via helper methods.
//
// Example (builder style):
//
//	cfg := qdrant.FromEndpoint("localhost").
//	    WithApiKey(os.Getenv("QDRANT_API_KEY")).
//	    WithCollection("model-essay")
type Config struct {
	// Hostname of the Qdrant server, e.g. "localhost".
	Endpoint string `yaml:"endpoint" env:"QDRANT_ENDPOINT"`

	// gRPC port of the Qdrant server. Defaults to 6334.
	Port int `yaml:"port" env:"QDRANT_PORT"`

	// Optional authentication token for secured deployments.
	ApiKey string `yaml:"api_key" env:"QDRANT_API_KEY"`

	// Collection this client operates on.
	Collection string `yaml:"collection" env:"QDRANT_COLLECTION"`

	// Dimensions of the stored vectors. Must match the embedding provider.
	Dimensions int `yaml:"dimensions" env:"QDRANT_DIMENSIONS"`

	// Maximum request duration before timing out.
	Timeout time.Duration `yaml:"timeout" env:"QDRANT_TIMEOUT"`

	// Whether to perform version compatibility checks between client and server.
	CheckCompatibility bool `yaml:"check_compatibility" env:"QDRANT_CHECK_COMPATIBILITY"`

	// PayloadIndexes created when the collection is bootstrapped.
	PayloadIndexes []PayloadIndex `yaml:"payload_indexes" env:"-"`
}

// DefaultConfig provides sensible defaults for most use cases.
func DefaultConfig() *Config {
	return &Config{
		Endpoint:           "localhost",
		Port:               6334,
		Dimensions:         1024,
		Timeout:            5 * time.Second,
		CheckCompatibility: true,
	}
}

// FromEndpoint returns a default config pre-filled with a specific endpoint.
func FromEndpoint(host string) *Config {
	cfg := DefaultConfig()
	cfg.Endpoint = host
	return cfg
}

// Builder-style helpers (optional, ergonomic)
func (c *Config) WithApiKey(key string) *Config {
	c.ApiKey = key
	return c
}

func (c *Config) WithCollection(name string) *Config {
	c.Collection = name
	return c
}

func (c *Config) WithDimensions(n int) *Config {
	c.Dimensions = n
	return c
}

func (c *Config) WithTimeout(d time.Duration) *Config {
	c.Timeout = d
	return c
}

func (c *Config) WithPayloadIndex(field, schema string) *Config {
	c.PayloadIndexes = append(c.PayloadIndexes, PayloadIndex{Field: field, Schema: schema})
	return c
}

func (c *Config) WithCompatibilityCheck(enabled bool) *Config {
	c.CheckCompatibility = enabled
	return c
}
