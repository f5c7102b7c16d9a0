package mongodb

import (
	"time"
)

// Config holds connection and behavior settings for the MongoDB client.
//
// It is intentionally minimal, readable, and easy to override from environment
// variables, YAML, or programmatically via helper methods.
//
// Example (builder style):
//
//	cfg := mongodb.FromURI("mongodb://localhost:27017").
//	    WithDatabase("contentcore").
//	    WithTimeout(10 * time.Second)
type Config struct {
	// Connection string, e.g. "mongodb://localhost:27017".
	URI string `yaml:"uri" envconfig:"MONGODB_URI"`

	// Database this client operates on.
	Database string `yaml:"database" envconfig:"MONGODB_DATABASE"`

	// Maximum number of pooled connections. 0 keeps the driver default.
	MaxPoolSize uint64 `yaml:"max_pool_size" envconfig:"MONGODB_MAX_POOL_SIZE"`

	// Minimum number of pooled connections kept open.
	MinPoolSize uint64 `yaml:"min_pool_size" envconfig:"MONGODB_MIN_POOL_SIZE"`

	// Maximum request duration before timing out.
	Timeout time.Duration `yaml:"timeout" envconfig:"MONGODB_TIMEOUT"`

	// Connection establishment timeout, used for the startup ping.
	ConnectTimeout time.Duration `yaml:"connect_timeout" envconfig:"MONGODB_CONNECT_TIMEOUT"`
}

// DefaultConfig provides sensible defaults for most use cases.
func DefaultConfig() *Config {
	return &Config{
		URI:            "mongodb://localhost:27017",
		Database:       "contentcore",
		Timeout:        5 * time.Second,
		ConnectTimeout: 5 * time.Second,
	}
}

// FromURI returns a default config pre-filled with a specific connection string.
func FromURI(uri string) *Config {
	cfg := DefaultConfig()
	cfg.URI = uri
	return cfg
}

// Builder-style helpers (optional, ergonomic)
func (c *Config) WithDatabase(name string) *Config {
	c.Database = name
	return c
}

func (c *Config) WithTimeout(d time.Duration) *Config {
	c.Timeout = d
	return c
}

func (c *Config) WithConnectTimeout(d time.Duration) *Config {
	c.ConnectTimeout = d
	return c
}

func (c *Config) WithPoolSize(min, max uint64) *Config {
	c.MinPoolSize = min
	c.MaxPoolSize = max
	return c
}
