package syncer

import (
	"fmt"
	"time"
)

// Config controls how a Syncer mirrors one collection into the vector index.
type Config struct {
	// IDField is the external identifier shared by the primary store and the
	// vector index. Defaults to "uid".
	IDField string `yaml:"id_field" envconfig:"SYNC_ID_FIELD"`

	// SemanticFields are the document fields whose text feeds the embedding.
	// A change to any of them triggers re-embedding; everything else is a
	// payload-only change.
	SemanticFields []string `yaml:"semantic_fields" envconfig:"SYNC_SEMANTIC_FIELDS"`

	// PayloadFields are mirrored into the point payload so vector-side
	// filtering can run without hitting the primary store.
	PayloadFields []string `yaml:"payload_fields" envconfig:"SYNC_PAYLOAD_FIELDS"`

	// Timeout bounds each embedding provider and vector index call.
	// Zero disables the bound.
	Timeout time.Duration `yaml:"timeout" envconfig:"SYNC_TIMEOUT"`

	// CompensationRetries is how many times a compensating primary delete is
	// retried after a failed create before giving up.
	CompensationRetries uint64 `yaml:"compensation_retries" envconfig:"SYNC_COMPENSATION_RETRIES"`

	// CompensationBackoff is the initial delay between compensation retries;
	// subsequent delays grow exponentially.
	CompensationBackoff time.Duration `yaml:"compensation_backoff" envconfig:"SYNC_COMPENSATION_BACKOFF"`
}

// DefaultConfig provides sensible defaults for most use cases.
func DefaultConfig() Config {
	return Config{
		IDField:             "uid",
		Timeout:             15 * time.Second,
		CompensationRetries: 5,
		CompensationBackoff: 100 * time.Millisecond,
	}
}

// Validate checks the config at registration time.
func (c *Config) Validate() error {
	if c.IDField == "" {
		return fmt.Errorf("syncer: id field cannot be empty")
	}
	if len(c.SemanticFields) == 0 {
		return fmt.Errorf("syncer: at least one semantic field is required")
	}
	for _, field := range c.SemanticFields {
		if field == c.IDField {
			return fmt.Errorf("syncer: id field %q cannot be semantic", field)
		}
	}
	return nil
}
