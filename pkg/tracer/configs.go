package tracer

// Config controls tracer initialization and export behavior.
type Config struct {
	// ServiceName identifies this service in trace backends.
	ServiceName string `yaml:"service_name" envconfig:"TRACER_SERVICE_NAME"`

	// AppEnv tags every span with the deployment environment,
	// e.g. "development" or "production".
	AppEnv string `yaml:"app_env" envconfig:"APP_ENV"`

	// EnableExport turns on the OTLP HTTP exporter. When false, spans are
	// still created (so span context propagates) but never leave the process.
	EnableExport bool `yaml:"enable_export" envconfig:"TRACER_ENABLE_EXPORT"`
}

// DefaultConfig provides sensible defaults for local development.
func DefaultConfig() Config {
	return Config{
		ServiceName:  "contentcore",
		AppEnv:       "development",
		EnableExport: false,
	}
}
