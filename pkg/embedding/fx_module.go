package embedding

import (
	"context"

	"go.uber.org/fx"

	"github.com/inkstone/contentcore/pkg/logger"
)

// EmbeddingParams defines the dependencies for the embedding client.
type EmbeddingParams struct {
	fx.In

	Config *Config
	Logger *logger.Logger
}

// FXModule defines the Fx module for the embedding package.
var FXModule = fx.Module("embedding",
	fx.Provide(
		NewConfig,
		NewEmbeddingClient,
	),
	fx.Invoke(RegisterEmbeddingLifecycle),
)

// NewEmbeddingClient builds the HTTP provider and wraps it in the client facade.
func NewEmbeddingClient(p EmbeddingParams) (*Client, error) {
	provider, err := NewHTTPProvider(p.Config)
	if err != nil {
		return nil, err
	}
	p.Logger.Info("[Embedding] provider initialized", nil, map[string]interface{}{
		"endpoint":   p.Config.Endpoint,
		"model":      p.Config.Model,
		"dimensions": p.Config.Dimensions,
	})
	return NewClient(provider, p.Logger), nil
}

// RegisterEmbeddingLifecycle handles cleanup of the embedding client.
func RegisterEmbeddingLifecycle(lc fx.Lifecycle, client *Client) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return client.Close()
		},
	})
}
