package qdrant

import (
	"context"

	"go.uber.org/fx"
)

// QdrantParams defines the dependencies for the Qdrant client.
type QdrantParams struct {
	fx.In

	Config *Config
}

// FXModule defines the Fx module for the qdrant package.
var FXModule = fx.Module("qdrant",
	fx.Provide(
		NewQdrantClient,
	),
	fx.Invoke(RegisterQdrantLifecycle),
)

// RegisterQdrantLifecycle bootstraps the collection on start and closes the
// client on shutdown.
func RegisterQdrantLifecycle(lc fx.Lifecycle, client *Client) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return client.EnsureCollection(ctx)
		},
		OnStop: func(ctx context.Context) error {
			return client.Close()
		},
	})
}
