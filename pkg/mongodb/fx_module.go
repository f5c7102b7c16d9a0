package mongodb

import (
	"context"

	"go.uber.org/fx"
)

// FXModule wires the MongoDB client into Fx.
//
// It provides:
//   - *Client          (NewMongoClient)
//   - Lifecycle hook   (RegisterMongoLifecycle)
var FXModule = fx.Module("mongodb",
	fx.Provide(
		NewMongoClient,
	),
	fx.Invoke(RegisterMongoLifecycle),
)

// MongoParams groups the dependencies needed to create a MongoDB client.
type MongoParams struct {
	fx.In

	Config *Config
}

// RegisterMongoLifecycle disconnects the client on application shutdown.
func RegisterMongoLifecycle(lc fx.Lifecycle, client *Client) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return client.Close(ctx)
		},
	})
}
