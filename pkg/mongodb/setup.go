package mongodb

import (
	"context"
	"fmt"
	"log"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

//
// ──────────────────────────────────────────────────────────────
//   MONGODB CLIENT WRAPPER
// ──────────────────────────────────────────────────────────────
//
// This file defines a thin wrapper around the official MongoDB Go driver,
// scoped to one database. The repository layer builds on it; nothing above
// the repository touches the driver directly.
//
// Responsibilities:
//   • Establish and validate connectivity with MongoDB.
//   • Hand out collection handles inside the configured database.
//   • Offer a safe API suitable for Fx dependency injection.
//

// Client wraps the official MongoDB Go driver scoped to a single database.
type Client struct {
	api     *mongo.Client
	db      *mongo.Database
	cfg     *Config
	started bool
}

// NewMongoClient constructs a new Client and validates connectivity with an
// immediate ping, so a misconfigured store fails at startup rather than on
// the first request.
func NewMongoClient(p MongoParams) (*Client, error) {
	log.Printf("[MongoDB] Connecting to: %s (database=%s)", p.Config.URI, p.Config.Database)

	if p.Config.Database == "" {
		return nil, fmt.Errorf("[MongoDB] database name cannot be empty")
	}

	opts := options.Client().ApplyURI(p.Config.URI)
	if p.Config.MaxPoolSize > 0 {
		opts.SetMaxPoolSize(p.Config.MaxPoolSize)
	}
	if p.Config.MinPoolSize > 0 {
		opts.SetMinPoolSize(p.Config.MinPoolSize)
	}
	if p.Config.Timeout > 0 {
		opts.SetTimeout(p.Config.Timeout)
	}

	api, err := mongo.Connect(opts)
	if err != nil {
		return nil, fmt.Errorf("[MongoDB] failed to initialize client: %w", err)
	}

	client := &Client{
		api:     api,
		db:      api.Database(p.Config.Database),
		cfg:     p.Config,
		started: true,
	}

	if err := client.healthCheck(); err != nil {
		return nil, fmt.Errorf("[MongoDB] health check failed: %w", err)
	}

	log.Println("[MongoDB] Client connected successfully")
	return client, nil
}

// healthCheck verifies the availability of the MongoDB deployment with a ping.
func (c *Client) healthCheck() error {
	if !c.started || c.api == nil {
		return fmt.Errorf("[MongoDB] client not started")
	}

	ctx, cancel := context.WithTimeout(context.Background(), c.cfg.ConnectTimeout)
	defer cancel()

	if err := c.api.Ping(ctx, nil); err != nil {
		return fmt.Errorf("[MongoDB] ping failed: %w", err)
	}
	return nil
}

// Collection returns a handle to a collection inside the configured database.
func (c *Client) Collection(name string) *mongo.Collection {
	return c.db.Collection(name)
}

// Database returns the underlying database handle.
// This is useful for direct access to low-level operations.
func (c *Client) Database() *mongo.Database {
	return c.db
}

// Close gracefully disconnects the client, draining the connection pool.
func (c *Client) Close(ctx context.Context) error {
	if !c.started {
		return nil
	}
	c.started = false

	log.Println("[MongoDB] closing client")
	return c.api.Disconnect(ctx)
}
