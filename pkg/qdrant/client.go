package qdrant

import (
	"context"
	"fmt"
	"log"
	"time"

	qdrant "github.com/qdrant/go-client/qdrant"
)

//
// ──────────────────────────────────────────────────────────────
//   QDRANT CLIENT WRAPPER
// ──────────────────────────────────────────────────────────────
//
// This file defines a thin wrapper around the official Qdrant Go client,
// scoped to the single collection that mirrors a document-store collection.
//
// Responsibilities:
//   • Establish and validate connectivity with Qdrant.
//   • Bootstrap the mirror collection and its payload indexes.
//   • Upsert, delete, patch payloads, query, and list point ids.
//   • Offer a safe API suitable for Fx dependency injection.
//

// Client wraps the official Qdrant Go client scoped to one collection.
type Client struct {
	api     *qdrant.Client
	cfg     *Config
	started bool
}

// NewQdrantClient constructs a new instance of Client and validates
// connectivity via a health check.
//
// The Qdrant Go SDK creates lightweight gRPC connections, so this method
// performs an immediate health check to fail fast if the service is unreachable.
func NewQdrantClient(p QdrantParams) (*Client, error) {
	log.Printf("[Qdrant] Connecting to endpoint: %s:%d", p.Config.Endpoint, p.Config.Port)

	if p.Config.Collection == "" {
		return nil, fmt.Errorf("[Qdrant] collection name cannot be empty")
	}

	port := p.Config.Port
	if port == 0 {
		port = 6334
	}

	api, err := qdrant.NewClient(&qdrant.Config{
		Host:                   p.Config.Endpoint,
		Port:                   port,
		APIKey:                 p.Config.ApiKey,
		SkipCompatibilityCheck: !p.Config.CheckCompatibility,
	})
	if err != nil {
		return nil, fmt.Errorf("[Qdrant] failed to initialize client: %w", err)
	}

	client := &Client{
		api:     api,
		cfg:     p.Config,
		started: true,
	}

	if err := client.healthCheck(); err != nil {
		return nil, fmt.Errorf("[Qdrant] health check failed: %w", err)
	}

	log.Println("[Qdrant] Client connected successfully")
	return client, nil
}

// healthCheck verifies the availability of the Qdrant service.
func (c *Client) healthCheck() error {
	if !c.started || c.api == nil {
		return fmt.Errorf("[Qdrant] client not started")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	resp, err := c.api.HealthCheck(ctx)
	if err != nil {
		return fmt.Errorf("[Qdrant] health check failed: %w", err)
	}

	log.Printf("[Qdrant] Health check passed (title=%s, version=%s, endpoint=%s)",
		resp.Title, resp.Version, c.cfg.Endpoint)
	return nil
}

// CollectionName returns the collection this client is scoped to.
func (c *Client) CollectionName() string {
	return c.cfg.Collection
}

// Api returns the underlying Qdrant SDK client.
// This is useful for direct access to low-level operations.
func (c *Client) Api() *qdrant.Client {
	return c.api
}

// Close gracefully shuts down the Qdrant client.
func (c *Client) Close() error {
	if !c.started {
		return nil
	}
	c.started = false

	log.Println("[Qdrant] closing client")
	return c.api.Close()
}
