package embedding

import "context"

// Client is the facade consumed by the rest of the service. It delegates to
// whatever Provider it was built with.
type Client struct {
	provider Provider
	logger   Logger
}

// Logger kept to the subset this package needs.
type Logger interface {
	Info(msg string, err error, fields ...map[string]interface{})
	Debug(msg string, err error, fields ...map[string]interface{})
	Error(msg string, err error, fields ...map[string]interface{})
}

func NewClient(provider Provider, logger Logger) *Client {
	return &Client{provider: provider, logger: logger}
}

func (c *Client) Embed(ctx context.Context, text string) ([]float32, error) {
	vector, err := c.provider.Embed(ctx, text)
	if err != nil {
		c.logger.Error("[Embedding] embed call failed", err)
		return nil, err
	}
	return vector, nil
}

func (c *Client) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	vectors, err := c.provider.EmbedBatch(ctx, texts)
	if err != nil {
		c.logger.Error("[Embedding] batch embed call failed", err, map[string]interface{}{
			"batchSize": len(texts),
		})
		return nil, err
	}
	return vectors, nil
}

// Close releases provider resources when the provider supports it.
func (c *Client) Close() error {
	if closer, ok := c.provider.(interface{ Close() error }); ok {
		return closer.Close()
	}
	return nil
}
