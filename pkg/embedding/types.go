package embedding

import "context"

// Provider contract. Implementations turn text into fixed-dimension vectors.
//
// Failure modes (timeout, upstream error, dimension mismatch) all surface as
// plain errors; callers treat every one of them as a provider failure and
// never distinguish transport problems from model problems.
type Provider interface {
	// Embed produces the vector for a single text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch produces one vector per input text, in input order, with a
	// single upstream request.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}
