package embedding

import "context"

// Dimensions of stored vectors. The chunk schema is fixed to vector(1536);
// every provider must produce vectors of exactly this size.
const Dimensions = 1536

// Provider maps a batch of texts to fixed-dimension vectors, order-preserving.
// A single-item batch embeds a query at retrieval time.
type Provider interface {
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
	ModelName() string
}
