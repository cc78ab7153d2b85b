//go:build ignore

package main

import (
	"context"
	"fmt"
	"log"
	"math"

	"docuchat-be/internal/config"
	"docuchat-be/pkg/embedding"
)

// Quick sanity check for the configured embedding provider: embeds a related
// and an unrelated pair and prints their cosine similarity. Run with
//
//	go run scripts/check_embedding.go

func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0.0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i] * b[i])
		normA += float64(a[i] * a[i])
		normB += float64(b[i] * b[i])
	}
	if normA == 0 || normB == 0 {
		return 0.0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

func main() {
	cfg := config.Load()

	var provider embedding.Provider
	if cfg.Ai.EmbeddingProvider == "openai" {
		provider = embedding.NewOpenAIProvider(cfg.Ai.OpenAIApiKey, cfg.Ai.OpenAIEmbedModel)
	} else {
		provider = embedding.NewAzureProvider(
			cfg.Ai.AzureEndpoint,
			cfg.Ai.AzureApiKey,
			cfg.Ai.AzureEmbedDeploy,
			cfg.Ai.AzureEmbedVersion,
		)
	}
	fmt.Printf("Provider: %s\n", provider.ModelName())

	texts := []string{
		"The contract terminates on December 31st.",
		"The agreement ends at the close of the year.",
		"Photosynthesis converts sunlight into chemical energy.",
	}

	vectors, err := provider.EmbedBatch(context.Background(), texts)
	if err != nil {
		log.Fatalf("EmbedBatch failed: %v", err)
	}
	for i, v := range vectors {
		if len(v) != embedding.Dimensions {
			log.Fatalf("vector %d has %d dimensions, want %d", i, len(v), embedding.Dimensions)
		}
	}

	fmt.Printf("related pair:   %.4f\n", cosineSimilarity(vectors[0], vectors[1]))
	fmt.Printf("unrelated pair: %.4f\n", cosineSimilarity(vectors[0], vectors[2]))
	fmt.Println("The related pair should score clearly higher.")
}
