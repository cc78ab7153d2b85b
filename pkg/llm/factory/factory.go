package factory

import (
	"fmt"

	"docuchat-be/pkg/llm"
	"docuchat-be/pkg/llm/azure"
	"docuchat-be/pkg/llm/ollama"
)

type Config struct {
	Provider        string // "azure" or "ollama"
	AzureEndpoint   string
	AzureApiKey     string
	AzureDeployment string
	AzureApiVersion string
	OllamaBaseURL   string
	OllamaModel     string
}

func NewLLMProvider(cfg Config) (llm.LLMProvider, error) {
	switch cfg.Provider {
	case "azure":
		return azure.NewAzureProvider(
			cfg.AzureEndpoint,
			cfg.AzureApiKey,
			cfg.AzureDeployment,
			cfg.AzureApiVersion,
		), nil
	case "ollama":
		baseURL := cfg.OllamaBaseURL
		if baseURL == "" {
			baseURL = "http://localhost:11434" // Default
		}
		return ollama.NewOllamaProvider(baseURL, cfg.OllamaModel), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}
}
