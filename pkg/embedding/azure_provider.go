package embedding

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"
)

type AzureProvider struct {
	Endpoint   string
	ApiKey     string
	Deployment string
	ApiVersion string
	Client     *http.Client
}

var _ Provider = &AzureProvider{}

func NewAzureProvider(endpoint, apiKey, deployment, apiVersion string) *AzureProvider {
	return &AzureProvider{
		Endpoint:   strings.TrimRight(endpoint, "/"),
		ApiKey:     apiKey,
		Deployment: deployment,
		ApiVersion: apiVersion,
		Client: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

type azureEmbeddingRequest struct {
	Input []string `json:"input"`
}

type azureEmbeddingItem struct {
	Embedding []float32 `json:"embedding"`
	Index     int       `json:"index"`
}

type azureEmbeddingResponse struct {
	Data []azureEmbeddingItem `json:"data"`
}

func (p *AzureProvider) ModelName() string {
	return p.Deployment
}

func (p *AzureProvider) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	payload, err := json.Marshal(azureEmbeddingRequest{Input: texts})
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf(
		"%s/openai/deployments/%s/embeddings?api-version=%s",
		p.Endpoint, p.Deployment, p.ApiVersion,
	)

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("api-key", p.ApiKey)

	res, err := p.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("error from azure embeddings, code %d, body %s", res.StatusCode, string(body))
	}

	var parsed azureEmbeddingResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, err
	}

	if len(parsed.Data) != len(texts) {
		return nil, fmt.Errorf("azure embeddings returned %d vectors for %d inputs", len(parsed.Data), len(texts))
	}

	// The API documents per-item indexes; sort to guarantee input order.
	sort.Slice(parsed.Data, func(i, j int) bool {
		return parsed.Data[i].Index < parsed.Data[j].Index
	})

	vectors := make([][]float32, len(parsed.Data))
	for i, item := range parsed.Data {
		vectors[i] = item.Embedding
	}
	return vectors, nil
}
