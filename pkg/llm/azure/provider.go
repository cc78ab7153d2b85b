package azure

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"docuchat-be/pkg/llm"
)

type AzureProvider struct {
	Endpoint   string
	ApiKey     string
	Deployment string
	ApiVersion string
	Client     *http.Client
}

var _ llm.LLMProvider = &AzureProvider{}

func NewAzureProvider(endpoint, apiKey, deployment, apiVersion string) *AzureProvider {
	return &AzureProvider{
		Endpoint:   strings.TrimRight(endpoint, "/"),
		ApiKey:     apiKey,
		Deployment: deployment,
		ApiVersion: apiVersion,
		Client: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

// --- Request/Response structs (Internal to this package) ---

type azureMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type azureResponseFormat struct {
	Type string `json:"type"`
}

type azureChatRequest struct {
	Messages       []azureMessage       `json:"messages"`
	Temperature    *float64             `json:"temperature,omitempty"`
	MaxTokens      int                  `json:"max_tokens,omitempty"`
	ResponseFormat *azureResponseFormat `json:"response_format,omitempty"`
}

type azureChatResponse struct {
	Model   string `json:"model"`
	Choices []struct {
		Message azureMessage `json:"message"`
	} `json:"choices"`
	Usage *struct {
		TotalTokens int `json:"total_tokens"`
	} `json:"usage"`
}

// --- Interface Implementation ---

func (p *AzureProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (*llm.Completion, error) {
	options := &llm.Options{}
	for _, opt := range opts {
		opt(options)
	}

	messages := make([]azureMessage, len(history))
	for i, msg := range history {
		role := msg.Role
		if role == "model" {
			role = "assistant"
		}
		messages[i] = azureMessage{Role: role, Content: msg.Content}
	}

	reqPayload := azureChatRequest{
		Messages: messages,
	}
	if options.Temperature > 0 {
		reqPayload.Temperature = &options.Temperature
	}
	if options.MaxTokens > 0 {
		reqPayload.MaxTokens = options.MaxTokens
	}
	if options.JSONMode {
		reqPayload.ResponseFormat = &azureResponseFormat{Type: "json_object"}
	}

	payloadBytes, err := json.Marshal(reqPayload)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	deployment := p.Deployment
	if options.Model != "" {
		deployment = options.Model
	}

	url := fmt.Sprintf(
		"%s/openai/deployments/%s/chat/completions?api-version=%s",
		p.Endpoint, deployment, p.ApiVersion,
	)

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(payloadBytes))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("api-key", p.ApiKey)

	res, err := p.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("error from azure chat, code %d, body %s", res.StatusCode, string(body))
	}

	var parsed azureChatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}

	if len(parsed.Choices) == 0 {
		return nil, fmt.Errorf("azure chat returned no choices")
	}

	completion := &llm.Completion{
		Content: parsed.Choices[0].Message.Content,
		Model:   parsed.Model,
	}
	if completion.Model == "" {
		completion.Model = deployment
	}
	if parsed.Usage != nil {
		usage := parsed.Usage.TotalTokens
		completion.TokenUsage = &usage
	}

	return completion, nil
}
