package llm

import (
	"context"
	"strings"

	"github.com/go-resty/resty/v2"
)

const (
	anthropicBaseURL = "https://api.anthropic.com/v1/messages"
	anthropicVersion = "2023-06-01"
	anthropicModel   = "claude-3-5-sonnet-20241022"
	anthropicMaxTok  = 4096
)

// AnthropicProvider talks to the Anthropic Messages API. There is no official
// Go SDK, so the wire calls go through resty directly.
type AnthropicProvider struct {
	client *resty.Client
	apiKey string
}

func NewAnthropicProvider(apiKey string) *AnthropicProvider {
	return &AnthropicProvider{
		client: resty.New(),
		apiKey: apiKey,
	}
}

func (p *AnthropicProvider) Name() string { return "anthropic" }

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	System    string             `json:"system,omitempty"`
	Messages  []anthropicMessage `json:"messages"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

func (p *AnthropicProvider) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	var result anthropicResponse

	resp, err := p.client.R().
		SetContext(ctx).
		SetHeader("x-api-key", p.apiKey).
		SetHeader("anthropic-version", anthropicVersion).
		SetHeader("Content-Type", "application/json").
		SetBody(anthropicRequest{
			Model:     anthropicModel,
			MaxTokens: anthropicMaxTok,
			System:    systemPrompt,
			Messages: []anthropicMessage{
				{Role: "user", Content: userPrompt},
			},
		}).
		SetResult(&result).
		SetError(&result).
		Post(anthropicBaseURL)
	if err != nil {
		return "", err
	}

	if resp.IsError() {
		msg := "request failed"
		if result.Error != nil {
			msg = result.Error.Message
		}
		return "", &APIError{Provider: p.Name(), StatusCode: resp.StatusCode(), Message: msg}
	}

	var sb strings.Builder
	for _, block := range result.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}

	return strings.TrimSpace(sb.String()), nil
}
