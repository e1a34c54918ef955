package llm

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"
	"visadesk/config"

	"github.com/sethvargo/go-retry"
)

// Provider is a vendor-neutral text-completion client. Both hosted vendors are
// hidden behind it so the extraction pipeline never cares which one is
// configured.
type Provider interface {
	Name() string
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Active is the provider selected at startup. Tests swap in a stub.
var Active Provider

var (
	// ErrNotConfigured is returned when no provider/API key is available.
	ErrNotConfigured = errors.New("llm: no provider configured")
	// ErrEmptyResponse is returned when the model produced no text at all.
	ErrEmptyResponse = errors.New("llm: model returned an empty response")
)

// APIError carries the upstream HTTP status so callers can tell quota and auth
// failures apart from transient ones.
type APIError struct {
	Provider   string
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("llm: %s request failed with status %d: %s", e.Provider, e.StatusCode, e.Message)
}

func retryable(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 429 || apiErr.StatusCode >= 500
	}
	// Network-level failures are worth another attempt, everything else is not.
	return !errors.Is(err, ErrEmptyResponse) && !errors.Is(err, context.Canceled)
}

const (
	completionTimeout = 60 * time.Second
	maxRetries        = 2
	initialBackoff    = 500 * time.Millisecond
)

// Init selects the active provider from configuration.
func Init() error {
	switch config.AppConfig.LLMProvider {
	case "openai":
		if config.AppConfig.OpenAIAPIKey == "" {
			return ErrNotConfigured
		}
		Active = NewOpenAIProvider(config.AppConfig.OpenAIAPIKey)
	case "anthropic":
		if config.AppConfig.AnthropicAPIKey == "" {
			return ErrNotConfigured
		}
		Active = NewAnthropicProvider(config.AppConfig.AnthropicAPIKey)
	default:
		return fmt.Errorf("llm: unknown provider %q", config.AppConfig.LLMProvider)
	}

	log.Printf("LLM provider initialized: %s", Active.Name())
	return nil
}

// Generate runs one completion against the active provider with a per-call
// timeout and exponential backoff on transient failures.
func Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	if Active == nil {
		return "", ErrNotConfigured
	}

	ctx, cancel := context.WithTimeout(ctx, completionTimeout)
	defer cancel()

	var output string
	backoff := retry.WithMaxRetries(maxRetries, retry.NewExponential(initialBackoff))

	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		out, err := Active.Complete(ctx, systemPrompt, userPrompt)
		if err != nil {
			if retryable(err) {
				log.Printf("LLM call failed, will retry: %v", err)
				return retry.RetryableError(err)
			}
			return err
		}
		output = out
		return nil
	})
	if err != nil {
		return "", err
	}

	if output == "" {
		return "", ErrEmptyResponse
	}
	return output, nil
}
