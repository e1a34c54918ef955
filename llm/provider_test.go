package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sequenceProvider fails with the queued errors first, then returns output.
type sequenceProvider struct {
	errs   []error
	output string
	calls  int
}

func (p *sequenceProvider) Name() string { return "sequence" }

func (p *sequenceProvider) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	p.calls++
	if p.calls <= len(p.errs) {
		return "", p.errs[p.calls-1]
	}
	return p.output, nil
}

func swapActive(t *testing.T, p Provider) {
	t.Helper()
	prev := Active
	Active = p
	t.Cleanup(func() { Active = prev })
}

func TestGenerateRetriesRateLimits(t *testing.T) {
	rateLimited := &APIError{Provider: "sequence", StatusCode: 429, Message: "rate limited"}
	p := &sequenceProvider{errs: []error{rateLimited, rateLimited}, output: `{"summary":"ok"}`}
	swapActive(t, p)

	out, err := Generate(context.Background(), "system", "user")
	require.NoError(t, err)
	assert.Equal(t, `{"summary":"ok"}`, out)
	assert.Equal(t, 3, p.calls)
}

func TestGenerateRetriesServerErrors(t *testing.T) {
	p := &sequenceProvider{
		errs:   []error{&APIError{Provider: "sequence", StatusCode: 503, Message: "overloaded"}},
		output: `{"summary":"ok"}`,
	}
	swapActive(t, p)

	out, err := Generate(context.Background(), "system", "user")
	require.NoError(t, err)
	assert.Equal(t, `{"summary":"ok"}`, out)
	assert.Equal(t, 2, p.calls)
}

func TestGenerateGivesUpAfterMaxAttempts(t *testing.T) {
	rateLimited := &APIError{Provider: "sequence", StatusCode: 429, Message: "rate limited"}
	p := &sequenceProvider{errs: []error{rateLimited, rateLimited, rateLimited, rateLimited}}
	swapActive(t, p)

	_, err := Generate(context.Background(), "system", "user")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 429, apiErr.StatusCode)
	// Initial attempt plus two retries.
	assert.Equal(t, 3, p.calls)
}

func TestGenerateDoesNotRetryAuthFailures(t *testing.T) {
	p := &sequenceProvider{errs: []error{&APIError{Provider: "sequence", StatusCode: 401, Message: "invalid api key"}}}
	swapActive(t, p)

	_, err := Generate(context.Background(), "system", "user")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 401, apiErr.StatusCode)
	assert.Equal(t, 1, p.calls)
}

func TestGenerateEmptyResponse(t *testing.T) {
	p := &sequenceProvider{output: ""}
	swapActive(t, p)

	_, err := Generate(context.Background(), "system", "user")
	assert.True(t, errors.Is(err, ErrEmptyResponse))
	assert.Equal(t, 1, p.calls)
}

func TestGenerateWithoutProvider(t *testing.T) {
	swapActive(t, nil)

	_, err := Generate(context.Background(), "system", "user")
	assert.True(t, errors.Is(err, ErrNotConfigured))
}
