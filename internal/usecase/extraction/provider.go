package extraction

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/task-assistant-team/task-assistant/pkg/ai"
)

// Request carries the prompts for one extraction call.
type Request struct {
	SystemPrompt string
	UserPrompt   string
}

// RawEntry is one loosely-typed action item candidate as returned by a
// provider: string keys mapping to strings, numbers, arrays, or objects.
// Interpretation is the validator's job.
type RawEntry map[string]interface{}

// RawExtraction is the provider-normalized extraction payload.
type RawExtraction struct {
	Provider string
	Entries  []RawEntry
}

// Provider normalizes one LLM backend behind a uniform extraction contract.
// Implementations own transport and payload-shape differences only; they
// never interpret entry semantics. Failures are always *ProviderError.
type Provider interface {
	Name() string
	Extract(ctx context.Context, req Request) (*RawExtraction, error)
}

// decodeEntries pulls the first JSON array out of model output and decodes
// it. Models occasionally wrap the array in prose or markdown fences, so the
// scan is positional rather than a strict whole-body parse.
func decodeEntries(content string) ([]RawEntry, error) {
	start := strings.Index(content, "[")
	end := strings.LastIndex(content, "]")
	if start == -1 || end == -1 || end < start {
		return nil, fmt.Errorf("no JSON array in model output")
	}
	var entries []RawEntry
	if err := json.Unmarshal([]byte(content[start:end+1]), &entries); err != nil {
		return nil, fmt.Errorf("malformed extraction payload: %w", err)
	}
	return entries, nil
}

// classifyProviderError wraps a transport failure with its retry
// classification. Rate limits, request timeouts, server-side failures, and
// network errors are transient; other client errors are permanent. Caller
// cancellation is never retried.
func classifyProviderError(provider string, err error) *ProviderError {
	var httpErr *ai.HTTPError
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return &ProviderError{
			Provider: provider,
			Kind:     ErrorKindTransient,
			Err:      &TimeoutError{Cause: err},
		}
	case errors.Is(err, context.Canceled):
		return &ProviderError{Provider: provider, Kind: ErrorKindPermanent, Err: err}
	case errors.As(err, &httpErr):
		kind := ErrorKindTransient
		if httpErr.StatusCode >= 400 && httpErr.StatusCode < 500 &&
			httpErr.StatusCode != http.StatusRequestTimeout &&
			httpErr.StatusCode != http.StatusTooManyRequests {
			kind = ErrorKindPermanent
		}
		return &ProviderError{Provider: provider, Kind: kind, Err: err}
	default:
		// Transport-level failures (connection refused, resets) are worth
		// retrying.
		return &ProviderError{Provider: provider, Kind: ErrorKindTransient, Err: err}
	}
}
