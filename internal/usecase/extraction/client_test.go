package extraction

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/task-assistant-team/task-assistant/internal/domain/entities"
	"github.com/task-assistant-team/task-assistant/pkg/config"
)

type fakeProvider struct {
	calls   int
	handler func(ctx context.Context, call int) (*RawExtraction, error)
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) Extract(ctx context.Context, req Request) (*RawExtraction, error) {
	f.calls++
	return f.handler(ctx, f.calls)
}

func testExtractionConfig(maxAttempts int) config.ExtractionConfig {
	return config.ExtractionConfig{
		MaxAttempts:    maxAttempts,
		CallTimeout:    time.Second,
		InitialBackoff: time.Millisecond,
		MaxBackoff:     2 * time.Millisecond,
	}
}

func testTranscript() *entities.Transcript {
	date := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	return entities.NewTranscript("Weekly Sync", date, []string{"John Smith"}, "John: I'll send the report.", "api")
}

func TestExtract_RetriesTransientThenSucceeds(t *testing.T) {
	provider := &fakeProvider{handler: func(ctx context.Context, call int) (*RawExtraction, error) {
		if call < 3 {
			return nil, &ProviderError{Provider: "fake", Kind: ErrorKindTransient, Err: errors.New("rate limited")}
		}
		return &RawExtraction{Provider: "fake", Entries: []RawEntry{{"assignee": "John"}}}, nil
	}}

	client := NewClient(provider, testExtractionConfig(4), zap.NewNop())
	result, err := client.Extract(context.Background(), testTranscript())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if provider.calls != 3 {
		t.Fatalf("expected 3 attempts got %d", provider.calls)
	}
	if len(result.Entries) != 1 {
		t.Fatalf("expected 1 entry got %d", len(result.Entries))
	}
}

func TestExtract_PermanentFailsFast(t *testing.T) {
	provider := &fakeProvider{handler: func(ctx context.Context, call int) (*RawExtraction, error) {
		return nil, &ProviderError{Provider: "fake", Kind: ErrorKindPermanent, Err: errors.New("invalid api key")}
	}}

	client := NewClient(provider, testExtractionConfig(4), zap.NewNop())
	_, err := client.Extract(context.Background(), testTranscript())
	if err == nil {
		t.Fatalf("expected error")
	}
	if provider.calls != 1 {
		t.Fatalf("expected 1 attempt got %d", provider.calls)
	}
	var provErr *ProviderError
	if !errors.As(err, &provErr) || provErr.Transient() {
		t.Fatalf("expected permanent provider error got %v", err)
	}
	var failed *ExtractionFailedError
	if errors.As(err, &failed) {
		t.Fatalf("permanent failure must not be wrapped as retry exhaustion")
	}
}

func TestExtract_ExhaustsRetryBudget(t *testing.T) {
	provider := &fakeProvider{handler: func(ctx context.Context, call int) (*RawExtraction, error) {
		return nil, &ProviderError{Provider: "fake", Kind: ErrorKindTransient, Err: errors.New("upstream overloaded")}
	}}

	client := NewClient(provider, testExtractionConfig(3), zap.NewNop())
	_, err := client.Extract(context.Background(), testTranscript())
	if err == nil {
		t.Fatalf("expected error")
	}
	if provider.calls != 3 {
		t.Fatalf("expected 3 attempts got %d", provider.calls)
	}
	var failed *ExtractionFailedError
	if !errors.As(err, &failed) {
		t.Fatalf("expected ExtractionFailedError got %v", err)
	}
	if failed.Attempts != 3 {
		t.Fatalf("expected 3 recorded attempts got %d", failed.Attempts)
	}
}

func TestExtract_CallDeadlineIsTransient(t *testing.T) {
	provider := &fakeProvider{handler: func(ctx context.Context, call int) (*RawExtraction, error) {
		<-ctx.Done()
		return nil, classifyProviderError("fake", ctx.Err())
	}}

	cfg := testExtractionConfig(2)
	cfg.CallTimeout = 10 * time.Millisecond
	client := NewClient(provider, cfg, zap.NewNop())

	_, err := client.Extract(context.Background(), testTranscript())
	if err == nil {
		t.Fatalf("expected error")
	}
	if provider.calls != 2 {
		t.Fatalf("expected deadline overrun to be retried, got %d attempts", provider.calls)
	}
	var timeout *TimeoutError
	if !errors.As(err, &timeout) {
		t.Fatalf("expected TimeoutError in chain got %v", err)
	}
	var failed *ExtractionFailedError
	if !errors.As(err, &failed) {
		t.Fatalf("expected ExtractionFailedError got %v", err)
	}
}

func TestExtract_CallerCancellationStopsRetries(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	provider := &fakeProvider{handler: func(ctx context.Context, call int) (*RawExtraction, error) {
		cancel()
		return nil, &ProviderError{Provider: "fake", Kind: ErrorKindTransient, Err: errors.New("rate limited")}
	}}

	client := NewClient(provider, testExtractionConfig(5), zap.NewNop())
	_, err := client.Extract(ctx, testTranscript())
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled got %v", err)
	}
	if provider.calls != 1 {
		t.Fatalf("expected no retry after cancellation, got %d attempts", provider.calls)
	}
}
