package extraction

import (
	"context"
	"errors"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/task-assistant-team/task-assistant/internal/domain/entities"
	"github.com/task-assistant-team/task-assistant/pkg/config"
)

// Client drives a Provider to produce a structured extraction for one
// transcript. It owns the retry, deadline, and rate-limit policy around the
// remote call; everything downstream of it is deterministic.
type Client struct {
	provider Provider
	cfg      config.ExtractionConfig
	limiter  *rate.Limiter
	logger   *zap.Logger
}

// NewClient creates an extraction client around the given provider.
func NewClient(provider Provider, cfg config.ExtractionConfig, logger *zap.Logger) *Client {
	var limiter *rate.Limiter
	if cfg.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), 1)
	}
	return &Client{
		provider: provider,
		cfg:      cfg,
		limiter:  limiter,
		logger:   logger,
	}
}

// Extract returns the provider-normalized entries for the transcript.
// Transient failures (rate limits, timeouts, 5xx) are retried with
// exponential backoff and jitter up to the configured attempt cap, after
// which the call surfaces ExtractionFailedError. Permanent failures are
// returned immediately. The per-attempt deadline is enforced here, not by
// the provider.
func (c *Client) Extract(ctx context.Context, t *entities.Transcript) (*RawExtraction, error) {
	req := Request{
		SystemPrompt: buildSystemPrompt(),
		UserPrompt:   buildUserPrompt(t),
	}

	var result *RawExtraction
	attempts := 0

	operation := func() error {
		attempts++

		callCtx, cancel := context.WithTimeout(ctx, c.cfg.CallTimeout)
		defer cancel()

		if c.limiter != nil {
			if err := c.limiter.Wait(callCtx); err != nil {
				return classifyProviderError(c.provider.Name(), err)
			}
		}

		raw, err := c.provider.Extract(callCtx, req)
		if err != nil {
			var provErr *ProviderError
			if errors.As(err, &provErr) && !provErr.Transient() {
				return backoff.Permanent(err)
			}
			c.logger.Warn("⚠️ extraction attempt failed",
				zap.String("provider", c.provider.Name()),
				zap.String("transcript_id", t.ID.String()),
				zap.Int("attempt", attempts),
				zap.Error(err))
			return err
		}
		result = raw
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = c.cfg.InitialBackoff
	bo.MaxInterval = c.cfg.MaxBackoff
	bo.MaxElapsedTime = 0 // the attempt cap bounds the loop, not wall clock

	err := backoff.Retry(operation, backoff.WithMaxRetries(backoff.WithContext(bo, ctx), uint64(c.cfg.MaxAttempts-1)))
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		var provErr *ProviderError
		if errors.As(err, &provErr) && !provErr.Transient() {
			return nil, err
		}
		c.logger.Error("❌ extraction exhausted retry budget",
			zap.String("provider", c.provider.Name()),
			zap.String("transcript_id", t.ID.String()),
			zap.Int("attempts", attempts),
			zap.Error(err))
		return nil, &ExtractionFailedError{Attempts: attempts, Err: err}
	}

	c.logger.Info("✅ extraction completed",
		zap.String("provider", c.provider.Name()),
		zap.String("transcript_id", t.ID.String()),
		zap.Int("entries", len(result.Entries)),
		zap.Int("attempts", attempts))
	return result, nil
}
