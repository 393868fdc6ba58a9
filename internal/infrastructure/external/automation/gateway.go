package automation

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/task-assistant-team/task-assistant/internal/domain/repositories"
)

// queueKey is the Redis list the downstream task executor consumes.
const queueKey = "automation:queue"

// message is the wire format pushed onto the queue.
type message struct {
	ActionItemID string    `json:"action_item_id"`
	EnqueuedAt   time.Time `json:"enqueued_at"`
}

// redisGateway hands escalated items to the executor over a Redis list.
// Delivery is at-least-once; the executor deduplicates on action item ID.
type redisGateway struct {
	client *redis.Client
	logger *zap.Logger
}

// NewRedisGateway creates a Redis-backed automation gateway
func NewRedisGateway(client *redis.Client, logger *zap.Logger) repositories.AutomationGateway {
	return &redisGateway{client: client, logger: logger}
}

// EnqueueAutomation pushes one action item onto the executor queue
func (g *redisGateway) EnqueueAutomation(ctx context.Context, actionItemID uuid.UUID) error {
	payload, err := json.Marshal(message{
		ActionItemID: actionItemID.String(),
		EnqueuedAt:   time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("failed to encode automation message: %w", err)
	}
	if err := g.client.LPush(ctx, queueKey, payload).Err(); err != nil {
		return fmt.Errorf("failed to enqueue automation: %w", err)
	}
	g.logger.Info("📤 automation enqueued",
		zap.String("action_item_id", actionItemID.String()))
	return nil
}

// logGateway records the handoff without delivering it, keeping the engine
// functional when no queue is configured.
type logGateway struct {
	logger *zap.Logger
}

// NewLogGateway creates a gateway that logs enqueues instead of delivering them
func NewLogGateway(logger *zap.Logger) repositories.AutomationGateway {
	return &logGateway{logger: logger}
}

// EnqueueAutomation logs the handoff
func (g *logGateway) EnqueueAutomation(ctx context.Context, actionItemID uuid.UUID) error {
	g.logger.Info("📤 automation enqueue requested, no queue configured",
		zap.String("action_item_id", actionItemID.String()))
	return nil
}
