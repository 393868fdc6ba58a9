package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/task-assistant-team/task-assistant/internal/domain/entities"
)

// ActionItemRepository defines persistence operations for action items.
type ActionItemRepository interface {
	// InsertBatch persists a batch of items atomically; either every item is
	// written or none are.
	InsertBatch(ctx context.Context, items []*entities.ActionItem) error

	GetByID(ctx context.Context, id uuid.UUID) (*entities.ActionItem, error)

	// ListByTranscript returns every item ever extracted from the transcript,
	// terminal or not, in creation order. The deduplication engine needs the
	// full history to decide between suppressing and re-inserting.
	ListByTranscript(ctx context.Context, transcriptID uuid.UUID) ([]*entities.ActionItem, error)

	// ListPending returns pending items, optionally filtered by assignee
	// (empty string means all assignees).
	ListPending(ctx context.Context, assignee string) ([]*entities.ActionItem, error)

	ListByStatus(ctx context.Context, status entities.TaskStatus) ([]*entities.ActionItem, error)

	// UpdateStatus performs a guarded transition: the write only happens if
	// the persisted status still equals from. Returns false when the guard
	// fails (item missing or concurrently moved), so callers can distinguish
	// a lost race from a storage error.
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to entities.TaskStatus) (bool, error)
}

// ExecutionLogRepository records automation handoffs for auditing.
type ExecutionLogRepository interface {
	Insert(ctx context.Context, log *entities.ExecutionLog) error
	ListByActionItem(ctx context.Context, actionItemID uuid.UUID) ([]*entities.ExecutionLog, error)
}
