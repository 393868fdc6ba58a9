package tasks

import (
	"context"

	"github.com/google/uuid"
	"github.com/task-assistant-team/task-assistant/internal/domain/entities"
)

// Service defines the interface for the action item lifecycle use case
type Service interface {
	// EvaluateAutomation escalates eligible pending items to in_progress and
	// enqueues them for downstream automation. Returns how many were escalated.
	EvaluateAutomation(ctx context.Context, items []*entities.ActionItem) (int, error)

	// Start moves a pending item to in_progress
	Start(ctx context.Context, itemID uuid.UUID) (*entities.ActionItem, error)

	// Complete marks an in-progress item as done
	Complete(ctx context.Context, itemID uuid.UUID) (*entities.ActionItem, error)

	// Cancel abandons a pending or in-progress item
	Cancel(ctx context.Context, itemID uuid.UUID) (*entities.ActionItem, error)

	// Fail marks a pending item as failed
	Fail(ctx context.Context, itemID uuid.UUID) (*entities.ActionItem, error)

	// GetActionItem retrieves an action item by ID
	GetActionItem(ctx context.Context, itemID uuid.UUID) (*entities.ActionItem, error)

	// ListPending retrieves pending items, optionally narrowed to one assignee
	ListPending(ctx context.Context, assignee string) ([]*entities.ActionItem, error)

	// ListByStatus retrieves items in the given lifecycle status
	ListByStatus(ctx context.Context, status entities.TaskStatus) ([]*entities.ActionItem, error)

	// ListByTranscript retrieves every item extracted from one transcript,
	// terminal items included
	ListByTranscript(ctx context.Context, transcriptID uuid.UUID) ([]*entities.ActionItem, error)

	// ListExecutions retrieves the automation audit trail for an action item
	ListExecutions(ctx context.Context, itemID uuid.UUID) ([]*entities.ExecutionLog, error)
}

// Ensure TaskService implements Service interface
var _ Service = (*TaskService)(nil)
