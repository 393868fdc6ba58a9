package tasks

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/task-assistant-team/task-assistant/internal/domain/entities"
	"github.com/task-assistant-team/task-assistant/internal/domain/repositories"
	"github.com/task-assistant-team/task-assistant/pkg/config"
)

// TaskService handles action item lifecycle business logic
type TaskService struct {
	items       repositories.ActionItemRepository
	executions  repositories.ExecutionLogRepository
	gateway     repositories.AutomationGateway
	threshold   float64
	automatable map[entities.TaskType]struct{}
	logger      *zap.Logger
}

// NewTaskService creates a new task lifecycle service. The automatable task
// types come from configuration; unrecognized entries are ignored with a
// warning rather than rejected, so a config typo cannot take the service down.
func NewTaskService(
	items repositories.ActionItemRepository,
	executions repositories.ExecutionLogRepository,
	gateway repositories.AutomationGateway,
	cfg *config.TasksConfig,
	logger *zap.Logger,
) *TaskService {
	automatable := make(map[entities.TaskType]struct{}, len(cfg.AutomatableTaskTypes))
	for _, raw := range cfg.AutomatableTaskTypes {
		taskType, ok := entities.ParseTaskType(raw)
		if !ok {
			logger.Warn("⚠️ ignoring unknown automatable task type", zap.String("value", raw))
			continue
		}
		automatable[taskType] = struct{}{}
	}
	return &TaskService{
		items:       items,
		executions:  executions,
		gateway:     gateway,
		threshold:   cfg.AutoExecuteThreshold,
		automatable: automatable,
		logger:      logger,
	}
}

// EvaluateAutomation escalates every pending item whose confidence is at or
// above the auto-execute threshold and whose task type is automatable. Each
// escalated item is moved to in_progress with a guarded update and enqueued
// exactly once; items another writer already moved are skipped silently.
func (s *TaskService) EvaluateAutomation(ctx context.Context, items []*entities.ActionItem) (int, error) {
	escalated := 0
	for _, item := range items {
		if item.Status != entities.TaskStatusPending || item.ConfidenceScore < s.threshold {
			continue
		}
		if _, ok := s.automatable[item.TaskType]; !ok {
			continue
		}

		swapped, err := s.items.UpdateStatus(ctx, item.ID, entities.TaskStatusPending, entities.TaskStatusInProgress)
		if err != nil {
			return escalated, fmt.Errorf("failed to escalate action item: %w", err)
		}
		if !swapped {
			continue
		}
		item.Status = entities.TaskStatusInProgress
		escalated++

		s.logger.Info("🚀 auto-escalating action item",
			zap.String("action_item_id", item.ID.String()),
			zap.String("task_type", string(item.TaskType)),
			zap.Float64("confidence", item.ConfidenceScore))
		s.enqueue(ctx, item)
	}
	return escalated, nil
}

// enqueue hands the item to the automation gateway and records the attempt.
// Enqueue failures are recorded, not propagated: the item is already
// in_progress and downstream delivery is at-least-once.
func (s *TaskService) enqueue(ctx context.Context, item *entities.ActionItem) {
	logEntry := entities.NewExecutionLog(item.ID, entities.ExecutionTypeAutomation, entities.ExecutionStatusQueued)
	if err := s.gateway.EnqueueAutomation(ctx, item.ID); err != nil {
		s.logger.Warn("⚠️ automation enqueue failed",
			zap.String("action_item_id", item.ID.String()),
			zap.Error(err))
		logEntry.MarkFailed(err)
	}
	if s.executions == nil {
		return
	}
	if err := s.executions.Insert(ctx, logEntry); err != nil {
		s.logger.Warn("⚠️ failed to record execution log",
			zap.String("action_item_id", item.ID.String()),
			zap.Error(err))
	}
}

// Start moves a pending item to in_progress
func (s *TaskService) Start(ctx context.Context, itemID uuid.UUID) (*entities.ActionItem, error) {
	return s.transition(ctx, itemID, entities.TaskStatusInProgress)
}

// Complete marks an in-progress item as done
func (s *TaskService) Complete(ctx context.Context, itemID uuid.UUID) (*entities.ActionItem, error) {
	return s.transition(ctx, itemID, entities.TaskStatusCompleted)
}

// Cancel abandons a pending or in-progress item
func (s *TaskService) Cancel(ctx context.Context, itemID uuid.UUID) (*entities.ActionItem, error) {
	return s.transition(ctx, itemID, entities.TaskStatusCancelled)
}

// Fail marks a pending item as failed
func (s *TaskService) Fail(ctx context.Context, itemID uuid.UUID) (*entities.ActionItem, error) {
	return s.transition(ctx, itemID, entities.TaskStatusFailed)
}

// transition applies one lifecycle edge. The state machine is validated on
// the loaded item, then enforced again by a guarded status update so a
// concurrent writer cannot sneak an item out from under us.
func (s *TaskService) transition(ctx context.Context, itemID uuid.UUID, next entities.TaskStatus) (*entities.ActionItem, error) {
	item, err := s.items.GetByID(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to load action item: %w", err)
	}
	if item == nil {
		return nil, entities.ErrActionItemNotFound
	}

	from := item.Status
	if err := item.TransitionTo(next); err != nil {
		return nil, fmt.Errorf("%s to %s: %w", from, next, err)
	}

	swapped, err := s.items.UpdateStatus(ctx, item.ID, from, next)
	if err != nil {
		return nil, fmt.Errorf("failed to update action item status: %w", err)
	}
	if !swapped {
		return nil, fmt.Errorf("%s to %s: %w", from, next, entities.ErrInvalidTransition)
	}

	s.logger.Info("✅ action item transitioned",
		zap.String("action_item_id", item.ID.String()),
		zap.String("from", string(from)),
		zap.String("to", string(next)))
	return item, nil
}

// GetActionItem retrieves an action item by ID
func (s *TaskService) GetActionItem(ctx context.Context, itemID uuid.UUID) (*entities.ActionItem, error) {
	item, err := s.items.GetByID(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to get action item: %w", err)
	}
	if item == nil {
		return nil, entities.ErrActionItemNotFound
	}
	return item, nil
}

// ListPending retrieves pending items, optionally narrowed to one assignee
func (s *TaskService) ListPending(ctx context.Context, assignee string) ([]*entities.ActionItem, error) {
	items, err := s.items.ListPending(ctx, assignee)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending items: %w", err)
	}
	return items, nil
}

// ListByStatus retrieves items in the given lifecycle status
func (s *TaskService) ListByStatus(ctx context.Context, status entities.TaskStatus) ([]*entities.ActionItem, error) {
	items, err := s.items.ListByStatus(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list items by status: %w", err)
	}
	return items, nil
}

// ListByTranscript retrieves every item extracted from one transcript
func (s *TaskService) ListByTranscript(ctx context.Context, transcriptID uuid.UUID) ([]*entities.ActionItem, error) {
	items, err := s.items.ListByTranscript(ctx, transcriptID)
	if err != nil {
		return nil, fmt.Errorf("failed to list items by transcript: %w", err)
	}
	return items, nil
}

// ListExecutions retrieves the automation audit trail for an action item.
// The item must exist; a missing item is reported rather than an empty list
// so callers can distinguish "never automated" from "no such item".
func (s *TaskService) ListExecutions(ctx context.Context, itemID uuid.UUID) ([]*entities.ExecutionLog, error) {
	item, err := s.items.GetByID(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to load action item: %w", err)
	}
	if item == nil {
		return nil, entities.ErrActionItemNotFound
	}
	if s.executions == nil {
		return nil, nil
	}
	logs, err := s.executions.ListByActionItem(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to list execution logs: %w", err)
	}
	return logs, nil
}
