package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/task-assistant-team/task-assistant/internal/domain/entities"
	"github.com/task-assistant-team/task-assistant/internal/domain/repositories"
)

// executionLogRepository implements the ExecutionLogRepository interface
type executionLogRepository struct {
	db *gorm.DB
}

// NewExecutionLogRepository creates a new execution log repository
func NewExecutionLogRepository(db *gorm.DB) repositories.ExecutionLogRepository {
	return &executionLogRepository{db: db}
}

// Insert records one automation handoff
func (r *executionLogRepository) Insert(ctx context.Context, log *entities.ExecutionLog) error {
	if log == nil {
		return errors.New("execution log cannot be nil")
	}
	return r.db.WithContext(ctx).Create(log).Error
}

// ListByActionItem retrieves the automation history for one item, oldest first
func (r *executionLogRepository) ListByActionItem(ctx context.Context, actionItemID uuid.UUID) ([]*entities.ExecutionLog, error) {
	var logs []*entities.ExecutionLog
	if err := r.db.WithContext(ctx).
		Where("action_item_id = ?", actionItemID).
		Order("executed_at ASC").
		Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}
