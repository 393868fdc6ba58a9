package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/task-assistant-team/task-assistant/internal/domain/entities"
	"github.com/task-assistant-team/task-assistant/internal/domain/repositories"
)

// actionItemRepository implements the ActionItemRepository interface
type actionItemRepository struct {
	db *gorm.DB
}

// NewActionItemRepository creates a new action item repository
func NewActionItemRepository(db *gorm.DB) repositories.ActionItemRepository {
	return &actionItemRepository{db: db}
}

// InsertBatch persists the whole batch in one transaction; a failure on any
// item rolls back every item
func (r *actionItemRepository) InsertBatch(ctx context.Context, items []*entities.ActionItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(items).Error
	})
}

// GetByID retrieves an action item by ID; a missing row is (nil, nil)
func (r *actionItemRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.ActionItem, error) {
	var item entities.ActionItem
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// ListByTranscript retrieves every item for the transcript in creation order,
// terminal items included
func (r *actionItemRepository) ListByTranscript(ctx context.Context, transcriptID uuid.UUID) ([]*entities.ActionItem, error) {
	var items []*entities.ActionItem
	if err := r.db.WithContext(ctx).
		Where("transcript_id = ?", transcriptID).
		Order("created_at ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// ListPending retrieves pending items ordered by deadline, soonest first.
// An empty assignee matches everyone.
func (r *actionItemRepository) ListPending(ctx context.Context, assignee string) ([]*entities.ActionItem, error) {
	var items []*entities.ActionItem
	query := r.db.WithContext(ctx).
		Where("status = ?", entities.TaskStatusPending)
	if assignee != "" {
		query = query.Where("LOWER(assignee) = LOWER(?)", assignee)
	}
	if err := query.
		Order("estimated_deadline ASC NULLS LAST").
		Order("created_at ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// ListByStatus retrieves items in the given lifecycle status
func (r *actionItemRepository) ListByStatus(ctx context.Context, status entities.TaskStatus) ([]*entities.ActionItem, error) {
	var items []*entities.ActionItem
	if err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("created_at ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// UpdateStatus performs the guarded transition: the row is only written when
// its persisted status still equals from. RowsAffected tells us whether we
// won the race.
func (r *actionItemRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to entities.TaskStatus) (bool, error) {
	now := time.Now()
	updates := map[string]interface{}{
		"status":     to,
		"updated_at": now,
	}
	if to == entities.TaskStatusCompleted {
		updates["completed_at"] = now
	}

	result := r.db.WithContext(ctx).
		Model(&entities.ActionItem{}).
		Where("id = ? AND status = ?", id, from).
		Updates(updates)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
