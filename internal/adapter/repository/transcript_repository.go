package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/task-assistant-team/task-assistant/internal/domain/entities"
	"github.com/task-assistant-team/task-assistant/internal/domain/repositories"
)

// transcriptRepository implements the TranscriptRepository interface
type transcriptRepository struct {
	db *gorm.DB
}

// NewTranscriptRepository creates a new transcript repository
func NewTranscriptRepository(db *gorm.DB) repositories.TranscriptRepository {
	return &transcriptRepository{db: db}
}

// Insert creates a new transcript
func (r *transcriptRepository) Insert(ctx context.Context, t *entities.Transcript) error {
	if t == nil {
		return errors.New("transcript cannot be nil")
	}
	return r.db.WithContext(ctx).Create(t).Error
}

// GetByID retrieves a transcript by ID; a missing row is (nil, nil)
func (r *transcriptRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Transcript, error) {
	var t entities.Transcript
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&t).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

// MarkProcessed flips the processed flag once extraction has run
func (r *transcriptRepository) MarkProcessed(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Model(&entities.Transcript{}).
		Where("id = ?", id).
		Update("processed", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return entities.ErrTranscriptNotFound
	}
	return nil
}

// ListUnprocessed retrieves transcripts awaiting extraction, oldest first
func (r *transcriptRepository) ListUnprocessed(ctx context.Context, limit int) ([]*entities.Transcript, error) {
	var transcripts []*entities.Transcript
	query := r.db.WithContext(ctx).
		Where("processed = ?", false).
		Order("created_at ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&transcripts).Error; err != nil {
		return nil, err
	}
	return transcripts, nil
}
