package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/task-assistant-team/task-assistant/internal/domain/entities"
)

// TranscriptRepository defines persistence operations for meeting transcripts.
// Transcripts are immutable after insertion; only the processed flag changes.
type TranscriptRepository interface {
	Insert(ctx context.Context, t *entities.Transcript) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Transcript, error)
	MarkProcessed(ctx context.Context, id uuid.UUID) error
	ListUnprocessed(ctx context.Context, limit int) ([]*entities.Transcript, error)
}
