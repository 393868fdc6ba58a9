package transcripts

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/task-assistant-team/task-assistant/internal/domain/entities"
)

// IngestInput carries everything needed to register a transcript. Content may
// be empty; an empty transcript is stored and later yields zero action items.
type IngestInput struct {
	Title        string
	MeetingDate  *time.Time
	Participants []string
	Content      string
	Source       string
	Metadata     map[string]interface{}
}

// Service handles transcript ingestion and lookups.
type Service interface {
	// Ingest archives and persists a new transcript.
	Ingest(ctx context.Context, input IngestInput) (*entities.Transcript, error)

	// Get returns a transcript by ID, or entities.ErrTranscriptNotFound.
	Get(ctx context.Context, id uuid.UUID) (*entities.Transcript, error)

	// Content returns the raw transcript text, preferring the archived copy.
	Content(ctx context.Context, id uuid.UUID) (string, error)

	// ListUnprocessed returns transcripts awaiting processing, oldest first.
	ListUnprocessed(ctx context.Context, limit int) ([]*entities.Transcript, error)
}

// Ensure TranscriptService implements Service interface
var _ Service = (*TranscriptService)(nil)
