package transcripts

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/task-assistant-team/task-assistant/internal/domain/entities"
	"github.com/task-assistant-team/task-assistant/internal/domain/repositories"
)

// Archiver stores raw transcript content out of band. Satisfied by
// *storage.ArchiveStore; a nil archiver disables archiving.
type Archiver interface {
	ArchiveTranscript(ctx context.Context, transcriptID string, content string) (string, error)
	FetchArchived(ctx context.Context, objectKey string) (string, error)
}

// TranscriptService implements Service over a repository and an optional archive.
type TranscriptService struct {
	transcripts repositories.TranscriptRepository
	archive     Archiver
	logger      *zap.Logger
}

// NewTranscriptService creates the transcript ingestion service. archive may
// be nil when no object store is configured.
func NewTranscriptService(transcripts repositories.TranscriptRepository, archive Archiver, logger *zap.Logger) *TranscriptService {
	return &TranscriptService{
		transcripts: transcripts,
		archive:     archive,
		logger:      logger,
	}
}

// Ingest persists a new transcript. Archiving is best effort; a failed upload
// degrades to a warning and the transcript is stored without an object key.
func (s *TranscriptService) Ingest(ctx context.Context, input IngestInput) (*entities.Transcript, error) {
	source := input.Source
	if source == "" {
		source = "api"
	}

	// A zero date falls back to the ingestion time when deadlines are resolved.
	var date time.Time
	if input.MeetingDate != nil {
		date = *input.MeetingDate
	}

	t := entities.NewTranscript(input.Title, date, input.Participants, input.Content, source)
	if len(input.Metadata) > 0 {
		t.Metadata = input.Metadata
	}

	if s.archive != nil && !t.IsEmpty() {
		key, err := s.archive.ArchiveTranscript(ctx, t.ID.String(), t.Content)
		if err != nil {
			s.logger.Warn("⚠️ transcript archive failed",
				zap.String("transcript_id", t.ID.String()),
				zap.Error(err))
		} else {
			t.SourceFilePath = key
		}
	}

	if err := s.transcripts.Insert(ctx, t); err != nil {
		return nil, fmt.Errorf("insert transcript: %w", err)
	}

	s.logger.Info("📥 Transcript ingested",
		zap.String("transcript_id", t.ID.String()),
		zap.String("title", t.Title),
		zap.String("source", t.Source),
		zap.Int("content_length", len(t.Content)))

	return t, nil
}

// Get returns a transcript by ID.
func (s *TranscriptService) Get(ctx context.Context, id uuid.UUID) (*entities.Transcript, error) {
	t, err := s.transcripts.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get transcript: %w", err)
	}
	if t == nil {
		return nil, entities.ErrTranscriptNotFound
	}
	return t, nil
}

// Content returns the raw transcript text. When an archived copy exists it is
// authoritative; an archive read failure falls back to the stored column with
// a warning rather than failing the request.
func (s *TranscriptService) Content(ctx context.Context, id uuid.UUID) (string, error) {
	t, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}

	if s.archive != nil && t.SourceFilePath != "" {
		content, err := s.archive.FetchArchived(ctx, t.SourceFilePath)
		if err == nil {
			return content, nil
		}
		s.logger.Warn("⚠️ archived transcript read failed, serving stored content",
			zap.String("transcript_id", t.ID.String()),
			zap.String("object_key", t.SourceFilePath),
			zap.Error(err))
	}

	return t.Content, nil
}

// ListUnprocessed returns transcripts awaiting processing, oldest first.
func (s *TranscriptService) ListUnprocessed(ctx context.Context, limit int) ([]*entities.Transcript, error) {
	list, err := s.transcripts.ListUnprocessed(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list unprocessed transcripts: %w", err)
	}
	return list, nil
}
