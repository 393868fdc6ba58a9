package processor

import (
	"context"

	"github.com/google/uuid"

	"github.com/task-assistant-team/task-assistant/internal/domain/entities"
	"github.com/task-assistant-team/task-assistant/internal/usecase/extraction"
)

// Extractor produces the raw extraction for one transcript. Satisfied by
// *extraction.Client; tests substitute their own.
type Extractor interface {
	Extract(ctx context.Context, t *entities.Transcript) (*extraction.RawExtraction, error)
}

// Result summarizes one processing run.
type Result struct {
	TranscriptID   uuid.UUID              `json:"transcript_id"`
	Items          []*entities.ActionItem `json:"items"`
	SkippedEntries int                    `json:"skipped_entries"`
	Duplicates     int                    `json:"duplicates"`
	AutoStarted    int                    `json:"auto_started"`
}

// Service defines the interface for the transcript processing use case
type Service interface {
	// Process runs the extraction pipeline for one already-persisted
	// transcript: extract, validate, map, deduplicate, persist, automate
	Process(ctx context.Context, t *entities.Transcript) (*Result, error)

	// ProcessByID loads the transcript and runs Process
	ProcessByID(ctx context.Context, transcriptID uuid.UUID) (*Result, error)

	// Submit queues a transcript for asynchronous processing
	Submit(transcriptID uuid.UUID) error

	// StartWorkers starts the background processing workers
	StartWorkers(ctx context.Context, workerCount int) error

	// StopWorkers drains in-flight runs and stops the workers
	StopWorkers() error
}

// Ensure processorService implements Service interface
var _ Service = (*processorService)(nil)
