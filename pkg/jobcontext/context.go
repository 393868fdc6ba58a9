package jobcontext

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type KeyContext string

var (
	keyJobID        KeyContext = "job_id"
	keyTranscriptID KeyContext = "transcript_id"
	keyWorkerID     KeyContext = "worker_id"
	keyJobStartTime KeyContext = "job_start_time"
)

// JobMetadata holds metadata for one processing run
type JobMetadata struct {
	JobID        uuid.UUID
	TranscriptID uuid.UUID
	WorkerID     int
	StartTime    time.Time
}

// JobBegin initializes a processing-run context with metadata and a timeout.
// The timeout caps one whole run so a wedged provider call cannot hang a
// worker forever.
func JobBegin(parentCtx context.Context, transcriptID uuid.UUID, workerID int, timeout time.Duration) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(parentCtx, timeout)

	ctx = context.WithValue(ctx, keyJobID, uuid.New())
	ctx = context.WithValue(ctx, keyTranscriptID, transcriptID)
	ctx = context.WithValue(ctx, keyWorkerID, workerID)
	ctx = context.WithValue(ctx, keyJobStartTime, time.Now())

	return ctx, cancel
}

// Run executes the job function with panic recovery. Retry policy lives at
// the extraction call, not here; a failed run is reported, never replayed.
func Run(ctx context.Context, jobFunc func(context.Context) error) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic recovered: %v", p)
		}
	}()

	if ctx.Err() != nil {
		return fmt.Errorf("context cancelled before job execution: %w", ctx.Err())
	}

	return jobFunc(ctx)
}

// GetJobID extracts the run ID from context
func GetJobID(ctx context.Context) (uuid.UUID, bool) {
	jobID, ok := ctx.Value(keyJobID).(uuid.UUID)
	return jobID, ok
}

// GetTranscriptID extracts the transcript ID from context
func GetTranscriptID(ctx context.Context) (uuid.UUID, bool) {
	transcriptID, ok := ctx.Value(keyTranscriptID).(uuid.UUID)
	return transcriptID, ok
}

// GetWorkerID extracts the worker ID from context
func GetWorkerID(ctx context.Context) int {
	workerID, ok := ctx.Value(keyWorkerID).(int)
	if !ok {
		return -1
	}
	return workerID
}

// GetJobStartTime extracts the run start time from context
func GetJobStartTime(ctx context.Context) (time.Time, bool) {
	startTime, ok := ctx.Value(keyJobStartTime).(time.Time)
	return startTime, ok
}

// GetJobMetadata extracts all run metadata from context
func GetJobMetadata(ctx context.Context) *JobMetadata {
	jobID, _ := GetJobID(ctx)
	transcriptID, _ := GetTranscriptID(ctx)
	startTime, _ := GetJobStartTime(ctx)

	return &JobMetadata{
		JobID:        jobID,
		TranscriptID: transcriptID,
		WorkerID:     GetWorkerID(ctx),
		StartTime:    startTime,
	}
}
