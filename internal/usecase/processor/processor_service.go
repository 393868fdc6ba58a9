package processor

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/task-assistant-team/task-assistant/internal/domain/entities"
	"github.com/task-assistant-team/task-assistant/internal/domain/repositories"
	"github.com/task-assistant-team/task-assistant/internal/infrastructure/lock"
	usecaseErrors "github.com/task-assistant-team/task-assistant/internal/usecase/errors"
	"github.com/task-assistant-team/task-assistant/internal/usecase/extraction"
	"github.com/task-assistant-team/task-assistant/internal/usecase/tasks"
	"github.com/task-assistant-team/task-assistant/pkg/config"
	"github.com/task-assistant-team/task-assistant/pkg/jobcontext"
)

const (
	// processTimeout caps one whole run, provider retries included.
	processTimeout = 5 * time.Minute

	// backlogPollInterval is how often the backlog worker sweeps for
	// unprocessed transcripts left behind by a crash or a full queue.
	backlogPollInterval = 30 * time.Second
)

type processorService struct {
	transcripts repositories.TranscriptRepository
	items       repositories.ActionItemRepository
	extractor   Extractor
	validator   *extraction.Validator
	mapper      *extraction.Mapper
	dedup       *extraction.Engine
	tasks       tasks.Service
	locker      lock.Locker
	logger      *zap.Logger

	queue               chan uuid.UUID
	workerStopChan      chan struct{}
	workerWg            sync.WaitGroup
	isWorkerPoolRunning bool
	workerMutex         sync.Mutex
}

// NewProcessorService constructs the transcript processing service
func NewProcessorService(
	transcripts repositories.TranscriptRepository,
	items repositories.ActionItemRepository,
	extractor Extractor,
	tasksSvc tasks.Service,
	locker lock.Locker,
	cfg *config.TasksConfig,
	logger *zap.Logger,
) Service {
	return &processorService{
		transcripts: transcripts,
		items:       items,
		extractor:   extractor,
		validator:   extraction.NewValidator(logger),
		mapper:      extraction.NewMapper(cfg),
		dedup:       extraction.NewEngine(cfg.DedupSimilarityThreshold, logger),
		tasks:       tasksSvc,
		locker:      locker,
		logger:      logger,
		queue:       make(chan uuid.UUID, cfg.QueueCapacity),
	}
}

// Process runs the pipeline for one transcript. Persistence is all or
// nothing: on any failure past extraction no items are written and the
// transcript stays unprocessed, so a later run can redo the whole thing.
func (s *processorService) Process(ctx context.Context, t *entities.Transcript) (*Result, error) {
	if t == nil {
		return nil, fmt.Errorf("transcript cannot be nil")
	}
	result := &Result{TranscriptID: t.ID}

	s.logger.Info("🔄 Processing transcript",
		zap.String("transcript_id", t.ID.String()),
		zap.String("title", t.Title))

	// Empty transcripts yield no items and never reach the provider.
	if t.IsEmpty() {
		s.logger.Info("⏭️ Transcript has no content, skipping extraction",
			zap.String("transcript_id", t.ID.String()))
		if err := s.transcripts.MarkProcessed(ctx, t.ID); err != nil {
			return nil, fmt.Errorf("failed to mark transcript processed: %w", err)
		}
		return result, nil
	}

	raw, err := s.extractor.Extract(ctx, t)
	if err != nil {
		return nil, err
	}

	valid, skipped := s.validator.Validate(raw.Entries)
	result.SkippedEntries = skipped

	batch := s.dedup.CollapseBatch(s.mapper.Map(t, valid))

	// The lock spans the duplicate check and the insert so two concurrent
	// runs of the same transcript cannot both pass the check. It is released
	// on every path out of this function.
	release, err := s.locker.Acquire(ctx, t.ID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to lock transcript: %w", err)
	}
	defer release()

	existing, err := s.items.ListByTranscript(ctx, t.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load existing items: %w", err)
	}
	fresh := s.dedup.FilterAgainstExisting(batch, existing)
	result.Duplicates = len(batch) - len(fresh)

	if len(fresh) > 0 {
		if err := s.items.InsertBatch(ctx, fresh); err != nil {
			return nil, fmt.Errorf("failed to persist action items: %w", err)
		}
	}
	result.Items = fresh

	if err := s.transcripts.MarkProcessed(ctx, t.ID); err != nil {
		return nil, fmt.Errorf("failed to mark transcript processed: %w", err)
	}

	autoStarted, err := s.tasks.EvaluateAutomation(ctx, fresh)
	if err != nil {
		return nil, fmt.Errorf("automation evaluation failed: %w", err)
	}
	result.AutoStarted = autoStarted

	s.logger.Info("✅ Transcript processed",
		zap.String("transcript_id", t.ID.String()),
		zap.Int("new_items", len(fresh)),
		zap.Int("skipped_entries", result.SkippedEntries),
		zap.Int("duplicates", result.Duplicates),
		zap.Int("auto_started", result.AutoStarted))
	return result, nil
}

// ProcessByID loads the transcript and runs Process
func (s *processorService) ProcessByID(ctx context.Context, transcriptID uuid.UUID) (*Result, error) {
	t, err := s.transcripts.GetByID(ctx, transcriptID)
	if err != nil {
		return nil, fmt.Errorf("failed to load transcript: %w", err)
	}
	if t == nil {
		return nil, entities.ErrTranscriptNotFound
	}
	return s.Process(ctx, t)
}

// Submit queues a transcript for asynchronous processing. The queue is
// buffered; when it is full the caller gets ErrQueueFull and the backlog
// sweep picks the transcript up later.
func (s *processorService) Submit(transcriptID uuid.UUID) error {
	select {
	case s.queue <- transcriptID:
		s.logger.Info("📥 Transcript queued",
			zap.String("transcript_id", transcriptID.String()),
			zap.Int("queue_depth", len(s.queue)))
		return nil
	default:
		return usecaseErrors.ErrQueueFull
	}
}

// StartWorkers starts the processing workers and the backlog sweeper
func (s *processorService) StartWorkers(ctx context.Context, workerCount int) error {
	s.workerMutex.Lock()
	defer s.workerMutex.Unlock()

	if s.isWorkerPoolRunning {
		return usecaseErrors.ErrWorkersRunning
	}
	if workerCount < 1 {
		workerCount = 1
	}

	s.isWorkerPoolRunning = true
	s.workerStopChan = make(chan struct{})

	s.logger.Info("🚀 Starting processing workers",
		zap.Int("worker_count", workerCount))

	for i := 0; i < workerCount; i++ {
		s.workerWg.Add(1)
		go s.worker(ctx, i)
	}

	s.workerWg.Add(1)
	go s.backlogWorker(ctx)

	return nil
}

// StopWorkers signals all workers to stop and waits for in-flight runs
func (s *processorService) StopWorkers() error {
	s.workerMutex.Lock()
	defer s.workerMutex.Unlock()

	if !s.isWorkerPoolRunning {
		return usecaseErrors.ErrWorkersNotRunning
	}

	s.logger.Info("🛑 Stopping processing workers...")

	close(s.workerStopChan)
	s.workerWg.Wait()
	s.isWorkerPoolRunning = false

	s.logger.Info("✅ Processing workers stopped")
	return nil
}

// worker drains the queue until stopped
func (s *processorService) worker(parentCtx context.Context, workerID int) {
	defer s.workerWg.Done()

	s.logger.Info("👷 Worker started", zap.Int("worker_id", workerID))

	for {
		select {
		case <-s.workerStopChan:
			s.logger.Info("👷 Worker stopping", zap.Int("worker_id", workerID))
			return

		case transcriptID := <-s.queue:
			s.handle(parentCtx, workerID, transcriptID)
		}
	}
}

// handle runs one queued transcript under a bounded job context
func (s *processorService) handle(parentCtx context.Context, workerID int, transcriptID uuid.UUID) {
	jobCtx, cancel := jobcontext.JobBegin(parentCtx, transcriptID, workerID, processTimeout)
	defer cancel()

	err := jobcontext.Run(jobCtx, func(ctx context.Context) error {
		_, err := s.ProcessByID(ctx, transcriptID)
		return err
	})
	if err != nil {
		// The transcript stays unprocessed; the backlog sweep retries it.
		s.logger.Error("❌ Processing run failed",
			zap.Int("worker_id", workerID),
			zap.String("transcript_id", transcriptID.String()),
			zap.Error(err))
	}
}

// backlogWorker periodically requeues unprocessed transcripts. Reprocessing
// is idempotent, so requeueing something already inflight is harmless.
func (s *processorService) backlogWorker(parentCtx context.Context) {
	defer s.workerWg.Done()

	ticker := time.NewTicker(backlogPollInterval)
	defer ticker.Stop()

	s.logger.Info("👷 Backlog worker started")

	for {
		select {
		case <-s.workerStopChan:
			s.logger.Info("👷 Backlog worker stopping")
			return

		case <-ticker.C:
			transcripts, err := s.transcripts.ListUnprocessed(parentCtx, cap(s.queue))
			if err != nil {
				s.logger.Error("❌ Failed to poll unprocessed transcripts", zap.Error(err))
				continue
			}
			for _, t := range transcripts {
				select {
				case s.queue <- t.ID:
				default:
					// Queue full; the next sweep gets the rest.
				}
			}
		}
	}
}
