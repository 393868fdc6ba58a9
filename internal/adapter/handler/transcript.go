package handler

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "github.com/task-assistant-team/task-assistant/errors"
	"github.com/task-assistant-team/task-assistant/internal/adapter/dto/transcript"
	"github.com/task-assistant-team/task-assistant/internal/adapter/presenter"
	"github.com/task-assistant-team/task-assistant/internal/domain/entities"
	usecaseErrors "github.com/task-assistant-team/task-assistant/internal/usecase/errors"
	"github.com/task-assistant-team/task-assistant/internal/usecase/extraction"
	"github.com/task-assistant-team/task-assistant/internal/usecase/processor"
	transcriptUsecase "github.com/task-assistant-team/task-assistant/internal/usecase/transcripts"
)

// Transcript handles transcript-related HTTP requests
type Transcript struct {
	transcriptService transcriptUsecase.Service
	processorService  processor.Service
	logger            *zap.Logger
}

// NewTranscriptHandler creates a new transcript handler
func NewTranscriptHandler(transcriptService transcriptUsecase.Service, processorService processor.Service, logger *zap.Logger) *Transcript {
	return &Transcript{
		transcriptService: transcriptService,
		processorService:  processorService,
		logger:            logger,
	}
}

// Ingest handles POST /transcripts
// @Summary      Ingest a meeting transcript
// @Description  Stores a transcript, archives its content, and queues it for action item extraction
// @Tags         Transcripts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      transcript.IngestTranscriptRequest  true  "Transcript ingestion request"
// @Success      202      {object}  transcript.IngestTranscriptResponse  "Transcript accepted"
// @Failure      400      {object}  map[string]interface{}  "Invalid request or validation failed"
// @Failure      500      {object}  map[string]interface{}  "Failed to ingest transcript"
// @Router       /transcripts [post]
func (h *Transcript) Ingest(c echo.Context) error {
	var req transcript.IngestTranscriptRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"error":   "invalid_request",
			"message": err.Error(),
		})
	}

	// Validate request
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"error":   "validation_failed",
			"message": err.Error(),
		})
	}

	input := transcriptUsecase.IngestInput{
		Title:        req.Title,
		MeetingDate:  req.MeetingDate,
		Participants: req.Participants,
		Content:      req.Content,
		Source:       req.Source,
		Metadata:     req.Metadata,
	}

	t, err := h.transcriptService.Ingest(c.Request().Context(), input)
	if err != nil {
		return HandleError(h.logger, c, apperrors.ErrTranscriptIngestFailed(err))
	}

	// Queue for asynchronous processing. A full queue is not an ingest
	// failure; the backlog sweeper picks the transcript up later.
	queued := true
	if err := h.processorService.Submit(t.ID); err != nil {
		queued = false
		h.logger.Warn("⚠️ transcript not queued, leaving for backlog sweep",
			zap.String("transcript_id", t.ID.String()),
			zap.Error(err))
	}

	response := &transcript.IngestTranscriptResponse{
		Transcript: presenter.ToTranscriptResponse(t),
		Queued:     queued,
	}

	return c.JSON(http.StatusAccepted, response)
}

// Get handles GET /transcripts/:id
// @Summary      Get transcript details
// @Description  Gets a stored transcript including its processing state
// @Tags         Transcripts
// @Produce      json
// @Param        id   path      string  true  "Transcript ID (UUID)"
// @Success      200  {object}  transcript.TranscriptResponse  "Transcript details"
// @Failure      400  {object}  map[string]interface{}  "Invalid transcript ID"
// @Failure      404  {object}  map[string]interface{}  "Transcript not found"
// @Router       /transcripts/{id} [get]
func (h *Transcript) Get(c echo.Context) error {
	transcriptID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"error":   "invalid_transcript_id",
			"message": "transcript ID must be a valid UUID",
		})
	}

	t, err := h.transcriptService.Get(c.Request().Context(), transcriptID)
	if err != nil {
		if errors.Is(err, entities.ErrTranscriptNotFound) {
			return HandleError(h.logger, c, apperrors.ErrTranscriptNotFound(transcriptID.String()))
		}
		return HandleError(h.logger, c, err)
	}

	return c.JSON(http.StatusOK, presenter.ToTranscriptResponse(t))
}

// Content handles GET /transcripts/:id/content
// @Summary      Get raw transcript content
// @Description  Serves the transcript text, preferring the archived copy when one exists
// @Tags         Transcripts
// @Produce      plain
// @Param        id   path      string  true  "Transcript ID (UUID)"
// @Success      200  {string}  string  "Raw transcript text"
// @Failure      400  {object}  map[string]interface{}  "Invalid transcript ID"
// @Failure      404  {object}  map[string]interface{}  "Transcript not found"
// @Router       /transcripts/{id}/content [get]
func (h *Transcript) Content(c echo.Context) error {
	transcriptID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"error":   "invalid_transcript_id",
			"message": "transcript ID must be a valid UUID",
		})
	}

	content, err := h.transcriptService.Content(c.Request().Context(), transcriptID)
	if err != nil {
		if errors.Is(err, entities.ErrTranscriptNotFound) {
			return HandleError(h.logger, c, apperrors.ErrTranscriptNotFound(transcriptID.String()))
		}
		return HandleError(h.logger, c, err)
	}

	return c.String(http.StatusOK, content)
}

// List handles GET /transcripts
// @Summary      List unprocessed transcripts
// @Description  Gets transcripts still awaiting action item extraction, oldest first
// @Tags         Transcripts
// @Produce      json
// @Param        limit  query     int  false  "Maximum number of transcripts (default: 50)"
// @Success      200    {object}  transcript.TranscriptListResponse  "List of transcripts"
// @Failure      400    {object}  map[string]interface{}  "Invalid request"
// @Failure      500    {object}  map[string]interface{}  "Failed to list transcripts"
// @Router       /transcripts [get]
func (h *Transcript) List(c echo.Context) error {
	var req transcript.ListUnprocessedRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"error":   "invalid_request",
			"message": err.Error(),
		})
	}

	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"error":   "validation_failed",
			"message": err.Error(),
		})
	}

	// Set defaults
	if req.Limit == 0 {
		req.Limit = 50
	}

	transcriptList, err := h.transcriptService.ListUnprocessed(c.Request().Context(), req.Limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"error":   "failed_to_list_transcripts",
			"message": err.Error(),
		})
	}

	return c.JSON(http.StatusOK, presenter.ToTranscriptListResponse(transcriptList))
}

// Process handles POST /transcripts/:id/process
// @Summary      Process a transcript synchronously
// @Description  Runs extraction, validation, deduplication, and persistence for one transcript and returns the outcome
// @Tags         Transcripts
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Transcript ID (UUID)"
// @Success      200  {object}  transcript.ProcessResultResponse  "Processing result"
// @Failure      400  {object}  map[string]interface{}  "Invalid transcript ID"
// @Failure      404  {object}  map[string]interface{}  "Transcript not found"
// @Failure      409  {object}  map[string]interface{}  "Transcript locked by another run"
// @Failure      502  {object}  map[string]interface{}  "Extraction provider failed"
// @Router       /transcripts/{id}/process [post]
func (h *Transcript) Process(c echo.Context) error {
	transcriptID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"error":   "invalid_transcript_id",
			"message": "transcript ID must be a valid UUID",
		})
	}

	result, err := h.processorService.ProcessByID(c.Request().Context(), transcriptID)
	if err != nil {
		var extractionErr *extraction.ExtractionFailedError
		switch {
		case errors.Is(err, entities.ErrTranscriptNotFound):
			return HandleError(h.logger, c, apperrors.ErrTranscriptNotFound(transcriptID.String()))
		case errors.Is(err, usecaseErrors.ErrLockUnavailable):
			return HandleError(h.logger, c, apperrors.ErrLockUnavailable(transcriptID.String()))
		case errors.As(err, &extractionErr):
			return HandleError(h.logger, c, apperrors.ErrExtractionFailed(err))
		default:
			return HandleError(h.logger, c, apperrors.ErrProcessingFailed(err))
		}
	}

	return c.JSON(http.StatusOK, presenter.ToProcessResultResponse(result))
}
