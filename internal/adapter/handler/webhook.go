package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "github.com/task-assistant-team/task-assistant/errors"
	"github.com/task-assistant-team/task-assistant/internal/adapter/dto/transcript"
	"github.com/task-assistant-team/task-assistant/internal/adapter/presenter"
	"github.com/task-assistant-team/task-assistant/internal/infrastructure/cache"
	"github.com/task-assistant-team/task-assistant/internal/usecase/processor"
	transcriptUsecase "github.com/task-assistant-team/task-assistant/internal/usecase/transcripts"
	"github.com/task-assistant-team/task-assistant/pkg/ai"
)

// Webhook request headers
const (
	headerWebhookSignature = "X-Webhook-Signature"
	headerDeliveryID       = "X-Delivery-ID"
)

// deliveryDedupTTL bounds how long a delivery ID is remembered. Redeliveries
// of the same webhook inside this window are acknowledged without re-ingesting.
const deliveryDedupTTL = 24 * time.Hour

// WebhookHandler handles inbound transcript webhook deliveries
type WebhookHandler struct {
	transcriptService transcriptUsecase.Service
	processorService  processor.Service
	secret            string
	seen              *cache.MemoryStore
	logger            *zap.Logger
}

// NewWebhookHandler creates a new webhook handler
func NewWebhookHandler(transcriptService transcriptUsecase.Service, processorService processor.Service, secret string, logger *zap.Logger) *WebhookHandler {
	return &WebhookHandler{
		transcriptService: transcriptService,
		processorService:  processorService,
		secret:            secret,
		seen:              cache.NewMemoryStore(),
		logger:            logger,
	}
}

// HandleTranscriptWebhook processes transcript push deliveries
// @Summary      Transcript Webhook
// @Description  Receives signed transcript deliveries from external meeting platforms
// @Tags         Webhooks
// @Accept       json
// @Produce      json
// @Param        X-Webhook-Signature  header    string  false  "Hex-encoded HMAC-SHA256 of the request body"
// @Param        X-Delivery-ID        header    string  false  "Unique delivery identifier for redelivery deduplication"
// @Success      202  {object}  transcript.IngestTranscriptResponse  "Transcript accepted"
// @Failure      400  {object}  map[string]interface{}  "Invalid payload"
// @Failure      401  {object}  map[string]interface{}  "Signature verification failed"
// @Router       /webhooks/transcripts [post]
func (h *WebhookHandler) HandleTranscriptWebhook(c echo.Context) error {
	// Read raw body for signature validation
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		h.logger.Error("❌ failed to read webhook body", zap.Error(err))
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"error":   "invalid_request",
			"message": "failed to read request body",
		})
	}

	// Signature verification is enforced whenever a webhook secret is
	// configured. An unset secret leaves the endpoint open for local use.
	if h.secret != "" {
		signature := c.Request().Header.Get(headerWebhookSignature)
		if !ai.VerifyHMAC(h.secret, body, signature) {
			h.logger.Warn("⚠️ webhook signature rejected",
				zap.String("delivery_id", c.Request().Header.Get(headerDeliveryID)))
			return HandleError(h.logger, c, apperrors.ErrWebhookSignatureInvalid())
		}
	}

	// Redeliveries carry the same delivery ID; acknowledge without re-ingesting
	deliveryID := c.Request().Header.Get(headerDeliveryID)
	if deliveryID != "" && h.seen.Remember("webhook:delivery:"+deliveryID, deliveryDedupTTL) {
		h.logger.Info("⏭️ duplicate webhook delivery acknowledged",
			zap.String("delivery_id", deliveryID))
		return HandleSuccess(h.logger, c, map[string]interface{}{
			"status":    "ok",
			"duplicate": true,
		})
	}

	var req transcript.IngestTranscriptRequest
	if err := json.Unmarshal(body, &req); err != nil {
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

	input := transcriptUsecase.IngestInput{
		Title:        req.Title,
		MeetingDate:  req.MeetingDate,
		Participants: req.Participants,
		Content:      req.Content,
		Source:       "webhook",
		Metadata:     req.Metadata,
	}

	t, err := h.transcriptService.Ingest(c.Request().Context(), input)
	if err != nil {
		return HandleError(h.logger, c, apperrors.ErrTranscriptIngestFailed(err))
	}

	queued := true
	if err := h.processorService.Submit(t.ID); err != nil {
		queued = false
		h.logger.Warn("⚠️ webhook transcript not queued, leaving for backlog sweep",
			zap.String("transcript_id", t.ID.String()),
			zap.Error(err))
	}

	h.logger.Info("📥 webhook transcript accepted",
		zap.String("transcript_id", t.ID.String()),
		zap.String("delivery_id", deliveryID),
		zap.Bool("queued", queued))

	response := &transcript.IngestTranscriptResponse{
		Transcript: presenter.ToTranscriptResponse(t),
		Queued:     queued,
	}

	return c.JSON(http.StatusAccepted, response)
}
