package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "github.com/task-assistant-team/task-assistant/errors"
	"github.com/task-assistant-team/task-assistant/internal/adapter/dto/task"
	"github.com/task-assistant-team/task-assistant/internal/adapter/presenter"
	"github.com/task-assistant-team/task-assistant/internal/domain/entities"
	"github.com/task-assistant-team/task-assistant/internal/usecase/tasks"
)

// ActionItem handles action item lifecycle HTTP requests
type ActionItem struct {
	taskService tasks.Service
	logger      *zap.Logger
}

// NewActionItemHandler creates a new action item handler
func NewActionItemHandler(taskService tasks.Service, logger *zap.Logger) *ActionItem {
	return &ActionItem{
		taskService: taskService,
		logger:      logger,
	}
}

// Get handles GET /action-items/:id
// @Summary      Get action item details
// @Description  Gets a single action item including its lifecycle status
// @Tags         ActionItems
// @Produce      json
// @Param        id   path      string  true  "Action item ID (UUID)"
// @Success      200  {object}  task.ActionItemResponse  "Action item details"
// @Failure      400  {object}  map[string]interface{}  "Invalid action item ID"
// @Failure      404  {object}  map[string]interface{}  "Action item not found"
// @Router       /action-items/{id} [get]
func (h *ActionItem) Get(c echo.Context) error {
	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"error":   "invalid_action_item_id",
			"message": "action item ID must be a valid UUID",
		})
	}

	item, err := h.taskService.GetActionItem(c.Request().Context(), itemID)
	if err != nil {
		if errors.Is(err, entities.ErrActionItemNotFound) {
			return HandleError(h.logger, c, apperrors.ErrActionItemNotFound(itemID.String()))
		}
		return HandleError(h.logger, c, err)
	}

	return c.JSON(http.StatusOK, presenter.ToActionItemResponse(item))
}

// List handles GET /action-items
// @Summary      List action items
// @Description  Lists action items filtered by status or assignee; defaults to the pending work queue
// @Tags         ActionItems
// @Produce      json
// @Param        status    query     string  false  "Status filter (pending/in_progress/completed/cancelled/failed)"
// @Param        assignee  query     string  false  "Assignee filter (pending items only)"
// @Success      200       {object}  task.ActionItemListResponse  "List of action items"
// @Failure      400       {object}  map[string]interface{}  "Invalid request"
// @Failure      500       {object}  map[string]interface{}  "Failed to list action items"
// @Router       /action-items [get]
func (h *ActionItem) List(c echo.Context) error {
	var req task.ListActionItemsRequest
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

	var (
		items []*entities.ActionItem
		err   error
	)
	switch {
	case req.Assignee != "":
		// Assignee filtering is served from the pending work queue
		if req.Status != "" && req.Status != string(entities.TaskStatusPending) {
			return c.JSON(http.StatusBadRequest, map[string]interface{}{
				"error":   "unsupported_filter",
				"message": "assignee filtering is only available for pending items",
			})
		}
		items, err = h.taskService.ListPending(c.Request().Context(), req.Assignee)
	case req.Status != "":
		status, ok := entities.ParseTaskStatus(req.Status)
		if !ok {
			return c.JSON(http.StatusBadRequest, map[string]interface{}{
				"error":   "invalid_status",
				"message": "status must be pending, in_progress, completed, cancelled, or failed",
			})
		}
		items, err = h.taskService.ListByStatus(c.Request().Context(), status)
	default:
		items, err = h.taskService.ListPending(c.Request().Context(), "")
	}

	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"error":   "failed_to_list_action_items",
			"message": err.Error(),
		})
	}

	return c.JSON(http.StatusOK, presenter.ToActionItemListResponse(items))
}

// ListByTranscript handles GET /transcripts/:id/action-items
// @Summary      List action items for a transcript
// @Description  Gets every action item extracted from one transcript, terminal items included
// @Tags         ActionItems
// @Produce      json
// @Param        id   path      string  true  "Transcript ID (UUID)"
// @Success      200  {object}  task.ActionItemListResponse  "List of action items"
// @Failure      400  {object}  map[string]interface{}  "Invalid transcript ID"
// @Failure      500  {object}  map[string]interface{}  "Failed to list action items"
// @Router       /transcripts/{id}/action-items [get]
func (h *ActionItem) ListByTranscript(c echo.Context) error {
	transcriptID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"error":   "invalid_transcript_id",
			"message": "transcript ID must be a valid UUID",
		})
	}

	items, err := h.taskService.ListByTranscript(c.Request().Context(), transcriptID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"error":   "failed_to_list_action_items",
			"message": err.Error(),
		})
	}

	return c.JSON(http.StatusOK, presenter.ToActionItemListResponse(items))
}

// ListExecutions handles GET /action-items/:id/executions
// @Summary      List automation executions
// @Description  Gets the automation audit trail recorded for one action item
// @Tags         ActionItems
// @Produce      json
// @Param        id   path      string  true  "Action item ID (UUID)"
// @Success      200  {object}  task.ExecutionLogListResponse  "List of execution log entries"
// @Failure      400  {object}  map[string]interface{}  "Invalid action item ID"
// @Failure      404  {object}  map[string]interface{}  "Action item not found"
// @Router       /action-items/{id}/executions [get]
func (h *ActionItem) ListExecutions(c echo.Context) error {
	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"error":   "invalid_action_item_id",
			"message": "action item ID must be a valid UUID",
		})
	}

	logs, err := h.taskService.ListExecutions(c.Request().Context(), itemID)
	if err != nil {
		if errors.Is(err, entities.ErrActionItemNotFound) {
			return HandleError(h.logger, c, apperrors.ErrActionItemNotFound(itemID.String()))
		}
		return HandleError(h.logger, c, err)
	}

	return c.JSON(http.StatusOK, presenter.ToExecutionLogListResponse(logs))
}

// Start handles POST /action-items/:id/start
// @Summary      Start an action item
// @Description  Moves a pending action item to in_progress
// @Tags         ActionItems
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Action item ID (UUID)"
// @Success      200  {object}  task.ActionItemResponse  "Updated action item"
// @Failure      400  {object}  map[string]interface{}  "Invalid action item ID"
// @Failure      404  {object}  map[string]interface{}  "Action item not found"
// @Failure      409  {object}  map[string]interface{}  "Invalid status transition"
// @Router       /action-items/{id}/start [post]
func (h *ActionItem) Start(c echo.Context) error {
	return h.transition(c, h.taskService.Start)
}

// Complete handles POST /action-items/:id/complete
// @Summary      Complete an action item
// @Description  Marks an in-progress action item as done
// @Tags         ActionItems
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Action item ID (UUID)"
// @Success      200  {object}  task.ActionItemResponse  "Updated action item"
// @Failure      400  {object}  map[string]interface{}  "Invalid action item ID"
// @Failure      404  {object}  map[string]interface{}  "Action item not found"
// @Failure      409  {object}  map[string]interface{}  "Invalid status transition"
// @Router       /action-items/{id}/complete [post]
func (h *ActionItem) Complete(c echo.Context) error {
	return h.transition(c, h.taskService.Complete)
}

// Cancel handles POST /action-items/:id/cancel
// @Summary      Cancel an action item
// @Description  Abandons a pending or in-progress action item
// @Tags         ActionItems
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Action item ID (UUID)"
// @Success      200  {object}  task.ActionItemResponse  "Updated action item"
// @Failure      400  {object}  map[string]interface{}  "Invalid action item ID"
// @Failure      404  {object}  map[string]interface{}  "Action item not found"
// @Failure      409  {object}  map[string]interface{}  "Invalid status transition"
// @Router       /action-items/{id}/cancel [post]
func (h *ActionItem) Cancel(c echo.Context) error {
	return h.transition(c, h.taskService.Cancel)
}

// Fail handles POST /action-items/:id/fail
// @Summary      Fail an action item
// @Description  Marks a pending action item as failed
// @Tags         ActionItems
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Action item ID (UUID)"
// @Success      200  {object}  task.ActionItemResponse  "Updated action item"
// @Failure      400  {object}  map[string]interface{}  "Invalid action item ID"
// @Failure      404  {object}  map[string]interface{}  "Action item not found"
// @Failure      409  {object}  map[string]interface{}  "Invalid status transition"
// @Router       /action-items/{id}/fail [post]
func (h *ActionItem) Fail(c echo.Context) error {
	return h.transition(c, h.taskService.Fail)
}

// transition parses the item ID, applies one lifecycle edge, and maps the
// domain errors onto HTTP status codes.
func (h *ActionItem) transition(c echo.Context, apply func(context.Context, uuid.UUID) (*entities.ActionItem, error)) error {
	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"error":   "invalid_action_item_id",
			"message": "action item ID must be a valid UUID",
		})
	}

	item, err := apply(c.Request().Context(), itemID)
	if err != nil {
		switch {
		case errors.Is(err, entities.ErrActionItemNotFound):
			return HandleError(h.logger, c, apperrors.ErrActionItemNotFound(itemID.String()))
		case errors.Is(err, entities.ErrInvalidTransition):
			return HandleError(h.logger, c, apperrors.ErrInvalidTransition(err))
		default:
			return HandleError(h.logger, c, err)
		}
	}

	return c.JSON(http.StatusOK, presenter.ToActionItemResponse(item))
}
