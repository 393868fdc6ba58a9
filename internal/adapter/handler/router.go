package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/task-assistant-team/task-assistant/pkg/config"
)

// Router holds all handlers
type Router struct {
	cfg               *config.Config
	transcriptHandler *Transcript
	actionItemHandler *ActionItem
	webhookHandler    *WebhookHandler
	// mutating is applied to every state-changing route; empty when no
	// service token secret is configured
	mutating []echo.MiddlewareFunc
}

// NewRouter creates a new router with all handlers
func NewRouter(cfg *config.Config, transcriptHandler *Transcript, actionItemHandler *ActionItem, webhookHandler *WebhookHandler, mutating ...echo.MiddlewareFunc) *Router {
	return &Router{
		cfg:               cfg,
		transcriptHandler: transcriptHandler,
		actionItemHandler: actionItemHandler,
		webhookHandler:    webhookHandler,
		mutating:          mutating,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", rt.healthCheck)

	// Webhook deliveries authenticate with an HMAC signature, not a
	// service token, so they live outside the API group
	if rt.webhookHandler != nil {
		e.POST("/webhooks/transcripts", rt.webhookHandler.HandleTranscriptWebhook)
	} else {
		e.POST("/webhooks/transcripts", rt.notImplemented)
	}

	// API v1 group
	v1 := e.Group("/api/v1")

	// Setup route groups
	rt.setupTranscriptRoutes(v1)
	rt.setupActionItemRoutes(v1)
}

// setupTranscriptRoutes configures transcript ingestion and processing routes
func (rt *Router) setupTranscriptRoutes(g *echo.Group) {
	transcriptGroup := g.Group("/transcripts")

	if rt.transcriptHandler == nil {
		transcriptGroup.POST("", rt.notImplemented)
		transcriptGroup.GET("", rt.notImplemented)
		transcriptGroup.GET("/:id", rt.notImplemented)
		transcriptGroup.GET("/:id/content", rt.notImplemented)
		transcriptGroup.POST("/:id/process", rt.notImplemented)
		transcriptGroup.GET("/:id/action-items", rt.notImplemented)
		return
	}

	transcriptGroup.POST("", rt.transcriptHandler.Ingest, rt.mutating...)
	transcriptGroup.GET("", rt.transcriptHandler.List)
	transcriptGroup.GET("/:id", rt.transcriptHandler.Get)
	transcriptGroup.GET("/:id/content", rt.transcriptHandler.Content)
	transcriptGroup.POST("/:id/process", rt.transcriptHandler.Process, rt.mutating...)

	if rt.actionItemHandler != nil {
		transcriptGroup.GET("/:id/action-items", rt.actionItemHandler.ListByTranscript)
	}
}

// setupActionItemRoutes configures action item lifecycle routes
func (rt *Router) setupActionItemRoutes(g *echo.Group) {
	itemGroup := g.Group("/action-items")

	if rt.actionItemHandler == nil {
		itemGroup.GET("", rt.notImplemented)
		itemGroup.GET("/:id", rt.notImplemented)
		itemGroup.GET("/:id/executions", rt.notImplemented)
		itemGroup.POST("/:id/start", rt.notImplemented)
		itemGroup.POST("/:id/complete", rt.notImplemented)
		itemGroup.POST("/:id/cancel", rt.notImplemented)
		itemGroup.POST("/:id/fail", rt.notImplemented)
		return
	}

	itemGroup.GET("", rt.actionItemHandler.List)
	itemGroup.GET("/:id", rt.actionItemHandler.Get)
	itemGroup.GET("/:id/executions", rt.actionItemHandler.ListExecutions)
	itemGroup.POST("/:id/start", rt.actionItemHandler.Start, rt.mutating...)
	itemGroup.POST("/:id/complete", rt.actionItemHandler.Complete, rt.mutating...)
	itemGroup.POST("/:id/cancel", rt.actionItemHandler.Cancel, rt.mutating...)
	itemGroup.POST("/:id/fail", rt.actionItemHandler.Fail, rt.mutating...)
}

// notImplemented returns 501 Not Implemented response
func (rt *Router) notImplemented(c echo.Context) error {
	return c.JSON(http.StatusNotImplemented, map[string]interface{}{
		"error":   "This endpoint is not yet implemented",
		"path":    c.Request().URL.Path,
		"method":  c.Request().Method,
		"message": "Please initialize the required handler in main.go",
	})
}

// healthCheck returns health status
func (rt *Router) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"environment": rt.cfg.Server.Environment,
	})
}
