package repositories

import (
	"context"

	"github.com/google/uuid"
)

// AutomationGateway hands auto-executable action items to the external
// task-execution collaborator. Enqueue is fire-and-forget: the engine never
// waits for an execution result, and downstream delivery is assumed
// at-least-once.
type AutomationGateway interface {
	EnqueueAutomation(ctx context.Context, actionItemID uuid.UUID) error
}
