package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ExecutionType identifies what kind of downstream execution was attempted.
type ExecutionType string

const (
	ExecutionTypeAutomation ExecutionType = "automation_enqueue" // handed to the automation queue
)

// ExecutionStatus is the recorded outcome of an execution attempt.
type ExecutionStatus string

const (
	ExecutionStatusQueued ExecutionStatus = "queued"
	ExecutionStatusFailed ExecutionStatus = "failed"
)

// ExecutionLog is the audit trail row written whenever an action item is
// handed to the task-execution collaborator. The engine fires and forgets;
// this row records that the handoff happened, not its eventual result.
type ExecutionLog struct {
	ID            uuid.UUID         `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	ActionItemID  uuid.UUID         `json:"action_item_id" gorm:"type:uuid;not null;index"`
	ExecutionType ExecutionType     `json:"execution_type" gorm:"type:varchar(100);not null"`
	Status        ExecutionStatus   `json:"status" gorm:"type:varchar(50);not null"`
	Result        datatypes.JSONMap `json:"result,omitempty" gorm:"type:jsonb"`
	ErrorMessage  *string           `json:"error_message,omitempty" gorm:"type:text"`
	ExecutedAt    time.Time         `json:"executed_at" gorm:"autoCreateTime"`
}

// TableName specifies the table name for GORM
func (ExecutionLog) TableName() string {
	return "task_execution_log"
}

// NewExecutionLog creates an audit row for an automation handoff.
func NewExecutionLog(actionItemID uuid.UUID, executionType ExecutionType, status ExecutionStatus) *ExecutionLog {
	return &ExecutionLog{
		ID:            uuid.New(),
		ActionItemID:  actionItemID,
		ExecutionType: executionType,
		Status:        status,
		ExecutedAt:    time.Now(),
	}
}

// MarkFailed records the enqueue error on the audit row.
func (e *ExecutionLog) MarkFailed(err error) {
	e.Status = ExecutionStatusFailed
	if err != nil {
		msg := err.Error()
		e.ErrorMessage = &msg
	}
}
