package task

import "time"

// ActionItemResponse represents an action item in responses
type ActionItemResponse struct {
	ID                string     `json:"id"`
	TranscriptID      string     `json:"transcript_id"`
	Assignee          string     `json:"assignee"`
	Description       string     `json:"description"`
	TaskType          string     `json:"task_type"`
	UrgencyLevel      string     `json:"urgency_level"`
	Status            string     `json:"status"`
	Entities          []string   `json:"entities,omitempty"`
	ConfidenceScore   float64    `json:"confidence_score"`
	EstimatedDeadline *time.Time `json:"estimated_deadline,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
	CompletedAt       *time.Time `json:"completed_at,omitempty"`
}

// ActionItemListResponse represents a list of action items
type ActionItemListResponse struct {
	Items []*ActionItemResponse `json:"items"`
	Total int                   `json:"total"`
}

// ExecutionLogResponse represents an automation handoff audit row
type ExecutionLogResponse struct {
	ID            string    `json:"id"`
	ActionItemID  string    `json:"action_item_id"`
	ExecutionType string    `json:"execution_type"`
	Status        string    `json:"status"`
	ErrorMessage  *string   `json:"error_message,omitempty"`
	ExecutedAt    time.Time `json:"executed_at"`
}

// ExecutionLogListResponse represents a list of execution log rows
type ExecutionLogListResponse struct {
	Logs  []*ExecutionLogResponse `json:"logs"`
	Total int                     `json:"total"`
}
