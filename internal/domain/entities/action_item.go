package entities

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// TaskType classifies the kind of work an action item represents.
type TaskType string

const (
	TaskTypeEmailFollowUp     TaskType = "email_follow_up"
	TaskTypeDocumentCreation  TaskType = "document_creation"
	TaskTypeMeetingScheduling TaskType = "meeting_scheduling"
	TaskTypeResearch          TaskType = "research"
	TaskTypePhoneCall         TaskType = "phone_call"
	TaskTypeReminder          TaskType = "reminder"
	TaskTypeOther             TaskType = "other" // fallback for unrecognized values
)

// taskTypes is the recognized vocabulary, used for parsing raw provider values.
var taskTypes = map[TaskType]struct{}{
	TaskTypeEmailFollowUp:     {},
	TaskTypeDocumentCreation:  {},
	TaskTypeMeetingScheduling: {},
	TaskTypeResearch:          {},
	TaskTypePhoneCall:         {},
	TaskTypeReminder:          {},
	TaskTypeOther:             {},
}

// ParseTaskType maps a raw provider value onto the recognized vocabulary.
// Unknown values fall back to TaskTypeOther; the second return reports whether
// the value was recognized, so callers can apply a confidence penalty.
func ParseTaskType(raw string) (TaskType, bool) {
	t := TaskType(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := taskTypes[t]; ok {
		return t, true
	}
	return TaskTypeOther, false
}

// UrgencyLevel is the coarse priority tag influencing deadline defaults.
type UrgencyLevel string

const (
	UrgencyLow    UrgencyLevel = "low"
	UrgencyMedium UrgencyLevel = "medium"
	UrgencyHigh   UrgencyLevel = "high"
	UrgencyUrgent UrgencyLevel = "urgent"
)

var urgencyLevels = map[UrgencyLevel]struct{}{
	UrgencyLow:    {},
	UrgencyMedium: {},
	UrgencyHigh:   {},
	UrgencyUrgent: {},
}

// ParseUrgencyLevel maps a raw provider value onto the recognized vocabulary.
// Unknown values fall back to UrgencyMedium; the second return reports whether
// the value was recognized.
func ParseUrgencyLevel(raw string) (UrgencyLevel, bool) {
	u := UrgencyLevel(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := urgencyLevels[u]; ok {
		return u, true
	}
	return UrgencyMedium, false
}

// IsPressing reports whether the urgency warrants the short reminder window.
func (u UrgencyLevel) IsPressing() bool {
	return u == UrgencyHigh || u == UrgencyUrgent
}

// TaskStatus represents the lifecycle state of an action item.
type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"     // Extracted, waiting to be picked up
	TaskStatusInProgress TaskStatus = "in_progress" // Being worked on (manually or via automation)
	TaskStatusCompleted  TaskStatus = "completed"   // Done
	TaskStatusCancelled  TaskStatus = "cancelled"   // Abandoned; cancellation is a status, not deletion
	TaskStatusFailed     TaskStatus = "failed"      // Could not be persisted or validated
)

// transitions encodes the lifecycle state machine. Terminal states have no
// outgoing edges; reopening a terminal item means creating a new one.
var transitions = map[TaskStatus][]TaskStatus{
	TaskStatusPending:    {TaskStatusInProgress, TaskStatusCancelled, TaskStatusFailed},
	TaskStatusInProgress: {TaskStatusCompleted, TaskStatusCancelled},
}

// ParseTaskStatus maps a raw value onto the lifecycle vocabulary. Unlike the
// task type and urgency parsers there is no fallback; an unknown status is an
// error on the caller's side.
func ParseTaskStatus(raw string) (TaskStatus, bool) {
	s := TaskStatus(strings.ToLower(strings.TrimSpace(raw)))
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted, TaskStatusCancelled, TaskStatusFailed:
		return s, true
	}
	return "", false
}

// IsTerminal reports whether no further transitions are allowed from s.
func (s TaskStatus) IsTerminal() bool {
	return s == TaskStatusCompleted || s == TaskStatusCancelled || s == TaskStatusFailed
}

// CanTransitionTo reports whether the state machine allows moving from s to next.
func (s TaskStatus) CanTransitionTo(next TaskStatus) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// ActionItem is a discrete task extracted from a transcript, with an owner,
// description, and lifecycle status.
type ActionItem struct {
	ID                uuid.UUID                   `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	TranscriptID      uuid.UUID                   `json:"transcript_id" gorm:"type:uuid;not null;index"`
	Assignee          string                      `json:"assignee" gorm:"type:varchar(255);not null;index"`
	Description       string                      `json:"description" gorm:"type:text;not null"`
	TaskType          TaskType                    `json:"task_type" gorm:"type:varchar(100);not null"`
	UrgencyLevel      UrgencyLevel                `json:"urgency_level" gorm:"type:varchar(20);not null"`
	EstimatedDeadline *time.Time                  `json:"estimated_deadline,omitempty" gorm:"type:date"`
	Status            TaskStatus                  `json:"status" gorm:"type:varchar(50);not null;index;default:'pending'"`
	Entities          datatypes.JSONSlice[string] `json:"entities,omitempty" gorm:"type:jsonb"`
	ConfidenceScore   float64                     `json:"confidence_score" gorm:"type:float;not null;default:0"`
	DedupKey          string                      `json:"dedup_key" gorm:"type:varchar(768);not null;index"`
	CreatedAt         time.Time                   `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt         time.Time                   `json:"updated_at" gorm:"autoUpdateTime"`
	CompletedAt       *time.Time                  `json:"completed_at,omitempty" gorm:"type:timestamp"`
}

// TableName specifies the table name for GORM
func (ActionItem) TableName() string {
	return "action_items"
}

// NewActionItem creates a pending action item with vocabulary defaults and a
// derived dedup key. Confidence, deadline, and entities are filled in by the
// extraction pipeline.
func NewActionItem(transcriptID uuid.UUID, assignee, description string) *ActionItem {
	now := time.Now()
	return &ActionItem{
		ID:           uuid.New(),
		TranscriptID: transcriptID,
		Assignee:     assignee,
		Description:  description,
		TaskType:     TaskTypeOther,
		UrgencyLevel: UrgencyMedium,
		Status:       TaskStatusPending,
		DedupKey:     ComputeDedupKey(assignee, description),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// TransitionTo moves the item to the next status if the state machine allows
// it, returning ErrInvalidTransition otherwise.
func (a *ActionItem) TransitionTo(next TaskStatus) error {
	if !a.Status.CanTransitionTo(next) {
		return ErrInvalidTransition
	}
	a.Status = next
	a.UpdatedAt = time.Now()
	if next == TaskStatusCompleted {
		now := time.Now()
		a.CompletedAt = &now
	}
	return nil
}

// IsTerminal reports whether the item's status admits no further transitions.
func (a *ActionItem) IsTerminal() bool {
	return a.Status.IsTerminal()
}

// ComputeDedupKey derives the duplicate-detection key from the assignee and
// description: both are lower-cased with whitespace runs collapsed, then
// joined. Items sharing this key describe the same piece of work.
func ComputeDedupKey(assignee, description string) string {
	return NormalizeForKey(assignee) + "|" + NormalizeForKey(description)
}

// NormalizeForKey lower-cases s and collapses whitespace runs to single spaces.
func NormalizeForKey(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// ClampConfidence forces a confidence score into the valid [0, 1] range.
func ClampConfidence(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}
