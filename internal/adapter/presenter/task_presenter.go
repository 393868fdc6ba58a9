package presenter

import (
	"github.com/task-assistant-team/task-assistant/internal/adapter/dto/task"
	"github.com/task-assistant-team/task-assistant/internal/domain/entities"
)

// ToActionItemResponse converts an ActionItem entity to ActionItemResponse DTO
func ToActionItemResponse(a *entities.ActionItem) *task.ActionItemResponse {
	if a == nil {
		return nil
	}

	return &task.ActionItemResponse{
		ID:                a.ID.String(),
		TranscriptID:      a.TranscriptID.String(),
		Assignee:          a.Assignee,
		Description:       a.Description,
		TaskType:          string(a.TaskType),
		UrgencyLevel:      string(a.UrgencyLevel),
		Status:            string(a.Status),
		Entities:          a.Entities,
		ConfidenceScore:   a.ConfidenceScore,
		EstimatedDeadline: a.EstimatedDeadline,
		CreatedAt:         a.CreatedAt,
		UpdatedAt:         a.UpdatedAt,
		CompletedAt:       a.CompletedAt,
	}
}

// ToActionItemListResponse converts a slice of ActionItem entities to ActionItemListResponse
func ToActionItemListResponse(items []*entities.ActionItem) *task.ActionItemListResponse {
	responses := make([]*task.ActionItemResponse, len(items))
	for i, a := range items {
		responses[i] = ToActionItemResponse(a)
	}

	return &task.ActionItemListResponse{
		Items: responses,
		Total: len(responses),
	}
}

// ToExecutionLogResponse converts an ExecutionLog entity to ExecutionLogResponse DTO
func ToExecutionLogResponse(e *entities.ExecutionLog) *task.ExecutionLogResponse {
	if e == nil {
		return nil
	}

	return &task.ExecutionLogResponse{
		ID:            e.ID.String(),
		ActionItemID:  e.ActionItemID.String(),
		ExecutionType: string(e.ExecutionType),
		Status:        string(e.Status),
		ErrorMessage:  e.ErrorMessage,
		ExecutedAt:    e.ExecutedAt,
	}
}

// ToExecutionLogListResponse converts a slice of ExecutionLog entities to ExecutionLogListResponse
func ToExecutionLogListResponse(logs []*entities.ExecutionLog) *task.ExecutionLogListResponse {
	responses := make([]*task.ExecutionLogResponse, len(logs))
	for i, e := range logs {
		responses[i] = ToExecutionLogResponse(e)
	}

	return &task.ExecutionLogListResponse{
		Logs:  responses,
		Total: len(responses),
	}
}
