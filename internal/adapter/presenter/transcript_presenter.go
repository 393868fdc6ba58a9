package presenter

import (
	"github.com/task-assistant-team/task-assistant/internal/adapter/dto/transcript"
	"github.com/task-assistant-team/task-assistant/internal/domain/entities"
	"github.com/task-assistant-team/task-assistant/internal/usecase/processor"
)

// ToTranscriptResponse converts a Transcript entity to TranscriptResponse DTO
func ToTranscriptResponse(t *entities.Transcript) *transcript.TranscriptResponse {
	if t == nil {
		return nil
	}

	return &transcript.TranscriptResponse{
		ID:             t.ID.String(),
		Title:          t.Title,
		MeetingDate:    t.Date,
		Participants:   t.Participants,
		Content:        t.Content,
		Source:         t.Source,
		SourceFilePath: t.SourceFilePath,
		Metadata:       t.Metadata,
		Processed:      t.Processed,
		CreatedAt:      t.CreatedAt,
	}
}

// ToTranscriptListResponse converts a slice of Transcript entities to TranscriptListResponse
func ToTranscriptListResponse(transcripts []*entities.Transcript) *transcript.TranscriptListResponse {
	responses := make([]*transcript.TranscriptResponse, len(transcripts))
	for i, t := range transcripts {
		responses[i] = ToTranscriptResponse(t)
	}

	return &transcript.TranscriptListResponse{
		Transcripts: responses,
		Total:       len(responses),
	}
}

// ToProcessResultResponse converts a processing Result to ProcessResultResponse
func ToProcessResultResponse(r *processor.Result) *transcript.ProcessResultResponse {
	if r == nil {
		return nil
	}

	return &transcript.ProcessResultResponse{
		TranscriptID:   r.TranscriptID.String(),
		Items:          ToActionItemListResponse(r.Items).Items,
		SkippedEntries: r.SkippedEntries,
		Duplicates:     r.Duplicates,
		AutoStarted:    r.AutoStarted,
	}
}
