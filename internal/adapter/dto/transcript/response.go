package transcript

import (
	"time"

	"github.com/task-assistant-team/task-assistant/internal/adapter/dto/task"
)

// TranscriptResponse represents a transcript in responses
type TranscriptResponse struct {
	ID             string                 `json:"id"`
	Title          string                 `json:"title"`
	MeetingDate    time.Time              `json:"meeting_date"`
	Participants   []string               `json:"participants"`
	Content        string                 `json:"content,omitempty"`
	Source         string                 `json:"source"`
	SourceFilePath string                 `json:"source_file_path,omitempty"`
	Metadata       map[string]interface{} `json:"metadata,omitempty"`
	Processed      bool                   `json:"processed"`
	CreatedAt      time.Time              `json:"created_at"`
}

// IngestTranscriptResponse represents the response after ingesting a transcript
type IngestTranscriptResponse struct {
	Transcript *TranscriptResponse `json:"transcript"`
	Queued     bool                `json:"queued"`
}

// ProcessResultResponse represents the outcome of processing one transcript
type ProcessResultResponse struct {
	TranscriptID   string                     `json:"transcript_id"`
	Items          []*task.ActionItemResponse `json:"items"`
	SkippedEntries int                        `json:"skipped_entries"`
	Duplicates     int                        `json:"duplicates"`
	AutoStarted    int                        `json:"auto_started"`
}

// TranscriptListResponse represents a list of transcripts
type TranscriptListResponse struct {
	Transcripts []*TranscriptResponse `json:"transcripts"`
	Total       int                   `json:"total"`
}
