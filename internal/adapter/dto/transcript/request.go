package transcript

import (
	"time"
)

// IngestTranscriptRequest represents the request to ingest a transcript.
// Content may be empty; an empty transcript is accepted and simply yields
// zero action items.
type IngestTranscriptRequest struct {
	Title        string                 `json:"title" validate:"required,min=1,max=255"`
	MeetingDate  *time.Time             `json:"meeting_date,omitempty"`
	Participants []string               `json:"participants,omitempty"`
	Content      string                 `json:"content"`
	Source       string                 `json:"source,omitempty" validate:"omitempty,oneof=api webhook import"`
	Metadata     map[string]interface{} `json:"metadata,omitempty"`
}

// ListUnprocessedRequest represents query parameters for listing unprocessed transcripts
type ListUnprocessedRequest struct {
	Limit int `query:"limit" validate:"omitempty,min=1,max=100"`
}
