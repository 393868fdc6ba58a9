package entities

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Transcript is an ingested meeting transcript. It is immutable once stored;
// processing only flips the Processed flag. Action items reference it by ID
// but are owned by their own lifecycle.
type Transcript struct {
	ID             uuid.UUID                   `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Title          string                      `json:"title" gorm:"type:varchar(255);not null"`
	Date           time.Time                   `json:"date" gorm:"type:timestamp;not null"`
	Participants   datatypes.JSONSlice[string] `json:"participants" gorm:"type:jsonb"`
	Content        string                      `json:"content" gorm:"type:text;not null"`
	Source         string                      `json:"source" gorm:"type:varchar(100);not null"`
	SourceFilePath string                      `json:"source_file_path,omitempty" gorm:"type:varchar(500)"`
	Metadata       datatypes.JSONMap           `json:"metadata,omitempty" gorm:"type:jsonb"`
	Processed      bool                        `json:"processed" gorm:"default:false"`
	CreatedAt      time.Time                   `json:"created_at" gorm:"autoCreateTime"`
}

// TableName specifies the table name for GORM
func (Transcript) TableName() string {
	return "meeting_transcripts"
}

// NewTranscript creates a transcript ready for ingestion.
func NewTranscript(title string, date time.Time, participants []string, content, source string) *Transcript {
	return &Transcript{
		ID:           uuid.New(),
		Title:        title,
		Date:         date,
		Participants: participants,
		Content:      content,
		Source:       source,
		CreatedAt:    time.Now(),
	}
}

// IsEmpty reports whether the transcript has no processable content.
func (t *Transcript) IsEmpty() bool {
	return strings.TrimSpace(t.Content) == ""
}

// ReferenceDate is the date deadlines are resolved against. Transcripts
// ingested without an explicit date fall back to their creation time.
func (t *Transcript) ReferenceDate() time.Time {
	if t.Date.IsZero() {
		return t.CreatedAt
	}
	return t.Date
}
