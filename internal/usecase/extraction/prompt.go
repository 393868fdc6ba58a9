package extraction

import (
	"fmt"
	"strings"

	"github.com/task-assistant-team/task-assistant/internal/domain/entities"
)

// promptTaskTypes and promptUrgencyLevels enumerate the recognized
// vocabularies in the order they are presented to the model.
var promptTaskTypes = []entities.TaskType{
	entities.TaskTypeEmailFollowUp,
	entities.TaskTypeDocumentCreation,
	entities.TaskTypeMeetingScheduling,
	entities.TaskTypeResearch,
	entities.TaskTypePhoneCall,
	entities.TaskTypeReminder,
	entities.TaskTypeOther,
}

var promptUrgencyLevels = []entities.UrgencyLevel{
	entities.UrgencyLow,
	entities.UrgencyMedium,
	entities.UrgencyHigh,
	entities.UrgencyUrgent,
}

// buildSystemPrompt constrains the model to the recognized vocabularies and
// a fixed JSON output shape.
func buildSystemPrompt() string {
	taskTypes := make([]string, len(promptTaskTypes))
	for i, t := range promptTaskTypes {
		taskTypes[i] = string(t)
	}
	urgencies := make([]string, len(promptUrgencyLevels))
	for i, u := range promptUrgencyLevels {
		urgencies[i] = string(u)
	}

	return fmt.Sprintf(`You are an expert meeting assistant. Analyze the transcript and extract action items.

For each action item, identify:
1. **Assignee**: who is responsible (watch for "I will", "I'll", speaker names)
2. **Description**: a clear, specific description of the task
3. **Urgency Level**: one of %s
4. **Task Type**: one of %s
5. **Entities**: people, companies, and documents mentioned

Return ONLY a JSON array with a confidence score (0.0-1.0) per item.

Example output:
[
  {
    "assignee": "John",
    "description": "Send NDA template to Acme Corp",
    "task_type": "document_creation",
    "urgency_level": "medium",
    "entities": ["Acme Corp", "NDA", "Sarah Johnson"],
    "estimated_days_to_complete": 2,
    "confidence_score": 0.9
  }
]`, strings.Join(urgencies, ", "), strings.Join(taskTypes, ", "))
}

// buildUserPrompt injects the transcript text and its contextual metadata
// (meeting date, participant list) into the extraction request.
func buildUserPrompt(t *entities.Transcript) string {
	var b strings.Builder
	b.WriteString("Meeting Transcript:\n")
	b.WriteString(t.Content)
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("Meeting Date: %s\n", t.ReferenceDate().Format("2006-01-02")))
	if len(t.Participants) > 0 {
		b.WriteString(fmt.Sprintf("Participants: %s\n", strings.Join(t.Participants, ", ")))
	}
	b.WriteString("\nExtract all action items from this transcript following the format specified.")
	return b.String()
}
