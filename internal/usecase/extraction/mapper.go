package extraction

import (
	"time"

	"github.com/task-assistant-team/task-assistant/internal/domain/entities"
	"github.com/task-assistant-team/task-assistant/pkg/config"
)

// Mapper converts validated entries into persistable action items, resolving
// deadlines against the transcript's reference date.
type Mapper struct {
	defaultReminderDays int
	urgentReminderDays  int
}

// NewMapper creates a mapper with the configured reminder fallbacks.
func NewMapper(cfg *config.TasksConfig) *Mapper {
	return &Mapper{
		defaultReminderDays: cfg.DefaultReminderDays,
		urgentReminderDays:  cfg.UrgentReminderDays,
	}
}

// Map builds action items for every validated entry. Each item gets an
// estimated deadline: a phrase resolved from the entry text when one exists,
// otherwise the entry's own day estimate, otherwise the urgency-based
// reminder fallback. The dedup key is derived from the normalized assignee
// and description so semantically identical items collide.
func (m *Mapper) Map(t *entities.Transcript, entries []ValidatedEntry) []*entities.ActionItem {
	ref := t.ReferenceDate()
	items := make([]*entities.ActionItem, 0, len(entries))
	for _, entry := range entries {
		item := entities.NewActionItem(t.ID, entry.Assignee, entry.Description)
		item.TaskType = entry.TaskType
		item.UrgencyLevel = entry.UrgencyLevel
		item.Entities = entry.Entities
		item.ConfidenceScore = entry.Confidence
		item.EstimatedDeadline = m.resolveDeadline(entry, ref)
		items = append(items, item)
	}
	return items
}

func (m *Mapper) resolveDeadline(entry ValidatedEntry, ref time.Time) *time.Time {
	text := entry.Description
	if entry.Context != "" {
		text += " " + entry.Context
	}
	if deadline := ResolveDeadline(text, ref); deadline != nil {
		return deadline
	}
	if entry.EstimatedDays != nil {
		deadline := ref.AddDate(0, 0, *entry.EstimatedDays)
		return &deadline
	}

	days := m.defaultReminderDays
	if entry.UrgencyLevel.IsPressing() {
		days = m.urgentReminderDays
	}
	deadline := ref.AddDate(0, 0, days)
	return &deadline
}
