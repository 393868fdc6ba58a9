package extraction

import (
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/task-assistant-team/task-assistant/internal/domain/entities"
)

const (
	// DefaultConfidence is assigned when the provider omits a confidence
	// score.
	DefaultConfidence = 0.5

	// VocabularyPenalty is the multiplicative confidence penalty applied for
	// each field that fell back to a default variant (unknown task type,
	// unknown urgency). Fallbacks mean the extraction was less certain than
	// the raw score claims.
	VocabularyPenalty = 0.8
)

// ValidatedEntry is a raw entry that passed schema checks, with vocabulary
// fallbacks applied and confidence normalized into [0, 1].
type ValidatedEntry struct {
	Assignee      string
	Description   string
	Context       string
	TaskType      entities.TaskType
	UrgencyLevel  entities.UrgencyLevel
	Entities      []string
	Confidence    float64
	EstimatedDays *int
}

// Validator turns raw provider entries into validated entries, discarding
// bad ones individually. One malformed entry never fails the batch.
type Validator struct {
	logger *zap.Logger
}

// NewValidator creates a response validator.
func NewValidator(logger *zap.Logger) *Validator {
	return &Validator{logger: logger}
}

// Validate checks and repairs every raw entry. It returns the entries that
// survived plus a count of entries dropped, for observability.
func (v *Validator) Validate(entries []RawEntry) ([]ValidatedEntry, int) {
	valid := make([]ValidatedEntry, 0, len(entries))
	dropped := 0
	for i, raw := range entries {
		entry, err := v.validateEntry(i, raw)
		if err != nil {
			dropped++
			v.logger.Warn("⏭️ dropping extraction entry", zap.Int("index", i), zap.Error(err))
			continue
		}
		valid = append(valid, entry)
	}
	return valid, dropped
}

func (v *Validator) validateEntry(index int, raw RawEntry) (ValidatedEntry, error) {
	assignee := stringField(raw, "assignee", "assigned_to")
	if assignee == "" {
		return ValidatedEntry{}, &ValidationError{Index: index, Field: "assignee"}
	}
	description := stringField(raw, "description", "task_description")
	if description == "" {
		return ValidatedEntry{}, &ValidationError{Index: index, Field: "description"}
	}

	entry := ValidatedEntry{
		Assignee:    assignee,
		Description: description,
		Context:     stringField(raw, "context"),
		Entities:    entityList(raw["entities"]),
	}

	confidence := DefaultConfidence
	if score, ok := numberField(raw, "confidence_score", "confidence"); ok {
		confidence = entities.ClampConfidence(score)
	}

	var taskKnown, urgencyKnown bool
	entry.TaskType, taskKnown = entities.ParseTaskType(stringField(raw, "task_type", "type"))
	entry.UrgencyLevel, urgencyKnown = entities.ParseUrgencyLevel(stringField(raw, "urgency_level", "urgency"))
	if !taskKnown {
		confidence *= VocabularyPenalty
	}
	if !urgencyKnown {
		confidence *= VocabularyPenalty
	}
	entry.Confidence = entities.ClampConfidence(confidence)

	if days, ok := numberField(raw, "estimated_days_to_complete"); ok && days >= 0 {
		d := int(days)
		entry.EstimatedDays = &d
	}

	return entry, nil
}

// stringField returns the first non-empty string value among the given keys.
// Providers are not consistent about field naming, so common aliases are
// accepted.
func stringField(raw RawEntry, keys ...string) string {
	for _, key := range keys {
		if value, ok := raw[key].(string); ok {
			if trimmed := strings.TrimSpace(value); trimmed != "" {
				return trimmed
			}
		}
	}
	return ""
}

// numberField returns the first numeric value among the given keys.
func numberField(raw RawEntry, keys ...string) (float64, bool) {
	for _, key := range keys {
		switch value := raw[key].(type) {
		case float64:
			return value, true
		case int:
			return float64(value), true
		}
	}
	return 0, false
}

// entityList flattens the provider's entities field into a string set.
// Providers return either an array of strings or an object whose values are
// the entity names; both shapes are accepted. Duplicates are removed, array
// order is preserved, object values are sorted for determinism.
func entityList(value interface{}) []string {
	var out []string
	seen := make(map[string]struct{})
	add := func(s string) {
		s = strings.TrimSpace(s)
		if s == "" {
			return
		}
		if _, dup := seen[s]; dup {
			return
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}

	switch typed := value.(type) {
	case []interface{}:
		for _, item := range typed {
			if s, ok := item.(string); ok {
				add(s)
			}
		}
	case map[string]interface{}:
		values := make([]string, 0, len(typed))
		for _, item := range typed {
			if s, ok := item.(string); ok {
				values = append(values, s)
			}
		}
		sort.Strings(values)
		for _, s := range values {
			add(s)
		}
	}
	return out
}
