package extraction

import (
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
	"go.uber.org/zap"

	"github.com/task-assistant-team/task-assistant/internal/domain/entities"
)

// Engine suppresses duplicate action items, both within a single extraction
// batch and against items already persisted for the transcript.
type Engine struct {
	similarityThreshold float64
	logger              *zap.Logger
}

// NewEngine creates a deduplication engine. Threshold is the normalized
// similarity in [0, 1] above which two dedup keys are considered the same
// item; 1.0 restricts matching to exact keys.
func NewEngine(similarityThreshold float64, logger *zap.Logger) *Engine {
	return &Engine{similarityThreshold: similarityThreshold, logger: logger}
}

// CollapseBatch merges duplicates within one extraction batch. When two items
// share a dedup key the higher confidence survives; on a tie the earlier one
// stays. Relative order of surviving items is preserved.
func (e *Engine) CollapseBatch(items []*entities.ActionItem) []*entities.ActionItem {
	result := make([]*entities.ActionItem, 0, len(items))
	byKey := make(map[string]int, len(items))
	for _, item := range items {
		idx, exists := byKey[item.DedupKey]
		if !exists {
			byKey[item.DedupKey] = len(result)
			result = append(result, item)
			continue
		}
		if item.ConfidenceScore > result[idx].ConfidenceScore {
			result[idx] = item
		}
	}
	return result
}

// FilterAgainstExisting drops new items that duplicate an item already stored
// for the transcript. Only non-terminal existing items suppress: a completed
// or cancelled task coming up again in a later meeting is a new obligation,
// not a duplicate.
func (e *Engine) FilterAgainstExisting(newItems, existing []*entities.ActionItem) []*entities.ActionItem {
	live := make([]*entities.ActionItem, 0, len(existing))
	for _, item := range existing {
		if !item.Status.IsTerminal() {
			live = append(live, item)
		}
	}

	kept := make([]*entities.ActionItem, 0, len(newItems))
	for _, item := range newItems {
		if match := e.findDuplicate(item, live); match != nil {
			e.logger.Info("⏭️ suppressing duplicate action item",
				zap.String("assignee", item.Assignee),
				zap.String("existing_id", match.ID.String()),
				zap.String("existing_status", string(match.Status)))
			continue
		}
		kept = append(kept, item)
	}
	return kept
}

func (e *Engine) findDuplicate(item *entities.ActionItem, live []*entities.ActionItem) *entities.ActionItem {
	for _, candidate := range live {
		if candidate.DedupKey == item.DedupKey {
			return candidate
		}
		if e.similar(item.DedupKey, candidate.DedupKey) {
			return candidate
		}
	}
	return nil
}

// similar reports whether two dedup keys are within the edit-distance
// threshold. Distance is normalized by the longer key so the threshold is
// length-independent.
func (e *Engine) similar(a, b string) bool {
	if a == b {
		return true
	}
	longest := utf8.RuneCountInString(a)
	if n := utf8.RuneCountInString(b); n > longest {
		longest = n
	}
	if longest == 0 {
		return true
	}
	distance := levenshtein.ComputeDistance(a, b)
	similarity := 1.0 - float64(distance)/float64(longest)
	return similarity >= e.similarityThreshold
}
