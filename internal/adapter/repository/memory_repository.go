package repository

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/task-assistant-team/task-assistant/internal/domain/entities"
	"github.com/task-assistant-team/task-assistant/internal/domain/repositories"
)

// In-memory repositories back the engine when no database is configured.
// They hold copies, never caller pointers, so stored state cannot be mutated
// from outside. Ordering matches the SQL implementations.

// memoryTranscriptRepository implements TranscriptRepository in process memory
type memoryTranscriptRepository struct {
	mu    sync.RWMutex
	byID  map[uuid.UUID]*entities.Transcript
	order []uuid.UUID
}

// NewMemoryTranscriptRepository creates an in-memory transcript repository
func NewMemoryTranscriptRepository() repositories.TranscriptRepository {
	return &memoryTranscriptRepository{byID: make(map[uuid.UUID]*entities.Transcript)}
}

func (r *memoryTranscriptRepository) Insert(ctx context.Context, t *entities.Transcript) error {
	if t == nil {
		return fmt.Errorf("transcript cannot be nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	if _, exists := r.byID[t.ID]; exists {
		return fmt.Errorf("transcript %s already exists", t.ID)
	}
	r.byID[t.ID] = cloneTranscript(t)
	r.order = append(r.order, t.ID)
	return nil
}

func (r *memoryTranscriptRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Transcript, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	return cloneTranscript(t), nil
}

func (r *memoryTranscriptRepository) MarkProcessed(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.byID[id]
	if !ok {
		return entities.ErrTranscriptNotFound
	}
	t.Processed = true
	return nil
}

func (r *memoryTranscriptRepository) ListUnprocessed(ctx context.Context, limit int) ([]*entities.Transcript, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*entities.Transcript
	for _, id := range r.order {
		t := r.byID[id]
		if t.Processed {
			continue
		}
		out = append(out, cloneTranscript(t))
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

// memoryActionItemRepository implements ActionItemRepository in process memory
type memoryActionItemRepository struct {
	mu    sync.RWMutex
	byID  map[uuid.UUID]*entities.ActionItem
	order []uuid.UUID
}

// NewMemoryActionItemRepository creates an in-memory action item repository
func NewMemoryActionItemRepository() repositories.ActionItemRepository {
	return &memoryActionItemRepository{byID: make(map[uuid.UUID]*entities.ActionItem)}
}

func (r *memoryActionItemRepository) InsertBatch(ctx context.Context, items []*entities.ActionItem) error {
	if len(items) == 0 {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	// Validate the whole batch before touching state so a bad item cannot
	// leave a partial write behind.
	for _, item := range items {
		if item == nil {
			return fmt.Errorf("action item cannot be nil")
		}
		if item.ID == uuid.Nil {
			item.ID = uuid.New()
		}
		if _, exists := r.byID[item.ID]; exists {
			return fmt.Errorf("action item %s already exists", item.ID)
		}
	}
	for _, item := range items {
		r.byID[item.ID] = cloneActionItem(item)
		r.order = append(r.order, item.ID)
	}
	return nil
}

func (r *memoryActionItemRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.ActionItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	item, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	return cloneActionItem(item), nil
}

func (r *memoryActionItemRepository) ListByTranscript(ctx context.Context, transcriptID uuid.UUID) ([]*entities.ActionItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*entities.ActionItem
	for _, id := range r.order {
		item := r.byID[id]
		if item.TranscriptID == transcriptID {
			out = append(out, cloneActionItem(item))
		}
	}
	return out, nil
}

func (r *memoryActionItemRepository) ListPending(ctx context.Context, assignee string) ([]*entities.ActionItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*entities.ActionItem
	for _, id := range r.order {
		item := r.byID[id]
		if item.Status != entities.TaskStatusPending {
			continue
		}
		if assignee != "" && !strings.EqualFold(item.Assignee, assignee) {
			continue
		}
		out = append(out, cloneActionItem(item))
	}
	// Soonest deadline first, items without a deadline last.
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].EstimatedDeadline, out[j].EstimatedDeadline
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.Before(*b)
		}
	})
	return out, nil
}

func (r *memoryActionItemRepository) ListByStatus(ctx context.Context, status entities.TaskStatus) ([]*entities.ActionItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*entities.ActionItem
	for _, id := range r.order {
		item := r.byID[id]
		if item.Status == status {
			out = append(out, cloneActionItem(item))
		}
	}
	return out, nil
}

func (r *memoryActionItemRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to entities.TaskStatus) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.byID[id]
	if !ok || item.Status != from {
		return false, nil
	}
	now := time.Now()
	item.Status = to
	item.UpdatedAt = now
	if to == entities.TaskStatusCompleted {
		item.CompletedAt = &now
	}
	return true, nil
}

// memoryExecutionLogRepository implements ExecutionLogRepository in process memory
type memoryExecutionLogRepository struct {
	mu   sync.RWMutex
	logs []*entities.ExecutionLog
}

// NewMemoryExecutionLogRepository creates an in-memory execution log repository
func NewMemoryExecutionLogRepository() repositories.ExecutionLogRepository {
	return &memoryExecutionLogRepository{}
}

func (r *memoryExecutionLogRepository) Insert(ctx context.Context, log *entities.ExecutionLog) error {
	if log == nil {
		return fmt.Errorf("execution log cannot be nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if log.ID == uuid.Nil {
		log.ID = uuid.New()
	}
	clone := *log
	r.logs = append(r.logs, &clone)
	return nil
}

func (r *memoryExecutionLogRepository) ListByActionItem(ctx context.Context, actionItemID uuid.UUID) ([]*entities.ExecutionLog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*entities.ExecutionLog
	for _, log := range r.logs {
		if log.ActionItemID == actionItemID {
			clone := *log
			out = append(out, &clone)
		}
	}
	return out, nil
}

func cloneTranscript(t *entities.Transcript) *entities.Transcript {
	clone := *t
	if t.Participants != nil {
		clone.Participants = append(datatypes.JSONSlice[string]{}, t.Participants...)
	}
	if t.Metadata != nil {
		clone.Metadata = make(datatypes.JSONMap, len(t.Metadata))
		for k, v := range t.Metadata {
			clone.Metadata[k] = v
		}
	}
	return &clone
}

func cloneActionItem(item *entities.ActionItem) *entities.ActionItem {
	clone := *item
	if item.Entities != nil {
		clone.Entities = append(datatypes.JSONSlice[string]{}, item.Entities...)
	}
	if item.EstimatedDeadline != nil {
		d := *item.EstimatedDeadline
		clone.EstimatedDeadline = &d
	}
	if item.CompletedAt != nil {
		c := *item.CompletedAt
		clone.CompletedAt = &c
	}
	return &clone
}
