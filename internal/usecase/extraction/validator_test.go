package extraction

import (
	"math"
	"testing"

	"go.uber.org/zap"

	"github.com/task-assistant-team/task-assistant/internal/domain/entities"
)

func TestValidate_DropsEntriesMissingRequiredFields(t *testing.T) {
	v := NewValidator(zap.NewNop())
	entries := []RawEntry{
		{"assignee": "John Smith", "description": "Send the proposal", "task_type": "email_follow_up", "urgency_level": "high", "confidence_score": 0.9},
		{"assignee": "Sarah Johnson", "task_type": "research", "urgency_level": "low", "confidence_score": 0.8},
		{"assignee": "Mike Chen", "description": "Schedule the kickoff", "task_type": "meeting_scheduling", "urgency_level": "medium", "confidence_score": 0.7},
	}

	valid, dropped := v.Validate(entries)
	if len(valid) != 2 {
		t.Fatalf("expected 2 valid entries got %d", len(valid))
	}
	if dropped != 1 {
		t.Fatalf("expected 1 dropped entry got %d", dropped)
	}
	if valid[0].Assignee != "John Smith" || valid[1].Assignee != "Mike Chen" {
		t.Fatalf("unexpected survivors: %q, %q", valid[0].Assignee, valid[1].Assignee)
	}
}

func TestValidate_UnknownVocabularyFallsBackWithPenalty(t *testing.T) {
	v := NewValidator(zap.NewNop())
	valid, dropped := v.Validate([]RawEntry{
		{"assignee": "John", "description": "Do the thing", "task_type": "juggling", "urgency_level": "catastrophic", "confidence_score": 1.0},
	})
	if dropped != 0 || len(valid) != 1 {
		t.Fatalf("expected entry to survive, got %d valid %d dropped", len(valid), dropped)
	}
	entry := valid[0]
	if entry.TaskType != entities.TaskTypeOther {
		t.Fatalf("expected task type fallback to other, got %s", entry.TaskType)
	}
	if entry.UrgencyLevel != entities.UrgencyMedium {
		t.Fatalf("expected urgency fallback to medium, got %s", entry.UrgencyLevel)
	}
	want := 1.0 * VocabularyPenalty * VocabularyPenalty
	if math.Abs(entry.Confidence-want) > 1e-9 {
		t.Fatalf("expected stacked penalty %f got %f", want, entry.Confidence)
	}
}

func TestValidate_SingleFallbackSinglePenalty(t *testing.T) {
	v := NewValidator(zap.NewNop())
	valid, _ := v.Validate([]RawEntry{
		{"assignee": "John", "description": "Call the vendor", "task_type": "phone_call", "urgency_level": "someday", "confidence_score": 0.9},
	})
	if valid[0].TaskType != entities.TaskTypePhoneCall {
		t.Fatalf("known task type must not fall back, got %s", valid[0].TaskType)
	}
	want := 0.9 * VocabularyPenalty
	if math.Abs(valid[0].Confidence-want) > 1e-9 {
		t.Fatalf("expected confidence %f got %f", want, valid[0].Confidence)
	}
}

func TestValidate_AbsentConfidenceGetsMidRange(t *testing.T) {
	v := NewValidator(zap.NewNop())
	valid, _ := v.Validate([]RawEntry{
		{"assignee": "John", "description": "Write the summary", "task_type": "document_creation", "urgency_level": "medium"},
	})
	if valid[0].Confidence != DefaultConfidence {
		t.Fatalf("expected default confidence %f got %f", DefaultConfidence, valid[0].Confidence)
	}
}

func TestValidate_ClampsConfidence(t *testing.T) {
	v := NewValidator(zap.NewNop())
	valid, _ := v.Validate([]RawEntry{
		{"assignee": "A", "description": "over", "task_type": "other", "urgency_level": "low", "confidence_score": 1.7},
		{"assignee": "B", "description": "under", "task_type": "other", "urgency_level": "low", "confidence_score": -0.3},
	})
	if valid[0].Confidence != 1.0 {
		t.Fatalf("expected clamp to 1.0 got %f", valid[0].Confidence)
	}
	if valid[1].Confidence != 0.0 {
		t.Fatalf("expected clamp to 0.0 got %f", valid[1].Confidence)
	}
}

func TestValidate_AcceptsFieldAliases(t *testing.T) {
	v := NewValidator(zap.NewNop())
	valid, dropped := v.Validate([]RawEntry{
		{"assigned_to": "Sarah", "task_description": "Review the contract", "type": "research", "urgency": "high", "confidence": 0.8},
	})
	if dropped != 0 {
		t.Fatalf("aliased entry must survive, dropped %d", dropped)
	}
	entry := valid[0]
	if entry.Assignee != "Sarah" || entry.Description != "Review the contract" {
		t.Fatalf("aliases not honored: %+v", entry)
	}
	if entry.TaskType != entities.TaskTypeResearch || entry.UrgencyLevel != entities.UrgencyHigh {
		t.Fatalf("aliased vocab not honored: %s %s", entry.TaskType, entry.UrgencyLevel)
	}
	if math.Abs(entry.Confidence-0.8) > 1e-9 {
		t.Fatalf("aliased confidence not honored: %f", entry.Confidence)
	}
}

func TestValidate_WhitespaceOnlyFieldsAreMissing(t *testing.T) {
	v := NewValidator(zap.NewNop())
	_, dropped := v.Validate([]RawEntry{
		{"assignee": "   ", "description": "Do it", "task_type": "other", "urgency_level": "low"},
	})
	if dropped != 1 {
		t.Fatalf("whitespace-only assignee must be dropped, got %d", dropped)
	}
}

func TestValidate_EntityShapes(t *testing.T) {
	v := NewValidator(zap.NewNop())
	valid, _ := v.Validate([]RawEntry{
		{
			"assignee": "John", "description": "Send NDA", "task_type": "email_follow_up", "urgency_level": "medium",
			"entities": []interface{}{"Acme Corp", "NDA", "Acme Corp"},
		},
		{
			"assignee": "Sarah", "description": "Send contract", "task_type": "email_follow_up", "urgency_level": "medium",
			"entities": map[string]interface{}{"company": "Acme Corp", "document_type": "contract"},
		},
	})

	first := valid[0].Entities
	if len(first) != 2 || first[0] != "Acme Corp" || first[1] != "NDA" {
		t.Fatalf("array entities mishandled: %v", first)
	}
	second := valid[1].Entities
	if len(second) != 2 || second[0] != "Acme Corp" || second[1] != "contract" {
		t.Fatalf("object entities mishandled: %v", second)
	}
}

func TestValidate_EstimatedDays(t *testing.T) {
	v := NewValidator(zap.NewNop())
	valid, _ := v.Validate([]RawEntry{
		{"assignee": "John", "description": "Plan offsite", "task_type": "other", "urgency_level": "low", "estimated_days_to_complete": float64(2)},
		{"assignee": "Sarah", "description": "No estimate", "task_type": "other", "urgency_level": "low"},
	})
	if valid[0].EstimatedDays == nil || *valid[0].EstimatedDays != 2 {
		t.Fatalf("estimated days mishandled: %v", valid[0].EstimatedDays)
	}
	if valid[1].EstimatedDays != nil {
		t.Fatalf("absent estimate must stay nil")
	}
}
