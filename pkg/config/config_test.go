package config

import (
	"os"
	"testing"
	"time"
)

// validConfig returns a configuration that passes Validate.
func validConfig() *Config {
	return &Config{
		AI: AIConfig{
			Model:        "gpt-4",
			OpenAIAPIKey: "sk-test",
		},
		Extraction: ExtractionConfig{
			MaxAttempts: 4,
		},
		Tasks: TasksConfig{
			AutoExecuteThreshold:     0.85,
			DedupSimilarityThreshold: 0.85,
			DefaultReminderDays:      3,
			UrgentReminderDays:       1,
			WorkerCount:              4,
		},
	}
}

func TestValidate_AcceptsDefaults(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
}

func TestValidate_ThresholdRange(t *testing.T) {
	for _, threshold := range []float64{-0.1, 1.5} {
		cfg := validConfig()
		cfg.Tasks.AutoExecuteThreshold = threshold
		if err := cfg.Validate(); err == nil {
			t.Errorf("threshold %v: expected validation error", threshold)
		}
	}
}

func TestValidate_DedupThresholdRange(t *testing.T) {
	for _, threshold := range []float64{0, -0.5, 1.1} {
		cfg := validConfig()
		cfg.Tasks.DedupSimilarityThreshold = threshold
		if err := cfg.Validate(); err == nil {
			t.Errorf("threshold %v: expected validation error", threshold)
		}
	}
}

func TestValidate_ReminderDaysMustNotBeNegative(t *testing.T) {
	cfg := validConfig()
	cfg.Tasks.UrgentReminderDays = -1
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error for negative reminder days")
	}
}

func TestValidate_WorkerFloor(t *testing.T) {
	cfg := validConfig()
	cfg.Tasks.WorkerCount = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error for zero workers")
	}
}

func TestValidate_MaxAttemptsFloor(t *testing.T) {
	cfg := validConfig()
	cfg.Extraction.MaxAttempts = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error for zero attempts")
	}
}

func TestValidate_ProviderKeyMatchesModelPrefix(t *testing.T) {
	cfg := validConfig()
	cfg.AI.Model = "claude-sonnet-4"
	cfg.AI.AnthropicAPIKey = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for claude model without anthropic key")
	}

	cfg.AI.AnthropicAPIKey = "sk-ant-test"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected valid config with anthropic key, got %v", err)
	}

	cfg = validConfig()
	cfg.AI.OpenAIAPIKey = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for gpt model without openai key")
	}
}

func TestLoad_Defaults(t *testing.T) {
	// Clear every variable asserted below so struct-tag defaults apply.
	for _, key := range []string{
		"SERVER_PORT", "SERVER_ENV", "AI_MODEL", "AI_TEMPERATURE",
		"EXTRACTION_MAX_ATTEMPTS", "EXTRACTION_CALL_TIMEOUT",
		"AUTO_EXECUTE_THRESHOLD", "AUTOMATABLE_TASK_TYPES",
		"DEFAULT_REMINDER_DAYS", "URGENT_REMINDER_DAYS",
		"DEDUP_SIMILARITY_THRESHOLD", "WORKER_COUNT", "JWT_EXPIRY",
	} {
		os.Unsetenv(key)
	}
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Errorf("expected port 8080, got %q", cfg.Server.Port)
	}
	if cfg.AI.Model != "gpt-4" {
		t.Errorf("expected model gpt-4, got %q", cfg.AI.Model)
	}
	if cfg.AI.Temperature != 0.3 {
		t.Errorf("expected temperature 0.3, got %v", cfg.AI.Temperature)
	}
	if cfg.Extraction.MaxAttempts != 4 {
		t.Errorf("expected 4 attempts, got %d", cfg.Extraction.MaxAttempts)
	}
	if cfg.Extraction.CallTimeout != 30*time.Second {
		t.Errorf("expected 30s call timeout, got %v", cfg.Extraction.CallTimeout)
	}
	if cfg.Tasks.AutoExecuteThreshold != 0.85 {
		t.Errorf("expected threshold 0.85, got %v", cfg.Tasks.AutoExecuteThreshold)
	}
	if cfg.Tasks.DefaultReminderDays != 3 || cfg.Tasks.UrgentReminderDays != 1 {
		t.Errorf("expected reminder days 3/1, got %d/%d",
			cfg.Tasks.DefaultReminderDays, cfg.Tasks.UrgentReminderDays)
	}
	if cfg.Tasks.WorkerCount != 4 {
		t.Errorf("expected 4 workers, got %d", cfg.Tasks.WorkerCount)
	}
	if cfg.JWT.Expiry != 24*time.Hour {
		t.Errorf("expected 24h jwt expiry, got %v", cfg.JWT.Expiry)
	}

	want := []string{"email_follow_up", "meeting_scheduling", "reminder"}
	if len(cfg.Tasks.AutomatableTaskTypes) != len(want) {
		t.Fatalf("expected %d automatable types, got %v", len(want), cfg.Tasks.AutomatableTaskTypes)
	}
	for i, taskType := range want {
		if cfg.Tasks.AutomatableTaskTypes[i] != taskType {
			t.Errorf("automatable[%d]: expected %q, got %q", i, taskType, cfg.Tasks.AutomatableTaskTypes[i])
		}
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("WORKER_COUNT", "8")
	t.Setenv("AUTO_EXECUTE_THRESHOLD", "0.9")
	t.Setenv("AUTOMATABLE_TASK_TYPES", "reminder")
	t.Setenv("EXTRACTION_RATE_LIMIT", "0")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Tasks.WorkerCount != 8 {
		t.Errorf("expected 8 workers, got %d", cfg.Tasks.WorkerCount)
	}
	if cfg.Tasks.AutoExecuteThreshold != 0.9 {
		t.Errorf("expected threshold 0.9, got %v", cfg.Tasks.AutoExecuteThreshold)
	}
	if len(cfg.Tasks.AutomatableTaskTypes) != 1 || cfg.Tasks.AutomatableTaskTypes[0] != "reminder" {
		t.Errorf("expected automatable set [reminder], got %v", cfg.Tasks.AutomatableTaskTypes)
	}
	if cfg.Extraction.RateLimit != 0 {
		t.Errorf("expected rate limit disabled, got %v", cfg.Extraction.RateLimit)
	}
}

func TestLoad_RejectsInvalidThreshold(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("AUTO_EXECUTE_THRESHOLD", "1.5")

	if _, err := Load(); err == nil {
		t.Fatal("expected load to fail on out-of-range threshold")
	}
}
