package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds application configuration
type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	AI         AIConfig
	Extraction ExtractionConfig
	Tasks      TasksConfig
	Storage    StorageConfig
	JWT        JWTConfig
	Webhook    WebhookConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            string   `envconfig:"SERVER_PORT" default:"8080"`
	Host            string   `envconfig:"SERVER_HOST" default:"0.0.0.0"`
	Environment     string   `envconfig:"SERVER_ENV" default:"production"`
	AllowedOrigins  []string `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:3000"`
	ShutdownTimeout int      `envconfig:"SHUTDOWN_TIMEOUT" default:"10"`
}

// DatabaseConfig holds database configuration. An empty URL runs the service
// on in-memory stores, which is only meant for local development and tests.
type DatabaseConfig struct {
	URL             string        `envconfig:"DATABASE_URL" default:""`
	MaxOpenConns    int           `envconfig:"DB_MAX_OPEN_CONNS" default:"25"`
	MaxIdleConns    int           `envconfig:"DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"DB_CONN_MAX_LIFETIME" default:"30m"`
	MigrationsDir   string        `envconfig:"DB_MIGRATIONS_DIR" default:"migrations"`
}

// Enabled reports whether a real database is configured.
func (d DatabaseConfig) Enabled() bool {
	return d.URL != ""
}

// RedisConfig holds Redis configuration. An empty Addr disables Redis; locks
// fall back to in-process mutexes and automation enqueues are logged only.
type RedisConfig struct {
	Addr     string `envconfig:"REDIS_ADDR" default:""`
	Password string `envconfig:"REDIS_PASSWORD" default:""`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

// Enabled reports whether Redis is configured.
func (r RedisConfig) Enabled() bool {
	return r.Addr != ""
}

// AIConfig holds LLM provider configuration. The provider is selected from
// the model name prefix (gpt*/o* for OpenAI, claude* for Anthropic).
type AIConfig struct {
	Model            string  `envconfig:"AI_MODEL" default:"gpt-4"`
	Temperature      float64 `envconfig:"AI_TEMPERATURE" default:"0.3"`
	MaxTokens        int     `envconfig:"AI_MAX_TOKENS" default:"1000"`
	OpenAIAPIKey     string  `envconfig:"OPENAI_API_KEY" default:""`
	OpenAIBaseURL    string  `envconfig:"OPENAI_BASE_URL" default:"https://api.openai.com"`
	AnthropicAPIKey  string  `envconfig:"ANTHROPIC_API_KEY" default:""`
	AnthropicBaseURL string  `envconfig:"ANTHROPIC_BASE_URL" default:"https://api.anthropic.com"`
}

// ExtractionConfig tunes the extraction call boundary: retries, deadlines,
// and provider rate limiting.
type ExtractionConfig struct {
	MaxAttempts    int           `envconfig:"EXTRACTION_MAX_ATTEMPTS" default:"4"`
	CallTimeout    time.Duration `envconfig:"EXTRACTION_CALL_TIMEOUT" default:"30s"`
	InitialBackoff time.Duration `envconfig:"EXTRACTION_INITIAL_BACKOFF" default:"500ms"`
	MaxBackoff     time.Duration `envconfig:"EXTRACTION_MAX_BACKOFF" default:"10s"`
	RateLimit      float64       `envconfig:"EXTRACTION_RATE_LIMIT" default:"2"` // requests per second, 0 disables
}

// TasksConfig holds lifecycle and processing configuration.
type TasksConfig struct {
	AutoExecuteThreshold     float64       `envconfig:"AUTO_EXECUTE_THRESHOLD" default:"0.85"`
	AutomatableTaskTypes     []string      `envconfig:"AUTOMATABLE_TASK_TYPES" default:"email_follow_up,meeting_scheduling,reminder"`
	DefaultReminderDays      int           `envconfig:"DEFAULT_REMINDER_DAYS" default:"3"`
	UrgentReminderDays       int           `envconfig:"URGENT_REMINDER_DAYS" default:"1"`
	DedupSimilarityThreshold float64       `envconfig:"DEDUP_SIMILARITY_THRESHOLD" default:"0.85"`
	WorkerCount              int           `envconfig:"WORKER_COUNT" default:"4"`
	QueueCapacity            int           `envconfig:"QUEUE_CAPACITY" default:"64"`
	LockTTL                  time.Duration `envconfig:"LOCK_TTL" default:"60s"`
}

// StorageConfig holds archive storage configuration. An empty endpoint
// disables transcript archiving.
type StorageConfig struct {
	Endpoint        string `envconfig:"MINIO_ENDPOINT" default:""`
	AccessKeyID     string `envconfig:"MINIO_ACCESS_KEY" default:""`
	SecretAccessKey string `envconfig:"MINIO_SECRET_KEY" default:""`
	BucketName      string `envconfig:"MINIO_BUCKET" default:"task-assistant"`
	UseSSL          bool   `envconfig:"MINIO_USE_SSL" default:"false"`
}

// Enabled reports whether archive storage is configured.
func (s StorageConfig) Enabled() bool {
	return s.Endpoint != ""
}

// JWTConfig holds service-token configuration
type JWTConfig struct {
	Secret string        `envconfig:"JWT_SECRET" default:""`
	Expiry time.Duration `envconfig:"JWT_EXPIRY" default:"24h"`
}

// WebhookConfig holds webhook verification configuration
type WebhookConfig struct {
	Secret string `envconfig:"WEBHOOK_SECRET" default:""`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables or defaults")
	}

	var config Config
	if err := envconfig.Process("", &config); err != nil {
		return nil, fmt.Errorf("failed to process environment: %w", err)
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.AI.Model == "" {
		return fmt.Errorf("AI_MODEL is required")
	}
	if c.Tasks.AutoExecuteThreshold < 0 || c.Tasks.AutoExecuteThreshold > 1 {
		return fmt.Errorf("AUTO_EXECUTE_THRESHOLD must be within [0, 1], got %v", c.Tasks.AutoExecuteThreshold)
	}
	if c.Tasks.DedupSimilarityThreshold <= 0 || c.Tasks.DedupSimilarityThreshold > 1 {
		return fmt.Errorf("DEDUP_SIMILARITY_THRESHOLD must be within (0, 1], got %v", c.Tasks.DedupSimilarityThreshold)
	}
	if c.Tasks.DefaultReminderDays < 0 || c.Tasks.UrgentReminderDays < 0 {
		return fmt.Errorf("reminder day offsets must not be negative")
	}
	if c.Tasks.WorkerCount < 1 {
		return fmt.Errorf("WORKER_COUNT must be at least 1")
	}
	if c.Extraction.MaxAttempts < 1 {
		return fmt.Errorf("EXTRACTION_MAX_ATTEMPTS must be at least 1")
	}
	switch {
	case strings.HasPrefix(c.AI.Model, "claude"):
		if c.AI.AnthropicAPIKey == "" {
			return fmt.Errorf("ANTHROPIC_API_KEY is required for model %q", c.AI.Model)
		}
	default:
		if c.AI.OpenAIAPIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is required for model %q", c.AI.Model)
		}
	}
	return nil
}
