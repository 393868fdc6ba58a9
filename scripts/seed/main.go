package main

import (
	"fmt"
	"log"
	"time"

	"github.com/task-assistant-team/task-assistant/internal/domain/entities"
	"github.com/task-assistant-team/task-assistant/internal/infrastructure/database"
	"github.com/task-assistant-team/task-assistant/pkg/config"
	pkgjwt "github.com/task-assistant-team/task-assistant/pkg/jwt"
)

const demoContent = `John Smith: Good morning everyone, let's get started with the weekly sync.
Sarah Johnson: Morning! Quick update from legal: the NDA redlines came back on Friday.
John Smith: Great. Sarah, please send the updated NDA to Acme Corp by Wednesday.
Sarah Johnson: Will do, I'll get it out before then.
Mike Chen: I still need to schedule the Q2 planning meeting with the whole team.
John Smith: Please do, and research the new CRM options when you get a chance, no rush on that one.
Mike Chen: Noted, I'll put together a comparison doc.
John Smith: That's everything. Thanks all.`

func main() {
	log.Println("🚀 Seeding demo data...")

	// Load configuration from .env
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if !cfg.Database.Enabled() {
		log.Fatalf("DATABASE_URL is not set, nothing to seed")
	}

	// Initialize database
	log.Println("📦 Connecting to database...")
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB(db)

	log.Println("🗑️  Cleaning up existing demo data...")
	db.Exec("DELETE FROM task_execution_log WHERE action_item_id IN (SELECT id FROM action_items WHERE transcript_id IN (SELECT id FROM meeting_transcripts WHERE source = 'seed'))")
	db.Exec("DELETE FROM action_items WHERE transcript_id IN (SELECT id FROM meeting_transcripts WHERE source = 'seed')")
	db.Where("source = ?", "seed").Delete(&entities.Transcript{})

	log.Println("📝 Creating demo transcript...")
	meetingDate := time.Date(2024, time.January, 15, 10, 0, 0, 0, time.UTC)
	t := entities.NewTranscript(
		"Weekly Team Sync",
		meetingDate,
		[]string{"John Smith", "Sarah Johnson", "Mike Chen"},
		demoContent,
		"seed",
	)

	if err := db.Create(t).Error; err != nil {
		log.Fatalf("❌ Failed to seed transcript: %v", err)
	}
	log.Printf("✅ Seeded transcript %s (%s)", t.ID, t.Title)

	// Print a service token for exercising the API when auth is enabled
	if cfg.JWT.Secret != "" {
		manager := pkgjwt.NewManager(cfg.JWT.Secret, cfg.JWT.Expiry)
		token, err := manager.GenerateServiceToken("seed-script")
		if err != nil {
			log.Fatalf("❌ Failed to generate service token: %v", err)
		}
		fmt.Printf("\n🔑 Service token (expires in %s):\n%s\n\n", cfg.JWT.Expiry, token)
		fmt.Printf("Try: curl -X POST -H \"Authorization: Bearer %s\" http://localhost:%s/api/v1/transcripts/%s/process\n\n", token, cfg.Server.Port, t.ID)
	}

	log.Println("✅ Seeding complete")
}
