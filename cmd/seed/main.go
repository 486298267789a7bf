package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/planora/inquiry-backend/internal/config"
	"github.com/planora/inquiry-backend/internal/db"
	"github.com/planora/inquiry-backend/internal/identifier"
	"github.com/planora/inquiry-backend/internal/model"
	"gorm.io/gorm"
)

type seedThread struct {
	subject  string
	opener   string
	reply    string
	archived bool
}

func main() {
	if err := run(); err != nil {
		log.Fatalf("seed failed: %v", err)
	}
}

func run() error {
	ctx := context.Background()
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	gdb, err := db.Connect(cfg)
	if err != nil {
		return fmt.Errorf("connect db: %w", err)
	}
	if err := gdb.AutoMigrate(&model.Inquiry{}, &model.Message{}); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	var count int64
	if err := gdb.WithContext(ctx).Model(&model.Inquiry{}).Count(&count).Error; err != nil {
		return fmt.Errorf("count inquiries: %w", err)
	}
	if count > 0 && os.Getenv("FORCE_SEED") != "true" {
		log.Printf("inquiries already exist; skipping seed (set FORCE_SEED=true to override)")
		return nil
	}

	threads := []seedThread{
		{
			subject: "Summer wedding photography",
			opener:  "Hi, are you available June 5? We're planning an outdoor ceremony.",
			reply:   "Congratulations! June 5 is open on my calendar, happy to talk details.",
		},
		{
			subject: "Catering for 80 guests",
			opener:  "Do you offer a vegetarian tasting menu for a party of 80?",
		},
		{
			subject:  "Venue tour request",
			opener:   "Could we book a tour of the barn venue sometime next month?",
			reply:    "Of course, we run tours every Saturday morning.",
			archived: true,
		},
	}

	clientID := identifier.New()
	for i, t := range threads {
		if err := insertThread(ctx, gdb, clientID, t, i); err != nil {
			return err
		}
	}

	log.Printf("seeded %d inquiry threads for client %s", len(threads), clientID)
	return nil
}

func insertThread(ctx context.Context, gdb *gorm.DB, clientID string, t seedThread, idx int) error {
	// Stagger creation times so the listing order is visible in dev.
	created := time.Now().Add(time.Duration(-idx) * time.Hour)
	updated := created

	msgs := []model.Message{{
		ID:        identifier.New(),
		Sender:    model.SenderClient,
		Content:   t.opener,
		CreatedAt: created,
	}}
	status := model.StatusNew
	if t.reply != "" {
		replied := created.Add(30 * time.Minute)
		msgs = append(msgs, model.Message{
			ID:        identifier.New(),
			Sender:    model.SenderVendor,
			Content:   t.reply,
			CreatedAt: replied,
		})
		status = model.StatusReplied
		updated = replied
	}
	if t.archived {
		status = model.StatusArchived
	}

	inq := model.Inquiry{
		ID:        identifier.New(),
		ClientID:  clientID,
		VendorID:  identifier.New(),
		Subject:   t.subject,
		Status:    status,
		Messages:  msgs,
		CreatedAt: created,
		UpdatedAt: updated,
	}
	if err := gdb.WithContext(ctx).Create(&inq).Error; err != nil {
		return fmt.Errorf("insert thread %q: %w", t.subject, err)
	}
	return nil
}
