package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/planora/inquiry-backend/internal/config"
	"github.com/planora/inquiry-backend/internal/db"
	"github.com/planora/inquiry-backend/internal/model"
	"github.com/planora/inquiry-backend/internal/server"
)

var (
	gitSHA    = "dev"
	buildTime = "unknown"
)

func main() {
	_ = godotenv.Load()

	opts := server.Options{
		FirebaseProjectID: os.Getenv("FIREBASE_PROJECT_ID"),
		GCSBucket:         os.Getenv("GCS_BUCKET"),
		GeminiAPIKey:      os.Getenv("GEMINI_API_KEY"),
	}
	srv := server.New(nil, opts, gitSHA, buildTime)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	addr := ":" + port

	errCh := make(chan error, 1)

	go func() {
		log.Printf("starting server on %s", addr)
		errCh <- srv.Start(addr)
	}()

	// Attach the database in the background so the process can report healthy
	// while Cloud SQL warms up; repositories return ErrDBNotReady until then.
	go func() {
		cfg, err := config.Load()
		if err != nil {
			log.Printf("config load error: %v", err)
			return
		}
		conn, err := db.Connect(cfg)
		if err != nil {
			log.Printf("db connect error: %v", err)
			return
		}
		srv.SetDB(conn)
		if err := conn.AutoMigrate(&model.Inquiry{}, &model.Message{}); err != nil {
			log.Printf("auto migrate error: %v", err)
		}
	}()

	if err := <-errCh; err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
