package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/joho/godotenv"
	"github.com/slack-go/slack"
	"github.com/standup-bot/slack-standup-bot/internal/config"
	"github.com/standup-bot/slack-standup-bot/internal/database"
	"github.com/standup-bot/slack-standup-bot/internal/domain/service"
	"github.com/standup-bot/slack-standup-bot/internal/handlers"
	"github.com/standup-bot/slack-standup-bot/internal/store"
	"github.com/standup-bot/slack-standup-bot/migrator/sqlite"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	cfg := config.Load()

	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	log.Println("Running migrations...")
	if err := sqlite.Migrate(db.DB()); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Migrations completed successfully")

	slackClient := slack.New(cfg.SlackBotToken)
	dm := database.NewInstance(db)
	scheduleStore := store.New()

	services := service.NewInstance(dm, scheduleStore, slackClient, service.Options{
		NotifyOncePerWindow: cfg.NotifyOncePerWindow,
		RearmDaily:          cfg.RearmDaily,
	})

	// The scheduler only starts once the Slack session is confirmed.
	auth, err := slackClient.AuthTestContext(context.Background())
	if err != nil {
		log.Fatalf("Failed to authenticate with Slack: %v", err)
	}
	log.Printf("We have logged in as %s", auth.User)

	services.Scheduler.Start()
	defer services.Scheduler.Stop()

	handler := handlers.New(slackClient, services.Standup, cfg.SlackSigningSecret)

	http.HandleFunc("/slack/commands", handler.HandleSlashCommand)
	http.HandleFunc("/slack/interactive", handler.HandleInteraction)
	http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK")
	})

	log.Printf("Server starting on port %s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, nil); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
