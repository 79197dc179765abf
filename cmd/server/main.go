// Package main implements the entry point for the StudyFlash API server,
// which generates flashcards from study notes with an LLM backend and
// enforces freemium daily generation quotas.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/studyflash/studyflash-api/internal/config"
	"github.com/studyflash/studyflash-api/internal/platform/logger"
)

func main() {
	migrateCmd := flag.String("migrate", "", "run database migrations (up, down, status) and exit")
	flag.Parse()

	// Load .env for local development. Missing file is fine; real
	// deployments configure through the environment.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("warning: could not load .env file: %v", err)
	}

	if err := run(*migrateCmd); err != nil {
		log.Fatalf("studyflash-api: %v", err)
	}
}

// run loads configuration, wires the application, and starts the server.
// When migrateCmd is set it runs migrations instead of serving.
func run(migrateCmd string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	appLogger.Info("configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel)

	if migrateCmd != "" {
		return runMigrations(cfg, migrateCmd)
	}

	ctx := context.Background()

	db, err := setupDatabase(cfg, appLogger)
	if err != nil {
		return err
	}

	app, err := newApplication(ctx, cfg, appLogger, db)
	if err != nil {
		// newApplication owns no resources yet besides the db handle
		if closeErr := db.Close(); closeErr != nil {
			appLogger.Error("failed to close database", "error", closeErr)
		}
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.Run(ctx)
}
