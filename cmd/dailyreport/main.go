// Command dailyreport runs one daily report sweep and exits. It is
// meant for cron-style scheduling as an alternative to the in-server
// ticker, plus manual prune runs.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"littlestar/internal/config"
	"littlestar/internal/database"
	"littlestar/internal/repository"
	"littlestar/internal/service"

	"github.com/joho/godotenv"
)

func main() {
	prune := flag.Bool("prune", false, "Also delete activity entries past the retention window")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	db, err := database.Open(cfg.DatabaseType, database.ConnConfig{
		Path: cfg.DatabasePath,
		URL:  cfg.DatabaseURL,
	})
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ReportTimeout)
	defer cancel()

	emailService, err := service.NewEmailService(ctx, cfg.AWSRegion, cfg.FromEmail, cfg.FromName)
	if err != nil {
		log.Fatalf("Failed to initialize email service: %v", err)
	}
	if !emailService.IsEnabled() {
		fmt.Println("Warning: email sending is disabled (SES_FROM_EMAIL not set); sends will be logged, not delivered")
	}

	userRepo := repository.NewUserRepository(db)
	activityRepo := repository.NewActivityRepository(db)
	activityService := service.NewActivityService(activityRepo, userRepo, emailService)

	result, err := activityService.SendDailyLogsToAllParents(ctx)
	if err != nil {
		log.Fatalf("Daily report sweep failed: %v", err)
	}
	fmt.Printf("Sweep %s: %d users, %d sent, %d skipped\n", result.RunID, result.Users, result.Sent, result.Skipped)

	if *prune {
		deleted, err := activityService.PruneOldLogs(cfg.LogRetentionDays)
		if err != nil {
			log.Fatalf("Log retention prune failed: %v", err)
		}
		fmt.Printf("Pruned %d activity entries older than %d days\n", deleted, cfg.LogRetentionDays)
	}
}
