package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"littlestar/internal/config"
	"littlestar/internal/content"
	"littlestar/internal/database"
	"littlestar/internal/handlers"
	"littlestar/internal/nlp"
	"littlestar/internal/repository"
	"littlestar/internal/security"
	"littlestar/internal/service"

	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env if present; real deployments set the environment directly
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	// Initialize database (supports sqlite, postgres, mysql)
	db, err := database.Open(cfg.DatabaseType, database.ConnConfig{
		Path: cfg.DatabasePath,
		URL:  cfg.DatabaseURL,
	})
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	log.Printf("Database connection established (type: %s)", cfg.DatabaseType)

	// Run migrations
	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Migrations completed successfully")

	// Load the topic and question catalog
	catalog, err := content.NewCatalog()
	if err != nil {
		log.Fatalf("Failed to load content catalog: %v", err)
	}
	contentService := content.NewService(catalog)
	router := nlp.NewRouter(contentService)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	activityRepo := repository.NewActivityRepository(db)

	// Initialize services
	emailService, err := service.NewEmailService(context.Background(), cfg.AWSRegion, cfg.FromEmail, cfg.FromName)
	if err != nil {
		log.Fatalf("Failed to initialize email service: %v", err)
	}
	if !emailService.IsEnabled() {
		log.Println("Email sending disabled (SES_FROM_EMAIL not set)")
	}

	registrationService := service.NewRegistrationService(userRepo)
	activityService := service.NewActivityService(activityRepo, userRepo, emailService)
	adminService := service.NewAdminService(userRepo, activityRepo, cfg.AdminUsername, cfg.AdminPasswordHash)

	// Initialize handlers
	limiter := security.NewRateLimiter(20, time.Minute)
	tokens := security.NewTokenIssuer(cfg.TokenSecret, cfg.TokenLifetime)
	middleware := handlers.NewMiddleware(limiter, tokens)

	chatHandler := handlers.NewChatHandler(contentService, router, registrationService)
	activityHandler := handlers.NewActivityHandler(activityService, userRepo)
	adminHandler := handlers.NewAdminHandler(adminService, activityService, emailService, tokens)

	// Setup routes
	mux := http.NewServeMux()

	// Chat routes
	mux.HandleFunc("POST /api/chat/register", middleware.RateLimit(chatHandler.Register))
	mux.HandleFunc("POST /api/chat/login", middleware.RateLimit(chatHandler.Login))
	mux.HandleFunc("GET /api/chat/topics/{age}", chatHandler.GetTopics)
	mux.HandleFunc("GET /api/chat/questions/{topicId}/{age}", chatHandler.GetQuestions)
	mux.HandleFunc("GET /api/chat/answer/{questionId}", chatHandler.GetAnswer)
	mux.HandleFunc("POST /api/chat/ask", middleware.RateLimit(chatHandler.Ask))
	mux.HandleFunc("GET /api/chat/blogs", chatHandler.GetBlogs)
	mux.HandleFunc("PUT /api/chat/users/{username}/preferences", chatHandler.UpdatePreferences)

	// Activity routes
	mux.HandleFunc("POST /api/activity/log", activityHandler.LogActivity)
	mux.HandleFunc("GET /api/activity/today/{childName}", activityHandler.TodayActivities)
	mux.HandleFunc("GET /api/activity/summary/{childName}", activityHandler.DailySummary)
	mux.HandleFunc("POST /api/activity/send-daily-log", activityHandler.SendDailyLog)

	// Admin routes
	mux.HandleFunc("POST /api/admin/login", middleware.RateLimit(adminHandler.Login))
	mux.HandleFunc("GET /api/admin/users", middleware.RequireAdmin(adminHandler.ListUsers))
	mux.HandleFunc("GET /api/admin/stats", middleware.RequireAdmin(adminHandler.Stats))
	mux.HandleFunc("POST /api/admin/logs/prune", middleware.RequireAdmin(adminHandler.PruneLogs(cfg.LogRetentionDays)))
	mux.HandleFunc("POST /api/admin/test-email", middleware.RequireAdmin(adminHandler.TestEmail))
	mux.HandleFunc("POST /api/admin/daily-sweep", middleware.RequireAdmin(adminHandler.RunDailySweep))

	// Wrap with CORS and logging middleware
	corsMiddleware := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	})
	handler := handlers.Logging(corsMiddleware.Handler(mux))

	// Start server
	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start background daily report sweep and log retention
	stopSweep := make(chan struct{})
	go runDailySweep(activityService, cfg, stopSweep)

	// Graceful shutdown
	go func() {
		log.Printf("Server starting on http://localhost%s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")
	close(stopSweep)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}

// runDailySweep periodically emails daily reports to opted-in parents
// and prunes activity entries past the retention window.
func runDailySweep(activityService *service.ActivityService, cfg *config.Config, stop <-chan struct{}) {
	ticker := time.NewTicker(cfg.ReportInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), cfg.ReportTimeout)
			if _, err := activityService.SendDailyLogsToAllParents(ctx); err != nil {
				log.Printf("Daily report sweep failed: %v", err)
			}
			cancel()

			if deleted, err := activityService.PruneOldLogs(cfg.LogRetentionDays); err != nil {
				log.Printf("Log retention prune failed: %v", err)
			} else if deleted > 0 {
				log.Printf("Pruned %d old activity entries", deleted)
			}
		case <-stop:
			return
		}
	}
}
