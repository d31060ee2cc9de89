package main

import (
	"database/sql"
	"flag"
	"log"
	"net/http"

	httpapi "stayhub-backend/internal/api/http"
	"stayhub-backend/internal/config"
	"stayhub-backend/internal/logger"
	"stayhub-backend/internal/repository/postgres"
	"stayhub-backend/internal/security"
	"stayhub-backend/internal/service"

	"github.com/go-playground/validator/v10"
	_ "github.com/lib/pq"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting StayHub Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret)

	// Initialize Services
	emailSvc := service.NewEmailService(
		cfg.Email.SendGridAPIKey,
		cfg.Email.FromEmail,
		cfg.Email.FromName,
	)
	bookingSvc := service.NewBookingService(
		store.BookingRepository,
		store.AvailabilityRepository,
		store.PropertyRepository,
		store.NotificationRepository,
		emailSvc,
	)
	calendarSvc := service.NewCalendarService(
		store.AvailabilityRepository,
		store.BookingRepository,
		store.PropertyRepository,
	)
	propertySvc := service.NewPropertyService(store.PropertyRepository)
	noteSvc := service.NewNotificationService(store.NotificationRepository)

	// Initialize HTTP API
	validate := validator.New()
	handlers := &httpapi.Handlers{
		Booking:      httpapi.NewBookingHandler(bookingSvc, validate),
		Calendar:     httpapi.NewCalendarHandler(calendarSvc, validate, cfg.Calendar.HorizonDays),
		Property:     httpapi.NewPropertyHandler(propertySvc, validate),
		Notification: httpapi.NewNotificationHandler(noteSvc),
	}
	router := httpapi.NewRouter(handlers, tokenManager)

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := http.ListenAndServe(cfg.GetServerAddress(), router); err != nil {
		logger.Error("HTTP server failed", "error", err)
		log.Fatalf("HTTP server failed: %v", err)
	}
}
