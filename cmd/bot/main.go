package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"kapitalbot/internal/config"
	"kapitalbot/internal/handler"
	"kapitalbot/internal/middleware"
	"kapitalbot/internal/repository/postgres"
	"kapitalbot/internal/service"
	"kapitalbot/internal/sink"
	"kapitalbot/internal/state"

	"github.com/golang-migrate/migrate/v4"
	postgresdb "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

func main() {
	// Initialize logger
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting Kapital Bot")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	logger.Info("Configuration loaded successfully")

	// Connect to database with retries
	db, err := connectDatabase(cfg.DSN(), logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connection established")

	// Run migrations
	if err := runMigrations(db, logger); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	logger.Info("Database migrations completed")

	// Initialize repositories
	userRepo := postgres.NewUserRepo(db)
	catalogRepo := postgres.NewCatalogRepo(db)

	// Initialize record sink
	recordSink, err := sink.NewSheetsSink(
		context.Background(),
		cfg.Sheets.CredentialsFile,
		cfg.Sheets.SpreadsheetID,
		cfg.Sheets.SheetName,
	)
	if err != nil {
		logger.Fatal("Failed to create sheets sink", zap.Error(err))
	}

	// Initialize conversation state store
	states, err := state.NewStore(state.DefaultCapacity)
	if err != nil {
		logger.Fatal("Failed to create conversation store", zap.Error(err))
	}

	// Initialize services
	accessService := service.NewAccessService(userRepo, cfg.AdminIDs)
	catalogService := service.NewCatalogService(catalogRepo)
	entryService := service.NewEntryService(recordSink, service.DefaultSubmitTimeout)

	// Initialize Telegram bot
	bot, err := tele.NewBot(tele.Settings{
		Token:     cfg.BotToken,
		Poller:    &tele.LongPoller{Timeout: 10 * time.Second},
		ParseMode: tele.ModeHTML,
	})
	if err != nil {
		logger.Fatal("Failed to create bot", zap.Error(err))
	}

	logger.Info("Telegram bot initialized")

	// Gate every update through the access controller
	bot.Use(middleware.AccessGate(accessService, states, logger))

	// Initialize handler
	h := handler.NewHandler(bot, accessService, catalogService, entryService, states, logger)
	h.RegisterHandlers()

	logger.Info("Handlers registered")

	if err := bot.SetCommands([]tele.Command{
		{Text: "start", Description: "Botni boshlash"},
	}); err != nil {
		logger.Warn("Failed to set bot commands", zap.Error(err))
	}

	// Let approved users know the bot is back; in-flight forms were lost
	// on restart.
	go pingApprovedUsers(bot, accessService, logger)

	// Start bot in background
	go func() {
		logger.Info("Bot started successfully")
		bot.Start()
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan

	logger.Info("Shutdown signal received, stopping bot...")

	// Graceful shutdown
	bot.Stop()

	logger.Info("Bot stopped gracefully")
}

// connectDatabase connects to PostgreSQL with retries
func connectDatabase(dsn string, logger *zap.Logger) (*sql.DB, error) {
	var db *sql.DB
	var err error

	maxRetries := 30
	retryDelay := 2 * time.Second

	for i := 0; i < maxRetries; i++ {
		db, err = sql.Open("postgres", dsn)
		if err != nil {
			logger.Warn("Failed to open database connection",
				zap.Int("attempt", i+1),
				zap.Error(err),
			)
			time.Sleep(retryDelay)
			continue
		}

		// Test connection
		if err = db.Ping(); err != nil {
			logger.Warn("Failed to ping database",
				zap.Int("attempt", i+1),
				zap.Error(err),
			)
			db.Close()
			time.Sleep(retryDelay)
			continue
		}

		// Connection successful
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)

		return db, nil
	}

	return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", maxRetries, err)
}

// runMigrations runs database migrations
func runMigrations(db *sql.DB, logger *zap.Logger) error {
	driver, err := postgresdb.WithInstance(db, &postgresdb.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://migrations",
		"postgres",
		driver,
	)
	if err != nil {
		return fmt.Errorf("failed to create migration instance: %w", err)
	}

	// Run migrations
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	if err == migrate.ErrNoChange {
		logger.Info("No new migrations to apply")
	} else {
		logger.Info("Migrations applied successfully")
	}

	return nil
}

// pingApprovedUsers sends each approved user a resume prompt, best
// effort per user.
func pingApprovedUsers(bot *tele.Bot, access *service.AccessService, logger *zap.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	users, err := access.ListApproved(ctx)
	if err != nil {
		logger.Error("Failed to list approved users for startup ping", zap.Error(err))
		return
	}

	for _, u := range users {
		if _, err := bot.Send(&tele.User{ID: u.ID},
			"Iltimos, /start ni bosing va botdan foydalanishni davom eting!"); err != nil {
			logger.Warn("Startup ping dropped",
				zap.Int64("user_id", u.ID),
				zap.Error(err),
			)
		}
	}
}
