package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/coursehub/coursehub-backend/internal/config"
	"github.com/coursehub/coursehub-backend/internal/infrastructure/database"
	"github.com/coursehub/coursehub-backend/internal/infrastructure/email"
	httpServer "github.com/coursehub/coursehub-backend/internal/infrastructure/http"
	stripeProcessor "github.com/coursehub/coursehub-backend/internal/infrastructure/processor/stripe"
	"github.com/coursehub/coursehub-backend/internal/logger"
	"github.com/coursehub/coursehub-backend/internal/usecase"
)

// deactivationInterval is how often the stale-account sweep runs.
const deactivationInterval = 24 * time.Hour

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	zapLogger, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zapLogger.Sync()

	// Initialize database connection
	db, err := database.NewConnection(&cfg.Database, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := database.Close(db, zapLogger); err != nil {
			zapLogger.Error("Failed to close database connection", zap.Error(err))
		}
	}()

	// Run database migrations
	if err := database.Migrate(db, zapLogger); err != nil {
		zapLogger.Fatal("Failed to run database migrations", zap.Error(err))
	}

	// Initialize repositories and the payment processor client
	repos := database.NewRepositories(db, zapLogger)
	processorClient := stripeProcessor.NewClient(cfg.Service.Stripe, zapLogger)
	mailer := email.NewMailer(cfg.Email, zapLogger)

	// Wire usecases
	userService := usecase.NewUserService(repos.User, cfg.JWT, zapLogger)
	courseService := usecase.NewCourseService(repos.Course, repos.Subscription, repos.User, mailer, zapLogger)
	lessonService := usecase.NewLessonService(repos.Lesson, repos.Course, zapLogger)
	subscriptionService := usecase.NewSubscriptionService(repos.Subscription, repos.Course, zapLogger)
	paymentService := usecase.NewPaymentService(
		repos.Payment, repos.Course, processorClient,
		cfg.Service.BaseURL, cfg.Service.Currency, zapLogger)

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	httpSrv := httpServer.NewServer(cfg, zapLogger, repos, httpServer.Usecases{
		Users:         userService,
		Courses:       courseService,
		Lessons:       lessonService,
		Subscriptions: subscriptionService,
		Payments:      paymentService,
	})

	go func() {
		if err := httpSrv.Start(); err != nil {
			zapLogger.Fatal("Failed to start HTTP server", zap.Error(err))
		}
	}()

	// Periodic sweep disabling accounts with no login for 30 days.
	go func() {
		ticker := time.NewTicker(deactivationInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if _, err := userService.DeactivateStaleUsers(ctx); err != nil {
					zapLogger.Error("Stale account sweep failed", zap.Error(err))
				}
			}
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	zapLogger.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("Failed to shutdown HTTP server", zap.Error(err))
	}

	zapLogger.Info("Server shut down successfully")
}
