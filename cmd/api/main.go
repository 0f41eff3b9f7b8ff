package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"

	"github.com/noah-isme/gpa-go-api/internal/config"
	"github.com/noah-isme/gpa-go-api/internal/database"
	"github.com/noah-isme/gpa-go-api/internal/handler"
	"github.com/noah-isme/gpa-go-api/internal/middleware"
	"github.com/noah-isme/gpa-go-api/internal/repository"
	"github.com/noah-isme/gpa-go-api/internal/router"
	"github.com/noah-isme/gpa-go-api/internal/service"
	"github.com/noah-isme/gpa-go-api/pkg/pdf"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	policy, err := cfg.GradingPolicy()
	if err != nil {
		log.Fatalf("failed to load grading policy: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	redisClient, err := database.ConnectRedis(cfg.RedisURL)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer redisClient.Close()

	var natsConn *nats.Conn
	if cfg.NatsURL != "" {
		natsConn, err = nats.Connect(cfg.NatsURL)
		if err != nil {
			log.Fatalf("failed to connect to nats: %v", err)
		}
		defer natsConn.Close()
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	sessionRepo := repository.NewSessionRepository(redisClient, cfg.SessionTTL)
	reportBuilder := pdf.NewReportBuilder(logger)

	celebrationService := service.NewCelebrationService(natsConn, cfg.NatsSubject, logger)
	sessionService := service.NewSessionService(sessionRepo, validate, logger)
	calculationService := service.NewCalculationService(sessionRepo, policy, reportBuilder, celebrationService, logger)

	sessionHandler := handler.NewSessionHandler(sessionService, calculationService, logger)
	celebrationHandler := handler.NewCelebrationHandler(celebrationService, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		SessionHandler:     sessionHandler,
		CelebrationHandler: celebrationHandler,
	})

	serviceCtx, cancel := context.WithCancel(context.Background())
	defer cancel()
	celebrationService.Start(serviceCtx)

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
