package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"

	"github.com/Measdani/root-intentional-dating-app-sub001/internal/config"
	"github.com/Measdani/root-intentional-dating-app-sub001/internal/database"
	"github.com/Measdani/root-intentional-dating-app-sub001/internal/handlers"
	"github.com/Measdani/root-intentional-dating-app-sub001/internal/logging"
	"github.com/Measdani/root-intentional-dating-app-sub001/internal/middleware"
	"github.com/Measdani/root-intentional-dating-app-sub001/internal/policy"
	"github.com/Measdani/root-intentional-dating-app-sub001/internal/routes"
	"github.com/Measdani/root-intentional-dating-app-sub001/internal/services"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

func main() {
	logging.Setup()
	cfg := config.Load()

	for name, value := range map[string]string{
		"JWT_SECRET":  cfg.JWTSecret,
		"DB_PASSWORD": cfg.DBPassword,
	} {
		if value == "" {
			slog.Error("required environment variable is missing", "name", name)
			os.Exit(1)
		}
	}

	if err := database.Connect(cfg); err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	if err := database.Migrate(); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	// Upgrade the logger with the error sink now that the pool exists.
	logSink := logging.SetupWithStore(database.DB)
	cleanupDone := make(chan struct{})
	logging.StartCleanup(database.DB, cleanupDone)

	if err := services.SeedQuestions(database.DB); err != nil {
		slog.Error("question bank seed failed", "error", err)
		os.Exit(1)
	}

	initSentry()

	app := buildApp(cfg)

	go func() {
		slog.Info("server starting", "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("listener stopped", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("shutting down")

	close(cleanupDone)
	logSink.Stop()
	sentry.Flush(2 * time.Second)

	if err := app.Shutdown(); err != nil {
		slog.Error("server shutdown error", "error", err)
	}
	if pool, err := database.DB.DB(); err == nil {
		if err := pool.Close(); err != nil {
			slog.Error("database close error", "error", err)
		}
	}
	slog.Info("server stopped")
}

// buildApp assembles the Fiber app, services, handlers and routes.
func buildApp(cfg *config.Config) *fiber.App {
	notifier := services.NewNotificationService(database.DB)
	moderation := services.NewModerationService(database.DB, policy.DefaultTable(), notifier)
	suspensions := services.NewSuspensionService(database.DB)
	consent := services.NewConsentService(database.DB, notifier)
	assessment := services.NewAssessmentService(database.DB, notifier)
	auth := services.NewAuthService(database.DB, cfg)

	app := fiber.New(fiber.Config{
		BodyLimit:    4 * 1024 * 1024,
		ErrorHandler: fallbackErrorHandler,
	})

	app.Use(sentryfiber.New(sentryfiber.Options{Repanic: true}))
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path}\n",
	}))
	app.Use(middleware.CORS(cfg))
	app.Use(securityHeaders)

	routes.Setup(app, cfg, database.DB,
		handlers.NewAuthHandler(auth),
		handlers.NewHealthHandler(),
		handlers.NewModerationHandler(moderation, suspensions),
		handlers.NewConsentHandler(consent),
		handlers.NewAssessmentHandler(assessment, cfg),
		handlers.NewNotificationHandler(notifier),
	)
	return app
}

func initSentry() {
	dsn := os.Getenv("SENTRY_DSN")
	if dsn == "" {
		return
	}
	err := sentry.Init(sentry.ClientOptions{
		Dsn:              dsn,
		EnableTracing:    true,
		TracesSampleRate: 0.2,
		Environment:      os.Getenv("APP_ENV"),
	})
	if err != nil {
		slog.Error("sentry init failed", "error", err)
	}
}

func securityHeaders(c *fiber.Ctx) error {
	c.Set("X-Content-Type-Options", "nosniff")
	c.Set("X-Frame-Options", "DENY")
	return c.Next()
}

// fallbackErrorHandler catches errors that escape the handler layer. Server
// faults are logged with their request id and masked in the response.
func fallbackErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "internal server error"
	if fe, ok := err.(*fiber.Error); ok {
		code = fe.Code
		message = fe.Message
	}
	if code >= 500 {
		slog.Error("unhandled server error",
			"request_id", c.Locals(requestid.ConfigDefault.ContextKey),
			"method", c.Method(),
			"path", c.Path(),
			"error", err.Error(),
		)
		message = "internal server error"
	}
	return c.Status(code).JSON(fiber.Map{"error": true, "message": message})
}
