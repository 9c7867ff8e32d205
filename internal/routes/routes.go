package routes

import (
	"time"

	"github.com/Measdani/root-intentional-dating-app-sub001/internal/config"
	"github.com/Measdani/root-intentional-dating-app-sub001/internal/handlers"
	"github.com/Measdani/root-intentional-dating-app-sub001/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"gorm.io/gorm"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	authHandler *handlers.AuthHandler,
	healthHandler *handlers.HealthHandler,
	moderationHandler *handlers.ModerationHandler,
	consentHandler *handlers.ConsentHandler,
	assessmentHandler *handlers.AssessmentHandler,
	notificationHandler *handlers.NotificationHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	// Health (public)
	api.Get("/health", healthHandler.Check)

	// Auth — public, with a stricter limit: 10 req/min per IP
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.Refresh)

	api.Post("/auth/logout", middleware.JWTProtected(cfg), authHandler.Logout)

	// Report intake (protected)
	api.Post("/reports", middleware.JWTProtected(cfg), moderationHandler.SubmitReport)

	// Conversations + mutual photo consent (protected)
	protected := api.Group("", middleware.JWTProtected(cfg))
	protected.Post("/conversations", consentHandler.StartConversation)
	protected.Get("/conversations/:id", consentHandler.GetConversation)
	protected.Post("/conversations/:id/messages", consentHandler.SendMessage)
	protected.Post("/conversations/:id/consent", consentHandler.GiveConsent)

	// Readiness assessment (protected)
	protected.Get("/assessment/questions", assessmentHandler.Questions)
	protected.Post("/assessment/submit", assessmentHandler.Submit)
	protected.Get("/assessment/results", assessmentHandler.Results)

	// Notifications (protected)
	protected.Get("/notifications", notificationHandler.List)

	// Reviewer panel (protected + reviewer role required)
	admin := api.Group("/admin", middleware.JWTProtected(cfg), middleware.ReviewerRequired(db, cfg))
	admin.Get("/moderation/reports", moderationHandler.ListReports)
	admin.Post("/moderation/reports/:id/claim", moderationHandler.ClaimReport)
	admin.Post("/moderation/reports/:id/resolve", moderationHandler.ResolveReport)
	admin.Get("/moderation/reports/:id/evaluate", moderationHandler.EvaluateReport)
	admin.Get("/moderation/users/:id/history", moderationHandler.UserHistory)
	admin.Get("/moderation/users/:id/suspensions", moderationHandler.Suspensions)
	admin.Post("/moderation/suspensions", moderationHandler.ApplySuspension)
}
