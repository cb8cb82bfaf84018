package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"gorm.io/gorm"

	"github.com/kperez42/Celestia-sub000/internal/config"
	"github.com/kperez42/Celestia-sub000/internal/handlers"
	"github.com/kperez42/Celestia-sub000/internal/middleware"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	authHandler *handlers.AuthHandler,
	healthHandler *handlers.HealthHandler,
	profileHandler *handlers.ProfileHandler,
	moderationHandler *handlers.ModerationHandler,
	appealHandler *handlers.AppealHandler,
	verificationHandler *handlers.VerificationHandler,
	legalHandler *handlers.LegalHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	// Health
	api.Get("/health", healthHandler.Check)

	// Legal pages
	api.Get("/legal/privacy", legalHandler.PrivacyPolicy)
	api.Get("/legal/terms", legalHandler.TermsOfService)
	api.Get("/legal/guidelines", legalHandler.CommunityGuidelines)

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
	auth.Post("/apple", authHandler.AppleSignIn)

	// Protected routes (JWT required) - apply middleware to individual routes
	// so the JWT middleware never affects public routes
	api.Post("/auth/logout", middleware.JWTProtected(cfg), authHandler.Logout)
	api.Delete("/auth/account", middleware.JWTProtected(cfg), authHandler.DeleteAccount)

	// Profile — own profile and discovery
	api.Get("/profile/me", middleware.JWTProtected(cfg), profileHandler.Me)
	api.Put("/profile", middleware.JWTProtected(cfg), profileHandler.UpdateProfile)
	api.Post("/profile/retry-review", middleware.JWTProtected(cfg), profileHandler.RetryReview)
	api.Get("/profiles", middleware.JWTProtected(cfg), profileHandler.Browse)

	// Safety — user endpoints
	api.Post("/reports", middleware.JWTProtected(cfg), moderationHandler.CreateReport)
	api.Post("/blocks", middleware.JWTProtected(cfg), profileHandler.BlockUser)
	api.Delete("/blocks/:id", middleware.JWTProtected(cfg), profileHandler.UnblockUser)
	api.Post("/appeals", middleware.JWTProtected(cfg), appealHandler.SubmitAppeal)

	// Verification — photo upload and status polling
	api.Post("/verification", middleware.JWTProtected(cfg), verificationHandler.Submit)
	api.Get("/verification/status", middleware.JWTProtected(cfg), verificationHandler.Status)

	// Admin moderation panel (protected + admin required)
	admin := api.Group("/admin", middleware.JWTProtected(cfg), middleware.AdminRequired(db, cfg))
	admin.Get("/moderation/stats", moderationHandler.DashboardStats)
	admin.Get("/moderation/pending", moderationHandler.ListPendingAccounts)
	admin.Get("/moderation/rejection-reasons", moderationHandler.RejectionReasons)
	admin.Put("/moderation/accounts/:id/approve", moderationHandler.ApproveAccount)
	admin.Put("/moderation/accounts/:id/reject", moderationHandler.RejectAccount)
	admin.Put("/moderation/accounts/:id/warn", moderationHandler.WarnAccount)
	admin.Put("/moderation/accounts/:id/suspend", moderationHandler.SuspendAccount)
	admin.Put("/moderation/accounts/:id/ban", moderationHandler.BanAccount)
	admin.Get("/moderation/reports", moderationHandler.ListReports)
	admin.Put("/moderation/reports/:id", moderationHandler.ResolveReport)
	admin.Get("/moderation/queue", moderationHandler.ListQueue)
	admin.Post("/moderation/queue", moderationHandler.EnqueueAccount)
	admin.Delete("/moderation/queue/:id", moderationHandler.DismissQueueEntry)
	admin.Get("/appeals", appealHandler.ListAppeals)
	admin.Put("/appeals/:id", appealHandler.ReviewAppeal)

	// Webhooks — shared-secret auth, no JWT
	webhooks := api.Group("/webhooks")
	webhooks.Post("/verification", verificationHandler.ProviderCallback)
}
