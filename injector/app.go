package injector

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tadbir/muamalat-core/internal/app/deliveries"
	"github.com/tadbir/muamalat-core/internal/app/middlewares"
	"github.com/tadbir/muamalat-core/pkg/ratelimit"
)

// Application represents the main application container for muamalat-core
type Application struct {
	HealthHandler       *deliveries.HealthHandler
	AuthHandler         *deliveries.AuthHandler
	UserHandler         *deliveries.UserHandler
	TransactionHandler  *deliveries.TransactionHandler
	ClientHandler       *deliveries.ClientHandler
	AuditHandler        *deliveries.AuditHandler
	NotificationHandler *deliveries.NotificationHandler
	ShareLinkHandler    *deliveries.ShareLinkHandler
	MessageHandler      *deliveries.MessageHandler
	SettingsHandler     *deliveries.SettingsHandler
	ReportHandler       *deliveries.ReportHandler
	AIHandler           *deliveries.AIHandler
	UploadHandler       *deliveries.UploadHandler
	RateLimitMiddleware *middlewares.RateLimitMiddleware
}

// RegisterRoutes registers all application routes using a Fiber router
func (app *Application) RegisterRoutes(router fiber.Router) {
	// Global IP-based limit; login and the public AI chat get stricter ones
	router.Use(app.RateLimitMiddleware.LimitByIP(ratelimit.AuthenticatedAPILimit))

	authGroup := router.Group("/auth")
	authGroup.Use(app.RateLimitMiddleware.LimitByIP(ratelimit.AuthLimit))

	clientGroup := router.Group("/client")
	clientGroup.Use(app.RateLimitMiddleware.LimitByIP(ratelimit.PublicLookupLimit))

	chatGroup := router.Group("/ai/chat")
	chatGroup.Use(app.RateLimitMiddleware.LimitByIP(ratelimit.AIChatLimit))

	app.HealthHandler.RegisterRoutes(router)
	app.AuthHandler.RegisterRoutes(router)
	app.UserHandler.RegisterRoutes(router)
	app.TransactionHandler.RegisterRoutes(router)
	app.ClientHandler.RegisterRoutes(router)
	app.AuditHandler.RegisterRoutes(router)
	app.NotificationHandler.RegisterRoutes(router)
	app.ShareLinkHandler.RegisterRoutes(router)
	app.MessageHandler.RegisterRoutes(router)
	app.SettingsHandler.RegisterRoutes(router)
	app.ReportHandler.RegisterRoutes(router)
	app.AIHandler.RegisterRoutes(router)
	app.UploadHandler.RegisterRoutes(router)
}
