//go:build wireinject
// +build wireinject

package injector

import (
	"github.com/google/wire"
	"github.com/tadbir/muamalat-core/internal/app/deliveries"
	"github.com/tadbir/muamalat-core/internal/app/middlewares"
	"github.com/tadbir/muamalat-core/internal/app/services"
	"github.com/tadbir/muamalat-core/internal/infrastructures"
	"github.com/tadbir/muamalat-core/pkg/ratelimit"
)

// Infrastructure providers
var infrastructureSet = wire.NewSet(
	infrastructures.NewDatabase,
	infrastructures.NewRedisClient,
	infrastructures.NewValidator,
	infrastructures.NewGeminiClient,
	wire.Value("muamalat"),
	wire.Bind(new(ratelimit.RateLimiter), new(*ratelimit.RedisRateLimiter)),
	ratelimit.NewRedisRateLimiter,
)

// Service providers
var serviceSet = wire.NewSet(
	services.NewAuditService,
	services.NewNotificationService,
	services.NewTransactionService,
	services.NewShareLinkService,
	services.NewSettingsService,
	services.NewMessageService,
	services.NewUserService,
	services.NewClientService,
	services.NewReportService,
	services.NewExportService,
	services.NewAIService,
)

// Middleware providers
var middlewareSet = wire.NewSet(
	middlewares.NewAuthMiddleware,
	middlewares.NewRateLimitMiddleware,
)

// Handler providers
var handlerSet = wire.NewSet(
	deliveries.NewHealthHandler,
	deliveries.NewAuthHandler,
	deliveries.NewUserHandler,
	deliveries.NewTransactionHandler,
	deliveries.NewClientHandler,
	deliveries.NewAuditHandler,
	deliveries.NewNotificationHandler,
	deliveries.NewShareLinkHandler,
	deliveries.NewMessageHandler,
	deliveries.NewSettingsHandler,
	deliveries.NewReportHandler,
	deliveries.NewAIHandler,
	deliveries.NewUploadHandler,
	wire.Struct(new(Application), "*"),
)

// InitializeApplication initializes the application with all its dependencies
func InitializeApplication() (*Application, error) {
	wire.Build(
		infrastructureSet,
		serviceSet,
		middlewareSet,
		handlerSet,
	)
	return &Application{}, nil
}
