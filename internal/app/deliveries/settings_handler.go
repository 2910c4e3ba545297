package deliveries

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tadbir/muamalat-core/internal/app/middlewares"
	"github.com/tadbir/muamalat-core/internal/app/models"
	"github.com/tadbir/muamalat-core/internal/app/pkg"
	"github.com/tadbir/muamalat-core/internal/app/services"
)

type SettingsHandler struct {
	settingsService *services.SettingsService
	authMiddleware  *middlewares.AuthMiddleware
}

func NewSettingsHandler(settingsService *services.SettingsService, authMiddleware *middlewares.AuthMiddleware) *SettingsHandler {
	return &SettingsHandler{
		settingsService: settingsService,
		authMiddleware:  authMiddleware,
	}
}

func (h *SettingsHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/settings", h.authMiddleware.Auth, h.GetSettings)
	router.Post("/settings", h.authMiddleware.Auth, h.authMiddleware.AdminOnly, h.UpdateSettings)
}

func (h *SettingsHandler) GetSettings(c *fiber.Ctx) error {
	settings, err := h.settingsService.GetAll()
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}
	return pkg.SuccessResponse(c, settings)
}

func (h *SettingsHandler) UpdateSettings(c *fiber.Ctx) error {
	var req models.SettingsUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return pkg.ErrorResponse(c, err)
	}

	if err := h.settingsService.SetMany(req.Settings); err != nil {
		return pkg.ErrorResponse(c, err)
	}
	return pkg.SuccessResponse[any](c, nil)
}
