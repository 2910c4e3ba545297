package deliveries

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tadbir/muamalat-core/internal/app/models"
	"github.com/tadbir/muamalat-core/internal/app/pkg"
	"github.com/tadbir/muamalat-core/internal/app/services"
)

type AuthHandler struct {
	userService *services.UserService
}

func NewAuthHandler(userService *services.UserService) *AuthHandler {
	return &AuthHandler{
		userService: userService,
	}
}

func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/auth/login", h.Login)
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req models.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return pkg.ErrorResponse(c, err)
	}

	response, err := h.userService.Login(&req)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, response)
}
