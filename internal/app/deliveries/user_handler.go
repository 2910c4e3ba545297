package deliveries

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/tadbir/muamalat-core/internal/app/errors"
	"github.com/tadbir/muamalat-core/internal/app/middlewares"
	"github.com/tadbir/muamalat-core/internal/app/models"
	"github.com/tadbir/muamalat-core/internal/app/pkg"
	"github.com/tadbir/muamalat-core/internal/app/services"
)

type UserHandler struct {
	userService    *services.UserService
	authMiddleware *middlewares.AuthMiddleware
}

func NewUserHandler(userService *services.UserService, authMiddleware *middlewares.AuthMiddleware) *UserHandler {
	return &UserHandler{
		userService:    userService,
		authMiddleware: authMiddleware,
	}
}

func (h *UserHandler) RegisterRoutes(router fiber.Router) {
	userGroup := router.Group("/users", h.authMiddleware.Auth, h.authMiddleware.AdminOnly)

	userGroup.Get("/", h.ListUsers)
	userGroup.Post("/", h.CreateUser)
	userGroup.Delete("/:id", h.DeleteUser)
}

func (h *UserHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.userService.List()
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}
	return pkg.SuccessResponse(c, users)
}

func (h *UserHandler) CreateUser(c *fiber.Ctx) error {
	var req models.UserCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return pkg.ErrorResponse(c, err)
	}

	user, err := h.userService.Create(&req)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}
	return pkg.SuccessResponse(c, user)
}

func (h *UserHandler) DeleteUser(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return pkg.ErrorResponse(c, errors.NewBadRequestError("Invalid user ID"))
	}

	if err := h.userService.Delete(uint(id)); err != nil {
		return pkg.ErrorResponse(c, err)
	}
	return pkg.SuccessResponse[any](c, nil)
}
