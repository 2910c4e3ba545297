package deliveries

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/tadbir/muamalat-core/internal/app/errors"
	"github.com/tadbir/muamalat-core/internal/app/middlewares"
	"github.com/tadbir/muamalat-core/internal/app/pkg"
	"github.com/tadbir/muamalat-core/internal/app/services"
)

type NotificationHandler struct {
	notificationService *services.NotificationService
	authMiddleware      *middlewares.AuthMiddleware
}

func NewNotificationHandler(notificationService *services.NotificationService, authMiddleware *middlewares.AuthMiddleware) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notificationService,
		authMiddleware:      authMiddleware,
	}
}

func (h *NotificationHandler) RegisterRoutes(router fiber.Router) {
	notificationGroup := router.Group("/notifications", h.authMiddleware.Auth)

	notificationGroup.Get("/", h.ListNotifications)
	notificationGroup.Post("/read-all", h.MarkAllRead)
	notificationGroup.Post("/:id/read", h.MarkRead)
}

func (h *NotificationHandler) ListNotifications(c *fiber.Ctx) error {
	unreadOnly := c.Query("unread") == "true"

	notifications, err := h.notificationService.List(unreadOnly)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	unreadCount, err := h.notificationService.UnreadCount()
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, fiber.Map{
		"notifications": notifications,
		"unread_count":  unreadCount,
	})
}

func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return pkg.ErrorResponse(c, errors.NewBadRequestError("Invalid notification ID"))
	}

	if err := h.notificationService.MarkRead(uint(id)); err != nil {
		return pkg.ErrorResponse(c, err)
	}
	return pkg.SuccessResponse[any](c, nil)
}

func (h *NotificationHandler) MarkAllRead(c *fiber.Ctx) error {
	if err := h.notificationService.MarkAllRead(); err != nil {
		return pkg.ErrorResponse(c, err)
	}
	return pkg.SuccessResponse[any](c, nil)
}
