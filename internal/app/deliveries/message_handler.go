package deliveries

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/tadbir/muamalat-core/internal/app/middlewares"
	"github.com/tadbir/muamalat-core/internal/app/models"
	"github.com/tadbir/muamalat-core/internal/app/pkg"
	"github.com/tadbir/muamalat-core/internal/app/services"
)

type MessageHandler struct {
	messageService *services.MessageService
	authMiddleware *middlewares.AuthMiddleware
}

func NewMessageHandler(messageService *services.MessageService, authMiddleware *middlewares.AuthMiddleware) *MessageHandler {
	return &MessageHandler{
		messageService: messageService,
		authMiddleware: authMiddleware,
	}
}

func (h *MessageHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/txns/:id/whatsapp", h.authMiddleware.Auth, h.RenderMessage)
	router.Post("/bulk-whatsapp", h.authMiddleware.Auth, h.authMiddleware.AdminOnly, h.RenderBulkMessages)

	messageGroup := router.Group("/messages", h.authMiddleware.Auth)
	messageGroup.Get("/", h.GetMessageLog)
	messageGroup.Get("/:txnId", h.GetMessageLogByTxn)
}

func (h *MessageHandler) RenderMessage(c *fiber.Ctx) error {
	var req models.MessageRenderRequest
	if err := c.BodyParser(&req); err != nil {
		return pkg.ErrorResponse(c, err)
	}

	rendered, err := h.messageService.Render(c.Params("id"), req.TemplateType, middlewares.ActorID(c))
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}
	return pkg.SuccessResponse(c, rendered)
}

func (h *MessageHandler) RenderBulkMessages(c *fiber.Ctx) error {
	var req models.BulkMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return pkg.ErrorResponse(c, err)
	}

	messages, err := h.messageService.RenderBulk(req.Status, req.TemplateType, middlewares.ActorID(c))
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, fiber.Map{
		"count":    len(messages),
		"messages": messages,
	})
}

func (h *MessageHandler) GetMessageLog(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "50"))

	entries, err := h.messageService.GetLog(limit)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}
	return pkg.SuccessResponse(c, entries)
}

func (h *MessageHandler) GetMessageLogByTxn(c *fiber.Ctx) error {
	entries, err := h.messageService.GetLogByTxn(c.Params("txnId"))
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}
	return pkg.SuccessResponse(c, entries)
}
