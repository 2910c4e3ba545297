package deliveries

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tadbir/muamalat-core/internal/app/middlewares"
	"github.com/tadbir/muamalat-core/internal/app/pkg"
	"github.com/tadbir/muamalat-core/internal/app/services"
)

type AIHandler struct {
	aiService      *services.AIService
	authMiddleware *middlewares.AuthMiddleware
}

func NewAIHandler(aiService *services.AIService, authMiddleware *middlewares.AuthMiddleware) *AIHandler {
	return &AIHandler{
		aiService:      aiService,
		authMiddleware: authMiddleware,
	}
}

func (h *AIHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/ai/chat", h.Chat)
	router.Post("/ai/summarize", h.authMiddleware.Auth, h.Summarize)
}

type chatRequest struct {
	Message string `json:"message"`
}

func (h *AIHandler) Chat(c *fiber.Ctx) error {
	var req chatRequest
	if err := c.BodyParser(&req); err != nil {
		return pkg.ErrorResponse(c, err)
	}

	reply, err := h.aiService.Chat(c.Context(), req.Message)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}
	return pkg.SuccessResponse(c, fiber.Map{"reply": reply})
}

func (h *AIHandler) Summarize(c *fiber.Ctx) error {
	summary, err := h.aiService.Summarize(c.Context())
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}
	return pkg.SuccessResponse(c, fiber.Map{"summary": summary})
}
