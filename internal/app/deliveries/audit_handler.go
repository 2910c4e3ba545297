package deliveries

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tadbir/muamalat-core/internal/app/middlewares"
	"github.com/tadbir/muamalat-core/internal/app/pkg"
	"github.com/tadbir/muamalat-core/internal/app/services"
)

type AuditHandler struct {
	auditService   *services.AuditService
	authMiddleware *middlewares.AuthMiddleware
}

func NewAuditHandler(auditService *services.AuditService, authMiddleware *middlewares.AuthMiddleware) *AuditHandler {
	return &AuditHandler{
		auditService:   auditService,
		authMiddleware: authMiddleware,
	}
}

func (h *AuditHandler) RegisterRoutes(router fiber.Router) {
	auditGroup := router.Group("/audit", h.authMiddleware.Auth)

	auditGroup.Get("/", h.GetRecent)
	auditGroup.Get("/:txnId", h.GetByTxn)
}

func (h *AuditHandler) GetRecent(c *fiber.Ctx) error {
	entries, err := h.auditService.GetRecent()
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}
	return pkg.SuccessResponse(c, entries)
}

func (h *AuditHandler) GetByTxn(c *fiber.Ctx) error {
	entries, err := h.auditService.GetByTxn(c.Params("txnId"))
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}
	return pkg.SuccessResponse(c, entries)
}
