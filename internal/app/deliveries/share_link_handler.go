package deliveries

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/tadbir/muamalat-core/internal/app/middlewares"
	"github.com/tadbir/muamalat-core/internal/app/models"
	"github.com/tadbir/muamalat-core/internal/app/pkg"
	"github.com/tadbir/muamalat-core/internal/app/services"
)

type ShareLinkHandler struct {
	shareLinkService *services.ShareLinkService
	authMiddleware   *middlewares.AuthMiddleware
}

func NewShareLinkHandler(shareLinkService *services.ShareLinkService, authMiddleware *middlewares.AuthMiddleware) *ShareLinkHandler {
	return &ShareLinkHandler{
		shareLinkService: shareLinkService,
		authMiddleware:   authMiddleware,
	}
}

func (h *ShareLinkHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/txns/:id/share-link", h.authMiddleware.Auth, h.IssueShareLink)
	router.Get("/track/:code", h.Track)
}

func (h *ShareLinkHandler) IssueShareLink(c *fiber.Ctx) error {
	link, err := h.shareLinkService.Issue(c.Params("id"))
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, models.ShareLinkResponse{
		Code: link.Code,
		Link: fmt.Sprintf("/track/%s", link.Code),
	})
}

// Track is the public read-only status page behind a share code.
func (h *ShareLinkHandler) Track(c *fiber.Ctx) error {
	view, err := h.shareLinkService.Resolve(c.Params("code"))
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}
	return pkg.SuccessResponse(c, view)
}
