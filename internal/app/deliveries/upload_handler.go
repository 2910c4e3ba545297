package deliveries

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/tadbir/muamalat-core/internal/app/errors"
	"github.com/tadbir/muamalat-core/internal/app/middlewares"
	"github.com/tadbir/muamalat-core/internal/app/pkg"
	"github.com/tadbir/muamalat-core/internal/infrastructures"
)

// maxUploadSize caps attachment uploads at 10 MB.
const maxUploadSize = 10 * 1024 * 1024

type UploadHandler struct {
	authMiddleware *middlewares.AuthMiddleware
}

func NewUploadHandler(authMiddleware *middlewares.AuthMiddleware) *UploadHandler {
	return &UploadHandler{
		authMiddleware: authMiddleware,
	}
}

func (h *UploadHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/upload", h.authMiddleware.Auth, h.Upload)
}

func (h *UploadHandler) Upload(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return pkg.ErrorResponse(c, errors.NewBadRequestError("No file provided"))
	}
	if file.Size > maxUploadSize {
		return pkg.ErrorResponse(c, errors.NewBadRequestError("File exceeds the 10 MB limit"))
	}

	uploadDir := infrastructures.Config.UPLOAD_DIR
	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		return pkg.ErrorResponse(c, errors.NewInternalServerError(err, "Failed to prepare upload directory"))
	}

	ext := filepath.Ext(file.Filename)
	name := fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), pkg.RandomString(8), ext)
	if err := c.SaveFile(file, filepath.Join(uploadDir, name)); err != nil {
		return pkg.ErrorResponse(c, errors.NewInternalServerError(err, "Failed to save file"))
	}

	return pkg.SuccessResponse(c, fiber.Map{
		"url":  "/uploads/" + name,
		"name": file.Filename,
	})
}
