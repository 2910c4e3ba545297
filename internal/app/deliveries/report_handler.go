package deliveries

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tadbir/muamalat-core/internal/app/middlewares"
	"github.com/tadbir/muamalat-core/internal/app/pkg"
	"github.com/tadbir/muamalat-core/internal/app/services"
)

type ReportHandler struct {
	reportService  *services.ReportService
	exportService  *services.ExportService
	authMiddleware *middlewares.AuthMiddleware
}

func NewReportHandler(reportService *services.ReportService, exportService *services.ExportService, authMiddleware *middlewares.AuthMiddleware) *ReportHandler {
	return &ReportHandler{
		reportService:  reportService,
		exportService:  exportService,
		authMiddleware: authMiddleware,
	}
}

func (h *ReportHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/stats", h.authMiddleware.Auth, h.GetStats)
	router.Get("/reports/daily", h.authMiddleware.Auth, h.GetDailyReport)
	router.Get("/export/csv", h.authMiddleware.Auth, h.ExportCSV)
}

func (h *ReportHandler) GetStats(c *fiber.Ctx) error {
	stats, err := h.reportService.Stats()
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}
	return pkg.SuccessResponse(c, stats)
}

func (h *ReportHandler) GetDailyReport(c *fiber.Ctx) error {
	report, err := h.reportService.Daily(c.Query("date"))
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}
	return pkg.SuccessResponse(c, report)
}

func (h *ReportHandler) ExportCSV(c *fiber.Ctx) error {
	csv, err := h.exportService.CSV()
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	c.Set("Content-Type", "text/csv; charset=utf-8")
	c.Set("Content-Disposition", "attachment; filename=transactions.csv")
	return c.Send(csv)
}
