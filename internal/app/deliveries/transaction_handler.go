package deliveries

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tadbir/muamalat-core/internal/app/middlewares"
	"github.com/tadbir/muamalat-core/internal/app/models"
	"github.com/tadbir/muamalat-core/internal/app/pkg"
	"github.com/tadbir/muamalat-core/internal/app/services"
)

type TransactionHandler struct {
	transactionService *services.TransactionService
	authMiddleware     *middlewares.AuthMiddleware
}

func NewTransactionHandler(transactionService *services.TransactionService, authMiddleware *middlewares.AuthMiddleware) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
		authMiddleware:     authMiddleware,
	}
}

func (h *TransactionHandler) RegisterRoutes(router fiber.Router) {
	txnGroup := router.Group("/txns", h.authMiddleware.Auth)

	txnGroup.Get("/", h.SearchTransactions)
	txnGroup.Post("/", h.CreateTransaction)
	txnGroup.Get("/:id", h.GetTransaction)
	txnGroup.Put("/:id", h.UpdateTransaction)
	txnGroup.Delete("/:id", h.DeleteTransaction)
}

func (h *TransactionHandler) SearchTransactions(c *fiber.Ctx) error {
	query := c.Query("q")
	status := models.TransactionStatus(c.Query("status"))

	transactions, err := h.transactionService.Search(query, status)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}
	return pkg.SuccessResponse(c, transactions)
}

func (h *TransactionHandler) CreateTransaction(c *fiber.Ctx) error {
	var req models.TransactionCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return pkg.ErrorResponse(c, err)
	}

	transaction, err := h.transactionService.Create(&req, models.TransactionOriginAdmin)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}
	return pkg.SuccessResponse(c, transaction)
}

func (h *TransactionHandler) GetTransaction(c *fiber.Ctx) error {
	transaction, err := h.transactionService.GetByID(c.Params("id"))
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}
	return pkg.SuccessResponse(c, transaction)
}

func (h *TransactionHandler) UpdateTransaction(c *fiber.Ctx) error {
	var req models.TransactionUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return pkg.ErrorResponse(c, err)
	}

	transaction, err := h.transactionService.Update(c.Params("id"), &req, middlewares.ActorID(c))
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}
	return pkg.SuccessResponse(c, transaction)
}

func (h *TransactionHandler) DeleteTransaction(c *fiber.Ctx) error {
	if err := h.transactionService.Delete(c.Params("id"), middlewares.ActorID(c)); err != nil {
		return pkg.ErrorResponse(c, err)
	}
	return pkg.SuccessResponse[any](c, nil)
}
