package deliveries

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tadbir/muamalat-core/internal/app/models"
	"github.com/tadbir/muamalat-core/internal/app/pkg"
	"github.com/tadbir/muamalat-core/internal/app/services"
)

// ClientHandler serves the unauthenticated self-service endpoints.
type ClientHandler struct {
	transactionService *services.TransactionService
	clientService      *services.ClientService
}

func NewClientHandler(transactionService *services.TransactionService, clientService *services.ClientService) *ClientHandler {
	return &ClientHandler{
		transactionService: transactionService,
		clientService:      clientService,
	}
}

func (h *ClientHandler) RegisterRoutes(router fiber.Router) {
	clientGroup := router.Group("/client")

	clientGroup.Post("/lookup", h.Lookup)
	clientGroup.Post("/request", h.SubmitRequest)
	clientGroup.Post("/register", h.Register)
}

// Lookup matches a transaction by number AND phone and returns the redacted
// view. A miss on either field produces the same generic not-found.
func (h *ClientHandler) Lookup(c *fiber.Ctx) error {
	var req models.ClientLookupRequest
	if err := c.BodyParser(&req); err != nil {
		return pkg.ErrorResponse(c, err)
	}

	view, err := h.transactionService.Lookup(&req)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}
	return pkg.SuccessResponse(c, view)
}

// SubmitRequest creates a client-originated transaction. The status is
// forced to awaiting-quote and only the public number is returned.
func (h *ClientHandler) SubmitRequest(c *fiber.Ctx) error {
	var req models.TransactionCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return pkg.ErrorResponse(c, err)
	}
	req.Number = "" // client requests always get a generated REQ- number

	transaction, err := h.transactionService.Create(&req, models.TransactionOriginClient)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}
	return pkg.SuccessResponse(c, fiber.Map{"number": transaction.Number})
}

func (h *ClientHandler) Register(c *fiber.Ctx) error {
	var req models.ClientRegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return pkg.ErrorResponse(c, err)
	}

	client, err := h.clientService.Register(&req)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}
	return pkg.SuccessResponse(c, client)
}
