package services

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tadbir/muamalat-core/internal/app/errors"
	"github.com/tadbir/muamalat-core/internal/app/models"
	"github.com/tadbir/muamalat-core/internal/app/pkg"
	"github.com/tadbir/muamalat-core/internal/infrastructures"
	"gorm.io/gorm"
)

// TransactionService is the lifecycle manager: every create, field-level
// update, and deletion goes through here so the audit trail and the
// notification feed stay in step with the records.
type TransactionService struct {
	db                  *gorm.DB
	validator           *infrastructures.Validator
	auditService        *AuditService
	notificationService *NotificationService
}

func NewTransactionService(
	db *gorm.DB,
	validator *infrastructures.Validator,
	auditService *AuditService,
	notificationService *NotificationService,
) *TransactionService {
	return &TransactionService{
		db:                  db,
		validator:           validator,
		auditService:        auditService,
		notificationService: notificationService,
	}
}

func (s *TransactionService) parseUUID(id string) (uuid.UUID, error) {
	parsedUUID, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, errors.NewBadRequestError("Invalid transaction ID format")
	}
	return parsedUUID, nil
}

// numberPrefix returns the reference prefix for an origin. Client-submitted
// requests are visibly distinct from admin-entered transactions.
func numberPrefix(origin models.TransactionOrigin) string {
	if origin == models.TransactionOriginClient {
		return "REQ"
	}
	return "TXN"
}

func (s *TransactionService) generateNumber(tx *gorm.DB, origin models.TransactionOrigin) (string, error) {
	prefix := numberPrefix(origin)
	number := fmt.Sprintf("%s-%d", prefix, time.Now().UnixMilli())

	for attempt := 0; attempt < 5; attempt++ {
		var count int64
		if err := tx.Model(&models.Transaction{}).Where("number = ?", number).Count(&count).Error; err != nil {
			return "", errors.NewInternalServerError(err, "Failed to generate transaction number")
		}
		if count == 0 {
			return number, nil
		}
		// A nanosecond retry would keep the colliding number as a prefix;
		// a random suffix keeps references visually distinct.
		number = fmt.Sprintf("%s-%d-%s", prefix, time.Now().UnixMilli(), pkg.RandomString(4))
	}

	return "", errors.NewConflictError("Could not generate a unique transaction number")
}

// Create persists a new transaction and appends a new_txn notification in
// the same database transaction. An explicit number that collides with an
// existing one is rejected; when absent a unique reference is generated.
func (s *TransactionService) Create(req *models.TransactionCreateRequest, origin models.TransactionOrigin) (*models.Transaction, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	if origin != models.TransactionOriginClient {
		origin = models.TransactionOriginAdmin
	}

	status := models.TransactionStatusNew
	if origin == models.TransactionOriginClient {
		// Client self-service requests always start by waiting for a quote.
		status = models.TransactionStatusAwaitingQuote
	}

	transaction := &models.Transaction{
		ID:          uuid.New(),
		Client:      req.Client,
		Phone:       req.Phone,
		Service:     req.Service,
		Status:      status,
		Notes:       req.Notes,
		Quote:       req.Quote,
		Payment:     req.Payment,
		Origin:      origin,
		Attachments: req.Attachments,
	}
	if transaction.Attachments == nil {
		transaction.Attachments = models.Attachments{}
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if req.Number != "" {
			var count int64
			if err := tx.Model(&models.Transaction{}).Where("number = ?", req.Number).Count(&count).Error; err != nil {
				return errors.NewInternalServerError(err, "Failed to check transaction number")
			}
			if count > 0 {
				return errors.NewConflictError("Transaction number already exists")
			}
			transaction.Number = req.Number
		} else {
			number, err := s.generateNumber(tx, origin)
			if err != nil {
				return err
			}
			transaction.Number = number
		}

		if err := tx.Create(transaction).Error; err != nil {
			return errors.NewInternalServerError(err, "Failed to create transaction")
		}

		txnID := transaction.ID.String()
		message := fmt.Sprintf("New transaction: %s - %s", transaction.Number, transaction.Client)
		return s.notificationService.Append(tx, models.NotificationTypeNewTxn, message, &txnID)
	})
	if err != nil {
		return nil, err
	}

	return transaction, nil
}

type fieldChange struct {
	field    string
	oldValue string
	newValue string
}

// collectChanges diffs the stored record against the provided slots. Only
// fields that are present and different produce a change.
func collectChanges(txn *models.Transaction, req *models.TransactionUpdateRequest) []fieldChange {
	var changes []fieldChange

	if req.Status != nil && *req.Status != txn.Status {
		changes = append(changes, fieldChange{"status", string(txn.Status), string(*req.Status)})
	}
	if req.Notes != nil && *req.Notes != txn.Notes {
		changes = append(changes, fieldChange{"notes", txn.Notes, *req.Notes})
	}
	if req.Quote != nil && *req.Quote != txn.Quote {
		changes = append(changes, fieldChange{"quote", txn.Quote, *req.Quote})
	}
	if req.Payment != nil && *req.Payment != txn.Payment {
		changes = append(changes, fieldChange{"payment", txn.Payment, *req.Payment})
	}
	if req.Client != nil && *req.Client != txn.Client {
		changes = append(changes, fieldChange{"client", txn.Client, *req.Client})
	}
	if req.Phone != nil && *req.Phone != txn.Phone {
		changes = append(changes, fieldChange{"phone", txn.Phone, *req.Phone})
	}
	if req.Service != nil && *req.Service != txn.Service {
		changes = append(changes, fieldChange{"service", txn.Service, *req.Service})
	}
	if req.Attachments != nil {
		oldJSON, _ := json.Marshal(txn.Attachments)
		newJSON, _ := json.Marshal(*req.Attachments)
		if string(oldJSON) != string(newJSON) {
			changes = append(changes, fieldChange{"attachments", string(oldJSON), string(newJSON)})
		}
	}

	return changes
}

// applyUpdates writes every provided slot onto the record, changed or not.
// Any update call counts as activity, so UpdatedAt is bumped regardless.
func applyUpdates(txn *models.Transaction, req *models.TransactionUpdateRequest) {
	if req.Status != nil {
		txn.Status = *req.Status
	}
	if req.Notes != nil {
		txn.Notes = *req.Notes
	}
	if req.Quote != nil {
		txn.Quote = *req.Quote
	}
	if req.Payment != nil {
		txn.Payment = *req.Payment
	}
	if req.Client != nil {
		txn.Client = *req.Client
	}
	if req.Phone != nil {
		txn.Phone = *req.Phone
	}
	if req.Service != nil {
		txn.Service = *req.Service
	}
	if req.Attachments != nil {
		// Attachments are replaced wholesale, never merged.
		txn.Attachments = *req.Attachments
	}
}

// Update diffs the stored record against the partial request, writes one
// audit entry per changed field, appends a status_change notification when
// the status moved, and persists the record. Audit entries and the record
// update commit as one unit: a reader never sees an updated record without
// its trail.
func (s *TransactionService) Update(id string, req *models.TransactionUpdateRequest, actorID string) (*models.Transaction, error) {
	transactionUUID, err := s.parseUUID(id)
	if err != nil {
		return nil, err
	}

	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}
	if req.Status != nil && !req.Status.Valid() {
		return nil, errors.NewBadRequestError(fmt.Sprintf("Invalid status %q", string(*req.Status)))
	}

	var transaction models.Transaction
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", transactionUUID).First(&transaction).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return errors.NewNotFoundError("Transaction not found")
			}
			return errors.NewInternalServerError(err, "Failed to get transaction")
		}

		changes := collectChanges(&transaction, req)
		statusChanged := false
		for _, change := range changes {
			if err := s.auditService.LogFieldChange(tx, id, change.field, change.oldValue, change.newValue, actorID); err != nil {
				return err
			}
			if change.field == "status" {
				statusChanged = true
			}
		}

		applyUpdates(&transaction, req)
		if err := tx.Save(&transaction).Error; err != nil {
			return errors.NewInternalServerError(err, "Failed to update transaction")
		}

		if statusChanged {
			message := fmt.Sprintf("Transaction %s status updated to: %s", transaction.Number, transaction.Status)
			return s.notificationService.Append(tx, models.NotificationTypeStatusChange, message, &id)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &transaction, nil
}

// Delete hard-deletes a transaction after writing a terminal audit entry
// holding its full snapshot. Deleting a missing id is a no-op so retries
// never error.
func (s *TransactionService) Delete(id string, actorID string) error {
	transactionUUID, err := s.parseUUID(id)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		var transaction models.Transaction
		if err := tx.Where("id = ?", transactionUUID).First(&transaction).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil
			}
			return errors.NewInternalServerError(err, "Failed to get transaction")
		}

		snapshot, err := json.Marshal(&transaction)
		if err != nil {
			return errors.NewInternalServerError(err, "Failed to snapshot transaction")
		}

		if err := s.auditService.LogDeletion(tx, id, string(snapshot), actorID); err != nil {
			return err
		}

		if err := tx.Delete(&transaction).Error; err != nil {
			return errors.NewInternalServerError(err, "Failed to delete transaction")
		}
		return nil
	})
}

func (s *TransactionService) GetByID(id string) (*models.Transaction, error) {
	transactionUUID, err := s.parseUUID(id)
	if err != nil {
		return nil, err
	}

	var transaction models.Transaction
	err = s.db.Where("id = ?", transactionUUID).First(&transaction).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("Transaction not found")
		}
		return nil, errors.NewInternalServerError(err, "Failed to get transaction")
	}

	return &transaction, nil
}

// Lookup is the public self-service path: exact match on number AND phone,
// returning a redacted view. The error never says which field was wrong.
func (s *TransactionService) Lookup(req *models.ClientLookupRequest) (*models.PublicTransactionView, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	var transaction models.Transaction
	err := s.db.Where("number = ? AND phone = ?", req.Number, req.Phone).First(&transaction).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("No matching transaction found")
		}
		return nil, errors.NewInternalServerError(err, "Failed to look up transaction")
	}

	return transaction.ToPublicView(), nil
}

// Search filters by case-insensitive substring over number, client, and
// service, AND exact status. Results are always most-recently-touched first;
// the UI relies on that ordering.
func (s *TransactionService) Search(query string, statusFilter models.TransactionStatus) ([]models.Transaction, error) {
	q := s.db.Order("updated_at DESC")

	if query != "" {
		pattern := "%" + strings.ToLower(query) + "%"
		q = q.Where(
			"LOWER(number) LIKE ? OR LOWER(client) LIKE ? OR LOWER(service) LIKE ?",
			pattern, pattern, pattern,
		)
	}
	if statusFilter != "" {
		q = q.Where("status = ?", statusFilter)
	}

	var transactions []models.Transaction
	if err := q.Find(&transactions).Error; err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to search transactions")
	}
	return transactions, nil
}

func (s *TransactionService) GetByStatus(status models.TransactionStatus) ([]models.Transaction, error) {
	var transactions []models.Transaction
	err := s.db.Where("status = ?", status).
		Order("updated_at DESC").
		Find(&transactions).Error
	if err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to get transactions")
	}
	return transactions, nil
}
