package services

import (
	"time"

	"github.com/google/uuid"
	"github.com/tadbir/muamalat-core/internal/app/errors"
	"github.com/tadbir/muamalat-core/internal/app/models"
	"github.com/tadbir/muamalat-core/pkg/sharecode"
	"gorm.io/gorm"
)

type ShareLinkService struct {
	db *gorm.DB
}

func NewShareLinkService(db *gorm.DB) *ShareLinkService {
	return &ShareLinkService{
		db: db,
	}
}

// Issue returns the tracking code for a transaction, minting one on first
// call. Repeated calls return the same code, so a retried WhatsApp send
// never churns the link.
func (s *ShareLinkService) Issue(txnID string) (*models.ShareLink, error) {
	transactionUUID, err := uuid.Parse(txnID)
	if err != nil {
		return nil, errors.NewBadRequestError("Invalid transaction ID format")
	}

	var count int64
	if err := s.db.Model(&models.Transaction{}).Where("id = ?", transactionUUID).Count(&count).Error; err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to check transaction")
	}
	if count == 0 {
		return nil, errors.NewNotFoundError("Transaction not found")
	}

	var existing models.ShareLink
	err = s.db.Where("txn_id = ?", txnID).Order("created_at DESC").First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, errors.NewInternalServerError(err, "Failed to get share link")
	}

	link := &models.ShareLink{TxnID: txnID}
	for attempt := 0; attempt < 5; attempt++ {
		code, err := sharecode.Generate(sharecode.DefaultLength)
		if err != nil {
			return nil, errors.NewInternalServerError(err, "Failed to generate share code")
		}

		var taken int64
		if err := s.db.Model(&models.ShareLink{}).Where("code = ?", code).Count(&taken).Error; err != nil {
			return nil, errors.NewInternalServerError(err, "Failed to check share code")
		}
		if taken > 0 {
			continue
		}

		link.Code = code
		if err := s.db.Create(link).Error; err != nil {
			return nil, errors.NewInternalServerError(err, "Failed to create share link")
		}
		return link, nil
	}

	return nil, errors.NewConflictError("Could not generate a unique share code")
}

// Resolve returns the public tracking view for a code. Unknown codes,
// expired codes, and codes whose transaction was deleted all resolve to the
// same not-found outcome.
func (s *ShareLinkService) Resolve(code string) (*models.PublicTransactionView, error) {
	if !sharecode.Valid(code) {
		return nil, errors.NewNotFoundError("Invalid tracking link")
	}

	var link models.ShareLink
	err := s.db.Where("code = ?", code).First(&link).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("Invalid tracking link")
		}
		return nil, errors.NewInternalServerError(err, "Failed to get share link")
	}

	if link.ExpiresAt != nil && link.ExpiresAt.Before(time.Now()) {
		return nil, errors.NewNotFoundError("Invalid tracking link")
	}

	var transaction models.Transaction
	err = s.db.Where("id = ?", link.TxnID).First(&transaction).Error
	if err != nil {
		// Dangling codes resolve to not-found, never an internal error.
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("Transaction not found")
		}
		return nil, errors.NewInternalServerError(err, "Failed to get transaction")
	}

	return transaction.ToTrackingView(), nil
}
