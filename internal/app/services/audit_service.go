package services

import (
	"github.com/tadbir/muamalat-core/internal/app/errors"
	"github.com/tadbir/muamalat-core/internal/app/models"
	"gorm.io/gorm"
)

// recentAuditLimit caps the global audit feed.
const recentAuditLimit = 100

type AuditService struct {
	db *gorm.DB
}

func NewAuditService(db *gorm.DB) *AuditService {
	return &AuditService{
		db: db,
	}
}

// LogFieldChange writes one audit entry for a single changed field. The
// caller passes its transaction handle so the entry commits atomically with
// the record update it describes.
func (s *AuditService) LogFieldChange(tx *gorm.DB, txnID, field, oldValue, newValue, userID string) error {
	if userID == "" {
		userID = "system"
	}

	entry := &models.AuditLogEntry{
		TxnID:    txnID,
		Action:   models.AuditActionUpdate,
		Field:    &field,
		OldValue: &oldValue,
		NewValue: &newValue,
		UserID:   userID,
	}

	if err := tx.Create(entry).Error; err != nil {
		return errors.NewInternalServerError(err, "Failed to create audit log")
	}
	return nil
}

// LogDeletion writes the terminal audit entry for a deleted transaction.
// OldValue holds the full serialized snapshot; NewValue stays null.
func (s *AuditService) LogDeletion(tx *gorm.DB, txnID, snapshot, userID string) error {
	if userID == "" {
		userID = "system"
	}

	entry := &models.AuditLogEntry{
		TxnID:    txnID,
		Action:   models.AuditActionDelete,
		OldValue: &snapshot,
		UserID:   userID,
	}

	if err := tx.Create(entry).Error; err != nil {
		return errors.NewInternalServerError(err, "Failed to create audit log")
	}
	return nil
}

// GetByTxn returns the audit trail of one transaction, newest first. The
// trail survives deletion of the transaction itself.
func (s *AuditService) GetByTxn(txnID string) ([]models.AuditLogEntry, error) {
	var entries []models.AuditLogEntry
	err := s.db.Where("txn_id = ?", txnID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&entries).Error
	if err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to get audit log")
	}
	return entries, nil
}

// GetRecent returns the most recent entries across all transactions.
func (s *AuditService) GetRecent() ([]models.AuditLogEntry, error) {
	var entries []models.AuditLogEntry
	err := s.db.Order("created_at DESC").
		Order("id DESC").
		Limit(recentAuditLimit).
		Find(&entries).Error
	if err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to get audit log")
	}
	return entries, nil
}
