package services

import (
	"github.com/tadbir/muamalat-core/internal/app/errors"
	"github.com/tadbir/muamalat-core/internal/app/models"
	"gorm.io/gorm"
)

// notificationFeedLimit caps the notification feed.
const notificationFeedLimit = 50

type NotificationService struct {
	db *gorm.DB
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{
		db: db,
	}
}

// Append adds one entry to the feed. tx may be the caller's transaction
// handle when the notification must commit with a lifecycle mutation.
func (s *NotificationService) Append(tx *gorm.DB, notificationType models.NotificationType, message string, txnID *string) error {
	if tx == nil {
		tx = s.db
	}

	notification := &models.Notification{
		Type:    notificationType,
		Message: message,
		TxnID:   txnID,
	}

	if err := tx.Create(notification).Error; err != nil {
		return errors.NewInternalServerError(err, "Failed to create notification")
	}
	return nil
}

// List returns at most the 50 most recent entries, newest first.
func (s *NotificationService) List(unreadOnly bool) ([]models.Notification, error) {
	query := s.db.Order("created_at DESC").Order("id DESC").Limit(notificationFeedLimit)
	if unreadOnly {
		query = query.Where("is_read = ?", false)
	}

	var notifications []models.Notification
	if err := query.Find(&notifications).Error; err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to get notifications")
	}
	return notifications, nil
}

func (s *NotificationService) UnreadCount() (int64, error) {
	var count int64
	err := s.db.Model(&models.Notification{}).Where("is_read = ?", false).Count(&count).Error
	if err != nil {
		return 0, errors.NewInternalServerError(err, "Failed to count notifications")
	}
	return count, nil
}

// MarkRead flags one entry as read. Unknown ids and already-read entries are
// no-ops.
func (s *NotificationService) MarkRead(id uint) error {
	err := s.db.Model(&models.Notification{}).
		Where("id = ?", id).
		Update("is_read", true).Error
	if err != nil {
		return errors.NewInternalServerError(err, "Failed to mark notification read")
	}
	return nil
}

// MarkAllRead flags every unread entry in a single statement, so a
// concurrent append lands wholly read or wholly unread.
func (s *NotificationService) MarkAllRead() error {
	err := s.db.Model(&models.Notification{}).
		Where("is_read = ?", false).
		Update("is_read", true).Error
	if err != nil {
		return errors.NewInternalServerError(err, "Failed to mark notifications read")
	}
	return nil
}
