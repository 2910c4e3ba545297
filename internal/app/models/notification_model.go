package models

import "time"

type NotificationType string

const (
	NotificationTypeNewTxn       NotificationType = "new_txn"
	NotificationTypeStatusChange NotificationType = "status_change"
)

// Notification is an append-only event record. Only the read flag is ever
// mutated after creation.
type Notification struct {
	ID        uint             `json:"id" gorm:"primaryKey;autoIncrement"`
	Type      NotificationType `json:"type" gorm:"type:varchar(20);not null"`
	Message   string           `json:"message" gorm:"type:text;not null"`
	TxnID     *string          `json:"txn_id" gorm:"type:varchar(36);index"`
	IsRead    bool             `json:"is_read" gorm:"not null;default:false"`
	CreatedAt time.Time        `json:"created_at" gorm:"autoCreateTime;index"`
}
