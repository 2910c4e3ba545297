package models

import "time"

// AuditAction represents the type of action being audited
type AuditAction string

const (
	AuditActionUpdate AuditAction = "update"
	AuditActionDelete AuditAction = "delete"
)

// AuditLogEntry records one field change, or a full snapshot on deletion.
// TxnID is a weak reference: entries survive deletion of their transaction.
type AuditLogEntry struct {
	ID        uint        `json:"id" gorm:"primaryKey;autoIncrement"`
	TxnID     string      `json:"txn_id" gorm:"type:varchar(36);not null;index"`
	Action    AuditAction `json:"action" gorm:"type:varchar(10);not null"`
	Field     *string     `json:"field" gorm:"type:varchar(30)"`
	OldValue  *string     `json:"old_value" gorm:"type:text"`
	NewValue  *string     `json:"new_value" gorm:"type:text"`
	UserID    string      `json:"user_id" gorm:"type:varchar(100);not null;default:'system'"`
	CreatedAt time.Time   `json:"created_at" gorm:"autoCreateTime;index"`
}
