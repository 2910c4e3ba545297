package models

import "time"

type MessageType string

const (
	MessageTypeWhatsApp     MessageType = "whatsapp"
	MessageTypeWhatsAppBulk MessageType = "whatsapp_bulk"
)

type TemplateType string

const (
	TemplateTypeStatus   TemplateType = "status"
	TemplateTypePayment  TemplateType = "payment"
	TemplateTypeReminder TemplateType = "reminder"
)

func (t TemplateType) Valid() bool {
	return t == TemplateTypeStatus || t == TemplateTypePayment || t == TemplateTypeReminder
}

// MessageLogEntry is an append-only record of one rendered outbound message.
// TxnID is a weak reference and survives transaction deletion.
type MessageLogEntry struct {
	ID        uint        `json:"id" gorm:"primaryKey;autoIncrement"`
	TxnID     *string     `json:"txn_id" gorm:"type:varchar(36);index"`
	Phone     string      `json:"phone" gorm:"type:varchar(30);not null"`
	Message   string      `json:"message" gorm:"type:text;not null"`
	Type      MessageType `json:"type" gorm:"type:varchar(20);not null;default:'whatsapp'"`
	SentBy    string      `json:"sent_by" gorm:"type:varchar(100)"`
	CreatedAt time.Time   `json:"created_at" gorm:"autoCreateTime;index"`
}

type MessageRenderRequest struct {
	TemplateType TemplateType `json:"template_type" validate:"omitempty"`
}

type BulkMessageRequest struct {
	Status       TransactionStatus `json:"status" validate:"required"`
	TemplateType TemplateType      `json:"template_type" validate:"omitempty"`
}

// RenderedMessage is the outbound descriptor: final text plus the normalized
// wire phone. Delivery itself is external.
type RenderedMessage struct {
	TxnNumber string `json:"number"`
	Client    string `json:"client"`
	Phone     string `json:"phone"`
	Message   string `json:"message"`
	WaURL     string `json:"wa_url"`
}
