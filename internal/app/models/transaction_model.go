package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type TransactionStatus string

const (
	TransactionStatusNew             TransactionStatus = "new"
	TransactionStatusAwaitingQuote   TransactionStatus = "awaiting quote"
	TransactionStatusAwaitingPayment TransactionStatus = "awaiting payment"
	TransactionStatusAwaitingVisit   TransactionStatus = "awaiting ministry visit"
	TransactionStatusApproved        TransactionStatus = "approved"
	TransactionStatusRejected        TransactionStatus = "rejected"
	TransactionStatusClosed          TransactionStatus = "closed"
)

// TransactionStatuses is the closed set of valid lifecycle states.
var TransactionStatuses = []TransactionStatus{
	TransactionStatusNew,
	TransactionStatusAwaitingQuote,
	TransactionStatusAwaitingPayment,
	TransactionStatusAwaitingVisit,
	TransactionStatusApproved,
	TransactionStatusRejected,
	TransactionStatusClosed,
}

func (s TransactionStatus) Valid() bool {
	for _, status := range TransactionStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// CompletedStatuses are the terminal-success states counted by the daily
// report.
var CompletedStatuses = []TransactionStatus{
	TransactionStatusApproved,
	TransactionStatusClosed,
}

type TransactionOrigin string

const (
	TransactionOriginAdmin  TransactionOrigin = "admin"
	TransactionOriginClient TransactionOrigin = "client"
)

type Attachment struct {
	URL  string `json:"url"`
	Name string `json:"name"`
}

// Attachments is stored as a JSON-encoded text column.
type Attachments []Attachment

func (a Attachments) Value() (driver.Value, error) {
	if a == nil {
		return "[]", nil
	}
	bytes, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}
	return string(bytes), nil
}

func (a *Attachments) Scan(value interface{}) error {
	if value == nil {
		*a = Attachments{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("unsupported attachments column type %T", value)
	}

	if len(bytes) == 0 {
		*a = Attachments{}
		return nil
	}
	return json.Unmarshal(bytes, a)
}

type Transaction struct {
	ID          uuid.UUID         `json:"id" gorm:"type:uuid;primaryKey"`
	Number      string            `json:"number" gorm:"type:varchar(50);uniqueIndex;not null"`
	Client      string            `json:"client" gorm:"type:varchar(255);not null"`
	Phone       string            `json:"phone" gorm:"type:varchar(30);not null"`
	Service     string            `json:"service" gorm:"type:varchar(255);not null"`
	Status      TransactionStatus `json:"status" gorm:"type:varchar(30);not null"`
	Notes       string            `json:"notes" gorm:"type:text"`
	Quote       string            `json:"quote" gorm:"type:varchar(100)"`
	Payment     string            `json:"payment" gorm:"type:varchar(100)"`
	Origin      TransactionOrigin `json:"origin" gorm:"type:varchar(10);not null;default:'admin'"`
	Attachments Attachments       `json:"attachments" gorm:"type:text"`
	CreatedAt   time.Time         `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time         `json:"updated_at" gorm:"autoUpdateTime;index"`
}

// PublicView is the redacted projection exposed to unauthenticated lookups.
// The internal id never leaves the service.
type PublicTransactionView struct {
	Number    string            `json:"number"`
	Client    string            `json:"client,omitempty"`
	Service   string            `json:"service"`
	Status    TransactionStatus `json:"status"`
	Quote     string            `json:"quote"`
	Payment   string            `json:"payment"`
	Notes     string            `json:"notes"`
	CreatedAt *time.Time        `json:"created_at,omitempty"`
	UpdatedAt time.Time         `json:"updated_at"`
}

func (t *Transaction) ToPublicView() *PublicTransactionView {
	return &PublicTransactionView{
		Number:    t.Number,
		Service:   t.Service,
		Status:    t.Status,
		Quote:     t.Quote,
		Payment:   t.Payment,
		Notes:     t.Notes,
		UpdatedAt: t.UpdatedAt,
	}
}

// ToTrackingView includes the client name and creation time shown on the
// public tracking page.
func (t *Transaction) ToTrackingView() *PublicTransactionView {
	view := t.ToPublicView()
	view.Client = t.Client
	view.CreatedAt = &t.CreatedAt
	return view
}

type TransactionCreateRequest struct {
	Number      string      `json:"number" validate:"omitempty,max=50"`
	Client      string      `json:"client" validate:"required,max=255"`
	Phone       string      `json:"phone" validate:"required,max=30"`
	Service     string      `json:"service" validate:"required,max=255"`
	Notes       string      `json:"notes" validate:"omitempty"`
	Quote       string      `json:"quote" validate:"omitempty,max=100"`
	Payment     string      `json:"payment" validate:"omitempty,max=100"`
	Attachments Attachments `json:"attachments" validate:"omitempty"`
}

// TransactionUpdateRequest is the typed partial update: one optional slot per
// mutable field. Nil means "leave unchanged".
type TransactionUpdateRequest struct {
	Status      *TransactionStatus `json:"status,omitempty"`
	Notes       *string            `json:"notes,omitempty"`
	Quote       *string            `json:"quote,omitempty" validate:"omitempty,max=100"`
	Payment     *string            `json:"payment,omitempty" validate:"omitempty,max=100"`
	Client      *string            `json:"client,omitempty" validate:"omitempty,max=255"`
	Phone       *string            `json:"phone,omitempty" validate:"omitempty,max=30"`
	Service     *string            `json:"service,omitempty" validate:"omitempty,max=255"`
	Attachments *Attachments       `json:"attachments,omitempty"`
}

type ClientLookupRequest struct {
	Number string `json:"number" validate:"required"`
	Phone  string `json:"phone" validate:"required"`
}
