package models

import "time"

// ShareLink maps a public short code to a transaction id. ExpiresAt is
// checked on resolve when set; issuance leaves it nil.
type ShareLink struct {
	ID        uint       `json:"id" gorm:"primaryKey;autoIncrement"`
	Code      string     `json:"code" gorm:"type:varchar(12);uniqueIndex;not null"`
	TxnID     string     `json:"txn_id" gorm:"type:varchar(36);not null;index"`
	CreatedAt time.Time  `json:"created_at" gorm:"autoCreateTime"`
	ExpiresAt *time.Time `json:"expires_at"`
}

type ShareLinkResponse struct {
	Code string `json:"code"`
	Link string `json:"link"`
}
