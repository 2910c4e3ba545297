package models

import "github.com/shopspring/decimal"

type ServiceCount struct {
	Service string `json:"service"`
	Count   int64  `json:"count"`
}

// Stats is the all-time dashboard summary.
type Stats struct {
	Total       int64                       `json:"total"`
	RecentWeek  int64                       `json:"recent_week"`
	ByStatus    map[TransactionStatus]int64 `json:"by_status"`
	TopServices []ServiceCount              `json:"top_services"`
}

// DailyReport summarizes activity for one calendar day. ByStatus covers all
// transactions, not just that day's.
type DailyReport struct {
	Date           string                      `json:"date"`
	NewCount       int64                       `json:"new_count"`
	UpdatedCount   int64                       `json:"updated_count"`
	CompletedCount int64                       `json:"completed_count"`
	MessagesCount  int64                       `json:"messages_count"`
	QuotedTotal    decimal.Decimal             `json:"quoted_total"`
	ByStatus       map[TransactionStatus]int64 `json:"by_status"`
	Transactions   []Transaction               `json:"transactions"`
}
