package models

import "time"

// Client is a self-registered portal visitor, keyed by phone.
type Client struct {
	ID        uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	Name      string    `json:"name" gorm:"type:varchar(255);not null"`
	Phone     string    `json:"phone" gorm:"type:varchar(30);uniqueIndex;not null"`
	Email     string    `json:"email" gorm:"type:varchar(255)"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

type ClientRegisterRequest struct {
	Name  string `json:"name" validate:"required,max=255"`
	Phone string `json:"phone" validate:"required,max=30"`
	Email string `json:"email" validate:"omitempty,email"`
}
