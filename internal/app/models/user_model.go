package models

import "time"

type UserRole string

const (
	UserRoleAdmin    UserRole = "admin"
	UserRoleEmployee UserRole = "employee"
)

type User struct {
	ID        uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	Username  string    `json:"username" gorm:"type:varchar(100);uniqueIndex;not null"`
	Password  string    `json:"-" gorm:"type:varchar(100);not null"`
	Role      UserRole  `json:"role" gorm:"type:varchar(10);not null;default:'employee'"`
	FullName  string    `json:"full_name" gorm:"type:varchar(255)"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

type UserCreateRequest struct {
	Username string   `json:"username" validate:"required,max=100"`
	Password string   `json:"password" validate:"required,min=4"`
	Role     UserRole `json:"role" validate:"omitempty,oneof=admin employee"`
	FullName string   `json:"full_name" validate:"omitempty,max=255"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}
