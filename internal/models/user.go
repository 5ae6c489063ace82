package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	PlanFree    = "Free"
	PlanPremium = "Premium"

	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID            uuid.UUID  `json:"id" db:"id"`
	Email         string     `json:"email" db:"email"`
	PasswordHash  string     `json:"-" db:"password_hash"`
	FullName      string     `json:"full_name" db:"full_name"`
	Role          string     `json:"role" db:"role"`
	Plan          string     `json:"plan" db:"plan"`
	PaymentStatus string     `json:"payment_status" db:"payment_status"`
	Expiration    *time.Time `json:"expiration" db:"expiration"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at" db:"updated_at"`
}

type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Role      string    `json:"role"`
	Plan      string    `json:"plan"`
	CreatedAt time.Time `json:"created_at"`
}

type UserCreateRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	FullName string `json:"full_name" binding:"required"`
}

type UserLoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UserUpdateRequest struct {
	FullName string `json:"full_name" binding:"required"`
}

type UpgradeRequest struct {
	Plan string `json:"plan" binding:"required,oneof=Free Premium"`
}
