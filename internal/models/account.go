package models

import (
	"time"

	"github.com/google/uuid"
)

type Account struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	Type      string    `json:"type" db:"type"`
	Balance   float64   `json:"balance" db:"balance"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type AccountCreateRequest struct {
	Type    string  `json:"type" binding:"required"`
	Balance float64 `json:"balance"`
}

type AccountUpdateRequest struct {
	Balance float64 `json:"balance"`
}

type Revenue struct {
	ID          uuid.UUID `json:"id" db:"id"`
	UserID      uuid.UUID `json:"user_id" db:"user_id"`
	Source      string    `json:"source" db:"source"`
	Amount      float64   `json:"amount" db:"amount"`
	Method      string    `json:"method" db:"method"`
	Status      string    `json:"status" db:"status"`
	Description *string   `json:"description" db:"description"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

type RevenueCreateRequest struct {
	Source      string  `json:"source" binding:"required"`
	Amount      float64 `json:"amount" binding:"required"`
	Method      string  `json:"method"`
	Status      string  `json:"status"`
	Description string  `json:"description"`
}
