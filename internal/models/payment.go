package models

import (
	"time"

	"github.com/google/uuid"
)

// Payment Status Constants
const (
	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
	PaymentStatusFailed    = "failed"
)

// Payment Type Constants
const (
	PaymentTypeContribution = "contribution"
	PaymentTypePayout       = "payout"
)

type Payment struct {
	ID          uuid.UUID `json:"id" db:"id"`
	TontineID   uuid.UUID `json:"tontine_id" db:"tontine_id"`
	MemberID    uuid.UUID `json:"member_id" db:"member_id"`
	Type        string    `json:"type" db:"type"`
	Amount      float64   `json:"amount" db:"amount"`
	Method      string    `json:"method" db:"method"`
	Status      string    `json:"status" db:"status"`
	PaymentDate time.Time `json:"payment_date" db:"payment_date"`

	// Joined fields
	MemberName string `json:"member_name,omitempty"`
}

type PaymentCreateRequest struct {
	TontineID uuid.UUID `json:"tontine_id" binding:"required"`
	MemberID  uuid.UUID `json:"member_id" binding:"required"`
	Type      string    `json:"type" binding:"required,oneof=contribution payout"`
	Amount    float64   `json:"amount" binding:"required"`
	Method    string    `json:"method" binding:"required"`
	Status    string    `json:"status"`
}

type PaymentUpdateRequest struct {
	Status string `json:"status" binding:"required,oneof=pending completed failed"`
}
