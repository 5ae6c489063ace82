package models

import (
	"time"

	"github.com/google/uuid"
)

// Alert Type Constants
const (
	AlertTypeLate          = "late_contribution"
	AlertTypeDrawAvailable = "draw_available"
)

// Alert Urgency Constants
const (
	UrgencyLow    = "low"
	UrgencyMedium = "medium"
	UrgencyHigh   = "high"
)

type Alert struct {
	ID        uuid.UUID  `json:"id" db:"id"`
	UserID    uuid.UUID  `json:"user_id" db:"user_id"`
	TontineID *uuid.UUID `json:"tontine_id" db:"tontine_id"`
	Type      string     `json:"type" db:"type"`
	Message   string     `json:"message" db:"message"`
	Urgency   string     `json:"urgency" db:"urgency"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
}

type AdminAlert struct {
	ID        uuid.UUID  `json:"id" db:"id"`
	Type      string     `json:"type" db:"type"`
	Message   string     `json:"message" db:"message"`
	UserID    *uuid.UUID `json:"user_id" db:"user_id"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
}
