package models

import (
	"time"

	"github.com/google/uuid"
)

type Draw struct {
	ID        uuid.UUID `json:"id" db:"id"`
	TontineID uuid.UUID `json:"tontine_id" db:"tontine_id"`
	MemberID  uuid.UUID `json:"member_id" db:"member_id"`
	CycleID   uuid.UUID `json:"cycle_id" db:"cycle_id"`
	AmountWon float64   `json:"amount_won" db:"amount_won"`
	DrawnAt   time.Time `json:"drawn_at" db:"drawn_at"`

	// Joined fields
	MemberName string `json:"member_name,omitempty"`
}

// DrawResult is the enriched response returned after a successful draw.
type DrawResult struct {
	Draw              Draw   `json:"draw"`
	WinnerName        string `json:"winner_name"`
	CycleNumber       int    `json:"cycle_number"`
	TontineTerminated bool   `json:"tontine_terminated"`
}
