package models

import (
	"time"

	"github.com/google/uuid"
)

// Cycle is one collection round of a tontine. At most one open
// (closed=false) cycle exists per tontine; numbers are contiguous from 1.
type Cycle struct {
	ID        uuid.UUID `json:"id" db:"id"`
	TontineID uuid.UUID `json:"tontine_id" db:"tontine_id"`
	Number    int       `json:"number" db:"number"`
	Closed    bool      `json:"closed" db:"closed"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
