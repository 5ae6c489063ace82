package models

import (
	"time"

	"github.com/google/uuid"
)

type Contribution struct {
	ID               uuid.UUID `json:"id" db:"id"`
	TontineID        uuid.UUID `json:"tontine_id" db:"tontine_id"`
	MemberID         uuid.UUID `json:"member_id" db:"member_id"`
	CycleID          uuid.UUID `json:"cycle_id" db:"cycle_id"`
	Amount           float64   `json:"amount" db:"amount"`
	ContributionDate time.Time `json:"contribution_date" db:"contribution_date"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`

	// Joined fields
	MemberName  string `json:"member_name,omitempty"`
	CycleNumber int    `json:"cycle_number,omitempty"`
}

type ContributionCreateRequest struct {
	TontineID        uuid.UUID `json:"tontine_id" binding:"required"`
	MemberID         uuid.UUID `json:"member_id" binding:"required"`
	ContributionDate string    `json:"contribution_date"`
}

// ContributionStatus reports whether the active cycle is ready for a draw.
type ContributionStatus struct {
	Ready          bool     `json:"ready"`
	CycleNumber    int      `json:"cycle_number"`
	Contributors   int      `json:"contributors"`
	MemberCount    int      `json:"member_count"`
	MissingMembers []string `json:"missing_members"`
	Message        string   `json:"message"`
}
