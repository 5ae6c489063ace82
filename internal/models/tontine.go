package models

import (
	"time"

	"github.com/google/uuid"
)

// Tontine Status Constants
const (
	TontineStatusActive     = "active"
	TontineStatusTerminated = "terminated"
)

// Contribution Frequency Constants
const (
	FrequencyDaily   = "daily"
	FrequencyWeekly  = "weekly"
	FrequencyMonthly = "monthly"
)

type Tontine struct {
	ID                    uuid.UUID `json:"id" db:"id"`
	Name                  string    `json:"name" db:"name"`
	Type                  *string   `json:"type" db:"type"`
	ContributionAmount    float64   `json:"contribution_amount" db:"contribution_amount"`
	ContributionFrequency string    `json:"contribution_frequency" db:"contribution_frequency"`
	ContributionDay       *string   `json:"contribution_day" db:"contribution_day"`
	DrawFrequency         *string   `json:"draw_frequency" db:"draw_frequency"`
	MemberTarget          int       `json:"member_target" db:"member_target"`
	Description           *string   `json:"description" db:"description"`
	Status                string    `json:"status" db:"status"`
	OwnerID               uuid.UUID `json:"owner_id" db:"owner_id"`
	CreatedAt             time.Time `json:"created_at" db:"created_at"`
}

type TontineCreateRequest struct {
	Name                  string  `json:"name" binding:"required"`
	Type                  string  `json:"type"`
	ContributionAmount    float64 `json:"contribution_amount" binding:"required"`
	ContributionFrequency string  `json:"contribution_frequency" binding:"required,oneof=daily weekly monthly"`
	ContributionDay       string  `json:"contribution_day"`
	DrawFrequency         string  `json:"draw_frequency"`
	MemberTarget          int     `json:"member_target" binding:"required"`
	Description           string  `json:"description"`
}

type TontineUpdateRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}
