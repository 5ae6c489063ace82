package models

import (
	"time"

	"github.com/google/uuid"
)

type OTPCode struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	Code      string    `json:"-" db:"code"`
	Used      bool      `json:"used" db:"used"`
	ExpiresAt time.Time `json:"expires_at" db:"expires_at"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type Init2FARequest struct {
	UserID uuid.UUID `json:"user_id" binding:"required"`
}

type Verify2FARequest struct {
	UserID uuid.UUID `json:"user_id" binding:"required"`
	Code   string    `json:"code" binding:"required,len=6"`
}

type AdminSettingsUpdateRequest struct {
	TwoFA            bool     `json:"two_fa"`
	EmailContact     *string  `json:"email_contact"`
	PremiumPlanPrice *float64 `json:"premium_plan_price"`
}

// AdminSettings is the latest configuration row for an admin account.
type AdminSettings struct {
	ID               uuid.UUID `json:"id" db:"id"`
	AdminID          uuid.UUID `json:"admin_id" db:"admin_id"`
	TwoFA            bool      `json:"two_fa" db:"two_fa"`
	EmailContact     *string   `json:"email_contact" db:"email_contact"`
	PremiumPlanPrice *float64  `json:"premium_plan_price" db:"premium_plan_price"`
	UpdatedAt        time.Time `json:"updated_at" db:"updated_at"`
}
