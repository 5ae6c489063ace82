package models

import (
	"time"

	"github.com/google/uuid"
)

type Member struct {
	ID        uuid.UUID `json:"id" db:"id"`
	TontineID uuid.UUID `json:"tontine_id" db:"tontine_id"`
	Name      string    `json:"name" db:"name"`
	Phone     *string   `json:"phone" db:"phone"`
	Email     *string   `json:"email" db:"email"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type MemberCreateRequest struct {
	TontineID uuid.UUID `json:"tontine_id" binding:"required"`
	Name      string    `json:"name" binding:"required"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
}
