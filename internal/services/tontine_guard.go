package services

import (
	"database/sql"
	"fmt"

	"github.com/ASS429/ma-tontine-backend/internal/models"

	"github.com/google/uuid"
)

// loadOwnedTontine fetches a tontine and verifies ownership. It returns
// NOT_FOUND when the tontine does not exist and FORBIDDEN when it belongs to
// another user. With forUpdate set the row is locked for the duration of the
// surrounding transaction, serializing cycle and draw mutations per tontine.
func loadOwnedTontine(q querier, tontineID, ownerID uuid.UUID, forUpdate bool) (*models.Tontine, error) {
	query := `
		SELECT id, name, type, contribution_amount, contribution_frequency,
		       contribution_day, draw_frequency, member_target, description,
		       status, owner_id, created_at
		FROM tontines
		WHERE id = $1`
	if forUpdate {
		query += " FOR UPDATE"
	}

	var t models.Tontine
	err := q.QueryRow(query, tontineID).Scan(
		&t.ID, &t.Name, &t.Type, &t.ContributionAmount, &t.ContributionFrequency,
		&t.ContributionDay, &t.DrawFrequency, &t.MemberTarget, &t.Description,
		&t.Status, &t.OwnerID, &t.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, NewDomainError(KindNotFound, "tontine not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load tontine: %v", err)
	}

	if t.OwnerID != ownerID {
		return nil, NewDomainError(KindForbidden, "you do not own this tontine")
	}
	return &t, nil
}
