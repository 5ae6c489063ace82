package services

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/ASS429/ma-tontine-backend/internal/models"

	"github.com/google/uuid"
)

// ContributionService records member payments into the active cycle and
// reports draw readiness.
type ContributionService struct {
	db     *sql.DB
	cycles *CycleService
}

func NewContributionService(db *sql.DB) *ContributionService {
	return &ContributionService{
		db:     db,
		cycles: NewCycleService(db),
	}
}

// Record inserts a contribution for a member into the currently open cycle,
// creating cycle #1 first when none is open. The amount is always the
// tontine's configured contribution amount. A second contribution for the
// same (member, cycle) pair fails with DUPLICATE_CONTRIBUTION.
func (s *ContributionService) Record(ownerID uuid.UUID, req models.ContributionCreateRequest) (*models.Contribution, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %v", err)
	}
	defer tx.Rollback()

	tontine, err := loadOwnedTontine(tx, req.TontineID, ownerID, true)
	if err != nil {
		return nil, err
	}

	// The member must belong to this tontine.
	var memberExists bool
	err = tx.QueryRow(`
		SELECT EXISTS (SELECT 1 FROM members WHERE id = $1 AND tontine_id = $2)
	`, req.MemberID, req.TontineID).Scan(&memberExists)
	if err != nil {
		return nil, fmt.Errorf("failed to check member: %v", err)
	}
	if !memberExists {
		return nil, NewDomainError(KindNotFound, "member not found in this tontine")
	}

	cycle, err := s.cycles.GetOrCreateActiveCycle(tx, req.TontineID)
	if err != nil {
		return nil, err
	}

	contributionDate := time.Now()
	if req.ContributionDate != "" {
		parsed, perr := time.Parse("2006-01-02", req.ContributionDate)
		if perr != nil {
			return nil, NewDomainError(KindValidation, "contribution_date must be YYYY-MM-DD")
		}
		contributionDate = parsed
	}

	var contribution models.Contribution
	err = tx.QueryRow(`
		INSERT INTO contributions (tontine_id, member_id, cycle_id, amount, contribution_date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, tontine_id, member_id, cycle_id, amount, contribution_date, created_at
	`, req.TontineID, req.MemberID, cycle.ID, tontine.ContributionAmount, contributionDate).Scan(
		&contribution.ID, &contribution.TontineID, &contribution.MemberID,
		&contribution.CycleID, &contribution.Amount, &contribution.ContributionDate,
		&contribution.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, NewDomainError(KindDuplicateContribution, "this member already contributed for this cycle")
		}
		return nil, fmt.Errorf("failed to insert contribution: %v", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit contribution: %v", err)
	}

	contribution.CycleNumber = cycle.Number
	return &contribution, nil
}

// Status reports whether the active cycle has collected from every member.
func (s *ContributionService) Status(ownerID, tontineID uuid.UUID) (*models.ContributionStatus, error) {
	if _, err := loadOwnedTontine(s.db, tontineID, ownerID, false); err != nil {
		return nil, err
	}

	cycle, err := s.cycles.ActiveCycle(s.db, tontineID)
	if err != nil {
		return nil, err
	}
	if cycle == nil {
		return &models.ContributionStatus{
			Ready:   false,
			Message: "no active cycle",
		}, nil
	}

	missing, err := s.missingMembers(s.db, tontineID, cycle.ID)
	if err != nil {
		return nil, err
	}

	var memberCount int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM members WHERE tontine_id = $1`, tontineID).Scan(&memberCount); err != nil {
		return nil, fmt.Errorf("failed to count members: %v", err)
	}

	return BuildStatus(cycle.Number, memberCount, missing), nil
}

// ListByTontine returns the contribution history, newest first, joined with
// member names and cycle numbers.
func (s *ContributionService) ListByTontine(ownerID, tontineID uuid.UUID) ([]models.Contribution, error) {
	if _, err := loadOwnedTontine(s.db, tontineID, ownerID, false); err != nil {
		return nil, err
	}

	rows, err := s.db.Query(`
		SELECT c.id, c.tontine_id, c.member_id, c.cycle_id, c.amount,
		       c.contribution_date, c.created_at, m.name, cy.number
		FROM contributions c
		JOIN members m ON m.id = c.member_id
		LEFT JOIN cycles cy ON cy.id = c.cycle_id
		WHERE c.tontine_id = $1
		ORDER BY c.contribution_date DESC
	`, tontineID)
	if err != nil {
		return nil, fmt.Errorf("failed to list contributions: %v", err)
	}
	defer rows.Close()

	contributions := []models.Contribution{}
	for rows.Next() {
		var c models.Contribution
		if err := rows.Scan(&c.ID, &c.TontineID, &c.MemberID, &c.CycleID, &c.Amount,
			&c.ContributionDate, &c.CreatedAt, &c.MemberName, &c.CycleNumber); err != nil {
			return nil, fmt.Errorf("failed to scan contribution: %v", err)
		}
		contributions = append(contributions, c)
	}
	return contributions, rows.Err()
}

// missingMembers returns the names of members without a contribution in the
// given cycle, ordered by name for stable output.
func (s *ContributionService) missingMembers(q querier, tontineID, cycleID uuid.UUID) ([]string, error) {
	rows, err := q.Query(`
		SELECT m.name
		FROM members m
		WHERE m.tontine_id = $1
		  AND NOT EXISTS (
			SELECT 1 FROM contributions c
			WHERE c.member_id = m.id AND c.cycle_id = $2
		  )
		ORDER BY m.name
	`, tontineID, cycleID)
	if err != nil {
		return nil, fmt.Errorf("failed to find missing members: %v", err)
	}
	defer rows.Close()

	missing := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		missing = append(missing, name)
	}
	return missing, rows.Err()
}

// BuildStatus derives the readiness report from raw counts. A tontine with
// no members is never draw-ready.
func BuildStatus(cycleNumber, memberCount int, missing []string) *models.ContributionStatus {
	contributors := memberCount - len(missing)
	ready := memberCount > 0 && len(missing) == 0

	message := "all members have contributed, draw is possible"
	if memberCount == 0 {
		message = "tontine has no members"
	} else if !ready {
		message = fmt.Sprintf("%d member(s) have not yet contributed", len(missing))
	}

	return &models.ContributionStatus{
		Ready:          ready,
		CycleNumber:    cycleNumber,
		Contributors:   contributors,
		MemberCount:    memberCount,
		MissingMembers: missing,
		Message:        message,
	}
}
