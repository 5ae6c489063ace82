package services

import (
	"database/sql"
	"fmt"

	"github.com/ASS429/ma-tontine-backend/internal/models"

	"github.com/google/uuid"
)

// querier is satisfied by both *sql.DB and *sql.Tx so cycle operations can
// run inside a caller-owned transaction.
type querier interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
	Query(query string, args ...interface{}) (*sql.Rows, error)
	QueryRow(query string, args ...interface{}) *sql.Row
}

// CycleService owns the "which cycle is active" derived fact. The active
// cycle is the single closed=false row for a tontine; there is no in-process
// state.
type CycleService struct {
	db *sql.DB
}

func NewCycleService(db *sql.DB) *CycleService {
	return &CycleService{db: db}
}

// ActiveCycle returns the open cycle for a tontine, or nil if none exists.
func (s *CycleService) ActiveCycle(q querier, tontineID uuid.UUID) (*models.Cycle, error) {
	var cycle models.Cycle
	err := q.QueryRow(`
		SELECT id, tontine_id, number, closed, created_at
		FROM cycles
		WHERE tontine_id = $1 AND closed = false
		ORDER BY number DESC
		LIMIT 1
	`, tontineID).Scan(&cycle.ID, &cycle.TontineID, &cycle.Number, &cycle.Closed, &cycle.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load active cycle: %v", err)
	}
	return &cycle, nil
}

// GetOrCreateActiveCycle returns the open cycle for a tontine, creating the
// next one (max number + 1, starting at 1) when none is open. Callers that
// need the result to stay stable must hold a row lock on the tontine.
func (s *CycleService) GetOrCreateActiveCycle(q querier, tontineID uuid.UUID) (*models.Cycle, error) {
	cycle, err := s.ActiveCycle(q, tontineID)
	if err != nil {
		return nil, err
	}
	if cycle != nil {
		return cycle, nil
	}

	cycle = &models.Cycle{}
	err = q.QueryRow(`
		INSERT INTO cycles (tontine_id, number)
		SELECT $1, COALESCE(MAX(number), 0) + 1
		FROM cycles WHERE tontine_id = $1
		RETURNING id, tontine_id, number, closed, created_at
	`, tontineID).Scan(&cycle.ID, &cycle.TontineID, &cycle.Number, &cycle.Closed, &cycle.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("failed to create cycle: %v", err)
	}
	return cycle, nil
}

// CloseCycle marks a cycle as closed.
func (s *CycleService) CloseCycle(q querier, cycleID uuid.UUID) error {
	if _, err := q.Exec(`UPDATE cycles SET closed = true WHERE id = $1`, cycleID); err != nil {
		return fmt.Errorf("failed to close cycle: %v", err)
	}
	return nil
}

// AdvanceOrTerminate opens the next cycle when undrawn members remain,
// otherwise flips the tontine to terminated. Returns true when the tontine
// was terminated.
func (s *CycleService) AdvanceOrTerminate(q querier, tontine *models.Tontine, drawCount int) (bool, error) {
	if !ShouldTerminate(drawCount, tontine.MemberTarget) {
		_, err := q.Exec(`
			INSERT INTO cycles (tontine_id, number)
			SELECT $1, COALESCE(MAX(number), 0) + 1
			FROM cycles WHERE tontine_id = $1
		`, tontine.ID)
		if err != nil {
			return false, fmt.Errorf("failed to open next cycle: %v", err)
		}
		return false, nil
	}

	_, err := q.Exec(`UPDATE tontines SET status = $1 WHERE id = $2`,
		models.TontineStatusTerminated, tontine.ID)
	if err != nil {
		return false, fmt.Errorf("failed to terminate tontine: %v", err)
	}
	return true, nil
}
