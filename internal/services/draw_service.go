package services

import (
	"database/sql"
	"fmt"
	"math/rand"

	"github.com/ASS429/ma-tontine-backend/internal/models"

	"github.com/google/uuid"
)

// DrawService runs the payout draw for a tontine's active cycle. The whole
// sequence (readiness check, winner insert, cycle close, advance/terminate)
// executes inside one transaction holding a row lock on the tontine, so two
// concurrent draws for the same cycle cannot both win. The unique constraint
// on draws(tontine_id, cycle_id) is the backstop: a conflicting insert is
// surfaced as ALREADY_DRAWN.
type DrawService struct {
	db     *sql.DB
	cycles *CycleService

	// intn must return a uniform value in [0, n). Overridable in tests.
	intn func(n int) int
}

func NewDrawService(db *sql.DB) *DrawService {
	return &DrawService{
		db:     db,
		cycles: NewCycleService(db),
		intn:   rand.Intn,
	}
}

type candidate struct {
	ID   uuid.UUID
	Name string
}

// PickWinner selects one candidate uniformly at random. intn must return a
// uniform value in [0, n). The second return is false when the pool is empty.
func PickWinner(intn func(n int) int, pool []candidate) (candidate, bool) {
	if len(pool) == 0 {
		return candidate{}, false
	}
	return pool[intn(len(pool))], true
}

// ShouldTerminate reports whether a tontine is finished: every one of its
// target member slots has received a payout.
func ShouldTerminate(drawCount, memberTarget int) bool {
	return drawCount >= memberTarget
}

// drawState is the snapshot a draw decision is made from.
type drawState struct {
	TontineStatus string
	CycleNumber   int
	Missing       []string
	DrawExists    bool
	Pool          []candidate
}

// evaluateDraw applies the draw gates in order and picks the winner: a
// terminated tontine fails INVALID_STATE, an incomplete cycle NOT_READY, a
// cycle that already has a draw ALREADY_DRAWN, and an empty candidate pool
// GROUP_EXHAUSTED.
func evaluateDraw(intn func(n int) int, st drawState) (candidate, error) {
	if st.TontineStatus == models.TontineStatusTerminated {
		return candidate{}, NewDomainError(KindInvalidState, "tontine is terminated, no further draws are possible")
	}
	if len(st.Missing) > 0 {
		return candidate{}, &DomainError{
			Kind:           KindNotReady,
			Message:        fmt.Sprintf("%d member(s) have not yet contributed for cycle %d", len(st.Missing), st.CycleNumber),
			MissingMembers: st.Missing,
		}
	}
	if st.DrawExists {
		return candidate{}, NewDomainError(KindAlreadyDrawn, fmt.Sprintf("a draw already happened for cycle %d", st.CycleNumber))
	}

	winner, ok := PickWinner(intn, st.Pool)
	if !ok {
		return candidate{}, NewDomainError(KindGroupExhausted, "every member has already won, tontine is finished")
	}
	return winner, nil
}

// Run executes a draw for the tontine's active cycle.
func (s *DrawService) Run(ownerID, tontineID uuid.UUID) (*models.DrawResult, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %v", err)
	}
	defer tx.Rollback()

	tontine, err := loadOwnedTontine(tx, tontineID, ownerID, true)
	if err != nil {
		return nil, err
	}
	if tontine.Status == models.TontineStatusTerminated {
		_, gateErr := evaluateDraw(s.intn, drawState{TontineStatus: tontine.Status})
		return nil, gateErr
	}

	cycle, err := s.cycles.GetOrCreateActiveCycle(tx, tontineID)
	if err != nil {
		return nil, err
	}

	missing, err := s.missingContributors(tx, tontineID, cycle.ID)
	if err != nil {
		return nil, err
	}

	var drawExists bool
	err = tx.QueryRow(`
		SELECT EXISTS (SELECT 1 FROM draws WHERE tontine_id = $1 AND cycle_id = $2)
	`, tontineID, cycle.ID).Scan(&drawExists)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing draw: %v", err)
	}

	// Candidate pool: members who never won in this tontine's lifetime.
	pool, err := s.candidates(tx, tontineID)
	if err != nil {
		return nil, err
	}

	winner, err := evaluateDraw(s.intn, drawState{
		TontineStatus: tontine.Status,
		CycleNumber:   cycle.Number,
		Missing:       missing,
		DrawExists:    drawExists,
		Pool:          pool,
	})
	if err != nil {
		if derr, ok := AsDomainError(err); ok && derr.Kind == KindGroupExhausted {
			// All members already won: the tontine should have been
			// terminated. Repair the state and report the condition.
			if _, uerr := tx.Exec(`UPDATE tontines SET status = $1 WHERE id = $2`,
				models.TontineStatusTerminated, tontineID); uerr != nil {
				return nil, fmt.Errorf("failed to repair tontine status: %v", uerr)
			}
			if cerr := tx.Commit(); cerr != nil {
				return nil, fmt.Errorf("failed to commit status repair: %v", cerr)
			}
		}
		return nil, err
	}

	amountWon := tontine.ContributionAmount * float64(tontine.MemberTarget)

	var draw models.Draw
	err = tx.QueryRow(`
		INSERT INTO draws (tontine_id, member_id, cycle_id, amount_won)
		VALUES ($1, $2, $3, $4)
		RETURNING id, tontine_id, member_id, cycle_id, amount_won, drawn_at
	`, tontineID, winner.ID, cycle.ID, amountWon).Scan(
		&draw.ID, &draw.TontineID, &draw.MemberID, &draw.CycleID, &draw.AmountWon, &draw.DrawnAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, NewDomainError(KindAlreadyDrawn, fmt.Sprintf("a draw already happened for cycle %d", cycle.Number))
		}
		return nil, fmt.Errorf("failed to insert draw: %v", err)
	}

	if err := s.cycles.CloseCycle(tx, cycle.ID); err != nil {
		return nil, err
	}

	var drawCount int
	if err := tx.QueryRow(`SELECT COUNT(*) FROM draws WHERE tontine_id = $1`, tontineID).Scan(&drawCount); err != nil {
		return nil, fmt.Errorf("failed to count draws: %v", err)
	}

	terminated, err := s.cycles.AdvanceOrTerminate(tx, tontine, drawCount)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		if isUniqueViolation(err) {
			return nil, NewDomainError(KindAlreadyDrawn, fmt.Sprintf("a draw already happened for cycle %d", cycle.Number))
		}
		return nil, fmt.Errorf("failed to commit draw: %v", err)
	}

	draw.MemberName = winner.Name
	return &models.DrawResult{
		Draw:              draw,
		WinnerName:        winner.Name,
		CycleNumber:       cycle.Number,
		TontineTerminated: terminated,
	}, nil
}

// ListByTontine returns the draw history in chronological order.
func (s *DrawService) ListByTontine(ownerID, tontineID uuid.UUID) ([]models.Draw, error) {
	if _, err := loadOwnedTontine(s.db, tontineID, ownerID, false); err != nil {
		return nil, err
	}

	rows, err := s.db.Query(`
		SELECT d.id, d.tontine_id, d.member_id, d.cycle_id, d.amount_won, d.drawn_at, m.name
		FROM draws d
		JOIN members m ON m.id = d.member_id
		WHERE d.tontine_id = $1
		ORDER BY d.drawn_at ASC
	`, tontineID)
	if err != nil {
		return nil, fmt.Errorf("failed to list draws: %v", err)
	}
	defer rows.Close()

	draws := []models.Draw{}
	for rows.Next() {
		var d models.Draw
		if err := rows.Scan(&d.ID, &d.TontineID, &d.MemberID, &d.CycleID, &d.AmountWon, &d.DrawnAt, &d.MemberName); err != nil {
			return nil, fmt.Errorf("failed to scan draw: %v", err)
		}
		draws = append(draws, d)
	}
	return draws, rows.Err()
}

func (s *DrawService) missingContributors(q querier, tontineID, cycleID uuid.UUID) ([]string, error) {
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
		return nil, fmt.Errorf("failed to find missing contributors: %v", err)
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

func (s *DrawService) candidates(q querier, tontineID uuid.UUID) ([]candidate, error) {
	rows, err := q.Query(`
		SELECT m.id, m.name
		FROM members m
		WHERE m.tontine_id = $1
		  AND NOT EXISTS (
			SELECT 1 FROM draws d
			WHERE d.member_id = m.id AND d.tontine_id = $1
		  )
		ORDER BY m.created_at
	`, tontineID)
	if err != nil {
		return nil, fmt.Errorf("failed to load candidates: %v", err)
	}
	defer rows.Close()

	pool := []candidate{}
	for rows.Next() {
		var c candidate
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, err
		}
		pool = append(pool, c)
	}
	return pool, rows.Err()
}
