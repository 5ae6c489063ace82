package handlers

import (
	"database/sql"
	"net/http"

	"github.com/gin-gonic/gin"
)

type StatsHandler struct {
	db *sql.DB
}

func NewStatsHandler(db *sql.DB) *StatsHandler {
	return &StatsHandler{db: db}
}

// Overview aggregates the dashboard numbers for the caller's tontines.
func (h *StatsHandler) Overview(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var (
		activeTontines  int
		totalMembers    int
		amountCollected float64
		drawsDone       int
		lateToday       int
		drawsAvailable  int
		pendingPayments int
	)

	err := h.db.QueryRow(`
		SELECT COUNT(*) FROM tontines WHERE owner_id = $1 AND status = 'active'
	`, userID).Scan(&activeTontines)
	if err != nil {
		respondError(c, err)
		return
	}

	err = h.db.QueryRow(`
		SELECT COUNT(*)
		FROM members m
		JOIN tontines t ON t.id = m.tontine_id
		WHERE t.owner_id = $1
	`, userID).Scan(&totalMembers)
	if err != nil {
		respondError(c, err)
		return
	}

	err = h.db.QueryRow(`
		SELECT COALESCE(SUM(c.amount), 0)
		FROM contributions c
		JOIN tontines t ON t.id = c.tontine_id
		WHERE t.owner_id = $1
	`, userID).Scan(&amountCollected)
	if err != nil {
		respondError(c, err)
		return
	}

	err = h.db.QueryRow(`
		SELECT COUNT(*)
		FROM draws d
		JOIN tontines t ON t.id = d.tontine_id
		WHERE t.owner_id = $1
	`, userID).Scan(&drawsDone)
	if err != nil {
		respondError(c, err)
		return
	}

	err = h.db.QueryRow(`
		SELECT COUNT(*)
		FROM members m
		JOIN tontines t ON t.id = m.tontine_id
		WHERE t.owner_id = $1
		  AND NOT EXISTS (
			SELECT 1 FROM contributions c
			WHERE c.member_id = m.id AND c.contribution_date = CURRENT_DATE
		  )
	`, userID).Scan(&lateToday)
	if err != nil {
		respondError(c, err)
		return
	}

	// Tontines where every member contributed to the open cycle and the
	// cycle has no draw yet.
	err = h.db.QueryRow(`
		SELECT COUNT(*)
		FROM tontines t
		JOIN cycles cy ON cy.tontine_id = t.id AND cy.closed = false
		WHERE t.owner_id = $1
		  AND t.status = 'active'
		  AND EXISTS (SELECT 1 FROM members m WHERE m.tontine_id = t.id)
		  AND NOT EXISTS (
			SELECT 1 FROM members m
			WHERE m.tontine_id = t.id
			  AND NOT EXISTS (
				SELECT 1 FROM contributions c
				WHERE c.member_id = m.id AND c.cycle_id = cy.id
			  )
		  )
		  AND NOT EXISTS (
			SELECT 1 FROM draws d WHERE d.cycle_id = cy.id
		  )
	`, userID).Scan(&drawsAvailable)
	if err != nil {
		respondError(c, err)
		return
	}

	err = h.db.QueryRow(`
		SELECT COUNT(*)
		FROM payments p
		JOIN tontines t ON t.id = p.tontine_id
		WHERE t.owner_id = $1 AND p.status = 'pending'
	`, userID).Scan(&pendingPayments)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"active_tontines":  activeTontines,
		"total_members":    totalMembers,
		"amount_collected": amountCollected,
		"draws_done":       drawsDone,
		"late_today":       lateToday,
		"draws_available":  drawsAvailable,
		"pending_payments": pendingPayments,
	})
}
