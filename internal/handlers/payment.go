package handlers

import (
	"database/sql"
	"net/http"

	"github.com/ASS429/ma-tontine-backend/internal/models"
	"github.com/ASS429/ma-tontine-backend/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PaymentHandler struct {
	db *sql.DB
}

func NewPaymentHandler(db *sql.DB) *PaymentHandler {
	return &PaymentHandler{db: db}
}

func (h *PaymentHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	tontineID, ok := parseUUIDParam(c, "tontineId")
	if !ok {
		return
	}

	rows, err := h.db.Query(`
		SELECT p.id, p.tontine_id, p.member_id, p.type, p.amount, p.method,
		       p.status, p.payment_date, m.name
		FROM payments p
		JOIN members m ON m.id = p.member_id
		JOIN tontines t ON t.id = p.tontine_id
		WHERE p.tontine_id = $1 AND t.owner_id = $2
		ORDER BY p.payment_date DESC
	`, tontineID, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	defer rows.Close()

	payments := []models.Payment{}
	for rows.Next() {
		var p models.Payment
		if err := rows.Scan(&p.ID, &p.TontineID, &p.MemberID, &p.Type, &p.Amount,
			&p.Method, &p.Status, &p.PaymentDate, &p.MemberName); err != nil {
			respondError(c, err)
			return
		}
		payments = append(payments, p)
	}

	c.JSON(http.StatusOK, payments)
}

func (h *PaymentHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req models.PaymentCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"kind": services.KindValidation, "error": err.Error()})
		return
	}
	status := req.Status
	if status == "" {
		status = models.PaymentStatusPending
	}

	tx, err := h.db.Begin()
	if err != nil {
		respondError(c, err)
		return
	}
	defer tx.Rollback()

	var allowed bool
	err = tx.QueryRow(`
		SELECT EXISTS (SELECT 1 FROM tontines WHERE id = $1 AND owner_id = $2)
	`, req.TontineID, userID).Scan(&allowed)
	if err != nil {
		respondError(c, err)
		return
	}
	if !allowed {
		c.JSON(http.StatusForbidden, gin.H{"kind": services.KindForbidden, "error": "access denied"})
		return
	}

	var p models.Payment
	err = tx.QueryRow(`
		INSERT INTO payments (tontine_id, member_id, type, amount, method, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, tontine_id, member_id, type, amount, method, status, payment_date
	`, req.TontineID, req.MemberID, req.Type, req.Amount, req.Method, status).Scan(
		&p.ID, &p.TontineID, &p.MemberID, &p.Type, &p.Amount, &p.Method, &p.Status, &p.PaymentDate,
	)
	if err != nil {
		respondError(c, err)
		return
	}

	// A completed payment moves money on the owner's matching account.
	if status == models.PaymentStatusCompleted {
		if err := h.applyToAccount(tx, userID, p.Type, p.Method, p.Amount); err != nil {
			respondError(c, err)
			return
		}
	}

	if err := tx.Commit(); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, p)
}

func (h *PaymentHandler) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	paymentID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req models.PaymentUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"kind": services.KindValidation, "error": err.Error()})
		return
	}

	tx, err := h.db.Begin()
	if err != nil {
		respondError(c, err)
		return
	}
	defer tx.Rollback()

	var existing models.Payment
	err = tx.QueryRow(`
		SELECT p.id, p.tontine_id, p.member_id, p.type, p.amount, p.method, p.status
		FROM payments p
		JOIN tontines t ON t.id = p.tontine_id
		WHERE p.id = $1 AND t.owner_id = $2
	`, paymentID, userID).Scan(
		&existing.ID, &existing.TontineID, &existing.MemberID, &existing.Type,
		&existing.Amount, &existing.Method, &existing.Status,
	)
	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"kind": services.KindNotFound, "error": "payment not found"})
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}

	var p models.Payment
	err = tx.QueryRow(`
		UPDATE payments SET status = $1 WHERE id = $2
		RETURNING id, tontine_id, member_id, type, amount, method, status, payment_date
	`, req.Status, paymentID).Scan(
		&p.ID, &p.TontineID, &p.MemberID, &p.Type, &p.Amount, &p.Method, &p.Status, &p.PaymentDate,
	)
	if err != nil {
		respondError(c, err)
		return
	}

	// Transition into completed credits or debits the owner's account.
	if existing.Status != models.PaymentStatusCompleted && req.Status == models.PaymentStatusCompleted {
		if err := h.applyToAccount(tx, userID, existing.Type, existing.Method, existing.Amount); err != nil {
			respondError(c, err)
			return
		}
	}

	if err := tx.Commit(); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, p)
}

func (h *PaymentHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	paymentID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	tx, err := h.db.Begin()
	if err != nil {
		respondError(c, err)
		return
	}
	defer tx.Rollback()

	var existing models.Payment
	err = tx.QueryRow(`
		SELECT p.id, p.type, p.amount, p.method, p.status
		FROM payments p
		JOIN tontines t ON t.id = p.tontine_id
		WHERE p.id = $1 AND t.owner_id = $2
	`, paymentID, userID).Scan(
		&existing.ID, &existing.Type, &existing.Amount, &existing.Method, &existing.Status,
	)
	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"kind": services.KindNotFound, "error": "payment not found"})
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}

	// Deleting a completed payment reverses its balance effect.
	if existing.Status == models.PaymentStatusCompleted {
		if err := h.applyToAccount(tx, userID, existing.Type, existing.Method, -existing.Amount); err != nil {
			respondError(c, err)
			return
		}
	}

	if _, err := tx.Exec(`DELETE FROM payments WHERE id = $1`, paymentID); err != nil {
		respondError(c, err)
		return
	}

	if err := tx.Commit(); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Payment deleted"})
}

// applyToAccount adjusts the balance of the user's account matching the
// payment method, creating the account when it does not exist yet.
// Contributions credit the account, payouts debit it.
func (h *PaymentHandler) applyToAccount(tx *sql.Tx, userID uuid.UUID, paymentType, method string, amount float64) error {
	delta := amount
	if paymentType == models.PaymentTypePayout {
		delta = -amount
	}

	result, err := tx.Exec(`
		UPDATE accounts SET balance = balance + $1
		WHERE user_id = $2 AND type = $3
	`, delta, userID, method)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		_, err = tx.Exec(`
			INSERT INTO accounts (user_id, type, balance)
			VALUES ($1, $2, $3)
		`, userID, method, delta)
	}
	return err
}
