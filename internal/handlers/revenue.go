package handlers

import (
	"database/sql"
	"net/http"

	"github.com/ASS429/ma-tontine-backend/internal/models"
	"github.com/ASS429/ma-tontine-backend/internal/services"

	"github.com/gin-gonic/gin"
)

type RevenueHandler struct {
	db *sql.DB
}

func NewRevenueHandler(db *sql.DB) *RevenueHandler {
	return &RevenueHandler{db: db}
}

func (h *RevenueHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	rows, err := h.db.Query(`
		SELECT id, user_id, source, amount, method, status, description, created_at
		FROM revenues
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	defer rows.Close()

	revenues := []models.Revenue{}
	for rows.Next() {
		var r models.Revenue
		if err := rows.Scan(&r.ID, &r.UserID, &r.Source, &r.Amount, &r.Method,
			&r.Status, &r.Description, &r.CreatedAt); err != nil {
			respondError(c, err)
			return
		}
		revenues = append(revenues, r)
	}

	c.JSON(http.StatusOK, revenues)
}

func (h *RevenueHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req models.RevenueCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"kind": services.KindValidation, "error": err.Error()})
		return
	}

	method := req.Method
	if method == "" {
		method = "other"
	}
	status := req.Status
	if status == "" {
		status = "completed"
	}

	var r models.Revenue
	err := h.db.QueryRow(`
		INSERT INTO revenues (user_id, source, amount, method, status, description)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, user_id, source, amount, method, status, description, created_at
	`, userID, req.Source, req.Amount, method, status, nullable(req.Description)).Scan(
		&r.ID, &r.UserID, &r.Source, &r.Amount, &r.Method, &r.Status, &r.Description, &r.CreatedAt,
	)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, r)
}
