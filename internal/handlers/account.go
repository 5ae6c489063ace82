package handlers

import (
	"database/sql"
	"net/http"

	"github.com/ASS429/ma-tontine-backend/internal/models"
	"github.com/ASS429/ma-tontine-backend/internal/services"

	"github.com/gin-gonic/gin"
)

type AccountHandler struct {
	db *sql.DB
}

func NewAccountHandler(db *sql.DB) *AccountHandler {
	return &AccountHandler{db: db}
}

func (h *AccountHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	rows, err := h.db.Query(`
		SELECT id, user_id, type, balance, created_at
		FROM accounts
		WHERE user_id = $1
		ORDER BY created_at ASC
	`, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	defer rows.Close()

	accounts := []models.Account{}
	for rows.Next() {
		var a models.Account
		if err := rows.Scan(&a.ID, &a.UserID, &a.Type, &a.Balance, &a.CreatedAt); err != nil {
			respondError(c, err)
			return
		}
		accounts = append(accounts, a)
	}

	c.JSON(http.StatusOK, accounts)
}

func (h *AccountHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req models.AccountCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"kind": services.KindValidation, "error": err.Error()})
		return
	}

	var a models.Account
	err := h.db.QueryRow(`
		INSERT INTO accounts (user_id, type, balance)
		VALUES ($1, $2, $3)
		RETURNING id, user_id, type, balance, created_at
	`, userID, req.Type, req.Balance).Scan(&a.ID, &a.UserID, &a.Type, &a.Balance, &a.CreatedAt)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, a)
}

func (h *AccountHandler) UpdateBalance(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	accountID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req models.AccountUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"kind": services.KindValidation, "error": err.Error()})
		return
	}

	var a models.Account
	err := h.db.QueryRow(`
		UPDATE accounts SET balance = $1
		WHERE id = $2 AND user_id = $3
		RETURNING id, user_id, type, balance, created_at
	`, req.Balance, accountID, userID).Scan(&a.ID, &a.UserID, &a.Type, &a.Balance, &a.CreatedAt)
	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"kind": services.KindNotFound, "error": "account not found"})
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, a)
}
