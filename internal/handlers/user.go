package handlers

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/ASS429/ma-tontine-backend/internal/models"
	"github.com/ASS429/ma-tontine-backend/internal/services"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	db       *sql.DB
	alertSvc *services.AlertService
}

func NewUserHandler(db *sql.DB, alertSvc *services.AlertService) *UserHandler {
	return &UserHandler{db: db, alertSvc: alertSvc}
}

func (h *UserHandler) GetProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var user models.User
	err := h.db.QueryRow(`
		SELECT id, email, full_name, role, plan, payment_status, expiration, created_at, updated_at
		FROM users WHERE id = $1
	`, userID).Scan(
		&user.ID, &user.Email, &user.FullName, &user.Role, &user.Plan,
		&user.PaymentStatus, &user.Expiration, &user.CreatedAt, &user.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req models.UserUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	err := h.db.QueryRow(`
		UPDATE users SET full_name = $1, updated_at = $2
		WHERE id = $3
		RETURNING id, email, full_name, role, plan, created_at
	`, req.FullName, time.Now(), userID).Scan(
		&user.ID, &user.Email, &user.FullName, &user.Role, &user.Plan, &user.CreatedAt,
	)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) DeleteProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if _, err := h.db.Exec(`DELETE FROM users WHERE id = $1`, userID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile deleted"})
}

// Upgrade switches the user's plan. Premium runs for 30 days.
func (h *UserHandler) Upgrade(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req models.UpgradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var expiration *time.Time
	paymentStatus := "pending"
	if req.Plan == models.PlanPremium {
		exp := time.Now().AddDate(0, 0, 30)
		expiration = &exp
		paymentStatus = "completed"
	}

	var user models.User
	err := h.db.QueryRow(`
		UPDATE users SET plan = $1, payment_status = $2, expiration = $3, updated_at = $4
		WHERE id = $5
		RETURNING id, email, plan, payment_status, expiration
	`, req.Plan, paymentStatus, expiration, time.Now(), userID).Scan(
		&user.ID, &user.Email, &user.Plan, &user.PaymentStatus, &user.Expiration,
	)
	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}

	if req.Plan == models.PlanPremium {
		h.alertSvc.CreateAdminAlert("premium_validated", "premium subscription activated for "+user.Email, &user.ID)
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Your account is now on the " + req.Plan + " plan",
		"user":    user,
	})
}
