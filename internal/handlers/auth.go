package handlers

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/ASS429/ma-tontine-backend/internal/config"
	"github.com/ASS429/ma-tontine-backend/internal/models"
	"github.com/ASS429/ma-tontine-backend/internal/services"
	"github.com/ASS429/ma-tontine-backend/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type AuthHandler struct {
	db       *sql.DB
	otpSvc   *services.OTPService
	settings *services.SettingsService
	alertSvc *services.AlertService
}

func NewAuthHandler(db *sql.DB, otpSvc *services.OTPService, alertSvc *services.AlertService) *AuthHandler {
	return &AuthHandler{
		db:       db,
		otpSvc:   otpSvc,
		settings: services.NewSettingsService(db),
		alertSvc: alertSvc,
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req models.UserCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Check if user already exists
	var existingID uuid.UUID
	err := h.db.QueryRow("SELECT id FROM users WHERE email = $1", req.Email).Scan(&existingID)
	if err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "User already exists"})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), config.GetConfig().Security.BCryptCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	userID := uuid.New()
	now := time.Now()
	_, err = h.db.Exec(`
		INSERT INTO users (id, email, password_hash, full_name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, userID, req.Email, string(hashedPassword), req.FullName, now, now)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	h.alertSvc.CreateAdminAlert("new_user", "new user registered: "+req.Email, &userID)

	token, err := utils.GenerateJWT(userID, req.Email, models.RoleUser)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"user": models.UserResponse{
			ID:        userID,
			Email:     req.Email,
			FullName:  req.FullName,
			Role:      models.RoleUser,
			Plan:      models.PlanFree,
			CreatedAt: now,
		},
		"token": token,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req models.UserLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	err := h.db.QueryRow(`
		SELECT id, email, password_hash, full_name, role, plan, payment_status, expiration, created_at, updated_at
		FROM users WHERE email = $1
	`, req.Email).Scan(
		&user.ID, &user.Email, &user.PasswordHash, &user.FullName, &user.Role,
		&user.Plan, &user.PaymentStatus, &user.Expiration, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := utils.GenerateJWT(user.ID, user.Email, user.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": models.UserResponse{
			ID:        user.ID,
			Email:     user.Email,
			FullName:  user.FullName,
			Role:      user.Role,
			Plan:      user.Plan,
			CreatedAt: user.CreatedAt,
		},
		"token": token,
	})
}

// Me returns the identity carried by the JWT.
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	email, _ := c.Get("user_email")
	role, _ := c.Get("user_role")

	c.JSON(http.StatusOK, gin.H{
		"id":    userID,
		"email": email,
		"role":  role,
	})
}

// Init2FA sends an OTP code to an admin with two-factor auth enabled.
func (h *AuthHandler) Init2FA(c *gin.Context) {
	var req models.Init2FARequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	twoFA, err := h.settings.TwoFAEnabled(req.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	if !twoFA {
		c.JSON(http.StatusOK, gin.H{"active": false, "message": "2FA is disabled"})
		return
	}

	var admin models.User
	err = h.db.QueryRow(`
		SELECT id, full_name, email FROM users WHERE id = $1 AND role = $2
	`, req.UserID, models.RoleAdmin).Scan(&admin.ID, &admin.FullName, &admin.Email)
	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"error": "Admin not found"})
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.otpSvc.SendOTP(c.Request.Context(), admin); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"active": true, "message": "OTP code sent to your email"})
}

// Verify2FA checks an OTP code submitted by an admin.
func (h *AuthHandler) Verify2FA(c *gin.Context) {
	var req models.Verify2FARequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	valid, err := h.otpSvc.VerifyOTP(req.UserID, req.Code)
	if err != nil {
		respondError(c, err)
		return
	}
	if !valid {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid or expired code"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "2FA verified"})
}
