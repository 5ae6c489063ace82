package handlers

import (
	"database/sql"
	"net/http"
	"strconv"

	"github.com/ASS429/ma-tontine-backend/internal/models"
	"github.com/ASS429/ma-tontine-backend/internal/services"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	db       *sql.DB
	settings *services.SettingsService
	alertSvc *services.AlertService
}

func NewAdminHandler(db *sql.DB, alertSvc *services.AlertService) *AdminHandler {
	return &AdminHandler{
		db:       db,
		settings: services.NewSettingsService(db),
		alertSvc: alertSvc,
	}
}

// GetSettings returns the current admin settings, bypassing the cache so the
// dashboard always sees the latest row.
func (h *AdminHandler) GetSettings(c *gin.Context) {
	settings, err := h.settings.GetSettings(true)
	if err != nil {
		respondError(c, err)
		return
	}
	if settings == nil {
		c.JSON(http.StatusOK, gin.H{"settings": nil})
		return
	}

	c.JSON(http.StatusOK, gin.H{"settings": settings})
}

// UpdateSettings writes the caller's settings row (2FA flag, contact email,
// premium price).
func (h *AdminHandler) UpdateSettings(c *gin.Context) {
	adminID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req models.AdminSettingsUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"kind": services.KindValidation, "error": err.Error()})
		return
	}

	settings, err := h.settings.UpdateSettings(adminID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"settings": settings})
}

// ListAlerts returns the most recent operational alerts.
func (h *AdminHandler) ListAlerts(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "100"))
	if err != nil || limit < 1 || limit > 500 {
		limit = 100
	}

	alerts, err := h.alertSvc.ListAdminAlerts(limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, alerts)
}
