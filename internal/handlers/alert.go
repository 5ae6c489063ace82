package handlers

import (
	"net/http"

	"github.com/ASS429/ma-tontine-backend/internal/services"

	"github.com/gin-gonic/gin"
)

type AlertHandler struct {
	alerts *services.AlertService
}

func NewAlertHandler(alerts *services.AlertService) *AlertHandler {
	return &AlertHandler{alerts: alerts}
}

// List refreshes derived alerts (late contributors, draw available) and
// returns the full list.
func (h *AlertHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	alerts, err := h.alerts.RefreshForUser(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, alerts)
}

func (h *AlertHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	alertID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.alerts.Delete(userID, alertID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
