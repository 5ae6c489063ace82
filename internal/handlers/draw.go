package handlers

import (
	"database/sql"
	"net/http"

	"github.com/ASS429/ma-tontine-backend/internal/services"

	"github.com/gin-gonic/gin"
)

type DrawHandler struct {
	draws    *services.DrawService
	alertSvc *services.AlertService
}

func NewDrawHandler(db *sql.DB, alertSvc *services.AlertService) *DrawHandler {
	return &DrawHandler{
		draws:    services.NewDrawService(db),
		alertSvc: alertSvc,
	}
}

func (h *DrawHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	tontineID, ok := parseUUIDParam(c, "tontineId")
	if !ok {
		return
	}

	draws, err := h.draws.ListByTontine(userID, tontineID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, draws)
}

func (h *DrawHandler) Run(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	tontineID, ok := parseUUIDParam(c, "tontineId")
	if !ok {
		return
	}

	result, err := h.draws.Run(userID, tontineID)
	if err != nil {
		respondError(c, err)
		return
	}

	h.alertSvc.CreateAdminAlert("draw_completed",
		"draw completed, winner: "+result.WinnerName, &userID)
	if result.TontineTerminated {
		h.alertSvc.CreateAdminAlert("tontine_terminated",
			"all members have won, tontine terminated", &userID)
	}

	c.JSON(http.StatusCreated, result)
}
