package handlers

import (
	"database/sql"
	"net/http"

	"github.com/ASS429/ma-tontine-backend/internal/models"
	"github.com/ASS429/ma-tontine-backend/internal/services"

	"github.com/gin-gonic/gin"
)

type ContributionHandler struct {
	contributions *services.ContributionService
}

func NewContributionHandler(db *sql.DB) *ContributionHandler {
	return &ContributionHandler{contributions: services.NewContributionService(db)}
}

func (h *ContributionHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	tontineID, ok := parseUUIDParam(c, "tontineId")
	if !ok {
		return
	}

	contributions, err := h.contributions.ListByTontine(userID, tontineID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contributions)
}

// Status reports whether the active cycle is ready for a draw.
func (h *ContributionHandler) Status(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	tontineID, ok := parseUUIDParam(c, "tontineId")
	if !ok {
		return
	}

	status, err := h.contributions.Status(userID, tontineID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, status)
}

func (h *ContributionHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req models.ContributionCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"kind": services.KindValidation, "error": err.Error()})
		return
	}

	contribution, err := h.contributions.Record(userID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, contribution)
}
