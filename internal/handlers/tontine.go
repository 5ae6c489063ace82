package handlers

import (
	"database/sql"
	"net/http"

	"github.com/ASS429/ma-tontine-backend/internal/models"
	"github.com/ASS429/ma-tontine-backend/internal/services"

	"github.com/gin-gonic/gin"
)

type TontineHandler struct {
	db       *sql.DB
	alertSvc *services.AlertService
}

func NewTontineHandler(db *sql.DB, alertSvc *services.AlertService) *TontineHandler {
	return &TontineHandler{db: db, alertSvc: alertSvc}
}

func (h *TontineHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	rows, err := h.db.Query(`
		SELECT id, name, type, contribution_amount, contribution_frequency,
		       contribution_day, draw_frequency, member_target, description,
		       status, owner_id, created_at
		FROM tontines
		WHERE owner_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	defer rows.Close()

	tontines := []models.Tontine{}
	for rows.Next() {
		var t models.Tontine
		if err := rows.Scan(&t.ID, &t.Name, &t.Type, &t.ContributionAmount,
			&t.ContributionFrequency, &t.ContributionDay, &t.DrawFrequency,
			&t.MemberTarget, &t.Description, &t.Status, &t.OwnerID, &t.CreatedAt); err != nil {
			respondError(c, err)
			return
		}
		tontines = append(tontines, t)
	}

	c.JSON(http.StatusOK, tontines)
}

func (h *TontineHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req models.TontineCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"kind": services.KindValidation, "error": err.Error()})
		return
	}

	// A tontine with a non-positive pot or no member slots can never reach a
	// draw; reject it up front.
	if req.ContributionAmount <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"kind": services.KindValidation, "error": "contribution_amount must be positive"})
		return
	}
	if req.MemberTarget < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"kind": services.KindValidation, "error": "member_target must be at least 1"})
		return
	}

	var t models.Tontine
	err := h.db.QueryRow(`
		INSERT INTO tontines (name, type, contribution_amount, contribution_frequency,
		                      contribution_day, draw_frequency, member_target, description, owner_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, name, type, contribution_amount, contribution_frequency,
		          contribution_day, draw_frequency, member_target, description,
		          status, owner_id, created_at
	`, req.Name, nullable(req.Type), req.ContributionAmount, req.ContributionFrequency,
		nullable(req.ContributionDay), nullable(req.DrawFrequency), req.MemberTarget,
		nullable(req.Description), userID).Scan(
		&t.ID, &t.Name, &t.Type, &t.ContributionAmount, &t.ContributionFrequency,
		&t.ContributionDay, &t.DrawFrequency, &t.MemberTarget, &t.Description,
		&t.Status, &t.OwnerID, &t.CreatedAt,
	)
	if err != nil {
		respondError(c, err)
		return
	}

	h.alertSvc.CreateAdminAlert("new_tontine", "tontine created: "+t.Name, &userID)

	c.JSON(http.StatusCreated, t)
}

func (h *TontineHandler) Get(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	tontineID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var t models.Tontine
	err := h.db.QueryRow(`
		SELECT id, name, type, contribution_amount, contribution_frequency,
		       contribution_day, draw_frequency, member_target, description,
		       status, owner_id, created_at
		FROM tontines
		WHERE id = $1 AND owner_id = $2
	`, tontineID, userID).Scan(
		&t.ID, &t.Name, &t.Type, &t.ContributionAmount, &t.ContributionFrequency,
		&t.ContributionDay, &t.DrawFrequency, &t.MemberTarget, &t.Description,
		&t.Status, &t.OwnerID, &t.CreatedAt,
	)
	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"kind": services.KindNotFound, "error": "tontine not found"})
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, t)
}

func (h *TontineHandler) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	tontineID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req models.TontineUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"kind": services.KindValidation, "error": err.Error()})
		return
	}

	var t models.Tontine
	err := h.db.QueryRow(`
		UPDATE tontines
		SET name = COALESCE(NULLIF($1, ''), name),
		    description = COALESCE(NULLIF($2, ''), description)
		WHERE id = $3 AND owner_id = $4
		RETURNING id, name, type, contribution_amount, contribution_frequency,
		          contribution_day, draw_frequency, member_target, description,
		          status, owner_id, created_at
	`, req.Name, req.Description, tontineID, userID).Scan(
		&t.ID, &t.Name, &t.Type, &t.ContributionAmount, &t.ContributionFrequency,
		&t.ContributionDay, &t.DrawFrequency, &t.MemberTarget, &t.Description,
		&t.Status, &t.OwnerID, &t.CreatedAt,
	)
	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"kind": services.KindNotFound, "error": "tontine not found"})
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, t)
}

func (h *TontineHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	tontineID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	result, err := h.db.Exec(`DELETE FROM tontines WHERE id = $1 AND owner_id = $2`, tontineID, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"kind": services.KindNotFound, "error": "tontine not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Tontine deleted"})
}

// nullable maps an empty string to NULL for optional text columns.
func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
