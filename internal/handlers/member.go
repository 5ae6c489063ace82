package handlers

import (
	"database/sql"
	"net/http"

	"github.com/ASS429/ma-tontine-backend/internal/models"
	"github.com/ASS429/ma-tontine-backend/internal/services"

	"github.com/gin-gonic/gin"
)

type MemberHandler struct {
	db *sql.DB
}

func NewMemberHandler(db *sql.DB) *MemberHandler {
	return &MemberHandler{db: db}
}

// Add inserts a member, but only when the tontine belongs to the caller. The
// ownership gate lives in the same statement so an unrelated tontine id
// inserts nothing.
func (h *MemberHandler) Add(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req models.MemberCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"kind": services.KindValidation, "error": err.Error()})
		return
	}

	var m models.Member
	err := h.db.QueryRow(`
		WITH allowed AS (
			SELECT id FROM tontines WHERE id = $1 AND owner_id = $2
		)
		INSERT INTO members (tontine_id, name, phone, email)
		SELECT $1, $3, $4, $5 FROM allowed
		RETURNING id, tontine_id, name, phone, email, created_at
	`, req.TontineID, userID, req.Name, nullable(req.Phone), nullable(req.Email)).Scan(
		&m.ID, &m.TontineID, &m.Name, &m.Phone, &m.Email, &m.CreatedAt,
	)
	if err == sql.ErrNoRows {
		c.JSON(http.StatusForbidden, gin.H{"kind": services.KindForbidden, "error": "access denied"})
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, m)
}

func (h *MemberHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	tontineID, ok := parseUUIDParam(c, "tontineId")
	if !ok {
		return
	}

	rows, err := h.db.Query(`
		SELECT m.id, m.tontine_id, m.name, m.phone, m.email, m.created_at
		FROM members m
		JOIN tontines t ON t.id = m.tontine_id
		WHERE m.tontine_id = $1 AND t.owner_id = $2
		ORDER BY m.created_at DESC
	`, tontineID, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	defer rows.Close()

	members := []models.Member{}
	for rows.Next() {
		var m models.Member
		if err := rows.Scan(&m.ID, &m.TontineID, &m.Name, &m.Phone, &m.Email, &m.CreatedAt); err != nil {
			respondError(c, err)
			return
		}
		members = append(members, m)
	}

	c.JSON(http.StatusOK, members)
}
