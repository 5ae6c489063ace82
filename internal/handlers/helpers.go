package handlers

import (
	"log/slog"
	"net/http"

	"github.com/ASS429/ma-tontine-backend/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// currentUserID pulls the authenticated user id set by the auth middleware.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return uuid.Nil, false
	}
	userID, ok := value.(uuid.UUID)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return uuid.Nil, false
	}
	return userID, true
}

// respondError writes a domain error with its stable kind, or a generic 500
// for anything else.
func respondError(c *gin.Context, err error) {
	if derr, ok := services.AsDomainError(err); ok {
		body := gin.H{"kind": derr.Kind, "error": derr.Message}
		if len(derr.MissingMembers) > 0 {
			body["missing_members"] = derr.MissingMembers
		}
		c.JSON(derr.HTTPStatus(), body)
		return
	}

	slog.Error("internal server error", "path", c.FullPath(), "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}

// parseUUIDParam parses a path parameter as a UUID.
func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"kind": services.KindValidation, "error": "invalid " + name})
		return uuid.Nil, false
	}
	return id, true
}
