package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jpatelved/tradeboard/internal/auth"
)

// ProfileHandler exposes the caller's resolved identity so the UI can
// decide what to render. The role flag here is advisory; the upload
// handler re-checks it on every write.
type ProfileHandler struct {
	Auth *auth.Client
}

// NewProfileHandler creates a profile handler
func NewProfileHandler(authClient *auth.Client) *ProfileHandler {
	return &ProfileHandler{Auth: authClient}
}

// GetProfile handles GET /api/me
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	identity, err := h.Auth.Authorize(c.Request.Context(), c.GetHeader("Authorization"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":       identity.UserID,
		"is_admin": identity.IsAdmin,
	})
}
