package public

import (
	"github.com/cyfa-store/api/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetSession returns the signed-in user behind the current session token.
func (h *Handler) GetSession(c *gin.Context) {
	userID := c.GetString("session_user_id")
	if userID == "" {
		response.Unauthorized(c, "sign in required")
		return
	}
	response.Success(c, gin.H{"user_id": userID})
}
