package public

import (
	"github.com/cyfa-store/api/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
)

func respondError(c *gin.Context, code int, msg string, err error) {
	shared.RespondError(c, code, msg, err)
}

func cartToken(c *gin.Context) (string, bool) {
	return shared.CartToken(c)
}
