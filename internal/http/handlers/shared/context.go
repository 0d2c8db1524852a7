package shared

import (
	"strings"

	"github.com/cyfa-store/api/internal/http/response"

	"github.com/gin-gonic/gin"
)

// CartTokenHeader names the header the storefront sends its cart token in.
const CartTokenHeader = "X-Cart-Token"

// CartToken reads the cart token and responds with an error when missing.
// The token is an opaque per-browser identifier, not a credential.
func CartToken(c *gin.Context) (string, bool) {
	token := strings.TrimSpace(c.GetHeader(CartTokenHeader))
	if token == "" {
		RespondError(c, response.CodeBadRequest, "cart token is required", nil)
		return "", false
	}
	if len(token) > 64 {
		RespondError(c, response.CodeBadRequest, "cart token is invalid", nil)
		return "", false
	}
	return token, true
}
