package public

import (
	"github.com/cyfa-store/api/internal/http/response"

	"github.com/gin-gonic/gin"
)

// CreateCheckoutRequest starts a hosted checkout for the cart.
type CreateCheckoutRequest struct {
	PromoCode string `json:"promo_code"`
}

// ConfirmCheckoutRequest confirms a session after the shopper returns.
type ConfirmCheckoutRequest struct {
	SessionID string `json:"session_id" binding:"required"`
}

// CreateCheckout converts the cart into a hosted payment session and returns
// its id and redirect URL.
func (h *Handler) CreateCheckout(c *gin.Context) {
	token, ok := cartToken(c)
	if !ok {
		return
	}
	var req CreateCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	session, err := h.CheckoutService.CreateSession(c.Request.Context(), token, req.PromoCode)
	if err != nil {
		respondCheckoutError(c, err)
		return
	}
	response.Success(c, session)
}

// ConfirmCheckout verifies payment settled and clears the cart.
func (h *Handler) ConfirmCheckout(c *gin.Context) {
	token, ok := cartToken(c)
	if !ok {
		return
	}
	var req ConfirmCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	confirmation, err := h.CheckoutService.ConfirmSuccess(c.Request.Context(), token, req.SessionID)
	if err != nil {
		respondCheckoutError(c, err)
		return
	}
	response.Success(c, confirmation)
}
