package public

import (
	"strings"

	"github.com/cyfa-store/api/internal/http/response"
	"github.com/cyfa-store/api/internal/service"

	"github.com/gin-gonic/gin"
)

// AddCartItemRequest adds a product to the cart.
type AddCartItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity"`
}

// UpdateCartItemRequest overwrites one line's quantity.
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

// ValidatePromoRequest checks a promo code.
type ValidatePromoRequest struct {
	Code string `json:"code" binding:"required"`
}

// GetCart returns the cart with totals. An optional promo_code query applies
// the discount to the computed totals.
func (h *Handler) GetCart(c *gin.Context) {
	token, ok := cartToken(c)
	if !ok {
		return
	}
	view, err := h.CartService.View(c.Request.Context(), token, c.Query("promo_code"))
	if err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, view)
}

// AddCartItem puts a product in the cart, merging quantities for repeats.
func (h *Handler) AddCartItem(c *gin.Context) {
	token, ok := cartToken(c)
	if !ok {
		return
	}
	var req AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	view, err := h.CartService.AddItem(c.Request.Context(), service.AddItemInput{
		CartToken: token,
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, view)
}

// UpdateCartItem overwrites a line's quantity; zero or less removes it.
func (h *Handler) UpdateCartItem(c *gin.Context) {
	token, ok := cartToken(c)
	if !ok {
		return
	}
	productID := strings.TrimSpace(c.Param("product_id"))
	if productID == "" {
		response.BadRequest(c, "product id is required")
		return
	}
	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	view, err := h.CartService.UpdateQuantity(c.Request.Context(), token, productID, req.Quantity)
	if err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, view)
}

// RemoveCartItem drops one line from the cart.
func (h *Handler) RemoveCartItem(c *gin.Context) {
	token, ok := cartToken(c)
	if !ok {
		return
	}
	productID := strings.TrimSpace(c.Param("product_id"))
	if productID == "" {
		response.BadRequest(c, "product id is required")
		return
	}
	view, err := h.CartService.RemoveItem(c.Request.Context(), token, productID)
	if err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, view)
}

// ClearCart empties the cart.
func (h *Handler) ClearCart(c *gin.Context) {
	token, ok := cartToken(c)
	if !ok {
		return
	}
	if err := h.CartService.Clear(c.Request.Context(), token); err != nil {
		respondCartError(c, err)
		return
	}
	response.SuccessWithMsg(c, "cart cleared", nil)
}

// ValidatePromo checks a promo code and returns its canonical form.
func (h *Handler) ValidatePromo(c *gin.Context) {
	var req ValidatePromoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	code, err := h.CartService.ValidatePromo(req.Code)
	if err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, gin.H{"code": code, "valid": true})
}
