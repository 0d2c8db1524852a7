package public

import (
	"errors"

	"github.com/cyfa-store/api/internal/http/response"
	"github.com/cyfa-store/api/internal/service"

	"github.com/gin-gonic/gin"
)

// ListProducts returns the catalog.
func (h *Handler) ListProducts(c *gin.Context) {
	products, err := h.CatalogService.ListProducts(c.Request.Context())
	if err != nil {
		respondError(c, response.CodeUpstreamFailed, "catalog is unavailable", err)
		return
	}
	response.Success(c, gin.H{"products": products})
}

// GetProduct returns one product by id.
func (h *Handler) GetProduct(c *gin.Context) {
	product, err := h.CatalogService.GetProduct(c.Request.Context(), c.Param("id"))
	if errors.Is(err, service.ErrProductNotFound) {
		response.NotFound(c, "product not found")
		return
	}
	if err != nil {
		respondError(c, response.CodeUpstreamFailed, "catalog is unavailable", err)
		return
	}
	response.Success(c, product)
}
