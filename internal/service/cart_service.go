package service

import (
	"context"
	"strings"

	"github.com/cyfa-store/api/internal/models"
	"github.com/cyfa-store/api/internal/pricing"
	"github.com/cyfa-store/api/internal/repository"
)

// AddItemInput adds a product to a cart. Quantity defaults to one.
type AddItemInput struct {
	CartToken string
	ProductID string
	Quantity  int
}

// CartView is the cart plus its computed totals.
type CartView struct {
	Items           []models.CartItem `json:"items"`
	Subtotal        models.Money      `json:"subtotal"`
	Discount        models.Money      `json:"discount"`
	Shipping        models.Money      `json:"shipping"`
	Tax             models.Money      `json:"tax"`
	Total           models.Money      `json:"total"`
	PromoCode       string            `json:"promo_code,omitempty"`
	TotalItems      int               `json:"total_items"`
	FreeShipping    bool              `json:"free_shipping"`
	FreeShippingGap models.Money      `json:"free_shipping_gap"`
}

// CartService owns cart mutations. Each cart is keyed by an opaque token and
// has a single writer, so mutations stay unsynchronized simple reads/writes.
type CartService struct {
	cartRepo repository.CartRepository
	catalog  *CatalogService
}

// NewCartService creates the cart service.
func NewCartService(cartRepo repository.CartRepository, catalog *CatalogService) *CartService {
	return &CartService{cartRepo: cartRepo, catalog: catalog}
}

// AddItem puts a product in the cart, merging quantities when the product is
// already there. Name, image and price are snapshotted from the catalog.
func (s *CartService) AddItem(ctx context.Context, input AddItemInput) (*CartView, error) {
	token := strings.TrimSpace(input.CartToken)
	if token == "" {
		return nil, ErrCartTokenRequired
	}
	productID := strings.TrimSpace(input.ProductID)
	if productID == "" {
		return nil, ErrInvalidCartItem
	}
	quantity := input.Quantity
	if quantity == 0 {
		quantity = 1
	}
	if quantity < 1 {
		return nil, ErrInvalidCartItem
	}

	product, err := s.catalog.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	item := &models.CartItem{
		CartToken: token,
		ProductID: product.ID,
		Name:      product.Name,
		Image:     product.Image,
		UnitPrice: product.Price,
		Quantity:  quantity,
	}
	if err := s.cartRepo.MergeItem(item); err != nil {
		return nil, err
	}
	return s.View(ctx, token, "")
}

// UpdateQuantity overwrites one line's quantity. Anything below one removes
// the line.
func (s *CartService) UpdateQuantity(ctx context.Context, cartToken, productID string, quantity int) (*CartView, error) {
	token := strings.TrimSpace(cartToken)
	if token == "" {
		return nil, ErrCartTokenRequired
	}
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return nil, ErrInvalidCartItem
	}
	if quantity < 1 {
		return s.RemoveItem(ctx, token, productID)
	}
	existing, err := s.cartRepo.GetByTokenAndProduct(token, productID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrInvalidCartItem
	}
	if err := s.cartRepo.SetQuantity(token, productID, quantity); err != nil {
		return nil, err
	}
	return s.View(ctx, token, "")
}

// RemoveItem drops one line from the cart.
func (s *CartService) RemoveItem(ctx context.Context, cartToken, productID string) (*CartView, error) {
	token := strings.TrimSpace(cartToken)
	if token == "" {
		return nil, ErrCartTokenRequired
	}
	if err := s.cartRepo.DeleteByTokenAndProduct(token, strings.TrimSpace(productID)); err != nil {
		return nil, err
	}
	return s.View(ctx, token, "")
}

// Clear empties the cart.
func (s *CartService) Clear(ctx context.Context, cartToken string) error {
	token := strings.TrimSpace(cartToken)
	if token == "" {
		return ErrCartTokenRequired
	}
	return s.cartRepo.ClearByToken(token)
}

// View loads the cart and computes totals, applying the promo code when one
// is supplied. An invalid promo code fails the whole view so the caller never
// renders totals with a silently dropped discount.
func (s *CartService) View(ctx context.Context, cartToken, promoCode string) (*CartView, error) {
	token := strings.TrimSpace(cartToken)
	if token == "" {
		return nil, ErrCartTokenRequired
	}
	items, err := s.cartRepo.ListByToken(token)
	if err != nil {
		return nil, err
	}
	snapshot, err := pricing.Calculate(items, promoCode)
	if err != nil {
		return nil, err
	}
	gap, met := pricing.FreeShippingGap(snapshot)
	return &CartView{
		Items:           items,
		Subtotal:        snapshot.Subtotal,
		Discount:        snapshot.Discount,
		Shipping:        snapshot.Shipping,
		Tax:             snapshot.Tax,
		Total:           snapshot.Total,
		PromoCode:       snapshot.PromoCode,
		TotalItems:      snapshot.TotalItems,
		FreeShipping:    met,
		FreeShippingGap: gap,
	}, nil
}

// ValidatePromo checks a promo code against the allow-list and returns its
// canonical form.
func (s *CartService) ValidatePromo(code string) (string, error) {
	return pricing.ValidatePromo(code)
}
