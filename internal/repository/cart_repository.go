package repository

import (
	"errors"

	"github.com/cyfa-store/api/internal/models"

	"gorm.io/gorm"
)

// CartRepository is the load/save boundary for cart state. Callers own an
// opaque cart token; the repository guarantees at most one row per
// (token, product) pair.
type CartRepository interface {
	ListByToken(cartToken string) ([]models.CartItem, error)
	GetByTokenAndProduct(cartToken, productID string) (*models.CartItem, error)
	MergeItem(item *models.CartItem) error
	SetQuantity(cartToken, productID string, quantity int) error
	DeleteByTokenAndProduct(cartToken, productID string) error
	ClearByToken(cartToken string) error
	WithTx(tx *gorm.DB) *GormCartRepository
}

// GormCartRepository is the GORM implementation.
type GormCartRepository struct {
	db *gorm.DB
}

// NewCartRepository creates a cart repository.
func NewCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *GormCartRepository) WithTx(tx *gorm.DB) *GormCartRepository {
	if tx == nil {
		return r
	}
	return &GormCartRepository{db: tx}
}

// ListByToken returns the cart's items, oldest first so the rendered order is
// stable across mutations.
func (r *GormCartRepository) ListByToken(cartToken string) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := r.db.Where("cart_token = ?", cartToken).Order("created_at asc, id asc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// GetByTokenAndProduct returns one line, or nil when absent.
func (r *GormCartRepository) GetByTokenAndProduct(cartToken, productID string) (*models.CartItem, error) {
	var item models.CartItem
	err := r.db.Where("cart_token = ? AND product_id = ?", cartToken, productID).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// MergeItem inserts the line, or adds its quantity onto an existing row for
// the same product. The price snapshot is refreshed from the incoming item.
func (r *GormCartRepository) MergeItem(item *models.CartItem) error {
	if item == nil {
		return nil
	}
	var existing models.CartItem
	err := r.db.Where("cart_token = ? AND product_id = ?", item.CartToken, item.ProductID).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.db.Create(item).Error
	}
	if err != nil {
		return err
	}
	updates := map[string]interface{}{
		"quantity":   existing.Quantity + item.Quantity,
		"name":       item.Name,
		"image":      item.Image,
		"unit_price": item.UnitPrice,
		"updated_at": item.UpdatedAt,
	}
	return r.db.Model(&existing).Updates(updates).Error
}

// SetQuantity overwrites the quantity for one line. Quantities below one are
// the service layer's problem; this only writes what it is told.
func (r *GormCartRepository) SetQuantity(cartToken, productID string, quantity int) error {
	return r.db.Model(&models.CartItem{}).
		Where("cart_token = ? AND product_id = ?", cartToken, productID).
		Update("quantity", quantity).Error
}

// DeleteByTokenAndProduct removes one line; absent lines are a no-op.
func (r *GormCartRepository) DeleteByTokenAndProduct(cartToken, productID string) error {
	return r.db.Where("cart_token = ? AND product_id = ?", cartToken, productID).Delete(&models.CartItem{}).Error
}

// ClearByToken empties the cart.
func (r *GormCartRepository) ClearByToken(cartToken string) error {
	return r.db.Where("cart_token = ?", cartToken).Delete(&models.CartItem{}).Error
}
