package models

import (
	"time"
)

// CartItem is one product line in a cart. A cart is identified by an opaque
// cart token (one browsing session, one writer); the (token, product) pair is
// unique so adding an existing product merges quantities instead of inserting
// a duplicate row. Name, image and unit price are snapshotted at add time so
// the cart renders without another catalog round trip.
type CartItem struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CartToken string         `gorm:"type:varchar(64);not null;uniqueIndex:idx_cart_token_product" json:"-"`
	ProductID string         `gorm:"type:varchar(128);not null;uniqueIndex:idx_cart_token_product" json:"product_id"`
	Name      string         `gorm:"not null" json:"name"`
	Image     string         `json:"image"`
	UnitPrice Money          `gorm:"type:bigint;not null;default:0" json:"unit_price"`
	Quantity  int            `gorm:"not null" json:"quantity"`
	CreatedAt time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt time.Time      `gorm:"index" json:"updated_at"`
}

// TableName sets the table name.
func (CartItem) TableName() string {
	return "cart_items"
}
