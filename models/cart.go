package models

import "time"

// CartItem is one mutable (user, product, quantity) line. One row per
// (user, product) pair; adding the same product again overwrites it.
type CartItem struct {
	ID        uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint    `gorm:"not null;uniqueIndex:idx_cart_user_product" json:"user_id"`
	User      User    `gorm:"foreignKey:UserID" json:"-"`
	ProductID uint    `gorm:"not null;uniqueIndex:idx_cart_user_product" json:"product_id"`
	Product   Product `gorm:"foreignKey:ProductID" json:"product"`
	Quantity  int     `gorm:"not null;default:1" json:"quantity"`

	// Computed on read from the product's current effective price.
	TotalCost float64 `gorm:"-" json:"total_cost"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ComputeTotal fills TotalCost from the preloaded product.
func (ci *CartItem) ComputeTotal() {
	ci.TotalCost = float64(ci.Quantity) * ci.Product.EffectiveUnitPrice()
}
