package models

import (
	"time"

	"github.com/akhilnair-dev/storefront-api/apperrors"
)

type Product struct {
	ID            uint     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name          string   `gorm:"not null" json:"name"`
	Slug          string   `gorm:"uniqueIndex;not null" json:"slug"`
	Description   string   `json:"description"`
	CategoryID    uint     `gorm:"not null;index" json:"category_id"`
	Category      Category `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE" json:"-"`
	BrandID       *uint    `gorm:"index" json:"brand_id"`
	Brand         *Brand   `gorm:"foreignKey:BrandID;constraint:OnDelete:SET NULL" json:"-"`
	Price         float64  `gorm:"not null" json:"price"`
	DiscountPrice *float64 `json:"discount_price"`
	StockQuantity int      `gorm:"default:0" json:"stock_quantity"`
	IsActive      bool     `gorm:"default:true" json:"is_active"`
	SKU           string   `gorm:"uniqueIndex;not null" json:"sku"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// EffectiveUnitPrice is the discount price when one is set, the regular
// price otherwise.
func (p *Product) EffectiveUnitPrice() float64 {
	if p.DiscountPrice != nil {
		return *p.DiscountPrice
	}
	return p.Price
}

// Validate checks the price and stock invariants.
func (p *Product) Validate() error {
	if p.Price <= 0 {
		return apperrors.ErrInvalidPrice
	}
	if p.DiscountPrice != nil && *p.DiscountPrice >= p.Price {
		return apperrors.ErrInvalidDiscount
	}
	if p.StockQuantity < 0 {
		return apperrors.ErrInvalidStock
	}
	return nil
}
