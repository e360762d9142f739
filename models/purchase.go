package models

import (
	"errors"

	"gorm.io/gorm"

	"github.com/akhilnair-dev/storefront-api/apperrors"
)

// ResolvePurchasable loads a product and checks it can be bought in the
// requested quantity: it must exist, be active, and have enough stock.
// Stock is checked, never reserved.
func ResolvePurchasable(db *gorm.DB, productID uint, quantity int) (*Product, error) {
	if quantity < 1 {
		return nil, apperrors.ErrInvalidQuantity
	}

	var product Product
	if err := db.First(&product, "id = ?", productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}

	if !product.IsActive {
		return nil, apperrors.ErrProductInactive
	}
	if quantity > product.StockQuantity {
		return nil, apperrors.ErrInsufficientStock
	}
	return &product, nil
}
