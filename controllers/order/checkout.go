package orderControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/akhilnair-dev/storefront-api/apperrors"
	"github.com/akhilnair-dev/storefront-api/middleware"
	"github.com/akhilnair-dev/storefront-api/models"
)

// Checkout atomically drains the user's cart into one PENDING order per
// line, all sharing the given shipping fields. Any line failing the
// activation or stock check aborts the whole transaction: no orders are
// created and the cart is left untouched. Stock is validated, never
// decremented.
func Checkout(db *gorm.DB, actor *models.User, shipping ShippingInput) ([]models.Order, error) {
	var created []models.Order

	err := db.Transaction(func(tx *gorm.DB) error {
		// Concurrent checkouts by the same user serialize on the locked
		// lines; the second one re-reads an empty cart.
		var lines []models.CartItem
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ?", actor.ID).Order("created_at").Find(&lines).Error; err != nil {
			return err
		}
		if len(lines) == 0 {
			return apperrors.ErrEmptyCart
		}

		city, err := resolveCity(tx, shipping.CityID)
		if err != nil {
			return err
		}

		for _, line := range lines {
			product, err := models.ResolvePurchasable(tx, line.ProductID, line.Quantity)
			if err != nil {
				return err
			}

			order := models.Order{
				UserID:        actor.ID,
				ProductID:     product.ID,
				Quantity:      line.Quantity,
				Status:        models.OrderStatusPending,
				StreetAddress: shipping.StreetAddress,
				CityID:        city.ID,
				StateID:       city.StateID,
				PostalCode:    shipping.PostalCode,
				PhoneNumber:   shipping.PhoneNumber,
			}
			if err := tx.Create(&order).Error; err != nil {
				return err
			}
			order.Product = *product
			order.ComputeTotal()
			created = append(created, order)
		}

		return tx.Where("user_id = ?", actor.ID).Delete(&models.CartItem{}).Error
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// POST /checkout
func CheckoutHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := middleware.CurrentUser(c)

		var shipping ShippingInput
		if err := c.ShouldBindJSON(&shipping); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		orders, err := Checkout(db, actor, shipping)
		if err != nil {
			apperrors.Abort(c, err)
			return
		}

		for _, order := range orders {
			broadcastNewOrder(order)
		}
		c.JSON(http.StatusCreated, orders)
	}
}
