package cartControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/akhilnair-dev/storefront-api/apperrors"
	"github.com/akhilnair-dev/storefront-api/middleware"
	"github.com/akhilnair-dev/storefront-api/models"
)

type CartItemInput struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,min=1"`
}

type UpdateCartItemInput struct {
	ProductID *uint `json:"product_id"`
	Quantity  *int  `json:"quantity"`
}

// ownLine loads a cart line scoped to the requesting user. Foreign or
// absent ids are indistinguishable 404s.
func ownLine(db *gorm.DB, userID uint, id string) (*models.CartItem, error) {
	var line models.CartItem
	err := db.Preload("Product").Where("user_id = ?", userID).First(&line, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &line, nil
}

// GET /carts
func ListCartItems(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)

		var lines []models.CartItem
		if err := db.Preload("Product").Where("user_id = ?", user.ID).
			Order("created_at").Find(&lines).Error; err != nil {
			apperrors.Abort(c, err)
			return
		}
		for i := range lines {
			lines[i].ComputeTotal()
		}
		c.JSON(http.StatusOK, lines)
	}
}

// GET /carts/:id
func GetCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)

		line, err := ownLine(db, user.ID, c.Param("id"))
		if err != nil {
			apperrors.Abort(c, err)
			return
		}
		line.ComputeTotal()
		c.JSON(http.StatusOK, line)
	}
}

// POST /carts
//
// Creates the (user, product) line, or overwrites its quantity when one
// already exists.
func AddCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)

		var input CartItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		product, err := models.ResolvePurchasable(db, input.ProductID, input.Quantity)
		if err != nil {
			apperrors.Abort(c, err)
			return
		}

		var line models.CartItem
		err = db.Where("user_id = ? AND product_id = ?", user.ID, product.ID).First(&line).Error
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				apperrors.Abort(c, err)
				return
			}
			line = models.CartItem{
				UserID:    user.ID,
				ProductID: product.ID,
				Quantity:  input.Quantity,
			}
			if err := db.Create(&line).Error; err != nil {
				apperrors.Abort(c, err)
				return
			}
			line.Product = *product
			line.ComputeTotal()
			c.JSON(http.StatusCreated, line)
			return
		}

		line.Quantity = input.Quantity
		if err := db.Save(&line).Error; err != nil {
			apperrors.Abort(c, err)
			return
		}
		line.Product = *product
		line.ComputeTotal()
		c.JSON(http.StatusOK, line)
	}
}

// PUT/PATCH /carts/:id
func UpdateCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)

		line, err := ownLine(db, user.ID, c.Param("id"))
		if err != nil {
			apperrors.Abort(c, err)
			return
		}

		var input UpdateCartItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		productID := line.ProductID
		if input.ProductID != nil {
			productID = *input.ProductID
		}
		quantity := line.Quantity
		if input.Quantity != nil {
			quantity = *input.Quantity
		}

		product, err := models.ResolvePurchasable(db, productID, quantity)
		if err != nil {
			apperrors.Abort(c, err)
			return
		}

		if productID != line.ProductID {
			var count int64
			if err := db.Model(&models.CartItem{}).
				Where("user_id = ? AND product_id = ? AND id <> ?", user.ID, productID, line.ID).
				Count(&count).Error; err != nil {
				apperrors.Abort(c, err)
				return
			}
			if count > 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "another cart line already holds this product"})
				return
			}
		}

		line.ProductID = productID
		line.Quantity = quantity
		if err := db.Save(line).Error; err != nil {
			apperrors.Abort(c, err)
			return
		}
		line.Product = *product
		line.ComputeTotal()
		c.JSON(http.StatusOK, line)
	}
}

// DELETE /carts/:id
func DeleteCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)

		result := db.Where("user_id = ? AND id = ?", user.ID, c.Param("id")).Delete(&models.CartItem{})
		if result.Error != nil {
			apperrors.Abort(c, result.Error)
			return
		}
		if result.RowsAffected == 0 {
			apperrors.Abort(c, apperrors.ErrNotFound)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Cart item deleted"})
	}
}
