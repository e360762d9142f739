package productController

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/akhilnair-dev/storefront-api/apperrors"
	"github.com/akhilnair-dev/storefront-api/cache"
	"github.com/akhilnair-dev/storefront-api/models"
)

type ActivateInput struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

// PATCH /products/:id/activate-deactivate
//
// Idempotent toggle. Existing cart lines and orders are untouched; stale
// lines referencing a deactivated product are caught at the next cart or
// checkout validation.
func SetProductActive(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var product models.Product
		if err := db.First(&product, "id = ?", c.Param("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				apperrors.Abort(c, apperrors.ErrNotFound)
				return
			}
			apperrors.Abort(c, err)
			return
		}

		var input ActivateInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		if err := db.Model(&product).Update("is_active", *input.IsActive).Error; err != nil {
			apperrors.Abort(c, err)
			return
		}
		cache.Invalidate("products:all")

		product.IsActive = *input.IsActive
		c.JSON(http.StatusOK, product)
	}
}
