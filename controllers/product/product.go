package productController

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"

	"github.com/akhilnair-dev/storefront-api/apperrors"
	"github.com/akhilnair-dev/storefront-api/cache"
	"github.com/akhilnair-dev/storefront-api/models"
)

const listCacheKey = "products:all"

type CreateProductInput struct {
	Name          string   `json:"name" binding:"required"`
	Slug          string   `json:"slug"`
	Description   string   `json:"description"`
	CategoryID    uint     `json:"category_id" binding:"required"`
	BrandID       *uint    `json:"brand_id"`
	Price         float64  `json:"price" binding:"required"`
	DiscountPrice *float64 `json:"discount_price"`
	StockQuantity int      `json:"stock_quantity"`
	SKU           string   `json:"sku"`
}

// A zero brand_id or discount_price clears the field; neither zero is a
// legal stored value.
type UpdateProductInput struct {
	Name          *string  `json:"name"`
	Slug          *string  `json:"slug"`
	Description   *string  `json:"description"`
	CategoryID    *uint    `json:"category_id"`
	BrandID       *uint    `json:"brand_id"`
	Price         *float64 `json:"price"`
	DiscountPrice *float64 `json:"discount_price"`
	StockQuantity *int     `json:"stock_quantity"`
}

func newSKU() string {
	return "SKU-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:12])
}

func slugTaken(db *gorm.DB, s string, excludeID uint) (bool, error) {
	var count int64
	q := db.Model(&models.Product{}).Where("slug = ?", s)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// GET /products
func ListProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var products []models.Product
		if cache.Get(listCacheKey, &products) {
			c.JSON(http.StatusOK, products)
			return
		}

		if err := db.Order("name").Find(&products).Error; err != nil {
			apperrors.Abort(c, err)
			return
		}
		cache.Set(listCacheKey, products, 5*time.Minute)
		c.JSON(http.StatusOK, products)
	}
}

// GET /products/:id
func GetProductByID(db *gorm.DB) gin.HandlerFunc {
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
		c.JSON(http.StatusOK, product)
	}
}

// POST /products
func CreateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input CreateProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		var count int64
		if err := db.Model(&models.Category{}).Where("id = ?", input.CategoryID).Count(&count).Error; err != nil {
			apperrors.Abort(c, err)
			return
		}
		if count == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "category does not exist"})
			return
		}
		if input.BrandID != nil {
			if err := db.Model(&models.Brand{}).Where("id = ?", *input.BrandID).Count(&count).Error; err != nil {
				apperrors.Abort(c, err)
				return
			}
			if count == 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "brand does not exist"})
				return
			}
		}

		if input.Slug == "" {
			input.Slug = slug.Make(input.Name)
		}
		taken, err := slugTaken(db, input.Slug, 0)
		if err != nil {
			apperrors.Abort(c, err)
			return
		}
		if taken {
			apperrors.Abort(c, apperrors.ErrDuplicateSlug)
			return
		}
		if input.SKU == "" {
			input.SKU = newSKU()
		}

		product := models.Product{
			Name:          input.Name,
			Slug:          input.Slug,
			Description:   input.Description,
			CategoryID:    input.CategoryID,
			BrandID:       input.BrandID,
			Price:         input.Price,
			DiscountPrice: input.DiscountPrice,
			StockQuantity: input.StockQuantity,
			IsActive:      true,
			SKU:           input.SKU,
		}
		if err := product.Validate(); err != nil {
			apperrors.Abort(c, err)
			return
		}

		if err := db.Create(&product).Error; err != nil {
			apperrors.Abort(c, err)
			return
		}
		cache.Invalidate(listCacheKey)
		c.JSON(http.StatusCreated, product)
	}
}

// PUT/PATCH /products/:id
func UpdateProduct(db *gorm.DB) gin.HandlerFunc {
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

		var input UpdateProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		if input.Name != nil {
			product.Name = *input.Name
		}
		if input.Slug != nil {
			product.Slug = *input.Slug
		}
		if input.Description != nil {
			product.Description = *input.Description
		}
		if input.CategoryID != nil {
			var count int64
			if err := db.Model(&models.Category{}).Where("id = ?", *input.CategoryID).Count(&count).Error; err != nil {
				apperrors.Abort(c, err)
				return
			}
			if count == 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "category does not exist"})
				return
			}
			product.CategoryID = *input.CategoryID
		}
		if input.BrandID != nil {
			if *input.BrandID == 0 {
				product.BrandID = nil
			} else {
				var count int64
				if err := db.Model(&models.Brand{}).Where("id = ?", *input.BrandID).Count(&count).Error; err != nil {
					apperrors.Abort(c, err)
					return
				}
				if count == 0 {
					c.JSON(http.StatusBadRequest, gin.H{"error": "brand does not exist"})
					return
				}
				product.BrandID = input.BrandID
			}
		}
		if input.Price != nil {
			product.Price = *input.Price
		}
		if input.DiscountPrice != nil {
			if *input.DiscountPrice == 0 {
				product.DiscountPrice = nil
			} else {
				product.DiscountPrice = input.DiscountPrice
			}
		}
		if input.StockQuantity != nil {
			product.StockQuantity = *input.StockQuantity
		}

		if err := product.Validate(); err != nil {
			apperrors.Abort(c, err)
			return
		}
		taken, err := slugTaken(db, product.Slug, product.ID)
		if err != nil {
			apperrors.Abort(c, err)
			return
		}
		if taken {
			apperrors.Abort(c, apperrors.ErrDuplicateSlug)
			return
		}

		if err := db.Save(&product).Error; err != nil {
			apperrors.Abort(c, err)
			return
		}
		cache.Invalidate(listCacheKey)
		c.JSON(http.StatusOK, product)
	}
}

// DELETE /products/:id
//
// Orders reference products historically, so rows are never removed;
// deletion deactivates the product.
func DeleteProduct(db *gorm.DB) gin.HandlerFunc {
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

		if err := db.Model(&product).Update("is_active", false).Error; err != nil {
			apperrors.Abort(c, err)
			return
		}
		cache.Invalidate(listCacheKey)
		c.JSON(http.StatusOK, gin.H{"message": "Product deactivated"})
	}
}
