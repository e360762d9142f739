package brandControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/akhilnair-dev/storefront-api/apperrors"
	"github.com/akhilnair-dev/storefront-api/models"
)

type BrandInput struct {
	Name string `json:"name" binding:"required"`
}

// GET /brands
func ListBrands(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var brands []models.Brand
		if err := db.Order("name").Find(&brands).Error; err != nil {
			apperrors.Abort(c, err)
			return
		}
		c.JSON(http.StatusOK, brands)
	}
}

// GET /brands/:id
func GetBrandByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var brand models.Brand
		if err := db.First(&brand, "id = ?", c.Param("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				apperrors.Abort(c, apperrors.ErrNotFound)
				return
			}
			apperrors.Abort(c, err)
			return
		}
		c.JSON(http.StatusOK, brand)
	}
}

// POST /brands
func CreateBrand(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input BrandInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		var count int64
		if err := db.Model(&models.Brand{}).Where("name = ?", input.Name).Count(&count).Error; err != nil {
			apperrors.Abort(c, err)
			return
		}
		if count > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "a brand with this name already exists"})
			return
		}

		brand := models.Brand{Name: input.Name}
		if err := db.Create(&brand).Error; err != nil {
			apperrors.Abort(c, err)
			return
		}
		c.JSON(http.StatusCreated, brand)
	}
}

// PUT/PATCH /brands/:id
func UpdateBrand(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var brand models.Brand
		if err := db.First(&brand, "id = ?", c.Param("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				apperrors.Abort(c, apperrors.ErrNotFound)
				return
			}
			apperrors.Abort(c, err)
			return
		}

		var input BrandInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		var count int64
		if err := db.Model(&models.Brand{}).
			Where("name = ? AND id <> ?", input.Name, brand.ID).Count(&count).Error; err != nil {
			apperrors.Abort(c, err)
			return
		}
		if count > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "a brand with this name already exists"})
			return
		}

		brand.Name = input.Name
		if err := db.Save(&brand).Error; err != nil {
			apperrors.Abort(c, err)
			return
		}
		c.JSON(http.StatusOK, brand)
	}
}

// DELETE /brands/:id
//
// Products keep existing with their brand set to null.
func DeleteBrand(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var brand models.Brand
		if err := db.First(&brand, "id = ?", c.Param("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				apperrors.Abort(c, apperrors.ErrNotFound)
				return
			}
			apperrors.Abort(c, err)
			return
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Model(&models.Product{}).Where("brand_id = ?", brand.ID).
				Update("brand_id", nil).Error; err != nil {
				return err
			}
			return tx.Delete(&brand).Error
		})
		if err != nil {
			apperrors.Abort(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Brand deleted"})
	}
}
