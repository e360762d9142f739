package categoryControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gosimple/slug"
	"gorm.io/gorm"

	"github.com/akhilnair-dev/storefront-api/apperrors"
	"github.com/akhilnair-dev/storefront-api/models"
)

type CreateCategoryInput struct {
	Name        string `json:"name" binding:"required"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	ParentID    *uint  `json:"parent_id"`
	IsFeatured  bool   `json:"is_featured"`
}

type UpdateCategoryInput struct {
	Name        *string `json:"name"`
	Slug        *string `json:"slug"`
	Description *string `json:"description"`
	ParentID    *uint   `json:"parent_id"`
	IsFeatured  *bool   `json:"is_featured"`
}

func slugTaken(db *gorm.DB, s string, excludeID uint) (bool, error) {
	var count int64
	q := db.Model(&models.Category{}).Where("slug = ?", s)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// GET /categories
func ListCategories(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var categories []models.Category
		if err := db.Order("name").Find(&categories).Error; err != nil {
			apperrors.Abort(c, err)
			return
		}
		c.JSON(http.StatusOK, categories)
	}
}

// GET /categories/:id
func GetCategoryByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var category models.Category
		if err := db.First(&category, "id = ?", c.Param("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				apperrors.Abort(c, apperrors.ErrNotFound)
				return
			}
			apperrors.Abort(c, err)
			return
		}
		c.JSON(http.StatusOK, category)
	}
}

// POST /categories
func CreateCategory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input CreateCategoryInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
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

		if input.ParentID != nil {
			var count int64
			if err := db.Model(&models.Category{}).Where("id = ?", *input.ParentID).Count(&count).Error; err != nil {
				apperrors.Abort(c, err)
				return
			}
			if count == 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "parent category does not exist"})
				return
			}
		}

		category := models.Category{
			Name:        input.Name,
			Slug:        input.Slug,
			Description: input.Description,
			ParentID:    input.ParentID,
			IsFeatured:  input.IsFeatured,
		}
		if err := db.Create(&category).Error; err != nil {
			apperrors.Abort(c, err)
			return
		}
		c.JSON(http.StatusCreated, category)
	}
}

// PUT/PATCH /categories/:id
func UpdateCategory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var category models.Category
		if err := db.First(&category, "id = ?", c.Param("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				apperrors.Abort(c, apperrors.ErrNotFound)
				return
			}
			apperrors.Abort(c, err)
			return
		}

		var input UpdateCategoryInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		if input.Name != nil {
			category.Name = *input.Name
		}
		if input.Slug != nil {
			category.Slug = *input.Slug
		}
		if input.Description != nil {
			category.Description = *input.Description
		}
		if input.ParentID != nil {
			if *input.ParentID == category.ID {
				c.JSON(http.StatusBadRequest, gin.H{"error": "category cannot be its own parent"})
				return
			}
			var count int64
			if err := db.Model(&models.Category{}).Where("id = ?", *input.ParentID).Count(&count).Error; err != nil {
				apperrors.Abort(c, err)
				return
			}
			if count == 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "parent category does not exist"})
				return
			}
			category.ParentID = input.ParentID
		}
		if input.IsFeatured != nil {
			category.IsFeatured = *input.IsFeatured
		}

		taken, err := slugTaken(db, category.Slug, category.ID)
		if err != nil {
			apperrors.Abort(c, err)
			return
		}
		if taken {
			apperrors.Abort(c, apperrors.ErrDuplicateSlug)
			return
		}

		if err := db.Save(&category).Error; err != nil {
			apperrors.Abort(c, err)
			return
		}
		c.JSON(http.StatusOK, category)
	}
}

// DELETE /categories/:id
//
// Cascades to the category's products and detaches child categories.
func DeleteCategory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var category models.Category
		if err := db.First(&category, "id = ?", c.Param("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				apperrors.Abort(c, apperrors.ErrNotFound)
				return
			}
			apperrors.Abort(c, err)
			return
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("category_id = ?", category.ID).Delete(&models.Product{}).Error; err != nil {
				return err
			}
			if err := tx.Model(&models.Category{}).Where("parent_id = ?", category.ID).
				Update("parent_id", nil).Error; err != nil {
				return err
			}
			return tx.Delete(&category).Error
		})
		if err != nil {
			apperrors.Abort(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Category deleted"})
	}
}
