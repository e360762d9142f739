package geoControllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/akhilnair-dev/storefront-api/apperrors"
	"github.com/akhilnair-dev/storefront-api/models"
)

type StateInput struct {
	Abbreviation string `json:"abbreviation" binding:"required,len=2"`
	Name         string `json:"name" binding:"required"`
}

type CityInput struct {
	Name    string `json:"name" binding:"required"`
	StateID uint   `json:"state_id" binding:"required"`
}

type UpdateCityInput struct {
	Name    *string `json:"name"`
	StateID *uint   `json:"state_id"`
}

// GET /states
func ListStates(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var states []models.State
		if err := db.Order("abbreviation").Find(&states).Error; err != nil {
			apperrors.Abort(c, err)
			return
		}
		c.JSON(http.StatusOK, states)
	}
}

// GET /states/:id
func GetStateByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var state models.State
		if err := db.First(&state, "id = ?", c.Param("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				apperrors.Abort(c, apperrors.ErrNotFound)
				return
			}
			apperrors.Abort(c, err)
			return
		}
		c.JSON(http.StatusOK, state)
	}
}

// POST /states
func CreateState(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input StateInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		input.Abbreviation = strings.ToUpper(input.Abbreviation)

		var count int64
		if err := db.Model(&models.State{}).
			Where("abbreviation = ?", input.Abbreviation).Count(&count).Error; err != nil {
			apperrors.Abort(c, err)
			return
		}
		if count > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "a state with this abbreviation already exists"})
			return
		}

		state := models.State{Abbreviation: input.Abbreviation, Name: input.Name}
		if err := db.Create(&state).Error; err != nil {
			apperrors.Abort(c, err)
			return
		}
		c.JSON(http.StatusCreated, state)
	}
}

// PUT/PATCH /states/:id
func UpdateState(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var state models.State
		if err := db.First(&state, "id = ?", c.Param("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				apperrors.Abort(c, apperrors.ErrNotFound)
				return
			}
			apperrors.Abort(c, err)
			return
		}

		var input struct {
			Abbreviation *string `json:"abbreviation"`
			Name         *string `json:"name"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		if input.Abbreviation != nil {
			abbr := strings.ToUpper(*input.Abbreviation)
			if len(abbr) != 2 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "abbreviation must be exactly 2 characters"})
				return
			}
			var count int64
			if err := db.Model(&models.State{}).
				Where("abbreviation = ? AND id <> ?", abbr, state.ID).Count(&count).Error; err != nil {
				apperrors.Abort(c, err)
				return
			}
			if count > 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "a state with this abbreviation already exists"})
				return
			}
			state.Abbreviation = abbr
		}
		if input.Name != nil {
			state.Name = *input.Name
		}

		if err := db.Save(&state).Error; err != nil {
			apperrors.Abort(c, err)
			return
		}
		c.JSON(http.StatusOK, state)
	}
}

// DELETE /states/:id
//
// Cascades to the state's cities and to orders shipped to them.
func DeleteState(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var state models.State
		if err := db.First(&state, "id = ?", c.Param("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				apperrors.Abort(c, apperrors.ErrNotFound)
				return
			}
			apperrors.Abort(c, err)
			return
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("state_id = ?", state.ID).Delete(&models.Order{}).Error; err != nil {
				return err
			}
			if err := tx.Where("state_id = ?", state.ID).Delete(&models.City{}).Error; err != nil {
				return err
			}
			return tx.Delete(&state).Error
		})
		if err != nil {
			apperrors.Abort(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "State deleted"})
	}
}

// GET /cities
func ListCities(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var cities []models.City
		if err := db.Preload("State").Order("name").Find(&cities).Error; err != nil {
			apperrors.Abort(c, err)
			return
		}
		c.JSON(http.StatusOK, cities)
	}
}

// GET /cities/:id
func GetCityByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var city models.City
		if err := db.Preload("State").First(&city, "id = ?", c.Param("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				apperrors.Abort(c, apperrors.ErrNotFound)
				return
			}
			apperrors.Abort(c, err)
			return
		}
		c.JSON(http.StatusOK, city)
	}
}

// POST /cities
func CreateCity(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input CityInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		var count int64
		if err := db.Model(&models.State{}).Where("id = ?", input.StateID).Count(&count).Error; err != nil {
			apperrors.Abort(c, err)
			return
		}
		if count == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "state does not exist"})
			return
		}

		city := models.City{Name: input.Name, StateID: input.StateID}
		if err := db.Create(&city).Error; err != nil {
			apperrors.Abort(c, err)
			return
		}
		if err := db.Preload("State").First(&city, city.ID).Error; err != nil {
			apperrors.Abort(c, err)
			return
		}
		c.JSON(http.StatusCreated, city)
	}
}

// PUT/PATCH /cities/:id
func UpdateCity(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var city models.City
		if err := db.First(&city, "id = ?", c.Param("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				apperrors.Abort(c, apperrors.ErrNotFound)
				return
			}
			apperrors.Abort(c, err)
			return
		}

		var input UpdateCityInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		if input.Name != nil {
			city.Name = *input.Name
		}
		if input.StateID != nil {
			var count int64
			if err := db.Model(&models.State{}).Where("id = ?", *input.StateID).Count(&count).Error; err != nil {
				apperrors.Abort(c, err)
				return
			}
			if count == 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "state does not exist"})
				return
			}
			city.StateID = *input.StateID
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Save(&city).Error; err != nil {
				return err
			}
			// Orders denormalize state from city; keep them consistent
			// when the city moves to another state.
			return tx.Model(&models.Order{}).Where("city_id = ?", city.ID).
				Update("state_id", city.StateID).Error
		})
		if err != nil {
			apperrors.Abort(c, err)
			return
		}

		if err := db.Preload("State").First(&city, city.ID).Error; err != nil {
			apperrors.Abort(c, err)
			return
		}
		c.JSON(http.StatusOK, city)
	}
}

// DELETE /cities/:id
//
// Cascades to orders shipped to the city.
func DeleteCity(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var city models.City
		if err := db.First(&city, "id = ?", c.Param("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				apperrors.Abort(c, apperrors.ErrNotFound)
				return
			}
			apperrors.Abort(c, err)
			return
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("city_id = ?", city.ID).Delete(&models.Order{}).Error; err != nil {
				return err
			}
			return tx.Delete(&city).Error
		})
		if err != nil {
			apperrors.Abort(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "City deleted"})
	}
}
