package orderControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/akhilnair-dev/storefront-api/apperrors"
	"github.com/akhilnair-dev/storefront-api/middleware"
	"github.com/akhilnair-dev/storefront-api/models"
	"github.com/akhilnair-dev/storefront-api/permissions"
)

// -------- Request Structs --------

type ShippingInput struct {
	StreetAddress string `json:"street_address" binding:"required"`
	CityID        uint   `json:"city_id" binding:"required"`
	PostalCode    string `json:"postal_code" binding:"required"`
	PhoneNumber   string `json:"phone_number" binding:"required"`
}

type CreateOrderInput struct {
	ProductID     uint   `json:"product_id" binding:"required"`
	Quantity      int    `json:"quantity" binding:"required,min=1"`
	StreetAddress string `json:"street_address" binding:"required"`
	CityID        uint   `json:"city_id" binding:"required"`
	PostalCode    string `json:"postal_code" binding:"required"`
	PhoneNumber   string `json:"phone_number" binding:"required"`
}

type UpdateOrderInput struct {
	ProductID     *uint               `json:"product_id"`
	Quantity      *int                `json:"quantity"`
	Status        *models.OrderStatus `json:"status"`
	StreetAddress *string             `json:"street_address"`
	CityID        *uint               `json:"city_id"`
	PostalCode    *string             `json:"postal_code"`
	PhoneNumber   *string             `json:"phone_number"`
}

// -------- Core Logic --------

func resolveCity(db *gorm.DB, cityID uint) (*models.City, error) {
	var city models.City
	if err := db.First(&city, "id = ?", cityID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &city, nil
}

// CreateOrder validates the product and shipping city and persists a
// PENDING order owned by the actor. A client-supplied user is never
// trusted; stock is checked but not decremented.
func CreateOrder(db *gorm.DB, actor *models.User, input CreateOrderInput) (*models.Order, error) {
	product, err := models.ResolvePurchasable(db, input.ProductID, input.Quantity)
	if err != nil {
		return nil, err
	}
	city, err := resolveCity(db, input.CityID)
	if err != nil {
		return nil, err
	}

	order := models.Order{
		UserID:        actor.ID,
		ProductID:     product.ID,
		Quantity:      input.Quantity,
		Status:        models.OrderStatusPending,
		StreetAddress: input.StreetAddress,
		CityID:        city.ID,
		StateID:       city.StateID,
		PostalCode:    input.PostalCode,
		PhoneNumber:   input.PhoneNumber,
	}
	if err := db.Create(&order).Error; err != nil {
		return nil, err
	}

	order.Product = *product
	order.ComputeTotal()
	return &order, nil
}

// applyUpdate merges the input into a PENDING order, re-running the
// product/stock validations when product or quantity change and
// re-deriving state when the city changes.
func applyUpdate(db *gorm.DB, actor *models.User, order *models.Order, input UpdateOrderInput) error {
	if order.Status != models.OrderStatusPending {
		return apperrors.ErrOrderNotPending
	}

	if input.Status != nil && *input.Status != order.Status {
		next := *input.Status
		if !models.ValidStatus(next) {
			return apperrors.ErrInvalidStatus
		}
		if !permissions.CanTransition(actor, order.Status, next) {
			if next == models.OrderStatusProcessing {
				return apperrors.ErrPermissionDenied
			}
			return apperrors.ErrInvalidStatus
		}
		order.Status = next
	}

	productID := order.ProductID
	quantity := order.Quantity
	revalidate := false
	if input.ProductID != nil && *input.ProductID != productID {
		productID = *input.ProductID
		revalidate = true
	}
	if input.Quantity != nil && *input.Quantity != quantity {
		quantity = *input.Quantity
		revalidate = true
	}
	if revalidate {
		product, err := models.ResolvePurchasable(db, productID, quantity)
		if err != nil {
			return err
		}
		order.ProductID = product.ID
		order.Quantity = quantity
	}

	if input.CityID != nil && *input.CityID != order.CityID {
		city, err := resolveCity(db, *input.CityID)
		if err != nil {
			return err
		}
		order.CityID = city.ID
		order.StateID = city.StateID
	}
	if input.StreetAddress != nil {
		order.StreetAddress = *input.StreetAddress
	}
	if input.PostalCode != nil {
		order.PostalCode = *input.PostalCode
	}
	if input.PhoneNumber != nil {
		order.PhoneNumber = *input.PhoneNumber
	}

	return db.Save(order).Error
}

// loadOrderFor fetches an order the actor may see: admins reach any order,
// customers only their own. Misses and foreign rows are both 404.
func loadOrderFor(db *gorm.DB, actor *models.User, id string) (*models.Order, error) {
	var order models.Order
	if err := db.Preload("Product").First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	if !permissions.IsAdminOrOwner(actor, order.UserID) {
		return nil, apperrors.ErrNotFound
	}
	return &order, nil
}

// -------- Handlers --------

// GET /orders
func ListOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := middleware.CurrentUser(c)

		q := db.Preload("Product").Order("created_at DESC")
		if !permissions.IsAdmin(actor) {
			q = q.Where("user_id = ?", actor.ID)
		}

		var orders []models.Order
		if err := q.Find(&orders).Error; err != nil {
			apperrors.Abort(c, err)
			return
		}
		for i := range orders {
			orders[i].ComputeTotal()
		}
		c.JSON(http.StatusOK, orders)
	}
}

// GET /orders/:id
func GetOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := middleware.CurrentUser(c)

		order, err := loadOrderFor(db, actor, c.Param("id"))
		if err != nil {
			apperrors.Abort(c, err)
			return
		}
		order.ComputeTotal()
		c.JSON(http.StatusOK, order)
	}
}

// POST /orders
func CreateOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := middleware.CurrentUser(c)

		var input CreateOrderInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		order, err := CreateOrder(db, actor, input)
		if err != nil {
			apperrors.Abort(c, err)
			return
		}
		broadcastNewOrder(*order)
		c.JSON(http.StatusCreated, order)
	}
}

// PUT/PATCH /orders/:id
func UpdateOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := middleware.CurrentUser(c)

		order, err := loadOrderFor(db, actor, c.Param("id"))
		if err != nil {
			apperrors.Abort(c, err)
			return
		}

		var input UpdateOrderInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		if err := applyUpdate(db, actor, order, input); err != nil {
			apperrors.Abort(c, err)
			return
		}

		if err := db.Preload("Product").First(order, order.ID).Error; err != nil {
			apperrors.Abort(c, err)
			return
		}
		order.ComputeTotal()
		c.JSON(http.StatusOK, order)
	}
}

// DELETE /orders/:id
func DeleteOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := middleware.CurrentUser(c)

		order, err := loadOrderFor(db, actor, c.Param("id"))
		if err != nil {
			apperrors.Abort(c, err)
			return
		}

		if order.Status != models.OrderStatusPending {
			apperrors.Abort(c, apperrors.ErrOrderNotPending)
			return
		}

		if err := db.Delete(order).Error; err != nil {
			apperrors.Abort(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Order deleted"})
	}
}
