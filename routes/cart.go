package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	cartControllers "github.com/akhilnair-dev/storefront-api/controllers/cart"
	"github.com/akhilnair-dev/storefront-api/middleware"
)

// SetupCartRoutes registers the cart endpoints. Carts belong to customers
// and are always scoped to the requesting user.
func SetupCartRoutes(r *gin.Engine, db *gorm.DB) {
	carts := r.Group("/carts", middleware.ValidateToken(db), middleware.RequireCustomer)
	{
		carts.GET("", cartControllers.ListCartItems(db))
		carts.POST("", cartControllers.AddCartItem(db))
		carts.GET("/:id", cartControllers.GetCartItem(db))
		carts.PUT("/:id", cartControllers.UpdateCartItem(db))
		carts.PATCH("/:id", cartControllers.UpdateCartItem(db))
		carts.DELETE("/:id", cartControllers.DeleteCartItem(db))
	}
}
