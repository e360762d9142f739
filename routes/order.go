package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	orderControllers "github.com/akhilnair-dev/storefront-api/controllers/order"
	"github.com/akhilnair-dev/storefront-api/middleware"
)

// SetupOrderRoutes registers order and checkout endpoints. Admins see
// every order, customers only their own; mutation is gated to PENDING
// inside the handlers.
func SetupOrderRoutes(r *gin.Engine, db *gorm.DB) {
	orders := r.Group("/orders", middleware.ValidateToken(db))
	{
		orders.GET("", orderControllers.ListOrdersHandler(db))
		orders.POST("", orderControllers.CreateOrderHandler(db))
		orders.GET("/feed", middleware.RequireAdmin, orderControllers.OrderFeedHandler)
		orders.GET("/:id", orderControllers.GetOrderHandler(db))
		orders.PUT("/:id", orderControllers.UpdateOrderHandler(db))
		orders.PATCH("/:id", orderControllers.UpdateOrderHandler(db))
		orders.DELETE("/:id", orderControllers.DeleteOrderHandler(db))
	}

	r.POST("/checkout", middleware.ValidateToken(db), middleware.RequireCustomer,
		orderControllers.CheckoutHandler(db))
}
