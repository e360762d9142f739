package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/akhilnair-dev/storefront-api/auth"
)

// SetupAuthRoutes registers the open registration and login endpoints.
func SetupAuthRoutes(r *gin.Engine, db *gorm.DB) {
	r.POST("/register", auth.RegisterHandler(db))
	r.POST("/login", auth.LoginHandler(db))
}
