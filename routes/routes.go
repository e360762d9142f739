package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/akhilnair-dev/storefront-api/metrics"
)

// SetupRoutes is the single entry-point that wires up every route group.
func SetupRoutes(r *gin.Engine, db *gorm.DB) {
	// Public auth routes (no middleware)
	SetupAuthRoutes(r, db)

	// Catalog + geography (authenticated read, admin write)
	SetupCatalogRoutes(r, db)

	// Cart routes (customer, scoped to self)
	SetupCartRoutes(r, db)

	// Order + checkout routes
	SetupOrderRoutes(r, db)

	// Prometheus scrape endpoint
	r.GET("/metrics", metrics.Handler())
}
