package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	brandControllers "github.com/akhilnair-dev/storefront-api/controllers/brand"
	categoryControllers "github.com/akhilnair-dev/storefront-api/controllers/category"
	geoControllers "github.com/akhilnair-dev/storefront-api/controllers/geo"
	productController "github.com/akhilnair-dev/storefront-api/controllers/product"
	"github.com/akhilnair-dev/storefront-api/middleware"
)

// SetupCatalogRoutes registers catalog and geography resources: any
// authenticated user may read, only admins may write.
func SetupCatalogRoutes(r *gin.Engine, db *gorm.DB) {
	categories := r.Group("/categories", middleware.ValidateToken(db))
	{
		categories.GET("", categoryControllers.ListCategories(db))
		categories.GET("/:id", categoryControllers.GetCategoryByID(db))

		admin := categories.Group("", middleware.RequireAdmin)
		admin.POST("", categoryControllers.CreateCategory(db))
		admin.PUT("/:id", categoryControllers.UpdateCategory(db))
		admin.PATCH("/:id", categoryControllers.UpdateCategory(db))
		admin.DELETE("/:id", categoryControllers.DeleteCategory(db))
	}

	brands := r.Group("/brands", middleware.ValidateToken(db))
	{
		brands.GET("", brandControllers.ListBrands(db))
		brands.GET("/:id", brandControllers.GetBrandByID(db))

		admin := brands.Group("", middleware.RequireAdmin)
		admin.POST("", brandControllers.CreateBrand(db))
		admin.PUT("/:id", brandControllers.UpdateBrand(db))
		admin.PATCH("/:id", brandControllers.UpdateBrand(db))
		admin.DELETE("/:id", brandControllers.DeleteBrand(db))
	}

	states := r.Group("/states", middleware.ValidateToken(db))
	{
		states.GET("", geoControllers.ListStates(db))
		states.GET("/:id", geoControllers.GetStateByID(db))

		admin := states.Group("", middleware.RequireAdmin)
		admin.POST("", geoControllers.CreateState(db))
		admin.PUT("/:id", geoControllers.UpdateState(db))
		admin.PATCH("/:id", geoControllers.UpdateState(db))
		admin.DELETE("/:id", geoControllers.DeleteState(db))
	}

	cities := r.Group("/cities", middleware.ValidateToken(db))
	{
		cities.GET("", geoControllers.ListCities(db))
		cities.GET("/:id", geoControllers.GetCityByID(db))

		admin := cities.Group("", middleware.RequireAdmin)
		admin.POST("", geoControllers.CreateCity(db))
		admin.PUT("/:id", geoControllers.UpdateCity(db))
		admin.PATCH("/:id", geoControllers.UpdateCity(db))
		admin.DELETE("/:id", geoControllers.DeleteCity(db))
	}

	products := r.Group("/products", middleware.ValidateToken(db))
	{
		products.GET("", productController.ListProducts(db))
		products.GET("/:id", productController.GetProductByID(db))

		admin := products.Group("", middleware.RequireAdmin)
		admin.POST("", productController.CreateProduct(db))
		admin.GET("/export", productController.ExportProductsToExcel(db))
		admin.PUT("/:id", productController.UpdateProduct(db))
		admin.PATCH("/:id", productController.UpdateProduct(db))
		admin.DELETE("/:id", productController.DeleteProduct(db))
		admin.PATCH("/:id/activate-deactivate", productController.SetProductActive(db))
	}
}
