package productController_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/akhilnair-dev/storefront-api/auth"
	"github.com/akhilnair-dev/storefront-api/models"
	"github.com/akhilnair-dev/storefront-api/routes"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.Token{}, &models.Category{}, &models.Brand{},
		&models.State{}, &models.City{}, &models.Product{},
	))
	return db
}

func newRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	routes.SetupCatalogRoutes(r, db)
	return r
}

func seedUser(t *testing.T, db *gorm.DB, email string, role models.Role) string {
	t.Helper()
	hash, err := auth.HashPassword("secret123")
	require.NoError(t, err)
	user := models.User{Email: email, Name: "Test User", PasswordHash: hash, Role: role, IsActive: true}
	require.NoError(t, db.Create(&user).Error)
	token, err := auth.GetOrCreateToken(db, user.ID)
	require.NoError(t, err)
	return token.Key
}

func seedCategory(t *testing.T, db *gorm.DB) models.Category {
	t.Helper()
	category := models.Category{Name: "Audio", Slug: "audio"}
	require.NoError(t, db.Create(&category).Error)
	return category
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Token "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateProduct(t *testing.T) {
	db := testDB(t)
	r := newRouter(db)
	adminToken := seedUser(t, db, "admin@example.com", models.RoleAdmin)
	category := seedCategory(t, db)

	w := doJSON(t, r, http.MethodPost, "/products", adminToken, map[string]interface{}{
		"name": "Boom Speaker", "category_id": category.ID,
		"price": 100, "discount_price": 80, "stock_quantity": 5,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var product models.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &product))
	assert.Equal(t, "boom-speaker", product.Slug)
	assert.True(t, product.IsActive)
	assert.True(t, strings.HasPrefix(product.SKU, "SKU-"))
	assert.Equal(t, 80.0, product.EffectiveUnitPrice())

	// Unknown category and brand are rejected.
	w = doJSON(t, r, http.MethodPost, "/products", adminToken, map[string]interface{}{
		"name": "Orphan", "category_id": 9999, "price": 10,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())

	w = doJSON(t, r, http.MethodPost, "/products", adminToken, map[string]interface{}{
		"name": "Orphan", "category_id": category.ID, "brand_id": 9999, "price": 10,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
}

func TestCreateProductRejectsBadPricing(t *testing.T) {
	db := testDB(t)
	r := newRouter(db)
	adminToken := seedUser(t, db, "admin@example.com", models.RoleAdmin)
	category := seedCategory(t, db)

	cases := []map[string]interface{}{
		{"name": "A", "category_id": category.ID, "price": -5},
		{"name": "B", "category_id": category.ID, "price": 100, "discount_price": 100},
		{"name": "C", "category_id": category.ID, "price": 100, "discount_price": 150},
		{"name": "D", "category_id": category.ID, "price": 100, "stock_quantity": -1},
	}
	for _, body := range cases {
		w := doJSON(t, r, http.MethodPost, "/products", adminToken, body)
		assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	}
}

func TestUpdateProductRevalidates(t *testing.T) {
	db := testDB(t)
	r := newRouter(db)
	adminToken := seedUser(t, db, "admin@example.com", models.RoleAdmin)
	category := seedCategory(t, db)

	product := models.Product{
		Name: "Boom", Slug: "boom", CategoryID: category.ID,
		Price: 100, StockQuantity: 5, IsActive: true, SKU: "SKU-BOOM",
	}
	require.NoError(t, db.Create(&product).Error)

	// Discount must stay below the merged price.
	w := doJSON(t, r, http.MethodPatch, fmt.Sprintf("/products/%d", product.ID), adminToken,
		map[string]interface{}{"discount_price": 120})
	assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())

	w = doJSON(t, r, http.MethodPatch, fmt.Sprintf("/products/%d", product.ID), adminToken,
		map[string]interface{}{"price": 200, "discount_price": 120})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var reloaded models.Product
	require.NoError(t, db.First(&reloaded, product.ID).Error)
	assert.Equal(t, 120.0, reloaded.EffectiveUnitPrice())
}

func TestClearDiscountAndBrand(t *testing.T) {
	db := testDB(t)
	r := newRouter(db)
	adminToken := seedUser(t, db, "admin@example.com", models.RoleAdmin)
	category := seedCategory(t, db)

	brand := models.Brand{Name: "Acme"}
	require.NoError(t, db.Create(&brand).Error)
	discount := 80.0
	product := models.Product{
		Name: "Boom", Slug: "boom", CategoryID: category.ID, BrandID: &brand.ID,
		Price: 100, DiscountPrice: &discount, StockQuantity: 5, IsActive: true, SKU: "SKU-BOOM",
	}
	require.NoError(t, db.Create(&product).Error)

	w := doJSON(t, r, http.MethodPatch, fmt.Sprintf("/products/%d", product.ID), adminToken,
		map[string]interface{}{"discount_price": 0, "brand_id": 0})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var reloaded models.Product
	require.NoError(t, db.First(&reloaded, product.ID).Error)
	assert.Nil(t, reloaded.DiscountPrice)
	assert.Nil(t, reloaded.BrandID)
	assert.Equal(t, 100.0, reloaded.EffectiveUnitPrice())
}

func TestDuplicateSlugRejected(t *testing.T) {
	db := testDB(t)
	r := newRouter(db)
	adminToken := seedUser(t, db, "admin@example.com", models.RoleAdmin)
	category := seedCategory(t, db)

	w := doJSON(t, r, http.MethodPost, "/products", adminToken, map[string]interface{}{
		"name": "Boom", "category_id": category.ID, "price": 100,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doJSON(t, r, http.MethodPost, "/products", adminToken, map[string]interface{}{
		"name": "Boom Two", "slug": "boom", "category_id": category.ID, "price": 100,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
}

func TestDeleteProductDeactivates(t *testing.T) {
	db := testDB(t)
	r := newRouter(db)
	adminToken := seedUser(t, db, "admin@example.com", models.RoleAdmin)
	category := seedCategory(t, db)

	product := models.Product{
		Name: "Boom", Slug: "boom", CategoryID: category.ID,
		Price: 100, StockQuantity: 5, IsActive: true, SKU: "SKU-BOOM",
	}
	require.NoError(t, db.Create(&product).Error)

	w := doJSON(t, r, http.MethodDelete, fmt.Sprintf("/products/%d", product.ID), adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var reloaded models.Product
	require.NoError(t, db.First(&reloaded, product.ID).Error)
	assert.False(t, reloaded.IsActive)
}

func TestActivateDeactivate(t *testing.T) {
	db := testDB(t)
	r := newRouter(db)
	adminToken := seedUser(t, db, "admin@example.com", models.RoleAdmin)
	category := seedCategory(t, db)

	product := models.Product{
		Name: "Boom", Slug: "boom", CategoryID: category.ID,
		Price: 100, StockQuantity: 5, IsActive: false, SKU: "SKU-BOOM",
	}
	require.NoError(t, db.Create(&product).Error)

	path := fmt.Sprintf("/products/%d/activate-deactivate", product.ID)

	w := doJSON(t, r, http.MethodPatch, path, adminToken, map[string]interface{}{"is_active": true})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var reloaded models.Product
	require.NoError(t, db.First(&reloaded, product.ID).Error)
	assert.True(t, reloaded.IsActive)

	// Idempotent.
	w = doJSON(t, r, http.MethodPatch, path, adminToken, map[string]interface{}{"is_active": true})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, r, http.MethodPatch, path, adminToken, map[string]interface{}{"is_active": false})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.NoError(t, db.First(&reloaded, product.ID).Error)
	assert.False(t, reloaded.IsActive)

	// The flag is required.
	w = doJSON(t, r, http.MethodPatch, path, adminToken, map[string]interface{}{})
	assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
}

func TestProductWriteIsAdminOnly(t *testing.T) {
	db := testDB(t)
	r := newRouter(db)
	customerToken := seedUser(t, db, "jane@example.com", models.RoleCustomer)
	category := seedCategory(t, db)

	body := map[string]interface{}{"name": "Boom", "category_id": category.ID, "price": 100}
	assert.Equal(t, http.StatusForbidden,
		doJSON(t, r, http.MethodPost, "/products", customerToken, body).Code)
	assert.Equal(t, http.StatusForbidden,
		doJSON(t, r, http.MethodGet, "/products/export", customerToken, nil).Code)
	assert.Equal(t, http.StatusOK,
		doJSON(t, r, http.MethodGet, "/products", customerToken, nil).Code)
}
