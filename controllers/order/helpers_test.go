package orderControllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
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
		&models.CartItem{}, &models.Order{},
	))
	return db
}

func newRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	routes.SetupOrderRoutes(r, db)
	routes.SetupCartRoutes(r, db)
	return r
}

func seedUser(t *testing.T, db *gorm.DB, email string, role models.Role) (*models.User, string) {
	t.Helper()
	hash, err := auth.HashPassword("secret123")
	require.NoError(t, err)
	user := models.User{Email: email, Name: "Test User", PasswordHash: hash, Role: role, IsActive: true}
	require.NoError(t, db.Create(&user).Error)
	token, err := auth.GetOrCreateToken(db, user.ID)
	require.NoError(t, err)
	return &user, token.Key
}

func seedCity(t *testing.T, db *gorm.DB, abbr, cityName string) models.City {
	t.Helper()
	state := models.State{Abbreviation: abbr, Name: abbr + " State"}
	require.NoError(t, db.Create(&state).Error)
	city := models.City{Name: cityName, StateID: state.ID}
	require.NoError(t, db.Create(&city).Error)
	return city
}

func seedProduct(t *testing.T, db *gorm.DB, name string, price float64, discount *float64, stock int) models.Product {
	t.Helper()
	category := models.Category{Name: name + " cat", Slug: strings.ToLower(name) + "-cat"}
	require.NoError(t, db.Create(&category).Error)
	product := models.Product{
		Name:          name,
		Slug:          strings.ToLower(name),
		CategoryID:    category.ID,
		Price:         price,
		DiscountPrice: discount,
		StockQuantity: stock,
		IsActive:      true,
		SKU:           "SKU-" + strings.ToUpper(name),
	}
	require.NoError(t, db.Create(&product).Error)
	return product
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

func decodeOrder(t *testing.T, w *httptest.ResponseRecorder) models.Order {
	t.Helper()
	var order models.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &order))
	return order
}

func shippingBody(cityID uint) map[string]interface{} {
	return map[string]interface{}{
		"street_address": "42 Main St",
		"city_id":        cityID,
		"postal_code":    "12345",
		"phone_number":   "555-0100",
	}
}
