package cartControllers_test

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
		&models.User{}, &models.Token{}, &models.Category{},
		&models.Product{}, &models.CartItem{},
	))
	return db
}

func newRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
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

func decodeLine(t *testing.T, w *httptest.ResponseRecorder) models.CartItem {
	t.Helper()
	var line models.CartItem
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &line))
	return line
}

func TestAddCartItem(t *testing.T) {
	db := testDB(t)
	r := newRouter(db)
	customer, token := seedUser(t, db, "jane@example.com", models.RoleCustomer)
	discount := 80.0
	product := seedProduct(t, db, "Alpha", 100, &discount, 5)

	w := doJSON(t, r, http.MethodPost, "/carts", token,
		map[string]interface{}{"product_id": product.ID, "quantity": 3})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	line := decodeLine(t, w)
	assert.Equal(t, customer.ID, line.UserID)
	assert.Equal(t, 3, line.Quantity)
	assert.Equal(t, 240.0, line.TotalCost)

	// Adding the same product again overwrites, never duplicates.
	w = doJSON(t, r, http.MethodPost, "/carts", token,
		map[string]interface{}{"product_id": product.ID, "quantity": 1})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, 1, decodeLine(t, w).Quantity)

	var count int64
	require.NoError(t, db.Model(&models.CartItem{}).Where("user_id = ?", customer.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestAddCartItemValidation(t *testing.T) {
	db := testDB(t)
	r := newRouter(db)
	_, token := seedUser(t, db, "jane@example.com", models.RoleCustomer)

	inactive := seedProduct(t, db, "Alpha", 100, nil, 5)
	require.NoError(t, db.Model(&inactive).Update("is_active", false).Error)
	outOfStock := seedProduct(t, db, "Beta", 50, nil, 0)

	w := doJSON(t, r, http.MethodPost, "/carts", token,
		map[string]interface{}{"product_id": 9999, "quantity": 1})
	assert.Equal(t, http.StatusNotFound, w.Code, w.Body.String())

	w = doJSON(t, r, http.MethodPost, "/carts", token,
		map[string]interface{}{"product_id": inactive.ID, "quantity": 1})
	assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())

	w = doJSON(t, r, http.MethodPost, "/carts", token,
		map[string]interface{}{"product_id": outOfStock.ID, "quantity": 1})
	assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())

	w = doJSON(t, r, http.MethodPost, "/carts", token,
		map[string]interface{}{"product_id": outOfStock.ID, "quantity": 0})
	assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
}

func TestUpdateCartItem(t *testing.T) {
	db := testDB(t)
	r := newRouter(db)
	customer, token := seedUser(t, db, "jane@example.com", models.RoleCustomer)
	product := seedProduct(t, db, "Alpha", 100, nil, 5)

	line := models.CartItem{UserID: customer.ID, ProductID: product.ID, Quantity: 1}
	require.NoError(t, db.Create(&line).Error)

	w := doJSON(t, r, http.MethodPatch, fmt.Sprintf("/carts/%d", line.ID), token,
		map[string]interface{}{"quantity": 4})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, 4, decodeLine(t, w).Quantity)

	// Stock validation applies to updates too.
	w = doJSON(t, r, http.MethodPatch, fmt.Sprintf("/carts/%d", line.ID), token,
		map[string]interface{}{"quantity": 50})
	assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())

	// A deactivated product fails lazily at the next cart write.
	require.NoError(t, db.Model(&product).Update("is_active", false).Error)
	w = doJSON(t, r, http.MethodPatch, fmt.Sprintf("/carts/%d", line.ID), token,
		map[string]interface{}{"quantity": 2})
	assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
}

func TestUpdateCartItemRejectsDuplicateProduct(t *testing.T) {
	db := testDB(t)
	r := newRouter(db)
	customer, token := seedUser(t, db, "jane@example.com", models.RoleCustomer)
	productA := seedProduct(t, db, "Alpha", 100, nil, 5)
	productB := seedProduct(t, db, "Beta", 50, nil, 5)

	lineA := models.CartItem{UserID: customer.ID, ProductID: productA.ID, Quantity: 1}
	require.NoError(t, db.Create(&lineA).Error)
	lineB := models.CartItem{UserID: customer.ID, ProductID: productB.ID, Quantity: 2}
	require.NoError(t, db.Create(&lineB).Error)

	// Pointing a line at a product another line already holds collides
	// with the one-row-per-(user, product) rule.
	w := doJSON(t, r, http.MethodPatch, fmt.Sprintf("/carts/%d", lineB.ID), token,
		map[string]interface{}{"product_id": productA.ID})
	assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())

	var reloaded models.CartItem
	require.NoError(t, db.First(&reloaded, lineB.ID).Error)
	assert.Equal(t, productB.ID, reloaded.ProductID)

	// Moving to a product no other line holds still works.
	productC := seedProduct(t, db, "Gamma", 25, nil, 5)
	w = doJSON(t, r, http.MethodPatch, fmt.Sprintf("/carts/%d", lineB.ID), token,
		map[string]interface{}{"product_id": productC.ID})
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestCartScoping(t *testing.T) {
	db := testDB(t)
	r := newRouter(db)
	jane, janeToken := seedUser(t, db, "jane@example.com", models.RoleCustomer)
	_, johnToken := seedUser(t, db, "john@example.com", models.RoleCustomer)
	product := seedProduct(t, db, "Alpha", 100, nil, 5)

	line := models.CartItem{UserID: jane.ID, ProductID: product.ID, Quantity: 2}
	require.NoError(t, db.Create(&line).Error)

	// John never sees Jane's lines.
	w := doJSON(t, r, http.MethodGet, "/carts", johnToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var lines []models.CartItem
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &lines))
	assert.Empty(t, lines)

	path := fmt.Sprintf("/carts/%d", line.ID)
	assert.Equal(t, http.StatusNotFound, doJSON(t, r, http.MethodGet, path, johnToken, nil).Code)
	assert.Equal(t, http.StatusNotFound, doJSON(t, r, http.MethodPatch, path, johnToken,
		map[string]interface{}{"quantity": 1}).Code)
	assert.Equal(t, http.StatusNotFound, doJSON(t, r, http.MethodDelete, path, johnToken, nil).Code)

	// The owner still can.
	w = doJSON(t, r, http.MethodGet, "/carts", janeToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &lines))
	require.Len(t, lines, 1)
	assert.Equal(t, 200.0, lines[0].TotalCost)
}

func TestCartIsCustomerOnly(t *testing.T) {
	db := testDB(t)
	r := newRouter(db)
	_, adminToken := seedUser(t, db, "admin@example.com", models.RoleAdmin)

	w := doJSON(t, r, http.MethodGet, "/carts", adminToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, r, http.MethodGet, "/carts", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, r, http.MethodGet, "/carts", "bogus-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestDeleteCartItem(t *testing.T) {
	db := testDB(t)
	r := newRouter(db)
	customer, token := seedUser(t, db, "jane@example.com", models.RoleCustomer)
	product := seedProduct(t, db, "Alpha", 100, nil, 5)

	line := models.CartItem{UserID: customer.ID, ProductID: product.ID, Quantity: 2}
	require.NoError(t, db.Create(&line).Error)

	w := doJSON(t, r, http.MethodDelete, fmt.Sprintf("/carts/%d", line.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var count int64
	require.NoError(t, db.Model(&models.CartItem{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}
