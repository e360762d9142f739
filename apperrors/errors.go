// Package apperrors declares the business-rule errors shared across
// controllers and maps each of them onto one HTTP status, so every handler
// rejects the same way.
package apperrors

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

var (
	// Validation (400)
	ErrInvalidPrice      = errors.New("price must be greater than zero")
	ErrInvalidDiscount   = errors.New("discount_price must be lower than price")
	ErrInvalidStock      = errors.New("stock_quantity cannot be negative")
	ErrInvalidQuantity   = errors.New("quantity must be at least 1")
	ErrDuplicateEmail    = errors.New("a user with this email already exists")
	ErrDuplicateSlug     = errors.New("slug is already taken")
	ErrEmptyCart         = errors.New("cart is empty")
	ErrInsufficientStock = errors.New("insufficient stock for requested quantity")
	ErrProductInactive   = errors.New("product is not active")
	ErrOrderNotPending   = errors.New("Cannot update or delete order unless it is in PENDING status")
	ErrInvalidStatus     = errors.New("invalid order status transition")

	// Authentication (401)
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrExpiredToken       = errors.New("token has expired")

	// Authorization (403)
	ErrPermissionDenied = errors.New("you do not have permission to perform this action")

	// Lookup (404)
	ErrNotFound = errors.New("resource not found")
)

// Status maps a business error to its HTTP status code. Unknown errors are
// treated as internal.
func Status(err error) int {
	switch {
	case errors.Is(err, ErrInvalidPrice),
		errors.Is(err, ErrInvalidDiscount),
		errors.Is(err, ErrInvalidStock),
		errors.Is(err, ErrInvalidQuantity),
		errors.Is(err, ErrDuplicateEmail),
		errors.Is(err, ErrDuplicateSlug),
		errors.Is(err, ErrEmptyCart),
		errors.Is(err, ErrInsufficientStock),
		errors.Is(err, ErrProductInactive),
		errors.Is(err, ErrOrderNotPending),
		errors.Is(err, ErrInvalidStatus):
		return http.StatusBadRequest
	case errors.Is(err, ErrInvalidCredentials),
		errors.Is(err, ErrInvalidToken),
		errors.Is(err, ErrExpiredToken):
		return http.StatusUnauthorized
	case errors.Is(err, ErrPermissionDenied):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Abort writes the error as a JSON body with its mapped status. Store
// errors and other internals are never leaked to the client.
func Abort(c *gin.Context, err error) {
	status := Status(err)
	if status == http.StatusInternalServerError {
		c.JSON(status, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
