package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/akhilnair-dev/storefront-api/apperrors"
	"github.com/akhilnair-dev/storefront-api/permissions"
)

// RequireAdmin aborts with 403 unless the authenticated user is an admin.
// Must run after ValidateToken.
func RequireAdmin(c *gin.Context) {
	if !permissions.IsAdmin(CurrentUser(c)) {
		apperrors.Abort(c, apperrors.ErrPermissionDenied)
		c.Abort()
		return
	}
	c.Next()
}

// RequireCustomer aborts with 403 unless the authenticated user is a
// customer. Must run after ValidateToken.
func RequireCustomer(c *gin.Context) {
	if !permissions.IsCustomer(CurrentUser(c)) {
		apperrors.Abort(c, apperrors.ErrPermissionDenied)
		c.Abort()
		return
	}
	c.Next()
}
