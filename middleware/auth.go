package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/akhilnair-dev/storefront-api/apperrors"
	"github.com/akhilnair-dev/storefront-api/auth"
	"github.com/akhilnair-dev/storefront-api/models"
)

const userKey = "current_user"

// ValidateToken resolves the Authorization header to a user and stores it
// in the request context. Accepts "Token <key>", "Bearer <key>" or a bare
// key.
func ValidateToken(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			apperrors.Abort(c, apperrors.ErrInvalidToken)
			c.Abort()
			return
		}

		key := header
		for _, prefix := range []string{"Token ", "Bearer "} {
			if strings.HasPrefix(header, prefix) {
				key = strings.TrimPrefix(header, prefix)
				break
			}
		}

		var token models.Token
		if err := db.Preload("User").Where("key = ?", key).First(&token).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				apperrors.Abort(c, apperrors.ErrInvalidToken)
			} else {
				apperrors.Abort(c, err)
			}
			c.Abort()
			return
		}

		if token.Expired(auth.TokenTTL()) {
			apperrors.Abort(c, apperrors.ErrExpiredToken)
			c.Abort()
			return
		}

		if !token.User.IsActive {
			apperrors.Abort(c, apperrors.ErrInvalidToken)
			c.Abort()
			return
		}

		user := token.User
		c.Set(userKey, &user)
		c.Next()
	}
}

// CurrentUser returns the authenticated user set by ValidateToken.
func CurrentUser(c *gin.Context) *models.User {
	val, exists := c.Get(userKey)
	if !exists {
		return nil
	}
	user, ok := val.(*models.User)
	if !ok {
		return nil
	}
	return user
}
