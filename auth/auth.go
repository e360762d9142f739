package auth

import (
	"errors"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/akhilnair-dev/storefront-api/apperrors"
	"github.com/akhilnair-dev/storefront-api/models"
)

const defaultTokenTTLHours = 72

type RegisterInput struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// TokenTTL returns the configured token validity window.
func TokenTTL() time.Duration {
	if v := os.Getenv("TOKEN_TTL_HOURS"); v != "" {
		if hours, err := strconv.Atoi(v); err == nil && hours > 0 {
			return time.Duration(hours) * time.Hour
		}
	}
	return defaultTokenTTLHours * time.Hour
}

// HashPassword returns a bcrypt hash of the plain-text password.
func HashPassword(plain string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPassword compares a bcrypt hash against the plain-text candidate.
func CheckPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

func newTokenKey() string {
	return strings.ReplaceAll(uuid.NewString()+uuid.NewString(), "-", "")
}

// GetOrCreateToken returns the user's active token, rotating it when
// expired. One active token per user.
func GetOrCreateToken(db *gorm.DB, userID uint) (*models.Token, error) {
	var token models.Token
	err := db.Where("user_id = ?", userID).First(&token).Error
	switch {
	case err == nil:
		if !token.Expired(TokenTTL()) {
			return &token, nil
		}
		if err := db.Delete(&token).Error; err != nil {
			return nil, err
		}
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, err
	}

	token = models.Token{Key: newTokenKey(), UserID: userID}
	if err := db.Create(&token).Error; err != nil {
		return nil, err
	}
	return &token, nil
}

// Register creates a customer account. Role is never client-selectable.
func Register(db *gorm.DB, input RegisterInput) (*models.User, error) {
	var count int64
	if err := db.Model(&models.User{}).Where("email = ?", input.Email).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, apperrors.ErrDuplicateEmail
	}

	hash, err := HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Email:        input.Email,
		Name:         input.Name,
		PasswordHash: hash,
		Role:         models.RoleCustomer,
		IsActive:     true,
	}
	if err := db.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Authenticate checks the credentials and returns the user's token.
func Authenticate(db *gorm.DB, input LoginInput) (*models.User, *models.Token, error) {
	var user models.User
	if err := db.Where("email = ?", input.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, apperrors.ErrInvalidCredentials
		}
		return nil, nil, err
	}
	if !user.IsActive || !CheckPassword(user.PasswordHash, input.Password) {
		return nil, nil, apperrors.ErrInvalidCredentials
	}

	token, err := GetOrCreateToken(db, user.ID)
	if err != nil {
		return nil, nil, err
	}
	return &user, token, nil
}

// POST /register
func RegisterHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input RegisterInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		user, err := Register(db, input)
		if err != nil {
			apperrors.Abort(c, err)
			return
		}
		c.JSON(http.StatusCreated, user)
	}
}

// POST /login
func LoginHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input LoginInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		user, token, err := Authenticate(db, input)
		if err != nil {
			apperrors.Abort(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"email": user.Email,
			"name":  user.Name,
			"role":  user.Role,
			"token": token.Key,
		})
	}
}

// EnsureAdmin seeds the admin account from ADMIN_EMAIL / ADMIN_PASSWORD /
// ADMIN_NAME when no user with that email exists yet.
func EnsureAdmin(db *gorm.DB) error {
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		return nil
	}

	var count int64
	if err := db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := HashPassword(password)
	if err != nil {
		return err
	}
	name := os.Getenv("ADMIN_NAME")
	if name == "" {
		name = "Administrator"
	}

	admin := models.User{
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		Role:         models.RoleAdmin,
		IsActive:     true,
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}
	log.Printf("✅ Seeded admin account %s", email)
	return nil
}
