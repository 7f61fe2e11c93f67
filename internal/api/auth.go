package api

import (
	"net/http" // HTTP status codes
	"regexp"   // Regular expressions
	"strings"  // String manipulation

	"bank_ledger/internal/config" // Application configuration
	"bank_ledger/internal/domain" // Importing domain models
	"bank_ledger/internal/utils"  // Utility functions

	"github.com/gin-gonic/gin"      // Gin web framework
	"github.com/shopspring/decimal" // Fixed-point money type
	"golang.org/x/crypto/bcrypt"    // Password hashing
	"gorm.io/gorm"                  // GORM ORM library
)

// SignupRequest represents a signup request
type SignupRequest struct {
	FirstName string `json:"first_name" binding:"required"` // Given name
	LastName  string `json:"last_name" binding:"required"`  // Family name
	Username  string `json:"username" binding:"required"`   // Username must be provided
	Password  string `json:"password" binding:"required"`   // Password must be provided
}

// SigninRequest represents a signin request
type SigninRequest struct {
	Username string `json:"username" binding:"required"` // Username must be provided
	Password string `json:"password" binding:"required"` // Password must be provided
}

// isValidUsername checks if the username contains only alphanumeric characters
func isValidUsername(username string) bool {
	matched, _ := regexp.MatchString(`^[A-Za-z0-9]+$`, username) // Regex to match alphanumerics only
	return matched                                               // Return whether it matched
}

// isValidPassword checks if the password length is between 8 and 15 characters
func isValidPassword(password string) bool {
	return len(password) >= 8 && len(password) <= 15 // Return true if length is valid
}

// SignupHandler registers a new user with the configured starting credit
func SignupHandler(db *gorm.DB, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SignupRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request"})
			return
		}
		// Validate username shape
		if !isValidUsername(req.Username) || len(req.Username) > 10 {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid username"})
			return
		}
		// Validate password length
		if !isValidPassword(req.Password) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid password"})
			return
		}
		// Hash the password and create the user
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			// If hashing fails, return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
			return
		}
		// Starting credit comes from configuration
		credit, err := decimal.NewFromString(cfg.InitialCredit)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
			return
		}
		// Create user with lowercase username to ensure uniqueness
		user := domain.User{
			FirstName: req.FirstName,                 // Given name
			LastName:  req.LastName,                  // Family name
			Username:  strings.ToLower(req.Username), // Lowercased username
			Password:  hash,                          // Bcrypt hash
			Credit:    credit,                        // Starting credit line
		}
		// Attempt to create the user in the database
		if err := db.Create(&user).Error; err != nil {
			// If creation fails (e.g., duplicate username), return bad request
			c.JSON(http.StatusBadRequest, gin.H{"message": "Username already exists"})
			return
		}
		// Return success response
		c.JSON(http.StatusCreated, gin.H{"message": "Success"})
	}
}

// SigninHandler authenticates a user and returns an access token
func SigninHandler(db *gorm.DB, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SigninRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request"})
			return
		}
		var user domain.User // Fetch user from database
		if err := db.Where("username = ?", strings.ToLower(req.Username)).First(&user).Error; err != nil {
			// If user not found, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"message": "User does not exist"})
			return
		}
		// Compare provided password with stored hash
		if err := bcrypt.CompareHashAndPassword(user.Password, []byte(req.Password)); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid password"})
			return
		}
		// Generate the access token with the configured lifetime
		token, err := utils.GenerateJWT(user.ID, cfg.JWTSecret, cfg.JWTTTL)
		if err != nil {
			// If token generation fails, return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
			return
		}
		// Return the token in the response
		c.JSON(http.StatusOK, gin.H{"access_token": token})
	}
}
