package api

import (
	"net/http" // HTTP status codes
	"regexp"   // Regular expressions

	"bank_ledger/internal/domain" // Importing domain models

	"github.com/gin-gonic/gin"      // Gin web framework
	"github.com/google/uuid"        // Account number generation
	"github.com/shopspring/decimal" // Fixed-point money type
	"github.com/sirupsen/logrus"    // Logging library
	"golang.org/x/crypto/bcrypt"    // Password hashing
	"gorm.io/gorm"                  // GORM ORM library
)

// CreateAccountRequest represents an account provisioning request
type CreateAccountRequest struct {
	Password string `json:"password" binding:"required"` // Account PIN
	Type     string `json:"type" binding:"required"`     // Account type name
}

// Account PINs are four digits
var pinPattern = regexp.MustCompile(`^\d{4}$`)

// CreateAccountHandler opens a new account for the authenticated user.
// The account number is generated, the PIN is stored as a bcrypt hash
// and the balance starts at zero.
func CreateAccountHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("userID") // Get verified caller id from context
		// Check if userID exists in context
		if !exists {
			// If not, return unauthorized
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid token"})
			return
		}
		var req CreateAccountRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request"})
			return
		}
		// Account PIN must be four digits
		if !pinPattern.MatchString(req.Password) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid password"})
			return
		}
		var accountType domain.AccountType // Resolve the requested account type
		if err := db.Where("name = ?", req.Type).First(&accountType).Error; err != nil {
			// Unknown type name, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid account type"})
			return
		}
		// Hash the PIN
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
			return
		}
		number := uuid.New() // Generated opaque account number
		account := domain.Account{
			AccountNumber: number[:],      // Opaque account number bytes
			Password:      hash,           // Bcrypt hash of the PIN
			Balance:       decimal.Zero,   // Accounts open empty
			TypeID:        accountType.ID, // Account type
			UserID:        userID.(uint),  // Owning user
		}
		// Save the new account
		if err := db.Create(&account).Error; err != nil {
			logrus.WithFields(logrus.Fields{
				"user_id": userID,      // Caller
				"error":   err.Error(), // Error message
			}).Error("Failed to create account") // Log failure
			// Return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
			return
		}
		// Log successful account creation
		logrus.WithFields(logrus.Fields{
			"user_id":    userID,     // Caller
			"account_id": account.ID, // New account
			"type":       req.Type,   // Account type name
		}).Info("Account created")
		// Return the new account reference
		c.JSON(http.StatusCreated, gin.H{
			"message":        "Account created",
			"account_id":     account.ID,      // New account id
			"account_number": number.String(), // Printable account number
		})
	}
}
