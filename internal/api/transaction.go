package api

import (
	"context"       // Context for Redis operations
	"encoding/json" // Raw number echoing
	"errors"        // Error inspection
	"net/http"      // HTTP status codes
	"strconv"       // String conversion
	"strings"       // Cache key assembly
	"time"          // Cache TTL

	"bank_ledger/internal/ledger" // Posting and query engines
	"bank_ledger/internal/utils"  // Cache helpers

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"gorm.io/gorm"                 // GORM ORM library
)

// PostTransactionRequest represents a posting request body. Pointer
// fields distinguish missing keys from zero values so each one can be
// reported with its own message.
type PostTransactionRequest struct {
	Password     *string `json:"password"`      // Account PIN
	Amount       *string `json:"amount"`        // Decimal amount string
	IsWithdrawal *bool   `json:"is_withdrawal"` // Direction flag
	Summary      string  `json:"summary"`       // Optional note
}

// respondDomainError maps an engine error onto its fixed status and
// stable message; anything unrecognized becomes a plain 500.
func respondDomainError(c *gin.Context, err error) {
	var dErr *ledger.Error
	if errors.As(err, &dErr) {
		c.JSON(dErr.Status(), gin.H{"message": dErr.Message}) // Domain failure
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"}) // Unanticipated failure
}

// accountParam parses the :account_id path parameter
func accountParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("account_id"), 10, 32)
	if err != nil {
		// Non-numeric path segment resolves to no route
		c.JSON(http.StatusNotFound, gin.H{"message": "Not found"})
		return 0, false
	}
	return uint(id), true
}

// txCacheSpace is the cache key space of one account's history
func txCacheSpace(accountID uint) string {
	return "txhistory:account:" + strconv.FormatUint(uint64(accountID), 10)
}

// PostTransactionHandler applies one deposit or withdrawal through the
// posting engine and reports the resulting balance
func PostTransactionHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("userID") // Get verified caller id from context
		// Check if userID exists in context
		if !exists {
			// If not, return unauthorized
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid token"})
			return
		}
		accountID, ok := accountParam(c) // Parse account id from path
		if !ok {
			return
		}
		var req PostTransactionRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// Malformed body, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request"})
			return
		}
		// Each required field reports its own failure before the store is touched
		if req.IsWithdrawal == nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid is_withdrawal"})
			return
		}
		if req.Password == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid password"})
			return
		}
		amount := "" // Missing amount fails amount validation in the engine
		if req.Amount != nil {
			amount = *req.Amount
		}
		// Run the posting engine
		result, err := ledger.Post(db, ledger.PostInput{
			AccountID:    accountID,         // Target account
			CallerUserID: userID.(uint),     // Verified caller
			Password:     *req.Password,     // Account PIN
			Amount:       amount,            // Decimal amount string
			IsWithdrawal: *req.IsWithdrawal, // Direction flag
			Summary:      req.Summary,       // Optional note
		})
		if err != nil {
			respondDomainError(c, err) // Map to status and message
			return
		}
		// Invalidate cached history for this account
		if rdb != nil {
			_ = utils.BumpCacheVersion(context.Background(), rdb, txCacheSpace(accountID))
		}
		c.Header("Location", result.Location) // Reference to the created ledger row
		// Balance as a fixed 4-decimal string, amount echoed as a raw number
		c.JSON(http.StatusCreated, gin.H{
			"Balance after transaction": result.Balance.StringFixed(4),
			"Transaction amount":        json.Number(result.Amount.String()),
		})
	}
}

// ListTransactionsHandler returns the filtered, ordered and paginated
// transaction history of one account, with a short-lived Redis cache
// keyed on the filters and the account's cache version
func ListTransactionsHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("userID") // Get verified caller id from context
		// Check if userID exists in context
		if !exists {
			// If not, return unauthorized
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid token"})
			return
		}
		accountID, ok := accountParam(c) // Parse account id from path
		if !ok {
			return
		}
		input := ledger.ListInput{
			AccountID:       accountID,                   // Target account
			CallerUserID:    userID.(uint),               // Verified caller
			TransactionType: c.Query("transaction-type"), // deposit, withdrawal or all
			OrderKey:        c.Query("order-key"),        // recent or oldest
			Offset:          c.Query("offset"),           // Rows to skip
			Limit:           c.Query("limit"),            // Rows to return
			StartDate:       c.Query("start-date"),       // Window lower bound
			EndDate:         c.Query("end-date"),         // Window upper bound
		}
		ctx := context.Background() // Context for Redis operations
		space := txCacheSpace(accountID)
		var cacheKey string
		if rdb != nil {
			// Cache key covers every filter plus the account's cache version;
			// a posting bumps the version, so stale pages are never served
			parts := []string{
				space,
				"v" + utils.CacheVersion(ctx, rdb, space),
				"user:" + strconv.FormatUint(uint64(userID.(uint)), 10),
				"type=" + input.TransactionType,
				"order=" + input.OrderKey,
				"offset=" + input.Offset,
				"limit=" + input.Limit,
				"from=" + input.StartDate,
				"to=" + input.EndDate,
			}
			cacheKey = strings.Join(parts, ":")
			var cached []ledger.TransactionView // Cached history page
			found, err := utils.GetCache(ctx, rdb, cacheKey, &cached)
			if err == nil && found {
				c.JSON(http.StatusOK, gin.H{"transactions": cached}) // Serve from cache
				return
			}
		}
		// Run the query engine
		views, err := ledger.List(db, input)
		if err != nil {
			respondDomainError(c, err) // Map to status and message
			return
		}
		if rdb != nil {
			_ = utils.SetCache(ctx, rdb, cacheKey, views, 60*time.Second) // Cache the page for 60 seconds
		}
		c.JSON(http.StatusOK, gin.H{"transactions": views}) // Return transaction history
	}
}
