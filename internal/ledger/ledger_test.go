package ledger

import (
	"fmt"         // Unique test database names
	"sync/atomic" // Test database counter
	"testing"     // Testing framework

	"bank_ledger/internal/domain" // Importing domain models

	"github.com/shopspring/decimal" // Fixed-point money type
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt" // Password hashing
	"gorm.io/driver/sqlite"      // In-memory store for tests
	"gorm.io/gorm"               // GORM ORM library
)

// testPIN is the account password used across the engine tests
const testPIN = "1234"

var testDBSeq atomic.Int64 // Distinct shared-memory database per test

// newTestDB opens a fresh in-memory store with the full schema
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:ledger_test_%d?mode=memory&cache=shared", testDBSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.User{}, &domain.AccountType{}, &domain.Account{}, &domain.Transaction{}))
	require.NoError(t, db.Create(&domain.AccountType{Name: "checking"}).Error)
	return db
}

// pinHash returns a bcrypt hash of testPIN; MinCost keeps tests fast
func pinHash(t *testing.T) []byte {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(testPIN), bcrypt.MinCost)
	require.NoError(t, err)
	return hash
}

// seedUser creates a user with the given credit
func seedUser(t *testing.T, db *gorm.DB, username, credit string) *domain.User {
	t.Helper()
	user := &domain.User{
		FirstName: "길동",
		LastName:  "홍",
		Username:  username,
		Password:  pinHash(t),
		Credit:    decimal.RequireFromString(credit),
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// seedAccount creates an account for a user with the given balance
func seedAccount(t *testing.T, db *gorm.DB, user *domain.User, balance string) *domain.Account {
	t.Helper()
	account := &domain.Account{
		AccountNumber: []byte("111"),
		Password:      pinHash(t), // Hash of testPIN
		Balance:       decimal.RequireFromString(balance),
		TypeID:        1, // Seeded checking type
		UserID:        user.ID,
	}
	require.NoError(t, db.Create(account).Error)
	return account
}

// reload fetches the current account and user rows plus the ledger row
// count, for before/after atomicity assertions
func reload(t *testing.T, db *gorm.DB, accountID, userID uint) (domain.Account, domain.User, int64) {
	t.Helper()
	var account domain.Account
	require.NoError(t, db.First(&account, accountID).Error)
	var user domain.User
	require.NoError(t, db.First(&user, userID).Error)
	var count int64
	require.NoError(t, db.Model(&domain.Transaction{}).Count(&count).Error)
	return account, user, count
}
