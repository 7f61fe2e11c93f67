package ledger

import (
	"errors"  // Error inspection
	"strconv" // String conversion
	"strings" // String matching for constraint names
	"time"    // Timestamps

	"bank_ledger/internal/domain" // Importing domain models

	"github.com/shopspring/decimal" // Fixed-point money type
	"github.com/sirupsen/logrus"    // Logging library
	"golang.org/x/crypto/bcrypt"    // Password hashing
	"gorm.io/gorm"                  // GORM ORM library
	"gorm.io/gorm/clause"           // Row locking clause
)

// PostInput carries one posting request into the engine
type PostInput struct {
	AccountID    uint   // Target account
	CallerUserID uint   // Authenticated caller
	Password     string // Account password, verified against the stored hash
	Amount       string // Decimal amount string, validated before use
	IsWithdrawal bool   // true = withdrawal, false = deposit
	Summary      string // Optional note; defaults to the owner's name
}

// PostResult reports a successful posting
type PostResult struct {
	Balance  decimal.Decimal // Account balance after the posting
	Amount   decimal.Decimal // Posted amount
	Location string          // Reference path of the created ledger row
}

// lockForUpdate adds a FOR UPDATE row lock on dialects that support it.
// SQLite serializes writers on its own, so the clause is skipped there.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "mysql" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

// Post validates and applies one deposit or withdrawal. The credit
// decrement, ledger row insert and balance update happen in a single
// database transaction holding row locks on the account and user rows,
// so concurrent postings against the same account cannot both apply a
// stale balance.
func Post(db *gorm.DB, in PostInput) (*PostResult, error) {
	// Validate the amount before touching the store
	amount, err := parseAmount(in.Amount)
	if err != nil {
		return nil, err
	}

	// Signed delta: deposits raise the balance, withdrawals lower it
	delta := amount
	if in.IsWithdrawal {
		delta = amount.Neg()
	}

	var result PostResult
	err = db.Transaction(func(tx *gorm.DB) error {
		var account domain.Account // Target account, row-locked
		// Resolve and lock the account
		if err := lockForUpdate(tx).First(&account, in.AccountID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAccountNotFound // Unknown account id
			}
			return err // Storage failure
		}
		// Only the owner may post against an account
		if account.UserID != in.CallerUserID {
			return ErrPermissionDenied
		}
		// Verify the account password against the stored bcrypt hash
		if err := bcrypt.CompareHashAndPassword(account.Password, []byte(in.Password)); err != nil {
			return ErrInvalidPassword
		}
		var user domain.User // Owning user, row-locked for the credit update
		if err := lockForUpdate(tx).First(&user, in.CallerUserID).Error; err != nil {
			return err // FK guarantees existence; anything here is a storage failure
		}
		// Candidate balance must stay non-negative
		balance := account.Balance.Add(delta)
		if balance.IsNegative() {
			return ErrInsufficientBalance
		}
		// Every posting consumes credit, withdrawals included; the
		// candidate must stay non-negative
		credit := user.Credit.Sub(amount)
		if credit.IsNegative() {
			return ErrInsufficientCredit
		}
		// Default summary is the owner's name
		summary := in.Summary
		if summary == "" {
			summary = user.LastName + user.FirstName
		}
		// Apply the credit decrement
		if err := tx.Model(&user).Update("credit", credit).Error; err != nil {
			return err
		}
		// Append the ledger row with the balance snapshot
		row := domain.Transaction{
			Amount:       amount,                 // Posted amount
			Balance:      balance,                // Balance right after this posting
			IsWithdrawal: in.IsWithdrawal,        // Direction flag
			Timestamp:    time.Now().UnixMicro(), // Unix microseconds
			Summary:      summary,                // Note
			AccountID:    account.ID,             // Owning account
		}
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
		// Reflect the snapshot on the account
		if err := tx.Model(&account).Update("balance", balance).Error; err != nil {
			return err
		}
		result = PostResult{
			Balance:  balance, // Balance after the posting
			Amount:   amount,  // Posted amount
			Location: "/transactions/" + strconv.FormatUint(uint64(row.ID), 10),
		}
		return nil // Commit
	})
	if err != nil {
		return nil, asDomainError(err, in)
	}
	// Log successful posting
	logrus.WithFields(logrus.Fields{
		"account_id":    in.AccountID,            // Target account
		"user_id":       in.CallerUserID,         // Caller
		"amount":        amount.String(),         // Posted amount
		"is_withdrawal": in.IsWithdrawal,         // Direction
		"balance":       result.Balance.String(), // Resulting balance
	}).Info("Posting applied")
	return &result, nil
}

// asDomainError maps store errors back to domain errors. A check
// constraint trips when a race slips past the application checks;
// the caller must still see the domain failure, never a raw storage
// error.
func asDomainError(err error, in PostInput) error {
	var dErr *Error
	if errors.As(err, &dErr) {
		return dErr // Already a domain error
	}
	msg := err.Error()
	// Constraint names carried over into the store schema
	switch {
	case strings.Contains(msg, "accounts_balance_not_less_than_zero"),
		strings.Contains(msg, "transactions_balance_not_less_than_zero"):
		return ErrInsufficientBalance
	case strings.Contains(msg, "users_credit_not_less_than_zero"):
		return ErrInsufficientCredit
	case strings.Contains(msg, "transactions_amount_not_less_than_zero"):
		return ErrInvalidAmount
	}
	// Log the unexpected storage failure with context
	logrus.WithFields(logrus.Fields{
		"account_id": in.AccountID,    // Target account
		"user_id":    in.CallerUserID, // Caller
		"error":      msg,             // Error message
	}).Error("Posting failed")
	return err
}
