package domain

import "github.com/shopspring/decimal" // Fixed-point money type

// AccountType Model (lookup table: checking, savings, ...)
type AccountType struct {
	ID   uint   `gorm:"primaryKey"` // Primary key
	Name string `gorm:"size:10"`    // Type name
}

// TableName maps the model to the account_types table
func (AccountType) TableName() string {
	return "account_types"
}

// Account Model
type Account struct {
	ID            uint            `gorm:"primaryKey"`                                                                        // Primary key
	AccountNumber []byte          `gorm:"size:256;not null"`                                                                 // Opaque account number bytes
	Password      []byte          `gorm:"size:60;not null"`                                                                  // Bcrypt hash of the account PIN
	Balance       decimal.Decimal `gorm:"type:decimal(19,4);not null;check:accounts_balance_not_less_than_zero,balance >= 0"` // Balance, mutated only by postings
	TypeID        uint            `gorm:"not null"`                                                                          // Foreign key to AccountType
	Type          AccountType     `gorm:"constraint:OnDelete:RESTRICT;"`                                                     // Account type relation
	UserID        uint            `gorm:"not null;index"`                                                                    // Owning user, immutable
}

// TableName maps the model to the accounts table
func (Account) TableName() string {
	return "accounts"
}
