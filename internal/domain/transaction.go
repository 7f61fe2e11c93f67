package domain

import "github.com/shopspring/decimal" // Fixed-point money type

// Transaction Model: one immutable ledger row, never updated or deleted
type Transaction struct {
	ID           uint            `gorm:"primaryKey"`                                                                             // Primary key
	Amount       decimal.Decimal `gorm:"type:decimal(19,4);not null;check:transactions_amount_not_less_than_zero,amount >= 0"`   // Posted amount, always non-negative
	Balance      decimal.Decimal `gorm:"type:decimal(19,4);not null;check:transactions_balance_not_less_than_zero,balance >= 0"` // Account balance right after this posting
	IsWithdrawal bool            `gorm:"not null"`                                                                               // true = withdrawal, false = deposit
	Timestamp    int64           `gorm:"not null;index:idx_transactions_account_timestamp,priority:2"`                           // Unix time in microseconds
	Summary      string          `gorm:"size:20"`                                                                                // Short human-readable note
	AccountID    uint            `gorm:"not null;index:idx_transactions_account_timestamp,priority:1"`                           // Owning account
}

// TableName maps the model to the transactions table
func (Transaction) TableName() string {
	return "transactions"
}
