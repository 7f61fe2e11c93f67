package domain

import "github.com/shopspring/decimal" // Fixed-point money type

// User Model
type User struct {
	ID        uint            `gorm:"primaryKey"`                                                                    // Primary key
	FirstName string          `gorm:"size:5;not null"`                                                               // Given name
	LastName  string          `gorm:"size:5;not null"`                                                               // Family name
	Username  string          `gorm:"size:10;unique;not null"`                                                       // Unique username
	Password  []byte          `gorm:"size:60;not null"`                                                              // Bcrypt hash
	Credit    decimal.Decimal `gorm:"type:decimal(19,4);not null;check:users_credit_not_less_than_zero,credit >= 0"` // Spending allowance, never negative
	Accounts  []Account       `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;"`                                // Accounts owned by this user
}

// TableName maps the model to the users table
func (User) TableName() string {
	return "users"
}
