package db

import (
	"bank_ledger/internal/domain" // Importing domain models

	"github.com/sirupsen/logrus" // Logging library

	"gorm.io/driver/mysql" // MySQL driver for GORM
	"gorm.io/gorm"         // GORM ORM library
)

// Account types seeded on first migration
var defaultAccountTypes = []string{"checking", "savings"}

// Migrate performs automatic migration for the database schema
func Migrate(dsn string) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{}) // Open a connection to the database
	if err != nil {
		logrus.Fatalf("failed to connect database: %v", err) // Log fatal error if connection fails
	}
	// AutoMigrate will create tables, missing foreign keys, constraints, columns and indexes.
	// The balance/credit/amount check constraints are the store-level second
	// line of defense behind the posting engine's own checks.
	err = db.AutoMigrate(&domain.User{}, &domain.AccountType{}, &domain.Account{}, &domain.Transaction{})
	if err != nil {
		logrus.Fatalf("migration failed: %v", err) // Log fatal error if migration fails
	}
	// Seed the account type lookup table
	for _, name := range defaultAccountTypes {
		if err := db.FirstOrCreate(&domain.AccountType{}, domain.AccountType{Name: name}).Error; err != nil {
			logrus.Fatalf("seeding account types failed: %v", err)
		}
	}
	logrus.Info("Migration completed.") // Log successful migration
}
