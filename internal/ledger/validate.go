package ledger

import (
	"regexp"  // Regular expressions
	"strconv" // String conversion
	"time"    // Calendar handling

	"github.com/shopspring/decimal" // Fixed-point money type
)

// Canonical input patterns; every request field is validated here,
// before the engines touch the store.
var (
	amountPattern = regexp.MustCompile(`^[0-9]+(\.[0-9]+)?$`) // Digits with optional fractional part
	datePattern   = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`) // Strict YYYY-MM-DD
)

// parseAmount validates and parses a posting amount string.
// The amount must be a plain positive decimal, no sign, no exponent.
func parseAmount(raw string) (decimal.Decimal, error) {
	// Reject anything outside the canonical shape
	if !amountPattern.MatchString(raw) {
		return decimal.Zero, ErrInvalidAmount
	}
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	// Zero is not a postable amount
	if !amount.IsPositive() {
		return decimal.Zero, ErrInvalidAmount
	}
	return amount, nil
}

// daysInMonth returns the number of days of a month, leap years included
func daysInMonth(year, month int) int {
	// Day 0 of the next month is the last day of this month
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.Local).Day()
}

// parseDate validates one calendar date filter and returns local midnight
// of that day. field names the filter for the error message.
func parseDate(raw, field string) (time.Time, error) {
	if !datePattern.MatchString(raw) {
		return time.Time{}, InvalidQuery(field)
	}
	year, _ := strconv.Atoi(raw[0:4])  // Year digits
	month, _ := strconv.Atoi(raw[5:7]) // Month digits
	day, _ := strconv.Atoi(raw[8:10])  // Day digits
	// Calendar sanity: pre-1900 dates and impossible month/day combos are rejected
	if year < 1900 || month < 1 || month > 12 || day < 1 || day > daysInMonth(year, month) {
		return time.Time{}, InvalidQuery(field)
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local), nil
}

// parsePositiveInt validates offset/limit style filters.
// min is the smallest accepted value (0 for offset, 1 for limit).
func parsePositiveInt(raw, field string, min int) (int, error) {
	v, err := strconv.Atoi(raw)
	if err != nil || v < min {
		return 0, InvalidQuery(field)
	}
	return v, nil
}
