package ledger

import (
	"errors" // Error inspection
	"time"   // Timestamp bounds and formatting

	"bank_ledger/internal/domain" // Importing domain models

	"gorm.io/gorm" // GORM ORM library
)

// One calendar day in microseconds; extends the end bound through the
// whole end date.
const oneDayMicros = int64(24 * time.Hour / time.Microsecond)

// ListInput carries one history request into the engine. Filter fields
// hold the raw query values; empty means "use the default".
type ListInput struct {
	AccountID       uint   // Target account
	CallerUserID    uint   // Authenticated caller
	TransactionType string // deposit, withdrawal or all (default all)
	OrderKey        string // recent or oldest (default recent)
	Offset          string // Rows to skip (default 0)
	Limit           string // Rows to return (default 10)
	StartDate       string // YYYY-MM-DD lower bound (default today minus 3 months)
	EndDate         string // YYYY-MM-DD upper bound, inclusive of the full day (default today)
}

// TransactionView is one ledger row shaped for the response
type TransactionView struct {
	Amount       string `json:"amount"`        // Fixed 4-decimal amount
	Balance      string `json:"balance"`       // Fixed 4-decimal balance snapshot
	Summary      string `json:"summary"`       // Note
	Timestamp    string `json:"timestamp"`     // Zone-aware ISO8601
	IsWithdrawal bool   `json:"is_withdrawal"` // Direction flag
}

// listFilters is the fully validated form of the optional filters
type listFilters struct {
	withdrawalOnly *bool     // nil = all, otherwise filter on is_withdrawal
	descending     bool      // true = recent first
	offset, limit  int       // Pagination window
	start, end     time.Time // Local midnights of the date bounds
}

// parseFilters validates every filter field up front; the first invalid
// field aborts the request before the store is touched.
func parseFilters(in ListInput) (*listFilters, error) {
	f := &listFilters{descending: true, limit: 10} // Defaults: recent order, 10 rows

	// Transaction type maps onto the is_withdrawal column
	switch in.TransactionType {
	case "", "all":
		// No type filter
	case "deposit":
		v := false
		f.withdrawalOnly = &v
	case "withdrawal":
		v := true
		f.withdrawalOnly = &v
	default:
		return nil, InvalidQuery("transaction type")
	}

	// Order key maps onto the timestamp sort direction
	switch in.OrderKey {
	case "", "recent":
		f.descending = true
	case "oldest":
		f.descending = false
	default:
		return nil, InvalidQuery("order key")
	}

	var err error
	if in.Offset != "" {
		if f.offset, err = parsePositiveInt(in.Offset, "offset", 0); err != nil {
			return nil, err
		}
	}
	if in.Limit != "" {
		if f.limit, err = parsePositiveInt(in.Limit, "limit", 1); err != nil {
			return nil, err
		}
	}

	// Date window defaults: the last three months up to today
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
	f.start = today.AddDate(0, -3, 0)
	f.end = today
	if in.StartDate != "" {
		if f.start, err = parseDate(in.StartDate, "start date"); err != nil {
			return nil, err
		}
	}
	if in.EndDate != "" {
		if f.end, err = parseDate(in.EndDate, "end date"); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// List returns the caller's transaction history for one account,
// filtered, ordered and paginated. Validation runs before any store
// access; the ownership check runs before any row is returned.
func List(db *gorm.DB, in ListInput) ([]TransactionView, error) {
	filters, err := parseFilters(in)
	if err != nil {
		return nil, err
	}

	var account domain.Account // Target account
	if err := db.First(&account, in.AccountID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound // Unknown account id
		}
		return nil, err
	}
	// Only the owner may read an account's history
	if account.UserID != in.CallerUserID {
		return nil, ErrPermissionDenied
	}

	// An inverted window matches nothing; deliberately not an error
	if filters.start.After(filters.end) {
		return []TransactionView{}, nil
	}

	// Inclusive microsecond bounds spanning both full days
	startBound := filters.start.UnixMicro()
	endBound := filters.end.UnixMicro() + oneDayMicros

	query := db.Model(&domain.Transaction{}).
		Where("account_id = ?", account.ID).
		Where("timestamp >= ? AND timestamp <= ?", startBound, endBound)
	if filters.withdrawalOnly != nil {
		query = query.Where("is_withdrawal = ?", *filters.withdrawalOnly) // Type filter
	}
	order := "timestamp desc"
	if !filters.descending {
		order = "timestamp asc"
	}
	var rows []domain.Transaction // Matching ledger rows
	if err := query.Order(order).Offset(filters.offset).Limit(filters.limit).Find(&rows).Error; err != nil {
		return nil, err
	}

	// Shape rows for the response
	views := make([]TransactionView, len(rows))
	for i, row := range rows {
		views[i] = TransactionView{
			Amount:       row.Amount.StringFixed(4),  // Fixed 4-decimal amount
			Balance:      row.Balance.StringFixed(4), // Fixed 4-decimal balance
			Summary:      row.Summary,                // Note
			Timestamp:    time.UnixMicro(row.Timestamp).In(time.Local).Format(time.RFC3339),
			IsWithdrawal: row.IsWithdrawal, // Direction flag
		}
	}
	return views, nil
}
