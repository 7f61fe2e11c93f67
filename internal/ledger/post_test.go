package ledger

import (
	"testing" // Testing framework

	"bank_ledger/internal/domain" // Importing domain models

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostDeposit(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "user1", "1000000")
	account := seedAccount(t, db, user, "100000.0000")

	result, err := Post(db, PostInput{
		AccountID:    account.ID,
		CallerUserID: user.ID,
		Password:     testPIN,
		Amount:       "10000",
		IsWithdrawal: false,
		Summary:      "예금하기",
	})
	require.NoError(t, err)

	// Balance after = B + A, amount echoed, location points at row 1
	assert.Equal(t, "110000.0000", result.Balance.StringFixed(4))
	assert.Equal(t, "10000", result.Amount.String())
	assert.Equal(t, "/transactions/1", result.Location)

	gotAccount, gotUser, rows := reload(t, db, account.ID, user.ID)
	assert.Equal(t, "110000.0000", gotAccount.Balance.StringFixed(4)) // Balance reflected on the account
	assert.Equal(t, "990000.0000", gotUser.Credit.StringFixed(4))     // Credit decremented by the amount
	assert.Equal(t, int64(1), rows)                                   // Exactly one ledger row

	var row domain.Transaction
	require.NoError(t, db.First(&row).Error)
	assert.Equal(t, "110000.0000", row.Balance.StringFixed(4)) // Snapshot equals post-transaction balance
	assert.Equal(t, "10000.0000", row.Amount.StringFixed(4))
	assert.False(t, row.IsWithdrawal)
	assert.Equal(t, "예금하기", row.Summary)
	assert.Equal(t, account.ID, row.AccountID)
	assert.Positive(t, row.Timestamp)
}

func TestPostWithdrawal(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "user1", "1000000")
	account := seedAccount(t, db, user, "100000.0000")

	result, err := Post(db, PostInput{
		AccountID:    account.ID,
		CallerUserID: user.ID,
		Password:     testPIN,
		Amount:       "10000",
		IsWithdrawal: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "90000.0000", result.Balance.StringFixed(4))

	gotAccount, gotUser, rows := reload(t, db, account.ID, user.ID)
	assert.Equal(t, "90000.0000", gotAccount.Balance.StringFixed(4))
	// Credit is consumed by every posting, withdrawals included
	assert.Equal(t, "990000.0000", gotUser.Credit.StringFixed(4))
	assert.Equal(t, int64(1), rows)

	var row domain.Transaction
	require.NoError(t, db.First(&row).Error)
	assert.True(t, row.IsWithdrawal)
	assert.Equal(t, "90000.0000", row.Balance.StringFixed(4))
}

func TestPostDefaultSummary(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "user1", "1000000")
	account := seedAccount(t, db, user, "100000.0000")

	_, err := Post(db, PostInput{
		AccountID:    account.ID,
		CallerUserID: user.ID,
		Password:     testPIN,
		Amount:       "10000",
		IsWithdrawal: false,
	})
	require.NoError(t, err)

	var row domain.Transaction
	require.NoError(t, db.First(&row).Error)
	// Default summary is the owner's name, family name first
	assert.Equal(t, "홍길동", row.Summary)
}

func TestPostInvalidAmount(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "user1", "1000000")
	account := seedAccount(t, db, user, "100000.0000")

	for _, amount := range []string{"", "-10000", "abc", "0", "0.0", "10,000", "1e3", "+5", ".5", "5."} {
		_, err := Post(db, PostInput{
			AccountID:    account.ID,
			CallerUserID: user.ID,
			Password:     testPIN,
			Amount:       amount,
			IsWithdrawal: false,
		})
		assert.ErrorIs(t, err, ErrInvalidAmount, "amount %q", amount)
	}

	// Nothing was mutated
	_, _, rows := reload(t, db, account.ID, user.ID)
	assert.Zero(t, rows)
}

func TestPostAccountNotFound(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "user1", "1000000")

	_, err := Post(db, PostInput{
		AccountID:    99,
		CallerUserID: user.ID,
		Password:     testPIN,
		Amount:       "10000",
	})
	assert.ErrorIs(t, err, ErrAccountNotFound)
}

func TestPostPermissionDenied(t *testing.T) {
	db := newTestDB(t)
	owner := seedUser(t, db, "user1", "1000000")
	stranger := seedUser(t, db, "user2", "1000000")
	account := seedAccount(t, db, owner, "100000.0000")

	_, err := Post(db, PostInput{
		AccountID:    account.ID,
		CallerUserID: stranger.ID,
		Password:     testPIN,
		Amount:       "10000",
	})
	assert.ErrorIs(t, err, ErrPermissionDenied)

	gotAccount, _, rows := reload(t, db, account.ID, owner.ID)
	assert.Equal(t, "100000.0000", gotAccount.Balance.StringFixed(4))
	assert.Zero(t, rows)
}

func TestPostWrongPassword(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "user1", "1000000")
	account := seedAccount(t, db, user, "100000.0000")

	_, err := Post(db, PostInput{
		AccountID:    account.ID,
		CallerUserID: user.ID,
		Password:     "1231",
		Amount:       "10000",
	})
	assert.ErrorIs(t, err, ErrInvalidPassword)

	// No ledger row and no mutation
	gotAccount, gotUser, rows := reload(t, db, account.ID, user.ID)
	assert.Equal(t, "100000.0000", gotAccount.Balance.StringFixed(4))
	assert.Equal(t, "1000000.0000", gotUser.Credit.StringFixed(4))
	assert.Zero(t, rows)
}

func TestPostInsufficientBalance(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "user1", "1000000")
	account := seedAccount(t, db, user, "100000.0000")

	_, err := Post(db, PostInput{
		AccountID:    account.ID,
		CallerUserID: user.ID,
		Password:     testPIN,
		Amount:       "100000.0001", // One tick more than the balance
		IsWithdrawal: true,
	})
	assert.ErrorIs(t, err, ErrInsufficientBalance)

	// All-or-nothing: balance, credit and row count untouched
	gotAccount, gotUser, rows := reload(t, db, account.ID, user.ID)
	assert.Equal(t, "100000.0000", gotAccount.Balance.StringFixed(4))
	assert.Equal(t, "1000000.0000", gotUser.Credit.StringFixed(4))
	assert.Zero(t, rows)
}

func TestPostInsufficientCredit(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "user1", "5000") // Credit below the deposit amount
	account := seedAccount(t, db, user, "100000.0000")

	_, err := Post(db, PostInput{
		AccountID:    account.ID,
		CallerUserID: user.ID,
		Password:     testPIN,
		Amount:       "10000",
		IsWithdrawal: false,
	})
	assert.ErrorIs(t, err, ErrInsufficientCredit)

	gotAccount, gotUser, rows := reload(t, db, account.ID, user.ID)
	assert.Equal(t, "100000.0000", gotAccount.Balance.StringFixed(4))
	assert.Equal(t, "5000.0000", gotUser.Credit.StringFixed(4))
	assert.Zero(t, rows)
}

func TestPostWithdrawalInsufficientCredit(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "user1", "5000") // Credit below the withdrawal amount
	account := seedAccount(t, db, user, "100000.0000")

	// The balance easily covers the withdrawal, but the credit line
	// does not; credit is consumed regardless of direction
	_, err := Post(db, PostInput{
		AccountID:    account.ID,
		CallerUserID: user.ID,
		Password:     testPIN,
		Amount:       "10000",
		IsWithdrawal: true,
	})
	assert.ErrorIs(t, err, ErrInsufficientCredit)

	gotAccount, gotUser, rows := reload(t, db, account.ID, user.ID)
	assert.Equal(t, "100000.0000", gotAccount.Balance.StringFixed(4))
	assert.Equal(t, "5000.0000", gotUser.Credit.StringFixed(4))
	assert.Zero(t, rows)
}

func TestPostWithdrawalToExactZero(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "user1", "1000000")
	account := seedAccount(t, db, user, "100000.0000")

	// Draining the account exactly is allowed; the invariant is >= 0
	result, err := Post(db, PostInput{
		AccountID:    account.ID,
		CallerUserID: user.ID,
		Password:     testPIN,
		Amount:       "100000",
		IsWithdrawal: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "0.0000", result.Balance.StringFixed(4))
}

func TestPostFractionalAmount(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "user1", "1000000")
	account := seedAccount(t, db, user, "100000.0000")

	result, err := Post(db, PostInput{
		AccountID:    account.ID,
		CallerUserID: user.ID,
		Password:     testPIN,
		Amount:       "0.5",
		IsWithdrawal: false,
	})
	require.NoError(t, err)
	assert.Equal(t, "100000.5000", result.Balance.StringFixed(4))

	_, gotUser, _ := reload(t, db, account.ID, user.ID)
	assert.Equal(t, "999999.5000", gotUser.Credit.StringFixed(4))
}

func TestPostSequenceKeepsSnapshots(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "user1", "1000000")
	account := seedAccount(t, db, user, "100000.0000")

	// Three postings; every ledger row must snapshot the balance as of
	// its own application, in order
	for _, step := range []struct {
		amount     string
		withdrawal bool
		balance    string
	}{
		{"10000", false, "110000.0000"},
		{"50000", true, "60000.0000"},
		{"0.2500", false, "60000.2500"},
	} {
		result, err := Post(db, PostInput{
			AccountID:    account.ID,
			CallerUserID: user.ID,
			Password:     testPIN,
			Amount:       step.amount,
			IsWithdrawal: step.withdrawal,
		})
		require.NoError(t, err)
		assert.Equal(t, step.balance, result.Balance.StringFixed(4))
	}

	var rowsInOrder []domain.Transaction
	require.NoError(t, db.Order("id asc").Find(&rowsInOrder).Error)
	require.Len(t, rowsInOrder, 3)
	assert.Equal(t, "110000.0000", rowsInOrder[0].Balance.StringFixed(4))
	assert.Equal(t, "60000.0000", rowsInOrder[1].Balance.StringFixed(4))
	assert.Equal(t, "60000.2500", rowsInOrder[2].Balance.StringFixed(4))
}
