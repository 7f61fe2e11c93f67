package ledger

import "net/http" // HTTP status codes

// Kind identifies a class of domain failure
type Kind int

// Domain failure kinds produced by the posting and query engines
const (
	KindInvalidAmount      Kind = iota // Amount failed validation
	KindInvalidQuery                   // A query filter failed validation
	KindAccountNotFound                // Account id does not resolve
	KindPermissionDenied               // Caller does not own the account
	KindInvalidCredentials             // Account password mismatch
	KindInsufficientBalance            // Posting would drive balance below zero
	KindInsufficientCredit             // Posting would drive user credit below zero
	KindInvalidToken                   // Bearer token failed validation
)

// Error is a tagged domain error; the HTTP boundary maps it to a
// response status, the engines never touch transport concerns.
type Error struct {
	Kind    Kind   // Failure class
	Message string // Stable machine-readable message
}

// Error implements the error interface
func (e *Error) Error() string {
	return e.Message
}

// Status returns the fixed HTTP status for the error kind
func (e *Error) Status() int {
	switch e.Kind {
	case KindPermissionDenied:
		return http.StatusForbidden // 403
	case KindInvalidCredentials, KindInvalidToken:
		return http.StatusUnauthorized // 401
	default:
		return http.StatusBadRequest // 400
	}
}

// Shared error values returned by the engines
var (
	ErrInvalidAmount       = &Error{Kind: KindInvalidAmount, Message: "Invalid amount"}              // Amount not a positive decimal
	ErrAccountNotFound     = &Error{Kind: KindAccountNotFound, Message: "Invalid account id"}        // No such account
	ErrPermissionDenied    = &Error{Kind: KindPermissionDenied, Message: "Dont have permission"}     // Account belongs to someone else
	ErrInvalidPassword     = &Error{Kind: KindInvalidCredentials, Message: "Invalid password"}       // Account password mismatch
	ErrInsufficientBalance = &Error{Kind: KindInsufficientBalance, Message: "Insufficient balance"}  // Balance would go negative
	ErrInsufficientCredit  = &Error{Kind: KindInsufficientCredit, Message: "Dont have enough credit"} // Credit would go negative
	ErrInvalidToken        = &Error{Kind: KindInvalidToken, Message: "Invalid token"}                // Token missing or unverifiable
)

// InvalidQuery builds the validation error for one bad filter field,
// e.g. InvalidQuery("start date") -> "Invalid start date"
func InvalidQuery(field string) *Error {
	return &Error{Kind: KindInvalidQuery, Message: "Invalid " + field}
}
