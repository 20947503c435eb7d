package services

import (
	"errors"
	"fmt"
	"time"
)

// Service-boundary error taxonomy. Handlers classify with errors.Is/As and
// fold everything into the uniform {success:false, error} envelope.
var (
	ErrUnauthorized         = errors.New("unauthorized")
	ErrRequestBlocked       = errors.New("request blocked")
	ErrUserNotFound         = errors.New("user not found")
	ErrAccountNotFound      = errors.New("account not found")
	ErrTransactionNotFound  = errors.New("transaction not found")
	ErrNoDefaultAccount     = errors.New("no default account")
	ErrScanFailed           = errors.New("receipt scan failed")
	ErrIncompleteExtraction = errors.New("could not extract complete transaction details")
	ErrInvalidType          = errors.New("invalid transaction type")
	ErrNegativeAmount       = errors.New("amount must not be negative")
)

// RateLimitError carries the quota detail for logging and Retry-After.
// The detail is never shown to the end user.
type RateLimitError struct {
	Remaining  int
	ResetAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limited: %d remaining, resets in %s", e.Remaining, e.ResetAfter)
}
