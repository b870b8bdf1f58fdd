package folio

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrBookingNotFound   = errors.New("booking not found")
	ErrBookingCancelled  = errors.New("booking is cancelled")
	ErrAlreadyCheckedOut = errors.New("booking is already checked out")
	ErrNoStatement       = errors.New("no statement has been delivered for this booking")
)

// ValidationError reports a rejected write request.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func newValidationError(field, msg string) error {
	return &ValidationError{Field: field, Message: msg}
}

// OutstandingBalanceError blocks a checkout while money is still owed.
type OutstandingBalanceError struct {
	Balance decimal.Decimal
}

func (e *OutstandingBalanceError) Error() string {
	return fmt.Sprintf("outstanding balance of %s must be settled before checkout", e.Balance.StringFixed(2))
}
