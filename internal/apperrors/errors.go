package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrUnknownCurrency indicates that an identifier which was expected to name a
// registered currency did not resolve. Unlike a plain lookup miss, this is a
// hard failure: it is returned by coercion (Wrap) and by Inherit when the
// parent is missing, paths where callers assume a valid currency exists.
var ErrUnknownCurrency = errors.New("unknown currency")

// NewUnknownCurrency wraps ErrUnknownCurrency with the offending identifier so
// callers can still match it with errors.Is.
func NewUnknownCurrency(id string) error {
	return fmt.Errorf("%w: %q", ErrUnknownCurrency, id)
}

// MissingAttributeError is returned when an accessor that requires a specific
// attribute is invoked on a currency whose record does not carry it. The
// failure is deliberately lazy: registering a record with absent optional
// fields succeeds, and only the accessor that needs the field reports it.
type MissingAttributeError struct {
	Accessor   string // accessor method that was invoked
	CurrencyID string // canonical id of the currency
	Attribute  string // attribute that is absent
}

func (e *MissingAttributeError) Error() string {
	return fmt.Sprintf("currency %q has no %s; required by %s", e.CurrencyID, e.Attribute, e.Accessor)
}
