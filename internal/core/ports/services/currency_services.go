package services

import (
	"context"

	"github.com/masoo/money/internal/core/domain"
)

// CurrencyReaderSvc defines the read-only lookup surface of the registry.
// Lookups are total: an unknown identifier reports false, never an error.
type CurrencyReaderSvc interface {
	// Find resolves an identifier ("USD", "eur", custom ids) to a handle.
	Find(identifier string) (domain.Currency, bool)

	// FindByISONumeric resolves an ISO numeric code given as an int or a
	// numeric string. Malformed input reports false.
	FindByISONumeric(num any) (domain.Currency, bool)

	// Wrap coerces a value into a handle: handles pass through, nil yields
	// the zero handle, identifiers are resolved via Find. Unlike Find, a
	// failed resolution is a hard ErrUnknownCurrency.
	Wrap(value any) (domain.Currency, error)

	// All returns every live currency in registration order.
	All() []domain.Currency

	// Count returns the number of live records.
	Count() int
}

// CurrencyWriterSvc defines the mutating surface of the registry.
type CurrencyWriterSvc interface {
	// Register validates an attribute bag and inserts (or replaces) the
	// record, returning its handle.
	Register(attrs domain.CurrencyAttributes) (domain.Currency, error)

	// Inherit merges the bag over a copy of the named parent's attributes
	// and registers the result. Fails with ErrUnknownCurrency when the
	// parent is not registered.
	Inherit(parentCode string, attrs domain.CurrencyAttributes) (domain.Currency, error)

	// Unregister removes a record by identifier, handle or attribute bag.
	// It reports whether anything was removed and never fails on absence.
	Unregister(value any) bool

	// Reset discards all runtime registrations and reloads the seed source.
	Reset(ctx context.Context) error
}

// CurrencyRegistrySvc combines the full registry surface.
type CurrencyRegistrySvc interface {
	CurrencyReaderSvc
	CurrencyWriterSvc
}
