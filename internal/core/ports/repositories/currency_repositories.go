package repositories

import (
	"context"

	"github.com/masoo/money/internal/core/domain"
)

// CurrencySource supplies the ordered sequence of currency attribute bags
// that seeds the registry at construction and at Reset. The registry treats
// the source as opaque: it does not care whether the records come from an
// embedded dataset, a file, or a database, only that the order is stable.
type CurrencySource interface {
	// LoadCurrencies returns every seed record in its defined order.
	LoadCurrencies(ctx context.Context) ([]domain.CurrencyAttributes, error)
}

// CurrencyStore defines write operations for a persistent currency dataset.
// A store is also usable as a CurrencySource once populated.
type CurrencyStore interface {
	CurrencySource

	// SaveCurrency inserts or replaces one currency definition.
	SaveCurrency(ctx context.Context, attrs domain.CurrencyAttributes) error

	// DeleteCurrency removes a currency definition by canonical id. It
	// reports whether a row was removed.
	DeleteCurrency(ctx context.Context, id string) (bool, error)
}
