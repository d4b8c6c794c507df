package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/masoo/money/internal/core/domain"
	"github.com/masoo/money/internal/core/ports/repositories"
)

// PgxCurrencyStore persists currency definitions in PostgreSQL and doubles as
// a seed source: the registry can be constructed from (and Reset against) the
// stored dataset. The position column preserves registration order across
// restarts.
type PgxCurrencyStore struct {
	pool *pgxpool.Pool
}

// NewPgxCurrencyStore creates a store over the given pool.
func NewPgxCurrencyStore(pool *pgxpool.Pool) *PgxCurrencyStore {
	return &PgxCurrencyStore{pool: pool}
}

var _ repositories.CurrencyStore = (*PgxCurrencyStore)(nil)

const currencyColumns = `
	id, priority, iso_code, iso_numeric, name, symbol, disambiguate_symbol,
	html_entity, subunit, subunit_to_unit, decimal_mark, thousands_separator,
	symbol_first, smallest_denomination, format
`

// LoadCurrencies returns every stored definition in position order.
func (s *PgxCurrencyStore) LoadCurrencies(ctx context.Context) ([]domain.CurrencyAttributes, error) {
	query := `SELECT ` + currencyColumns + ` FROM currencies ORDER BY position;`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query currencies: %w", err)
	}
	defer rows.Close()

	attrs, err := pgx.CollectRows(rows, scanCurrencyAttributes)
	if err != nil {
		return nil, fmt.Errorf("failed to scan currencies: %w", err)
	}
	return attrs, nil
}

// SaveCurrency upserts one definition. A conflicting id keeps its position so
// re-registration does not reorder the stored dataset.
func (s *PgxCurrencyStore) SaveCurrency(ctx context.Context, a domain.CurrencyAttributes) error {
	id := domain.NormalizeCode(a.ID)
	if id == "" && a.ISOCode != nil {
		id = domain.NormalizeCode(*a.ISOCode)
	}
	if id == "" {
		return fmt.Errorf("cannot save currency without id or iso_code")
	}

	subunitToUnit := 1
	if a.SubunitToUnit != nil {
		subunitToUnit = *a.SubunitToUnit
	}
	symbolFirst := false
	if a.SymbolFirst != nil {
		symbolFirst = *a.SymbolFirst
	}

	query := `
		INSERT INTO currencies (` + currencyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		ON CONFLICT (id) DO UPDATE SET
			priority = EXCLUDED.priority,
			iso_code = EXCLUDED.iso_code,
			iso_numeric = EXCLUDED.iso_numeric,
			name = EXCLUDED.name,
			symbol = EXCLUDED.symbol,
			disambiguate_symbol = EXCLUDED.disambiguate_symbol,
			html_entity = EXCLUDED.html_entity,
			subunit = EXCLUDED.subunit,
			subunit_to_unit = EXCLUDED.subunit_to_unit,
			decimal_mark = EXCLUDED.decimal_mark,
			thousands_separator = EXCLUDED.thousands_separator,
			symbol_first = EXCLUDED.symbol_first,
			smallest_denomination = EXCLUDED.smallest_denomination,
			format = EXCLUDED.format;
	`

	_, err := s.pool.Exec(ctx, query,
		id,
		a.Priority,
		a.ISOCode,
		a.ISONumeric,
		a.Name,
		a.Symbol,
		a.DisambiguateSymbol,
		a.HTMLEntity,
		a.Subunit,
		subunitToUnit,
		a.DecimalMark,
		a.ThousandsSeparator,
		symbolFirst,
		a.SmallestDenomination,
		a.Format,
	)
	if err != nil {
		return fmt.Errorf("failed to save currency %s: %w", id, err)
	}
	return nil
}

// DeleteCurrency removes a definition by canonical id.
func (s *PgxCurrencyStore) DeleteCurrency(ctx context.Context, id string) (bool, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM currencies WHERE id = $1;`, domain.NormalizeCode(id))
	if err != nil {
		return false, fmt.Errorf("failed to delete currency %s: %w", id, err)
	}
	return tag.RowsAffected() > 0, nil
}

// SyncFromSeed populates an empty store from another source, typically the
// embedded dataset on first boot. A non-empty store is left untouched.
func (s *PgxCurrencyStore) SyncFromSeed(ctx context.Context, source repositories.CurrencySource) error {
	var count int
	if err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM currencies;`).Scan(&count); err != nil {
		return fmt.Errorf("failed to count stored currencies: %w", err)
	}
	if count > 0 {
		return nil
	}

	seed, err := source.LoadCurrencies(ctx)
	if err != nil {
		return fmt.Errorf("failed to load seed for sync: %w", err)
	}
	for _, attrs := range seed {
		if err := s.SaveCurrency(ctx, attrs); err != nil {
			return err
		}
	}
	return nil
}

func scanCurrencyAttributes(row pgx.CollectableRow) (domain.CurrencyAttributes, error) {
	var a domain.CurrencyAttributes
	var subunitToUnit int
	var symbolFirst bool
	err := row.Scan(
		&a.ID,
		&a.Priority,
		&a.ISOCode,
		&a.ISONumeric,
		&a.Name,
		&a.Symbol,
		&a.DisambiguateSymbol,
		&a.HTMLEntity,
		&a.Subunit,
		&subunitToUnit,
		&a.DecimalMark,
		&a.ThousandsSeparator,
		&symbolFirst,
		&a.SmallestDenomination,
		&a.Format,
	)
	if err != nil {
		return domain.CurrencyAttributes{}, err
	}
	a.SubunitToUnit = &subunitToUnit
	a.SymbolFirst = &symbolFirst
	return a, nil
}
