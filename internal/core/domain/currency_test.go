package domain_test

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/masoo/money/internal/apperrors"
	"github.com/masoo/money/internal/core/domain"
)

// mapResolver is a minimal CurrencyResolver for handle tests.
type mapResolver map[string]*domain.CurrencyRecord

func (m mapResolver) Resolve(id string) (*domain.CurrencyRecord, bool) {
	rec, ok := m[id]
	return rec, ok
}

func testResolver(t *testing.T, bags ...domain.CurrencyAttributes) mapResolver {
	t.Helper()
	res := mapResolver{}
	for _, attrs := range bags {
		rec, err := domain.NewCurrencyRecord(attrs)
		require.NoError(t, err)
		res[rec.ID] = rec
	}
	return res
}

func TestCurrency_EqualityIsByIDOnly(t *testing.T) {
	res := testResolver(t,
		domain.CurrencyAttributes{ID: "eur", ISOCode: strPtr("EUR"), Priority: intPtr(2)},
	)

	upper := domain.NewCurrency("EUR", res)
	lower := domain.NewCurrency("eur", res)
	other := domain.NewCurrency("usd", res)

	assert.True(t, upper.Equal(lower), "case difference must not break equality")
	assert.True(t, lower.Equal(upper))
	assert.True(t, upper.Equal(upper))
	assert.False(t, upper.Equal(other))
	assert.Equal(t, upper.Key(), lower.Key(), "hash key matches equality")
}

func TestCurrency_CmpOrdersByPriorityOnly(t *testing.T) {
	res := testResolver(t,
		domain.CurrencyAttributes{ID: "usd", Priority: intPtr(1)},
		domain.CurrencyAttributes{ID: "zzz", Priority: intPtr(1)},
		domain.CurrencyAttributes{ID: "eur", Priority: intPtr(2)},
		domain.CurrencyAttributes{ID: "xts"},
	)

	usd := domain.NewCurrency("usd", res)
	zzz := domain.NewCurrency("zzz", res)
	eur := domain.NewCurrency("eur", res)
	xts := domain.NewCurrency("xts", res)

	assert.Equal(t, -1, usd.Cmp(eur), "priority 1 sorts before priority 2")
	assert.Equal(t, 1, eur.Cmp(usd))

	// The documented quirk: Cmp and Equal disagree. usd and zzz tie under
	// Cmp because their priorities match, yet they are not Equal.
	assert.Equal(t, 0, usd.Cmp(zzz))
	assert.False(t, usd.Equal(zzz))

	// And two Equal handles always tie, whatever the priority is.
	assert.Equal(t, 0, usd.Cmp(domain.NewCurrency("USD", res)))

	// Absent priority sorts last.
	assert.Equal(t, 1, xts.Cmp(usd))
	assert.Equal(t, -1, usd.Cmp(xts))
	assert.Equal(t, 0, xts.Cmp(xts))

	handles := []domain.Currency{eur, xts, usd}
	sort.SliceStable(handles, func(i, j int) bool { return handles[i].Cmp(handles[j]) < 0 })
	assert.Equal(t, []domain.Currency{usd, eur, xts}, handles)
}

func TestCurrency_Accessors(t *testing.T) {
	res := testResolver(t, domain.CurrencyAttributes{
		ID:                   "usd",
		Priority:             intPtr(1),
		ISOCode:              strPtr("USD"),
		ISONumeric:           strPtr("840"),
		Name:                 strPtr("United States Dollar"),
		Symbol:               strPtr("$"),
		Subunit:              strPtr("Cent"),
		SubunitToUnit:        intPtr(100),
		DecimalMark:          strPtr("."),
		ThousandsSeparator:   strPtr(","),
		SymbolFirst:          boolPtr(true),
		SmallestDenomination: intPtr(1),
	})
	usd := domain.NewCurrency("USD", res)

	assert.Equal(t, "USD", usd.String())
	assert.Equal(t, "usd", usd.Key())
	assert.Equal(t, "United States Dollar", usd.Name())
	assert.Equal(t, "$", usd.Symbol())
	assert.Equal(t, "Cent", usd.Subunit())
	assert.Equal(t, 100, usd.SubunitToUnit())
	assert.Equal(t, ".", usd.DecimalMark())
	assert.Equal(t, ",", usd.ThousandsSeparator())
	assert.True(t, usd.SymbolFirst())
	assert.True(t, usd.IsISO())
	assert.Equal(t, 2, usd.Exponent())

	code, err := usd.ISOCode()
	require.NoError(t, err)
	assert.Equal(t, "USD", code)

	num, err := usd.ISONumeric()
	require.NoError(t, err)
	assert.Equal(t, 840, num)

	sd, err := usd.SmallestDenomination()
	require.NoError(t, err)
	assert.Equal(t, 1, sd)
}

func TestCurrency_MissingAttributeErrors(t *testing.T) {
	res := testResolver(t, domain.CurrencyAttributes{ID: "wow", Name: strPtr("Wow Coin")})
	wow := domain.NewCurrency("wow", res)

	_, err := wow.ISOCode()
	var missing *apperrors.MissingAttributeError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "ISOCode", missing.Accessor)
	assert.Equal(t, "wow", missing.CurrencyID)
	assert.Equal(t, "iso_code", missing.Attribute)

	_, err = wow.ISONumeric()
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "iso_numeric", missing.Attribute)

	_, err = wow.SmallestDenomination()
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "smallest_denomination", missing.Attribute)

	assert.False(t, wow.IsISO())
	assert.Equal(t, "Wow Coin", wow.Name(), "plain accessors tolerate absent optionals")
}

func TestCurrency_Code(t *testing.T) {
	res := testResolver(t,
		domain.CurrencyAttributes{ID: "usd", ISOCode: strPtr("USD"), Symbol: strPtr("$")},
		domain.CurrencyAttributes{ID: "chf", ISOCode: strPtr("CHF")},
		domain.CurrencyAttributes{ID: "wow"},
	)

	assert.Equal(t, "$", domain.NewCurrency("usd", res).Code(), "symbol when present")
	assert.Equal(t, "CHF", domain.NewCurrency("chf", res).Code(), "uppercase iso_code fallback")
	assert.Equal(t, "WOW", domain.NewCurrency("wow", res).Code(), "uppercase id fallback")
}

func TestCurrency_ZeroAndUnresolvable(t *testing.T) {
	var zero domain.Currency
	assert.True(t, zero.IsZero())
	assert.Equal(t, "", zero.Name())
	assert.Equal(t, 0, zero.Exponent())
	assert.Equal(t, 1, zero.SubunitToUnit())

	_, err := zero.ISOCode()
	assert.ErrorIs(t, err, apperrors.ErrUnknownCurrency)

	gone := domain.NewCurrency("gone", mapResolver{})
	assert.False(t, gone.IsZero())
	_, ok := gone.Record()
	assert.False(t, ok)
	assert.Equal(t, "GONE", gone.Code())
}
