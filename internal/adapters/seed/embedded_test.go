package seed_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/masoo/money/internal/adapters/seed"
	"github.com/masoo/money/internal/core/domain"
)

func TestEmbeddedSource_LoadCurrencies(t *testing.T) {
	attrs, err := seed.NewEmbeddedSource().LoadCurrencies(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, attrs)

	assert.Equal(t, "usd", attrs[0].ID, "dataset order starts with the majors")
	assert.Equal(t, "eur", attrs[1].ID)

	byID := make(map[string]domain.CurrencyAttributes, len(attrs))
	seenNumeric := make(map[string]string)
	for _, a := range attrs {
		require.NotEmpty(t, a.ID, "every seed record is keyed")
		require.NotContains(t, byID, a.ID, "ids are unique in the dataset")
		byID[a.ID] = a

		require.NotNil(t, a.ISOCode, "the bundled dataset is ISO-only")
		require.NotNil(t, a.ISONumeric)
		require.NotContains(t, seenNumeric, *a.ISONumeric, "numeric codes are unique in the dataset")
		seenNumeric[*a.ISONumeric] = a.ID

		rec, err := domain.NewCurrencyRecord(a)
		require.NoErrorf(t, err, "seed record %q must validate", a.ID)
		require.NotNil(t, rec.ISONumeric)
	}

	eur := byID["eur"]
	require.NotNil(t, eur.ISONumeric)
	assert.Equal(t, "978", *eur.ISONumeric)

	for _, id := range []string{"mga", "mru"} {
		a, ok := byID[id]
		require.Truef(t, ok, "historical exception %s ships in the dataset", id)
		require.NotNil(t, a.SubunitToUnit)
		assert.Equal(t, 5, *a.SubunitToUnit)
	}
}

func TestEmbeddedSource_OrderIsStable(t *testing.T) {
	src := seed.NewEmbeddedSource()
	first, err := src.LoadCurrencies(context.Background())
	require.NoError(t, err)
	second, err := src.LoadCurrencies(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
