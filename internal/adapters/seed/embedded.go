package seed

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/masoo/money/internal/core/domain"
	"github.com/masoo/money/internal/core/ports/repositories"
)

// currencyISO is the bundled ISO 4217 dataset, an ordered JSON array of
// attribute bags. Array order defines registration order.
//
//go:embed currency_iso.json
var currencyISO []byte

// EmbeddedSource serves the bundled ISO dataset. It is the default seed
// source and needs no external infrastructure.
type EmbeddedSource struct{}

// NewEmbeddedSource returns a source over the bundled dataset.
func NewEmbeddedSource() *EmbeddedSource {
	return &EmbeddedSource{}
}

// LoadCurrencies decodes the bundled dataset. The data ships inside the
// binary, so a decode failure is a build defect, not a runtime condition.
func (s *EmbeddedSource) LoadCurrencies(_ context.Context) ([]domain.CurrencyAttributes, error) {
	var out []domain.CurrencyAttributes
	if err := json.Unmarshal(currencyISO, &out); err != nil {
		return nil, fmt.Errorf("failed to decode embedded currency data: %w", err)
	}
	return out, nil
}

var _ repositories.CurrencySource = (*EmbeddedSource)(nil)
