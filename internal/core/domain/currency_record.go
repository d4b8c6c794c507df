package domain

import (
	"fmt"
	"math"

	"github.com/masoo/money/internal/apperrors"
)

// exponentOverrides lists currencies whose display exponent is pinned to 1
// regardless of what their subunit ratio implies: the Malagasy ariary and the
// Mauritanian ouguiya, both divided into five subunits. Do not extend this
// list without a matching change in the published currency data.
var exponentOverrides = map[string]int{
	"mga": 1,
	"mru": 1,
}

// CurrencyRecord holds one currency's display and arithmetic attributes. A
// record is immutable once constructed; re-registration replaces the whole
// record rather than mutating it in place. Optional attributes are pointers
// and stay nil when the source data omits them.
type CurrencyRecord struct {
	ID                   string
	Priority             *int
	ISOCode              *string
	ISONumeric           *int
	Name                 *string
	Symbol               *string
	DisambiguateSymbol   *string
	HTMLEntity           *string
	Subunit              *string
	SubunitToUnit        int
	DecimalMark          *string
	ThousandsSeparator   *string
	SymbolFirst          bool
	SmallestDenomination *int
	Format               *string
}

// NewCurrencyRecord validates an attribute bag and builds an immutable record.
// The only structural requirement is keying information: an id, or an
// iso_code to derive one from. Every other attribute is optional; accessors
// that need a specific field report its absence lazily.
func NewCurrencyRecord(attrs CurrencyAttributes) (*CurrencyRecord, error) {
	id := NormalizeCode(attrs.ID)
	if id == "" && attrs.ISOCode != nil {
		id = NormalizeCode(*attrs.ISOCode)
	}
	if id == "" {
		return nil, fmt.Errorf("%w: currency attributes carry neither id nor iso_code", apperrors.ErrValidation)
	}

	subunitToUnit := 1
	if attrs.SubunitToUnit != nil {
		if *attrs.SubunitToUnit <= 0 {
			return nil, fmt.Errorf("%w: subunit_to_unit must be positive, got %d", apperrors.ErrValidation, *attrs.SubunitToUnit)
		}
		subunitToUnit = *attrs.SubunitToUnit
	}

	rec := &CurrencyRecord{
		ID:                   id,
		Priority:             copyInt(attrs.Priority),
		ISONumeric:           attrs.numericCode(),
		Name:                 copyString(attrs.Name),
		Symbol:               copyString(attrs.Symbol),
		DisambiguateSymbol:   copyString(attrs.DisambiguateSymbol),
		HTMLEntity:           copyString(attrs.HTMLEntity),
		Subunit:              copyString(attrs.Subunit),
		SubunitToUnit:        subunitToUnit,
		DecimalMark:          copyString(attrs.decimalMark()),
		ThousandsSeparator:   copyString(attrs.thousandsSeparator()),
		SmallestDenomination: copyInt(attrs.SmallestDenomination),
		Format:               copyString(attrs.Format),
	}
	if attrs.ISOCode != nil {
		code := *attrs.ISOCode
		rec.ISOCode = &code
	}
	if attrs.SymbolFirst != nil {
		rec.SymbolFirst = *attrs.SymbolFirst
	}
	return rec, nil
}

// Exponent is the base-10 logarithm of the subunit ratio, rounded to the
// nearest integer, with the historical overrides applied first.
func (r *CurrencyRecord) Exponent() int {
	if e, ok := exponentOverrides[r.ID]; ok {
		return e
	}
	return int(math.Round(math.Log10(float64(r.SubunitToUnit))))
}

// IsISO reports whether the record carries an ISO 4217 alphabetic code.
func (r *CurrencyRecord) IsISO() bool {
	return r.ISOCode != nil
}

// Attributes converts the record back into an attribute bag. Inherit uses
// this to overlay a child's explicit attributes on a full copy of the parent.
func (r *CurrencyRecord) Attributes() CurrencyAttributes {
	attrs := CurrencyAttributes{
		ID:                   r.ID,
		Priority:             copyInt(r.Priority),
		ISOCode:              copyString(r.ISOCode),
		Name:                 copyString(r.Name),
		Symbol:               copyString(r.Symbol),
		DisambiguateSymbol:   copyString(r.DisambiguateSymbol),
		HTMLEntity:           copyString(r.HTMLEntity),
		Subunit:              copyString(r.Subunit),
		DecimalMark:          copyString(r.DecimalMark),
		ThousandsSeparator:   copyString(r.ThousandsSeparator),
		SmallestDenomination: copyInt(r.SmallestDenomination),
		Format:               copyString(r.Format),
	}
	subunitToUnit := r.SubunitToUnit
	attrs.SubunitToUnit = &subunitToUnit
	symbolFirst := r.SymbolFirst
	attrs.SymbolFirst = &symbolFirst
	if r.ISONumeric != nil {
		num := fmt.Sprintf("%03d", *r.ISONumeric)
		attrs.ISONumeric = &num
	}
	return attrs
}

func copyInt(v *int) *int {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func copyString(v *string) *string {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
