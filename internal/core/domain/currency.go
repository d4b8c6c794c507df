package domain

import (
	"strings"

	"github.com/masoo/money/internal/apperrors"
)

// CurrencyResolver resolves a canonical key to the live record behind it.
// The registry implements this; handles hold one so that they always observe
// the current attributes, including those of a re-registered record.
type CurrencyResolver interface {
	Resolve(id string) (*CurrencyRecord, bool)
}

// Currency is a lightweight handle on a registered currency. It carries only
// the canonical key and a resolver; it is not a snapshot. Handles are cheap
// to copy and safe to use as map keys via Key().
//
// Equality and ordering deliberately disagree: Equal compares canonical ids
// and nothing else, while Cmp orders by the records' priority field and
// nothing else. Two distinct currencies with the same priority compare as
// ties under Cmp yet are not Equal, and two Equal handles may change their
// Cmp result when the record's priority is re-registered. Downstream display
// grouping relies on priority-based sorting, so the divergence is intentional
// and must not be "fixed" by folding ids into Cmp.
type Currency struct {
	id  string
	res CurrencyResolver
}

// NewCurrency builds a handle for the given identifier. The identifier is
// normalized; resolution happens lazily at each accessor call.
func NewCurrency(identifier string, res CurrencyResolver) Currency {
	return Currency{id: NormalizeCode(identifier), res: res}
}

// Key returns the canonical lowercase id. Use this as the hash/map key.
func (c Currency) Key() string { return c.id }

// IsZero reports whether the handle is the zero value (no identifier).
func (c Currency) IsZero() bool { return c.id == "" }

// String returns the uppercased canonical id, e.g. "USD".
func (c Currency) String() string { return strings.ToUpper(c.id) }

// Equal reports whether both handles name the same currency. Only the
// canonical id participates; attribute differences are irrelevant.
func (c Currency) Equal(other Currency) bool { return c.id == other.id }

// Cmp is a three-way comparison by priority, ascending. Currencies without a
// priority sort after those with one; two absent priorities tie. Cmp is
// reflexive and transitive over priority but not consistent with Equal.
func (c Currency) Cmp(other Currency) int {
	p1, ok1 := c.Priority()
	p2, ok2 := other.Priority()
	switch {
	case !ok1 && !ok2:
		return 0
	case !ok1:
		return 1
	case !ok2:
		return -1
	case p1 < p2:
		return -1
	case p1 > p2:
		return 1
	default:
		return 0
	}
}

// Record returns the live record behind the handle, if the currency is still
// registered.
func (c Currency) Record() (*CurrencyRecord, bool) {
	if c.res == nil {
		return nil, false
	}
	return c.res.Resolve(c.id)
}

// Priority returns the record's priority, reporting false when the record or
// the field is absent.
func (c Currency) Priority() (int, bool) {
	rec, ok := c.Record()
	if !ok || rec.Priority == nil {
		return 0, false
	}
	return *rec.Priority, true
}

// Name returns the display name, or "" when absent.
func (c Currency) Name() string {
	return c.stringField(func(r *CurrencyRecord) *string { return r.Name })
}

// Symbol returns the display symbol, or "" when absent.
func (c Currency) Symbol() string {
	return c.stringField(func(r *CurrencyRecord) *string { return r.Symbol })
}

// DisambiguateSymbol returns the unambiguous symbol variant, or "" when absent.
func (c Currency) DisambiguateSymbol() string {
	return c.stringField(func(r *CurrencyRecord) *string { return r.DisambiguateSymbol })
}

// HTMLEntity returns the HTML entity for the symbol, or "" when absent.
func (c Currency) HTMLEntity() string {
	return c.stringField(func(r *CurrencyRecord) *string { return r.HTMLEntity })
}

// Subunit returns the name of the fractional unit, or "" when absent.
func (c Currency) Subunit() string {
	return c.stringField(func(r *CurrencyRecord) *string { return r.Subunit })
}

// DecimalMark returns the decimal punctuation, or "" when absent.
func (c Currency) DecimalMark() string {
	return c.stringField(func(r *CurrencyRecord) *string { return r.DecimalMark })
}

// ThousandsSeparator returns the grouping punctuation, or "" when absent.
func (c Currency) ThousandsSeparator() string {
	return c.stringField(func(r *CurrencyRecord) *string { return r.ThousandsSeparator })
}

// Format returns the display format template, or "" when absent.
func (c Currency) Format() string {
	return c.stringField(func(r *CurrencyRecord) *string { return r.Format })
}

// SymbolFirst reports whether the symbol precedes the amount.
func (c Currency) SymbolFirst() bool {
	rec, ok := c.Record()
	return ok && rec.SymbolFirst
}

// SubunitToUnit returns the subunit ratio, defaulting to 1 for an
// unresolvable handle.
func (c Currency) SubunitToUnit() int {
	rec, ok := c.Record()
	if !ok {
		return 1
	}
	return rec.SubunitToUnit
}

// ISOCode returns the 3-letter ISO 4217 code. Custom currencies registered
// without one get a MissingAttributeError naming this accessor.
func (c Currency) ISOCode() (string, error) {
	rec, ok := c.Record()
	if !ok {
		return "", apperrors.NewUnknownCurrency(c.id)
	}
	if rec.ISOCode == nil {
		return "", &apperrors.MissingAttributeError{Accessor: "ISOCode", CurrencyID: c.id, Attribute: "iso_code"}
	}
	return *rec.ISOCode, nil
}

// ISONumeric returns the ISO 4217 numeric code, or a MissingAttributeError
// when the record does not carry one.
func (c Currency) ISONumeric() (int, error) {
	rec, ok := c.Record()
	if !ok {
		return 0, apperrors.NewUnknownCurrency(c.id)
	}
	if rec.ISONumeric == nil {
		return 0, &apperrors.MissingAttributeError{Accessor: "ISONumeric", CurrencyID: c.id, Attribute: "iso_numeric"}
	}
	return *rec.ISONumeric, nil
}

// SmallestDenomination returns the smallest physical denomination in
// subunits, or a MissingAttributeError when the record does not carry one.
func (c Currency) SmallestDenomination() (int, error) {
	rec, ok := c.Record()
	if !ok {
		return 0, apperrors.NewUnknownCurrency(c.id)
	}
	if rec.SmallestDenomination == nil {
		return 0, &apperrors.MissingAttributeError{Accessor: "SmallestDenomination", CurrencyID: c.id, Attribute: "smallest_denomination"}
	}
	return *rec.SmallestDenomination, nil
}

// Code returns the display symbol when the record has one, falling back to
// the uppercase ISO code or id.
func (c Currency) Code() string {
	rec, ok := c.Record()
	if !ok {
		return c.String()
	}
	if rec.Symbol != nil && *rec.Symbol != "" {
		return *rec.Symbol
	}
	if rec.ISOCode != nil {
		return strings.ToUpper(*rec.ISOCode)
	}
	return c.String()
}

// IsISO reports whether the currency carries an ISO 4217 alphabetic code.
func (c Currency) IsISO() bool {
	rec, ok := c.Record()
	return ok && rec.IsISO()
}

// Exponent returns the decimal display precision derived from the subunit
// ratio, including the historical overrides. An unresolvable handle reports 0.
func (c Currency) Exponent() int {
	rec, ok := c.Record()
	if !ok {
		return 0
	}
	return rec.Exponent()
}

func (c Currency) stringField(pick func(*CurrencyRecord) *string) string {
	rec, ok := c.Record()
	if !ok {
		return ""
	}
	if v := pick(rec); v != nil {
		return *v
	}
	return ""
}
