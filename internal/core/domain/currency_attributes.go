package domain

// CurrencyAttributes is the raw attribute bag accepted by registration and
// inheritance. JSON keys follow the published currency data format. The
// decimal mark and thousands separator each have a legacy alias (separator,
// delimiter); when both spellings are present the canonical key wins.
// Unrecognized keys in source data are ignored by the JSON decoder.
type CurrencyAttributes struct {
	ID                   string  `json:"id"`
	Priority             *int    `json:"priority"`
	ISOCode              *string `json:"iso_code"`
	ISONumeric           *string `json:"iso_numeric"`
	Name                 *string `json:"name"`
	Symbol               *string `json:"symbol"`
	DisambiguateSymbol   *string `json:"disambiguate_symbol"`
	HTMLEntity           *string `json:"html_entity"`
	Subunit              *string `json:"subunit"`
	SubunitToUnit        *int    `json:"subunit_to_unit"`
	DecimalMark          *string `json:"decimal_mark"`
	Separator            *string `json:"separator"`
	ThousandsSeparator   *string `json:"thousands_separator"`
	Delimiter            *string `json:"delimiter"`
	SymbolFirst          *bool   `json:"symbol_first"`
	SmallestDenomination *int    `json:"smallest_denomination"`
	Format               *string `json:"format"`
}

// Merge overlays this bag's explicit attributes on top of base and returns
// the result. base is typically a parent record's full attribute set; fields
// the child leaves nil keep the parent's values.
func (a CurrencyAttributes) Merge(base CurrencyAttributes) CurrencyAttributes {
	out := base
	if a.ID != "" {
		out.ID = a.ID
	}
	if a.Priority != nil {
		out.Priority = a.Priority
	}
	if a.ISOCode != nil {
		out.ISOCode = a.ISOCode
		// A child with its own iso_code keys under it, not under the parent's id.
		if a.ID == "" {
			out.ID = NormalizeCode(*a.ISOCode)
		}
	}
	if a.ISONumeric != nil {
		out.ISONumeric = a.ISONumeric
	}
	if a.Name != nil {
		out.Name = a.Name
	}
	if a.Symbol != nil {
		out.Symbol = a.Symbol
	}
	if a.DisambiguateSymbol != nil {
		out.DisambiguateSymbol = a.DisambiguateSymbol
	}
	if a.HTMLEntity != nil {
		out.HTMLEntity = a.HTMLEntity
	}
	if a.Subunit != nil {
		out.Subunit = a.Subunit
	}
	if a.SubunitToUnit != nil {
		out.SubunitToUnit = a.SubunitToUnit
	}
	if a.DecimalMark != nil {
		out.DecimalMark = a.DecimalMark
	}
	if a.Separator != nil {
		out.Separator = a.Separator
	}
	if a.ThousandsSeparator != nil {
		out.ThousandsSeparator = a.ThousandsSeparator
	}
	if a.Delimiter != nil {
		out.Delimiter = a.Delimiter
	}
	if a.SymbolFirst != nil {
		out.SymbolFirst = a.SymbolFirst
	}
	if a.SmallestDenomination != nil {
		out.SmallestDenomination = a.SmallestDenomination
	}
	if a.Format != nil {
		out.Format = a.Format
	}
	return out
}

// decimalMark resolves the decimal_mark/separator alias pair.
func (a CurrencyAttributes) decimalMark() *string {
	if a.DecimalMark != nil {
		return a.DecimalMark
	}
	return a.Separator
}

// thousandsSeparator resolves the thousands_separator/delimiter alias pair.
func (a CurrencyAttributes) thousandsSeparator() *string {
	if a.ThousandsSeparator != nil {
		return a.ThousandsSeparator
	}
	return a.Delimiter
}

// numericCode parses the iso_numeric field. Malformed numeric codes are
// treated as absent rather than failing registration.
func (a CurrencyAttributes) numericCode() *int {
	if a.ISONumeric == nil {
		return nil
	}
	n, ok := NormalizeNumeric(*a.ISONumeric)
	if !ok {
		return nil
	}
	return &n
}
