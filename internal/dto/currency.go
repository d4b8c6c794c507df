package dto

import (
	"fmt"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/masoo/money/internal/core/domain"
)

// RegisterCurrencyRequest is the attribute bag accepted by the register and
// inherit endpoints. Every field except the keying information is optional;
// aliases (separator/delimiter) are accepted the same way the seed format
// accepts them.
type RegisterCurrencyRequest struct {
	ID                   string  `json:"id"`
	Priority             *int    `json:"priority" binding:"omitempty,gte=0"`
	ISOCode              *string `json:"iso_code" binding:"omitempty,alpha,len=3"`
	ISONumeric           *string `json:"iso_numeric" binding:"omitempty,iso_numeric"`
	Name                 *string `json:"name"`
	Symbol               *string `json:"symbol"`
	DisambiguateSymbol   *string `json:"disambiguate_symbol"`
	HTMLEntity           *string `json:"html_entity"`
	Subunit              *string `json:"subunit"`
	SubunitToUnit        *int    `json:"subunit_to_unit" binding:"omitempty,gt=0"`
	DecimalMark          *string `json:"decimal_mark"`
	Separator            *string `json:"separator"`
	ThousandsSeparator   *string `json:"thousands_separator"`
	Delimiter            *string `json:"delimiter"`
	SymbolFirst          *bool   `json:"symbol_first"`
	SmallestDenomination *int    `json:"smallest_denomination" binding:"omitempty,gte=0"`
	Format               *string `json:"format"`
}

// ToAttributes converts the request into the domain attribute bag.
func (r RegisterCurrencyRequest) ToAttributes() domain.CurrencyAttributes {
	return domain.CurrencyAttributes{
		ID:                   r.ID,
		Priority:             r.Priority,
		ISOCode:              r.ISOCode,
		ISONumeric:           r.ISONumeric,
		Name:                 r.Name,
		Symbol:               r.Symbol,
		DisambiguateSymbol:   r.DisambiguateSymbol,
		HTMLEntity:           r.HTMLEntity,
		Subunit:              r.Subunit,
		SubunitToUnit:        r.SubunitToUnit,
		DecimalMark:          r.DecimalMark,
		Separator:            r.Separator,
		ThousandsSeparator:   r.ThousandsSeparator,
		Delimiter:            r.Delimiter,
		SymbolFirst:          r.SymbolFirst,
		SmallestDenomination: r.SmallestDenomination,
		Format:               r.Format,
	}
}

// CurrencyResponse is the wire form of a resolved currency.
type CurrencyResponse struct {
	ID                   string  `json:"id"`
	Priority             *int    `json:"priority,omitempty"`
	ISOCode              *string `json:"iso_code,omitempty"`
	ISONumeric           *string `json:"iso_numeric,omitempty"`
	Name                 string  `json:"name,omitempty"`
	Symbol               string  `json:"symbol,omitempty"`
	DisambiguateSymbol   string  `json:"disambiguate_symbol,omitempty"`
	HTMLEntity           string  `json:"html_entity,omitempty"`
	Subunit              string  `json:"subunit,omitempty"`
	SubunitToUnit        int     `json:"subunit_to_unit"`
	DecimalMark          string  `json:"decimal_mark,omitempty"`
	ThousandsSeparator   string  `json:"thousands_separator,omitempty"`
	SymbolFirst          bool    `json:"symbol_first"`
	SmallestDenomination *int    `json:"smallest_denomination,omitempty"`
	Format               string  `json:"format,omitempty"`
	Exponent             int     `json:"exponent"`
	ISO                  bool    `json:"iso"`
	Code                 string  `json:"code"`
}

// ToCurrencyResponse projects a handle's live record into the wire form.
func ToCurrencyResponse(c domain.Currency) CurrencyResponse {
	resp := CurrencyResponse{
		ID:                 c.Key(),
		Name:               c.Name(),
		Symbol:             c.Symbol(),
		DisambiguateSymbol: c.DisambiguateSymbol(),
		HTMLEntity:         c.HTMLEntity(),
		Subunit:            c.Subunit(),
		SubunitToUnit:      c.SubunitToUnit(),
		DecimalMark:        c.DecimalMark(),
		ThousandsSeparator: c.ThousandsSeparator(),
		SymbolFirst:        c.SymbolFirst(),
		Format:             c.Format(),
		Exponent:           c.Exponent(),
		ISO:                c.IsISO(),
		Code:               c.Code(),
	}
	if p, ok := c.Priority(); ok {
		resp.Priority = &p
	}
	if code, err := c.ISOCode(); err == nil {
		resp.ISOCode = &code
	}
	if num, err := c.ISONumeric(); err == nil {
		formatted := fmt.Sprintf("%03d", num)
		resp.ISONumeric = &formatted
	}
	if sd, err := c.SmallestDenomination(); err == nil {
		resp.SmallestDenomination = &sd
	}
	return resp
}

// ToListCurrencyResponse converts a slice of handles, preserving order.
func ToListCurrencyResponse(currencies []domain.Currency) []CurrencyResponse {
	res := make([]CurrencyResponse, len(currencies))
	for i, c := range currencies {
		res[i] = ToCurrencyResponse(c)
	}
	return res
}

// UnregisterCurrencyResponse reports the outcome of an unregister call.
// Removing an absent currency is not an error, just removed=false.
type UnregisterCurrencyResponse struct {
	Removed bool `json:"removed"`
}

// RegisterCustomValidations installs the iso_numeric binding tag: one to
// three ASCII digits, leading zeros allowed ("008", "978"). Call once at
// startup before routes are served.
func RegisterCustomValidations() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected gin validator engine %T", binding.Validator.Engine())
	}
	return v.RegisterValidation("iso_numeric", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		if len(s) == 0 || len(s) > 3 {
			return false
		}
		for _, r := range s {
			if r < '0' || r > '9' {
				return false
			}
		}
		return true
	})
}
