package services

import "github.com/masoo/money/internal/core/domain"

// Heuristic classification over resolved handles. Everything here is
// advisory and stateless: it reads record attributes through the handles it
// is given and never touches the registry.

// ISOComplianceReport summarizes how much of a currency collection carries
// full ISO 4217 identification.
type ISOComplianceReport struct {
	Total          int      `json:"total"`
	ISO            int      `json:"iso"`
	Custom         int      `json:"custom"`
	MissingNumeric []string `json:"missing_numeric,omitempty"`
}

// PartitionByISO splits handles into ISO-registered currencies and custom
// ones, preserving the input order within each partition.
func PartitionByISO(currencies []domain.Currency) (iso, custom []domain.Currency) {
	for _, c := range currencies {
		if c.IsISO() {
			iso = append(iso, c)
		} else {
			custom = append(custom, c)
		}
	}
	return iso, custom
}

// LooksISOCompliant guesses whether a currency would pass as an ISO 4217
// entry: a three-letter alphabetic code plus an assigned numeric code. It is
// a best-effort signal, not a registry invariant.
func LooksISOCompliant(c domain.Currency) bool {
	code, err := c.ISOCode()
	if err != nil || len(code) != 3 {
		return false
	}
	for _, r := range code {
		if (r < 'A' || r > 'Z') && (r < 'a' || r > 'z') {
			return false
		}
	}
	_, err = c.ISONumeric()
	return err == nil
}

// AnalyzeISOCompliance builds a report over the given handles. Currencies
// with an alphabetic code but no numeric one are listed by uppercase id so a
// registrar can spot incomplete custom registrations.
func AnalyzeISOCompliance(currencies []domain.Currency) ISOComplianceReport {
	report := ISOComplianceReport{Total: len(currencies)}
	for _, c := range currencies {
		if !c.IsISO() {
			report.Custom++
			continue
		}
		report.ISO++
		if !LooksISOCompliant(c) {
			report.MissingNumeric = append(report.MissingNumeric, c.String())
		}
	}
	return report
}

// GroupBySymbolPlacement buckets handles by whether the symbol precedes the
// amount, useful for display-layer sampling.
func GroupBySymbolPlacement(currencies []domain.Currency) (symbolFirst, symbolLast []domain.Currency) {
	for _, c := range currencies {
		if c.SymbolFirst() {
			symbolFirst = append(symbolFirst, c)
		} else {
			symbolLast = append(symbolLast, c)
		}
	}
	return symbolFirst, symbolLast
}
