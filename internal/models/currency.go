package models

import "encoding/json"

// Currency identifies the pricing currency of a menu item.
type Currency string

// Supported currencies. Anything else maps to CurrencyOther.
const (
	CurrencyINR   Currency = "INR"
	CurrencyUSD   Currency = "USD"
	CurrencyEUR   Currency = "EUR"
	CurrencyGBP   Currency = "GBP"
	CurrencyOther Currency = "OTHER"
)

// BaseCurrency is the reference currency all normalized prices are expressed in.
const BaseCurrency = CurrencyINR

// CurrencyFromString maps a raw currency code onto the closed enumeration.
// Unrecognized codes map to CurrencyOther rather than failing; an unknown
// currency is recoverable, conversion is simply skipped for it.
func CurrencyFromString(label string) Currency {
	switch Currency(label) {
	case CurrencyINR, CurrencyUSD, CurrencyEUR, CurrencyGBP, CurrencyOther:
		return Currency(label)
	}

	return CurrencyOther
}

// UnmarshalJSON coerces free-text currency codes onto the enumeration at the
// ingestion boundary, so downstream conversion logic stays exhaustive.
func (c *Currency) UnmarshalJSON(data []byte) error {
	var label string
	if err := json.Unmarshal(data, &label); err != nil {
		return err
	}

	*c = CurrencyFromString(label)

	return nil
}
