package models

import (
	"encoding/json"
	"testing"
)

func TestCurrencyFromString(t *testing.T) {
	tests := []struct {
		label string
		want  Currency
	}{
		{"INR", CurrencyINR},
		{"USD", CurrencyUSD},
		{"EUR", CurrencyEUR},
		{"GBP", CurrencyGBP},
		{"OTHER", CurrencyOther},
		{"XYZ", CurrencyOther},
		{"usd", CurrencyOther},
		{"", CurrencyOther},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			if got := CurrencyFromString(tt.label); got != tt.want {
				t.Errorf("CurrencyFromString(%q) = %s, want %s", tt.label, got, tt.want)
			}
		})
	}
}

func TestCurrency_UnmarshalJSON(t *testing.T) {
	var item MenuItem
	if err := json.Unmarshal([]byte(`{"item_name":"Paneer Tikka","price":250,"currency":"AUD"}`), &item); err != nil {
		t.Fatalf("Unmarshal returned unexpected error: %v", err)
	}

	if item.Currency != CurrencyOther {
		t.Errorf("Currency = %s, want OTHER for unrecognized code", item.Currency)
	}
}

func TestCurrency_UnmarshalJSON_NonString(t *testing.T) {
	var c Currency
	if err := json.Unmarshal([]byte(`42`), &c); err == nil {
		t.Error("Unmarshal expected error for non-string currency")
	}
}
