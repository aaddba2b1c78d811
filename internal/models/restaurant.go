// Package models defines the canonical restaurant record schema shared by the
// scraper, the batch normalizer and the knowledge-base chunker.
package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Restaurant is the root record produced by a scrape and persisted as one
// JSON file per restaurant. Immutable once validated.
type Restaurant struct {
	Name           string            `json:"restaurant_name"`
	Description    string            `json:"description"`
	Location       Location          `json:"location"`
	Contact        *Contact          `json:"contact"`
	OperatingHours map[string]string `json:"operating_hours"`
	Features       []string          `json:"features"`
	Menu           []MenuSection     `json:"menu"`
	Reviews        []Review          `json:"reviews"`
}

// Location holds the restaurant address. Pincode and coordinates are optional.
type Location struct {
	Address   string   `json:"address"`
	City      string   `json:"city"`
	Pincode   *string  `json:"pincode"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`

	badLatitude  string
	badLongitude string
}

// Contact holds optional contact channels. All fields are independently
// optional; an all-nil contact is valid.
type Contact struct {
	Phone   *string `json:"phone"`
	Email   *string `json:"email"`
	Website *string `json:"website"`
}

// MenuSection is a named, display-ordered group of menu items. Duplicate item
// names within a section are allowed and never deduplicated.
type MenuSection struct {
	Section string     `json:"section"`
	Items   []MenuItem `json:"items"`
}

// MenuItem is a single dish with its price and pricing currency.
type MenuItem struct {
	Name        string   `json:"item_name"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Currency    Currency `json:"currency"`
	Tags        []string `json:"tags"`

	badPrice string
}

// Review is a single customer review. The rating scale is whatever the source
// uses; it is not normalized globally.
type Review struct {
	Rating float64 `json:"rating"`
	Text   string  `json:"review_text"`

	badRating string
}

// ParseRestaurant decodes a raw record into a Restaurant without validating
// it. Numeric fields arriving as quoted strings are coerced here, at the
// ingestion boundary; values that fail coercion are reported later by
// Validate so one bad field does not hide its siblings.
func ParseRestaurant(data []byte) (*Restaurant, error) {
	var r Restaurant

	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&r); err != nil {
		return nil, fmt.Errorf("failed to parse restaurant record: %w", err)
	}

	return &r, nil
}

// UnmarshalJSON coerces price from either a JSON number or a numeric string.
func (m *MenuItem) UnmarshalJSON(data []byte) error {
	type alias MenuItem

	aux := struct {
		*alias
		Price json.RawMessage `json:"price"`
	}{alias: (*alias)(m)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	price, bad := coerceFloat(aux.Price)
	if bad != "" {
		m.badPrice = bad
	} else if price != nil {
		m.Price = *price
	}

	if m.Currency == "" {
		m.Currency = BaseCurrency
	}

	return nil
}

// UnmarshalJSON coerces latitude and longitude from numbers or numeric strings.
func (l *Location) UnmarshalJSON(data []byte) error {
	type alias Location

	aux := struct {
		*alias
		Latitude  json.RawMessage `json:"latitude"`
		Longitude json.RawMessage `json:"longitude"`
	}{alias: (*alias)(l)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	lat, bad := coerceFloat(aux.Latitude)
	if bad != "" {
		l.badLatitude = bad
	} else {
		l.Latitude = lat
	}

	lng, bad := coerceFloat(aux.Longitude)
	if bad != "" {
		l.badLongitude = bad
	} else {
		l.Longitude = lng
	}

	return nil
}

// UnmarshalJSON coerces rating from a number or a numeric string.
func (r *Review) UnmarshalJSON(data []byte) error {
	type alias Review

	aux := struct {
		*alias
		Rating json.RawMessage `json:"rating"`
	}{alias: (*alias)(r)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	rating, bad := coerceFloat(aux.Rating)
	if bad != "" {
		r.badRating = bad
	} else if rating != nil {
		r.Rating = *rating
	}

	return nil
}

// coerceFloat accepts a JSON number, a numeric string, or null/absent.
// Returns a non-empty description of the raw value when it cannot be read as
// a number.
func coerceFloat(raw json.RawMessage) (*float64, string) {
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, ""
	}

	var num float64
	if err := json.Unmarshal(raw, &num); err == nil {
		return &num, ""
	}

	var str string
	if err := json.Unmarshal(raw, &str); err == nil {
		trimmed := strings.TrimSpace(str)
		if trimmed == "" {
			return nil, ""
		}

		if parsed, err := strconv.ParseFloat(trimmed, 64); err == nil {
			return &parsed, ""
		}
	}

	return nil, string(raw)
}
