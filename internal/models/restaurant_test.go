package models

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"
)

func validRecord() []byte {
	return []byte(`{
		"restaurant_name": "The Big Grill",
		"description": "North Indian, Mughlai",
		"location": {"address": "12 Gomti Nagar", "city": "Lucknow", "pincode": null, "latitude": 26.85, "longitude": 80.95},
		"contact": {"phone": "+91 9876543210", "email": null, "website": null},
		"operating_hours": {"Mon-Sun": "12noon - 11pm"},
		"features": ["Cuisine: Mughlai"],
		"menu": [{"section": "Starters", "items": [
			{"item_name": "Paneer Tikka", "description": "", "price": 250, "currency": "INR", "tags": ["veg"]}
		]}],
		"reviews": [{"rating": 4.5, "review_text": "Great food"}]
	}`)
}

func TestParseRestaurant(t *testing.T) {
	r, err := ParseRestaurant(validRecord())
	if err != nil {
		t.Fatalf("ParseRestaurant returned unexpected error: %v", err)
	}

	if r.Name != "The Big Grill" {
		t.Errorf("Name = %q, want The Big Grill", r.Name)
	}

	if err := r.Validate(); err != nil {
		t.Errorf("Validate returned unexpected error: %v", err)
	}
}

func TestParseRestaurant_InvalidJSON(t *testing.T) {
	if _, err := ParseRestaurant([]byte(`{not json`)); err == nil {
		t.Error("ParseRestaurant expected error for malformed JSON")
	}
}

func TestParseRestaurant_StringPriceCoercion(t *testing.T) {
	tests := []struct {
		name  string
		price string
		want  float64
	}{
		{"Number", `250`, 250},
		{"Quoted number", `"250"`, 250},
		{"Quoted decimal", `"99.5"`, 99.5},
		{"Null", `null`, 0},
		{"Empty string", `""`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var item MenuItem

			raw := `{"item_name": "Dal", "price": ` + tt.price + `, "currency": "INR"}`
			if err := json.Unmarshal([]byte(raw), &item); err != nil {
				t.Fatalf("Unmarshal returned unexpected error: %v", err)
			}

			if item.Price != tt.want {
				t.Errorf("Price = %v, want %v", item.Price, tt.want)
			}
		})
	}
}

func TestValidate_BadPriceReported(t *testing.T) {
	raw := []byte(`{
		"restaurant_name": "X",
		"location": {"address": "A", "city": "C"},
		"menu": [{"section": "S", "items": [{"item_name": "Dal", "price": "cheap"}]}]
	}`)

	r, err := ParseRestaurant(raw)
	if err != nil {
		t.Fatalf("ParseRestaurant returned unexpected error: %v", err)
	}

	err = r.Validate()
	if err == nil {
		t.Fatal("Validate expected error for non-numeric price")
	}

	if !strings.Contains(err.Error(), "menu[0].items[0].price") {
		t.Errorf("Validate error = %v, want price field mentioned", err)
	}
}

func TestValidate_EnumeratesAllFields(t *testing.T) {
	r := &Restaurant{
		Contact: &Contact{
			Email:   ptr("not-an-email"),
			Website: ptr("::not a url"),
		},
		Menu: []MenuSection{{
			Section: "Starters",
			Items:   []MenuItem{{Name: "Dal", Price: -5, Currency: CurrencyINR}},
		}},
	}

	err := r.Validate()
	if err == nil {
		t.Fatal("Validate expected error")
	}

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Validate error is not *ValidationError: %v", err)
	}

	wantFields := []string{
		"restaurant_name",
		"location.address",
		"location.city",
		"contact.email",
		"contact.website",
		"menu[0].items[0].price",
	}

	if len(verr.Fields) != len(wantFields) {
		t.Fatalf("Fields count = %d, want %d: %v", len(verr.Fields), len(wantFields), err)
	}

	for i, want := range wantFields {
		if verr.Fields[i].Field != want {
			t.Errorf("Fields[%d] = %s, want %s", i, verr.Fields[i].Field, want)
		}
	}
}

func TestValidate_OptionalContactAbsent(t *testing.T) {
	r := &Restaurant{
		Name:     "X",
		Location: Location{Address: "A", City: "C"},
	}

	if err := r.Validate(); err != nil {
		t.Errorf("Validate returned unexpected error for nil contact: %v", err)
	}
}

func TestRestaurant_RoundTrip(t *testing.T) {
	r, err := ParseRestaurant(validRecord())
	if err != nil {
		t.Fatalf("ParseRestaurant returned unexpected error: %v", err)
	}

	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		t.Fatalf("MarshalIndent returned unexpected error: %v", err)
	}

	again, err := ParseRestaurant(data)
	if err != nil {
		t.Fatalf("ParseRestaurant on serialized form returned error: %v", err)
	}

	if err := again.Validate(); err != nil {
		t.Errorf("Validate on re-parsed record returned error: %v", err)
	}

	if !reflect.DeepEqual(r, again) {
		t.Errorf("round-tripped record differs:\n got %+v\nwant %+v", again, r)
	}
}

func ptr[T any](v T) *T {
	return &v
}
