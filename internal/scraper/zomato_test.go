package scraper

import (
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"restokb/internal/logger"
	"restokb/internal/models"
)

const restaurantURL = "https://www.zomato.com/lucknow/the-big-grill-gomti-nagar"

const orderDoc = `{
	"location": {"cityName": "Lucknow", "latitude": "26.85", "longitude": 80.95},
	"page_data": {
		"order": {"menuList": {"menus": [
			{"menu": {"name": "Dinner", "categories": [
				{"category": {"name": "Starters", "items": [
					{"item": {"name": "Paneer Tikka", "desc": "Char-grilled", "display_price": 250, "price": 300, "tag_slugs": ["veg"]}},
					{"item": {"name": "Veg Platter", "display_price": 0, "price": "450"}},
					{"item": {"name": "Broken", "price": "not-a-price"}},
					{"item": {"name": "Free Sample"}}
				]}}
			]}}
		]}},
		"sections": {
			"SECTION_BASIC_INFO": {"name": "The Big Grill", "timing": {"customised_timings": {"opening_hours": [
				{"days": "Mon-Fri", "timing": "12noon - 11pm"},
				{"days": "", "timing": "12noon - 1am"},
				{"days": "Sat"}
			]}}},
			"SECTION_RES_CONTACT": {
				"address": {"address": "12 Gomti Nagar", "locality": "Gomti Nagar"},
				"phoneDetails": {"phoneStr": "+91 9876543210"}
			}
		}
	}
}`

const mainDoc = `{
	"page_data": {"sections": {
		"SECTION_BASIC_INFO": {"name": "The Big Grill", "cuisine_string": "North Indian, Mughlai"},
		"SECTION_RES_DETAILS": {
			"CFT_DETAILS": {"cfts": [{"title": "Rs.1200", "subtitle": "for two"}]},
			"HIGHLIGHTS": {"highlights": [{"text": "Outdoor Seating"}, {"text": ""}]},
			"CUISINES": {"cuisines": [{"name": "Mughlai"}]},
			"TOP_DISHES": {"title": "Top Dishes", "description": "Galouti Kebab"}
		},
		"SECTION_REVIEW_HIGHLIGHTS": {"PEOPLE_LIKED": {"title": "People Liked", "description": "Ambience"}}
	}}
}`

const reviewsDoc = `{
	"entities": {"REVIEWS": {
		"101": {"reviewText": "Great food", "ratingV2": 4.5},
		"102": {"reviewText": "", "ratingV2": "4"},
		"103": {"reviewText": "Bad shape", "ratingV2": {"oops": true}}
	}}
}`

// newTestScraper serves the given documents keyed by page variant suffix.
func newTestScraper(t *testing.T, docs map[string]string) (*ZomatoScraper, *atomic.Int32) {
	t.Helper()

	calls := &atomic.Int32{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)

		suffix := strings.TrimPrefix(r.URL.Query().Get("page_url"), restaurantURL)

		doc, ok := docs[suffix]
		if !ok {
			http.NotFound(w, r)

			return
		}

		w.Write([]byte(doc))
	}))
	t.Cleanup(srv.Close)

	log := logger.NewLogger("error")
	client := NewPageClient(srv.URL+"/webroutes/getPage?page_url=", 5*time.Second, log)

	return NewZomatoScraper(restaurantURL, client, log), calls
}

func fullDocs() map[string]string {
	return map[string]string{
		variantMain:    mainDoc,
		variantOrder:   orderDoc,
		variantReviews: reviewsDoc,
	}
}

func TestZomatoScraper_Scrape(t *testing.T) {
	z, _ := newTestScraper(t, fullDocs())

	r, err := z.Scrape()
	if err != nil {
		t.Fatalf("Scrape returned unexpected error: %v", err)
	}

	if r.Name != "The Big Grill" {
		t.Errorf("Name = %q, want The Big Grill", r.Name)
	}

	if r.Description != "North Indian, Mughlai" {
		t.Errorf("Description = %q", r.Description)
	}

	if err := r.Validate(); err != nil {
		t.Errorf("scraped record failed validation: %v", err)
	}
}

func TestZomatoScraper_Menu(t *testing.T) {
	z, _ := newTestScraper(t, fullDocs())

	r, err := z.Scrape()
	if err != nil {
		t.Fatalf("Scrape returned unexpected error: %v", err)
	}

	if len(r.Menu) != 1 {
		t.Fatalf("Menu sections = %d, want 1", len(r.Menu))
	}

	section := r.Menu[0]
	if section.Section != "Dinner Starters" {
		t.Errorf("Section = %q, want Dinner Starters", section.Section)
	}

	// The item with an unparseable price is skipped, the rest survive.
	if len(section.Items) != 3 {
		t.Fatalf("Items = %d, want 3", len(section.Items))
	}

	tests := []struct {
		name  string
		price float64
	}{
		{"Paneer Tikka", 250}, // display price wins over list price
		{"Veg Platter", 450},  // zero display price falls back to quoted list price
		{"Free Sample", 0},    // both absent
	}

	for i, tt := range tests {
		item := section.Items[i]
		if item.Name != tt.name || item.Price != tt.price {
			t.Errorf("Items[%d] = %q/%v, want %q/%v", i, item.Name, item.Price, tt.name, tt.price)
		}

		if item.Currency != models.BaseCurrency {
			t.Errorf("Items[%d].Currency = %s, want base", i, item.Currency)
		}
	}

	if !reflect.DeepEqual(section.Items[0].Tags, []string{"veg"}) {
		t.Errorf("Items[0].Tags = %v, want [veg]", section.Items[0].Tags)
	}
}

func TestZomatoScraper_Location(t *testing.T) {
	z, _ := newTestScraper(t, fullDocs())

	r, err := z.Scrape()
	if err != nil {
		t.Fatalf("Scrape returned unexpected error: %v", err)
	}

	loc := r.Location
	if loc.Address != "12 Gomti Nagar" {
		t.Errorf("Address = %q, want the flattened address field", loc.Address)
	}

	if loc.City != "Lucknow" {
		t.Errorf("City = %q, want Lucknow", loc.City)
	}

	if loc.Latitude == nil || *loc.Latitude != 26.85 {
		t.Errorf("Latitude = %v, want 26.85 coerced from string", loc.Latitude)
	}

	if loc.Longitude == nil || *loc.Longitude != 80.95 {
		t.Errorf("Longitude = %v, want 80.95", loc.Longitude)
	}

	if loc.Pincode != nil {
		t.Errorf("Pincode = %v, want nil", loc.Pincode)
	}
}

func TestZomatoScraper_ContactAndHours(t *testing.T) {
	z, _ := newTestScraper(t, fullDocs())

	r, err := z.Scrape()
	if err != nil {
		t.Fatalf("Scrape returned unexpected error: %v", err)
	}

	if r.Contact == nil || r.Contact.Phone == nil || *r.Contact.Phone != "+91 9876543210" {
		t.Errorf("Contact = %+v, want phone populated", r.Contact)
	}

	if r.Contact.Email != nil || r.Contact.Website != nil {
		t.Error("Email/Website should not be populated for this source")
	}

	// Entries missing days or timing are skipped.
	want := map[string]string{"Mon-Fri": "12noon - 11pm"}
	if !reflect.DeepEqual(r.OperatingHours, want) {
		t.Errorf("OperatingHours = %v, want %v", r.OperatingHours, want)
	}
}

func TestZomatoScraper_Features(t *testing.T) {
	z, _ := newTestScraper(t, fullDocs())

	r, err := z.Scrape()
	if err != nil {
		t.Fatalf("Scrape returned unexpected error: %v", err)
	}

	want := []string{
		"Cost for Two: Rs.1200 for two",
		"Highlight: Outdoor Seating",
		"Cuisine: Mughlai",
		"Top Dishes Galouti Kebab",
		"People Liked Ambience",
	}

	if !reflect.DeepEqual(r.Features, want) {
		t.Errorf("Features = %v\nwant %v", r.Features, want)
	}
}

func TestZomatoScraper_Reviews(t *testing.T) {
	z, _ := newTestScraper(t, fullDocs())

	r, err := z.Scrape()
	if err != nil {
		t.Fatalf("Scrape returned unexpected error: %v", err)
	}

	// The review with an object rating is skipped.
	want := []models.Review{
		{Rating: 4.5, Text: "Great food"},
		{Rating: 4, Text: ""},
	}

	if !reflect.DeepEqual(r.Reviews, want) {
		t.Errorf("Reviews = %+v, want %+v", r.Reviews, want)
	}
}

func TestZomatoScraper_MissingName(t *testing.T) {
	docs := fullDocs()
	docs[variantOrder] = `{"page_data": {"sections": {"SECTION_RES_CONTACT": {"address": "somewhere"}}}}`

	z, _ := newTestScraper(t, docs)

	r, err := z.Scrape()
	if err != nil {
		t.Fatalf("Scrape returned unexpected error: %v", err)
	}

	if r.Name != PlaceholderName {
		t.Errorf("Name = %q, want %q sentinel", r.Name, PlaceholderName)
	}
}

func TestZomatoScraper_EmptyReviews(t *testing.T) {
	docs := fullDocs()
	docs[variantReviews] = `{"entities": {"REVIEWS": {}}}`

	z, _ := newTestScraper(t, docs)

	r, err := z.Scrape()
	if err != nil {
		t.Fatalf("Scrape returned unexpected error: %v", err)
	}

	if r.Reviews == nil || len(r.Reviews) != 0 {
		t.Errorf("Reviews = %v, want empty slice", r.Reviews)
	}
}

func TestZomatoScraper_TransportFailure(t *testing.T) {
	docs := fullDocs()
	delete(docs, variantOrder)

	z, _ := newTestScraper(t, docs)

	if _, err := z.Scrape(); err == nil {
		t.Error("Scrape expected error when a page variant is unreachable")
	}
}

func TestZomatoScraper_TopLevelParseFailure(t *testing.T) {
	docs := fullDocs()
	docs[variantMain] = `<html>captcha</html>`

	z, _ := newTestScraper(t, docs)

	if _, err := z.Scrape(); err == nil {
		t.Error("Scrape expected error for an unparseable page document")
	}
}

func TestPageClient_CachesPerVariant(t *testing.T) {
	z, calls := newTestScraper(t, fullDocs())

	if _, err := z.Scrape(); err != nil {
		t.Fatalf("Scrape returned unexpected error: %v", err)
	}

	// One fetch per page variant, shared by every sub-extraction.
	if got := calls.Load(); got != 3 {
		t.Errorf("endpoint fetched %d times, want 3", got)
	}
}
