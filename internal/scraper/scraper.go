// Package scraper extracts structured restaurant records from delivery-site
// page-data endpoints.
package scraper

import "restokb/internal/models"

// Scraper is the capability "scrape a structured restaurant record from a
// source". One implementation per source site; the pipeline only sees this
// contract, so new sources plug in without touching it.
type Scraper interface {
	// Source identifies the page being scraped, for logging and reports.
	Source() string

	// Scrape fetches the source pages and assembles a full record. Transport
	// failures are fatal and propagate; malformed pieces inside an otherwise
	// readable payload degrade to defaults instead.
	Scrape() (*models.Restaurant, error)
}
