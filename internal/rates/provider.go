// Package rates fetches exchange rates and converts menu prices into the
// base currency.
package rates

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"restokb/internal/logger"
	"restokb/internal/models"
)

// Rate fetch errors.
var (
	ErrUnexpectedStatusCode = errors.New("unexpected status code")
	ErrMalformedRates       = errors.New("malformed rates response")
)

// Table maps a non-base currency to units of base currency per one foreign
// unit: base_price = foreign_price * factor.
type Table map[models.Currency]float64

// basket is the fixed set of currencies fetched from the live source.
var basket = []models.Currency{models.CurrencyUSD, models.CurrencyEUR, models.CurrencyGBP}

// DefaultFallback is the static snapshot used when the live source is
// unreachable or malformed. Overridable via config.
func DefaultFallback() Table {
	return Table{
		models.CurrencyUSD: 85.34,
		models.CurrencyEUR: 97.2,
		models.CurrencyGBP: 113.58,
	}
}

// Provider serves conversion factors from a lazily fetched, process-lifetime
// cache. A successful fetch is memoized forever; the fallback snapshot is
// never cached, so a later call may retry the live source.
type Provider struct {
	endpoint string
	client   *http.Client
	fallback Table
	logger   *logger.Logger

	mu     sync.Mutex
	cached Table
}

// NewProvider creates a rate provider. An empty fallback map selects the
// default snapshot.
func NewProvider(endpoint string, timeout time.Duration, fallback map[string]float64, log *logger.Logger) *Provider {
	table := DefaultFallback()
	if len(fallback) > 0 {
		table = make(Table, len(fallback))
		for code, rate := range fallback {
			table[models.CurrencyFromString(code)] = rate
		}
	}

	return &Provider{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
		fallback: table,
		logger:   log,
	}
}

// Rates returns the conversion table. The mutex is held across the fetch so
// concurrent first callers trigger at most one network call and all observe
// the same resulting table.
func (p *Provider) Rates() Table {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cached != nil {
		return p.cached
	}

	table, err := p.fetch()
	if err != nil {
		p.logger.Error("failed to fetch exchange rates, using fallback snapshot", "error", err)

		return p.fallback
	}

	p.cached = table

	return p.cached
}

// RateFor returns the factor converting the given currency into the base
// currency. The second return value reports whether the currency is in the
// table; the base currency itself always yields the identity factor.
func (p *Provider) RateFor(currency models.Currency) (float64, bool) {
	if currency == models.BaseCurrency {
		return 1, true
	}

	factor, ok := p.Rates()[currency]

	return factor, ok
}

// Convert rewrites a menu item's price into the base currency. Items already
// in the base currency are a no-op, and OTHER items pass through unchanged
// rather than being converted by a guessed rate.
func (p *Provider) Convert(item *models.MenuItem) {
	if item.Currency == models.BaseCurrency || item.Currency == models.CurrencyOther {
		return
	}

	factor, ok := p.RateFor(item.Currency)
	if !ok {
		factor = 1
	}

	item.Price *= factor
	item.Currency = models.BaseCurrency
}

// fetch pulls the live table. The source expresses rates as foreign units per
// one base unit, so each entry is inverted into the multiply convention.
func (p *Provider) fetch() (Table, error) {
	resp, err := p.client.Get(p.endpoint)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %d", ErrUnexpectedStatusCode, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var payload struct {
		Rates map[string]float64 `json:"rates"`
	}

	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedRates, err)
	}

	table := make(Table, len(basket))

	for _, currency := range basket {
		rate, ok := payload.Rates[string(currency)]
		if !ok || rate <= 0 {
			return nil, fmt.Errorf("%w: missing or non-positive rate for %s", ErrMalformedRates, currency)
		}

		table[currency] = 1 / rate
	}

	return table, nil
}
