// Package normalizer re-validates raw restaurant records and normalizes
// their menu prices into the base currency.
package normalizer

import (
	"restokb/internal/logger"
	"restokb/internal/models"
	"restokb/internal/rates"
	"restokb/internal/store"
)

// Summary reports the outcome of one batch run.
type Summary struct {
	Total     int
	Processed int
	Skipped   int
}

// Processor runs the batch: every record in the raw store is validated,
// currency-normalized and written to the processed store under the same
// identifier. A record that fails validation is skipped and logged; siblings
// proceed. Re-running over already-processed input is a no-op, since
// converted items already carry the base currency.
type Processor struct {
	raw       *store.Store
	processed *store.Store
	rates     *rates.Provider
	logger    *logger.Logger
}

// NewProcessor creates a batch processor between the two stores.
func NewProcessor(raw, processed *store.Store, provider *rates.Provider, log *logger.Logger) *Processor {
	return &Processor{
		raw:       raw,
		processed: processed,
		rates:     provider,
		logger:    log,
	}
}

// Run processes every raw record and returns the batch summary.
func (p *Processor) Run() (Summary, error) {
	names, err := p.raw.List()
	if err != nil {
		return Summary{}, err
	}

	summary := Summary{Total: len(names)}

	if len(names) == 0 {
		p.logger.Warn("no raw records found", "dir", p.raw.Dir())

		return summary, nil
	}

	for _, name := range names {
		if err := p.processRecord(name); err != nil {
			p.logger.Error("skipping record", "record", name, "error", err)
			summary.Skipped++

			continue
		}

		p.logger.Info("processed record", "record", name)
		summary.Processed++
	}

	return summary, nil
}

func (p *Processor) processRecord(name string) error {
	data, err := p.raw.Read(name)
	if err != nil {
		return err
	}

	record, err := models.ParseRestaurant(data)
	if err != nil {
		return err
	}

	if err := record.Validate(); err != nil {
		return err
	}

	p.convertCurrencies(record)

	return p.processed.Save(name, record)
}

func (p *Processor) convertCurrencies(record *models.Restaurant) {
	for i := range record.Menu {
		for j := range record.Menu[i].Items {
			p.rates.Convert(&record.Menu[i].Items[j])
		}
	}
}
