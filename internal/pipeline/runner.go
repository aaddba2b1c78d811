// Package pipeline drives scrape jobs end to end: extract, persist, report.
package pipeline

import (
	"time"

	"restokb/internal/logger"
	"restokb/internal/models"
	"restokb/internal/scraper"
	"restokb/internal/store"
)

// JobResult records the outcome of one scrape job for logging and the run
// report.
type JobResult struct {
	Name     string
	Source   string
	Sections int
	Items    int
	Reviews  int
	Duration time.Duration
	Err      error
}

// Succeeded reports whether the job produced a persisted record.
func (r *JobResult) Succeeded() bool {
	return r.Err == nil
}

// Runner executes an ordered list of scrape jobs sequentially. A failing job
// is logged and skipped; it never aborts the batch. A fixed politeness delay
// runs after every job, success or failure.
type Runner struct {
	scrapers []scraper.Scraper
	store    *store.Store
	delay    time.Duration
	logger   *logger.Logger
	sleep    func(time.Duration)
}

// NewRunner creates a runner persisting into the given raw-record store.
func NewRunner(scrapers []scraper.Scraper, st *store.Store, delay time.Duration, log *logger.Logger) *Runner {
	return &Runner{
		scrapers: scrapers,
		store:    st,
		delay:    delay,
		logger:   log,
		sleep:    time.Sleep,
	}
}

// Run processes every job in order and returns one result per job.
func (r *Runner) Run() []JobResult {
	results := make([]JobResult, 0, len(r.scrapers))

	for _, sc := range r.scrapers {
		result := r.runJob(sc)
		results = append(results, result)

		if result.Err != nil {
			r.logger.Error("scrape job failed, continuing", "source", result.Source, "error", result.Err)
		} else {
			r.logger.Info("scraped restaurant", "name", result.Name, "items", result.Items, "reviews", result.Reviews)
		}

		r.sleep(r.delay)
	}

	return results
}

func (r *Runner) runJob(sc scraper.Scraper) JobResult {
	start := time.Now()
	result := JobResult{Source: sc.Source()}

	record, err := sc.Scrape()
	if err != nil {
		result.Err = err
		result.Duration = time.Since(start)

		return result
	}

	result.Name = record.Name
	result.Sections = len(record.Menu)
	result.Reviews = len(record.Reviews)
	result.Items = countItems(record)

	if err := r.store.Save(record.Name, record); err != nil {
		result.Err = err
	}

	result.Duration = time.Since(start)

	return result
}

func countItems(record *models.Restaurant) int {
	total := 0
	for _, section := range record.Menu {
		total += len(section.Items)
	}

	return total
}
