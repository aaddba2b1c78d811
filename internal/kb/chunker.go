// Package kb turns processed restaurant records into bounded text chunks for
// the similarity index.
package kb

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"

	"restokb/internal/logger"
	"restokb/internal/models"
	"restokb/internal/store"
	"restokb/pkg/provenance"
)

// Chunk is one bounded slice of a restaurant's menu and review text, the
// unit ingested by the similarity index. Provenance carries the restaurant
// name as chunk-level metadata.
type Chunk struct {
	ID         string           `json:"id"`
	Text       string           `json:"text"`
	Provenance provenance.Stamp `json:"provenance"`
}

// Chunker batches menu items into chunks of at most batchSize items each.
type Chunker struct {
	store     *store.Store
	batchSize int
	logger    *logger.Logger
}

// NewChunker creates a chunker over the processed-record store.
func NewChunker(processed *store.Store, batchSize int, log *logger.Logger) *Chunker {
	return &Chunker{
		store:     processed,
		batchSize: batchSize,
		logger:    log,
	}
}

// ChunkAll builds chunks for every record in the store. Records that fail
// schema validation are skipped with a warning; the rest proceed.
func (c *Chunker) ChunkAll() ([]Chunk, error) {
	names, err := c.store.List()
	if err != nil {
		return nil, err
	}

	var chunks []Chunk

	for _, name := range names {
		record, err := c.store.Load(name)
		if err != nil {
			c.logger.Warn("skipping record", "record", name, "error", err)

			continue
		}

		if err := record.Validate(); err != nil {
			c.logger.Warn("skipping record", "record", name, "error", err)

			continue
		}

		chunks = append(chunks, c.ChunkRestaurant(record)...)
	}

	return chunks, nil
}

// ChunkRestaurant splits one record into per-section item batches. Every
// chunk repeats the restaurant header and reviews so each is self-contained
// retrieval context.
func (c *Chunker) ChunkRestaurant(record *models.Restaurant) []Chunk {
	var chunks []Chunk

	for _, section := range record.Menu {
		for start := 0; start < len(section.Items); start += c.batchSize {
			end := min(start+c.batchSize, len(section.Items))

			text := c.renderChunk(record, section, section.Items[start:end])
			chunks = append(chunks, Chunk{
				ID:         uuid.NewString(),
				Text:       text,
				Provenance: provenance.NewStamp(record.Name, text),
			})
		}
	}

	return chunks
}

func (c *Chunker) renderChunk(record *models.Restaurant, section models.MenuSection, items []models.MenuItem) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Restaurant: %s\n", record.Name)
	fmt.Fprintf(&b, "Description: %s\n", orNA(record.Description))
	fmt.Fprintf(&b, "Location: %s, %s\n", record.Location.Address, record.Location.City)
	fmt.Fprintf(&b, "Section: %s\n", section.Section)
	fmt.Fprintf(&b, "Features: %s\n", strings.Join(record.Features, ", "))
	b.WriteString("Items:\n")

	for _, item := range items {
		fmt.Fprintf(&b, "- %s (%v %s)\n", item.Name, item.Price, item.Currency)
		fmt.Fprintf(&b, "  Tags: %s\n", strings.Join(item.Tags, ", "))
		fmt.Fprintf(&b, "  Description: %s\n", orNA(item.Description))
	}

	b.WriteString("Reviews:\n")

	for _, review := range record.Reviews {
		fmt.Fprintf(&b, "- %v stars\n", review.Rating)
		fmt.Fprintf(&b, "  Review: %s\n", orNA(review.Text))
	}

	return strings.TrimRight(b.String(), "\n")
}

// WriteJSONL writes chunks one JSON object per line for the external
// indexer to ingest.
func WriteJSONL(path string, chunks []Chunk) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create chunk file: %w", err)
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	enc := json.NewEncoder(w)

	for _, chunk := range chunks {
		if err := enc.Encode(chunk); err != nil {
			return fmt.Errorf("failed to encode chunk: %w", err)
		}
	}

	return w.Flush()
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}

	return s
}
