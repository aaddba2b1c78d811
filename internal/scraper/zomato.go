package scraper

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"restokb/internal/logger"
	"restokb/internal/models"
	"restokb/pkg/utils"
)

// Page variants exposed by the getPage endpoint.
const (
	variantMain    = ""
	variantOrder   = "/order"
	variantReviews = "/reviews"
)

// PlaceholderName is the sentinel used when the source page carries no
// restaurant name. Intentionally a value, not a failure.
const PlaceholderName = "No Name Found"

// ZomatoScraper scrapes Zomato restaurant pages, based on the page-data
// structure observed around April 2025.
type ZomatoScraper struct {
	pageURL string
	client  *PageClient
	logger  *logger.Logger
	text    *utils.StringHelper
}

// NewZomatoScraper creates a scraper for one restaurant page URL.
func NewZomatoScraper(pageURL string, client *PageClient, log *logger.Logger) *ZomatoScraper {
	return &ZomatoScraper{
		pageURL: strings.TrimRight(pageURL, "/"),
		client:  client,
		logger:  log.With("source", pageURL),
		text:    utils.NewStringHelper(),
	}
}

// Source returns the restaurant page URL.
func (z *ZomatoScraper) Source() string {
	return z.pageURL
}

// Scrape fetches the three page variants and assembles a full record.
func (z *ZomatoScraper) Scrape() (*models.Restaurant, error) {
	order, err := z.fetchVariant(variantOrder)
	if err != nil {
		return nil, err
	}

	details, err := z.fetchVariant(variantMain)
	if err != nil {
		return nil, err
	}

	reviews, err := z.fetchVariant(variantReviews)
	if err != nil {
		return nil, err
	}

	return &models.Restaurant{
		Name:           z.extractName(order),
		Description:    details.PageData.Sections.BasicInfo.CuisineString,
		Location:       z.extractLocation(order),
		Contact:        z.extractContact(order),
		OperatingHours: z.extractOperatingHours(order),
		Features:       z.extractFeatures(details),
		Menu:           z.extractMenu(order),
		Reviews:        z.extractReviews(reviews),
	}, nil
}

func (z *ZomatoScraper) fetchVariant(variant string) (*zomatoPage, error) {
	body, err := z.client.FetchPage(z.pageURL + variant)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch restaurant page: %w", err)
	}

	var page zomatoPage
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, fmt.Errorf("failed to parse restaurant page: %w", err)
	}

	return &page, nil
}

func (z *ZomatoScraper) extractName(page *zomatoPage) string {
	name := page.PageData.Sections.BasicInfo.Name
	if name == "" {
		return PlaceholderName
	}

	return name
}

// extractMenu maps menu -> category -> item triples onto menu sections. Items
// that individually fail to decode are skipped with a warning; they never
// fail the extraction.
func (z *ZomatoScraper) extractMenu(page *zomatoPage) []models.MenuSection {
	sections := []models.MenuSection{}

	for _, entry := range page.PageData.Order.MenuList.Menus {
		menuName := entry.Menu.Name
		if menuName == "" {
			menuName = "Unnamed Section"
		}

		for _, categoryEntry := range entry.Menu.Categories {
			category := categoryEntry.Category

			categoryName := category.Name
			if categoryName == "" {
				categoryName = "Unnamed Category"
			}

			items := []models.MenuItem{}

			for _, rawItem := range category.Items {
				item, err := decodeMenuItem(rawItem)
				if err != nil {
					z.logger.Warn("skipping malformed menu item", "section", menuName, "error", err)

					continue
				}

				items = append(items, item)
			}

			sections = append(sections, models.MenuSection{
				Section: z.text.NormalizeWhitespace(menuName + " " + categoryName),
				Items:   items,
			})
		}
	}

	return sections
}

// decodeMenuItem prefers the display price over the list price when the
// display price is present and nonzero, else falls back to the list price,
// else 0. Prices on this source are always in the base currency.
func decodeMenuItem(raw json.RawMessage) (models.MenuItem, error) {
	var wrapper struct {
		Item zomatoItem `json:"item"`
	}

	if err := json.Unmarshal(raw, &wrapper); err != nil {
		return models.MenuItem{}, err
	}

	item := wrapper.Item

	name := item.Name
	if name == "" {
		name = "Unnamed Item"
	}

	price := float64(item.DisplayPrice)
	if price == 0 {
		price = float64(item.Price)
	}

	tags := item.TagSlugs
	if tags == nil {
		tags = []string{}
	}

	return models.MenuItem{
		Name:        name,
		Description: item.Desc,
		Price:       price,
		Currency:    models.BaseCurrency,
		Tags:        tags,
	}, nil
}

func (z *ZomatoScraper) extractLocation(page *zomatoPage) models.Location {
	location := models.Location{
		Address: string(page.PageData.Sections.ResContact.Address),
		City:    page.Location.CityName,
	}

	if page.Location.Latitude.ok {
		location.Latitude = &page.Location.Latitude.value
	}

	if page.Location.Longitude.ok {
		location.Longitude = &page.Location.Longitude.value
	}

	return location
}

// extractContact populates phone only; the source exposes no email or
// website. An absent phone still yields a contact with all fields nil.
func (z *ZomatoScraper) extractContact(page *zomatoPage) *models.Contact {
	contact := &models.Contact{}

	if phone := page.PageData.Sections.ResContact.PhoneDetails.PhoneStr; phone != "" {
		contact.Phone = &phone
	}

	return contact
}

func (z *ZomatoScraper) extractOperatingHours(page *zomatoPage) map[string]string {
	hours := map[string]string{}

	for _, entry := range page.PageData.Sections.BasicInfo.Timing.CustomisedTimings.OpeningHours {
		if entry.Days == "" || entry.Timing == "" {
			continue
		}

		hours[entry.Days] = entry.Timing
	}

	return hours
}

// extractFeatures flattens several independent page sections into one list of
// human-readable strings. Absent sections contribute nothing.
func (z *ZomatoScraper) extractFeatures(page *zomatoPage) []string {
	features := []string{}
	details := page.PageData.Sections.ResDetails

	for _, cost := range details.CFTDetails.Cfts {
		if cost.Title != "" {
			features = append(features, z.text.NormalizeWhitespace(
				fmt.Sprintf("Cost for Two: %s %s", cost.Title, cost.Subtitle)))
		}
	}

	for _, highlight := range details.Highlights.Highlights {
		if highlight.Text != "" {
			features = append(features, "Highlight: "+highlight.Text)
		}
	}

	for _, cuisine := range details.Cuisines.Cuisines {
		if cuisine.Name != "" {
			features = append(features, "Cuisine: "+cuisine.Name)
		}
	}

	if dishes := details.TopDishes; dishes.Title != "" || dishes.Description != "" {
		features = append(features, z.text.NormalizeWhitespace(dishes.Title+" "+dishes.Description))
	}

	if liked := page.PageData.Sections.ReviewHighlights.PeopleLiked; liked.Title != "" {
		features = append(features, z.text.NormalizeWhitespace(liked.Title+" "+liked.Description))
	}

	return features
}

// extractReviews walks the review entities in stable key order. Malformed
// individual reviews are skipped, not fatal.
func (z *ZomatoScraper) extractReviews(page *zomatoPage) []models.Review {
	reviews := []models.Review{}

	keys := make([]string, 0, len(page.Entities.Reviews))
	for key := range page.Entities.Reviews {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	for _, key := range keys {
		var review zomatoReview
		if err := json.Unmarshal(page.Entities.Reviews[key], &review); err != nil {
			z.logger.Warn("skipping malformed review", "review", key, "error", err)

			continue
		}

		reviews = append(reviews, models.Review{
			Rating: float64(review.RatingV2),
			Text:   review.ReviewText,
		})
	}

	return reviews
}
