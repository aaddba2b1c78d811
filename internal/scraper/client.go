package scraper

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"restokb/internal/logger"
	"restokb/pkg/utils"
)

// ErrUnexpectedStatusCode indicates an HTTP response with unexpected status.
var ErrUnexpectedStatusCode = errors.New("unexpected status code")

// PageClient fetches page-data documents through the site's getPage endpoint.
// Responses are cached per page URL for the lifetime of the client, so the
// sub-extractions of one scrape share a single fetch per page variant.
type PageClient struct {
	endpoint string
	client   *http.Client
	logger   *logger.Logger

	mu    sync.Mutex
	cache map[string][]byte
}

// NewPageClient creates a page client. The endpoint is the getPage prefix the
// target page URL is appended to.
func NewPageClient(endpoint string, timeout time.Duration, log *logger.Logger) *PageClient {
	return &PageClient{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
		logger:   log,
		cache:    make(map[string][]byte),
	}
}

// FetchPage returns the raw page-data document for the given page URL.
func (c *PageClient) FetchPage(pageURL string) ([]byte, error) {
	c.mu.Lock()
	cached, ok := c.cache[pageURL]
	c.mu.Unlock()

	if ok {
		return cached, nil
	}

	requestURL := c.endpoint + url.QueryEscape(pageURL)

	req, err := http.NewRequest(http.MethodGet, requestURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header = utils.NewHTTPHelper().BuildHeaders(nil)

	c.logger.Debug("fetching page", "url", requestURL)

	resp, err := c.client.Do(req)
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

	c.mu.Lock()
	c.cache[pageURL] = body
	c.mu.Unlock()

	return body, nil
}
