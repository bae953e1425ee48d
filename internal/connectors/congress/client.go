package congress

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/histora/internal/core/domain"
	"github.com/custodia-labs/histora/internal/core/ports/driven"
)

const (
	// DefaultBaseURL is the production API root.
	DefaultBaseURL = "https://api.congress.gov/v3"

	// DefaultTimeout is the API request timeout. Downloads of bill
	// bodies get DownloadTimeout instead since scanned PDFs can be
	// large.
	DefaultTimeout = 30 * time.Second

	// DownloadTimeout is the document download timeout.
	DownloadTimeout = 60 * time.Second

	// PageLimit is the maximum page size the API accepts.
	PageLimit = 250

	// RequestsPerSecond is the proactive throttle rate. The upstream
	// budget is 5000/hour; 2/s with bursts of one stays well under it.
	RequestsPerSecond = 2

	// userAgent mimics a browser; the document hosts reject obvious
	// bot agents with HTML error pages.
	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
)

// Client is a rate-limited Congress.gov v3 API client.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	limiter    *rate.Limiter
}

// NewClient creates a client against the production API.
func NewClient(apiKey string) *Client {
	return NewClientWithBaseURL(apiKey, DefaultBaseURL)
}

// NewClientWithBaseURL creates a client against a custom API root.
func NewClientWithBaseURL(apiKey, baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: DownloadTimeout},
		baseURL:    baseURL,
		apiKey:     apiKey,
		limiter:    rate.NewLimiter(rate.Limit(RequestsPerSecond), 1),
	}
}

// ListBills returns the bill summaries for one congress and bill
// type, following pagination until the listing is exhausted.
func (c *Client) ListBills(ctx context.Context, congress int, billType string) ([]driven.BillSummary, error) {
	var all []driven.BillSummary

	for offset := 0; ; offset += PageLimit {
		var page listResponse
		path := fmt.Sprintf("/bill/%d/%s", congress, billType)
		query := url.Values{
			"limit":  {fmt.Sprintf("%d", PageLimit)},
			"offset": {fmt.Sprintf("%d", offset)},
		}
		if err := c.getJSON(ctx, path, query, &page); err != nil {
			return nil, fmt.Errorf("list bills: %w", err)
		}

		for _, b := range page.Bills {
			all = append(all, driven.BillSummary{
				Number:           b.Number,
				Title:            b.Title,
				IntroducedDate:   b.IntroducedDate,
				LatestAction:     b.LatestAction.Text,
				LatestActionDate: b.LatestAction.ActionDate,
			})
		}

		if page.Pagination.Next == "" || len(page.Bills) == 0 {
			break
		}
	}

	return all, nil
}

// TextVersions returns the published text renditions of one bill,
// newest first. A 404 or 500 from the upstream maps to
// domain.ErrNotFound; many historical bills have no digitized text
// and the API reports that inconsistently across both statuses.
func (c *Client) TextVersions(ctx context.Context, congress int, billType, number string) ([]TextVersion, error) {
	var resp textResponse
	path := fmt.Sprintf("/bill/%d/%s/%s/text", congress, billType, number)
	if err := c.getJSON(ctx, path, nil, &resp); err != nil {
		return nil, fmt.Errorf("text versions: %w", err)
	}
	return resp.TextVersions, nil
}

// Download fetches a document body from a format URL.
func (c *Client) Download(ctx context.Context, rawURL string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return body, nil
}

// getJSON performs a rate-limited authenticated GET and decodes the
// JSON response.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, v any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, DefaultTimeout)
	defer cancel()

	if query == nil {
		query = url.Values{}
	}
	query.Set("api_key", c.apiKey)
	query.Set("format", "json")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+query.Encode(), nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound,
		resp.StatusCode == http.StatusInternalServerError:
		return domain.ErrNotFound
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
