// Package hf reads bulk dataset rows through the Hugging Face
// datasets-server HTTP API, so the corpus phase streams rows without
// downloading the whole dataset up front. Rows are fetched in pages
// and the current page is cached, which makes the collector's
// sequential scan cost one request per hundred rows.
package hf

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/custodia-labs/histora/internal/core/ports/driven"
)

const (
	// DefaultBaseURL is the public datasets-server endpoint.
	DefaultBaseURL = "https://datasets-server.huggingface.co"

	// pageLength is the rows-per-request page size the API allows.
	pageLength = 100

	requestTimeout = 60 * time.Second
)

// Ensure Reader implements the interface.
var _ driven.DatasetReader = (*Reader)(nil)

// Reader reads one dataset split row by row.
type Reader struct {
	httpClient *http.Client
	baseURL    string
	dataset    string
	config     string
	split      string

	pageOffset int
	page       []map[string]string
}

// NewReader creates a reader for a dataset's default train split.
func NewReader(dataset string) *Reader {
	return NewReaderWithBaseURL(dataset, DefaultBaseURL)
}

// NewReaderWithBaseURL creates a reader against a custom endpoint.
func NewReaderWithBaseURL(dataset, baseURL string) *Reader {
	return &Reader{
		httpClient: &http.Client{Timeout: requestTimeout},
		baseURL:    baseURL,
		dataset:    dataset,
		config:     "default",
		split:      "train",
		pageOffset: -1,
	}
}

type sizeResponse struct {
	Size struct {
		Dataset struct {
			NumRows int `json:"num_rows"`
		} `json:"dataset"`
	} `json:"size"`
}

type rowsResponse struct {
	Rows []struct {
		RowIdx int            `json:"row_idx"`
		Row    map[string]any `json:"row"`
	} `json:"rows"`
}

// Open returns the dataset's total row count.
func (r *Reader) Open(ctx context.Context) (int, error) {
	var resp sizeResponse
	query := url.Values{"dataset": {r.dataset}}
	if err := r.getJSON(ctx, "/size", query, &resp); err != nil {
		return 0, fmt.Errorf("dataset size: %w", err)
	}
	return resp.Size.Dataset.NumRows, nil
}

// Row reads one row by its global index, fetching its page if it is
// not the cached one.
func (r *Reader) Row(ctx context.Context, index int) (map[string]string, error) {
	offset := (index / pageLength) * pageLength
	if offset != r.pageOffset {
		if err := r.fetchPage(ctx, offset); err != nil {
			return nil, err
		}
	}

	pos := index - r.pageOffset
	if pos < 0 || pos >= len(r.page) {
		return nil, fmt.Errorf("row %d out of range (page %d holds %d rows)", index, r.pageOffset, len(r.page))
	}
	return r.page[pos], nil
}

// fetchPage replaces the cached page with the one starting at offset.
func (r *Reader) fetchPage(ctx context.Context, offset int) error {
	var resp rowsResponse
	query := url.Values{
		"dataset": {r.dataset},
		"config":  {r.config},
		"split":   {r.split},
		"offset":  {fmt.Sprintf("%d", offset)},
		"length":  {fmt.Sprintf("%d", pageLength)},
	}
	if err := r.getJSON(ctx, "/rows", query, &resp); err != nil {
		return fmt.Errorf("fetch rows at %d: %w", offset, err)
	}

	page := make([]map[string]string, len(resp.Rows))
	for i, row := range resp.Rows {
		page[i] = stringise(row.Row)
	}
	r.page = page
	r.pageOffset = offset
	return nil
}

// getJSON performs a GET and decodes the JSON response.
func (r *Reader) getJSON(ctx context.Context, path string, query url.Values, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.baseURL+path+"?"+query.Encode(), nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// stringise flattens a raw row to string fields. Non-string scalars
// are formatted; nulls become empty strings.
func stringise(raw map[string]any) map[string]string {
	row := make(map[string]string, len(raw))
	for key, value := range raw {
		switch v := value.(type) {
		case string:
			row[key] = v
		case nil:
			row[key] = ""
		default:
			row[key] = fmt.Sprintf("%v", v)
		}
	}
	return row
}
