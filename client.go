// Package million is a typed HTTP client for the listing API.
package million

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Mthew/million-real-state/internal/domain"
)

const defaultTimeout = 10 * time.Second

// ErrNotFound indicates the requested property does not exist.
var ErrNotFound = errors.New("million: property not found")

// ErrBadRequest indicates the server rejected the request parameters.
var ErrBadRequest = errors.New("million: bad request")

// PropertySummary is one row of the listing endpoint.
type PropertySummary struct {
	ID           string         `json:"id"`
	OwnerID      string         `json:"ownerId"`
	Name         string         `json:"name"`
	Address      string         `json:"address"`
	Price        domain.Decimal `json:"price"`
	CodeInternal string         `json:"codeInternal"`
	Year         int            `json:"year"`
	ImageURL     string         `json:"imageUrl"`
}

// Owner is the owner block of the detail endpoint.
type Owner struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Address  string    `json:"address"`
	PhotoURL string    `json:"photoUrl"`
	Birthday time.Time `json:"birthday"`
}

// PropertyImage is one image entry of the detail endpoint.
type PropertyImage struct {
	ID      string `json:"id"`
	FileURL string `json:"fileUrl"`
	Enabled bool   `json:"isEnabled"`
}

// PropertyTrace is one sale record of the detail endpoint.
type PropertyTrace struct {
	ID       string         `json:"id"`
	DateSale time.Time      `json:"dateSale"`
	Name     string         `json:"name"`
	Value    domain.Decimal `json:"value"`
	Tax      domain.Decimal `json:"tax"`
}

// PropertyDetail is the full joined view of a single property.
type PropertyDetail struct {
	PropertySummary
	Owner  Owner           `json:"owner"`
	Images []PropertyImage `json:"images"`
	Traces []PropertyTrace `json:"traces"`
}

// Filter is the optional listing criteria. Zero-value fields are omitted.
// Price bounds are decimal string tokens, e.g. "1500000.00".
type Filter struct {
	Name     string
	Address  string
	MinPrice string
	MaxPrice string
}

// APIError carries the error envelope the server returns.
type APIError struct {
	StatusCode  int
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("million: %s (%d): %s", e.Title, e.StatusCode, e.Description)
}

// Unwrap maps well-known status codes to sentinel errors.
func (e *APIError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusBadRequest:
		return ErrBadRequest
	default:
		return nil
	}
}

// Client calls the listing API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures the Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// New creates a Client for the API at baseURL, e.g. "http://localhost:8080".
func New(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, errors.New("million: base URL required")
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

// ListProperties fetches property summaries matching the filter.
func (c *Client) ListProperties(ctx context.Context, filter Filter) ([]PropertySummary, error) {
	q := url.Values{}
	if filter.Name != "" {
		q.Set("name", filter.Name)
	}
	if filter.Address != "" {
		q.Set("address", filter.Address)
	}
	if filter.MinPrice != "" {
		q.Set("minPrice", filter.MinPrice)
	}
	if filter.MaxPrice != "" {
		q.Set("maxPrice", filter.MaxPrice)
	}

	endpoint := c.baseURL + "/api/properties"
	if len(q) > 0 {
		endpoint += "?" + q.Encode()
	}

	var out []PropertySummary
	if err := c.get(ctx, endpoint, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetProperty fetches the joined detail view for one property id.
// Returns an error matching ErrNotFound when the id does not exist.
func (c *Client) GetProperty(ctx context.Context, id string) (*PropertyDetail, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: empty id", ErrBadRequest)
	}

	var out PropertyDetail
	if err := c.get(ctx, c.baseURL+"/api/properties/"+url.PathEscape(id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) get(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return fmt.Errorf("million: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("million: do request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		if err := json.NewDecoder(resp.Body).Decode(apiErr); err != nil {
			apiErr.Title = http.StatusText(resp.StatusCode)
		}
		return apiErr
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("million: decode response: %w", err)
	}
	return nil
}
