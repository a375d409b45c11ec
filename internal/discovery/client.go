package discovery

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"github.com/gorilla/schema"
)

// DirectoryURL is the public discovery directory endpoint.
const DirectoryURL = "https://www.googleapis.com/discovery/v1/apis"

// ErrorCode categorizes loader errors for clearer handling and messaging.
type ErrorCode string

const (
	NetworkError    ErrorCode = "NetworkError"
	ParseError      ErrorCode = "ParseError"
	ValidationError ErrorCode = "ValidationError"
)

// LoadError is a structured error carrying the failing document's URL so a
// batch run can report which API failed.
type LoadError struct {
	Code ErrorCode
	URL  string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Code, e.URL, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// ListParams filters the directory listing. Encoded into the query string
// with gorilla/schema.
type ListParams struct {
	Name      string `schema:"name,omitempty"`
	Preferred bool   `schema:"preferred,omitempty"`
	Fields    string `schema:"fields,omitempty"`
}

// Client fetches discovery documents. All fetching is strictly sequential;
// the discovery service degrades under concurrent load, so callers process
// one API at a time.
type Client struct {
	httpClient *http.Client
	baseURL    string
	cache      *Cache
	validate   *validator.Validate
	encoder    *schema.Encoder
	log        *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithBaseURL overrides the directory endpoint (tests).
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithCache enables a read-through on-disk cache for fetched documents.
func WithCache(cache *Cache) Option {
	return func(c *Client) { c.cache = cache }
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) { c.log = log }
}

// NewClient creates a discovery client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 60 * time.Second},
		baseURL:    DirectoryURL,
		validate:   validator.New(),
		encoder:    schema.NewEncoder(),
		log:        slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// List fetches the API directory.
func (c *Client) List(ctx context.Context, params ListParams) (*DirectoryList, error) {
	values := url.Values{}
	if err := c.encoder.Encode(params, values); err != nil {
		return nil, &LoadError{Code: ParseError, URL: c.baseURL, Err: err}
	}
	listURL := c.baseURL
	if encoded := values.Encode(); encoded != "" {
		listURL += "?" + encoded
	}

	body, err := c.fetch(ctx, listURL)
	if err != nil {
		return nil, err
	}

	var list DirectoryList
	if err := json.Unmarshal(body, &list); err != nil {
		return nil, &LoadError{Code: ParseError, URL: listURL, Err: err}
	}
	c.log.Debug("listed discovery directory", slog.String("url", listURL), slog.Int("items", len(list.Items)))
	return &list, nil
}

// Get fetches and validates one API description document.
func (c *Client) Get(ctx context.Context, docURL string) (*RestDescription, error) {
	body, err := c.fetch(ctx, docURL)
	if err != nil {
		return nil, err
	}

	var doc RestDescription
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, &LoadError{Code: ParseError, URL: docURL, Err: err}
	}
	doc.DiscoveryRestURL = docURL

	if err := c.validate.Struct(&doc); err != nil {
		return nil, &LoadError{Code: ValidationError, URL: docURL, Err: err}
	}
	return &doc, nil
}

// fetch retrieves a URL, going through the cache when one is configured.
func (c *Client) fetch(ctx context.Context, rawURL string) ([]byte, error) {
	if c.cache != nil {
		if body, ok := c.cache.Get(rawURL); ok {
			c.log.Debug("cache hit", slog.String("url", rawURL))
			return body, nil
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, &LoadError{Code: NetworkError, URL: rawURL, Err: err}
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &LoadError{Code: NetworkError, URL: rawURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &LoadError{Code: NetworkError, URL: rawURL, Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &LoadError{Code: NetworkError, URL: rawURL, Err: err}
	}

	if c.cache != nil {
		if err := c.cache.Put(rawURL, body); err != nil {
			// Cache write failure is not fatal; the document is in hand.
			c.log.Warn("cache write failed", slog.String("url", rawURL), slog.Any("error", err))
		}
	}
	return body, nil
}
