package confluence

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/stampede-tools/stampede-cli/internal/core/domain"
	"github.com/stampede-tools/stampede-cli/internal/core/ports/driven"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 30 * time.Second

// Ensure Client implements the store client port.
var _ driven.DocumentStoreClient = (*Client)(nil)

// Config holds the connection settings for the remote store.
type Config struct {
	// BaseURL is the store root, e.g. https://example.atlassian.net/wiki.
	BaseURL string

	// Token is the API bearer token.
	Token string

	// RateLimit overrides the default request rate when non-zero.
	RateLimit RateLimitConfig
}

// Client talks to a Confluence-style v2 REST API. All requests pass
// through the rate limiter; 429 responses feed its backoff window and
// surface as RateLimitError rather than being silently retried.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	rateLimiter *RateLimiter
}

// NewClient creates a store client with bearer-token auth.
func NewClient(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, ErrMissingBaseURL
	}

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token})
	httpClient := oauth2.NewClient(context.Background(), ts)
	httpClient.Timeout = DefaultTimeout

	return &Client{
		httpClient:  httpClient,
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		rateLimiter: NewRateLimiterWithConfig(cfg.RateLimit),
	}, nil
}

// FindContainerByKey looks up a space by key via an exact-match filter
// query. Returns domain.ErrNotFound when the store has no match.
func (c *Client) FindContainerByKey(ctx context.Context, key string) (*domain.Container, error) {
	q := url.Values{}
	q.Set("keys", key)
	q.Set("limit", "1")

	var resp spaceListResponse
	if err := c.get(ctx, "/api/v2/spaces", q, &resp); err != nil {
		return nil, err
	}
	if len(resp.Results) == 0 {
		return nil, fmt.Errorf("container %q: %w", key, domain.ErrNotFound)
	}

	container := resp.Results[0].toContainer()
	return &container, nil
}

// ListContainers returns one page of spaces.
func (c *Client) ListContainers(ctx context.Context, cursor string, limit int) (*driven.ContainerPage, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	if cursor != "" {
		q.Set("cursor", cursor)
	}

	var resp spaceListResponse
	if err := c.get(ctx, "/api/v2/spaces", q, &resp); err != nil {
		return nil, err
	}

	page := &driven.ContainerPage{NextCursor: cursorFromNextLink(resp.Links.Next)}
	for i := range resp.Results {
		page.Containers = append(page.Containers, resp.Results[i].toContainer())
	}
	return page, nil
}

// ListDocuments returns one page of pages in a space.
func (c *Client) ListDocuments(ctx context.Context, containerID, cursor string, limit int) (*driven.DocumentPage, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	if cursor != "" {
		q.Set("cursor", cursor)
	}

	var resp pageListResponse
	if err := c.get(ctx, "/api/v2/spaces/"+containerID+"/pages", q, &resp); err != nil {
		return nil, err
	}

	out := &driven.DocumentPage{NextCursor: cursorFromNextLink(resp.Links.Next)}
	for i := range resp.Results {
		out.Documents = append(out.Documents, resp.Results[i].toDocument(c.baseURL))
	}
	return out, nil
}

// ListTopDocuments returns up to limit pages in a space, sorted.
func (c *Client) ListTopDocuments(ctx context.Context, containerID string, limit int, sortBy string) ([]domain.Document, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	if sortBy != "" {
		q.Set("sort", sortBy)
	}

	var resp pageListResponse
	if err := c.get(ctx, "/api/v2/spaces/"+containerID+"/pages", q, &resp); err != nil {
		return nil, err
	}

	docs := make([]domain.Document, 0, len(resp.Results))
	for i := range resp.Results {
		docs = append(docs, resp.Results[i].toDocument(c.baseURL))
	}
	return docs, nil
}

// GetDocument fetches a single page's metadata.
func (c *Client) GetDocument(ctx context.Context, id string) (*domain.Document, error) {
	var resp page
	if err := c.get(ctx, "/api/v2/pages/"+id, nil, &resp); err != nil {
		return nil, err
	}
	doc := resp.toDocument(c.baseURL)
	return &doc, nil
}

// GetDocumentContent fetches a page's full body in storage format.
// The body is treated as an opaque blob.
func (c *Client) GetDocumentContent(ctx context.Context, id string) (*driven.DocumentContent, error) {
	q := url.Values{}
	q.Set("body-format", "storage")

	var resp page
	if err := c.get(ctx, "/api/v2/pages/"+id, q, &resp); err != nil {
		return nil, err
	}

	content := &driven.DocumentContent{
		ID:          resp.ID,
		Title:       resp.Title,
		ContainerID: strconv.FormatInt(resp.SpaceID, 10),
	}
	if resp.Body != nil && resp.Body.Storage != nil {
		content.Body = []byte(resp.Body.Storage.Value)
	}
	return content, nil
}

// CreateDocument issues one page-create write.
func (c *Client) CreateDocument(ctx context.Context, spec driven.CreateDocumentSpec) (*domain.Document, error) {
	reqBody := createPageRequest{
		SpaceID:  spec.ContainerID,
		Status:   "current",
		Title:    spec.Title,
		ParentID: spec.ParentID,
		Body: createBodyValue{
			Representation: "storage",
			Value:          string(spec.Body),
		},
	}

	var resp page
	if err := c.do(ctx, http.MethodPost, "/api/v2/pages", nil, reqBody, &resp); err != nil {
		return nil, err
	}

	doc := resp.toDocument(c.baseURL)
	return &doc, nil
}

// get issues a rate-limited GET and decodes the JSON response.
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

// do issues one rate-limited request. Non-2xx responses map to typed
// errors: 404 wraps domain.ErrNotFound, 429 records backoff and returns
// RateLimitError, anything else becomes an APIError.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		retryAfter, _ := strconv.Atoi(resp.Header.Get("Retry-After"))
		c.rateLimiter.RecordRateLimitError(retryAfter)
		return &RateLimitError{RetryAt: c.rateLimiter.RetryAt()}
	}

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%s %s: %w", method, path, domain.ErrNotFound)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    readErrorMessage(resp.Body),
			URL:        reqURL,
		}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// readErrorMessage pulls a human-readable message from an error body.
func readErrorMessage(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil || len(data) == 0 {
		return "no response body"
	}

	var parsed apiErrorResponse
	if err := json.Unmarshal(data, &parsed); err == nil {
		if parsed.Message != "" {
			return parsed.Message
		}
		if len(parsed.Errors) > 0 && parsed.Errors[0].Title != "" {
			return parsed.Errors[0].Title
		}
	}
	return strings.TrimSpace(string(data))
}
