// Package postgrest implements catalog.Store over a PostgREST HTTP API.
package postgrest

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

	"github.com/vmunix/epsync/internal/catalog"
)

const (
	defaultTimeout = 30 * time.Second
	// DefaultUpdateBatchSize bounds the ids in one PATCH to keep URLs short.
	DefaultUpdateBatchSize = 200
	maxErrorBody           = 300
)

// StatusError is returned for any non-2xx response.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("postgrest %s %s: %d %s", e.Method, e.Path, e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("postgrest %s %s: %d %s: %s", e.Method, e.Path, e.StatusCode, http.StatusText(e.StatusCode), e.Body)
}

// Client talks to PostgREST.
type Client struct {
	baseURL         string
	schema          string
	httpClient      *http.Client
	updateBatchSize int
}

var _ catalog.Store = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout sets the request timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithSchema sets the Accept-Profile/Content-Profile schema.
func WithSchema(schema string) Option {
	return func(c *Client) {
		c.schema = schema
	}
}

// WithUpdateBatchSize bounds the ids per MarkHasDownloads request.
func WithUpdateBatchSize(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.updateBatchSize = n
		}
	}
}

// NewClient creates a client for the PostgREST server at baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:         strings.TrimRight(baseURL, "/"),
		schema:          "public",
		httpClient:      &http.Client{Timeout: defaultTimeout},
		updateBatchSize: DefaultUpdateBatchSize,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListSeries returns one page of series.
func (c *Client) ListSeries(ctx context.Context, limit, offset int) ([]catalog.Series, error) {
	var out []catalog.Series
	err := c.list(ctx, "series", "id,tmdb_id,title", limit, offset, &out)
	return out, err
}

// ListSeasons returns one page of seasons.
func (c *Client) ListSeasons(ctx context.Context, limit, offset int) ([]catalog.Season, error) {
	var out []catalog.Season
	err := c.list(ctx, "seasons", "id,series_id,season_number", limit, offset, &out)
	return out, err
}

// ListEpisodes returns one page of episodes.
func (c *Client) ListEpisodes(ctx context.Context, limit, offset int) ([]catalog.Episode, error) {
	var out []catalog.Episode
	err := c.list(ctx, "episodes", "id,season_id,series_id,episode_number", limit, offset, &out)
	return out, err
}

func (c *Client) list(ctx context.Context, table, columns string, limit, offset int, out any) error {
	q := url.Values{}
	q.Set("select", columns)
	q.Set("order", "id")
	q.Set("limit", strconv.Itoa(limit))
	q.Set("offset", strconv.Itoa(offset))
	return c.do(ctx, http.MethodGet, table, q, nil, out)
}

// InsertLinks posts one batch and returns how many rows PostgREST echoed back.
func (c *Client) InsertLinks(ctx context.Context, links []catalog.Link) (int, error) {
	if len(links) == 0 {
		return 0, nil
	}
	var created []json.RawMessage
	if err := c.do(ctx, http.MethodPost, "download_links", nil, links, &created); err != nil {
		return 0, err
	}
	return len(created), nil
}

// DeleteLinks removes every link in scope.
func (c *Client) DeleteLinks(ctx context.Context, scope catalog.LinkScope) (int, error) {
	var deleted []json.RawMessage
	if err := c.do(ctx, http.MethodDelete, "download_links", scopeQuery(scope), nil, &deleted); err != nil {
		return 0, err
	}
	return len(deleted), nil
}

// CountLinks returns how many links are in scope.
func (c *Client) CountLinks(ctx context.Context, scope catalog.LinkScope) (int, error) {
	q := scopeQuery(scope)
	q.Set("select", "id")
	var rows []json.RawMessage
	if err := c.do(ctx, http.MethodGet, "download_links", q, nil, &rows); err != nil {
		return 0, err
	}
	return len(rows), nil
}

// MarkHasDownloads patches episodes in chunks. It stops at the first failed
// chunk and returns the ids updated so far with the error.
func (c *Client) MarkHasDownloads(ctx context.Context, episodeIDs []int64) (int, error) {
	updated := 0
	for start := 0; start < len(episodeIDs); start += c.updateBatchSize {
		end := min(start+c.updateBatchSize, len(episodeIDs))
		chunk := episodeIDs[start:end]

		ids := make([]string, len(chunk))
		for i, id := range chunk {
			ids[i] = strconv.FormatInt(id, 10)
		}
		q := url.Values{}
		q.Set("id", "in.("+strings.Join(ids, ",")+")")

		body := map[string]bool{"has_downloads": true}
		if err := c.do(ctx, http.MethodPatch, "episodes", q, body, nil); err != nil {
			return updated, fmt.Errorf("mark episodes %d-%d: %w", start, end-1, err)
		}
		updated += len(chunk)
	}
	return updated, nil
}

func scopeQuery(scope catalog.LinkScope) url.Values {
	q := url.Values{}
	q.Set("content_type", "eq."+scope.ContentType)
	q.Set("source", "eq."+scope.Source)
	return q
}

func (c *Client) do(ctx context.Context, method, table string, query url.Values, body, out any) error {
	u := c.baseURL + "/" + table
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s body: %w", table, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Profile", c.schema)
	req.Header.Set("Content-Profile", c.schema)
	req.Header.Set("Prefer", "return=representation")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{
			Method:     method,
			Path:       "/" + table,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(msg)),
		}
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s response: %w", table, err)
	}
	return nil
}
