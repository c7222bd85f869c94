package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const (
	defaultBaseURL    = "https://api.themoviedb.org"
	defaultCacheTTL   = 24 * time.Hour
	defaultMaxRetries = 3
	defaultRetryDelay = 2 * time.Second
	maxRetryDelay     = 30 * time.Second
)

// ErrNotFound is returned when a search has no results.
var ErrNotFound = errors.New("tv show not found")

// ErrRateLimited is returned when TMDB keeps answering 429 after all retries.
var ErrRateLimited = errors.New("tmdb rate limited")

// Client is a TMDB API client.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	cache      *cache
	maxRetries int
	retryDelay time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(url string) Option {
	return func(c *Client) {
		if url != "" {
			c.baseURL = url
		}
	}
}

// WithCacheTTL sets the cache TTL.
func WithCacheTTL(ttl time.Duration) Option {
	return func(c *Client) {
		c.cache = newCache(ttl)
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithRetry sets how often a 429 is retried and the wait used when the
// response carries no Retry-After header.
func WithRetry(maxRetries int, delay time.Duration) Option {
	return func(c *Client) {
		c.maxRetries = maxRetries
		c.retryDelay = delay
	}
}

// NewClient creates a new TMDB client.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		cache:      newCache(defaultCacheTTL),
		maxRetries: defaultMaxRetries,
		retryDelay: defaultRetryDelay,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SearchTV returns the most relevant TV show for query, which is TMDB's
// first result. Returns ErrNotFound when there are no results.
func (c *Client) SearchTV(ctx context.Context, query string) (*TVShow, error) {
	if show, ok := c.cache.get(query); ok {
		if show == nil {
			return nil, ErrNotFound
		}
		return show, nil
	}

	q := url.Values{}
	q.Set("api_key", c.apiKey)
	q.Set("query", query)
	q.Set("include_adult", "false")
	endpoint := c.baseURL + "/3/search/tv?" + q.Encode()

	resp, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		c.cache.set(query, nil)
		return nil, ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("TMDB API error: %s", resp.Status)
	}

	var sr searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if len(sr.Results) == 0 {
		c.cache.set(query, nil)
		return nil, ErrNotFound
	}

	show := sr.Results[0]
	c.cache.set(query, &show)
	return &show, nil
}

// get issues a GET, waiting out 429 responses. The wait is the Retry-After
// header when present, otherwise retryDelay doubled per attempt.
func (c *Client) get(ctx context.Context, endpoint string) (*http.Response, error) {
	for attempt := 0; ; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}
		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("execute request: %w", err)
		}
		if resp.StatusCode != http.StatusTooManyRequests {
			return resp, nil
		}

		_, _ = io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
		if attempt >= c.maxRetries {
			return nil, ErrRateLimited
		}

		wait := retryAfter(resp.Header.Get("Retry-After"), c.retryDelay<<attempt)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(wait):
		}
	}
}

func retryAfter(header string, fallback time.Duration) time.Duration {
	if secs, err := strconv.Atoi(header); err == nil && secs >= 0 {
		return min(time.Duration(secs)*time.Second, maxRetryDelay)
	}
	return min(fallback, maxRetryDelay)
}
