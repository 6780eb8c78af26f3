// Package store fetches posts from a headless content store over its
// GROQ HTTP query API.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ppiankov/libris/internal/cache"
	"github.com/ppiankov/libris/internal/model"
	"github.com/ppiankov/libris/internal/util"
	"github.com/ppiankov/libris/internal/worker"
)

const (
	maxAttempts = 3
	retryDelay  = 500 * time.Millisecond
)

// sleepFunc is replaced in tests
var sleepFunc = time.Sleep

// StatusError is returned when the store answers with a non-2xx status
type StatusError struct {
	Code    int
	Status  string
	Message string // Store-provided description, if any
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("unexpected status: %d %s: %s", e.Code, e.Status, e.Message)
	}
	return fmt.Sprintf("unexpected status: %d %s", e.Code, e.Status)
}

// Client queries the content store
type Client struct {
	httpClient *http.Client
	endpoint   string
	token      string
	userAgent  string
	maxBytes   int64
	limiter    *worker.Limiter
	cache      cache.Cache
	cacheTTL   time.Duration
}

// NewClient creates a client for the configured project. A nil cache
// disables result caching.
func NewClient(cfg *model.Config, c cache.Cache) (*Client, error) {
	base := strings.TrimRight(cfg.Store.BaseURL, "/")
	if base == "" {
		if cfg.Store.ProjectID == "" {
			return nil, errors.New("store: project_id is required")
		}
		host := "api.sanity.io"
		if cfg.Store.UseCDN {
			host = "apicdn.sanity.io"
		}
		base = fmt.Sprintf("https://%s.%s", cfg.Store.ProjectID, host)
	}

	dataset := cfg.Store.Dataset
	if dataset == "" {
		dataset = "production"
	}
	version := strings.TrimPrefix(cfg.Store.APIVersion, "v")
	if version == "" {
		version = "2024-01-01"
	}

	if c == nil {
		c = cache.Nop{}
	}

	maxBytes := cfg.HTTP.MaxBodyBytes
	if maxBytes <= 0 {
		maxBytes = 8_000_000
	}

	return &Client{
		httpClient: &http.Client{
			Timeout:   cfg.HTTP.Timeout,
			Transport: util.NewTransport(cfg.HTTP.HTTPProxy, cfg.HTTP.HTTPSProxy, cfg.HTTP.NoProxy),
		},
		endpoint:  fmt.Sprintf("%s/v%s/data/query/%s", base, version, url.PathEscape(dataset)),
		token:     cfg.Store.Token,
		userAgent: cfg.HTTP.UserAgent,
		maxBytes:  maxBytes,
		limiter:   worker.NewLimiter(cfg.RateLimiting),
		cache:     c,
		cacheTTL:  cfg.Cache.DiskTTL,
	}, nil
}

// Endpoint returns the query URL without parameters
func (c *Client) Endpoint() string {
	return c.endpoint
}

// LibraryPosts returns every post with its body, tags and cover image
func (c *Client) LibraryPosts(ctx context.Context) ([]model.Post, error) {
	var posts []model.Post
	if _, err := c.Query(ctx, libraryPostsQuery, nil, &posts); err != nil {
		return nil, fmt.Errorf("library posts: %w", err)
	}
	return posts, nil
}

// CategoryPosts returns the posts assigned to a home page category
func (c *Client) CategoryPosts(ctx context.Context) ([]model.Post, error) {
	var posts []model.Post
	if _, err := c.Query(ctx, categoryPostsQuery, nil, &posts); err != nil {
		return nil, fmt.Errorf("category posts: %w", err)
	}
	return posts, nil
}

// PostBySlug returns a single post. It returns nil, nil when no post has
// the slug.
func (c *Client) PostBySlug(ctx context.Context, slug string) (*model.Post, error) {
	var post model.Post
	found, err := c.Query(ctx, postBySlugQuery, map[string]string{"slug": slug}, &post)
	if err != nil {
		return nil, fmt.Errorf("post %q: %w", slug, err)
	}
	if !found {
		return nil, nil
	}
	return &post, nil
}

// Query runs a GROQ query and decodes its result into out. String params
// are bound as $name. found is false when the result is null.
func (c *Client) Query(ctx context.Context, query string, params map[string]string, out any) (found bool, err error) {
	key := cache.CacheKey(query, params)

	raw, hit := c.cache.Get(key)
	if !hit {
		raw, err = c.fetchWithRetry(ctx, c.queryURL(query, params))
		if err != nil {
			return false, err
		}
		_ = c.cache.Set(key, raw, c.cacheTTL)
	}

	if isNull(raw) {
		return false, nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false, fmt.Errorf("decode result: %w", err)
	}
	return true, nil
}

func (c *Client) queryURL(query string, params map[string]string) string {
	values := url.Values{}
	values.Set("query", query)
	for name, value := range params {
		encoded, _ := json.Marshal(value)
		values.Set("$"+name, string(encoded))
	}
	return c.endpoint + "?" + values.Encode()
}

func (c *Client) fetchWithRetry(ctx context.Context, rawURL string) (json.RawMessage, error) {
	for attempt := 1; ; attempt++ {
		result, err := c.fetch(ctx, rawURL)
		if err == nil {
			return result, nil
		}
		if attempt >= maxAttempts || !isRetryable(err) || ctx.Err() != nil {
			return nil, err
		}
		sleepFunc(time.Duration(attempt) * retryDelay)
	}
}

type envelope struct {
	Result json.RawMessage `json:"result"`
}

type errorEnvelope struct {
	Error struct {
		Description string `json:"description"`
	} `json:"error"`
}

func (c *Client) fetch(ctx context.Context, rawURL string) (json.RawMessage, error) {
	if err := c.limiter.Wait(ctx, rawURL); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		statusErr := &StatusError{Code: resp.StatusCode, Status: http.StatusText(resp.StatusCode)}
		var e errorEnvelope
		if json.Unmarshal(body, &e) == nil {
			statusErr.Message = e.Error.Description
		}
		return nil, statusErr
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return env.Result, nil
}

// isRetryable reports whether a fetch error is transient: network
// failures, 429 and 5xx responses
func isRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Code == http.StatusTooManyRequests || statusErr.Code >= 500
	}

	var urlErr *url.Error
	return errors.As(err, &urlErr)
}

func isNull(raw json.RawMessage) bool {
	trimmed := strings.TrimSpace(string(raw))
	return trimmed == "" || trimmed == "null"
}
