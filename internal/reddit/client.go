package reddit

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

const (
	// DefaultBaseURL is the public JSON API endpoint.
	DefaultBaseURL = "https://www.reddit.com"
	// DefaultUserAgent identifies the tool; the upstream rejects blank or
	// browser-impersonating agents.
	DefaultUserAgent = "threadloom/1.0 (comment tree reconstruction)"
	// DefaultTimeout bounds every outbound request, continuation batches
	// included.
	DefaultTimeout = 30 * time.Second
	// MaxRetries for rate limit errors
	MaxRetries = 3
	// InitialBackoff for rate limit retries
	InitialBackoff = 5 * time.Second
)

// Error types for specific API errors
type (
	// AuthenticationError indicates a rejected or missing credential
	AuthenticationError struct{ Message string }
	// RateLimitError indicates rate limit exceeded
	RateLimitError struct{ Message string }
	// NotFoundError indicates a thread was not found
	NotFoundError struct{ Message string }
	// ValidationError indicates invalid input
	ValidationError struct{ Message string }
)

func (e AuthenticationError) Error() string { return e.Message }
func (e RateLimitError) Error() string      { return e.Message }
func (e NotFoundError) Error() string       { return e.Message }
func (e ValidationError) Error() string     { return e.Message }

// Client talks to the upstream JSON API.
type Client struct {
	baseURL    string
	userAgent  string
	token      string
	httpClient *http.Client
	debug      bool
}

// ClientOption is a function that configures a Client
type ClientOption func(*Client)

// WithBaseURL sets a custom base URL for the client
func WithBaseURL(url string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(url, "/")
	}
}

// WithTimeout sets a custom timeout for the HTTP client
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithUserAgent sets a custom User-Agent header
func WithUserAgent(ua string) ClientOption {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithToken sets a bearer token for authenticated requests
func WithToken(token string) ClientOption {
	return func(c *Client) {
		c.token = token
	}
}

// WithDebug enables debug logging
func WithDebug(debug bool) ClientOption {
	return func(c *Client) {
		c.debug = debug
	}
}

// NewClient creates a new API client
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		baseURL:   DefaultBaseURL,
		userAgent: DefaultUserAgent,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// get makes a single GET request and returns the response body.
func (c *Client) get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	if c.debug {
		fmt.Fprintf(os.Stderr, "[debug] GET %s\n", u)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		switch resp.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return nil, AuthenticationError{Message: "request rejected; check token and user agent"}
		case http.StatusNotFound:
			return nil, NotFoundError{Message: "thread not found"}
		case http.StatusTooManyRequests:
			return nil, RateLimitError{Message: fmt.Sprintf("rate limit exceeded: %s", string(respBody))}
		case http.StatusBadRequest:
			return nil, ValidationError{Message: fmt.Sprintf("invalid request: %s", string(respBody))}
		default:
			return nil, fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(respBody))
		}
	}

	return respBody, nil
}

// getWithRetry retries rate-limited requests with exponential backoff.
func (c *Client) getWithRetry(ctx context.Context, path string, query url.Values) ([]byte, error) {
	backoff := InitialBackoff

	for attempt := 0; attempt <= MaxRetries; attempt++ {
		resp, err := c.get(ctx, path, query)
		if err == nil {
			return resp, nil
		}

		// Only retry on rate limit errors
		if _, ok := err.(RateLimitError); !ok {
			return nil, err
		}

		if attempt < MaxRetries {
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
			backoff *= 2
		}
	}

	return nil, RateLimitError{Message: "rate limit exceeded after retries"}
}

// GetThread fetches a thread's post and top-level comment listing. The
// upstream returns a two-element array: the post listing and the comment
// listing.
func (c *Client) GetThread(ctx context.Context, threadID string) (*Post, []Thing, error) {
	query := url.Values{"raw_json": {"1"}}
	body, err := c.getWithRetry(ctx, fmt.Sprintf("/comments/%s.json", threadID), query)
	if err != nil {
		return nil, nil, err
	}

	var pages []Listing
	if err := json.Unmarshal(body, &pages); err != nil {
		return nil, nil, fmt.Errorf("failed to parse thread response: %w", err)
	}
	if len(pages) < 2 {
		return nil, nil, fmt.Errorf("unexpected thread response shape (%d listings)", len(pages))
	}

	var post *Post
	for _, t := range pages[0].Data.Children {
		if t.Kind != KindLink {
			continue
		}
		if p, ok := decodePost(t.Data); ok {
			post = p
			break
		}
	}
	if post == nil {
		return nil, nil, NotFoundError{Message: fmt.Sprintf("no post in thread %s", threadID)}
	}

	return post, pages[1].Data.Children, nil
}

// moreChildrenResponse is the continuation endpoint's envelope.
type moreChildrenResponse struct {
	JSON struct {
		Data struct {
			Things []Thing `json:"things"`
		} `json:"data"`
	} `json:"json"`
}

// GetMoreChildren fetches one continuation batch of flat comment entries.
// No retry here beyond the rate-limit backoff: the resolver's per-batch
// skip policy handles everything else.
func (c *Client) GetMoreChildren(ctx context.Context, linkID string, ids []string) ([]Thing, error) {
	query := url.Values{
		"api_type": {"json"},
		"raw_json": {"1"},
		"link_id":  {LinkRef(NormalizeThreadID(linkID)).String()},
		"children": {strings.Join(ids, ",")},
	}
	body, err := c.getWithRetry(ctx, "/api/morechildren.json", query)
	if err != nil {
		return nil, err
	}

	var resp moreChildrenResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse morechildren response: %w", err)
	}
	return resp.JSON.Data.Things, nil
}

// Ensure Client implements ThreadAPI at compile time
var _ ThreadAPI = (*Client)(nil)
