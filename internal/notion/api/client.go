package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/longkey1/exnota/internal/version"
)

const (
	// DefaultBaseURL is the Notion REST API root
	DefaultBaseURL = "https://api.notion.com/v1"
	// DefaultRateLimit is Notion's documented average of requests per second
	DefaultRateLimit = 3.0

	notionVersion = "2022-06-28"
)

// Client is a Notion REST API client. A single Client is shared by every
// caller so its limiter bounds the combined request rate; the bearer token
// is supplied per call.
type Client struct {
	httpClient   *http.Client
	baseURL      string
	limiter      *rate.Limiter
	clientID     string
	clientSecret string
}

// Option configures a Client
type Option func(*Client)

// WithBaseURL overrides the API root
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithHTTPClient overrides the HTTP client
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithRateLimit sets the sustained requests per second. Values <= 0 disable
// limiting.
func WithRateLimit(perSecond float64) Option {
	return func(c *Client) {
		if perSecond <= 0 {
			c.limiter = rate.NewLimiter(rate.Inf, 0)
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
	}
}

// WithOAuthCredentials sets the public integration credentials used by
// ExchangeCode
func WithOAuthCredentials(clientID, clientSecret string) Option {
	return func(c *Client) {
		c.clientID = clientID
		c.clientSecret = clientSecret
	}
}

// NewClient creates a new Notion REST API client
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    DefaultBaseURL,
		limiter:    rate.NewLimiter(rate.Limit(DefaultRateLimit), 1),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetPage retrieves a page by ID
func (c *Client) GetPage(ctx context.Context, token, pageID string) (*Page, error) {
	var page Page
	if err := c.do(ctx, http.MethodGet, "/pages/"+normalizeID(pageID), token, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Search searches for pages shared with the integration
func (c *Client) Search(ctx context.Context, token string, opts *SearchOptions) (*SearchResponse, error) {
	req := searchRequest{
		Filter: &searchFilter{
			Value:    "page",
			Property: "object",
		},
	}
	if opts != nil {
		req.Query = opts.Query
		req.PageSize = opts.PageSize
		req.StartCursor = opts.StartCursor
	}

	var resp SearchResponse
	if err := c.do(ctx, http.MethodPost, "/search", token, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Me retrieves the bot user the token belongs to
func (c *Client) Me(ctx context.Context, token string) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodGet, "/users/me", token, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) do(ctx context.Context, method, path, token string, in, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("failed to wait for rate limiter: %w", err)
	}

	var reqBody io.Reader
	if in != nil {
		jsonBody, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reqBody = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	c.setHeaders(req, token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return parseAPIError(resp.StatusCode, body)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return nil
}

func (c *Client) setHeaders(req *http.Request, token string) {
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Notion-Version", notionVersion)
	req.Header.Set("User-Agent", version.UserAgent())
}

// parseAPIError always yields an *APIError so callers can classify by status
// even when the body is not Notion's error shape
func parseAPIError(status int, body []byte) error {
	apiErr := &APIError{}
	if err := json.Unmarshal(body, apiErr); err != nil || apiErr.Code == "" {
		return &APIError{Status: status, Message: strings.TrimSpace(string(body))}
	}
	if apiErr.Status == 0 {
		apiErr.Status = status
	}
	return apiErr
}

func normalizeID(id string) string {
	return strings.ReplaceAll(id, "-", "")
}
