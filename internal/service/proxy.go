package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/longkey1/exnota/internal/exnota"
	"github.com/longkey1/exnota/internal/log"
	"github.com/longkey1/exnota/internal/proxyapi"
	"github.com/longkey1/exnota/internal/repo"
	"github.com/longkey1/exnota/internal/result"
	"github.com/longkey1/exnota/internal/version"
)

// ProxyConfig holds the settings of a ProxyClient
type ProxyConfig struct {
	BaseURL    string
	AppVersion string
	Timeout    time.Duration
}

// ProxyClient calls the Notion proxy endpoints
type ProxyClient struct {
	baseURL    string
	appVersion string
	httpClient *http.Client
	sessions   repo.SessionRepo
	logger     *log.Logger
}

// NewProxyClient creates a proxy client. The session cookies the proxy sets
// are kept in sessions.
func NewProxyClient(cfg ProxyConfig, sessions repo.SessionRepo, logger *log.Logger) *ProxyClient {
	baseURL := cfg.BaseURL
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return &ProxyClient{
		baseURL:    baseURL,
		appVersion: cfg.AppVersion,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		sessions:   sessions,
		logger:     logger.Named("ProxyClient"),
	}
}

// response is a completed proxy call
type response struct {
	status     int
	statusText string
	body       []byte
}

func (r *response) ok() bool {
	return r.status >= 200 && r.status <= 299
}

func (r *response) metadata() result.Metadata {
	return result.Metadata{
		"status":     r.status,
		"statusText": r.statusText,
	}
}

// errorCode decodes the proxy error body. ok is false when the body is not
// the proxy's error shape, e.g. when a gateway answered instead of the proxy.
func (r *response) errorCode() (code proxyapi.ErrorCode, ok bool) {
	var body proxyapi.ErrorResponse
	if err := json.Unmarshal(r.body, &body); err != nil || body.Error == "" {
		return "", false
	}
	return body.Error, true
}

// GetClientID fetches the public OAuth client id of the integration
func (c *ProxyClient) GetClientID(ctx context.Context) result.Result[string] {
	step := c.logger.Trace("Calling notionClientId")
	res := c.getClientID(ctx)
	step.Outcome(res.Err())
	return res
}

func (c *ProxyClient) getClientID(ctx context.Context) result.Result[string] {
	resp, err := c.call(ctx, http.MethodGet, proxyapi.PathGetNotionClientID, nil)
	if err != nil {
		return result.Fail[string](KindFetchingClientID, "Error fetching client ID", err, nil)
	}
	if !resp.ok() {
		return result.Fail[string](KindFetchingClientID, "Error fetching client ID", nil, resp.metadata())
	}

	var body proxyapi.GetClientIDResponse
	if err := json.Unmarshal(resp.body, &body); err != nil {
		return result.Fail[string](KindFetchingClientID, "Client ID response not parseable", err, resp.metadata())
	}
	if body.ClientID == "" {
		return result.Fail[string](KindFetchingClientID, "Client ID response has no client ID", nil, resp.metadata())
	}
	return result.Ok(body.ClientID)
}

// GetToken exchanges an OAuth code for a grant. The proxy keeps the access
// token in the session cookie, so the returned grant has none.
func (c *ProxyClient) GetToken(ctx context.Context, code, redirectURL string) result.Result[exnota.TokenResponse] {
	step := c.logger.Trace("Calling notionGetToken")
	res := c.getToken(ctx, code, redirectURL)
	step.Outcome(res.Err())
	return res
}

func (c *ProxyClient) getToken(ctx context.Context, code, redirectURL string) result.Result[exnota.TokenResponse] {
	resp, err := c.call(ctx, http.MethodPost, proxyapi.PathGetToken, proxyapi.GetTokenRequest{
		Code:        code,
		RedirectURL: redirectURL,
	})
	if err != nil {
		return result.Fail[exnota.TokenResponse](KindGetTokenOther, "Error fetching token", err, nil)
	}

	if !resp.ok() {
		errCode, ok := resp.errorCode()
		if !ok {
			return result.Fail[exnota.TokenResponse](KindGetTokenOther,
				fmt.Sprintf("Error fetching token: %s", resp.statusText), nil, resp.metadata())
		}
		meta := resp.metadata()
		meta["error"] = string(errCode)
		kind := classify(errCode, resp.status, GetTokenKinds, KindGetTokenInvalidAuth, KindGetTokenRateLimit, "", KindGetTokenOther)
		return result.Fail[exnota.TokenResponse](kind, fmt.Sprintf("Error fetching token: %s", errCode), nil, meta)
	}

	var body proxyapi.GetTokenResponse
	if err := json.Unmarshal(resp.body, &body); err != nil {
		return result.Fail[exnota.TokenResponse](KindGetTokenOther, "Token response not parseable", err, resp.metadata())
	}
	return result.Ok(body.TokenResponse)
}

// GetPages lists the top-level pages the integration was granted
func (c *ProxyClient) GetPages(ctx context.Context) result.Result[[]exnota.Page] {
	step := c.logger.Trace("Calling notionGetPages")
	res := c.getPages(ctx)
	step.Outcome(res.Err())
	return res
}

func (c *ProxyClient) getPages(ctx context.Context) result.Result[[]exnota.Page] {
	resp, err := c.call(ctx, http.MethodPost, proxyapi.PathGetPages, nil)
	if err != nil {
		return result.Fail[[]exnota.Page](KindGetPagesOther, "Error getting pages", err, nil)
	}

	if !resp.ok() {
		errCode, ok := resp.errorCode()
		if !ok {
			return result.Fail[[]exnota.Page](KindGetPagesOther,
				fmt.Sprintf("Error getting pages: %s", resp.statusText), nil, resp.metadata())
		}
		meta := resp.metadata()
		meta["error"] = string(errCode)
		kind := classify(errCode, resp.status, GetPagesKinds, KindGetPagesInvalidAuth, KindGetPagesRateLimit, "", KindGetPagesOther)
		return result.Fail[[]exnota.Page](kind, fmt.Sprintf("Error getting pages: %s", errCode), nil, meta)
	}

	var body proxyapi.GetPagesResponse
	if err := json.Unmarshal(resp.body, &body); err != nil {
		return result.Fail[[]exnota.Page](KindGetPagesOther, "Pages response not parseable", err, resp.metadata())
	}

	pages := make([]exnota.Page, 0, len(body.Pages))
	for _, p := range body.Pages {
		page := exnota.NewPage(p.ID, p.Title, p.URL)
		if !page.IsOk() {
			return result.Fail[[]exnota.Page](KindGetPagesOther, "Pages response has an invalid page", page.Err(), resp.metadata())
		}
		pages = append(pages, page.Value())
	}
	return result.Ok(pages)
}

// GetPage retrieves a page the integration was granted
func (c *ProxyClient) GetPage(ctx context.Context, id string) result.Result[exnota.Page] {
	step := c.logger.Trace("Calling notionGetPage")
	res := c.getPage(ctx, id)
	step.Outcome(res.Err())
	return res
}

func (c *ProxyClient) getPage(ctx context.Context, id string) result.Result[exnota.Page] {
	resp, err := c.call(ctx, http.MethodPost, proxyapi.PathGetPage, proxyapi.GetPageRequest{ID: id})
	if err != nil {
		return result.Fail[exnota.Page](KindGetPageOther, "Error getting page", err, nil)
	}

	if !resp.ok() {
		errCode, ok := resp.errorCode()
		if !ok {
			return result.Fail[exnota.Page](KindGetPageOther,
				fmt.Sprintf("Error getting page: %s", resp.statusText), nil, resp.metadata())
		}
		meta := resp.metadata()
		meta["error"] = string(errCode)
		meta["id"] = id
		kind := classify(errCode, resp.status, GetPageKinds, KindGetPageInvalidAuth, KindGetPageRateLimit, KindGetPageNoPageAccess, KindGetPageOther)
		return result.Fail[exnota.Page](kind, fmt.Sprintf("Error getting page: %s", errCode), nil, meta)
	}

	var body proxyapi.GetPageResponse
	if err := json.Unmarshal(resp.body, &body); err != nil {
		return result.Fail[exnota.Page](KindGetPageOther, "Page response not parseable", err, resp.metadata())
	}
	page := exnota.NewPage(body.Page.ID, body.Page.Title, body.Page.URL)
	if !page.IsOk() {
		return result.Fail[exnota.Page](KindGetPageOther, "Page response has an invalid page", page.Err(), resp.metadata())
	}
	return page
}

// classify maps a proxy error code onto an operation's kinds. A kind left
// empty is not part of the operation's set and falls through to other.
func classify(code proxyapi.ErrorCode, status int, set result.KindSet, invalidAuth, rateLimit, noAccess, other result.Kind) result.Kind {
	kind := other
	switch code {
	case proxyapi.ErrNoToken, proxyapi.ErrNotionInvalidToken, proxyapi.ErrNotionInvalidGrant:
		kind = invalidAuth
	case proxyapi.ErrNotionRateLimit:
		kind = rateLimit
	case proxyapi.ErrGetPageNoAccess, proxyapi.ErrGetPageNotFound:
		kind = noAccess
	default:
		if status == http.StatusTooManyRequests {
			kind = rateLimit
		}
	}
	if kind == "" || !set.Contains(kind) {
		return other
	}
	return kind
}

// call sends one request carrying the app version and the session cookies,
// then stores any cookies the proxy set
func (c *ProxyClient) call(ctx context.Context, method, path string, in any) (*response, error) {
	var reqBody io.Reader
	if in != nil {
		jsonBody, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		reqBody = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set(proxyapi.HeaderAppVersion, c.appVersion)
	req.Header.Set("User-Agent", version.UserAgent())
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	cookies, err := c.sessions.Cookies(ctx)
	if err != nil {
		return nil, err
	}
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if err := c.sessions.Update(ctx, resp.Cookies()); err != nil {
		return nil, err
	}

	return &response{
		status:     resp.StatusCode,
		statusText: http.StatusText(resp.StatusCode),
		body:       body,
	}, nil
}
