// Package proxyapi is the HTTP contract between the Notion proxy and its
// clients: endpoint paths, headers, cookies, bodies and error codes.
package proxyapi

import (
	"github.com/longkey1/exnota/internal/exnota"
)

// Endpoint paths, relative to the proxy base URL
const (
	PathGetNotionClientID = "get-notion-client-id"
	PathGetToken          = "get-token"
	PathGetPages          = "get-pages"
	PathGetPage           = "get-page"
)

// HeaderAppVersion carries the client version on every request
const HeaderAppVersion = "X-App-Version"

// Cookies set by get-token. All are HTTP-only; the token never appears in a
// response body.
const (
	CookieToken       = "exnota_notiontoken"
	CookieBotID       = "exnota_notionbotid"
	CookieWorkspaceID = "exnota_notionworkspaceid"
)

// ErrorCode is the error vocabulary of the proxy
type ErrorCode string

// Common error codes
const (
	ErrNoAppVersion  ErrorCode = "no-app-version"
	ErrNoMessageBody ErrorCode = "no-message-body"
	ErrBodyNotJSON   ErrorCode = "body-not-json"
	ErrNoToken       ErrorCode = "api-no-token"
)

// get-token error codes
const (
	ErrNoCode                     ErrorCode = "no-code"
	ErrNoRedirectURL              ErrorCode = "no-redirect-url"
	ErrTokenRequestFailed         ErrorCode = "token-request-failed"
	ErrTokenRequestUnsuccessful   ErrorCode = "token-request-unsuccessful"
	ErrNotionInvalidClient        ErrorCode = "notion-invalid-client"
	ErrNotionInvalidRequest       ErrorCode = "notion-invalid-request"
	ErrNotionInvalidGrant         ErrorCode = "notion-invalid-grant"
	ErrNotionUnauthorizedClient   ErrorCode = "notion-unauthorized-client"
	ErrNotionUnsupportedGrantType ErrorCode = "notion-unsupported-grant-type"
	ErrNotionInvalidScope         ErrorCode = "notion-invalid-scope"
	ErrNotionOAuthTokenUnknown    ErrorCode = "notion-oauth-token-unknown"
	ErrTokenResponseNotParseable  ErrorCode = "token-response-not-parseable"
	ErrTokenResponseMissingToken  ErrorCode = "token-response-missing-token"
)

// get-page error codes
const (
	ErrGetPageNoID     ErrorCode = "api--get-page--no-id"
	ErrGetPageNoAccess ErrorCode = "api--get-page--no-access"
	ErrGetPageNotFound ErrorCode = "api--get-page--not-found"
)

// Error codes for failed Notion API calls
const (
	ErrNotionInvalidToken ErrorCode = "api--notion--invalid-token"
	ErrNotionRateLimit    ErrorCode = "api--notion--rate-limit"
	ErrNotionServerOther  ErrorCode = "api--notion--server-other"
	ErrNotionClientOther  ErrorCode = "api--notion--client-other"
	ErrNotionUnknown      ErrorCode = "api--notion--unknown"
)

// ErrorResponse is the body of every non-2xx response
type ErrorResponse struct {
	Error ErrorCode `json:"error"`
}

// GetClientIDResponse is the body of get-notion-client-id
type GetClientIDResponse struct {
	ClientID string `json:"clientId"`
}

// GetTokenRequest is the body of get-token
type GetTokenRequest struct {
	Code        string `json:"code"`
	RedirectURL string `json:"redirectURL"`
}

// GetTokenResponse is the success body of get-token. The access token is
// stripped.
type GetTokenResponse struct {
	TokenResponse exnota.TokenResponse `json:"tokenResponse"`
}

// GetPagesResponse is the success body of get-pages
type GetPagesResponse struct {
	Pages []exnota.Page `json:"pages"`
}

// GetPageRequest is the body of get-page
type GetPageRequest struct {
	ID string `json:"id"`
}

// GetPageResponse is the success body of get-page
type GetPageResponse struct {
	Page exnota.Page `json:"page"`
}
