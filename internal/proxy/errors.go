package proxy

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/longkey1/exnota/internal/notion/api"
	"github.com/longkey1/exnota/internal/proxyapi"
)

// notionErrorCode maps a failed Notion API call onto the proxy vocabulary
func notionErrorCode(err error) proxyapi.ErrorCode {
	var apiErr *api.APIError
	if !errors.As(err, &apiErr) {
		return proxyapi.ErrNotionUnknown
	}

	switch apiErr.Code {
	case api.CodeUnauthorized:
		return proxyapi.ErrNotionInvalidToken
	case api.CodeRateLimited:
		return proxyapi.ErrNotionRateLimit
	case api.CodeInternalServerError, api.CodeServiceUnavailable:
		return proxyapi.ErrNotionServerOther
	case api.CodeConflictError,
		api.CodeInvalidJSON,
		api.CodeInvalidRequest,
		api.CodeInvalidRequestURL,
		api.CodeObjectNotFound,
		api.CodeRestrictedResource,
		api.CodeValidationError,
		api.CodeMissingVersion:
		return proxyapi.ErrNotionClientOther
	}

	switch {
	case apiErr.Status == http.StatusUnauthorized:
		return proxyapi.ErrNotionInvalidToken
	case apiErr.Status == http.StatusTooManyRequests:
		return proxyapi.ErrNotionRateLimit
	case apiErr.Status >= 500:
		return proxyapi.ErrNotionServerOther
	default:
		return proxyapi.ErrNotionUnknown
	}
}

// getPageErrorCode refines notionErrorCode for page retrieval
func getPageErrorCode(err error) proxyapi.ErrorCode {
	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case api.CodeObjectNotFound:
			return proxyapi.ErrGetPageNotFound
		case api.CodeRestrictedResource:
			return proxyapi.ErrGetPageNoAccess
		}
	}
	return notionErrorCode(err)
}

// tokenErrorCode maps a failed OAuth code exchange onto the proxy vocabulary.
// Notion uses the standard OAuth error codes of RFC 6749 section 5.2.
func tokenErrorCode(err error) (proxyapi.ErrorCode, int) {
	var oauthErr *api.OAuthError
	if errors.As(err, &oauthErr) {
		switch oauthErr.Code {
		case "invalid_request":
			return proxyapi.ErrNotionInvalidRequest, http.StatusBadRequest
		case "invalid_client":
			return proxyapi.ErrNotionInvalidClient, http.StatusBadRequest
		case "invalid_grant":
			return proxyapi.ErrNotionInvalidGrant, http.StatusBadRequest
		case "unauthorized_client":
			return proxyapi.ErrNotionUnauthorizedClient, http.StatusBadRequest
		case "unsupported_grant_type":
			return proxyapi.ErrNotionUnsupportedGrantType, http.StatusBadRequest
		case "invalid_scope":
			return proxyapi.ErrNotionInvalidScope, http.StatusBadRequest
		default:
			return proxyapi.ErrNotionOAuthTokenUnknown, http.StatusBadRequest
		}
	}

	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Status == http.StatusTooManyRequests || apiErr.Code == api.CodeRateLimited {
			return proxyapi.ErrNotionRateLimit, http.StatusBadRequest
		}
		return proxyapi.ErrTokenRequestUnsuccessful, http.StatusBadRequest
	}

	if errors.Is(err, api.ErrMissingAccessToken) {
		return proxyapi.ErrTokenResponseMissingToken, http.StatusBadRequest
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
		return proxyapi.ErrTokenResponseNotParseable, http.StatusBadRequest
	}

	return proxyapi.ErrTokenRequestFailed, http.StatusInternalServerError
}
