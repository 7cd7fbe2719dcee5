package api

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/longkey1/exnota/internal/exnota"
	"github.com/longkey1/exnota/internal/version"
)

const authURL = "https://api.notion.com/v1/oauth/authorize"

// ErrMissingAccessToken is returned when a successful token response carries
// no access token
var ErrMissingAccessToken = errors.New("token response has no access token")

// OAuthError is the standard OAuth error body returned by the token endpoint
// (invalid_request, invalid_client, invalid_grant, unauthorized_client,
// unsupported_grant_type, invalid_scope)
type OAuthError struct {
	Status      int    `json:"-"`
	Code        string `json:"error"`
	Description string `json:"error_description,omitempty"`
}

func (e *OAuthError) Error() string {
	if e.Description == "" {
		return fmt.Sprintf("oauth error (status %d): %s", e.Status, e.Code)
	}
	return fmt.Sprintf("oauth error (status %d): %s: %s", e.Status, e.Code, e.Description)
}

// AuthURL returns the page a user visits to grant the integration access
func AuthURL(clientID, redirectURI, state string) string {
	params := url.Values{}
	params.Set("client_id", clientID)
	params.Set("redirect_uri", redirectURI)
	params.Set("response_type", "code")
	params.Set("owner", "user")
	if state != "" {
		params.Set("state", state)
	}

	return authURL + "?" + params.Encode()
}

type tokenRequest struct {
	GrantType   string `json:"grant_type"`
	Code        string `json:"code"`
	RedirectURI string `json:"redirect_uri"`
}

// ExchangeCode exchanges an authorization code for an access token using the
// client's OAuth credentials. A non-2xx response with an OAuth error body
// yields *OAuthError; any other non-2xx yields *APIError.
func (c *Client) ExchangeCode(ctx context.Context, code, redirectURI string) (*exnota.TokenResponse, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("failed to wait for rate limiter: %w", err)
	}

	jsonBody, err := json.Marshal(tokenRequest{
		GrantType:   "authorization_code",
		Code:        code,
		RedirectURI: redirectURI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/oauth/token", bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	// Basic authentication with client_id:client_secret
	auth := base64.StdEncoding.EncodeToString([]byte(c.clientID + ":" + c.clientSecret))
	req.Header.Set("Authorization", "Basic "+auth)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Notion-Version", notionVersion)
	req.Header.Set("User-Agent", version.UserAgent())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		oauthErr := &OAuthError{}
		if err := json.Unmarshal(body, oauthErr); err == nil && oauthErr.Code != "" {
			oauthErr.Status = resp.StatusCode
			return nil, oauthErr
		}
		return nil, parseAPIError(resp.StatusCode, body)
	}

	var token exnota.TokenResponse
	if err := json.Unmarshal(body, &token); err != nil {
		return nil, fmt.Errorf("failed to unmarshal token: %w", err)
	}
	if token.AccessToken == "" {
		return nil, ErrMissingAccessToken
	}

	return &token, nil
}
