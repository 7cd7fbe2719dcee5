package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(
		WithBaseURL(srv.URL),
		WithRateLimit(0),
		WithOAuthCredentials("client-id", "client-secret"),
	)
}

const pageJSON = `{
	"object": "page",
	"id": "p1",
	"parent": {"type": "workspace", "workspace": true},
	"url": "https://notion.so/p1",
	"properties": {
		"Name": {"id": "title", "type": "title", "title": [{"type": "text", "plain_text": "No"}, {"type": "text", "plain_text": "tes"}]}
	}
}`

func TestGetPage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/pages/abc123", r.URL.Path)
		assert.Equal(t, "Bearer secret_tok", r.Header.Get("Authorization"))
		assert.Equal(t, notionVersion, r.Header.Get("Notion-Version"))
		_, _ = io.WriteString(w, pageJSON)
	})

	page, err := c.GetPage(context.Background(), "secret_tok", "abc-123")
	require.NoError(t, err)
	assert.Equal(t, "p1", page.ID)
	assert.True(t, page.IsTopLevel())

	title, ok := page.Title()
	assert.True(t, ok)
	assert.Equal(t, "Notes", title)
}

func TestGetPageAPIError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"object":"error","status":404,"code":"object_not_found","message":"Could not find page"}`)
	})

	_, err := c.GetPage(context.Background(), "tok", "p1")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 404, apiErr.Status)
	assert.Equal(t, CodeObjectNotFound, apiErr.Code)
}

func TestNonJSONErrorKeepsStatus(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = io.WriteString(w, "bad gateway")
	})

	_, err := c.Me(context.Background(), "tok")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
	assert.Empty(t, apiErr.Code)
	assert.Equal(t, "bad gateway", apiErr.Message)
}

func TestSearch(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/search", r.URL.Path)

		var req map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, map[string]any{"value": "page", "property": "object"}, req["filter"])
		assert.Equal(t, float64(50), req["page_size"])

		_, _ = io.WriteString(w, `{"object":"list","results":[`+pageJSON+`],"has_more":true,"next_cursor":"c2"}`)
	})

	resp, err := c.Search(context.Background(), "tok", &SearchOptions{PageSize: 50})
	require.NoError(t, err)
	require.Len(t, resp.Results, 1)
	assert.True(t, resp.HasMore)
	assert.Equal(t, "c2", resp.NextCursor)
}

func TestMe(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/me", r.URL.Path)
		_, _ = io.WriteString(w, `{"object":"user","id":"bot-1","type":"bot","bot":{"owner":{"type":"workspace","workspace":true},"workspace_name":"WS"}}`)
	})

	user, err := c.Me(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, "bot-1", user.ID)
	require.NotNil(t, user.Bot)
	assert.Equal(t, "WS", user.Bot.WorkspaceName)
}

func TestExchangeCode(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/oauth/token", r.URL.Path)
		id, secret, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "client-id", id)
		assert.Equal(t, "client-secret", secret)

		var req tokenRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, tokenRequest{GrantType: "authorization_code", Code: "abc123", RedirectURI: "https://ext/callback"}, req)

		_, _ = io.WriteString(w, `{"access_token":"secret_x","token_type":"bearer","bot_id":"bot-1","workspace_id":"ws-1","workspace_name":"WS"}`)
	})

	token, err := c.ExchangeCode(context.Background(), "abc123", "https://ext/callback")
	require.NoError(t, err)
	assert.Equal(t, "secret_x", token.AccessToken)
	assert.Equal(t, "bot-1", token.BotID)
}

func TestExchangeCodeOAuthError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"error":"invalid_grant","error_description":"code expired"}`)
	})

	_, err := c.ExchangeCode(context.Background(), "abc", "https://ext/callback")
	var oauthErr *OAuthError
	require.ErrorAs(t, err, &oauthErr)
	assert.Equal(t, "invalid_grant", oauthErr.Code)
	assert.Equal(t, http.StatusBadRequest, oauthErr.Status)
}

func TestExchangeCodeMissingToken(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"bot_id":"bot-1"}`)
	})

	_, err := c.ExchangeCode(context.Background(), "abc", "https://ext/callback")
	assert.True(t, errors.Is(err, ErrMissingAccessToken))
}

func TestAuthURL(t *testing.T) {
	u := AuthURL("cid", "http://127.0.0.1:8080/callback", "st")
	assert.True(t, strings.HasPrefix(u, authURL+"?"))
	assert.Contains(t, u, "client_id=cid")
	assert.Contains(t, u, "response_type=code")
	assert.Contains(t, u, "owner=user")
	assert.Contains(t, u, "state=st")
}

func TestPageTitleMissing(t *testing.T) {
	p := Page{Properties: map[string]Property{"Tags": {Type: "rich_text"}}}
	_, ok := p.Title()
	assert.False(t, ok)
	assert.False(t, p.IsTopLevel())
}
