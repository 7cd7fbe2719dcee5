// Package notion is the proxy's view of the Notion API
package notion

import (
	"context"
	"net/http"

	"github.com/longkey1/exnota/internal/exnota"
	"github.com/longkey1/exnota/internal/exnota/config"
	"github.com/longkey1/exnota/internal/notion/api"
)

// Client defines the Notion operations the proxy and token validator need
type Client interface {
	// ExchangeCode exchanges an OAuth authorization code for a grant
	ExchangeCode(ctx context.Context, code, redirectURI string) (*exnota.TokenResponse, error)

	// Search searches for pages shared with the token's integration
	Search(ctx context.Context, token string, opts *api.SearchOptions) (*api.SearchResponse, error)

	// GetPage retrieves a page by ID
	GetPage(ctx context.Context, token, pageID string) (*api.Page, error)

	// Me retrieves the bot user the token belongs to
	Me(ctx context.Context, token string) (*api.User, error)
}

// Verify api.Client implements Client
var _ Client = (*api.Client)(nil)

// NewClient creates a Notion client from the proxy configuration
func NewClient(cfg *config.Config) Client {
	return api.NewClient(
		api.WithOAuthCredentials(cfg.ClientID, cfg.ClientSecret),
		api.WithRateLimit(cfg.NotionRateLimit),
		api.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
	)
}
