// Package usecase holds the interactors behind every bridge method. Each
// interactor combines repositories and services into one operation and
// exports the kind set of that operation, built with result.Union from the
// sets of everything it calls.
package usecase

import (
	"context"

	"github.com/longkey1/exnota/internal/exnota"
	"github.com/longkey1/exnota/internal/result"
)

// TokenService exchanges OAuth codes for grants
type TokenService interface {
	GetToken(ctx context.Context, code, redirectURL string) result.Result[exnota.TokenResponse]
}

// PagesService lists the pages the integration was granted
type PagesService interface {
	GetPages(ctx context.Context) result.Result[[]exnota.Page]
}

// PageService retrieves one granted page
type PageService interface {
	GetPage(ctx context.Context, id string) result.Result[exnota.Page]
}

// ClientIDService fetches the public OAuth client id
type ClientIDService interface {
	GetClientID(ctx context.Context) result.Result[string]
}

// TokenValidator checks an integration token with Notion
type TokenValidator interface {
	ValidateToken(ctx context.Context, token string) result.Result[result.Void]
}
