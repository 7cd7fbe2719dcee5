package service

import (
	"context"
	"errors"
	"net/http"

	"github.com/longkey1/exnota/internal/log"
	"github.com/longkey1/exnota/internal/notion"
	"github.com/longkey1/exnota/internal/notion/api"
	"github.com/longkey1/exnota/internal/result"
)

// TokenValidator checks Notion integration tokens against the Notion API
type TokenValidator struct {
	client notion.Client
	logger *log.Logger
}

// NewTokenValidator creates a validator calling client
func NewTokenValidator(client notion.Client, logger *log.Logger) *TokenValidator {
	return &TokenValidator{client: client, logger: logger.Named("NotionAPIValidateToken")}
}

// ValidateToken succeeds when Notion accepts the token
func (v *TokenValidator) ValidateToken(ctx context.Context, token string) result.Result[result.Void] {
	step := v.logger.Trace("Testing token")
	res := v.validate(ctx, token)
	step.Outcome(res.Err())
	return res
}

func (v *TokenValidator) validate(ctx context.Context, token string) result.Result[result.Void] {
	if token == "" {
		return result.Fail[result.Void](KindValidateTokenInvalidAuth, "Notion validation: Empty token", nil, nil)
	}

	_, err := v.client.Me(ctx, token)
	if err == nil {
		return result.Ok(result.Void{})
	}

	var apiErr *api.APIError
	if !errors.As(err, &apiErr) {
		return result.Fail[result.Void](KindValidateTokenOther, "Notion validation: Request failed", err, nil)
	}

	meta := result.Metadata{"status": apiErr.Status, "code": apiErr.Code}
	switch {
	case apiErr.Code == api.CodeUnauthorized || apiErr.Status == http.StatusUnauthorized:
		return result.Fail[result.Void](KindValidateTokenInvalidAuth, "Notion validation: Invalid token", err, meta)
	case apiErr.Code == api.CodeRateLimited || apiErr.Status == http.StatusTooManyRequests:
		return result.Fail[result.Void](KindValidateTokenRateLimit, "Notion validation: Rate limit error", err, meta)
	default:
		return result.Fail[result.Void](KindValidateTokenOther, "Notion validation: Other error", err, meta)
	}
}
