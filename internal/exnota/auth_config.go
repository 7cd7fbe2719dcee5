package exnota

import (
	"github.com/longkey1/exnota/internal/result"
)

// KindMissingToken is returned when a token response carries no grant
const KindMissingToken result.Kind = "missing-token"

// AuthConfigKinds is the kind set of NewAuthConfig and WithTokenResponse
var AuthConfigKinds = result.NewKindSet(KindMissingToken)

// AuthConfig holds the OAuth code and the token grant of the installation.
// It is immutable; the With methods return updated copies.
type AuthConfig struct {
	code          string
	tokenResponse *TokenResponse
}

// NewAuthConfig validates and creates an auth config. tokenResponse may be nil.
func NewAuthConfig(code string, tokenResponse *TokenResponse) result.Result[AuthConfig] {
	if err := validateTokenResponse(tokenResponse); err != nil {
		return result.FromError[AuthConfig](err)
	}
	return result.Ok(AuthConfig{code: code, tokenResponse: cloneTokenResponse(tokenResponse)})
}

// Code returns the OAuth authorization code
func (c AuthConfig) Code() string {
	return c.code
}

// TokenResponse returns a copy of the grant, or nil
func (c AuthConfig) TokenResponse() *TokenResponse {
	return cloneTokenResponse(c.tokenResponse)
}

// WithCode returns a copy with the code replaced
func (c AuthConfig) WithCode(code string) AuthConfig {
	c.code = code
	return c
}

// WithTokenResponse returns a copy with the grant replaced. nil clears it.
func (c AuthConfig) WithTokenResponse(tokenResponse *TokenResponse) result.Result[AuthConfig] {
	if err := validateTokenResponse(tokenResponse); err != nil {
		return result.FromError[AuthConfig](err)
	}
	c.tokenResponse = cloneTokenResponse(tokenResponse)
	return result.Ok(c)
}

func validateTokenResponse(tokenResponse *TokenResponse) *result.Error {
	if tokenResponse != nil && !tokenResponse.HasGrant() {
		return result.Fail[struct{}](KindMissingToken, "Token response has no token", nil, nil).Err()
	}
	return nil
}

func cloneTokenResponse(t *TokenResponse) *TokenResponse {
	if t == nil {
		return nil
	}
	cp := *t
	if t.Owner != nil {
		owner := *t.Owner
		if owner.User != nil {
			user := *owner.User
			if user.Person != nil {
				person := *user.Person
				user.Person = &person
			}
			owner.User = &user
		}
		cp.Owner = &owner
	}
	return &cp
}
