package exnota

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAuthConfig(t *testing.T) {
	t.Run("code only", func(t *testing.T) {
		r := NewAuthConfig("abc123", nil)
		require.True(t, r.IsOk())
		assert.Equal(t, "abc123", r.Value().Code())
		assert.Nil(t, r.Value().TokenResponse())
	})

	t.Run("grant without token or bot", func(t *testing.T) {
		r := NewAuthConfig("abc123", &TokenResponse{WorkspaceName: "ws"})
		require.False(t, r.IsOk())
		assert.Equal(t, KindMissingToken, r.Kind())
	})

	t.Run("grant stripped of its token", func(t *testing.T) {
		r := NewAuthConfig("abc123", &TokenResponse{BotID: "bot"})
		require.True(t, r.IsOk())
		assert.Equal(t, "bot", r.Value().TokenResponse().BotID)
	})
}

func TestAuthConfigWithTokenResponse(t *testing.T) {
	cfg := NewAuthConfig("abc123", nil).Value()

	updated := cfg.WithTokenResponse(&TokenResponse{AccessToken: "secret", BotID: "bot"})
	require.True(t, updated.IsOk())
	assert.Equal(t, "secret", updated.Value().TokenResponse().AccessToken)
	assert.Nil(t, cfg.TokenResponse(), "original is unchanged")

	cleared := updated.Value().WithTokenResponse(nil)
	require.True(t, cleared.IsOk())
	assert.Nil(t, cleared.Value().TokenResponse())

	invalid := cfg.WithTokenResponse(&TokenResponse{})
	require.False(t, invalid.IsOk())
	assert.Equal(t, KindMissingToken, invalid.Kind())
}

func TestAuthConfigWithCode(t *testing.T) {
	cfg := NewAuthConfig("old", &TokenResponse{BotID: "bot"}).Value()
	updated := cfg.WithCode("new")
	assert.Equal(t, "new", updated.Code())
	assert.Equal(t, "old", cfg.Code())
	assert.Equal(t, "bot", updated.TokenResponse().BotID)
}

func TestAuthConfigDoesNotShareGrant(t *testing.T) {
	grant := &TokenResponse{BotID: "bot", Owner: &Owner{Type: "user", User: &User{ID: "u1"}}}
	cfg := NewAuthConfig("code", grant).Value()

	grant.Owner.User.ID = "changed"
	assert.Equal(t, "u1", cfg.TokenResponse().Owner.User.ID)

	got := cfg.TokenResponse()
	got.BotID = "changed"
	assert.Equal(t, "bot", cfg.TokenResponse().BotID)
}

func TestTokenResponseWithoutAccessToken(t *testing.T) {
	grant := TokenResponse{AccessToken: "secret", BotID: "bot"}
	stripped := grant.WithoutAccessToken()
	assert.Empty(t, stripped.AccessToken)
	assert.Equal(t, "secret", grant.AccessToken)
	assert.True(t, stripped.HasGrant())
}
