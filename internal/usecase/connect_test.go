package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/longkey1/exnota/internal/exnota"
	"github.com/longkey1/exnota/internal/log"
	"github.com/longkey1/exnota/internal/repo"
	"github.com/longkey1/exnota/internal/result"
	"github.com/longkey1/exnota/internal/service"
)

const redirectURL = "https://ext/callback"

func (f *fixture) connect() *ConnectInteractor {
	return NewConnectInteractor(f.auth, f.options, f.service, log.Nop())
}

func TestConnectSinglePage(t *testing.T) {
	f := newFixture()

	res := f.connect().Connect(context.Background(), "abc123", redirectURL)
	require.True(t, res.IsOk(), "%v", res.Err())
	assert.Equal(t, ConnectResponse{Status: StatusPageSet}, res.Value())

	options := f.storedOptions(context.Background())
	require.NotNil(t, options)
	assert.Equal(t, pageNotes, *options.Page())

	auth := f.storedAuth(context.Background())
	require.NotNil(t, auth)
	assert.Equal(t, "abc123", auth.Code())
	assert.Equal(t, "bot-1", auth.TokenResponse().BotID)

	assert.Equal(t, []string{"getToken:abc123", "getPages"}, f.service.calls)
	assert.Equal(t, []string{repo.KeyAuthConfig, repo.KeyAuthConfig, repo.KeyOptionsConfig}, f.store.sets)
}

func TestConnectMultiplePages(t *testing.T) {
	f := newFixture()
	f.service.pages = result.Ok([]exnota.Page{pageNotes, pageTasks})

	res := f.connect().Connect(context.Background(), "abc123", redirectURL)
	require.True(t, res.IsOk())
	assert.Equal(t, StatusMultiplePages, res.Value().Status)
	assert.Equal(t, []exnota.Page{pageNotes, pageTasks}, res.Value().Pages)

	assert.Nil(t, f.storedOptions(context.Background()))
	assert.NotContains(t, f.store.sets, repo.KeyOptionsConfig)
}

func TestConnectNoPages(t *testing.T) {
	f := newFixture()
	f.service.pages = result.Ok([]exnota.Page{})

	res := f.connect().Connect(context.Background(), "abc123", redirectURL)
	require.False(t, res.IsOk())
	assert.Equal(t, KindNoPagesGranted, res.Kind())

	auth := f.storedAuth(context.Background())
	require.NotNil(t, auth)
	require.NotNil(t, auth.TokenResponse())
	assert.Equal(t, "bot-1", auth.TokenResponse().BotID)
}

func TestConnectTokenFailureKeepsCode(t *testing.T) {
	f := newFixture()
	f.service.token = result.Fail[exnota.TokenResponse](service.KindGetTokenInvalidAuth, "Error fetching token: notion-invalid-grant", nil, nil)

	res := f.connect().Connect(context.Background(), "abc123", redirectURL)
	require.False(t, res.IsOk())
	assert.Equal(t, service.KindGetTokenInvalidAuth, res.Kind())

	auth := f.storedAuth(context.Background())
	require.NotNil(t, auth)
	assert.Equal(t, "abc123", auth.Code())
	assert.Nil(t, auth.TokenResponse())
	assert.Equal(t, []string{"getToken:abc123"}, f.service.calls)
}

func TestConnectNewCodeClearsOldToken(t *testing.T) {
	f := newFixture()
	old := exnota.NewAuthConfig("old", &exnota.TokenResponse{BotID: "old-bot"}).Value()
	require.True(t, f.auth.SaveConfig(context.Background(), old).IsOk())
	f.service.token = result.Fail[exnota.TokenResponse](service.KindGetTokenOther, "down", nil, nil)

	res := f.connect().Connect(context.Background(), "new", redirectURL)
	require.False(t, res.IsOk())

	auth := f.storedAuth(context.Background())
	require.NotNil(t, auth)
	assert.Equal(t, "new", auth.Code())
	assert.Nil(t, auth.TokenResponse())
}

func TestConnectKeepsIntegrationToken(t *testing.T) {
	f := newFixture()
	require.True(t, f.options.SaveConfig(context.Background(), exnota.RestoreOptionsConfig(&pageTasks, "secret_abc")).IsOk())

	res := f.connect().Connect(context.Background(), "abc123", redirectURL)
	require.True(t, res.IsOk())

	options := f.storedOptions(context.Background())
	require.NotNil(t, options)
	assert.Equal(t, pageNotes, *options.Page())
	assert.Equal(t, "secret_abc", options.Token())
}

func TestConnectIsRepeatable(t *testing.T) {
	f := newFixture()
	c := f.connect()

	require.True(t, c.Connect(context.Background(), "abc123", redirectURL).IsOk())
	require.True(t, c.Connect(context.Background(), "abc123", redirectURL).IsOk())

	auth := f.storedAuth(context.Background())
	require.NotNil(t, auth)
	assert.Equal(t, "abc123", auth.Code())
}

func TestConnectStorageFailures(t *testing.T) {
	t.Run("load auth", func(t *testing.T) {
		f := newFixture()
		f.store.failGet[repo.KeyAuthConfig] = true

		res := f.connect().Connect(context.Background(), "abc123", redirectURL)
		assert.Equal(t, repo.KindStorageGet, res.Kind())
		assert.Empty(t, f.service.calls)
	})

	t.Run("save code", func(t *testing.T) {
		f := newFixture()
		f.store.failSet[repo.KeyAuthConfig] = true

		res := f.connect().Connect(context.Background(), "abc123", redirectURL)
		assert.Equal(t, repo.KindStorageSet, res.Kind())
		assert.Empty(t, f.service.calls)
	})

	t.Run("save page", func(t *testing.T) {
		f := newFixture()
		f.store.failSet[repo.KeyOptionsConfig] = true

		res := f.connect().Connect(context.Background(), "abc123", redirectURL)
		assert.Equal(t, repo.KindStorageSet, res.Kind())
		assert.NotNil(t, f.storedAuth(context.Background()).TokenResponse())
	})
}

func TestConnectPagesFailure(t *testing.T) {
	f := newFixture()
	f.service.pages = result.Fail[[]exnota.Page](service.KindGetPagesRateLimit, "slow down", nil, nil)

	res := f.connect().Connect(context.Background(), "abc123", redirectURL)
	assert.Equal(t, service.KindGetPagesRateLimit, res.Kind())
}

func TestConnectGrantWithoutToken(t *testing.T) {
	f := newFixture()
	f.service.token = result.Ok(exnota.TokenResponse{WorkspaceName: "WS"})

	res := f.connect().Connect(context.Background(), "abc123", redirectURL)
	assert.Equal(t, exnota.KindMissingToken, res.Kind())
}

func TestConnectKindsCoverFailures(t *testing.T) {
	for _, k := range []result.Kind{
		repo.KindStorageGet,
		repo.KindStorageSet,
		exnota.KindMissingToken,
		service.KindGetTokenInvalidAuth,
		service.KindGetPagesOther,
		KindNoPagesGranted,
	} {
		assert.True(t, ConnectKinds.Contains(k), k)
	}
	assert.False(t, ConnectKinds.Contains(service.KindGetPageNoPageAccess))
}

func TestConnectReplacesInvalidStoredGrant(t *testing.T) {
	f := newFixture()
	require.NoError(t, f.store.Set(context.Background(), repo.KeyAuthConfig,
		[]byte(`{"code":"old","token_response":{"workspace_id":"w"}}`)))

	res := f.connect().Connect(context.Background(), "fresh", redirectURL)
	require.True(t, res.IsOk(), "%v", res.Err())
	assert.Equal(t, StatusPageSet, res.Value().Status)
	assert.Equal(t, []string{"getToken:fresh", "getPages"}, f.service.calls)

	auth := f.storedAuth(context.Background())
	require.NotNil(t, auth)
	assert.Equal(t, "fresh", auth.Code())
	assert.Equal(t, "bot-1", auth.TokenResponse().BotID)
}
