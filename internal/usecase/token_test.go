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

func TestGetToken(t *testing.T) {
	f := newFixture()
	i := NewGetTokenInteractor(f.options, log.Nop())

	res := i.GetToken(context.Background())
	require.True(t, res.IsOk())
	assert.Empty(t, res.Value())

	require.True(t, f.options.SaveConfig(context.Background(), exnota.RestoreOptionsConfig(nil, "secret_abc")).IsOk())
	res = i.GetToken(context.Background())
	require.True(t, res.IsOk())
	assert.Equal(t, "secret_abc", res.Value())

	f.store.failGet[repo.KeyOptionsConfig] = true
	res = i.GetToken(context.Background())
	assert.Equal(t, repo.KindStorageGet, res.Kind())
}

func TestSetToken(t *testing.T) {
	f := newFixture()
	require.True(t, f.options.SaveConfig(context.Background(), exnota.NewOptionsConfig(pageNotes)).IsOk())
	i := NewSetTokenInteractor(f.options, f.service, log.Nop())

	res := i.SetToken(context.Background(), "secret_abc")
	require.True(t, res.IsOk())
	assert.Equal(t, "secret_abc", res.Value().Token())

	options := f.storedOptions(context.Background())
	require.NotNil(t, options)
	assert.Equal(t, "secret_abc", options.Token())
	assert.Equal(t, pageNotes, *options.Page())
	assert.Equal(t, []string{"validateToken:secret_abc"}, f.service.calls)
}

func TestSetTokenRejectedIsNotStored(t *testing.T) {
	f := newFixture()
	f.service.valid = result.Fail[result.Void](service.KindValidateTokenInvalidAuth, "Notion validation: Invalid token", nil, nil)

	res := NewSetTokenInteractor(f.options, f.service, log.Nop()).SetToken(context.Background(), "bad")
	require.False(t, res.IsOk())
	assert.Equal(t, service.KindValidateTokenInvalidAuth, res.Kind())
	assert.True(t, SetTokenKinds.Contains(res.Kind()))
	assert.Empty(t, f.store.sets)
}

func TestSetTokenStorageFailure(t *testing.T) {
	f := newFixture()
	f.store.failSet[repo.KeyOptionsConfig] = true

	res := NewSetTokenInteractor(f.options, f.service, log.Nop()).SetToken(context.Background(), "secret_abc")
	assert.Equal(t, repo.KindStorageSet, res.Kind())
}

func TestGetClientID(t *testing.T) {
	f := newFixture()
	res := NewGetClientIDInteractor(f.service, log.Nop()).GetClientID(context.Background())
	require.True(t, res.IsOk())
	assert.Equal(t, "client-id", res.Value())

	f.service.clientID = result.Fail[string](service.KindFetchingClientID, "down", nil, nil)
	res = NewGetClientIDInteractor(f.service, log.Nop()).GetClientID(context.Background())
	assert.Equal(t, service.KindFetchingClientID, res.Kind())
	assert.True(t, GetClientIDKinds.Contains(res.Kind()))
}
