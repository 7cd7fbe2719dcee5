package cmd

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/longkey1/exnota/internal/exnota/config"
	"github.com/longkey1/exnota/internal/log"
	"github.com/longkey1/exnota/internal/usecase"
)

func testConfig() *config.Config {
	return &config.Config{
		ProxyURL:        "http://127.0.0.1:1/",
		AppVersion:      "test",
		Store:           config.StoreMemory,
		Codec:           config.CodecMsgpack,
		Timeout:         time.Second,
		NotionRateLimit: 3,
	}
}

func TestInProcessBridge(t *testing.T) {
	client, closeFn, err := newBridgeClient(testConfig(), log.Nop())
	require.NoError(t, err)
	t.Cleanup(closeFn)

	token := client.GetToken(context.Background())
	require.True(t, token.IsOk(), "%v", token.Err())
	assert.Empty(t, token.Value())

	verified := client.VerifyPage(context.Background())
	require.True(t, verified.IsOk(), "%v", verified.Err())
	assert.Equal(t, usecase.VerifyNoAuth, verified.Value().Status)

	set := client.SetPage(context.Background(), "p1", "Reading notes", "https://www.notion.so/p1")
	require.True(t, set.IsOk(), "%v", set.Err())

	// Nothing listens on the proxy URL
	unreachable := client.VerifyPage(context.Background())
	require.False(t, unreachable.IsOk())
	assert.Equal(t, usecase.KindVerifyPageOther, unreachable.Kind())
}

func TestNewBridgeClientInvalidConfig(t *testing.T) {
	cfg := testConfig()
	cfg.Codec = "xml"

	_, _, err := newBridgeClient(cfg, log.Nop())
	assert.Error(t, err)
}

func TestMaskToken(t *testing.T) {
	assert.Equal(t, "****", maskToken("short"))
	assert.Equal(t, "secr****cdef", maskToken("secret_abcdef"))
}

func TestDisplayAddr(t *testing.T) {
	assert.Equal(t, "http://localhost:9999", displayAddr(":9999"))
	assert.Equal(t, "http://localhost:9998", displayAddr("localhost:9998"))
}
