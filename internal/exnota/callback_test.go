package exnota

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitAsync(s *CallbackServer, state string) <-chan [2]any {
	ch := make(chan [2]any, 1)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		code, err := s.Wait(ctx, state)
		ch <- [2]any{code, err}
	}()
	return ch
}

func getEventually(t *testing.T, url string) {
	t.Helper()
	require.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		resp.Body.Close()
		return true
	}, 2*time.Second, 20*time.Millisecond)
}

func TestCallbackServerCapturesCode(t *testing.T) {
	s, err := NewCallbackServer(0)
	require.NoError(t, err)
	defer s.Close()

	ch := waitAsync(s, "xyz")
	getEventually(t, fmt.Sprintf("%s?code=abc123&state=xyz", s.RedirectURL()))

	got := <-ch
	assert.Equal(t, "abc123", got[0])
	assert.Nil(t, got[1])
}

func TestCallbackServerStateMismatch(t *testing.T) {
	s, err := NewCallbackServer(0)
	require.NoError(t, err)
	defer s.Close()

	ch := waitAsync(s, "expected")
	getEventually(t, fmt.Sprintf("%s?code=abc123&state=other", s.RedirectURL()))

	got := <-ch
	assert.Equal(t, "", got[0])
	assert.EqualError(t, got[1].(error), "state mismatch")
}

func TestCallbackServerContextDone(t *testing.T) {
	s, err := NewCallbackServer(0)
	require.NoError(t, err)
	defer s.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = s.Wait(ctx, "")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGenerateState(t *testing.T) {
	a, err := GenerateState()
	require.NoError(t, err)
	b, err := GenerateState()
	require.NoError(t, err)
	assert.Len(t, a, 32)
	assert.NotEqual(t, a, b)
}
