package exnota

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net"
	"net/http"
	"sync"
)

// CallbackPath is the path the OAuth redirect lands on
const CallbackPath = "/callback"

// CallbackServer receives the OAuth redirect and captures the code
type CallbackServer struct {
	listener net.Listener
	once     sync.Once
	done     chan struct{}

	mu   sync.Mutex
	code string
	err  error
}

// NewCallbackServer listens on the given port. Port 0 picks a free port.
func NewCallbackServer(port int) (*CallbackServer, error) {
	listener, err := net.Listen("tcp", fmt.Sprintf("127.0.0.1:%d", port))
	if err != nil {
		return nil, fmt.Errorf("failed to start callback server: %w", err)
	}

	return &CallbackServer{
		listener: listener,
		done:     make(chan struct{}),
	}, nil
}

// Port returns the actual port the server is listening on
func (s *CallbackServer) Port() int {
	return s.listener.Addr().(*net.TCPAddr).Port
}

// RedirectURL returns the redirect URL to register with the authorization request
func (s *CallbackServer) RedirectURL() string {
	return fmt.Sprintf("http://localhost:%d%s", s.Port(), CallbackPath)
}

// Wait serves until the callback arrives or ctx is done and returns the code
func (s *CallbackServer) Wait(ctx context.Context, expectedState string) (string, error) {
	server := &http.Server{Handler: s.handler(expectedState)}

	go func() {
		_ = server.Serve(s.listener)
	}()

	select {
	case <-ctx.Done():
		_ = server.Shutdown(context.Background())
		return "", ctx.Err()
	case <-s.done:
		_ = server.Shutdown(context.Background())
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.code, s.err
}

// Close closes the listener
func (s *CallbackServer) Close() error {
	return s.listener.Close()
}

func (s *CallbackServer) handler(expectedState string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != CallbackPath {
			http.NotFound(w, r)
			return
		}

		query := r.URL.Query()
		w.Header().Set("Content-Type", "text/html")

		if errCode := query.Get("error"); errCode != "" {
			s.finish("", fmt.Errorf("OAuth error: %s", errCode))
			fmt.Fprint(w, `<html><body><h1>Authorization Failed</h1><p>You can close this window.</p></body></html>`)
			return
		}

		if expectedState != "" && query.Get("state") != expectedState {
			s.finish("", fmt.Errorf("state mismatch"))
			fmt.Fprint(w, `<html><body><h1>Authorization Failed</h1><p>State mismatch</p></body></html>`)
			return
		}

		code := query.Get("code")
		if code == "" {
			s.finish("", fmt.Errorf("no authorization code received"))
			fmt.Fprint(w, `<html><body><h1>Authorization Failed</h1><p>No authorization code received</p></body></html>`)
			return
		}

		s.finish(code, nil)
		fmt.Fprint(w, `<html><body><h1>Connected to Notion</h1><p>You can close this window and return to the terminal.</p></body></html>`)
	})
}

func (s *CallbackServer) finish(code string, err error) {
	s.once.Do(func() {
		s.mu.Lock()
		s.code = code
		s.err = err
		s.mu.Unlock()
		close(s.done)
	})
}

// GenerateState returns a random state value for CSRF protection
func GenerateState() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
