package bridge

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// HeaderMessageID carries the correlation id of a bridge message over HTTP
const HeaderMessageID = "X-Message-ID"

// ErrUnknownMethod is returned for a method no handler is registered for
var ErrUnknownMethod = errors.New("unknown bridge method")

// Message is one encoded request
type Message struct {
	ID     string
	Method Method
	Body   []byte
}

// Transport delivers a message to the listener and returns the encoded
// response
type Transport interface {
	RoundTrip(ctx context.Context, msg Message) ([]byte, error)
}

// HTTPTransport delivers messages to a Router served over HTTP
type HTTPTransport struct {
	baseURL    string
	codec      Codec
	httpClient *http.Client
}

// Verify transports implement Transport
var (
	_ Transport = (*HTTPTransport)(nil)
	_ Transport = (*Router)(nil)
)

// NewHTTPTransport creates a transport posting to baseURL
func NewHTTPTransport(baseURL string, codec Codec, timeout time.Duration) *HTTPTransport {
	return &HTTPTransport{
		baseURL:    strings.TrimRight(baseURL, "/"),
		codec:      codec,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// RoundTrip posts the message to /bridge/{method}
func (t *HTTPTransport) RoundTrip(ctx context.Context, msg Message) ([]byte, error) {
	url := fmt.Sprintf("%s/bridge/%s", t.baseURL, msg.Method)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(msg.Body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", t.codec.ContentType())
	req.Header.Set(HeaderMessageID, msg.ID)

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
		return body, nil
	case http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", ErrUnknownMethod, msg.Method)
	default:
		return nil, fmt.Errorf("bridge error (status %d): %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
}
