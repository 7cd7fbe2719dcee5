package bridge

import (
	"context"

	"github.com/google/uuid"

	"github.com/longkey1/exnota/internal/log"
	"github.com/longkey1/exnota/internal/result"
	"github.com/longkey1/exnota/internal/usecase"
)

// Client is the sender side of the bridge
type Client struct {
	transport Transport
	codec     Codec
	logger    *log.Logger
}

// NewClient creates a client sending over t
func NewClient(t Transport, codec Codec, logger *log.Logger) *Client {
	return &Client{transport: t, codec: codec, logger: logger.Named("MessageSender")}
}

// GetClientID asks for the public OAuth client id
func (c *Client) GetClientID(ctx context.Context) result.Result[string] {
	return send[empty, string](ctx, c, MethodGetClientID, empty{})
}

// Connect asks the listener to connect with an OAuth code
func (c *Client) Connect(ctx context.Context, code, redirectURL string) result.Result[usecase.ConnectResponse] {
	return send[ConnectRequest, usecase.ConnectResponse](ctx, c, MethodConnect, ConnectRequest{
		Code:        code,
		RedirectURL: redirectURL,
	})
}

// SetPage asks the listener to store the destination page
func (c *Client) SetPage(ctx context.Context, id, title, url string) result.Result[result.Void] {
	return send[SetPageRequest, result.Void](ctx, c, MethodSetPage, SetPageRequest{ID: id, Title: title, URL: url})
}

// VerifyPage asks the listener for the connection status
func (c *Client) VerifyPage(ctx context.Context) result.Result[usecase.VerifyPageResponse] {
	return send[empty, usecase.VerifyPageResponse](ctx, c, MethodVerifyPage, empty{})
}

// GetToken asks for the stored integration token
func (c *Client) GetToken(ctx context.Context) result.Result[string] {
	return send[empty, string](ctx, c, MethodGetToken, empty{})
}

// SetToken asks the listener to validate and store an integration token
func (c *Client) SetToken(ctx context.Context, token string) result.Result[result.Void] {
	return send[SetTokenRequest, result.Void](ctx, c, MethodSetToken, SetTokenRequest{Token: token})
}

func send[Req, Resp any](ctx context.Context, c *Client, method Method, req Req) result.Result[Resp] {
	id := uuid.NewString()
	logger := c.logger.With(map[string]any{"message_id": id, "method": string(method)})
	meta := result.Metadata{"method": string(method), "message_id": id}

	step := logger.Trace("Sending message")
	body, err := c.codec.Marshal(req)
	if err != nil {
		res := result.Fail[Resp](KindMessagingError, "Error encoding message via "+string(method), err, meta)
		step.Outcome(res.Err())
		return res
	}

	data, err := c.transport.RoundTrip(ctx, Message{ID: id, Method: method, Body: body})
	if err != nil {
		res := result.Fail[Resp](KindMessagingError, "Error sending message via "+string(method), err, meta)
		step.Outcome(res.Err())
		return res
	}

	var serialized result.Serialized[Resp]
	if err := c.codec.Unmarshal(data, &serialized); err != nil {
		res := result.Fail[Resp](KindMessagingError, "Error decoding response via "+string(method), err, meta)
		step.Outcome(res.Err())
		return res
	}
	step.Finish()

	return serialized.Result()
}
