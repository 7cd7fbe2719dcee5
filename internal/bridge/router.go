package bridge

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/longkey1/exnota/internal/exnota"
	"github.com/longkey1/exnota/internal/log"
	"github.com/longkey1/exnota/internal/result"
	"github.com/longkey1/exnota/internal/usecase"
)

// Interactors are the operations the listener exposes
type Interactors struct {
	GetClientID interface {
		GetClientID(ctx context.Context) result.Result[string]
	}
	Connect interface {
		Connect(ctx context.Context, code, redirectURL string) result.Result[usecase.ConnectResponse]
	}
	SetPage interface {
		SetPage(ctx context.Context, id, title, url string) result.Result[result.Void]
	}
	VerifyPage interface {
		VerifyPage(ctx context.Context) result.Result[usecase.VerifyPageResponse]
	}
	GetToken interface {
		GetToken(ctx context.Context) result.Result[string]
	}
	SetToken interface {
		SetToken(ctx context.Context, token string) result.Result[exnota.OptionsConfig]
	}
}

// handlerFunc decodes a request body, runs an interactor and encodes its
// serialized result
type handlerFunc func(ctx context.Context, logger *log.Logger, body []byte) ([]byte, error)

// Router is the listener side of the bridge. It is also the in-process
// Transport.
type Router struct {
	codec    Codec
	handlers map[Method]handlerFunc
	logger   *log.Logger
}

// NewRouter creates a router dispatching to in
func NewRouter(codec Codec, in Interactors, logger *log.Logger) *Router {
	r := &Router{
		codec:    codec,
		handlers: map[Method]handlerFunc{},
		logger:   logger.Named("MessageListener"),
	}

	listen(r, MethodGetClientID, "getClientId", func(ctx context.Context, _ empty) result.Result[string] {
		return in.GetClientID.GetClientID(ctx)
	})
	listen(r, MethodConnect, "connect", func(ctx context.Context, req ConnectRequest) result.Result[usecase.ConnectResponse] {
		return in.Connect.Connect(ctx, req.Code, req.RedirectURL)
	})
	listen(r, MethodSetPage, "setPage", func(ctx context.Context, req SetPageRequest) result.Result[result.Void] {
		return in.SetPage.SetPage(ctx, req.ID, req.Title, req.URL)
	})
	listen(r, MethodVerifyPage, "verifyPage", func(ctx context.Context, _ empty) result.Result[usecase.VerifyPageResponse] {
		return in.VerifyPage.VerifyPage(ctx)
	})
	listen(r, MethodGetToken, "getToken", func(ctx context.Context, _ empty) result.Result[string] {
		return in.GetToken.GetToken(ctx)
	})
	// the stored options never cross the bridge, the token is in them
	listen(r, MethodSetToken, "setToken", func(ctx context.Context, req SetTokenRequest) result.Result[result.Void] {
		res := in.SetToken.SetToken(ctx, req.Token)
		if !res.IsOk() {
			return result.Forward[result.Void](res)
		}
		return result.Ok(result.Void{})
	})

	return r
}

func listen[Req, Resp any](r *Router, method Method, name string, fn func(context.Context, Req) result.Result[Resp]) {
	r.handlers[method] = func(ctx context.Context, logger *log.Logger, body []byte) ([]byte, error) {
		var req Req
		if len(body) > 0 {
			if err := r.codec.Unmarshal(body, &req); err != nil {
				return nil, fmt.Errorf("failed to decode %s request: %w", method, err)
			}
		}

		step := logger.Trace("Calling " + name + " interactor")
		res := fn(ctx, req)
		step.Outcome(res.Err())
		if !res.IsOk() {
			logger.Error("Error result", log.ErrorFields(res.Err()))
		}

		data, err := r.codec.Marshal(result.Serialize(res))
		if err != nil {
			return nil, fmt.Errorf("failed to encode %s response: %w", method, err)
		}
		return data, nil
	}
}

// RoundTrip dispatches msg in process
func (r *Router) RoundTrip(ctx context.Context, msg Message) ([]byte, error) {
	handler, ok := r.handlers[msg.Method]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownMethod, msg.Method)
	}
	logger := r.logger.With(map[string]any{"message_id": msg.ID, "method": string(msg.Method)})
	return handler(ctx, logger, msg.Body)
}

// Handler serves the router over HTTP at POST /bridge/{method}
func (r *Router) Handler() http.Handler {
	mux := chi.NewRouter()
	mux.Use(middleware.RealIP)
	mux.Use(middleware.Recoverer)

	mux.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.Post("/bridge/{method}", r.serveHTTP)
	return mux
}

func (r *Router) serveHTTP(w http.ResponseWriter, req *http.Request) {
	body, err := io.ReadAll(req.Body)
	if err != nil {
		http.Error(w, "failed to read body", http.StatusBadRequest)
		return
	}

	id := req.Header.Get(HeaderMessageID)
	if id == "" {
		id = uuid.NewString()
	}

	data, err := r.RoundTrip(req.Context(), Message{
		ID:     id,
		Method: Method(chi.URLParam(req, "method")),
		Body:   body,
	})
	if errors.Is(err, ErrUnknownMethod) {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	if err != nil {
		r.logger.Warn("Could not handle message", log.ErrorFields(err))
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", r.codec.ContentType())
	w.Header().Set(HeaderMessageID, id)
	_, _ = w.Write(data)
}
