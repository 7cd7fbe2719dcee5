package cmd

import (
	"errors"
	"fmt"

	"github.com/longkey1/exnota/internal/bridge"
	"github.com/longkey1/exnota/internal/exnota/config"
	"github.com/longkey1/exnota/internal/log"
	"github.com/longkey1/exnota/internal/notion"
	"github.com/longkey1/exnota/internal/repo"
	"github.com/longkey1/exnota/internal/result"
	"github.com/longkey1/exnota/internal/service"
	"github.com/longkey1/exnota/internal/store"
	"github.com/longkey1/exnota/internal/usecase"
)

// openStore opens the store selected by the configuration
func openStore(cfg *config.Config) (store.Store, error) {
	s, err := store.Open(store.Options{
		Kind:     store.Kind(cfg.Store),
		Path:     cfg.StorePath,
		RedisURL: cfg.RedisURL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}
	return s, nil
}

// newRouter wires repositories, services and interactors into a bridge router
func newRouter(cfg *config.Config, s store.Store, codec bridge.Codec, logger *log.Logger) *bridge.Router {
	authRepo := repo.NewAuthRepo(s, logger)
	optionsRepo := repo.NewOptionsRepo(s, logger)

	proxy := service.NewProxyClient(service.ProxyConfig{
		BaseURL:    cfg.ProxyURL,
		AppVersion: cfg.AppVersion,
		Timeout:    cfg.Timeout,
	}, repo.NewSessionRepo(s, logger), logger)
	validator := service.NewTokenValidator(notion.NewClient(cfg), logger)

	return bridge.NewRouter(codec, bridge.Interactors{
		GetClientID: usecase.NewGetClientIDInteractor(proxy, logger),
		Connect:     usecase.NewConnectInteractor(authRepo, optionsRepo, proxy, logger),
		SetPage:     usecase.NewSetPageInteractor(optionsRepo, logger),
		VerifyPage:  usecase.NewVerifyPageInteractor(optionsRepo, proxy, logger),
		GetToken:    usecase.NewGetTokenInteractor(optionsRepo, logger),
		SetToken:    usecase.NewSetTokenInteractor(optionsRepo, validator, logger),
	}, logger)
}

// newBridgeClient returns a client for the background listener. With
// background_url set it talks to a running `exnota background`; otherwise
// the listener runs in process. The returned func releases the store.
func newBridgeClient(cfg *config.Config, logger *log.Logger) (*bridge.Client, func(), error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	codec, err := bridge.NewCodec(cfg.Codec)
	if err != nil {
		return nil, nil, err
	}

	if cfg.BackgroundURL != "" {
		transport := bridge.NewHTTPTransport(cfg.BackgroundURL, codec, cfg.Timeout)
		return bridge.NewClient(transport, codec, logger), func() {}, nil
	}

	s, err := openStore(cfg)
	if err != nil {
		return nil, nil, err
	}
	router := newRouter(cfg, s, codec, logger)
	return bridge.NewClient(router, codec, logger), func() { _ = s.Close() }, nil
}

// ErrReported marks command errors that were already printed
var ErrReported = errors.New("error reported")

// check prints a failed result and converts it into a command error
func check[T any](r result.Result[T]) error {
	if r.IsOk() {
		return nil
	}
	_ = output.Failure(r.Err())
	return fmt.Errorf("%w: %s", ErrReported, r.Kind())
}
