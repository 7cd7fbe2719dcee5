package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/longkey1/exnota/internal/bridge"
	"github.com/longkey1/exnota/internal/log"
	"github.com/longkey1/exnota/internal/notion"
	"github.com/longkey1/exnota/internal/proxy"
)

const (
	defaultBackgroundAddr = "localhost:9998"
	shutdownTimeout       = 10 * time.Second
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the OAuth proxy server",
	Long: `Run the OAuth proxy server.

The proxy holds the OAuth client secret, exchanges authorization codes for
Notion grants and reads pages with the token kept in the caller's session
cookie. Prometheus metrics are served on /metrics.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.ValidateServer(); err != nil {
			return err
		}

		server := proxy.NewServer(notion.NewClient(cfg), proxy.Config{
			ClientID:      cfg.ClientID,
			SecureCookies: cfg.SecureCookies,
		}, logger)
		return listenAndServe(cmd.Context(), cfg.Listen, server.Handler(), logger.Named("ProxyServer"))
	},
}

type backgroundOptions struct {
	addr string
}

var backgroundOpts = &backgroundOptions{}

var backgroundCmd = &cobra.Command{
	Use:   "background",
	Short: "Run the background listener other exnota processes message",
	Long: `Run the background listener.

Commands run with background_url set (EXNOTA_BACKGROUND_URL) send their
requests here instead of handling them in process.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate(); err != nil {
			return err
		}
		codec, err := bridge.NewCodec(cfg.Codec)
		if err != nil {
			return err
		}
		s, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer s.Close()

		router := newRouter(cfg, s, codec, logger)
		return listenAndServe(cmd.Context(), backgroundOpts.addr, router.Handler(), logger.Named("BackgroundServer"))
	},
}

func init() {
	backgroundCmd.Flags().StringVar(&backgroundOpts.addr, "addr", defaultBackgroundAddr, "Listen address")
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(backgroundCmd)
}

// listenAndServe serves handler on addr until SIGINT or SIGTERM
func listenAndServe(ctx context.Context, addr string, handler http.Handler, logger *log.Logger) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Listening", map[string]any{"addr": addr, "url": displayAddr(addr)})
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("failed to serve on %s: %w", addr, err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down: %w", err)
	}
	return nil
}

// displayAddr turns a listen address into a URL for messages
func displayAddr(addr string) string {
	if strings.HasPrefix(addr, ":") {
		return "http://localhost" + addr
	}
	return "http://" + addr
}
