package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/longkey1/exnota/internal/bridge"
	"github.com/longkey1/exnota/internal/exnota"
	"github.com/longkey1/exnota/internal/notion/api"
	"github.com/longkey1/exnota/internal/usecase"
)

const (
	defaultCallbackPort = 8080
	callbackTimeout     = 5 * time.Minute
)

type connectOptions struct {
	port      int
	noBrowser bool
}

var connectOpts = &connectOptions{}

var connectCmd = &cobra.Command{
	Use:     "connect",
	Aliases: []string{"auth"},
	Short:   "Connect a Notion workspace using OAuth",
	Long: `Connect a Notion workspace using OAuth.

Opens the Notion authorization page, waits for the redirect on a local
callback server and hands the code to the proxy. When exactly one page was
shared it becomes the destination; otherwise you are asked to pick one.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConnect(cmd.Context(), connectOpts)
	},
}

func init() {
	connectCmd.Flags().IntVarP(&connectOpts.port, "port", "p", defaultCallbackPort, "Local callback server port")
	connectCmd.Flags().BoolVar(&connectOpts.noBrowser, "no-browser", false, "Print the authorization URL without opening a browser")
	rootCmd.AddCommand(connectCmd)
}

func runConnect(ctx context.Context, opts *connectOptions) error {
	client, closeFn, err := newBridgeClient(cfg, logger)
	if err != nil {
		return err
	}
	defer closeFn()

	clientID := client.GetClientID(ctx)
	if err := check(clientID); err != nil {
		return err
	}

	server, err := exnota.NewCallbackServer(opts.port)
	if err != nil {
		return err
	}
	defer server.Close()

	state, err := exnota.GenerateState()
	if err != nil {
		return fmt.Errorf("failed to generate state: %w", err)
	}

	redirectURL := server.RedirectURL()
	authURL := api.AuthURL(clientID.Value(), redirectURL, state)

	fmt.Printf("If the browser doesn't open, visit this URL:\n%s\n\n", authURL)
	if !opts.noBrowser {
		if err := openBrowser(authURL); err != nil {
			fmt.Printf("Failed to open browser: %v\n", err)
		}
	}

	fmt.Println("Waiting for authorization...")

	waitCtx, cancel := context.WithTimeout(ctx, callbackTimeout)
	defer cancel()

	code, err := server.Wait(waitCtx, state)
	if err != nil {
		return fmt.Errorf("authorization failed: %w", err)
	}

	connected := client.Connect(ctx, code, redirectURL)
	if err := check(connected); err != nil {
		return err
	}

	resp := connected.Value()
	if err := output.Connect(resp); err != nil {
		return err
	}
	if resp.Status != usecase.StatusMultiplePages {
		return nil
	}

	page, ok := choosePage(resp.Pages)
	if !ok {
		fmt.Println("No page chosen. Run `exnota set-page <id> <title> <url>` later.")
		return nil
	}
	return setPage(ctx, client, page)
}

// choosePage asks the user to pick one of pages by number
func choosePage(pages []exnota.Page) (exnota.Page, bool) {
	fmt.Printf("Page number [1-%d]: ", len(pages))
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		return exnota.Page{}, false
	}
	n, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil || n < 1 || n > len(pages) {
		return exnota.Page{}, false
	}
	return pages[n-1], true
}

func setPage(ctx context.Context, client *bridge.Client, page exnota.Page) error {
	if err := check(client.SetPage(ctx, page.ID, page.Title, page.URL)); err != nil {
		return err
	}
	fmt.Printf("Highlights will be saved to %s\n", page.Title)
	return nil
}

func openBrowser(url string) error {
	var cmd string
	var args []string

	switch runtime.GOOS {
	case "darwin":
		cmd = "open"
		args = []string{url}
	case "linux":
		cmd = "xdg-open"
		args = []string{url}
	case "windows":
		cmd = "rundll32"
		args = []string{"url.dll,FileProtocolHandler", url}
	default:
		return fmt.Errorf("unsupported platform")
	}

	return exec.Command(cmd, args...).Start()
}
