package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/longkey1/exnota/internal/exnota/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	Long: `Show current configuration settings.

Displays the effective configuration from environment variables and the
config file. Secrets are masked.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfig()
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig() error {
	configDir, err := config.GetConfigDir()
	if err != nil {
		return fmt.Errorf("failed to get config directory: %w", err)
	}

	fmt.Println("Current Configuration")
	fmt.Println("=====================")
	fmt.Println()

	fmt.Println("Client")
	fmt.Println("------")
	fmt.Printf("Proxy URL:       %s\n", cfg.ProxyURL)
	fmt.Printf("App version:     %s\n", cfg.AppVersion)
	fmt.Printf("Store:           %s\n", cfg.Store)
	switch cfg.Store {
	case config.StoreFile:
		fmt.Printf("Store path:      %s\n", cfg.StorePath)
	case config.StoreRedis:
		fmt.Printf("Redis URL:       %s\n", maskToken(cfg.RedisURL))
	}
	fmt.Printf("Codec:           %s\n", cfg.Codec)
	if cfg.BackgroundURL != "" {
		fmt.Printf("Background URL:  %s\n", cfg.BackgroundURL)
	} else {
		fmt.Println("Background URL:  (not set, runs in process)")
	}
	fmt.Printf("Timeout:         %s\n", cfg.Timeout)
	fmt.Printf("Log level:       %s\n", cfg.LogLevel)
	fmt.Println()

	fmt.Println("Proxy server")
	fmt.Println("------------")
	fmt.Printf("Listen:          %s\n", cfg.Listen)
	if cfg.ClientID != "" {
		fmt.Printf("Client ID:       %s\n", maskToken(cfg.ClientID))
	} else {
		fmt.Println("Client ID:       (not set)")
	}
	if cfg.ClientSecret != "" {
		fmt.Println("Client Secret:   (set)")
	} else {
		fmt.Println("Client Secret:   (not set)")
	}
	fmt.Printf("Notion rate:     %v req/s\n", cfg.NotionRateLimit)
	fmt.Printf("Secure cookies:  %v\n", cfg.SecureCookies)
	fmt.Println()

	fmt.Println("Sources")
	fmt.Println("-------")

	for _, name := range []string{
		config.EnvPrefix + "_PROXY_URL",
		config.EnvPrefix + "_STORE",
		config.EnvPrefix + "_BACKGROUND_URL",
		config.EnvPrefix + "_CLIENT_ID",
		config.EnvPrefix + "_CLIENT_SECRET",
		"NOTION_CLIENT_ID",
		"NOTION_INTEGRATION_SECRET",
	} {
		if os.Getenv(name) != "" {
			fmt.Printf("%-26s set\n", name+":")
		}
	}

	configPath := filepath.Join(configDir, config.ConfigFileName+"."+config.ConfigFileType)
	if _, err := os.Stat(configPath); err == nil {
		fmt.Printf("Config file:               %s\n", configPath)
	} else {
		fmt.Println("Config file:               (not found)")
	}

	return nil
}

func maskToken(token string) string {
	if len(token) <= 8 {
		return "****"
	}
	return token[:4] + "****" + token[len(token)-4:]
}
