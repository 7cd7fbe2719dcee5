package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/longkey1/exnota/internal/exnota/config"
	"github.com/longkey1/exnota/internal/format"
	"github.com/longkey1/exnota/internal/log"
)

type rootOptions struct {
	logLevel string
	format   string
}

var (
	rootOpts = &rootOptions{}

	// Set by PersistentPreRunE for every subcommand
	cfg    *config.Config
	logger *log.Logger
	output *format.Formatter
)

var rootCmd = &cobra.Command{
	Use:   "exnota",
	Short: "Save highlights to a Notion page",
	Long: `exnota connects a Notion workspace and keeps track of the page
highlights are saved to.

The OAuth exchange runs through the exnota proxy (exnota serve), which keeps
the Notion access token in an HTTP-only session cookie. An integration token
can be used instead with exnota token set.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if rootOpts.logLevel != "" {
			cfg.LogLevel = rootOpts.logLevel
		}
		logger = log.New(cfg.LogLevel)

		f, err := format.ParseFormat(rootOpts.format)
		if err != nil {
			return err
		}
		output = format.NewFormatter(f, os.Stdout)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootOpts.logLevel, "log-level", "", "Log level: debug, info, warn, error (overrides log_level)")
	rootCmd.PersistentFlags().StringVarP(&rootOpts.format, "format", "f", string(format.FormatText), "Output format: json, text, table")
}
