package cmd

import (
	"github.com/spf13/cobra"

	"github.com/longkey1/exnota/internal/exnota"
)

var setPageCmd = &cobra.Command{
	Use:   "set-page <id> <title> <url>",
	Short: "Set the page highlights are saved to",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, closeFn, err := newBridgeClient(cfg, logger)
		if err != nil {
			return err
		}
		defer closeFn()

		return setPage(cmd.Context(), client, exnota.Page{ID: args[0], Title: args[1], URL: args[2]})
	},
}

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check that the destination page is still reachable",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, closeFn, err := newBridgeClient(cfg, logger)
		if err != nil {
			return err
		}
		defer closeFn()

		verified := client.VerifyPage(cmd.Context())
		if err := check(verified); err != nil {
			return err
		}
		return output.Verify(verified.Value())
	},
}

func init() {
	rootCmd.AddCommand(setPageCmd)
	rootCmd.AddCommand(verifyCmd)
}
