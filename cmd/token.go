package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Manage the Notion integration token",
	Long: `Manage the Notion integration token.

An internal integration token can be used instead of connecting with OAuth.
The token is checked with Notion before it is saved.`,
}

var tokenGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Print the saved integration token",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, closeFn, err := newBridgeClient(cfg, logger)
		if err != nil {
			return err
		}
		defer closeFn()

		token := client.GetToken(cmd.Context())
		if err := check(token); err != nil {
			return err
		}
		if token.Value() == "" {
			fmt.Println("(not set)")
			return nil
		}
		fmt.Println(token.Value())
		return nil
	},
}

var tokenSetCmd = &cobra.Command{
	Use:   "set <token>",
	Short: "Validate and save an integration token",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, closeFn, err := newBridgeClient(cfg, logger)
		if err != nil {
			return err
		}
		defer closeFn()

		if err := check(client.SetToken(cmd.Context(), args[0])); err != nil {
			return err
		}
		fmt.Println("Token saved.")
		return nil
	},
}

func init() {
	tokenCmd.AddCommand(tokenGetCmd)
	tokenCmd.AddCommand(tokenSetCmd)
	rootCmd.AddCommand(tokenCmd)
}
