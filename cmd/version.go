package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/longkey1/exnota/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version information",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println(version.GetFull())
		return nil
	},
}

var clientIDCmd = &cobra.Command{
	Use:   "client-id",
	Short: "Print the OAuth client id published by the proxy",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, closeFn, err := newBridgeClient(cfg, logger)
		if err != nil {
			return err
		}
		defer closeFn()

		clientID := client.GetClientID(cmd.Context())
		if err := check(clientID); err != nil {
			return err
		}
		fmt.Println(clientID.Value())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(clientIDCmd)
}
