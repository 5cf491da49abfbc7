package cmd

import (
	"github.com/spf13/cobra"
)

var peersCmd = &cobra.Command{
	Use:   "peers",
	Short: "Manage the peers known by the node",
}

var peersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the known peers",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := requestContext(cmd)
		defer cancel()

		resp, err := newClient().ListPeers(ctx, adminHost)
		if err != nil {
			return err
		}

		return printJSON(cmd.OutOrStdout(), resp)
	},
}

var peersRegisterCmd = &cobra.Command{
	Use:   "register <address>...",
	Short: "Register the public address of one or more peers",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := requestContext(cmd)
		defer cancel()

		resp, err := newClient().RegisterPeers(ctx, adminHost, args)
		if err != nil {
			return err
		}

		return printJSON(cmd.OutOrStdout(), resp)
	},
}

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Replace the node chain with the longest valid chain of its peers",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := requestContext(cmd)
		defer cancel()

		resp, err := newClient().Resolve(ctx, adminHost)
		if err != nil {
			return err
		}

		return printJSON(cmd.OutOrStdout(), resp)
	},
}

func init() {
	rootCmd.AddCommand(peersCmd)
	rootCmd.AddCommand(resolveCmd)
	peersCmd.AddCommand(peersListCmd)
	peersCmd.AddCommand(peersRegisterCmd)
}
