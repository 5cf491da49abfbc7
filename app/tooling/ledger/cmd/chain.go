package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var chainCmd = &cobra.Command{
	Use:   "chain",
	Short: "Show the full chain held by the node",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := requestContext(cmd)
		defer cancel()

		chain, err := newClient().Chain(ctx, nodeHost)
		if err != nil {
			return err
		}

		return printJSON(cmd.OutOrStdout(), chain)
	},
}

var blockCmd = &cobra.Command{
	Use:   "block <index>",
	Short: "Show a single block",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		index, err := strconv.ParseUint(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid block index %q", args[0])
		}

		ctx, cancel := requestContext(cmd)
		defer cancel()

		block, err := newClient().Block(ctx, nodeHost, index)
		if err != nil {
			return err
		}

		return printJSON(cmd.OutOrStdout(), block)
	},
}

var pendingCmd = &cobra.Command{
	Use:   "pending",
	Short: "Show the transactions waiting for the next block",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := requestContext(cmd)
		defer cancel()

		resp, err := newClient().Pending(ctx, nodeHost)
		if err != nil {
			return err
		}

		return printJSON(cmd.OutOrStdout(), resp)
	},
}

func init() {
	rootCmd.AddCommand(chainCmd)
	rootCmd.AddCommand(blockCmd)
	rootCmd.AddCommand(pendingCmd)
}
