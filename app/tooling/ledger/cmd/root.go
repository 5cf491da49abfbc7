// Package cmd contains the ledger client app.
package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/ardanlabs/ledger/foundation/blockchain/network"
	"github.com/spf13/cobra"
)

var (
	nodeHost  string
	adminHost string
	timeout   time.Duration
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&nodeHost, "node", "n", "localhost:8080", "Public host of the node.")
	rootCmd.PersistentFlags().StringVarP(&adminHost, "admin", "a", "localhost:9080", "Private host of the node.")
	rootCmd.PersistentFlags().DurationVarP(&timeout, "timeout", "t", time.Minute, "How long to wait for the node.")
}

var rootCmd = &cobra.Command{
	Use:          "ledger",
	Short:        "Client for a proof of work ledger node",
	SilenceUsage: true,
}

// Execute runs the command selected on the command line.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newClient() *network.Client {
	return network.NewClient(timeout)
}

func requestContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), timeout)
}

func printJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}

	_, err = fmt.Fprintln(w, string(data))
	return err
}
