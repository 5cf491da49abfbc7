package cmd

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/ardanlabs/ledger/foundation/blockchain/network"
	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"
)

var blocksOnly bool

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Stream the events of the node",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		u := url.URL{Scheme: "ws", Host: nodeHost, Path: network.RouteEvents}

		conn, _, err := websocket.DefaultDialer.DialContext(cmd.Context(), u.String(), nil)
		if err != nil {
			return fmt.Errorf("dial %s: %w", u.String(), err)
		}
		defer conn.Close()

		for {
			_, msg, err := conn.ReadMessage()
			if err != nil {
				if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					return nil
				}
				return fmt.Errorf("read event: %w", err)
			}

			event := string(msg)
			if blocksOnly && !strings.HasPrefix(event, "viewer: block:") {
				continue
			}

			fmt.Fprintln(cmd.OutOrStdout(), event)
		}
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().BoolVarP(&blocksOnly, "blocks", "b", false, "Only show new blocks.")
}
