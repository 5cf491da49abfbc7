package cmd

import (
	"github.com/ardanlabs/ledger/foundation/blockchain/network"
	"github.com/spf13/cobra"
)

var (
	sender    string
	recipient string
	amount    float64
)

var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Submit a transaction",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := requestContext(cmd)
		defer cancel()

		ntx := network.NewTx{
			Sender:    sender,
			Recipient: recipient,
			Amount:    &amount,
		}

		resp, err := newClient().SubmitTransaction(ctx, nodeHost, ntx)
		if err != nil {
			return err
		}

		return printJSON(cmd.OutOrStdout(), resp)
	},
}

func init() {
	rootCmd.AddCommand(sendCmd)
	sendCmd.Flags().StringVarP(&sender, "sender", "s", "", "Who is sending the amount.")
	sendCmd.Flags().StringVarP(&recipient, "recipient", "r", "", "Who is receiving the amount.")
	sendCmd.Flags().Float64VarP(&amount, "amount", "v", 0, "Amount to send.")
	sendCmd.MarkFlagRequired("sender")
	sendCmd.MarkFlagRequired("recipient")
	sendCmd.MarkFlagRequired("amount")
}
