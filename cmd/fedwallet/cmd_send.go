package main

import (
	"context"
	"fmt"
	"os"

	"github.com/nbd-wtf/go-nostr"
	"github.com/spf13/cobra"

	"github.com/user/fedwallet/pkg/wallet"
)

func init() {
	rootCmd.AddCommand(sendCmd)
	sendCmd.Flags().String("to", "", "receiver: walias, lightning address, or hex pubkey (required)")
	sendCmd.Flags().Int64("amount", 0, "amount in millisats (required)")
	sendCmd.Flags().String("token", "BTC", "token identifier")
	sendCmd.Flags().String("comment", "", "memo attached to the transfer")
	_ = sendCmd.MarkFlagRequired("to")
	_ = sendCmd.MarkFlagRequired("amount")
}

var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Send an internal transfer",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		to, _ := cmd.Flags().GetString("to")
		amount, _ := cmd.Flags().GetInt64("amount")
		token, _ := cmd.Flags().GetString("token")
		comment, _ := cmd.Flags().GetString("comment")

		ctx := context.Background()
		w, err := openWallet(ctx, loadConfig())
		if err != nil {
			return err
		}

		var rejected bool
		params := wallet.SendParams{
			TokenID: token,
			Amount:  amount,
			Comment: comment,
			OnError: func(reason string) {
				rejected = true
				fmt.Fprintf(os.Stderr, "ledger rejected transfer: %s\n", reason)
			},
		}

		// A 64-character hex string is a raw pubkey; anything else goes
		// through handle resolution.
		var event *nostr.Event
		if len(to) == 64 && isHex(to) {
			params.ReceiverPubkey = to
			event, err = w.SendInternal(ctx, params)
		} else {
			event, err = w.SendTo(ctx, to, params)
		}
		if err != nil {
			return err
		}
		switch {
		case rejected:
			return fmt.Errorf("transfer rejected by the ledger")
		case event == nil:
			fmt.Println("Transfer published; no ledger response yet. Check `fedwallet transactions` later.")
		default:
			fmt.Println("Transfer settled.")
		}
		return nil
	},
}

func isHex(s string) bool {
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'f', r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}
