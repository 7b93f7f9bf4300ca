package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/nbd-wtf/go-nostr"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(transactionsCmd)
	transactionsCmd.Flags().Int("limit", 20, "maximum number of events to fetch per filter")
	transactionsCmd.Flags().String("since", "", "only include transactions after this time (RFC 3339)")
}

var transactionsCmd = &cobra.Command{
	Use:     "transactions",
	Aliases: []string{"tx"},
	Short:   "List reconciled transactions",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		since, _ := cmd.Flags().GetString("since")

		base := nostr.Filter{Limit: limit}
		if since != "" {
			t, err := time.Parse(time.RFC3339, since)
			if err != nil {
				return fmt.Errorf("parse --since: %w", err)
			}
			ts := nostr.Timestamp(t.Unix())
			base.Since = &ts
		}

		ctx := context.Background()
		w, err := openWallet(ctx, loadConfig())
		if err != nil {
			return err
		}

		txs, err := w.Transactions(ctx, base)
		if err != nil {
			return err
		}
		if len(txs) == 0 {
			fmt.Println("No transactions found.")
			return nil
		}

		tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tSTATUS\tDIRECTION\tTYPE\tAMOUNT\tMEMO\tCREATED")
		for _, tx := range txs {
			var amount int64
			for _, n := range tx.Tokens {
				amount += n
			}
			fmt.Fprintf(tw, "%.8s\t%s\t%s\t%s\t%d\t%s\t%s\n",
				tx.ID,
				tx.Status,
				tx.Direction,
				tx.Type,
				amount,
				tx.Memo,
				time.UnixMilli(tx.CreatedAt).Format("2006-01-02 15:04:05"),
			)
		}
		return tw.Flush()
	},
}
