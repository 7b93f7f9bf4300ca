package main

import (
	"context"
	"fmt"
	"math/big"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/user/fedwallet/pkg/cards"
	"github.com/user/fedwallet/pkg/wallet"
)

func init() {
	rootCmd.AddCommand(cardsCmd)
	cardsCmd.AddCommand(cardsListCmd, cardsEnableCmd, cardsDisableCmd, cardsLimitCmd)

	cardsLimitCmd.Flags().String("token", "BTC", "token identifier")
	cardsLimitCmd.Flags().Int64("amount", 0, "limit amount in millisats (required)")
	cardsLimitCmd.Flags().String("type", cards.LimitTypeTransaction, "limit type: transaction, seconds, minutes, hours, days, weeks, months, years")
	cardsLimitCmd.Flags().Int64("time", 1, "number of time units the limit covers")
	_ = cardsLimitCmd.MarkFlagRequired("amount")
}

func openCards(ctx context.Context) (*wallet.Wallet, *cards.Set, error) {
	w, err := openWallet(ctx, loadConfig())
	if err != nil {
		return nil, nil, err
	}
	set, err := w.Cards(ctx)
	if err != nil {
		return nil, nil, err
	}
	return w, set, nil
}

var cardsCmd = &cobra.Command{
	Use:   "cards",
	Short: "Manage cards",
}

var cardsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the wallet's cards",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		_, set, err := openCards(ctx)
		if err != nil {
			return err
		}

		list := set.Cards()
		if len(list) == 0 {
			fmt.Println("No cards found.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "UUID\tNAME\tSTATUS\tLIMITS")
		for _, card := range list {
			status := "DISABLED"
			if card.Enabled() {
				status = "ENABLED"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\n",
				card.UUID(),
				card.Design().Name,
				status,
				len(card.Payload().Limits),
			)
		}
		return w.Flush()
	},
}

var cardsEnableCmd = &cobra.Command{
	Use:   "enable <uuid>",
	Short: "Enable a card",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		_, set, err := openCards(ctx)
		if err != nil {
			return err
		}
		card, err := set.Card(args[0])
		if err != nil {
			return err
		}
		if err := card.Enable(ctx); err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "Card %s enabled.\n", args[0])
		return nil
	},
}

var cardsDisableCmd = &cobra.Command{
	Use:   "disable <uuid>",
	Short: "Disable a card",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		_, set, err := openCards(ctx)
		if err != nil {
			return err
		}
		card, err := set.Card(args[0])
		if err != nil {
			return err
		}
		if err := card.Disable(ctx); err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "Card %s disabled.\n", args[0])
		return nil
	},
}

var cardsLimitCmd = &cobra.Command{
	Use:   "limit <uuid>",
	Short: "Add a spending limit to a card",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		token, _ := cmd.Flags().GetString("token")
		amount, _ := cmd.Flags().GetInt64("amount")
		limitType, _ := cmd.Flags().GetString("type")
		limitTime, _ := cmd.Flags().GetInt64("time")

		ctx := context.Background()
		_, set, err := openCards(ctx)
		if err != nil {
			return err
		}
		card, err := set.Card(args[0])
		if err != nil {
			return err
		}

		err = card.AddLimit(ctx, cards.LimitParams{
			TokenID:   token,
			Amount:    big.NewInt(amount),
			LimitType: limitType,
			LimitTime: limitTime,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "Limit added to card %s.\n", args[0])
		return nil
	},
}
