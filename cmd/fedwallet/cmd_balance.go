package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(balanceCmd, whoamiCmd)
	balanceCmd.Flags().String("token", "BTC", "token identifier")
}

var balanceCmd = &cobra.Command{
	Use:   "balance",
	Short: "Show the wallet balance",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		token, _ := cmd.Flags().GetString("token")

		ctx := context.Background()
		w, err := openWallet(ctx, loadConfig())
		if err != nil {
			return err
		}

		balance, err := w.Balance(ctx, token)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "%d %s (millisats)\n", balance, token)
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the wallet identity",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		w, err := openWallet(ctx, loadConfig())
		if err != nil {
			return err
		}

		identity := w.Identity()
		fmt.Fprintf(os.Stdout, "pubkey: %s\n", identity.Pubkey())
		if npub, err := identity.Npub(); err == nil {
			fmt.Fprintf(os.Stdout, "npub:   %s\n", npub)
		}
		if err := identity.Resolve(ctx); err == nil && identity.Username() != "" {
			fmt.Fprintf(os.Stdout, "walias: %s\n", identity.Walias())
		}
		return nil
	},
}
