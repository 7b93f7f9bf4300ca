package main

import (
	"fmt"
	"os"

	"github.com/nbd-wtf/go-nostr"
	"github.com/spf13/cobra"

	"github.com/user/fedwallet/internal/config"
	"github.com/user/fedwallet/pkg/wallet"
)

func init() {
	rootCmd.AddCommand(setupCmd)
	setupCmd.Flags().String("private-key", "", "use an existing hex private key instead of generating one")
}

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Generate or import a wallet key",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		if cfg.PrivateKey != "" {
			return fmt.Errorf("a private key is already configured; remove it from %s first", cfgPath)
		}

		key, _ := cmd.Flags().GetString("private-key")
		if key == "" {
			key = nostr.GeneratePrivateKey()
		}
		signer, err := wallet.NewPrivateKeySigner(key)
		if err != nil {
			return fmt.Errorf("invalid private key: %w", err)
		}

		cfg.PrivateKey = key
		if err := config.Save(cfgPath, cfg); err != nil {
			return err
		}

		fmt.Fprintf(os.Stdout, "Wallet key saved to %s\n", cfgPath)
		fmt.Fprintf(os.Stdout, "Public key: %s\n", signer.Public())
		return nil
	},
}
