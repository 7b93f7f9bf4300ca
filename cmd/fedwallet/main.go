package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/user/fedwallet/internal/config"
	"github.com/user/fedwallet/internal/relay"
	"github.com/user/fedwallet/pkg/execute"
	"github.com/user/fedwallet/pkg/wallet"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "fedwallet",
	Short: "Wallet client for federated nostr ledgers",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogging(loadConfig())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath,
		"config",
		filepath.Join(os.Getenv("HOME"), ".fedwallet", "config.json"),
		"config file path")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig() *config.Config {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

func setupLogging(cfg *config.Config) {
	var level slog.Level
	switch strings.ToLower(cfg.LogLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

// openWallet builds a Wallet with the relay pool transport from the
// loaded config. The config must carry a private key.
func openWallet(ctx context.Context, cfg *config.Config) (*wallet.Wallet, error) {
	if cfg.PrivateKey == "" {
		return nil, fmt.Errorf("no private key configured; run `fedwallet setup` or set FEDWALLET_PRIVATE_KEY")
	}
	signer, err := wallet.NewPrivateKeySigner(cfg.PrivateKey)
	if err != nil {
		return nil, fmt.Errorf("load private key: %w", err)
	}

	pool, err := relay.New(ctx, cfg.Federation.Relays)
	if err != nil {
		return nil, err
	}

	return wallet.New(wallet.Options{
		Federation: cfg.FederationConfig(),
		Signer:     signer,
		Publisher:  pool,
		Querier:    pool,
		Execute:    executeOptions(cfg),
	})
}

func executeOptions(cfg *config.Config) execute.Options {
	return execute.Options{
		PreDelay:     time.Duration(cfg.Execute.PreDelayMS) * time.Millisecond,
		QueryTimeout: time.Duration(cfg.Execute.QueryTimeoutMS) * time.Millisecond,
	}
}
