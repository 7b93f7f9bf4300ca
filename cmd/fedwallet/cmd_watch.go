package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/user/fedwallet/internal/watcher"
)

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().String("token", "BTC", "token identifier")
	watchCmd.Flags().String("schedule", "@every 30s", "cron schedule for refreshes")
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the wallet and print changes as they land",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		token, _ := cmd.Flags().GetString("token")
		schedule, _ := cmd.Flags().GetString("schedule")

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		w, err := openWallet(ctx, loadConfig())
		if err != nil {
			return err
		}

		watch := watcher.New(w, token, func(change watcher.Change) {
			if change.Current.Balance != change.Previous.Balance {
				fmt.Fprintf(os.Stdout, "[%s] balance %d -> %d\n",
					change.Current.Taken.Format(time.TimeOnly),
					change.Previous.Balance,
					change.Current.Balance)
			}
			for _, tx := range change.NewTransactions {
				fmt.Fprintf(os.Stdout, "[%s] %s %s %s %q\n",
					change.Current.Taken.Format(time.TimeOnly),
					tx.Status,
					tx.Direction,
					tx.Type,
					tx.Memo)
			}
		})
		if err := watch.Start(ctx, schedule); err != nil {
			return err
		}
		defer watch.Stop()

		fmt.Fprintf(os.Stdout, "Watching wallet %s (schedule %s). Ctrl-C to stop.\n", w.Pubkey(), schedule)

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan
		return nil
	},
}
