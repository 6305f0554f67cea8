package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:           "cachectl",
		Short:         "Inspect and maintain the guidebot response cache",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	var backend string
	root.PersistentFlags().StringVar(&backend, "backend", "", "override CACHE_BACKEND (postgres, redis, sqlite)")

	root.AddCommand(
		newStatsCmd(&backend),
		newClearCmd(&backend),
		newCleanupCmd(&backend),
		newTokenCmd(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := root.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
