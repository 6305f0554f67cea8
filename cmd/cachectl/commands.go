package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"codeberg.org/guidebot/server/internal/responsecache"
	"github.com/spf13/cobra"
)

func newStatsCmd(backend *string) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show cache statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withAdmin(cmd.Context(), *backend, func(admin *responsecache.Admin) error {
				return runStats(cmd.Context(), admin, cmd.OutOrStdout(), asJSON)
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print statistics as JSON")
	return cmd
}

func newClearCmd(backend *string) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete every cache entry",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withAdmin(cmd.Context(), *backend, func(admin *responsecache.Admin) error {
				return runClear(cmd.Context(), admin, cmd.OutOrStdout())
			})
		},
	}
}

func newCleanupCmd(backend *string) *cobra.Command {
	return &cobra.Command{
		Use:   "cleanup",
		Short: "Delete expired cache entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withAdmin(cmd.Context(), *backend, func(admin *responsecache.Admin) error {
				return runCleanup(cmd.Context(), admin, cmd.OutOrStdout())
			})
		},
	}
}

func runStats(ctx context.Context, admin *responsecache.Admin, out io.Writer, asJSON bool) error {
	stats, err := admin.GetStats(ctx)
	if err != nil {
		return err
	}

	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(stats)
	}

	fmt.Fprintf(out, "Entries:         %d\n", stats.TotalEntries)
	fmt.Fprintf(out, "Expired:         %d\n", stats.ExpiredEntries)
	fmt.Fprintf(out, "Total hits:      %d\n", stats.TotalHits)
	fmt.Fprintf(out, "Hit rate:        %.1f%%\n", stats.HitRate)
	fmt.Fprintf(out, "Avg hits/entry:  %.2f\n", stats.AverageHitCount)
	return nil
}

func runClear(ctx context.Context, admin *responsecache.Admin, out io.Writer) error {
	deleted, err := admin.ClearAll(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Cleared %d cache entries.\n", deleted)
	return nil
}

func runCleanup(ctx context.Context, admin *responsecache.Admin, out io.Writer) error {
	deleted, err := admin.CleanupExpired(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Removed %d expired cache entries.\n", deleted)
	return nil
}
