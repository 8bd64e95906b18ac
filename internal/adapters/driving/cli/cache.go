package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect or reset the processed-document record",
}

var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show how many documents each source has processed",
	RunE:  runCacheStats,
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Forget every processed document so the next scrape starts fresh",
	RunE:  runCacheClear,
}

func init() {
	cacheCmd.AddCommand(cacheStatsCmd)
	cacheCmd.AddCommand(cacheClearCmd)
	rootCmd.AddCommand(cacheCmd)
}

func runCacheStats(cmd *cobra.Command, _ []string) error {
	if err := ensureApp(); err != nil {
		return err
	}
	defer closeApp()

	stats, err := processedStore.Stats(cmd.Context())
	if err != nil {
		return fmt.Errorf("cache stats: %w", err)
	}

	cmd.Printf("Processed documents: %d\n", stats.Total)

	names := make([]string, 0, len(stats.BySource))
	for name := range stats.BySource {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		cmd.Printf("  %-12s %d\n", name, stats.BySource[name])
	}
	return nil
}

func runCacheClear(cmd *cobra.Command, _ []string) error {
	if err := ensureApp(); err != nil {
		return err
	}
	defer closeApp()

	if err := processedStore.Clear(cmd.Context()); err != nil {
		return fmt.Errorf("cache clear: %w", err)
	}
	cmd.Println("Processed-document record cleared.")
	return nil
}
