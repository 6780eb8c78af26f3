package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ppiankov/libris/internal/worker"
)

var warmTimeout time.Duration

var warmCmd = &cobra.Command{
	Use:   "warm <file>",
	Short: "Pre-fetch posts into the cache",
	Long: `Warm fetches every post slug listed in a file (one per line, '#' comments
allowed) so the first page views are served from the cache.

Example:
  libris warm slugs.txt
  libris warm slugs.txt --concurrency 8`,
	Args: cobra.ExactArgs(1),
	RunE: runWarm,
}

func init() {
	rootCmd.AddCommand(warmCmd)

	warmCmd.Flags().Int("concurrency", 4, "number of concurrent workers")
	warmCmd.Flags().DurationVar(&warmTimeout, "timeout", 10*time.Minute, "total timeout for warming")
	_ = viper.BindPFlag("concurrency.workers", warmCmd.Flags().Lookup("concurrency"))
}

func runWarm(cmd *cobra.Command, args []string) error {
	file := args[0]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if !cfg.Cache.Enabled {
		return fmt.Errorf("cache is disabled; nothing to warm")
	}

	client, err := newStoreClient(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), warmTimeout)
	defer cancel()

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Input file:   %s\n", file)
	fmt.Fprintf(os.Stderr, "  Workers:      %d\n", cfg.Concurrency.Workers)
	fmt.Fprintf(os.Stderr, "  Cache dir:    %s\n", cfg.Cache.DiskDir)
	fmt.Fprintf(os.Stderr, "\n")

	processor := worker.NewWarmProcessor(client, cfg.Concurrency.Workers)
	results, err := processor.WarmFile(ctx, file)
	if err != nil {
		return err
	}

	var found, missing, failed int
	for _, result := range results {
		switch {
		case result.Error != nil:
			failed++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", result.Slug, result.Error)
		case !result.Found:
			missing++
			fmt.Fprintf(os.Stderr, "? %s: no article found\n", result.Slug)
		default:
			found++
			if verbose {
				fmt.Fprintf(os.Stderr, "✓ %s\n", result.Slug)
			}
		}
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Total:     %d slugs\n", len(results))
	fmt.Fprintf(os.Stderr, "  Cached:    %d\n", found)
	fmt.Fprintf(os.Stderr, "  Missing:   %d\n", missing)
	fmt.Fprintf(os.Stderr, "  Failures:  %d\n", failed)
	fmt.Fprintf(os.Stderr, "\n")

	if failed > 0 {
		return fmt.Errorf("%d of %d slugs failed", failed, len(results))
	}
	return nil
}
