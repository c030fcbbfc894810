package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"github.com/thebenkogan/ufcstats/internal/cache"
	"github.com/thebenkogan/ufcstats/internal/config"
	"github.com/thebenkogan/ufcstats/internal/events"
	"github.com/thebenkogan/ufcstats/internal/fetch"
)

var cfg config.Config

var (
	concurrency int
	timeout     time.Duration
	retries     int
	verbose     bool
)

var rootCmd = &cobra.Command{
	Use:           "ufcstats",
	Short:         "ufcstats scrapes events, fights and per-round statistics from ufcstats.com.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load()
		if err != nil {
			return err
		}
		cfg = loaded

		flags := cmd.Flags()
		if flags.Changed("concurrency") {
			cfg.Concurrency = concurrency
		}
		if flags.Changed("retries") {
			cfg.Retries = retries
		}
		if flags.Changed("timeout") {
			cfg.Timeout = timeout
		}

		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().IntVar(&concurrency, "concurrency", 4, "fight pages fetched at once")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 2*time.Minute, "overall time limit of a scrape, 0 for none")
	rootCmd.PersistentFlags().IntVar(&retries, "retries", 2, "retries of a failed page request")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debug output")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newScraper() *events.UFCStatsScraper {
	opts := []fetch.Option{fetch.WithRequestTimeout(cfg.RequestTimeout)}
	if cfg.UserAgent != "" {
		opts = append(opts, fetch.WithUserAgent(cfg.UserAgent))
	}
	fetcher := fetch.NewRetryFetcher(fetch.NewCollyFetcher(opts...), cfg.Retries)
	return events.NewUFCStatsScraper(
		fetcher,
		events.WithBaseURL(cfg.BaseURL),
		events.WithConcurrency(cfg.Concurrency),
	)
}

// newCache connects to Redis when it is configured. The returned func releases
// the connection.
func newCache() (cache.EventCacheRepository, func()) {
	addr := cfg.RedisAddr()
	if addr == "" {
		return cache.NopEventCache{}, func() {}
	}
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	return cache.NewRedisEventCache(rdb), func() { rdb.Close() }
}

func withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if cfg.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, cfg.Timeout)
}
