package cmd

import (
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"

	"github.com/spf13/cobra"
	"github.com/thebenkogan/ufcstats/internal/server"
)

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves scraped events as JSON and CSV over HTTP.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

		eventCache, closeCache := newCache()
		defer closeCache()
		if cfg.RedisAddr() == "" {
			slog.Warn("REDIS_HOST not set, event reports are not cached")
		}

		srv := &http.Server{
			Addr:    net.JoinHostPort("", cfg.Port),
			Handler: server.NewServer(newScraper(), eventCache),
		}
		slog.Info("listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	},
}
