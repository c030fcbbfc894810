package cmd

import (
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/thebenkogan/ufcstats/internal/events"
)

var eventsLimit int

func init() {
	eventsCmd.Flags().IntVar(&eventsLimit, "limit", 20, "number of events to list, 0 for all")
	rootCmd.AddCommand(eventsCmd)
}

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Lists completed events, most recent first.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := withTimeout(cmd.Context())
		defer cancel()

		eventCache, closeCache := newCache()
		defer closeCache()

		list, err := events.GetEventsWithCache(ctx, newScraper(), eventCache)
		if err != nil {
			return err
		}
		if eventsLimit > 0 && len(list) > eventsLimit {
			list = list[:eventsLimit]
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"#", "Event", "Date", "Location"})
		for i, e := range list {
			t.AppendRow(table.Row{i + 1, e.Name, e.DateText, e.LocationText})
		}
		t.SetStyle(table.StyleRounded)
		t.Render()
		return nil
	},
}
