package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/thebenkogan/ufcstats/internal/cache"
	"github.com/thebenkogan/ufcstats/internal/events"
	"github.com/thebenkogan/ufcstats/internal/export"
	"github.com/thebenkogan/ufcstats/internal/model"
)

var eventJSON bool

func init() {
	eventCmd.Flags().BoolVar(&eventJSON, "json", false, "print the full report as JSON")
	rootCmd.AddCommand(eventCmd)
}

var eventCmd = &cobra.Command{
	Use:   "event <name|url>",
	Short: "Scrapes one event with the details of all its fights.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eventCache, closeCache := newCache()
		defer closeCache()

		report, err := loadReport(cmd, eventCache, args[0])
		if err != nil {
			return err
		}

		if eventJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(report)
		}
		printReport(report)
		return nil
	},
}

// loadReport resolves nameOrURL and scrapes the event, printing suggestions
// when the name matches no listed event.
func loadReport(cmd *cobra.Command, eventCache cache.EventCacheRepository, nameOrURL string) (*model.EventReport, error) {
	ctx, cancel := withTimeout(cmd.Context())
	defer cancel()

	scraper := newScraper()
	url, err := events.ResolveEventURL(ctx, scraper, eventCache, nameOrURL)
	if err != nil {
		var notFound *events.EventNotFoundError
		if errors.As(err, &notFound) && len(notFound.Suggestions) > 0 {
			fmt.Fprintln(os.Stderr, "Did you mean:")
			for _, s := range notFound.Suggestions {
				fmt.Fprintf(os.Stderr, "  %s\n", s.Name)
			}
		}
		return nil, err
	}
	return events.GetReportWithCache(ctx, scraper, eventCache, url)
}

func printReport(report *model.EventReport) {
	ev := report.Event
	date := "unknown date"
	if ev.Date != nil {
		date = ev.Date.Format("January 2, 2006")
	}
	location := "unknown location"
	if ev.Location != nil {
		location = *ev.Location
	}
	fmt.Printf("%s\n%s, %s\n", ev.Name, date, location)

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Bout", "Outcome", "Weight class", "Method", "Round", "Time", "Rounds"})
	for _, f := range ev.Fights {
		t.AppendRow(table.Row{f.Bout(), export.Outcome(f), f.WeightClass, f.Method, f.Round, f.Time, len(f.Rounds)})
	}
	t.SetStyle(table.StyleRounded)
	t.Render()

	if len(report.Failures) > 0 {
		ft := table.NewWriter()
		ft.SetOutputMirror(os.Stdout)
		ft.SetTitle("Fights without details")
		ft.AppendHeader(table.Row{"Bout", "Reason"})
		for _, f := range report.Failures {
			ft.AppendRow(table.Row{f.Bout, f.Reason})
		}
		ft.SetStyle(table.StyleRounded)
		ft.Render()
	}
	for _, gap := range report.Missing {
		fmt.Printf("%s: missing %v\n", gap.Bout, gap.Fields)
	}
}
