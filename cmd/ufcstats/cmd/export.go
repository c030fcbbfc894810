package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/thebenkogan/ufcstats/internal/export"
	"github.com/thebenkogan/ufcstats/internal/model"
)

var exportDir string

func init() {
	exportCmd.Flags().StringVarP(&exportDir, "out", "o", ".", "directory the csv files are written to")
	rootCmd.AddCommand(exportCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export <name|url>",
	Short: "Writes fights.csv and fight_stats.csv for one event.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eventCache, closeCache := newCache()
		defer closeCache()

		report, err := loadReport(cmd, eventCache, args[0])
		if err != nil {
			return err
		}
		if err := os.MkdirAll(exportDir, 0o755); err != nil {
			return err
		}

		files := []struct {
			name  string
			write func(io.Writer, model.EventRecord) error
		}{
			{"fights.csv", export.WriteFights},
			{"fight_stats.csv", export.WriteFightStats},
		}
		for _, f := range files {
			path := filepath.Join(exportDir, f.name)
			if err := writeFile(path, report.Event, f.write); err != nil {
				return err
			}
			slog.Info("wrote export", "path", path)
		}
		if !report.Complete() {
			fmt.Fprintf(os.Stderr, "%d fights exported without details, rerun later to complete them\n", len(report.Failures))
		}
		return nil
	},
}

func writeFile(path string, ev model.EventRecord, write func(io.Writer, model.EventRecord) error) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(file, ev); err != nil {
		file.Close()
		return fmt.Errorf("error writing %s: %w", path, err)
	}
	return file.Close()
}
