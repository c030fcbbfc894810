// Package export projects scraped events onto the flat fights and fight_stats
// tables consumed by the stats importer.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/thebenkogan/ufcstats/internal/model"
)

var FightHeader = []string{
	"EVENT", "BOUT", "OUTCOME", "WEIGHTCLASS", "METHOD", "ROUND", "TIME", "TIME FORMAT", "REFEREE", "DETAILS", "URL",
}

var StatHeader = []string{
	"EVENT", "BOUT", "ROUND", "FIGHTER", "KD", "SIG.STR.", "SIG.STR. %", "TOTAL STR.", "TD", "TD %",
	"SUB.ATT", "REV.", "CTRL", "HEAD", "BODY", "LEG", "DISTANCE", "CLINCH", "GROUND",
}

const noAttempts = "---"

// CalculatePercentage renders landed/attempted as a rounded percentage.
func CalculatePercentage(landed, attempted int) string {
	if attempted == 0 {
		return noAttempts
	}
	pct := math.Round(float64(landed) / float64(attempted) * 100)
	return fmt.Sprintf("%d%%", int(pct))
}

// FormatControlTime renders seconds as M:SS.
func FormatControlTime(seconds int) string {
	seconds = max(seconds, 0)
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

func formatTally(t model.Tally) string {
	return fmt.Sprintf("%d of %d", t.Landed, t.Attempted)
}

// Outcome gives both fighters' results, fighter1 first. A fight without a
// winner is a draw when it went to the judges and a no contest otherwise.
func Outcome(f model.Fight) string {
	if f.Winner != nil {
		if *f.Winner == f.Fighter2 {
			return "L/W"
		}
		return "W/L"
	}
	method := strings.ToLower(f.Method)
	if strings.Contains(method, "draw") || strings.Contains(method, "dec") {
		return "D/D"
	}
	return "NC/NC"
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func FightRows(ev model.EventRecord) [][]string {
	rows := make([][]string, 0, len(ev.Fights))
	for _, f := range ev.Fights {
		rows = append(rows, []string{
			ev.Name,
			f.Bout(),
			Outcome(f),
			f.WeightClass,
			f.Method,
			strconv.Itoa(f.Round),
			f.Time,
			deref(f.TimeFormat),
			deref(f.Referee),
			deref(f.Details),
			f.FightURL,
		})
	}
	return rows
}

// StatRows emits one row per fighter per round.
func StatRows(ev model.EventRecord) [][]string {
	var rows [][]string
	for _, f := range ev.Fights {
		for _, r := range f.Rounds {
			round := fmt.Sprintf("Round %d", r.Round)
			rows = append(rows,
				statRow(ev.Name, f.Bout(), round, f.Fighter1, r.Fighter1),
				statRow(ev.Name, f.Bout(), round, f.Fighter2, r.Fighter2),
			)
		}
	}
	return rows
}

func statRow(event, bout, round, fighter string, s model.StatBlock) []string {
	return []string{
		event,
		bout,
		round,
		fighter,
		strconv.Itoa(s.Knockdowns),
		formatTally(s.Significant),
		CalculatePercentage(s.Significant.Landed, s.Significant.Attempted),
		formatTally(s.Total),
		formatTally(s.Takedowns),
		CalculatePercentage(s.Takedowns.Landed, s.Takedowns.Attempted),
		strconv.Itoa(s.SubmissionAttempts),
		strconv.Itoa(s.Reversals),
		FormatControlTime(s.ControlSeconds),
		formatTally(s.Head),
		formatTally(s.Body),
		formatTally(s.Leg),
		formatTally(s.Distance),
		formatTally(s.Clinch),
		formatTally(s.Ground),
	}
}

func WriteFights(w io.Writer, ev model.EventRecord) error {
	return writeTable(w, FightHeader, FightRows(ev))
}

func WriteFightStats(w io.Writer, ev model.EventRecord) error {
	return writeTable(w, StatHeader, StatRows(ev))
}

func writeTable(w io.Writer, header []string, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write csv rows: %w", err)
	}
	return nil
}
