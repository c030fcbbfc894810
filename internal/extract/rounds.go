package extract

import (
	"slices"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/thebenkogan/ufcstats/internal/model"
	"github.com/thebenkogan/ufcstats/internal/parser"
)

type cellKind int

const (
	countCell cellKind = iota
	tallyCell
	durationCell
)

// column binds a cell position of a per-round table to the stat it fills.
// Exactly one of the setters is used, according to kind.
type column struct {
	index    int
	kind     cellKind
	count    func(*model.StatBlock, int)
	tally    func(*model.StatBlock, model.Tally)
	duration func(*model.StatBlock, int)
}

// Column order of the "Totals" per-round table:
// Fighter, KD, Sig. str., Sig. str. %, Total str., Td, Td %, Sub. att, Rev., Ctrl
var totalsColumns = []column{
	{index: 1, kind: countCell, count: func(b *model.StatBlock, n int) { b.Knockdowns = n }},
	{index: 2, kind: tallyCell, tally: func(b *model.StatBlock, t model.Tally) { b.Significant = t }},
	{index: 4, kind: tallyCell, tally: func(b *model.StatBlock, t model.Tally) { b.Total = t }},
	{index: 5, kind: tallyCell, tally: func(b *model.StatBlock, t model.Tally) { b.Takedowns = t }},
	{index: 7, kind: countCell, count: func(b *model.StatBlock, n int) { b.SubmissionAttempts = n }},
	{index: 8, kind: countCell, count: func(b *model.StatBlock, n int) { b.Reversals = n }},
	{index: 9, kind: durationCell, duration: func(b *model.StatBlock, s int) { b.ControlSeconds = s }},
}

// Column order of the "Significant Strikes" per-round table:
// Fighter, Sig. str, Sig. str. %, Head, Body, Leg, Distance, Clinch, Ground
var targetColumns = []column{
	{index: 3, kind: tallyCell, tally: func(b *model.StatBlock, t model.Tally) { b.Head = t }},
	{index: 4, kind: tallyCell, tally: func(b *model.StatBlock, t model.Tally) { b.Body = t }},
	{index: 5, kind: tallyCell, tally: func(b *model.StatBlock, t model.Tally) { b.Leg = t }},
	{index: 6, kind: tallyCell, tally: func(b *model.StatBlock, t model.Tally) { b.Distance = t }},
	{index: 7, kind: tallyCell, tally: func(b *model.StatBlock, t model.Tally) { b.Clinch = t }},
	{index: 8, kind: tallyCell, tally: func(b *model.StatBlock, t model.Tally) { b.Ground = t }},
}

func (c column) apply(cells []string, f1, f2 *model.StatBlock) {
	if c.index >= len(cells) {
		return
	}
	cell := cells[c.index]
	switch c.kind {
	case countCell:
		a, b := parser.ParseCounts(cell)
		c.count(f1, a)
		c.count(f2, b)
	case tallyCell:
		a, b := parser.ParseTallies(cell)
		c.tally(f1, a)
		c.tally(f2, b)
	case durationCell:
		a, b := parser.ParseDurations(cell)
		c.duration(f1, a)
		c.duration(f2, b)
	}
}

// AssembleRounds builds one RoundStat per data row of the totals table, the
// row position giving the round number, then merges the by-target breakdown
// row at the same position. When the tables disagree on the number of rounds
// every round either of them has is kept, with zeros for what the other lacks.
func AssembleRounds(totals, byTarget [][]string) []model.RoundStat {
	n := max(len(totals), len(byTarget))
	rounds := make([]model.RoundStat, n)
	for i := range rounds {
		rounds[i].Round = i + 1
	}
	for i, cells := range totals {
		for _, c := range totalsColumns {
			c.apply(cells, &rounds[i].Fighter1, &rounds[i].Fighter2)
		}
	}
	for i, cells := range byTarget {
		for _, c := range targetColumns {
			c.apply(cells, &rounds[i].Fighter1, &rounds[i].Fighter2)
		}
	}
	slices.SortFunc(rounds, func(a, b model.RoundStat) int {
		return a.Round - b.Round
	})
	return rounds
}

type roundTable struct {
	heading string
	table   *goquery.Selection
}

// roundTables finds the tables offered through a "Per round" link. The first
// is the totals table; the by-target table is the first later one filed under
// a "Significant Strikes" heading.
func roundTables(doc *goquery.Document) (totals, byTarget *goquery.Selection) {
	var found []roundTable
	heading := ""
	doc.Find("p.b-fight-details__collapse-link_tot, a.b-fight-details__collapse-link_rnd").Each(func(_ int, s *goquery.Selection) {
		if s.Is("p") {
			heading = text(s)
			return
		}
		if !strings.Contains(strings.ToLower(text(s)), "per round") {
			return
		}
		section := s.Closest("section")
		if section.Length() == 0 {
			section = s.Parent()
		}
		table := section.NextAllFiltered("table").First()
		if table.Length() == 0 {
			return
		}
		found = append(found, roundTable{heading: heading, table: table})
	})

	if len(found) == 0 {
		return nil, nil
	}
	totals = found[0].table
	for _, rt := range found[1:] {
		if strings.Contains(strings.ToLower(rt.heading), "significant strikes") {
			byTarget = rt.table
			break
		}
	}
	return totals, byTarget
}

// tableRows returns the cell texts of each data row. Header rows carry th
// cells only and are skipped.
func tableRows(table *goquery.Selection) [][]string {
	if table == nil {
		return nil
	}
	var rows [][]string
	table.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		tds := tr.Find("td")
		if tds.Length() == 0 {
			return
		}
		cells := make([]string, 0, tds.Length())
		tds.Each(func(_ int, td *goquery.Selection) {
			cells = append(cells, cellText(td))
		})
		rows = append(rows, cells)
	})
	return rows
}

// cellText puts each fighter's value of a table cell on its own line.
func cellText(td *goquery.Selection) string {
	ps := td.Find("p")
	if ps.Length() == 0 {
		return td.Text()
	}
	parts := make([]string, 0, ps.Length())
	ps.Each(func(_ int, p *goquery.Selection) {
		v := text(p)
		if v == "" {
			// keeps the second fighter's value in second position
			v = "-"
		}
		parts = append(parts, v)
	})
	return strings.Join(parts, "\n")
}
