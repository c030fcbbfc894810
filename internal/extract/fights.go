package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/thebenkogan/ufcstats/internal/model"
	"github.com/thebenkogan/ufcstats/internal/parser"
)

const winnerMarkerClass = "b-fight-details__person-status_style_green"

// ParseFightDetail reads a fight page. Each field is looked up on its own; a
// missing section leaves its field nil without affecting the others.
func ParseFightDetail(markup string) (model.FightDetail, error) {
	doc, err := newDocument("fight", markup)
	if err != nil {
		return model.FightDetail{}, err
	}

	persons := doc.Find("div.b-fight-details__person")
	content := doc.Find("div.b-fight-details__content").First()
	if persons.Length() == 0 && content.Length() == 0 {
		return model.FightDetail{}, &StructuralError{Page: "fight", Reason: "no fighters or fight details found"}
	}

	var detail model.FightDetail
	persons.Slice(0, min(persons.Length(), 2)).Each(func(i int, person *goquery.Selection) {
		name := optional(text(person.Find(".b-fight-details__person-name").First()))
		if i == 0 {
			detail.Fighter1 = name
		} else {
			detail.Fighter2 = name
		}
		if name != nil && person.Find("i.b-fight-details__person-status").HasClass(winnerMarkerClass) {
			detail.Winner = name
		}
	})

	paragraphs := content.Find("p.b-fight-details__text")
	meta := paragraphs.First().Text()
	detail.Method = parser.ExtractMethod(meta)
	detail.Round = parser.ExtractRound(meta)
	detail.Time = parser.ExtractTime(meta)
	detail.TimeFormat = parser.ExtractTimeFormat(meta)
	detail.Referee = parser.ExtractReferee(meta)

	if paragraphs.Length() > 1 {
		var rest []string
		paragraphs.Slice(1, goquery.ToEnd).Each(func(_ int, p *goquery.Selection) {
			rest = append(rest, lines(p))
		})
		detail.Details = parser.ExtractDetails(strings.Join(rest, "\n\n"))
	}

	totals, byTarget := roundTables(doc)
	detail.Rounds = AssembleRounds(tableRows(totals), tableRows(byTarget))

	return detail, nil
}

// MissingFields names the optional fields a fight page did not provide. The
// winner is left out: draws and no contests legitimately have none.
func MissingFields(d model.FightDetail) []string {
	var missing []string
	check := func(name string, absent bool) {
		if absent {
			missing = append(missing, name)
		}
	}
	check("fighter1", d.Fighter1 == nil)
	check("fighter2", d.Fighter2 == nil)
	check("method", d.Method == nil)
	check("round", d.Round == nil)
	check("time", d.Time == nil)
	check("time_format", d.TimeFormat == nil)
	check("referee", d.Referee == nil)
	check("details", d.Details == nil)
	check("rounds", len(d.Rounds) == 0)
	return missing
}
