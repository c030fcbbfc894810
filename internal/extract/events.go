package extract

import (
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/thebenkogan/ufcstats/internal/model"
	"github.com/thebenkogan/ufcstats/internal/parser"
)

const (
	eventDateLayout = "January 2, 2006"
	unknownWeight   = "Unknown"
)

// ParseEventList reads the completed events listing. Rows without a name or
// link are skipped; dates and locations are kept as raw text.
func ParseEventList(markup string) ([]model.EventSummary, error) {
	doc, err := newDocument("event list", markup)
	if err != nil {
		return nil, err
	}

	table := doc.Find("table.b-statistics__table-events")
	if table.Length() == 0 {
		return nil, &StructuralError{Page: "event list", Reason: "events table not found"}
	}

	events := make([]model.EventSummary, 0)
	table.Find("tr.b-statistics__table-row").Each(func(_ int, row *goquery.Selection) {
		link := row.Find("a.b-link").First()
		name := text(link)
		href, ok := link.Attr("href")
		href = strings.TrimSpace(href)
		if name == "" || !ok || href == "" {
			return
		}
		events = append(events, model.EventSummary{
			Name:         name,
			URL:          href,
			DateText:     text(row.Find("span.b-statistics__date").First()),
			LocationText: text(row.Find("td").Eq(1)),
		})
	})

	return events, nil
}

// EventPage is an event page before its fights' detail pages are read.
type EventPage struct {
	Name     string
	Date     *time.Time
	Location *string
	Fights   []model.FightSummary
}

// ParseEventDate parses the site's long date form. Malformed text yields nil.
func ParseEventDate(s string) *time.Time {
	t, err := time.Parse(eventDateLayout, parser.CollapseWhitespace(s))
	if err != nil {
		return nil
	}
	return &t
}

// ParseEventPage reads the event header and one summary per fight row.
func ParseEventPage(markup string) (EventPage, error) {
	doc, err := newDocument("event", markup)
	if err != nil {
		return EventPage{}, err
	}

	name := text(doc.Find("span.b-content__title-highlight").First())
	if name == "" {
		return EventPage{}, &StructuralError{Page: "event", Reason: "event title not found"}
	}

	page := EventPage{Name: name, Fights: make([]model.FightSummary, 0)}
	doc.Find("li.b-list__box-list-item").Each(func(_ int, item *goquery.Selection) {
		label := text(item.Find("i.b-list__box-item-title").First())
		value := strings.TrimSpace(strings.TrimPrefix(text(item), label))
		switch strings.ToLower(strings.TrimSuffix(label, ":")) {
		case "date":
			page.Date = ParseEventDate(value)
		case "location":
			page.Location = optional(value)
		}
	})

	doc.Find("tbody.b-fight-details__table-body tr.b-fight-details__table-row").Each(func(_ int, row *goquery.Selection) {
		if fight, ok := parseFightRow(row); ok {
			page.Fights = append(page.Fights, fight)
		}
	})

	return page, nil
}

// Columns of a fight row on the event page.
const (
	rowResult = iota
	rowFighters
	rowKnockdowns
	rowStrikes
	rowTakedowns
	rowSubmissions
	rowWeightClass
	rowMethod
	rowRound
	rowTime
)

func parseFightRow(row *goquery.Selection) (model.FightSummary, bool) {
	cells := row.Find("td")
	fighter1, fighter2 := parser.ParseNames(lines(cells.Eq(rowFighters).Find("p")))
	if fighter1 == "" || fighter2 == "" {
		return model.FightSummary{}, false
	}

	fight := model.FightSummary{
		Fighter1:    fighter1,
		Fighter2:    fighter2,
		WeightClass: text(cells.Eq(rowWeightClass)),
		Time:        text(cells.Eq(rowTime)),
	}
	if fight.WeightClass == "" {
		fight.WeightClass = unknownWeight
	}
	// winners are listed first, so a "win" flag always belongs to fighter1
	if strings.EqualFold(text(cells.Eq(rowResult).Find("i.b-flag__text").First()), "win") {
		w := fighter1
		fight.Winner = &w
	}
	if method := cells.Eq(rowMethod).Find("p").First(); method.Length() > 0 {
		fight.Method = text(method)
	} else {
		fight.Method = text(cells.Eq(rowMethod))
	}
	if round, ok := parser.ParseInt(text(cells.Eq(rowRound))); ok {
		fight.Round = round
	}
	if link, ok := row.Attr("data-link"); ok {
		fight.FightURL = strings.TrimSpace(link)
	}
	return fight, true
}
