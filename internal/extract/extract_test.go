package extract

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"github.com/thebenkogan/ufcstats/internal/model"
)

func readFixture(t *testing.T, name string) string {
	t.Helper()
	b, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	return string(b)
}

func ptr[T any](v T) *T {
	return &v
}

func TestParseEventList(t *testing.T) {
	events, err := ParseEventList(readFixture(t, "events_completed.html"))
	require.NoError(t, err)

	want := []model.EventSummary{
		{
			Name:         "UFC 301: Pantoja vs. Erceg",
			URL:          "http://ufcstats.com/event-details/a9df5ae20a97b090",
			DateText:     "May 04, 2024",
			LocationText: "Rio de Janeiro, Rio de Janeiro, Brazil",
		},
		{
			Name:         "UFC 300: Pereira vs. Hill",
			URL:          "http://ufcstats.com/event-details/3c6976f8182d9527",
			DateText:     "April 13, 2024",
			LocationText: "Las Vegas, Nevada, USA",
		},
		{
			Name:         "UFC Fight Night: Allen vs. Curtis 2",
			URL:          "http://ufcstats.com/event-details/aec273ea5a0a6fa4",
			DateText:     "April 06, 2024",
			LocationText: "Las Vegas, Nevada, USA",
		},
	}
	if diff := cmp.Diff(want, events); diff != "" {
		t.Errorf("ParseEventList mismatch (-want +got):\n%s", diff)
	}
}

func TestParseEventDate(t *testing.T) {
	tests := []struct {
		text string
		want *time.Time
	}{
		{"April 13, 2024", ptr(time.Date(2024, time.April, 13, 0, 0, 0, 0, time.UTC))},
		{"  May 04,\n 2024 ", ptr(time.Date(2024, time.May, 4, 0, 0, 0, 0, time.UTC))},
		{"13/04/2024", nil},
		{"", nil},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("date text %q", tt.text), func(t *testing.T) {
			got := ParseEventDate(tt.text)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseEventPage(t *testing.T) {
	page, err := ParseEventPage(readFixture(t, "event_ufc300.html"))
	require.NoError(t, err)

	want := EventPage{
		Name:     "UFC 300: Pereira vs. Hill",
		Date:     ptr(time.Date(2024, time.April, 13, 0, 0, 0, 0, time.UTC)),
		Location: ptr("Las Vegas, Nevada, USA"),
		Fights: []model.FightSummary{
			{
				Fighter1:    "Alex Pereira",
				Fighter2:    "Jamahal Hill",
				Winner:      ptr("Alex Pereira"),
				WeightClass: "Light Heavyweight",
				Method:      "KO/TKO",
				Round:       1,
				Time:        "3:14",
				FightURL:    "http://ufcstats.com/fight-details/1c4f1a2b3d5e6f70",
			},
			{
				Fighter1:    "Renato Moicano",
				Fighter2:    "Jalin Turner",
				Winner:      ptr("Renato Moicano"),
				WeightClass: "Lightweight",
				Method:      "U-DEC",
				Round:       3,
				Time:        "5:00",
				FightURL:    "http://ufcstats.com/fight-details/9a8b7c6d5e4f3a2b",
			},
		},
	}
	if diff := cmp.Diff(want, page); diff != "" {
		t.Errorf("ParseEventPage mismatch (-want +got):\n%s", diff)
	}
}

const drawEventPage = `<html><body>
<span class="b-content__title-highlight">UFC Fight Night: Somewhere</span>
<ul>
  <li class="b-list__box-list-item"><i class="b-list__box-item-title">Date:</i> sometime soon</li>
</ul>
<table><tbody class="b-fight-details__table-body">
  <tr class="b-fight-details__table-row" data-link="http://ufcstats.com/fight-details/draw">
    <td><p><a class="b-flag"><i class="b-flag__text">draw</i></a></p></td>
    <td><p><a>Fighter A</a></p><p><a>Fighter B</a></p></td>
    <td></td><td></td><td></td><td></td>
    <td><p> </p></td>
    <td><p>M-DEC</p><p></p></td>
    <td><p>3</p></td>
    <td><p>5:00</p></td>
  </tr>
  <tr class="b-fight-details__table-row" data-link="http://ufcstats.com/fight-details/broken">
    <td></td><td><p><a>Only One</a></p></td>
  </tr>
</tbody></table>
</body></html>`

func TestParseEventPageDefaults(t *testing.T) {
	page, err := ParseEventPage(drawEventPage)
	require.NoError(t, err)

	if page.Date != nil {
		t.Errorf("expected nil date for malformed text, got %v", page.Date)
	}
	if page.Location != nil {
		t.Errorf("expected nil location, got %q", *page.Location)
	}
	require.Len(t, page.Fights, 1)

	fight := page.Fights[0]
	if fight.WeightClass != "Unknown" {
		t.Errorf("got weight class %q, want Unknown", fight.WeightClass)
	}
	if fight.Winner != nil {
		t.Errorf("expected no winner for a draw, got %q", *fight.Winner)
	}
	if fight.Method != "M-DEC" || fight.Round != 3 {
		t.Errorf("got method %q round %d", fight.Method, fight.Round)
	}
}

func TestParseFightDetail(t *testing.T) {
	detail, err := ParseFightDetail(readFixture(t, "fight_pereira_hill.html"))
	require.NoError(t, err)

	want := model.FightDetail{
		Fighter1:   ptr("Alex Pereira"),
		Fighter2:   ptr("Jamahal Hill"),
		Winner:     ptr("Alex Pereira"),
		Method:     ptr("KO/TKO"),
		Round:      ptr(1),
		Time:       ptr("3:14"),
		TimeFormat: ptr("5 Rnd (5-5-5-5-5)"),
		Referee:    ptr("Marc Goddard"),
		Details:    ptr("Punch to Head At Distance"),
		Rounds: []model.RoundStat{
			{
				Round: 1,
				Fighter1: model.StatBlock{
					Knockdowns:  1,
					Significant: model.Tally{Landed: 13, Attempted: 22},
					Total:       model.Tally{Landed: 13, Attempted: 22},
					Head:        model.Tally{Landed: 9, Attempted: 17},
					Body:        model.Tally{Landed: 2, Attempted: 3},
					Leg:         model.Tally{Landed: 2, Attempted: 2},
					Distance:    model.Tally{Landed: 12, Attempted: 21},
					Clinch:      model.Tally{Landed: 1, Attempted: 1},
				},
				Fighter2: model.StatBlock{
					ControlSeconds: 12,
					Significant:    model.Tally{Landed: 9, Attempted: 19},
					Total:          model.Tally{Landed: 9, Attempted: 19},
					Head:           model.Tally{Landed: 6, Attempted: 14},
					Body:           model.Tally{Landed: 1, Attempted: 2},
					Leg:            model.Tally{Landed: 2, Attempted: 3},
					Distance:       model.Tally{Landed: 9, Attempted: 19},
					Takedowns:      model.Tally{Landed: 0, Attempted: 1},
				},
			},
		},
	}
	if diff := cmp.Diff(want, detail); diff != "" {
		t.Errorf("ParseFightDetail mismatch (-want +got):\n%s", diff)
	}
	if missing := MissingFields(detail); len(missing) != 0 {
		t.Errorf("expected no missing fields, got %v", missing)
	}
}

func TestParseFightDetailDecision(t *testing.T) {
	detail, err := ParseFightDetail(readFixture(t, "fight_moicano_turner.html"))
	require.NoError(t, err)

	if got := *detail.Details; got != "Sal D'Amato 29 - 28. Derek Cleary 29 - 28. Mike Bell 30 - 27." {
		t.Errorf("got details %q", got)
	}
	if got := *detail.Method; got != "Decision - Unanimous" {
		t.Errorf("got method %q", got)
	}
	if got := *detail.TimeFormat; got != "3 Rnd (5-5-5)" {
		t.Errorf("got time format %q", got)
	}
	require.Len(t, detail.Rounds, 3)

	tests := []struct {
		round    int
		ctrl     int
		subs     int
		rev2     int
		ground   model.Tally
		takedown model.Tally
	}{
		{1, 105, 0, 0, model.Tally{Landed: 2, Attempted: 3}, model.Tally{Landed: 1, Attempted: 3}},
		{2, 130, 1, 0, model.Tally{Landed: 4, Attempted: 5}, model.Tally{Landed: 2, Attempted: 4}},
		{3, 30, 0, 1, model.Tally{}, model.Tally{Landed: 0, Attempted: 2}},
	}
	for i, tt := range tests {
		t.Run(fmt.Sprintf("round %d", tt.round), func(t *testing.T) {
			r := detail.Rounds[i]
			if r.Round != tt.round {
				t.Errorf("got round %d, want %d", r.Round, tt.round)
			}
			if r.Fighter1.ControlSeconds != tt.ctrl {
				t.Errorf("got control %d, want %d", r.Fighter1.ControlSeconds, tt.ctrl)
			}
			if r.Fighter1.SubmissionAttempts != tt.subs {
				t.Errorf("got submission attempts %d, want %d", r.Fighter1.SubmissionAttempts, tt.subs)
			}
			if r.Fighter2.Reversals != tt.rev2 {
				t.Errorf("got reversals %d, want %d", r.Fighter2.Reversals, tt.rev2)
			}
			if r.Fighter1.Ground != tt.ground {
				t.Errorf("got ground %+v, want %+v", r.Fighter1.Ground, tt.ground)
			}
			if r.Fighter1.Takedowns != tt.takedown {
				t.Errorf("got takedowns %+v, want %+v", r.Fighter1.Takedowns, tt.takedown)
			}
		})
	}
}

func TestParseFightDetailPartialPage(t *testing.T) {
	markup := `<html><body>
<div class="b-fight-details__person">
  <i class="b-fight-details__person-status b-fight-details__person-status_style_gray">D</i>
  <h3 class="b-fight-details__person-name"><a>Fighter A</a></h3>
</div>
<div class="b-fight-details__person">
  <i class="b-fight-details__person-status b-fight-details__person-status_style_gray">D</i>
  <h3 class="b-fight-details__person-name"><a>Fighter B</a></h3>
</div>
</body></html>`

	detail, err := ParseFightDetail(markup)
	require.NoError(t, err)

	if detail.Winner != nil {
		t.Errorf("expected no winner, got %q", *detail.Winner)
	}
	if detail.Rounds == nil || len(detail.Rounds) != 0 {
		t.Errorf("expected empty rounds, got %v", detail.Rounds)
	}
	want := []string{"method", "round", "time", "time_format", "referee", "details", "rounds"}
	if diff := cmp.Diff(want, MissingFields(detail)); diff != "" {
		t.Errorf("MissingFields mismatch (-want +got):\n%s", diff)
	}
}

func TestStructuralErrors(t *testing.T) {
	const notFound = `<html><body><h1>Page not found</h1></body></html>`

	tests := []struct {
		page  string
		parse func(string) error
	}{
		{"event list", func(m string) error { _, err := ParseEventList(m); return err }},
		{"event", func(m string) error { _, err := ParseEventPage(m); return err }},
		{"fight", func(m string) error { _, err := ParseFightDetail(m); return err }},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s page", tt.page), func(t *testing.T) {
			err := tt.parse(notFound)
			var se *StructuralError
			if !errors.As(err, &se) {
				t.Fatalf("expected *StructuralError, got %v", err)
			}
			if se.Page != tt.page {
				t.Errorf("got page %q, want %q", se.Page, tt.page)
			}
		})
	}
}
