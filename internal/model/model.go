package model

import "time"

// EventSummary is one row of the completed events listing. Date and location
// are kept as raw text; they are only parsed from the event page itself.
type EventSummary struct {
	Name         string `json:"name"`
	URL          string `json:"url"`
	DateText     string `json:"date_text"`
	LocationText string `json:"location_text"`
}

type EventRecord struct {
	Name string `json:"name"`
	// nil when the date text on the event page could not be parsed.
	Date     *time.Time `json:"date,omitempty"`
	Location *string    `json:"location,omitempty"`
	Fights   []Fight    `json:"fights"`
}

// FightSummary is a fight as listed on its event page.
type FightSummary struct {
	Fighter1    string  `json:"fighter1"`
	Fighter2    string  `json:"fighter2"`
	Winner      *string `json:"winner,omitempty"`
	WeightClass string  `json:"weight_class"`
	Method      string  `json:"method"`
	Round       int     `json:"round"`
	Time        string  `json:"time"`
	FightURL    string  `json:"fight_url"`
}

// FightDetail is everything read from a fight's own page. Each field comes from
// an independent section of the page and is nil when that section is missing.
type FightDetail struct {
	Fighter1   *string     `json:"fighter1,omitempty"`
	Fighter2   *string     `json:"fighter2,omitempty"`
	Winner     *string     `json:"winner,omitempty"`
	Method     *string     `json:"method,omitempty"`
	Round      *int        `json:"round,omitempty"`
	Time       *string     `json:"time,omitempty"`
	TimeFormat *string     `json:"time_format,omitempty"`
	Referee    *string     `json:"referee,omitempty"`
	Details    *string     `json:"details,omitempty"`
	Rounds     []RoundStat `json:"rounds"`
}

// Fight is the event level view of a bout: the listing row plus whatever the
// detail page contributed. Rounds is empty, never nil, when no detail was read.
type Fight struct {
	FightSummary
	TimeFormat *string     `json:"time_format,omitempty"`
	Referee    *string     `json:"referee,omitempty"`
	Details    *string     `json:"details,omitempty"`
	Rounds     []RoundStat `json:"rounds"`
}

type RoundStat struct {
	Round    int       `json:"round"`
	Fighter1 StatBlock `json:"fighter1"`
	Fighter2 StatBlock `json:"fighter2"`
}

type Tally struct {
	Landed    int `json:"landed"`
	Attempted int `json:"attempted"`
}

type StatBlock struct {
	Knockdowns         int   `json:"knockdowns"`
	SubmissionAttempts int   `json:"submission_attempts"`
	Reversals          int   `json:"reversals"`
	ControlSeconds     int   `json:"control_seconds"`
	Significant        Tally `json:"significant"`
	Total              Tally `json:"total"`
	Head               Tally `json:"head"`
	Body               Tally `json:"body"`
	Leg                Tally `json:"leg"`
	Distance           Tally `json:"distance"`
	Clinch             Tally `json:"clinch"`
	Ground             Tally `json:"ground"`
	Takedowns          Tally `json:"takedowns"`
}

// WithDetail combines the listing row with its detail page. Listing values are
// kept; the detail only supplies the winner when the listing had none.
func (s FightSummary) WithDetail(d FightDetail) Fight {
	if s.Winner == nil && d.Winner != nil {
		w := *d.Winner
		s.Winner = &w
	}
	rounds := make([]RoundStat, len(d.Rounds))
	copy(rounds, d.Rounds)
	return Fight{
		FightSummary: s,
		TimeFormat:   d.TimeFormat,
		Referee:      d.Referee,
		Details:      d.Details,
		Rounds:       rounds,
	}
}

func (s FightSummary) WithoutDetail() Fight {
	return Fight{FightSummary: s, Rounds: []RoundStat{}}
}

func (s FightSummary) Bout() string {
	return s.Fighter1 + " vs. " + s.Fighter2
}

// EventReport is the best-effort result of one event crawl together with the
// fights and fields that could not be extracted.
type EventReport struct {
	Event     EventRecord    `json:"event"`
	Failures  []FightFailure `json:"failures"`
	Missing   []FieldGap     `json:"missing"`
	ScrapedAt time.Time      `json:"scraped_at"`
}

// FightFailure records a fight whose detail page could not be fetched or parsed.
type FightFailure struct {
	FightURL string `json:"fight_url"`
	Bout     string `json:"bout"`
	Reason   string `json:"reason"`
}

// FieldGap lists the optional fields a detail page did not provide.
type FieldGap struct {
	FightURL string   `json:"fight_url"`
	Bout     string   `json:"bout"`
	Fields   []string `json:"fields"`
}

func (r *EventReport) Complete() bool {
	return len(r.Failures) == 0
}
