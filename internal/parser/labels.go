package parser

import (
	"fmt"
	"regexp"
	"strings"
)

// Labels of the fight details block. Each extractor below owns one label so a
// change in the site's wording only touches that function.
var (
	methodLabel     = regexp.MustCompile(`(?i)\bMethod:`)
	roundLabel      = regexp.MustCompile(`(?i)\bRound:`)
	timeLabel       = regexp.MustCompile(`(?i)\bTime:`)
	timeFormatLabel = regexp.MustCompile(`(?i)\bTime format:`)
	refereeLabel    = regexp.MustCompile(`(?i)\bReferee:`)
	detailsLabel    = regexp.MustCompile(`(?i)\bDetails:`)

	knownLabels = []*regexp.Regexp{methodLabel, roundLabel, timeLabel, timeFormatLabel, refereeLabel, detailsLabel}

	blankLineRegex  = regexp.MustCompile(`\n[ \t\r]*\n`)
	judgeScoreRegex = regexp.MustCompile(`(\d+)\s*-\s*(\d+)`)
)

// valueAfter returns the text following label up to the next known label.
func valueAfter(text string, label *regexp.Regexp) (string, bool) {
	loc := label.FindStringIndex(text)
	if loc == nil {
		return "", false
	}
	rest := text[loc[1]:]
	end := len(rest)
	for _, stop := range knownLabels {
		if l := stop.FindStringIndex(rest); l != nil && l[0] < end {
			end = l[0]
		}
	}
	value := CollapseWhitespace(rest[:end])
	return value, value != ""
}

func optional(value string, ok bool) *string {
	if !ok {
		return nil
	}
	return &value
}

// ExtractMethod reads the "Method:" value, which runs up to the "Round:" label.
func ExtractMethod(text string) *string {
	return optional(valueAfter(text, methodLabel))
}

// ExtractRound reads the first integer after "Round:".
func ExtractRound(text string) *int {
	value, ok := valueAfter(text, roundLabel)
	if !ok {
		return nil
	}
	n, ok := ParseInt(value)
	if !ok {
		return nil
	}
	return &n
}

// ExtractTime reads the "Time:" value. The pattern requires the colon right
// after the word, so the "Time format:" label never matches it.
func ExtractTime(text string) *string {
	return optional(valueAfter(text, timeLabel))
}

func ExtractTimeFormat(text string) *string {
	return optional(valueAfter(text, timeFormatLabel))
}

func ExtractReferee(text string) *string {
	return optional(valueAfter(text, refereeLabel))
}

// ExtractDetails reads the "Details:" text up to the first blank line. Decision
// pages without the label still carry judge scores, which are used instead.
func ExtractDetails(text string) *string {
	if loc := detailsLabel.FindStringIndex(text); loc != nil {
		rest := strings.TrimLeft(text[loc[1]:], " \t\r\n")
		if b := blankLineRegex.FindStringIndex(rest); b != nil {
			rest = rest[:b[0]]
		}
		if details := CollapseWhitespace(rest); details != "" {
			return &details
		}
	}
	return ExtractJudgeScores(text)
}

// ExtractJudgeScores joins every "N - M" score found in text.
func ExtractJudgeScores(text string) *string {
	matches := judgeScoreRegex.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}
	scores := make([]string, 0, len(matches))
	for _, m := range matches {
		scores = append(scores, fmt.Sprintf("%s - %s", m[1], m[2]))
	}
	joined := strings.Join(scores, ", ")
	return &joined
}
