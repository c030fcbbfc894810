package parser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/thebenkogan/ufcstats/internal/model"
)

var (
	whitespaceRegex = regexp.MustCompile(`\s+`)
	tallyRegex      = regexp.MustCompile(`(\d+)\s+of\s+(\d+)`)
	durationRegex   = regexp.MustCompile(`^(\d+):(\d{2})$`)
	durationAnyRgx  = regexp.MustCompile(`\d+:\d{2}`)
	integerRegex    = regexp.MustCompile(`-?\d+`)
)

// CollapseWhitespace trims s and replaces every run of whitespace with a single space.
func CollapseWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRegex.ReplaceAllString(s, " "))
}

// SplitCell splits the text of a table cell holding one value per fighter.
// The site renders each fighter's value on its own line.
func SplitCell(text string) []string {
	var parts []string
	for _, line := range strings.Split(text, "\n") {
		line = CollapseWhitespace(line)
		if line != "" {
			parts = append(parts, line)
		}
	}
	return parts
}

func ParseCount(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}

// ParseTally reads "X of Y". Anything else is {0, 0}.
func ParseTally(s string) model.Tally {
	m := tallyRegex.FindStringSubmatch(s)
	if m == nil {
		return model.Tally{}
	}
	landed, _ := strconv.Atoi(m[1])
	attempted, _ := strconv.Atoi(m[2])
	return model.Tally{Landed: landed, Attempted: attempted}
}

// ParseDuration reads "M:SS" into seconds. Anything else is 0.
func ParseDuration(s string) int {
	m := durationRegex.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0
	}
	minutes, _ := strconv.Atoi(m[1])
	seconds, _ := strconv.Atoi(m[2])
	return minutes*60 + seconds
}

// ParseInt returns the first integer in s.
func ParseInt(s string) (int, bool) {
	m := integerRegex.FindString(s)
	if m == "" {
		return 0, false
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return 0, false
	}
	return n, true
}

func pair(parts []string) (string, string) {
	var a, b string
	if len(parts) > 0 {
		a = parts[0]
	}
	if len(parts) > 1 {
		b = parts[1]
	}
	return a, b
}

// ParseCounts splits a single-value cell into both fighters' integers.
func ParseCounts(cell string) (int, int) {
	a, b := pair(SplitCell(cell))
	return ParseCount(a), ParseCount(b)
}

// ParseTallies splits a compound "X of Y" cell into both fighters' tallies.
// A cell whose values were not broken onto separate lines is matched in order.
func ParseTallies(cell string) (model.Tally, model.Tally) {
	parts := SplitCell(cell)
	if len(parts) < 2 {
		parts = tallyRegex.FindAllString(cell, 2)
	}
	a, b := pair(parts)
	return ParseTally(a), ParseTally(b)
}

// ParseDurations splits a "M:SS" cell into both fighters' seconds.
func ParseDurations(cell string) (int, int) {
	parts := SplitCell(cell)
	if len(parts) < 2 {
		parts = durationAnyRgx.FindAllString(cell, 2)
	}
	a, b := pair(parts)
	return ParseDuration(a), ParseDuration(b)
}

// ParseNames splits a cell holding both fighters' names.
func ParseNames(cell string) (string, string) {
	return pair(SplitCell(cell))
}
