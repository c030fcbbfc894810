package events

import (
	"regexp"
	"slices"
	"strings"

	"github.com/antzucaro/matchr"
	"github.com/thebenkogan/ufcstats/internal/model"
)

var (
	nameWhitespaceRegex = regexp.MustCompile(`\s+`)
	nameStripRegex      = regexp.MustCompile(`[^a-z0-9 ]`)
)

// Normalize lowercases name, drops everything but letters, digits and spaces
// and collapses runs of spaces.
func Normalize(name string) string {
	name = strings.ToLower(name)
	name = nameWhitespaceRegex.ReplaceAllString(name, " ")
	name = nameStripRegex.ReplaceAllString(name, "")
	return strings.TrimSpace(nameWhitespaceRegex.ReplaceAllString(name, " "))
}

// Resolve finds the URL of the event called name. Candidates are tried by exact
// name, then by normalized name, then by either normalized name containing the
// other; the first candidate matching at the earliest stage wins.
func Resolve(name string, candidates []model.EventSummary) (string, bool) {
	for _, c := range candidates {
		if c.Name == name {
			return c.URL, true
		}
	}

	query := Normalize(name)
	if query == "" {
		return "", false
	}
	normalized := make([]string, len(candidates))
	for i, c := range candidates {
		normalized[i] = Normalize(c.Name)
	}

	for i, n := range normalized {
		if n == query {
			return candidates[i].URL, true
		}
	}
	for i, n := range normalized {
		if n == "" {
			continue
		}
		if strings.Contains(n, query) || strings.Contains(query, n) {
			return candidates[i].URL, true
		}
	}
	return "", false
}

// Suggest returns up to n candidates whose names are closest to name.
func Suggest(name string, candidates []model.EventSummary, n int) []model.EventSummary {
	type scored struct {
		event      model.EventSummary
		similarity float64
	}

	query := Normalize(name)
	ranked := make([]scored, 0, len(candidates))
	for _, c := range candidates {
		similarity := matchr.JaroWinkler(query, Normalize(c.Name), false)
		if similarity > 0 {
			ranked = append(ranked, scored{event: c, similarity: similarity})
		}
	}
	slices.SortStableFunc(ranked, func(a, b scored) int {
		switch {
		case a.similarity > b.similarity:
			return -1
		case a.similarity < b.similarity:
			return 1
		}
		return 0
	})

	limit := max(0, min(n, len(ranked)))
	suggestions := make([]model.EventSummary, 0, limit)
	for _, s := range ranked[:limit] {
		suggestions = append(suggestions, s.event)
	}
	return suggestions
}
