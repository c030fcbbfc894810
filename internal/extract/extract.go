// Package extract turns ufcstats.com pages into the domain model. Every
// function here is a pure function of the markup it is given.
package extract

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/thebenkogan/ufcstats/internal/parser"
)

// StructuralError means a page does not have the overall shape expected of
// it, for example an error page served in place of an event.
type StructuralError struct {
	Page   string
	Reason string
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("unrecognized %s page: %s", e.Page, e.Reason)
}

func newDocument(page, markup string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, &StructuralError{Page: page, Reason: err.Error()}
	}
	return doc, nil
}

func text(s *goquery.Selection) string {
	return parser.CollapseWhitespace(s.Text())
}

// lines renders a selection's children one per line, so values of sibling
// elements never run together.
func lines(s *goquery.Selection) string {
	var parts []string
	s.Contents().Each(func(_ int, c *goquery.Selection) {
		if t := parser.CollapseWhitespace(c.Text()); t != "" {
			parts = append(parts, t)
		}
	})
	return strings.Join(parts, "\n")
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
