package domain

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// SearchFilter is the parsed form of a free-text search box entry. Each
// optional predicate is present only when its precondition held at parse
// time; absent predicates are left out of the OR set entirely rather than
// included as always-false clauses. Text is always present (an empty
// string matches everything, so an empty search shows all rows).
type SearchFilter struct {
	Text   string
	Amount *float64
	Date   *time.Time
	Status *string
}

var leadingNumber = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?`)

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006/01/02",
	"01/02/2006",
	"Jan 2, 2006",
	"January 2, 2006",
}

// ParseSearchFilter builds the OR predicate set for a search query.
func ParseSearchFilter(query string) SearchFilter {
	f := SearchFilter{Text: query}

	if v, ok := parseLooseFloat(query); ok {
		f.Amount = &v
	}
	if query != "" {
		if t, ok := parseLooseDate(query); ok {
			f.Date = &t
		}
	}
	if s := strings.ToUpper(query); ValidStatus(s) {
		f.Status = &s
	}
	return f
}

// parseLooseFloat reads a leading numeric prefix, so "150", "150.5" and
// "150 main st" all yield a number while "abc" does not.
func parseLooseFloat(s string) (float64, bool) {
	m := leadingNumber.FindString(strings.TrimLeft(s, " \t\n"))
	if m == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func parseLooseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
