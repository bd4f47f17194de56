package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var whitespace = regexp.MustCompile(`\s+`)

// Accepted layouts, most common first. The collectors write dd-mm-yyyy; the
// others show up in hand-edited snapshots.
var dateLayouts = []string{
	DateLayout,
	"2-1-2006",
	"02/01/2006",
	"2/1/2006",
	"2006-01-02",
}

// ParseDate parses a dataset date cell. Anything unparseable yields nil.
func ParseDate(value string) *time.Time {
	t, err := parseDate(value)
	if err != nil {
		return nil
	}
	return &t
}

func parseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(whitespace.ReplaceAllString(value, " "))
	if value == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}

	// pandas exports timestamps as "2021-03-01 00:00:00"
	if i := strings.IndexByte(value, ' '); i > 0 {
		value = value[:i]
	}

	for _, layout := range dateLayouts {
		if date, err := time.Parse(layout, value); err == nil {
			return date, nil
		}
	}

	return time.Time{}, fmt.Errorf("unable to parse date: %s", value)
}

// DaysBetween returns the whole calendar days from start to end
func DaysBetween(start, end time.Time) int {
	s := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	e := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	return int(e.Sub(s).Hours() / 24)
}
