package dateutil

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the calendar date format used in query strings and exports.
const DateLayout = "2006-01-02"

var layouts = []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05", DateLayout}

// Parse accepts a calendar date or a full timestamp. Date-only values are
// midnight UTC.
func Parse(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", s)
}

// ParseOptional parses s when it is non-nil and non-empty.
func ParseOptional(s *string) (*time.Time, error) {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil, nil
	}
	t, err := Parse(*s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func Format(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

// FormatPtr formats t, returning "" for nil.
func FormatPtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return Format(*t)
}
