package release

import (
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"
)

const TimestampLayout = "2006-01-02T15:04:05Z"

// Title layouts tried in order. Month names are English and matched without
// regard to case.
var titleLayouts = []string{
	"January 2006",
	"2 January 2006",
}

// DateState carries the last successfully inferred date between sections.
// The zero value has no date.
type DateState struct {
	last  time.Time
	isSet bool
}

func (s DateState) Last() (time.Time, bool) {
	return s.last, s.isSet
}

// Infer maps a release title to a timestamp and returns the state for the
// next section. Titles that do not parse are assumed to be one month older
// than the previous result; with no previous result, now is returned and the
// state stays empty.
func (s DateState) Infer(title string, now time.Time) (time.Time, DateState) {
	if parsed, ok := parseTitle(title); ok {
		return parsed, DateState{last: parsed, isSet: true}
	}

	if s.isSet {
		prev := previousMonth(s.last)
		return prev, DateState{last: prev, isSet: true}
	}

	return now.UTC(), s
}

func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

func parseTitle(title string) (time.Time, bool) {
	title = strings.TrimSpace(norm.NFKC.String(title))
	if title == "" {
		return time.Time{}, false
	}

	for _, layout := range titleLayouts {
		if t, err := time.Parse(layout, title); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

// previousMonth keeps day and time of day. A day past the end of the target
// month is clamped to its last day.
func previousMonth(t time.Time) time.Time {
	year, month, day := t.Date()

	month--
	if month < time.January {
		month = time.December
		year--
	}

	if last := daysIn(year, month); day > last {
		day = last
	}

	return time.Date(year, month, day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
