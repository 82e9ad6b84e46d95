package release

import (
	"fmt"
	"strings"
	"time"
)

type Extractor struct {
	now func() time.Time
}

func NewExtractor() *Extractor {
	return &Extractor{now: time.Now}
}

// NewExtractorWithClock is used where the fallback timestamp must be fixed.
func NewExtractorWithClock(now func() time.Time) *Extractor {
	return &Extractor{now: now}
}

// Run turns sections into entries in the same order. Date inference starts
// from an empty state on every call.
func (e *Extractor) Run(sections []Node) []Entry {
	entries := make([]Entry, 0, len(sections))

	var state DateState
	for i, section := range sections {
		entry := e.extract(section, i+1)

		var date time.Time
		date, state = state.Infer(entry.Title, e.now())
		entry.Date = FormatTimestamp(date)

		entries = append(entries, entry)
	}

	return entries
}

func (e *Extractor) extract(section Node, position int) Entry {
	entry := Entry{
		Title:      headingText(section, "h2"),
		Subtitle:   headingText(section, "h3"),
		Identifier: fmt.Sprintf("release-%d", position),
	}

	if id, ok := section.Attr("id"); ok {
		entry.Identifier = id
	}

	if p, ok := section.Find("p"); ok {
		entry.Description = strings.TrimSpace(p.Text())
	}

	entry.Notes = []string{}
	if list, ok := section.Find("ul"); ok {
		for _, li := range list.FindAll("li") {
			entry.Notes = append(entry.Notes, collapseWhitespace(li.InnerHTML()))
		}
	}

	return entry
}

func headingText(section Node, tag string) string {
	heading, ok := section.Find(tag)
	if !ok {
		return ""
	}
	text, _ := heading.Attr("data-text")
	return text
}

// collapseWhitespace replaces every run of Unicode whitespace with a single
// space and trims both ends.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
