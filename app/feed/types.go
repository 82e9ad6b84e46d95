package feed

import (
	"errors"
	"fmt"
	"strings"
)

type Format string

const (
	FormatAtom Format = "atom"
	FormatRSS  Format = "rss"
)

var ErrUnknownFormat = errors.New("unknown feed format")

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatAtom, FormatRSS:
		return f, nil
	}
	return "", fmt.Errorf("%w %q: must be 'atom' or 'rss'", ErrUnknownFormat, s)
}

func (f Format) ContentType() string {
	if f == FormatAtom {
		return "application/atom+xml; charset=utf-8"
	}
	return "application/rss+xml; charset=utf-8"
}

// Channel holds the feed-level values that do not come from the page.
type Channel struct {
	Title     string
	SourceURL string // top-level link
	BaseURL   string // prefix for entry ids and links
	Author    string
	Generator string // omitted when empty
}
