package source

import (
	"bytes"
	"fmt"
	"log/slog"

	"github.com/PuerkitoBio/goquery"

	"github.com/lysyi3m/relnotes-feed/app/release"
)

const DefaultSelector = "section.expandable"

// Finder locates release blocks in an HTML document.
type Finder struct {
	selector string
}

func NewFinder(selector string) *Finder {
	if selector == "" {
		selector = DefaultSelector
	}
	return &Finder{selector: selector}
}

// Run returns every element matching the selector in document order. A page
// without matches yields an empty slice, not an error.
func (f *Finder) Run(data []byte) ([]release.Node, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	found := doc.Find(f.selector)
	sections := make([]release.Node, 0, found.Length())
	found.Each(func(_ int, s *goquery.Selection) {
		sections = append(sections, NewNode(s))
	})

	if len(sections) == 0 {
		slog.Warn("No release sections found", "selector", f.selector)
	} else {
		slog.Debug("Release sections found", "selector", f.selector, "count", len(sections))
	}

	return sections, nil
}
