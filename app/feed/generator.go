package feed

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/lysyi3m/relnotes-feed/app/release"
)

const (
	atomNamespace = "http://www.w3.org/2005/Atom"
	rssDateLayout = "Mon, 02 Jan 2006 15:04:05 +0000"
)

type Generator struct {
	now func() time.Time
}

func NewGenerator() *Generator {
	return &Generator{now: time.Now}
}

func NewGeneratorWithClock(now func() time.Time) *Generator {
	return &Generator{now: now}
}

func (g *Generator) Run(format Format, channel Channel, entries []release.Entry) (string, error) {
	var buf bytes.Buffer

	buf.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	buf.WriteString("\n")

	switch format {
	case FormatAtom:
		g.writeAtom(&buf, channel, entries)
	case FormatRSS:
		g.writeRSS(&buf, channel, entries)
	default:
		return "", fmt.Errorf("%w %q", ErrUnknownFormat, format)
	}

	return buf.String(), nil
}

func (g *Generator) writeAtom(buf *bytes.Buffer, channel Channel, entries []release.Entry) {
	buf.WriteString(`<feed xmlns="` + atomNamespace + `">`)
	buf.WriteString("\n")

	g.writeElement(buf, "title", channel.Title, 2)
	g.writeLink(buf, channel.SourceURL, 2)
	g.writeElement(buf, "updated", release.FormatTimestamp(g.now()), 2)
	buf.WriteString("  <author>\n")
	g.writeElement(buf, "name", channel.Author, 4)
	buf.WriteString("  </author>\n")
	if channel.Generator != "" {
		g.writeElement(buf, "generator", channel.Generator, 2)
	}

	for _, entry := range entries {
		buf.WriteString("  <entry>\n")
		g.writeElement(buf, "id", channel.BaseURL+"/"+entry.Identifier, 4)
		g.writeLink(buf, channel.BaseURL+"#"+entry.Identifier, 4)
		g.writeElement(buf, "title", entry.Title, 4)
		g.writeElement(buf, "updated", entry.Date, 4)
		g.writeElement(buf, "subtitle", entry.Subtitle+" "+entry.Description, 4)
		buf.WriteString(`    <content type="html">`)
		g.writeCDATA(buf, notesHTML(entry.Notes))
		buf.WriteString("</content>\n")
		buf.WriteString("  </entry>\n")
	}

	buf.WriteString("</feed>")
}

func (g *Generator) writeRSS(buf *bytes.Buffer, channel Channel, entries []release.Entry) {
	buf.WriteString(`<rss version="2.0">`)
	buf.WriteString("\n  <channel>\n")

	g.writeElement(buf, "title", channel.Title, 4)
	g.writeElement(buf, "link", channel.SourceURL, 4)
	g.writeElement(buf, "author", channel.Author, 4)
	g.writeElement(buf, "lastBuildDate", g.now().UTC().Format(rssDateLayout), 4)
	if channel.Generator != "" {
		g.writeElement(buf, "generator", channel.Generator, 4)
	}

	for _, entry := range entries {
		buf.WriteString("    <item>\n")
		g.writeElement(buf, "title", entry.Title, 6)
		g.writeElement(buf, "link", channel.BaseURL+"#"+entry.Identifier, 6)
		buf.WriteString("      <description>")
		g.writeCDATA(buf, descriptionHTML(entry))
		buf.WriteString("</description>\n")
		g.writeElement(buf, "pubDate", entry.Date, 6)
		buf.WriteString("    </item>\n")
	}

	buf.WriteString("  </channel>\n</rss>")
}

// writeElement always emits the element; empty content yields an empty element.
func (g *Generator) writeElement(buf *bytes.Buffer, tag, content string, indent int) {
	g.writeIndent(buf, indent)
	buf.WriteString("<")
	buf.WriteString(tag)
	buf.WriteString(">")
	xml.EscapeText(buf, []byte(content))
	buf.WriteString("</")
	buf.WriteString(tag)
	buf.WriteString(">\n")
}

func (g *Generator) writeLink(buf *bytes.Buffer, href string, indent int) {
	g.writeIndent(buf, indent)
	buf.WriteString(`<link href="`)
	xml.EscapeText(buf, []byte(href))
	buf.WriteString(`"/>`)
	buf.WriteString("\n")
}

// writeCDATA inserts markup verbatim. A literal "]]>" is split across two
// sections, invalid UTF-8 becomes U+FFFD and characters XML does not allow
// are dropped, so the document stays well-formed.
func (g *Generator) writeCDATA(buf *bytes.Buffer, markup string) {
	markup = strings.Map(xmlChar, strings.ToValidUTF8(markup, "\uFFFD"))
	buf.WriteString("<![CDATA[")
	buf.WriteString(strings.ReplaceAll(markup, "]]>", "]]]]><![CDATA[>"))
	buf.WriteString("]]>")
}

// xmlChar keeps r when it is in the XML 1.0 Char production and drops it
// otherwise.
func xmlChar(r rune) rune {
	switch {
	case r == '\t', r == '\n', r == '\r',
		r >= 0x20 && r <= 0xD7FF,
		r >= 0xE000 && r <= 0xFFFD,
		r >= 0x10000 && r <= 0x10FFFF:
		return r
	}
	return -1
}

func (g *Generator) writeIndent(buf *bytes.Buffer, indent int) {
	for i := 0; i < indent; i++ {
		buf.WriteByte(' ')
	}
}

func notesHTML(notes []string) string {
	var sb strings.Builder
	sb.WriteString("<ul>")
	for _, note := range notes {
		sb.WriteString("<li>")
		sb.WriteString(note)
		sb.WriteString("</li>")
	}
	sb.WriteString("</ul>")
	return sb.String()
}

// descriptionHTML is the RSS item body: a paragraph of plain text followed by
// the notes list. Notes are already HTML; the paragraph text is escaped.
func descriptionHTML(entry release.Entry) string {
	return "<p>" + html.EscapeString(entry.Subtitle+" "+entry.Description) + "</p>" + notesHTML(entry.Notes)
}
