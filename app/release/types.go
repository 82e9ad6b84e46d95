package release

// Node is a parsed release block as seen by the extractor. Implementations
// wrap whatever HTML tree the caller produced.
type Node interface {
	// Find returns the first descendant with the given tag name.
	Find(tag string) (Node, bool)
	// FindAll returns every descendant with the given tag name in document order.
	FindAll(tag string) []Node
	Attr(name string) (string, bool)
	// Text returns the concatenated text content.
	Text() string
	// InnerHTML returns the serialized children of the node.
	InnerHTML() string
}

// Entry is one release extracted from a section. Every section produces an
// entry; missing parts are empty strings.
type Entry struct {
	Title       string
	Subtitle    string
	Description string
	Notes       []string
	Date        string // YYYY-MM-DDTHH:MM:SSZ
	Identifier  string
}
