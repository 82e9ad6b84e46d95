package source

import (
	"github.com/PuerkitoBio/goquery"

	"github.com/lysyi3m/relnotes-feed/app/release"
)

// Node adapts a single-element goquery selection to release.Node.
type Node struct {
	sel *goquery.Selection
}

var _ release.Node = (*Node)(nil)

func NewNode(sel *goquery.Selection) *Node {
	return &Node{sel: sel.First()}
}

func (n *Node) Find(tag string) (release.Node, bool) {
	found := n.sel.Find(tag).First()
	if found.Length() == 0 {
		return nil, false
	}
	return &Node{sel: found}, true
}

func (n *Node) FindAll(tag string) []release.Node {
	found := n.sel.Find(tag)
	nodes := make([]release.Node, 0, found.Length())
	found.Each(func(_ int, s *goquery.Selection) {
		nodes = append(nodes, &Node{sel: s})
	})
	return nodes
}

func (n *Node) Attr(name string) (string, bool) {
	return n.sel.Attr(name)
}

func (n *Node) Text() string {
	return n.sel.Text()
}

func (n *Node) InnerHTML() string {
	// Html only fails on a broken writer; an empty string is the same
	// outcome as a node without children.
	inner, err := n.sel.Html()
	if err != nil {
		return ""
	}
	return inner
}
