// Package htmltree wraps golang.org/x/net/html with the small query surface
// the document parser needs: fragment parsing, heading/image/link/list/paragraph
// lookups, attribute access, serialization, and visible-text extraction.
//
// Every element node is tagged with a stable integer ID at parse time. Value
// types built from nodes carry that ID, so callers can deduplicate "the same
// rendered node" without relying on pointer identity.
package htmltree

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Node is one element in a parsed fragment.
type Node struct {
	n  *html.Node
	id int
}

// Tree holds the top-level nodes of a parsed HTML fragment.
type Tree struct {
	roots  []*Node
	byNode map[*html.Node]*Node
}

// ParseFragment parses an HTML fragment (body context, tolerant of partial
// markup) and assigns each element node a stable ID in document order.
func ParseFragment(fragment string) (*Tree, error) {
	ctx := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), ctx)
	if err != nil {
		return nil, fmt.Errorf("parse html fragment: %w", err)
	}

	t := &Tree{byNode: make(map[*html.Node]*Node)}
	next := 0
	var index func(n *html.Node)
	index = func(n *html.Node) {
		if n.Type == html.ElementNode {
			t.byNode[n] = &Node{n: n, id: next}
			next++
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			index(c)
		}
	}
	for _, n := range nodes {
		index(n)
	}
	for _, n := range nodes {
		if n.Type == html.ElementNode {
			t.roots = append(t.roots, t.byNode[n])
		}
	}
	return t, nil
}

// Roots returns the fragment's top-level element nodes in document order.
func (t *Tree) Roots() []*Node { return t.roots }

func (t *Tree) wrap(n *html.Node) *Node { return t.byNode[n] }

// FindAll walks the whole fragment depth-first and returns every node the
// predicate matches.
func (t *Tree) FindAll(match func(*Node) bool) []*Node {
	var out []*Node
	for _, r := range t.roots {
		out = append(out, r.findAll(t, match, true)...)
	}
	return out
}

// ID returns the node's stable parse-time identifier.
func (n *Node) ID() int { return n.id }

// Tag returns the lowercase element name.
func (n *Node) Tag() string { return n.n.Data }

// Attr returns the value of the named attribute, or "".
func (n *Node) Attr(name string) string {
	for _, a := range n.n.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}

// HTML serializes the node back to its normalized markup.
func (n *Node) HTML() string {
	var buf strings.Builder
	html.Render(&buf, n.n)
	return buf.String()
}

// Text returns the node's visible text with all tags stripped.
func (n *Node) Text() string {
	var buf strings.Builder
	var walk func(*html.Node)
	walk = func(h *html.Node) {
		if h.Type == html.TextNode {
			buf.WriteString(h.Data)
		}
		for c := h.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n.n)
	return strings.TrimSpace(buf.String())
}

// FindAll returns matching descendants of n (n itself included) in document
// order. The tree argument resolves child *html.Nodes back to wrapped Nodes.
func (n *Node) FindAll(t *Tree, match func(*Node) bool) []*Node {
	return n.findAll(t, match, true)
}

// FindAllShallow is FindAll without descending into matched nodes, so nested
// matches (a list inside a list) are reported only at their outermost level.
func (n *Node) FindAllShallow(t *Tree, match func(*Node) bool) []*Node {
	return n.findAll(t, match, false)
}

func (n *Node) findAll(t *Tree, match func(*Node) bool, deep bool) []*Node {
	var out []*Node
	var walk func(h *html.Node)
	walk = func(h *html.Node) {
		if h.Type == html.ElementNode {
			w := t.wrap(h)
			if w != nil && match(w) {
				out = append(out, w)
				if !deep {
					return
				}
			}
		}
		for c := h.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n.n)
	return out
}

// Children returns n's direct element children.
func (n *Node) Children(t *Tree) []*Node {
	var out []*Node
	for c := n.n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			if w := t.wrap(c); w != nil {
				out = append(out, w)
			}
		}
	}
	return out
}

// HeadingLevel returns 1-6 for h1-h6 elements, 0 otherwise.
func (n *Node) HeadingLevel() int {
	switch n.n.Data {
	case "h1":
		return 1
	case "h2":
		return 2
	case "h3":
		return 3
	case "h4":
		return 4
	case "h5":
		return 5
	case "h6":
		return 6
	}
	return 0
}

// IsHeading reports whether n is an h1-h6 element.
func IsHeading(n *Node) bool { return n.HeadingLevel() > 0 }

// IsImage reports whether n is an img element.
func IsImage(n *Node) bool { return n.Tag() == "img" }

// IsLink reports whether n is an anchor with an href.
func IsLink(n *Node) bool { return n.Tag() == "a" && n.Attr("href") != "" }

// IsList reports whether n is an ordered or unordered list.
func IsList(n *Node) bool { return n.Tag() == "ul" || n.Tag() == "ol" }

// IsParagraph reports whether n is a p element.
func IsParagraph(n *Node) bool { return n.Tag() == "p" }

// IsListItem reports whether n is an li element.
func IsListItem(n *Node) bool { return n.Tag() == "li" }
