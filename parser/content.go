package parser

import (
	"github.com/lemachinarbo/LetMeDown/doctree"
	"github.com/lemachinarbo/LetMeDown/htmltree"
)

// idAlloc hands out document-wide element IDs. One allocator per parse, so
// identity deduplication stays valid across sections and rendered fragments.
type idAlloc struct {
	next int
}

func (a *idAlloc) id() int {
	n := a.next
	a.next++
	return n
}

// extractor builds ContentElements from one rendered fragment. The same
// rendered node always maps to the same element, which is what makes
// identity-based deduplication work when a block's elements are merged
// upward into its ancestors' aggregations.
type extractor struct {
	tree  *htmltree.Tree
	ids   *idAlloc
	elems map[int]*doctree.ContentElement
}

func newExtractor(tree *htmltree.Tree, ids *idAlloc) *extractor {
	return &extractor{tree: tree, ids: ids, elems: make(map[int]*doctree.ContentElement)}
}

func (e *extractor) element(n *htmltree.Node) *doctree.ContentElement {
	if el, ok := e.elems[n.ID()]; ok {
		return el
	}
	el := &doctree.ContentElement{ID: e.ids.id(), Text: n.Text(), HTML: n.HTML()}
	switch {
	case htmltree.IsImage(n):
		el.Text = n.Attr("alt")
		el.Attrs = map[string]string{"src": n.Attr("src"), "alt": n.Attr("alt")}
	case htmltree.IsLink(n):
		el.Attrs = map[string]string{"href": n.Attr("href")}
	case htmltree.IsList(n):
		el.Attrs = map[string]string{"type": n.Tag()}
		for _, li := range n.FindAllShallow(e.tree, htmltree.IsListItem) {
			el.Items = append(el.Items, li.Text())
		}
	}
	e.elems[n.ID()] = el
	return el
}

// extracted is the typed content pulled out of one block's direct nodes.
type extracted struct {
	paragraphs []*doctree.ContentElement
	images     []*doctree.ContentElement
	links      []*doctree.ContentElement
	lists      []*doctree.ContentElement
}

// extract walks a block's direct sibling nodes in document order. Sibling
// headings are skipped: they belong to their own block. Images are collected
// anywhere under the siblings and deduplicated by node identity, links by
// the (href, text) pair, lists at their outermost level by markup, and
// paragraphs by markup.
func (e *extractor) extract(nodes []*htmltree.Node) extracted {
	var out extracted
	seenImg := make(map[int]bool)
	seenLink := make(map[[2]string]bool)
	seenList := make(map[string]bool)
	seenPara := make(map[string]bool)

	for _, n := range nodes {
		if htmltree.IsHeading(n) {
			continue
		}
		for _, img := range n.FindAll(e.tree, htmltree.IsImage) {
			if seenImg[img.ID()] {
				continue
			}
			seenImg[img.ID()] = true
			out.images = append(out.images, e.element(img))
		}
		for _, a := range n.FindAll(e.tree, htmltree.IsLink) {
			key := [2]string{a.Attr("href"), a.Text()}
			if seenLink[key] {
				continue
			}
			seenLink[key] = true
			out.links = append(out.links, e.element(a))
		}
		for _, l := range n.FindAllShallow(e.tree, htmltree.IsList) {
			markup := l.HTML()
			if seenList[markup] {
				continue
			}
			seenList[markup] = true
			out.lists = append(out.lists, e.element(l))
		}
		for _, p := range n.FindAll(e.tree, htmltree.IsParagraph) {
			markup := p.HTML()
			if seenPara[markup] {
				continue
			}
			seenPara[markup] = true
			out.paragraphs = append(out.paragraphs, e.element(p))
		}
	}
	return out
}
