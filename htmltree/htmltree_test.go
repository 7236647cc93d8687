package htmltree

import (
	"testing"
)

const sample = `<h2>Title</h2>
<p>Intro with a <a href="https://example.com">link</a>.</p>
<ul><li>one</li><li>two <ul><li>nested</li></ul></li></ul>
<p><img src="x.jpg" alt="alt text"></p>`

func TestParseFragment_RootsAndIDs(t *testing.T) {
	tree, err := ParseFragment(sample)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	roots := tree.Roots()
	if len(roots) != 4 {
		t.Fatalf("expected 4 top-level elements, got %d", len(roots))
	}
	seen := map[int]bool{}
	for _, n := range tree.FindAll(func(*Node) bool { return true }) {
		if seen[n.ID()] {
			t.Fatalf("duplicate node ID %d", n.ID())
		}
		seen[n.ID()] = true
	}
}

func TestQueries(t *testing.T) {
	tree, err := ParseFragment(sample)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	headings := tree.FindAll(IsHeading)
	if len(headings) != 1 || headings[0].HeadingLevel() != 2 {
		t.Errorf("expected one h2, got %d", len(headings))
	}
	if headings[0].Text() != "Title" {
		t.Errorf("heading text: got %q", headings[0].Text())
	}

	links := tree.FindAll(IsLink)
	if len(links) != 1 {
		t.Fatalf("expected 1 link, got %d", len(links))
	}
	if links[0].Attr("href") != "https://example.com" {
		t.Errorf("href: got %q", links[0].Attr("href"))
	}

	images := tree.FindAll(IsImage)
	if len(images) != 1 || images[0].Attr("alt") != "alt text" {
		t.Fatalf("image query failed: %+v", images)
	}
}

func TestFindAllShallow_OutermostLists(t *testing.T) {
	tree, err := ParseFragment(sample)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	deep := tree.FindAll(IsList)
	if len(deep) != 2 {
		t.Fatalf("expected 2 lists total, got %d", len(deep))
	}

	var shallow []*Node
	for _, r := range tree.Roots() {
		shallow = append(shallow, r.FindAllShallow(tree, IsList)...)
	}
	if len(shallow) != 1 {
		t.Fatalf("expected only the outermost list, got %d", len(shallow))
	}
	items := shallow[0].FindAll(tree, IsListItem)
	if len(items) != 3 {
		t.Errorf("expected 3 list items including nested, got %d", len(items))
	}
}

func TestTextAndHTML(t *testing.T) {
	tree, err := ParseFragment(`<p>Hello <strong>bold</strong> world</p>`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	p := tree.Roots()[0]
	if p.Text() != "Hello bold world" {
		t.Errorf("visible text: got %q", p.Text())
	}
	if p.HTML() != `<p>Hello <strong>bold</strong> world</p>` {
		t.Errorf("serialized markup: got %q", p.HTML())
	}
}
