package doctree

import (
	"testing"
)

func link(id int, href, text string) *ContentElement {
	return &ContentElement{ID: id, Text: text, HTML: `<a href="` + href + `">` + text + `</a>`, Attrs: map[string]string{"href": href}}
}

func image(id int, src string) *ContentElement {
	return &ContentElement{ID: id, Text: "", HTML: `<img src="` + src + `">`, Attrs: map[string]string{"src": src}}
}

func TestDocument_DualKeys(t *testing.T) {
	doc := NewDocument()
	named := &Section{Title: "Named"}
	anon := &Section{Title: "Anon"}
	doc.AddSection("intro", named)
	doc.AddSection("", anon)

	if doc.Section("intro") != named || doc.Section("0") != named {
		t.Errorf("named section must be reachable by name and index")
	}
	if doc.SectionAt(1) != anon {
		t.Errorf("positional lookup failed")
	}
	if doc.SectionAt(2) != nil || doc.SectionAt(-1) != nil {
		t.Errorf("out-of-range lookup must return nil")
	}
	if len(doc.UniqueSections()) != 2 {
		t.Errorf("unique sections must not double-count named ones")
	}
	if doc.Section("missing") != nil {
		t.Errorf("missing section lookup must return nil, not error")
	}
}

func TestRealBlocks_SyntheticTransparent(t *testing.T) {
	child := &Block{Level: 2, Heading: HeadingElement{Text: "h2"}}
	synth := &Block{Level: 1, Synthetic: true, Children: []*Block{child}}
	sec := &Section{Blocks: []*Block{synth}}

	real := sec.RealBlocks()
	if len(real) != 1 || real[0] != child {
		t.Fatalf("expected the synthetic wrapper's children, got %+v", real)
	}

	// A plain first block passes through untouched.
	plain := &Section{Blocks: []*Block{{Level: 1, Heading: HeadingElement{Text: "h1"}}}}
	if got := plain.RealBlocks(); len(got) != 1 || got[0].Heading.Text != "h1" {
		t.Errorf("non-synthetic blocks must be returned as-is")
	}
}

func TestAllHeadings_DedupByTextAndLevel(t *testing.T) {
	doc := NewDocument()
	mk := func(title string, level int) *Section {
		return &Section{Blocks: []*Block{{Level: level, Heading: HeadingElement{Text: title, HTML: "<h2>" + title + "</h2>"}}}}
	}
	doc.AddSection("a", mk("Shared", 2))
	doc.AddSection("b", mk("Shared", 2))
	doc.AddSection("c", mk("Shared", 3))

	got := doc.AllHeadings()
	if len(got) != 2 {
		t.Fatalf("expected (Shared,2) and (Shared,3), got %d entries", len(got))
	}
}

func TestAllLinks_DedupByHrefAndText(t *testing.T) {
	doc := NewDocument()
	doc.AddSection("", &Section{Blocks: []*Block{{
		Links: []*ContentElement{link(1, "https://a", "x"), link(2, "https://a", "x"), link(3, "https://a", "y")},
	}}})

	got := doc.AllLinks()
	if len(got) != 2 {
		t.Fatalf("expected 2 links after (href,text) dedup, got %d", len(got))
	}
}

func TestAllImages_IdentityDedupAcrossAggregation(t *testing.T) {
	shared := image(7, "x.jpg")
	parent := &Block{Level: 1, Images: []*ContentElement{shared}}
	child := &Block{Level: 2, Images: []*ContentElement{shared, image(8, "x.jpg")}}
	parent.Children = []*Block{child}

	doc := NewDocument()
	doc.AddSection("", &Section{Blocks: []*Block{parent}})

	got := doc.AllImages()
	if len(got) != 2 {
		t.Fatalf("the same element must count once, identical content elsewhere stays distinct: got %d", len(got))
	}
}

func TestFieldData_DataAndItems(t *testing.T) {
	img := image(1, "x.jpg")
	img.Attrs["alt"] = "alt"
	f := &FieldData{Name: "pic", Type: FieldImage, ImageData: []*ContentElement{img}}
	data := f.Data()
	if data["src"] != "x.jpg" || data["alt"] != "alt" {
		t.Errorf("image data: %v", data)
	}

	txt := &FieldData{Name: "t", Type: FieldText}
	if txt.Data() != nil || txt.Items() != nil {
		t.Errorf("text fields carry no structured payload")
	}

	l := &FieldData{Name: "l", Type: FieldLink, LinkData: []*ContentElement{link(2, "https://a", "go")}}
	if d := l.Data(); d["href"] != "https://a" || d["text"] != "go" {
		t.Errorf("link data: %v", d)
	}
	if items := l.Items(); len(items) != 1 {
		t.Errorf("link items: %d", len(items))
	}
}
