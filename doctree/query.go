package doctree

// Document-wide flattened views. Each traverses every unique section in
// document order and concatenates that section's recursive aggregation.

// AllBlocks returns every real block in the document, pre-order, with
// synthetic wrappers replaced by their children.
func (d *Document) AllBlocks() []*Block {
	var out []*Block
	var walk func(*Block)
	walk = func(b *Block) {
		out = append(out, b)
		for _, c := range b.Children {
			walk(c)
		}
	}
	for _, s := range d.UniqueSections() {
		for _, b := range s.RealBlocks() {
			walk(b)
		}
	}
	return out
}

// AllHeadings returns every heading in the document, deduplicated by the
// (text, level) pair across the whole traversal.
func (d *Document) AllHeadings() []*ContentElement {
	seen := make(map[[2]string]bool)
	var out []*ContentElement
	for _, s := range d.UniqueSections() {
		for _, h := range s.Headings() {
			key := [2]string{h.Text, h.Attr("level")}
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, h)
		}
	}
	return out
}

// AllImages returns every image in the document, deduplicated by element
// identity.
func (d *Document) AllImages() []*ContentElement {
	var out []*ContentElement
	for _, s := range d.UniqueSections() {
		out = append(out, s.Images()...)
	}
	return dedupByID(out)
}

// AllLinks returns every link in the document, deduplicated by (href, text).
func (d *Document) AllLinks() []*ContentElement {
	var out []*ContentElement
	for _, s := range d.UniqueSections() {
		out = append(out, s.Links()...)
	}
	return dedupLinks(out)
}

// AllLists returns every list in the document, deduplicated by markup.
func (d *Document) AllLists() []*ContentElement {
	var out []*ContentElement
	for _, s := range d.UniqueSections() {
		out = append(out, s.Lists()...)
	}
	return dedupByHTML(out)
}

// AllParagraphs returns every paragraph in the document, deduplicated by
// markup.
func (d *Document) AllParagraphs() []*ContentElement {
	var out []*ContentElement
	for _, s := range d.UniqueSections() {
		out = append(out, s.Paragraphs()...)
	}
	return dedupByHTML(out)
}

func dedupByID(elems []*ContentElement) []*ContentElement {
	seen := make(map[int]bool)
	var out []*ContentElement
	for _, e := range elems {
		if seen[e.ID] {
			continue
		}
		seen[e.ID] = true
		out = append(out, e)
	}
	return out
}

func dedupLinks(elems []*ContentElement) []*ContentElement {
	seen := make(map[[2]string]bool)
	var out []*ContentElement
	for _, e := range elems {
		key := [2]string{e.Attr("href"), e.Text}
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, e)
	}
	return out
}

func dedupByHTML(elems []*ContentElement) []*ContentElement {
	seen := make(map[string]bool)
	var out []*ContentElement
	for _, e := range elems {
		if seen[e.HTML] {
			continue
		}
		seen[e.HTML] = true
		out = append(out, e)
	}
	return out
}
