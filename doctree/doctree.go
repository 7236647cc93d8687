// Package doctree defines the parsed document model: a Document of Sections,
// each owning a tree of heading-rooted Blocks, named typed Fields, and leaf
// ContentElements. The tree is built once by the parser and read-only after.
package doctree

import (
	"strconv"
)

// FieldType classifies a field's content.
type FieldType string

const (
	FieldHeading FieldType = "heading"
	FieldList    FieldType = "list"
	FieldImage   FieldType = "image"
	FieldImages  FieldType = "images"
	FieldLink    FieldType = "link"
	FieldLinks   FieldType = "links"
	FieldText    FieldType = "text"
)

// ContentElement is a leaf content unit: a paragraph, image, link, list, or
// flattened heading. ID is a document-wide stable identifier assigned at
// extraction time; identity-based deduplication keys on it.
type ContentElement struct {
	ID    int
	Text  string
	HTML  string
	Attrs map[string]string // src/alt for images, href for links, type for lists

	Items []string // flattened item texts when the element is a list

	// Populated for list-field items only: links and images nested in the item.
	Links  []*ContentElement
	Images []*ContentElement
}

// Attr returns the named payload attribute, or "".
func (e *ContentElement) Attr(name string) string {
	if e.Attrs == nil {
		return ""
	}
	return e.Attrs[name]
}

// HeadingElement is a heading's text/html pair, derived once from rendered
// markup.
type HeadingElement struct {
	Text string
	HTML string
}

// FieldData is one resolved field: its source markdown, rendered html, plain
// text, inferred type, and the structured payload that goes with the type.
type FieldData struct {
	Name     string
	Markdown string
	HTML     string
	Text     string
	Type     FieldType

	// ImageData holds the images for type image/images, LinkData the links
	// for type link/links, ListItems the item records for type list.
	ImageData []*ContentElement
	LinkData  []*ContentElement
	ListItems []*ContentElement

	items []*ContentElement // lazy Items() cache for image/link types
}

// Data returns the single-payload view of the field: {src, alt} for an
// image, {href, text} for a link. Nil for every other type.
func (f *FieldData) Data() map[string]string {
	switch f.Type {
	case FieldImage:
		if len(f.ImageData) > 0 {
			return f.ImageData[0].Attrs
		}
	case FieldLink:
		if len(f.LinkData) > 0 {
			return map[string]string{"href": f.LinkData[0].Attr("href"), "text": f.LinkData[0].Text}
		}
	}
	return nil
}

// Items returns the field's itemized payload: list item records for type
// list, one element per image or link for the plural types. The image/link
// view is materialized on first use and cached.
func (f *FieldData) Items() []*ContentElement {
	switch f.Type {
	case FieldList:
		return f.ListItems
	case FieldImage, FieldImages:
		if f.items == nil {
			f.items = append([]*ContentElement(nil), f.ImageData...)
		}
		return f.items
	case FieldLink, FieldLinks:
		if f.items == nil {
			f.items = append([]*ContentElement(nil), f.LinkData...)
		}
		return f.items
	}
	return nil
}

// Block is a tree node rooted at a heading. Level 0 means the source had no
// headings at all; level 1 is a top heading or the synthetic wrapper; levels
// 2-6 are nested heading depths. HTML and Text are cumulative (self plus all
// descendants) except on a synthetic wrapper. The element collections hold
// the block's direct content only.
type Block struct {
	Heading HeadingElement
	Level   int
	HTML    string
	Text    string

	Paragraphs []*ContentElement
	Images     []*ContentElement
	Links      []*ContentElement
	Lists      []*ContentElement

	Fields   map[string]*FieldData
	Children []*Block

	// Synthetic marks the level-1 wrapper inserted when content starts at a
	// heading deeper than level 1. Real-block accessors see through it.
	Synthetic bool
}

// Field looks up a field scoped to this block's markdown span. Nil when the
// name is absent.
func (b *Block) Field(name string) *FieldData {
	return b.Fields[name]
}

// AllImages returns the block's images plus all descendants', in document
// order, deduplicated by element identity.
func (b *Block) AllImages() []*ContentElement {
	return dedupByID(b.collect(func(b *Block) []*ContentElement { return b.Images }))
}

// AllLinks returns the block's links plus all descendants', deduplicated by
// the (href, text) pair.
func (b *Block) AllLinks() []*ContentElement {
	return dedupLinks(b.collect(func(b *Block) []*ContentElement { return b.Links }))
}

// AllLists returns the block's lists plus all descendants', deduplicated by
// rendered markup.
func (b *Block) AllLists() []*ContentElement {
	return dedupByHTML(b.collect(func(b *Block) []*ContentElement { return b.Lists }))
}

// AllParagraphs returns the block's paragraphs plus all descendants',
// deduplicated by rendered markup.
func (b *Block) AllParagraphs() []*ContentElement {
	return dedupByHTML(b.collect(func(b *Block) []*ContentElement { return b.Paragraphs }))
}

// AllHeadings returns this block's heading (if any) and all descendants', as
// flattened elements carrying a level attribute.
func (b *Block) AllHeadings() []*ContentElement {
	var out []*ContentElement
	var walk func(*Block)
	walk = func(blk *Block) {
		if blk.Heading.Text != "" || blk.Heading.HTML != "" {
			out = append(out, &ContentElement{
				Text:  blk.Heading.Text,
				HTML:  blk.Heading.HTML,
				Attrs: map[string]string{"level": strconv.Itoa(blk.Level)},
			})
		}
		for _, c := range blk.Children {
			walk(c)
		}
	}
	walk(b)
	return out
}

func (b *Block) collect(pick func(*Block) []*ContentElement) []*ContentElement {
	var out []*ContentElement
	var walk func(*Block)
	walk = func(blk *Block) {
		out = append(out, pick(blk)...)
		for _, c := range blk.Children {
			walk(c)
		}
	}
	walk(b)
	return out
}

// Section is one named or positional document partition: its first heading's
// text as title, rendered html/text, top-level blocks, scoped fields, and at
// most one level of named subsections.
type Section struct {
	Title  string
	HTML   string
	Text   string
	Blocks []*Block

	Fields      map[string]*FieldData
	Subsections map[string]*Section
}

// RealBlocks returns the section's top-level blocks with the synthetic
// wrapper, when present, replaced by its children.
func (s *Section) RealBlocks() []*Block {
	if len(s.Blocks) > 0 && s.Blocks[0].Synthetic {
		out := append([]*Block(nil), s.Blocks[0].Children...)
		return append(out, s.Blocks[1:]...)
	}
	return s.Blocks
}

// Subsection returns the named subsection, or nil. Subsections never nest:
// a subsection's own map is always empty.
func (s *Section) Subsection(name string) *Section {
	return s.Subsections[name]
}

// Field returns the named section-scope field, or nil.
func (s *Section) Field(name string) *FieldData {
	return s.Fields[name]
}

// Images aggregates every image in the section's block tree.
func (s *Section) Images() []*ContentElement {
	return dedupByID(s.collectBlocks(func(b *Block) []*ContentElement { return b.Images }))
}

// Links aggregates every link in the section's block tree.
func (s *Section) Links() []*ContentElement {
	return dedupLinks(s.collectBlocks(func(b *Block) []*ContentElement { return b.Links }))
}

// Lists aggregates every list in the section's block tree.
func (s *Section) Lists() []*ContentElement {
	return dedupByHTML(s.collectBlocks(func(b *Block) []*ContentElement { return b.Lists }))
}

// Paragraphs aggregates every paragraph in the section's block tree.
func (s *Section) Paragraphs() []*ContentElement {
	return dedupByHTML(s.collectBlocks(func(b *Block) []*ContentElement { return b.Paragraphs }))
}

// Headings aggregates every heading in the section's block tree.
func (s *Section) Headings() []*ContentElement {
	var out []*ContentElement
	for _, b := range s.Blocks {
		out = append(out, b.AllHeadings()...)
	}
	return out
}

func (s *Section) collectBlocks(pick func(*Block) []*ContentElement) []*ContentElement {
	var out []*ContentElement
	for _, b := range s.Blocks {
		out = append(out, b.collect(pick)...)
	}
	return out
}

// Document is the assembled content tree. Title, Description, Text and HTML
// are reserved fields, always empty. Meta holds frontmatter metadata when
// the source carried any. Sections maps both a section's given name and its
// global index (as a decimal string) to the same *Section.
type Document struct {
	Title       string
	Description string
	Text        string
	HTML        string
	Meta        map[string]any

	Sections map[string]*Section

	ordered []*Section
}

// NewDocument returns an empty document ready for assembly.
func NewDocument() *Document {
	return &Document{Sections: make(map[string]*Section)}
}

// AddSection appends s under the next global index, and under name when one
// was given. A named section is therefore reachable by both keys.
func (d *Document) AddSection(name string, s *Section) {
	idx := len(d.ordered)
	d.ordered = append(d.ordered, s)
	d.Sections[strconv.Itoa(idx)] = s
	if name != "" {
		d.Sections[name] = s
	}
}

// Section returns the section stored under name (a given name or a decimal
// index), or nil.
func (d *Document) Section(name string) *Section {
	return d.Sections[name]
}

// SectionAt returns the section at global index i, or nil.
func (d *Document) SectionAt(i int) *Section {
	if i < 0 || i >= len(d.ordered) {
		return nil
	}
	return d.ordered[i]
}

// UniqueSections returns each section exactly once, in document order. Named
// sections appear under two map keys, so callers aggregating over the map
// would otherwise visit them twice.
func (d *Document) UniqueSections() []*Section {
	return d.ordered
}
