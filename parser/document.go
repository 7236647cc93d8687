// Package parser assembles annotated Markdown into the doctree model. It
// splits the source on section markers, resolves subsection and field ranges
// per section, renders the marker-stripped markdown, and builds each
// section's heading-driven block tree.
package parser

import (
	"github.com/lemachinarbo/LetMeDown/doctree"
	"github.com/lemachinarbo/LetMeDown/markdown"
	"github.com/lemachinarbo/LetMeDown/markers"
)

// Parser parses whole documents. It is stateless across Parse calls and safe
// to use from multiple goroutines; each parse builds its own working state.
type Parser struct {
	render *markdown.Renderer
}

// New returns a document parser.
func New() *Parser {
	return &Parser{render: markdown.NewRenderer()}
}

// Parse converts annotated Markdown into a Document. Frontmatter, when
// present, is split off into Document.Meta before marker scanning. Parsing
// is best-effort: marker ambiguity never fails a parse, only rendering the
// markdown can.
func (p *Parser) Parse(source []byte) (*doctree.Document, error) {
	doc := doctree.NewDocument()

	body := source
	if meta, rest, err := markdown.SplitFrontmatter(source); err == nil {
		doc.Meta = meta
		body = rest
	}

	sp := &sectionParser{render: p.render, ids: &idAlloc{}}
	for _, region := range markers.Sections(string(body)) {
		sec, err := sp.parseSection(region.Content, false)
		if err != nil {
			return nil, err
		}
		doc.AddSection(region.Name, sec)
	}
	return doc, nil
}
