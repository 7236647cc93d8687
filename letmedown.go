// Package letmedown parses annotated Markdown into a structured, queryable
// content tree. Annotation markers are HTML comments embedded in the source:
//
//	<!-- section:hero -->        splits the document into named sections
//	<!-- sub:intro --> <!-- /sub -->  marks one level of named subsections
//	<!-- image --> ![alt](x.jpg)  tags a typed, named field over a span
//
// Sections own heading-driven block trees with deduplicated paragraph,
// image, link, and list collections. Unmatched or malformed markers never
// fail a parse; the only caller-visible error is failing to load or render
// the source.
package letmedown

import (
	"github.com/lemachinarbo/LetMeDown/doctree"
	"github.com/lemachinarbo/LetMeDown/loader"
	"github.com/lemachinarbo/LetMeDown/parser"
)

// Load reads the source at path and parses it into a Document. Markdown
// loads verbatim; .txt, .docx, and .pdf sources are converted to Markdown
// text first.
func Load(path string) (*doctree.Document, error) {
	source, err := loader.Read(path)
	if err != nil {
		return nil, err
	}
	return Parse(source)
}

// Parse parses annotated Markdown source into a Document.
func Parse(source []byte) (*doctree.Document, error) {
	return parser.New().Parse(source)
}
