package parser

import (
	"regexp"
	"strings"

	"github.com/lemachinarbo/LetMeDown/doctree"
	"github.com/lemachinarbo/LetMeDown/htmltree"
	"github.com/lemachinarbo/LetMeDown/markers"
)

var headingLineRe = regexp.MustCompile(`(?m)^#{1,6}[ \t]+\S`)

// scanFields resolves and classifies every field in one scope's markdown.
// The scanner already keeps only the first non-empty occurrence per name.
func (sp *sectionParser) scanFields(md string) map[string]*doctree.FieldData {
	regions := markers.Fields(md)
	if len(regions) == 0 {
		return nil
	}
	fields := make(map[string]*doctree.FieldData, len(regions))
	for _, r := range regions {
		f, err := sp.classifyField(r)
		if err != nil || f == nil {
			continue
		}
		if _, ok := fields[f.Name]; ok {
			continue
		}
		fields[f.Name] = f
	}
	return fields
}

// classifyField renders a field's content and infers its type, first match
// wins: a markdown heading line, then lists, then images, then links, then
// plain text.
func (sp *sectionParser) classifyField(r markers.Region) (*doctree.FieldData, error) {
	clean := markers.Strip(r.Content)
	html, err := sp.render.Render(clean)
	if err != nil {
		return nil, err
	}
	tree, err := htmltree.ParseFragment(html)
	if err != nil {
		return nil, err
	}
	ex := newExtractor(tree, sp.ids)

	f := &doctree.FieldData{
		Name:     r.Name,
		Markdown: r.Content,
		HTML:     strings.TrimSpace(html),
		Text:     fragmentText(tree),
	}

	lists := outermostLists(tree)
	images := tree.FindAll(htmltree.IsImage)
	links := tree.FindAll(htmltree.IsLink)

	switch {
	case headingLineRe.MatchString(clean):
		f.Type = doctree.FieldHeading

	case len(lists) > 0:
		f.Type = doctree.FieldList
		for _, l := range lists {
			// Shallow query: a nested sub-list stays part of its parent
			// item's text instead of adding item records of its own.
			for _, li := range l.FindAllShallow(tree, htmltree.IsListItem) {
				item := &doctree.ContentElement{ID: sp.ids.id(), Text: li.Text(), HTML: li.HTML()}
				for _, a := range li.FindAll(tree, htmltree.IsLink) {
					item.Links = append(item.Links, ex.element(a))
				}
				for _, img := range li.FindAll(tree, htmltree.IsImage) {
					item.Images = append(item.Images, ex.element(img))
				}
				f.ListItems = append(f.ListItems, item)
			}
		}

	case len(images) > 0:
		f.Type = doctree.FieldImage
		if len(images) > 1 {
			f.Type = doctree.FieldImages
		}
		for _, img := range images {
			f.ImageData = append(f.ImageData, ex.element(img))
		}

	case len(links) > 0:
		f.Type = doctree.FieldLink
		if len(links) > 1 {
			f.Type = doctree.FieldLinks
		}
		for _, a := range links {
			f.LinkData = append(f.LinkData, ex.element(a))
		}

	default:
		f.Type = doctree.FieldText
	}
	return f, nil
}

func outermostLists(tree *htmltree.Tree) []*htmltree.Node {
	var out []*htmltree.Node
	for _, r := range tree.Roots() {
		out = append(out, r.FindAllShallow(tree, htmltree.IsList)...)
	}
	return out
}

func fragmentText(tree *htmltree.Tree) string {
	var texts []string
	for _, r := range tree.Roots() {
		if t := r.Text(); t != "" {
			texts = append(texts, t)
		}
	}
	return strings.Join(texts, "\n\n")
}
