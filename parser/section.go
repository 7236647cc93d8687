package parser

import (
	"github.com/lemachinarbo/LetMeDown/doctree"
	"github.com/lemachinarbo/LetMeDown/htmltree"
	"github.com/lemachinarbo/LetMeDown/markdown"
	"github.com/lemachinarbo/LetMeDown/markers"
)

// sectionParser carries the per-document state a section parse needs: the
// shared renderer and the document-wide element ID allocator.
type sectionParser struct {
	render *markdown.Renderer
	ids    *idAlloc
}

// parseSection turns one section's markdown into a Section: subsection and
// field ranges resolved, markers stripped, clean markdown rendered, blocks
// built and populated. nested is true when src is itself a subsection's
// content; subsections nest exactly one level, so a nested parse skips the
// subsection scan and any sub markers inside are stripped as plain markers.
func (sp *sectionParser) parseSection(src string, nested bool) (*doctree.Section, error) {
	var subs []markers.Region
	if !nested {
		subs = markers.Subsections(src)
	}

	// Section-scope fields are the ones opened outside every subsection
	// range. Subsection boundaries take precedence over a field's own
	// closer: a field opened before a boundary is clamped at it, keeping
	// only the content that belongs to this scope.
	var fields map[string]*doctree.FieldData
	{
		regions := markers.Fields(src)
		for _, r := range regions {
			if insideAny(r.Start, subs) {
				continue
			}
			if end, ok := nextBoundary(r, subs); ok {
				r = r.ClampEnd(src, end)
				if r.Content == "" {
					continue
				}
			}
			f, err := sp.classifyField(r)
			if err != nil || f == nil {
				continue
			}
			if fields == nil {
				fields = make(map[string]*doctree.FieldData)
			}
			if _, ok := fields[f.Name]; !ok {
				fields[f.Name] = f
			}
		}
	}

	clean := markers.Strip(src)
	html, err := sp.render.Render(clean)
	if err != nil {
		return nil, err
	}
	tree, err := htmltree.ParseFragment(html)
	if err != nil {
		return nil, err
	}

	sec := &doctree.Section{
		HTML:        html,
		Text:        fragmentText(tree),
		Blocks:      sp.buildBlocks(tree, src),
		Fields:      fields,
		Subsections: make(map[string]*doctree.Section),
	}
	if hs := tree.FindAll(htmltree.IsHeading); len(hs) > 0 {
		sec.Title = hs[0].Text()
	}

	for _, r := range subs {
		if _, ok := sec.Subsections[r.Name]; ok {
			continue
		}
		child, err := sp.parseSection(r.Content, true)
		if err != nil {
			return nil, err
		}
		sec.Subsections[r.Name] = child
	}
	return sec, nil
}

// nextBoundary reports the opening-marker offset of the first subsection a
// field region reaches into, if any.
func nextBoundary(f markers.Region, subs []markers.Region) (int, bool) {
	end, ok := -1, false
	for _, s := range subs {
		if s.Marker > f.Start && s.Marker < f.End && (!ok || s.Marker < end) {
			end, ok = s.Marker, true
		}
	}
	return end, ok
}

func insideAny(off int, regions []markers.Region) bool {
	for _, r := range regions {
		if off >= r.Start && off < r.End {
			return true
		}
	}
	return false
}
