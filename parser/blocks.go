package parser

import (
	"regexp"
	"strings"

	"github.com/lemachinarbo/LetMeDown/doctree"
	"github.com/lemachinarbo/LetMeDown/htmltree"
)

// buildBlocks converts a rendered node sequence into a block tree. raw is the
// corresponding section markdown with markers still present; each block's
// field scan runs over its own markdown span, located by heading text.
func (sp *sectionParser) buildBlocks(tree *htmltree.Tree, raw string) []*doctree.Block {
	nodes := tree.Roots()
	ex := newExtractor(tree, sp.ids)

	firstHeading := -1
	for i, n := range nodes {
		if htmltree.IsHeading(n) {
			firstHeading = i
			break
		}
	}

	// No headings anywhere: the whole sequence is one level-0 block.
	if firstHeading == -1 {
		b := &doctree.Block{Level: 0, Fields: sp.scanFields(raw)}
		sp.populate(b, ex, nodes)
		return []*doctree.Block{b}
	}

	parts := partitionMarkdown(raw)

	var flat []*doctree.Block

	// Content before the first heading. When the document does not start at
	// level 1 this becomes the synthetic level-1 root hosting the deeper
	// blocks; otherwise it is an ordinary headingless leading block.
	pre := nodes[:firstHeading]
	preMarkdown := raw
	if len(parts) > 0 {
		preMarkdown = raw[:parts[0].start]
	}
	if lead := nodes[firstHeading].HeadingLevel(); lead > 1 {
		b := &doctree.Block{Level: 1, Synthetic: true, Fields: sp.scanFields(preMarkdown)}
		sp.populate(b, ex, pre)
		flat = append(flat, b)
	} else if len(pre) > 0 {
		b := &doctree.Block{Level: 1, Fields: sp.scanFields(preMarkdown)}
		sp.populate(b, ex, pre)
		flat = append(flat, b)
	}

	for i := firstHeading; i < len(nodes); i++ {
		n := nodes[i]
		level := n.HeadingLevel()
		if level == 0 {
			continue
		}
		end := len(nodes)
		for j := i + 1; j < len(nodes); j++ {
			if htmltree.IsHeading(nodes[j]) {
				end = j
				break
			}
		}
		content := nodes[i+1 : end]

		b := &doctree.Block{
			Heading: doctree.HeadingElement{Text: n.Text(), HTML: n.HTML()},
			Level:   level,
			Fields:  sp.scanFields(blockMarkdown(parts, n.Text(), content)),
		}
		sp.populate(b, ex, content)
		if b.HTML != "" {
			b.HTML = n.HTML() + "\n" + b.HTML
		} else {
			b.HTML = n.HTML()
		}
		if b.Text != "" {
			b.Text = n.Text() + "\n\n" + b.Text
		} else {
			b.Text = n.Text()
		}
		flat = append(flat, b)
	}

	roots := stackTree(flat)
	for _, r := range roots {
		aggregate(r)
	}
	return roots
}

// populate fills a block's direct collections and own html/text from its
// content nodes.
func (sp *sectionParser) populate(b *doctree.Block, ex *extractor, content []*htmltree.Node) {
	got := ex.extract(content)
	b.Paragraphs = got.paragraphs
	b.Images = got.images
	b.Links = got.links
	b.Lists = got.lists

	var htmls, texts []string
	for _, n := range content {
		htmls = append(htmls, n.HTML())
		if t := n.Text(); t != "" {
			texts = append(texts, t)
		}
	}
	b.HTML = strings.Join(htmls, "\n")
	b.Text = strings.Join(texts, "\n\n")
}

// stackTree nests a flat level-ordered block list: pop open ancestors while
// the top's level is not shallower than the incoming block, then attach.
func stackTree(flat []*doctree.Block) []*doctree.Block {
	var roots []*doctree.Block
	var stack []*doctree.Block
	for _, b := range flat {
		for len(stack) > 0 && stack[len(stack)-1].Level >= b.Level {
			stack = stack[:len(stack)-1]
		}
		if len(stack) == 0 {
			roots = append(roots, b)
		} else {
			top := stack[len(stack)-1]
			top.Children = append(top.Children, b)
		}
		stack = append(stack, b)
	}
	return roots
}

// aggregate extends each block's html/text with its descendants' content in
// document order, returning the cumulative pair. A synthetic wrapper's own
// html/text are left untouched: it is structural only.
func aggregate(b *doctree.Block) (string, string) {
	var htmls, texts []string
	if b.HTML != "" {
		htmls = append(htmls, b.HTML)
	}
	if b.Text != "" {
		texts = append(texts, b.Text)
	}
	for _, c := range b.Children {
		ch, ct := aggregate(c)
		if ch != "" {
			htmls = append(htmls, ch)
		}
		if ct != "" {
			texts = append(texts, ct)
		}
	}
	html := strings.Join(htmls, "\n")
	text := strings.Join(texts, "\n\n")
	if !b.Synthetic {
		b.HTML = html
		b.Text = text
	}
	return html, text
}

// mdPartition is one heading's markdown span: the heading line through the
// start of the next heading at the same or a shallower level, so a parent's
// span covers its descendants.
type mdPartition struct {
	text  string
	level int
	start int
	body  string
	used  bool
}

var atxHeadingRe = regexp.MustCompile(`(?m)^(#{1,6})[ \t]+(.*?)[ \t]*#*[ \t]*$`)

func partitionMarkdown(src string) []*mdPartition {
	matches := atxHeadingRe.FindAllStringSubmatchIndex(src, -1)
	var parts []*mdPartition
	for _, m := range matches {
		parts = append(parts, &mdPartition{
			text:  normalizeInline(src[m[4]:m[5]]),
			level: m[3] - m[2],
			start: m[0],
		})
	}
	for i, p := range parts {
		end := len(src)
		for j := i + 1; j < len(parts); j++ {
			if parts[j].level <= p.level {
				end = parts[j].start
				break
			}
		}
		p.body = src[p.start:end]
	}
	return parts
}

var (
	inlineLinkRe = regexp.MustCompile(`!?\[([^\]]*)\]\([^)]*\)`)
	inlineMarkRe = regexp.MustCompile("[*_`~]")
	spacesRe     = regexp.MustCompile(`\s+`)
)

// normalizeInline reduces a markdown heading line to its visible text so it
// can be compared with the rendered heading's text.
func normalizeInline(s string) string {
	s = inlineLinkRe.ReplaceAllString(s, "$1")
	s = inlineMarkRe.ReplaceAllString(s, "")
	return strings.TrimSpace(spacesRe.ReplaceAllString(s, " "))
}

// blockMarkdown finds the markdown span for a heading. Partitions are
// consumed in document order, so duplicate heading text resolves by
// position. With no markdown match (inline markup the normalizer does not
// cover) the block's rendered content is scanned instead; markers never
// survive rendering, so that fallback yields no fields.
func blockMarkdown(parts []*mdPartition, headingText string, content []*htmltree.Node) string {
	want := strings.TrimSpace(spacesRe.ReplaceAllString(headingText, " "))
	for _, p := range parts {
		if p.used {
			continue
		}
		if p.text == want {
			p.used = true
			return p.body
		}
	}
	var htmls []string
	for _, n := range content {
		htmls = append(htmls, n.HTML())
	}
	return strings.Join(htmls, "\n")
}
