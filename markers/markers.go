// Package markers locates and range-resolves the annotation comments that
// structure a LetMeDown document: section splits, paired subsection markers,
// and named field markers.
//
// All three families share one tokenizer. Matching of paired markers uses an
// explicit stack processed in a single left-to-right pass: a plain closer pops
// the most recent opener, a named closer splices the nearest opener with that
// name out of the stack, and openers still on the stack at end of scan are
// closed implicitly. Closers with no matching opener are ignored, and comment
// text the tokenizer does not recognize passes through as ordinary content.
package markers

import (
	"regexp"
	"sort"
	"strings"
)

// Mode distinguishes regular fields (content stops at the first blank line)
// from extended fields (content runs to the resolved closer).
type Mode int

const (
	ModeRegular Mode = iota
	ModeExtended
)

// Region is a named, range-resolved span of source text. Start and End are
// byte offsets into the scanned text delimiting the raw content between the
// opener and its resolved closing position; Marker is the offset of the
// opening marker itself (equal to Start for a region with no opener, such as
// a leading section). Content is the extracted text, already truncated (for
// regular fields) and trimmed.
type Region struct {
	Name    string
	Marker  int
	Start   int
	End     int
	Mode    Mode
	Content string
}

type tokenKind int

const (
	tokUnknown tokenKind = iota
	tokSection
	tokSubOpen
	tokSubClose
	tokFieldOpen
	tokFieldClose
	tokCloseAny
)

type token struct {
	kind  tokenKind
	name  string
	mode  Mode
	start int // offset of "<!--"
	end   int // offset just past "-->"
}

var (
	commentRe = regexp.MustCompile(`(?s)<!--(.*?)-->`)
	nameRe    = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_-]*$`)
)

// scan tokenizes every recognized marker comment in src, in document order.
func scan(src string) []token {
	var tokens []token
	for _, m := range commentRe.FindAllStringSubmatchIndex(src, -1) {
		inner := strings.TrimSpace(src[m[2]:m[3]])
		tok := classify(inner)
		if tok.kind == tokUnknown {
			continue
		}
		tok.start, tok.end = m[0], m[1]
		tokens = append(tokens, tok)
	}
	return tokens
}

// classify maps a comment's inner text to a marker token. Anything that does
// not match a marker form is reported as tokUnknown and left in the text.
func classify(inner string) token {
	switch {
	case inner == "section":
		return token{kind: tokSection}
	case strings.HasPrefix(inner, "section:"):
		name := inner[len("section:"):]
		if nameRe.MatchString(name) {
			return token{kind: tokSection, name: name}
		}
	case strings.HasPrefix(inner, "sub:"):
		name := inner[len("sub:"):]
		if nameRe.MatchString(name) {
			return token{kind: tokSubOpen, name: name}
		}
	case inner == "/sub":
		return token{kind: tokSubClose}
	case strings.HasPrefix(inner, "/sub:"):
		name := inner[len("/sub:"):]
		if nameRe.MatchString(name) {
			return token{kind: tokSubClose, name: name}
		}
	case inner == "/":
		return token{kind: tokCloseAny}
	case strings.HasPrefix(inner, "/"):
		name := inner[1:]
		if nameRe.MatchString(name) && name != "section" && name != "sub" {
			return token{kind: tokFieldClose, name: name}
		}
	case strings.HasSuffix(inner, "..."):
		name := strings.TrimSuffix(inner, "...")
		if nameRe.MatchString(name) && name != "section" && name != "sub" {
			return token{kind: tokFieldOpen, name: name, mode: ModeExtended}
		}
	case nameRe.MatchString(inner) && inner != "section" && inner != "sub":
		return token{kind: tokFieldOpen, name: inner, mode: ModeRegular}
	}
	return token{kind: tokUnknown}
}

// Sections splits src linearly on section markers. Each marker's region runs
// from just past it to just before the next section marker or end of text.
// With no section markers the whole text is one unnamed region; non-empty
// text preceding the first marker also becomes an unnamed leading region.
// Section regions are never dropped for being empty: an empty section still
// occupies a document index.
func Sections(src string) []Region {
	var marks []token
	for _, t := range scan(src) {
		if t.kind == tokSection {
			marks = append(marks, t)
		}
	}
	if len(marks) == 0 {
		return []Region{{Start: 0, End: len(src), Content: strings.TrimSpace(src)}}
	}

	var regions []Region
	if lead := src[:marks[0].start]; strings.TrimSpace(lead) != "" {
		regions = append(regions, Region{Start: 0, End: marks[0].start, Content: strings.TrimSpace(lead)})
	}
	for i, m := range marks {
		end := len(src)
		if i+1 < len(marks) {
			end = marks[i+1].start
		}
		regions = append(regions, Region{
			Name:    m.name,
			Marker:  m.start,
			Start:   m.end,
			End:     end,
			Content: strings.TrimSpace(src[m.end:end]),
		})
	}
	return regions
}

type openEntry struct {
	name     string
	mode     Mode
	start    int // content start (just past the opener)
	tokenIdx int
}

// Subsections resolves paired sub markers in src. A plain /sub closes the
// most recently opened subsection; /sub:name closes the nearest opener with
// that name, allowing interleaved close order. Openers never closed are
// closed implicitly at the next opener's start, or at end of text. Only
// outermost pairs are reported: subsections nest exactly one level, so a sub
// opened inside another sub's span is not a region of its own.
func Subsections(src string) []Region {
	tokens := scan(src)

	var stack []openEntry
	var regions []Region

	emit := func(e openEntry, end int) {
		content := strings.TrimSpace(src[e.start:end])
		if content == "" {
			return
		}
		regions = append(regions, Region{Name: e.name, Marker: tokens[e.tokenIdx].start, Start: e.start, End: end, Content: content})
	}

	for i, t := range tokens {
		switch t.kind {
		case tokSubOpen:
			stack = append(stack, openEntry{name: t.name, start: t.end, tokenIdx: i})
		case tokSubClose:
			if len(stack) == 0 {
				continue
			}
			if t.name == "" {
				top := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				emit(top, t.start)
				continue
			}
			for j := len(stack) - 1; j >= 0; j-- {
				if stack[j].name == t.name {
					emit(stack[j], t.start)
					stack = append(stack[:j], stack[j+1:]...)
					break
				}
			}
		}
	}

	// Implicit closure: an unterminated subsection extends to the next
	// opener after it, or to end of text.
	for _, left := range stack {
		end := len(src)
		for i := left.tokenIdx + 1; i < len(tokens); i++ {
			if tokens[i].kind == tokSubOpen {
				end = tokens[i].start
				break
			}
		}
		emit(left, end)
	}

	sort.Slice(regions, func(i, j int) bool { return regions[i].Start < regions[j].Start })
	return outermost(regions)
}

// outermost drops any region strictly contained in an earlier, wider one.
func outermost(regions []Region) []Region {
	var out []Region
	for _, r := range regions {
		nested := false
		for _, o := range regions {
			if o.Start < r.Start && r.End <= o.End {
				nested = true
				break
			}
		}
		if !nested {
			out = append(out, r)
		}
	}
	return out
}

// Fields resolves field markers in src using the same stack semantics as
// Subsections: <!-- /name --> splices the nearest opener named name,
// <!-- / --> pops the most recent opener, and unterminated fields close
// implicitly at the next field opener or end of text. A regular field's
// content is cut at its first blank line even when its resolved range runs
// further; an extended field keeps the full range. Within one scan only the
// first non-empty occurrence of each name is kept, and fields whose trimmed
// content is empty are dropped.
func Fields(src string) []Region {
	tokens := scan(src)

	var stack []openEntry
	var regions []Region

	emit := func(e openEntry, end int) {
		content := src[e.start:end]
		if e.mode == ModeRegular {
			content = firstParagraph(content)
		}
		content = strings.TrimSpace(content)
		if content == "" {
			return
		}
		regions = append(regions, Region{Name: e.name, Marker: tokens[e.tokenIdx].start, Start: e.start, End: end, Mode: e.mode, Content: content})
	}

	for i, t := range tokens {
		switch t.kind {
		case tokFieldOpen:
			stack = append(stack, openEntry{name: t.name, mode: t.mode, start: t.end, tokenIdx: i})
		case tokCloseAny:
			if len(stack) == 0 {
				continue
			}
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			emit(top, t.start)
		case tokFieldClose:
			for j := len(stack) - 1; j >= 0; j-- {
				if stack[j].name == t.name {
					emit(stack[j], t.start)
					stack = append(stack[:j], stack[j+1:]...)
					break
				}
			}
		}
	}

	for _, left := range stack {
		end := len(src)
		for i := left.tokenIdx + 1; i < len(tokens); i++ {
			if tokens[i].kind == tokFieldOpen {
				end = tokens[i].start
				break
			}
		}
		emit(left, end)
	}

	sort.Slice(regions, func(i, j int) bool { return regions[i].Start < regions[j].Start })

	// First occurrence per name wins. This is what keeps a field nested in a
	// child block from overwriting a parent scope's field of the same name.
	seen := make(map[string]bool)
	var out []Region
	for _, r := range regions {
		if seen[r.Name] {
			continue
		}
		seen[r.Name] = true
		out = append(out, r)
	}
	return out
}

// ClampEnd truncates a region's range at end and re-extracts its content
// from src, reapplying the mode's truncation rules. A no-op when end does
// not shorten the region. Callers use it to cut a field off at a boundary
// that takes precedence over the field's own closer.
func (r Region) ClampEnd(src string, end int) Region {
	if end >= r.End || end < r.Start {
		return r
	}
	r.End = end
	content := src[r.Start:end]
	if r.Mode == ModeRegular {
		content = firstParagraph(content)
	}
	r.Content = strings.TrimSpace(content)
	return r
}

var blankLineRe = regexp.MustCompile(`\n[ \t]*\n`)

// firstParagraph returns content up to, not including, the first blank-line
// break, ignoring leading blank lines between the marker and the content.
func firstParagraph(s string) string {
	s = strings.TrimLeft(s, " \t\r\n")
	if loc := blankLineRe.FindStringIndex(s); loc != nil {
		return s[:loc[0]]
	}
	return s
}

// Strip removes every recognized marker comment from src. Unrecognized
// comments stay put: the renderer passes them through unchanged.
func Strip(src string) string {
	tokens := scan(src)
	if len(tokens) == 0 {
		return src
	}
	var buf strings.Builder
	last := 0
	for _, t := range tokens {
		buf.WriteString(src[last:t.start])
		last = t.end
	}
	buf.WriteString(src[last:])
	return buf.String()
}
