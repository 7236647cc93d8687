package api

import (
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/lemachinarbo/LetMeDown/doctree"
	"github.com/lemachinarbo/LetMeDown/loader"
)

// handleParse accepts annotated Markdown (raw body) or a multipart file
// upload under "file" (.md, .txt, .docx, .pdf) and returns the assembled
// document tree as JSON.
func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)

	source, err := s.readSource(r)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if len(source) == 0 {
		jsonError(w, "empty document source", http.StatusBadRequest)
		return
	}

	doc, err := s.parser.Parse(source)
	if err != nil {
		jsonError(w, "parse failed: "+err.Error(), http.StatusUnprocessableEntity)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(documentView(doc))
}

// readSource pulls the markdown out of the request: a multipart "file" part
// converted through the loader, or the raw request body.
func (s *Server) readSource(r *http.Request) ([]byte, error) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(s.cfg.MaxUploadBytes); err != nil {
			return nil, err
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			return nil, err
		}
		defer file.Close()

		// Format converters read from a path, so stage the upload in a temp
		// file carrying the original extension.
		tmp, err := os.CreateTemp("", "letmedown-upload-*"+filepath.Ext(header.Filename))
		if err != nil {
			return nil, err
		}
		tmpPath := tmp.Name()
		defer os.Remove(tmpPath)
		if _, err := io.Copy(tmp, file); err != nil {
			tmp.Close()
			return nil, err
		}
		tmp.Close()
		return loader.Read(tmpPath)
	}
	return io.ReadAll(r.Body)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// documentView flattens a Document for JSON output, exercising the tree's
// aggregate queries for the document-wide collections.
func documentView(doc *doctree.Document) map[string]any {
	sections := doc.UniqueSections()

	// A named section is stored under both its name and its index; recover
	// the name keys per section for the view.
	names := make(map[*doctree.Section][]string)
	for key, sec := range doc.Sections {
		if _, err := strconv.Atoi(key); err == nil {
			continue
		}
		names[sec] = append(names[sec], key)
	}

	var secViews []map[string]any
	for i, sec := range sections {
		secViews = append(secViews, sectionView(sec, i, names[sec]))
	}

	return map[string]any{
		"meta":       doc.Meta,
		"sections":   secViews,
		"headings":   elementViews(doc.AllHeadings()),
		"images":     elementViews(doc.AllImages()),
		"links":      elementViews(doc.AllLinks()),
		"lists":      elementViews(doc.AllLists()),
		"paragraphs": elementViews(doc.AllParagraphs()),
	}
}

func sectionView(sec *doctree.Section, index int, names []string) map[string]any {
	v := map[string]any{
		"index":  index,
		"title":  sec.Title,
		"blocks": blockViews(sec.RealBlocks()),
	}
	if len(names) > 0 {
		v["names"] = names
	}
	if len(sec.Fields) > 0 {
		v["fields"] = fieldViews(sec.Fields)
	}
	if len(sec.Subsections) > 0 {
		subs := make(map[string]any, len(sec.Subsections))
		for name, sub := range sec.Subsections {
			subs[name] = sectionView(sub, 0, nil)
		}
		v["subsections"] = subs
	}
	return v
}

func blockViews(blocks []*doctree.Block) []map[string]any {
	var out []map[string]any
	for _, b := range blocks {
		v := map[string]any{
			"heading": b.Heading.Text,
			"level":   b.Level,
			"text":    b.Text,
		}
		if len(b.Paragraphs) > 0 {
			v["paragraphs"] = elementViews(b.Paragraphs)
		}
		if len(b.Images) > 0 {
			v["images"] = elementViews(b.Images)
		}
		if len(b.Links) > 0 {
			v["links"] = elementViews(b.Links)
		}
		if len(b.Lists) > 0 {
			v["lists"] = elementViews(b.Lists)
		}
		if len(b.Fields) > 0 {
			v["fields"] = fieldViews(b.Fields)
		}
		if len(b.Children) > 0 {
			v["blocks"] = blockViews(b.Children)
		}
		out = append(out, v)
	}
	return out
}

func fieldViews(fields map[string]*doctree.FieldData) map[string]any {
	out := make(map[string]any, len(fields))
	for name, f := range fields {
		v := map[string]any{
			"type": string(f.Type),
			"text": f.Text,
			"html": f.HTML,
		}
		if data := f.Data(); data != nil {
			v["data"] = data
		}
		if items := f.Items(); len(items) > 0 {
			v["items"] = elementViews(items)
		}
		out[name] = v
	}
	return out
}

func elementViews(elems []*doctree.ContentElement) []map[string]any {
	var out []map[string]any
	for _, e := range elems {
		v := map[string]any{"text": e.Text, "html": e.HTML}
		for k, val := range e.Attrs {
			v[k] = val
		}
		if len(e.Items) > 0 {
			v["items"] = e.Items
		}
		if len(e.Links) > 0 {
			v["links"] = elementViews(e.Links)
		}
		if len(e.Images) > 0 {
			v["images"] = elementViews(e.Images)
		}
		out = append(out, v)
	}
	return out
}
