// Package loader reads document sources from disk. Markdown loads verbatim;
// other supported formats are converted to Markdown text first, so every
// source flows through the same annotation parser.
package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// SupportedExtensions lists the source formats the loader can handle.
var SupportedExtensions = map[string]bool{
	".md":       true,
	".markdown": true,
	".txt":      true,
	".docx":     true,
	".pdf":      true,
}

// IsSupported checks whether a filename has a loadable extension.
func IsSupported(filename string) bool {
	return SupportedExtensions[strings.ToLower(filepath.Ext(filename))]
}

// Read loads the source at path and returns its Markdown content. Missing or
// unreadable files and unsupported extensions are load errors; they are the
// only failure path the parser surfaces to callers.
func Read(path string) ([]byte, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".md", ".markdown", ".txt":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read source: %w", err)
		}
		return data, nil
	case ".docx":
		return readDOCX(path)
	case ".pdf":
		return readPDF(path)
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", ext)
	}
}
