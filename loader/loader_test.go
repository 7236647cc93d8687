package loader

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRead_Markdown(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.md")
	if err := os.WriteFile(path, []byte("# hi\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	data, err := Read(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != "# hi\n" {
		t.Errorf("markdown must load verbatim, got %q", data)
	}
}

func TestRead_UnsupportedExtension(t *testing.T) {
	_, err := Read("document.xlsx")
	if err == nil || !strings.Contains(err.Error(), "unsupported") {
		t.Fatalf("expected unsupported extension error, got %v", err)
	}
}

func TestRead_MissingFile(t *testing.T) {
	if _, err := Read(filepath.Join(t.TempDir(), "gone.md")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestIsSupported(t *testing.T) {
	tests := []struct {
		filename string
		want     bool
	}{
		{"a.md", true},
		{"a.MARKDOWN", true},
		{"a.txt", true},
		{"a.docx", true},
		{"a.pdf", true},
		{"a.html", false},
		{"a", false},
	}
	for _, tt := range tests {
		if got := IsSupported(tt.filename); got != tt.want {
			t.Errorf("IsSupported(%q) = %v, want %v", tt.filename, got, tt.want)
		}
	}
}
