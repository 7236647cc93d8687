package markdown

import (
	"strings"
	"testing"
)

func TestRender_GFM(t *testing.T) {
	html, err := NewRenderer().Render("see https://example.com and ~~old~~ text")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(html, `<a href="https://example.com"`) {
		t.Errorf("bare URL should autolink: %q", html)
	}
	if !strings.Contains(html, "<del>old</del>") {
		t.Errorf("strikethrough missing: %q", html)
	}
}

func TestRender_RawHTMLPassthrough(t *testing.T) {
	html, err := NewRenderer().Render("keep <!-- not a marker! --> inline")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(html, "<!-- not a marker! -->") {
		t.Errorf("comments must pass through unrendered: %q", html)
	}
}
