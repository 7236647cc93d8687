package api

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/lemachinarbo/LetMeDown/internal/config"
)

func newTestServer(apiKey string) *Server {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := config.Config{Port: "0", APIKey: apiKey, MaxUploadBytes: 1 << 20}
	return NewServer(log, cfg)
}

func TestHandleParse_RawMarkdown(t *testing.T) {
	srv := newTestServer("")
	body := "<!-- section:hero -->\n# Hero\n\n<!-- image -->\n![alt](x.jpg)\n"
	req := httptest.NewRequest(http.MethodPost, "/api/parse", strings.NewReader(body))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	var got map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	sections, ok := got["sections"].([]any)
	if !ok || len(sections) != 1 {
		t.Fatalf("expected 1 section in response, got %v", got["sections"])
	}
	sec := sections[0].(map[string]any)
	if sec["title"] != "Hero" {
		t.Errorf("section title: %v", sec["title"])
	}
	fields, ok := sec["fields"].(map[string]any)
	if !ok {
		t.Fatalf("missing fields: %v", sec)
	}
	img := fields["image"].(map[string]any)
	if img["type"] != "image" {
		t.Errorf("field type: %v", img["type"])
	}
	data := img["data"].(map[string]any)
	if data["src"] != "x.jpg" || data["alt"] != "alt" {
		t.Errorf("image data: %v", data)
	}
}

func TestHandleParse_EmptyBody(t *testing.T) {
	srv := newTestServer("")
	req := httptest.NewRequest(http.MethodPost, "/api/parse", strings.NewReader(""))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty source, got %d", rec.Code)
	}
}

func TestAuth(t *testing.T) {
	srv := newTestServer("secret")

	req := httptest.NewRequest(http.MethodPost, "/api/parse", strings.NewReader("# x"))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/api/parse", strings.NewReader("# x"))
	req.Header.Set("Authorization", "Bearer secret")
	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with token, got %d", rec.Code)
	}
}

func TestHealth(t *testing.T) {
	srv := newTestServer("secret")
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("health must be public, got %d", rec.Code)
	}
}
