package markdown

import (
	"os"
	"strings"
	"testing"
	"time"
)

func readFixture(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read fixture %s: %v", path, err)
	}
	return data
}

func TestParseFrontMatter(t *testing.T) {
	data := readFixture(t, "testdata/wasi-preview-two.md")

	fm, body, err := ParseFrontMatter(data)
	if err != nil {
		t.Fatalf("ParseFrontMatter: %v", err)
	}

	if fm.Title != "WASI Preview 2 in Practice" {
		t.Fatalf("FrontMatter Title mismatch, got %q", fm.Title)
	}
	if !fm.HasDate() || fm.Date.Format("2006-01-02") != "2024-03-12" {
		t.Fatalf("FrontMatter Date mismatch: %v (raw %q)", fm.Date, fm.RawDate)
	}
	if fm.Author != "Dana Ihlen" {
		t.Fatalf("FrontMatter Author mismatch, got %q", fm.Author)
	}
	if len(fm.Series) != 1 || fm.Series[0] != "WASI from scratch" {
		t.Fatalf("FrontMatter Series mismatch: %#v", fm.Series)
	}
	if len(fm.Tags) != 2 || fm.Tags[0] != "wasi" {
		t.Fatalf("FrontMatter Tags mismatch: %#v", fm.Tags)
	}
	if fm.Custom["featured"] != true {
		t.Fatalf("FrontMatter Custom flag missing: %#v", fm.Custom)
	}
	if fm.Params["reading_time"] != 9 {
		t.Fatalf("FrontMatter Params extra missing: %#v", fm.Params)
	}
	if _, ok := fm.Raw["summary"]; !ok {
		t.Fatalf("FrontMatter Raw summary missing: %#v", fm.Raw)
	}
	if len(body) == 0 || !strings.Contains(string(body), "# WASI Preview 2 in Practice") {
		t.Fatalf("Markdown body not returned correctly: %q", string(body))
	}
}

func TestParseFrontMatterKeepsInvalidDateRaw(t *testing.T) {
	data := readFixture(t, "testdata/broken-date.md")

	fm, _, err := ParseFrontMatter(data)
	if err != nil {
		t.Fatalf("ParseFrontMatter: %v", err)
	}
	if fm.HasDate() {
		t.Fatalf("expected zero Date for malformed value, got %v", fm.Date)
	}
	if fm.RawDate != "not-a-real-date" {
		t.Fatalf("expected raw date preserved, got %q", fm.RawDate)
	}
	// Scalar tag folds into a single-element list.
	if len(fm.Tags) != 1 || fm.Tags[0] != "sandboxing" {
		t.Fatalf("scalar tags mismatch: %#v", fm.Tags)
	}
}

func TestParseDateLayouts(t *testing.T) {
	cases := map[string]bool{
		"2024-03-12":                true,
		"2024-03-12T10:30:00Z":      true,
		"2024-03-12T10:30:00":       true,
		"2024-03-12 10:30:00":       true,
		"12 March 2024":             false,
		"":                          false,
		"yesterday":                 false,
		"2024-13-40":                false,
	}

	for input, ok := range cases {
		ts, got := ParseDate(input)
		if got != ok {
			t.Fatalf("ParseDate(%q) ok=%v, want %v", input, got, ok)
		}
		if ok && ts.IsZero() {
			t.Fatalf("ParseDate(%q) returned zero time", input)
		}
	}
}

func TestBuildDocument(t *testing.T) {
	data := readFixture(t, "testdata/wasi-preview-two.md")
	modified := time.Now().UTC()

	doc, err := BuildDocument("posts/wasi-preview-two.md", data, modified)
	if err != nil {
		t.Fatalf("BuildDocument: %v", err)
	}

	if doc.FilePath != "posts/wasi-preview-two.md" {
		t.Fatalf("expected FilePath to be set, got %q", doc.FilePath)
	}
	if doc.LastModified != modified {
		t.Fatalf("expected LastModified to equal the provided timestamp")
	}
	if len(doc.Body) == 0 {
		t.Fatalf("expected Body to contain markdown content")
	}
}
