package markdown

import (
	"testing"

	"github.com/goliatone/go-content/pkg/interfaces"
)

const inspectorBody = `# Sandboxing

WebAssembly isolates guest code behind a capability boundary.

![sandbox layers](https://assets.example.com/img/sandbox-layers.png)

Details in the [WASI docs](https://wasi.dev/interfaces).

` + "```go\nfunc main() {\n\tprintln(\"sandboxed\")\n}\n```" + `

## Benchmarks

| run | native | wasm |
|-----|--------|------|
| 1   | 12ms   | 19ms |
`

func TestInspectCollectsStructure(t *testing.T) {
	inspector := NewGoldmarkInspector(interfaces.InspectOptions{})

	report, err := inspector.Inspect([]byte(inspectorBody))
	if err != nil {
		t.Fatalf("Inspect: %v", err)
	}

	if len(report.Headings) != 2 || report.Headings[0].Text != "Sandboxing" || report.Headings[0].Level != 1 {
		t.Fatalf("headings mismatch: %#v", report.Headings)
	}
	if len(report.Images) != 1 || report.Images[0].URL != "https://assets.example.com/img/sandbox-layers.png" {
		t.Fatalf("images mismatch: %#v", report.Images)
	}
	if report.Images[0].Alt != "sandbox layers" {
		t.Fatalf("image alt mismatch: %#v", report.Images[0])
	}
	if len(report.Links) != 1 || report.Links[0].URL != "https://wasi.dev/interfaces" {
		t.Fatalf("links mismatch: %#v", report.Links)
	}
	if len(report.Listings) != 1 || report.Listings[0].Language != "go" {
		t.Fatalf("listings mismatch: %#v", report.Listings)
	}
	if report.Listings[0].Lines != 3 {
		t.Fatalf("expected 3 listing lines, got %d", report.Listings[0].Lines)
	}
	if report.WordCount == 0 {
		t.Fatalf("expected non-zero word count")
	}
}

func TestInspectWithOptionsUnknownExtensionIgnored(t *testing.T) {
	inspector := NewGoldmarkInspector(interfaces.InspectOptions{})

	report, err := inspector.InspectWithOptions([]byte("plain body"), interfaces.InspectOptions{
		Extensions: []string{"table", "does-not-exist"},
	})
	if err != nil {
		t.Fatalf("InspectWithOptions: %v", err)
	}
	if report.WordCount != 2 {
		t.Fatalf("expected word count 2, got %d", report.WordCount)
	}
}

func TestInspectAutoLink(t *testing.T) {
	inspector := NewGoldmarkInspector(interfaces.InspectOptions{})

	report, err := inspector.Inspect([]byte("see https://webassembly.org for more"))
	if err != nil {
		t.Fatalf("Inspect: %v", err)
	}
	if len(report.Links) != 1 || report.Links[0].URL != "https://webassembly.org" {
		t.Fatalf("autolink mismatch: %#v", report.Links)
	}
}
