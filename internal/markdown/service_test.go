package markdown

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-content/pkg/interfaces"
)

func newTestService(t *testing.T, fsys fstest.MapFS, cfg Config) *Service {
	t.Helper()
	svc, err := NewServiceWithFS(cfg, nil, fsys)
	if err != nil {
		t.Fatalf("NewServiceWithFS: %v", err)
	}
	return svc
}

func TestServiceLoad(t *testing.T) {
	svc := newTestService(t, newCorpusFS(), Config{Recursive: true})

	doc, err := svc.Load(context.Background(), "posts/component-model.md", interfaces.LoadOptions{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if doc.FrontMatter.Author != "Dana Ihlen" {
		t.Fatalf("expected params.author to be mapped, got %q", doc.FrontMatter.Author)
	}
}

func TestServiceLoadDirectorySorted(t *testing.T) {
	svc := newTestService(t, newCorpusFS(), Config{Recursive: true})

	docs, err := svc.LoadDirectory(context.Background(), ".", interfaces.LoadOptions{})
	if err != nil {
		t.Fatalf("LoadDirectory: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(docs))
	}
	if docs[0].FilePath > docs[1].FilePath {
		t.Fatalf("documents not sorted by path: %q, %q", docs[0].FilePath, docs[1].FilePath)
	}
}

func TestServiceInspectDocument(t *testing.T) {
	svc := newTestService(t, newCorpusFS(), Config{Recursive: true})

	doc, err := svc.Load(context.Background(), "posts/component-model.md", interfaces.LoadOptions{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	report, err := svc.InspectDocument(context.Background(), doc, interfaces.InspectOptions{})
	if err != nil {
		t.Fatalf("InspectDocument: %v", err)
	}
	if report.WordCount == 0 {
		t.Fatalf("expected body words to be counted")
	}

	if _, err := svc.InspectDocument(context.Background(), nil, interfaces.InspectOptions{}); err == nil {
		t.Fatalf("expected error for nil document")
	}
}
