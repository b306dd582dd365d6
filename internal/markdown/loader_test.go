package markdown

import (
	"context"
	"crypto/sha256"
	"testing"
	"testing/fstest"
)

const entrySource = `---
title: "Why the Component Model Matters"
date: 2024-05-02
summary: "Composable WebAssembly beyond modules."
tags:
  - component-model
params:
  author: "Dana Ihlen"
---

Body text.
`

func newCorpusFS() fstest.MapFS {
	return fstest.MapFS{
		"posts/component-model.md": &fstest.MapFile{Data: []byte(entrySource)},
		"posts/drafts/notes.md":    &fstest.MapFile{Data: []byte(entrySource)},
		"posts/README.txt":         &fstest.MapFile{Data: []byte("not an entry")},
	}
}

func TestLoadFileComputesChecksum(t *testing.T) {
	loader := NewLoader(newCorpusFS(), LoaderConfig{Recursive: true})

	result, err := loader.LoadFile(context.Background(), "posts/component-model.md", LoadParams{})
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}

	want := sha256.Sum256([]byte(entrySource))
	if string(result.Document.Checksum) != string(want[:]) {
		t.Fatalf("checksum mismatch")
	}
	if result.Document.FrontMatter.Title != "Why the Component Model Matters" {
		t.Fatalf("front matter not parsed: %#v", result.Document.FrontMatter)
	}
}

func TestLoadDirectoryRecursive(t *testing.T) {
	loader := NewLoader(newCorpusFS(), LoaderConfig{Recursive: true})

	results, err := loader.LoadDirectory(context.Background(), "posts", LoadParams{})
	if err != nil {
		t.Fatalf("LoadDirectory: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 markdown entries, got %d", len(results))
	}
	// Sorted by path.
	if results[0].Document.FilePath != "posts/component-model.md" {
		t.Fatalf("unexpected order: %q first", results[0].Document.FilePath)
	}
}

func TestLoadDirectoryNonRecursive(t *testing.T) {
	loader := NewLoader(newCorpusFS(), LoaderConfig{Recursive: false})

	results, err := loader.LoadDirectory(context.Background(), "posts", LoadParams{})
	if err != nil {
		t.Fatalf("LoadDirectory: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected only top-level entries, got %d", len(results))
	}
}

func TestLoadDirectoryPatternOverride(t *testing.T) {
	loader := NewLoader(newCorpusFS(), LoaderConfig{Recursive: true})

	results, err := loader.LoadDirectory(context.Background(), "posts", LoadParams{Pattern: "*.txt"})
	if err != nil {
		t.Fatalf("LoadDirectory: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected the override pattern to match README.txt only, got %d", len(results))
	}
	if results[0].Document.FrontMatter.Title != "" {
		t.Fatalf("expected empty front matter for plain text file")
	}
}

func TestLoadDirectoryCancelledContext(t *testing.T) {
	loader := NewLoader(newCorpusFS(), LoaderConfig{Recursive: true})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := loader.LoadDirectory(ctx, "posts", LoadParams{}); err == nil {
		t.Fatalf("expected context error")
	}
}
