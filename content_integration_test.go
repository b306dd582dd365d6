package content_test

import (
	"context"
	"testing"
	"testing/fstest"

	content "github.com/goliatone/go-content"
	"github.com/goliatone/go-content/pkg/testsupport"
)

const introEntry = `---
title: "Component Model, Explained"
date: 2024-01-15
summary: "Why the component model exists and what it replaces."
series:
  - WASI from scratch
tags:
  - wasi
  - components
params:
  author: "Dana Ihlen"
---

# Component Model, Explained

Modules compose through typed interfaces rather than shared memory.

![component diagram](https://assets.example.com/img/component-model.png)
`

const previewEntry = `---
title: "WASI Preview 2 in Practice"
date: 2024-03-12
summary: "What the new WASI surface actually changes."
series:
  - WASI from scratch
tags:
  - wasi
  - webassembly
params:
  author: "Dana Ihlen"
---

The second preview replaces the POSIX-flavoured syscall list with typed
interfaces.

![wasi diagram](https://assets.example.com/img/wasi-p2.png)
`

const draftEntry = `---
title: "Profiling Wasm in Production"
date: 2024-05-02
summary: "Flame graphs for guest code."
tags:
  - tooling
params:
  author: "Morgan Lindqvist"
---

Sampling profilers treat the guest stack as opaque frames.

![local sketch](img/profiler-sketch.png)
`

func corpusFS() fstest.MapFS {
	return fstest.MapFS{
		"posts/component-model.md": &fstest.MapFile{Data: []byte(introEntry)},
		"posts/wasi-preview-2.md":  &fstest.MapFile{Data: []byte(previewEntry)},
		"posts/profiling-wasm.md":  &fstest.MapFile{Data: []byte(draftEntry)},
	}
}

func newTestModule(t *testing.T) *content.Module {
	t.Helper()

	db, err := testsupport.NewBunSQLiteDB()
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	cfg := content.DefaultConfig()
	cfg.Storage.DSN = "file::memory:"

	module, err := content.New(cfg, content.WithFS(corpusFS()), content.WithBunDB(db))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { module.Close() })

	if err := module.Init(context.Background()); err != nil {
		t.Fatalf("Init: %v", err)
	}
	return module
}

func TestModuleLoadLintSyncQuery(t *testing.T) {
	module := newTestModule(t)
	ctx := context.Background()

	docs, err := module.Markdown().LoadDirectory(ctx, "posts", content.LoadOptions{})
	if err != nil {
		t.Fatalf("LoadDirectory: %v", err)
	}
	if len(docs) != 3 {
		t.Fatalf("expected 3 documents, got %d", len(docs))
	}

	report, err := module.Linter().CheckDocuments(ctx, docs)
	if err != nil {
		t.Fatalf("CheckDocuments: %v", err)
	}
	if report.HasErrors() {
		t.Fatalf("corpus must lint clean of errors: %+v", report.Issues)
	}
	errCount, warnCount := report.Counts()
	if errCount != 0 || warnCount != 1 {
		t.Fatalf("expected exactly one relative-image warning, got %d errors %d warnings", errCount, warnCount)
	}
	if report.Issues[0].Path != "posts/profiling-wasm.md" {
		t.Fatalf("warning attributed to wrong entry: %+v", report.Issues[0])
	}

	result, err := module.Syncer().SyncDocuments(ctx, docs, content.SyncOptions{})
	if err != nil {
		t.Fatalf("SyncDocuments: %v", err)
	}
	if result.Created != 3 {
		t.Fatalf("expected 3 created entries, got %+v", result)
	}

	entry, err := module.Catalog().GetBySlug(ctx, "wasi-preview-2")
	if err != nil {
		t.Fatalf("GetBySlug: %v", err)
	}
	if entry.Title != "WASI Preview 2 in Practice" {
		t.Fatalf("unexpected title %q", entry.Title)
	}
	if entry.Author == nil || *entry.Author != "Dana Ihlen" {
		t.Fatalf("unexpected author %+v", entry.Author)
	}

	inSeries, err := module.Catalog().ListBySeries(ctx, "WASI from scratch")
	if err != nil {
		t.Fatalf("ListBySeries: %v", err)
	}
	if len(inSeries) != 2 {
		t.Fatalf("expected 2 entries in series, got %d", len(inSeries))
	}
	if inSeries[0].Slug != "component-model" || inSeries[1].Slug != "wasi-preview-2" {
		t.Fatalf("series not in publication order: %q, %q", inSeries[0].Slug, inSeries[1].Slug)
	}

	tagged, err := module.Catalog().ListByTag(ctx, "tooling")
	if err != nil {
		t.Fatalf("ListByTag: %v", err)
	}
	if len(tagged) != 1 || tagged[0].Slug != "profiling-wasm" {
		t.Fatalf("unexpected tag query result: %+v", tagged)
	}

	tags, err := module.Catalog().Tags(ctx)
	if err != nil {
		t.Fatalf("Tags: %v", err)
	}
	if len(tags) != 4 {
		t.Fatalf("expected 4 tag labels, got %v", tags)
	}
}

func TestModuleSyncIsIncremental(t *testing.T) {
	module := newTestModule(t)
	ctx := context.Background()

	docs, err := module.Markdown().LoadDirectory(ctx, "posts", content.LoadOptions{})
	if err != nil {
		t.Fatalf("LoadDirectory: %v", err)
	}
	if _, err := module.Syncer().SyncDocuments(ctx, docs, content.SyncOptions{}); err != nil {
		t.Fatalf("first sync: %v", err)
	}

	result, err := module.Syncer().SyncDocuments(ctx, docs, content.SyncOptions{})
	if err != nil {
		t.Fatalf("second sync: %v", err)
	}
	if result.Created != 0 || result.Updated != 0 || result.Skipped != 3 {
		t.Fatalf("expected unchanged corpus to be skipped, got %+v", result)
	}

	orphans, err := module.Syncer().SyncDocuments(ctx, docs[:2], content.SyncOptions{DeleteOrphaned: true})
	if err != nil {
		t.Fatalf("orphan sync: %v", err)
	}
	if orphans.Deleted != 1 {
		t.Fatalf("expected 1 deleted orphan, got %+v", orphans)
	}
	if _, err := module.Catalog().List(ctx, content.EntryListOptions{}); err != nil {
		t.Fatalf("List: %v", err)
	}
}
