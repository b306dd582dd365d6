package catalog

import (
	"context"
	"crypto/sha256"
	"testing"
	"time"

	"github.com/goliatone/go-content/internal/markdown"
	"github.com/goliatone/go-content/pkg/interfaces"
)

const syncEntryOne = `---
title: "An Introduction to WASI"
date: 2024-01-15
summary: "System interfaces for sandboxed code."
series:
  - "WASI from scratch"
tags:
  - wasi
params:
  author: "Dana Ihlen"
---

WASI gives sandboxed modules a capability-based view of the host. This body
has enough words to produce a meaningful count.
`

const syncEntryTwo = `---
title: "Component Model Deep Dive"
date: 2024-02-01
summary: "Worlds, interfaces, and composition."
params:
  author: "Dana Ihlen"
---

Components compose WebAssembly modules through typed interfaces.
`

func newTestSyncer(t *testing.T) (*Syncer, *Service) {
	t.Helper()
	svc, _ := newTestService(t)
	syncer := NewSyncer(SyncerConfig{Catalog: svc})
	return syncer, svc
}

func syncDoc(t *testing.T, path, source string) *interfaces.Document {
	t.Helper()
	doc, err := markdown.BuildDocument(path, []byte(source), time.Now())
	if err != nil {
		t.Fatalf("BuildDocument %s: %v", path, err)
	}
	sum := sha256.Sum256([]byte(source))
	doc.Checksum = sum[:]
	return doc
}

func TestSyncDocumentsCreatesEntries(t *testing.T) {
	syncer, svc := newTestSyncer(t)
	ctx := context.Background()

	docs := []*interfaces.Document{
		syncDoc(t, "posts/wasi-intro.md", syncEntryOne),
		syncDoc(t, "posts/component-model.md", syncEntryTwo),
	}

	result, err := syncer.SyncDocuments(ctx, docs, interfaces.SyncOptions{})
	if err != nil {
		t.Fatalf("SyncDocuments: %v", err)
	}
	if result.Created != 2 || result.Updated != 0 || result.Skipped != 0 {
		t.Fatalf("unexpected result %+v", result)
	}

	entry, err := svc.GetBySlug(ctx, "wasi-intro")
	if err != nil {
		t.Fatalf("GetBySlug: %v", err)
	}
	if entry.Title != "An Introduction to WASI" {
		t.Fatalf("unexpected title %q", entry.Title)
	}
	if entry.Author == nil || *entry.Author != "Dana Ihlen" {
		t.Fatalf("unexpected author %v", entry.Author)
	}
	if entry.Date == nil || !entry.Date.Equal(time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected date %v", entry.Date)
	}
	if len(entry.Series) != 1 || entry.Series[0] != "WASI from scratch" {
		t.Fatalf("unexpected series %v", entry.Series)
	}
	if entry.WordCount == 0 {
		t.Fatalf("expected a word count from body inspection")
	}
}

func TestSyncDocumentsSkipsUnchanged(t *testing.T) {
	syncer, _ := newTestSyncer(t)
	ctx := context.Background()

	docs := []*interfaces.Document{
		syncDoc(t, "posts/wasi-intro.md", syncEntryOne),
	}

	if _, err := syncer.SyncDocuments(ctx, docs, interfaces.SyncOptions{}); err != nil {
		t.Fatalf("first sync: %v", err)
	}
	result, err := syncer.SyncDocuments(ctx, docs, interfaces.SyncOptions{})
	if err != nil {
		t.Fatalf("second sync: %v", err)
	}
	if result.Created != 0 || result.Updated != 0 || result.Skipped != 1 {
		t.Fatalf("unexpected result %+v", result)
	}
}

func TestSyncDocumentsUpdatesChanged(t *testing.T) {
	syncer, svc := newTestSyncer(t)
	ctx := context.Background()

	if _, err := syncer.SyncDocuments(ctx, []*interfaces.Document{
		syncDoc(t, "posts/wasi-intro.md", syncEntryOne),
	}, interfaces.SyncOptions{}); err != nil {
		t.Fatalf("first sync: %v", err)
	}

	edited := syncDoc(t, "posts/wasi-intro.md", syncEntryOne+"\nAn extra paragraph after an edit.\n")
	result, err := syncer.SyncDocuments(ctx, []*interfaces.Document{edited}, interfaces.SyncOptions{})
	if err != nil {
		t.Fatalf("second sync: %v", err)
	}
	if result.Updated != 1 || result.Created != 0 {
		t.Fatalf("unexpected result %+v", result)
	}

	entry, err := svc.GetBySlug(ctx, "wasi-intro")
	if err != nil {
		t.Fatalf("GetBySlug: %v", err)
	}
	if entry.UpdatedAt.IsZero() {
		t.Fatalf("expected updated timestamp")
	}
}

func TestSyncDocumentsTracksMovedFile(t *testing.T) {
	syncer, svc := newTestSyncer(t)
	ctx := context.Background()

	if _, err := syncer.SyncDocuments(ctx, []*interfaces.Document{
		syncDoc(t, "posts/wasi-intro.md", syncEntryOne),
	}, interfaces.SyncOptions{}); err != nil {
		t.Fatalf("first sync: %v", err)
	}

	moved := syncDoc(t, "archive/wasi-intro.md", syncEntryOne)
	result, err := syncer.SyncDocuments(ctx, []*interfaces.Document{moved}, interfaces.SyncOptions{DeleteOrphaned: true})
	if err != nil {
		t.Fatalf("moved sync: %v", err)
	}
	if result.Updated != 1 || result.Created != 0 || result.Skipped != 0 || result.Deleted != 0 {
		t.Fatalf("unexpected result %+v", result)
	}

	entry, err := svc.GetBySlug(ctx, "wasi-intro")
	if err != nil {
		t.Fatalf("GetBySlug: %v", err)
	}
	if entry.Path != "archive/wasi-intro.md" {
		t.Fatalf("catalog still points at the old location: %q", entry.Path)
	}

	if _, err := svc.GetByPath(ctx, "archive/wasi-intro.md"); err != nil {
		t.Fatalf("GetByPath new location: %v", err)
	}
	if _, err := svc.GetByPath(ctx, "posts/wasi-intro.md"); !IsNotFound(err) {
		t.Fatalf("old location should no longer resolve, got %v", err)
	}
}

func TestSyncDocumentsDeletesOrphans(t *testing.T) {
	syncer, svc := newTestSyncer(t)
	ctx := context.Background()

	both := []*interfaces.Document{
		syncDoc(t, "posts/wasi-intro.md", syncEntryOne),
		syncDoc(t, "posts/component-model.md", syncEntryTwo),
	}
	if _, err := syncer.SyncDocuments(ctx, both, interfaces.SyncOptions{}); err != nil {
		t.Fatalf("seed sync: %v", err)
	}

	remaining := both[:1]
	result, err := syncer.SyncDocuments(ctx, remaining, interfaces.SyncOptions{DeleteOrphaned: true})
	if err != nil {
		t.Fatalf("orphan sync: %v", err)
	}
	if result.Deleted != 1 {
		t.Fatalf("unexpected result %+v", result)
	}
	if _, err := svc.GetBySlug(ctx, "component-model"); !IsNotFound(err) {
		t.Fatalf("expected orphan removal, got %v", err)
	}
}

func TestSyncDocumentsDryRun(t *testing.T) {
	syncer, svc := newTestSyncer(t)
	ctx := context.Background()

	result, err := syncer.SyncDocuments(ctx, []*interfaces.Document{
		syncDoc(t, "posts/wasi-intro.md", syncEntryOne),
	}, interfaces.SyncOptions{DryRun: true})
	if err != nil {
		t.Fatalf("dry-run sync: %v", err)
	}
	if result.Created != 1 {
		t.Fatalf("dry run should report the pending create: %+v", result)
	}

	entries, err := svc.List(ctx, interfaces.EntryListOptions{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("dry run must not persist, found %d entries", len(entries))
	}
}

func TestImportDocumentsRejectsDuplicateSlugs(t *testing.T) {
	syncer, svc := newTestSyncer(t)
	ctx := context.Background()

	docs := []*interfaces.Document{
		syncDoc(t, "posts/component-model/intro.md", syncEntryTwo),
		syncDoc(t, "posts/wasi/intro.md", syncEntryOne),
	}

	result, err := syncer.ImportDocuments(ctx, docs, interfaces.SyncOptions{})
	if err == nil {
		t.Fatalf("expected duplicate slug error")
	}
	if len(result.CreatedIDs) != 1 {
		t.Fatalf("expected the first file to win, got %+v", result)
	}

	entry, err := svc.GetBySlug(ctx, "intro")
	if err != nil {
		t.Fatalf("GetBySlug: %v", err)
	}
	if entry.Path != "posts/component-model/intro.md" {
		t.Fatalf("unexpected winner %q", entry.Path)
	}
}
