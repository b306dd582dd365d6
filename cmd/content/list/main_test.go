package main

import (
	"context"
	"testing"
	"time"

	"github.com/goliatone/go-content/cmd/content/internal/bootstrap"
	"github.com/goliatone/go-content/internal/logging"
	"github.com/goliatone/go-content/pkg/interfaces"
)

type stubCatalog struct {
	entries    []*interfaces.EntryRecord
	lastSeries string
	lastTag    string
	lastOpts   interfaces.EntryListOptions
	listCalls  int
}

func (s *stubCatalog) Create(context.Context, interfaces.EntryCreateRequest) (*interfaces.EntryRecord, error) {
	return nil, nil
}

func (s *stubCatalog) Update(context.Context, interfaces.EntryUpdateRequest) (*interfaces.EntryRecord, error) {
	return nil, nil
}

func (s *stubCatalog) Delete(context.Context, interfaces.EntryDeleteRequest) error { return nil }

func (s *stubCatalog) GetBySlug(context.Context, string) (*interfaces.EntryRecord, error) {
	return nil, nil
}

func (s *stubCatalog) GetByPath(context.Context, string) (*interfaces.EntryRecord, error) {
	return nil, nil
}

func (s *stubCatalog) List(_ context.Context, opts interfaces.EntryListOptions) ([]*interfaces.EntryRecord, error) {
	s.listCalls++
	s.lastOpts = opts
	return s.entries, nil
}

func (s *stubCatalog) ListBySeries(_ context.Context, series string) ([]*interfaces.EntryRecord, error) {
	s.lastSeries = series
	return s.entries, nil
}

func (s *stubCatalog) ListByTag(_ context.Context, tag string) ([]*interfaces.EntryRecord, error) {
	s.lastTag = tag
	return s.entries, nil
}

func (s *stubCatalog) Series(context.Context) ([]string, error) { return []string{"wasi"}, nil }

func (s *stubCatalog) Tags(context.Context) ([]string, error) { return []string{"tooling"}, nil }

func stubModule(catalog *stubCatalog) func(bootstrap.Options) (*bootstrap.Module, error) {
	return func(bootstrap.Options) (*bootstrap.Module, error) {
		return &bootstrap.Module{
			Catalog: catalog,
			Logger:  logging.NoOp(),
		}, nil
	}
}

func TestRunListForwardsFilters(t *testing.T) {
	original := moduleBuilder
	defer func() { moduleBuilder = original }()

	catalog := &stubCatalog{entries: []*interfaces.EntryRecord{{Slug: "component-model"}}}
	moduleBuilder = stubModule(catalog)

	if err := runList([]string{"-series", "WASI from scratch"}); err != nil {
		t.Fatalf("runList returned error: %v", err)
	}
	if catalog.lastSeries != "WASI from scratch" {
		t.Fatalf("series filter not forwarded: %q", catalog.lastSeries)
	}

	if err := runList([]string{"-tag", "tooling"}); err != nil {
		t.Fatalf("runList returned error: %v", err)
	}
	if catalog.lastTag != "tooling" {
		t.Fatalf("tag filter not forwarded: %q", catalog.lastTag)
	}

	if err := runList([]string{"-limit", "5", "-offset", "2"}); err != nil {
		t.Fatalf("runList returned error: %v", err)
	}
	if catalog.listCalls != 1 || catalog.lastOpts.Limit != 5 || catalog.lastOpts.Offset != 2 {
		t.Fatalf("pagination not forwarded: calls=%d opts=%+v", catalog.listCalls, catalog.lastOpts)
	}
}

func TestRunListRejectsConflictingFilters(t *testing.T) {
	original := moduleBuilder
	defer func() { moduleBuilder = original }()

	moduleBuilder = stubModule(&stubCatalog{})

	if err := runList([]string{"-series", "a", "-tag", "b"}); err == nil {
		t.Fatal("expected conflicting filters to surface as an error")
	}
}

func TestRunListRequiresCatalog(t *testing.T) {
	original := moduleBuilder
	defer func() { moduleBuilder = original }()

	moduleBuilder = func(bootstrap.Options) (*bootstrap.Module, error) {
		return &bootstrap.Module{Logger: logging.NoOp()}, nil
	}

	if err := runList(nil); err == nil {
		t.Fatal("expected missing catalog to surface as an error")
	}
}

func TestFormatEntry(t *testing.T) {
	date := time.Date(2024, time.March, 12, 0, 0, 0, 0, time.UTC)
	entry := &interfaces.EntryRecord{
		Slug:   "wasi-preview-2",
		Title:  "WASI Preview 2",
		Date:   &date,
		Series: []string{"WASI from scratch"},
		Tags:   []string{"wasi", "webassembly"},
	}

	got := formatEntry(entry)
	want := "2024-03-12\twasi-preview-2\tWASI Preview 2\tseries:WASI from scratch\ttags:wasi,webassembly"
	if got != want {
		t.Fatalf("formatEntry = %q, want %q", got, want)
	}

	undated := formatEntry(&interfaces.EntryRecord{Slug: "draft", Title: "Draft"})
	if undated != "undated\tdraft\tDraft" {
		t.Fatalf("formatEntry undated = %q", undated)
	}
}
