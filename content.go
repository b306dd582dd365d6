// Package content manages a filesystem-backed repository of long-form
// Markdown entries: loading files with YAML front matter, inspecting bodies
// without rendering them, linting front matter and image references, and
// mirroring the validated corpus into a queryable SQLite catalog where series
// and tags act as many-to-many labels. The Markdown tree stays the source of
// truth; the catalog is a disposable index.
package content

import (
	"context"

	"github.com/uptrace/bun"

	"github.com/goliatone/go-content/internal/di"
	"github.com/goliatone/go-content/pkg/interfaces"
)

// Aliases for the public contracts so consumers only import this package.
type (
	Document    = interfaces.Document
	FrontMatter = interfaces.FrontMatter
	BodyReport  = interfaces.BodyReport
	MediaRef    = interfaces.MediaRef
	LinkRef     = interfaces.LinkRef

	Report   = interfaces.Report
	Issue    = interfaces.Issue
	Severity = interfaces.Severity

	EntryRecord        = interfaces.EntryRecord
	EntryCreateRequest = interfaces.EntryCreateRequest
	EntryUpdateRequest = interfaces.EntryUpdateRequest
	EntryDeleteRequest = interfaces.EntryDeleteRequest
	EntryListOptions   = interfaces.EntryListOptions

	LoadOptions    = interfaces.LoadOptions
	InspectOptions = interfaces.InspectOptions
	SyncOptions    = interfaces.SyncOptions
	SyncResult     = interfaces.SyncResult
	ImportResult   = interfaces.ImportResult

	MarkdownService = interfaces.MarkdownService
	BodyInspector   = interfaces.BodyInspector
	Linter          = interfaces.Linter
	CatalogService  = interfaces.CatalogService
	Syncer          = interfaces.Syncer
	Logger          = interfaces.Logger
	LoggerProvider  = interfaces.LoggerProvider
)

// Issue severities.
const (
	SeverityError   = interfaces.SeverityError
	SeverityWarning = interfaces.SeverityWarning
)

// Option customises module construction.
type Option = di.Option

// WithBunDB injects an existing database handle for the catalog index.
func WithBunDB(db *bun.DB) Option { return di.WithBunDB(db) }

// WithFS overrides the content filesystem, typically for tests or embedded corpora.
var WithFS = di.WithFS

// WithCache injects the repository cache service and key serializer pair.
var WithCache = di.WithCache

// WithLoggerProvider overrides the logging provider derived from configuration.
var WithLoggerProvider = di.WithLoggerProvider

// WithInspector overrides the Markdown body inspector.
var WithInspector = di.WithInspector

// Module is the host-facing entry point. It owns the service graph and
// exposes accessors for each enabled capability.
type Module struct {
	container *di.Container
}

// New validates cfg and assembles the module. Call Init before using the
// catalog so the index tables exist.
func New(cfg Config, opts ...Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Init prepares catalog storage. It is a no-op when the catalog is disabled
// and safe to call repeatedly.
func (m *Module) Init(ctx context.Context) error {
	return m.container.EnsureSchema(ctx)
}

// Markdown returns the entry loader and body inspector service.
func (m *Module) Markdown() MarkdownService {
	return m.container.MarkdownService()
}

// Linter returns the content-integrity checker, or nil when linting is disabled.
func (m *Module) Linter() Linter {
	return m.container.Linter()
}

// Catalog returns the queryable entry index, or nil when the catalog is disabled.
func (m *Module) Catalog() CatalogService {
	return m.container.CatalogService()
}

// Syncer mirrors loaded documents into the catalog, or nil when sync is disabled.
func (m *Module) Syncer() Syncer {
	return m.container.Syncer()
}

// LoggerProvider returns the configured logging provider, which may be nil.
func (m *Module) LoggerProvider() LoggerProvider {
	return m.container.LoggerProvider()
}

// DB exposes the catalog database handle for host integrations.
func (m *Module) DB() *bun.DB {
	return m.container.BunDB()
}

// Close releases resources owned by the module. Injected database handles are
// left open.
func (m *Module) Close() error {
	return m.container.Close()
}
