// Package di wires the content module services together. The container owns
// construction order: logging first, then the markdown loader, the linter,
// and finally the catalog layer when storage is configured.
package di

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	"github.com/goliatone/go-repository-cache/cache"

	"github.com/goliatone/go-content/internal/catalog"
	"github.com/goliatone/go-content/internal/lint"
	"github.com/goliatone/go-content/internal/logging"
	gologgerprovider "github.com/goliatone/go-content/internal/logging/gologger"
	"github.com/goliatone/go-content/internal/markdown"
	"github.com/goliatone/go-content/internal/runtimeconfig"
	"github.com/goliatone/go-content/pkg/interfaces"
)

// Container assembles and owns the runtime services of the content module.
type Container struct {
	Config runtimeconfig.Config

	fsys           fs.FS
	bunDB          *bun.DB
	ownsDB         bool
	cacheService   cache.CacheService
	keySerializer  cache.KeySerializer
	loggerProvider interfaces.LoggerProvider

	inspector   interfaces.BodyInspector
	markdownSvc interfaces.MarkdownService
	linter      interfaces.Linter
	catalogSvc  interfaces.CatalogService
	syncer      interfaces.Syncer
}

// Option customises container construction.
type Option func(*Container)

// WithBunDB injects an existing database handle. The container will not close
// injected handles.
func WithBunDB(db *bun.DB) Option {
	return func(c *Container) {
		c.bunDB = db
	}
}

// WithFS overrides the content filesystem. Tests and embedded corpora pass an
// fstest.MapFS or embed.FS; paths are then resolved against the filesystem
// root instead of Config.Content.Dir.
func WithFS(filesystem fs.FS) Option {
	return func(c *Container) {
		c.fsys = filesystem
	}
}

// WithCache injects the repository cache pair. Repositories are only wrapped
// when both the service and the key serializer are present.
func WithCache(service cache.CacheService, serializer cache.KeySerializer) Option {
	return func(c *Container) {
		c.cacheService = service
		c.keySerializer = serializer
	}
}

// WithLoggerProvider overrides the provider derived from Config.Logging.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.loggerProvider = provider
	}
}

// WithInspector overrides the goldmark body inspector.
func WithInspector(inspector interfaces.BodyInspector) Option {
	return func(c *Container) {
		c.inspector = inspector
	}
}

// NewContainer validates the configuration and builds every enabled service.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Container{Config: cfg}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	if err := c.initLogging(); err != nil {
		return nil, err
	}
	if err := c.initMarkdown(); err != nil {
		return nil, err
	}
	c.initLint()
	if err := c.initCatalog(); err != nil {
		c.Close()
		return nil, err
	}

	return c, nil
}

func (c *Container) initLogging() error {
	if c.loggerProvider != nil || !c.Config.Features.Logger {
		return nil
	}

	switch strings.ToLower(strings.TrimSpace(c.Config.Logging.Provider)) {
	case "gologger":
		provider, err := gologgerprovider.NewProvider(gologgerprovider.Config{
			Level:     c.Config.Logging.Level,
			Format:    c.Config.Logging.Format,
			AddSource: c.Config.Logging.AddSource,
			Focus:     c.Config.Logging.Focus,
		})
		if err != nil {
			return fmt.Errorf("container: build logger provider: %w", err)
		}
		c.loggerProvider = provider
	case "console":
		provider, err := gologgerprovider.NewProvider(gologgerprovider.Config{
			Level:  c.Config.Logging.Level,
			Format: "console",
		})
		if err != nil {
			return fmt.Errorf("container: build logger provider: %w", err)
		}
		c.loggerProvider = provider
	}
	return nil
}

func (c *Container) initMarkdown() error {
	if c.inspector == nil {
		c.inspector = markdown.NewGoldmarkInspector(interfaces.InspectOptions{
			Extensions: c.Config.Markdown.Extensions,
		})
	}

	mdCfg := markdown.Config{
		BasePath:  c.Config.Content.Dir,
		Pattern:   c.Config.Content.Pattern,
		Recursive: c.Config.Content.Recursive,
		Inspect: interfaces.InspectOptions{
			Extensions: c.Config.Markdown.Extensions,
		},
	}

	var (
		svc *markdown.Service
		err error
	)
	if c.fsys != nil {
		mdCfg.BasePath = ""
		svc, err = markdown.NewServiceWithFS(mdCfg, c.inspector, c.fsys)
	} else {
		svc, err = markdown.NewService(mdCfg, c.inspector)
	}
	if err != nil {
		return fmt.Errorf("container: build markdown service: %w", err)
	}
	c.markdownSvc = svc
	return nil
}

func (c *Container) initLint() {
	if !c.Config.Features.Lint {
		return
	}
	c.linter = lint.New(lint.Config{
		AllowedSchemes:        c.Config.Lint.AllowedSchemes,
		RequireAbsoluteImages: c.Config.Lint.RequireAbsoluteImages,
	}, c.inspector, logging.LintLogger(c.loggerProvider))
}

func (c *Container) initCatalog() error {
	if !c.Config.Features.Catalog {
		return nil
	}

	if c.bunDB == nil {
		driver := strings.TrimSpace(c.Config.Storage.Driver)
		if driver == "" {
			driver = "sqlite3"
		}
		sqlDB, err := sql.Open(driver, c.Config.Storage.DSN)
		if err != nil {
			return fmt.Errorf("container: open storage %s: %w", driver, err)
		}
		c.bunDB = bun.NewDB(sqlDB, sqlitedialect.New())
		c.ownsDB = true
	}

	catalog.RegisterModels(c.bunDB)

	cacheService := c.cacheService
	keySerializer := c.keySerializer
	if !c.Config.Cache.Enabled {
		cacheService = nil
		keySerializer = nil
	}

	c.catalogSvc = catalog.NewService(catalog.ServiceConfig{
		DB:            c.bunDB,
		CacheService:  cacheService,
		KeySerializer: keySerializer,
		Logger:        logging.CatalogLogger(c.loggerProvider),
	})

	if c.Config.Features.Sync {
		c.syncer = catalog.NewSyncer(catalog.SyncerConfig{
			Catalog:   c.catalogSvc,
			Inspector: c.inspector,
			Logger:    logging.CatalogLogger(c.loggerProvider),
		})
	}
	return nil
}

// EnsureSchema creates the catalog tables when the catalog feature is
// enabled. Safe to call repeatedly.
func (c *Container) EnsureSchema(ctx context.Context) error {
	if c.bunDB == nil {
		return nil
	}
	return catalog.CreateTables(ctx, c.bunDB)
}

// MarkdownService returns the filesystem-backed entry loader.
func (c *Container) MarkdownService() interfaces.MarkdownService {
	return c.markdownSvc
}

// Linter returns the content-integrity checker, or nil when linting is disabled.
func (c *Container) Linter() interfaces.Linter {
	return c.linter
}

// CatalogService returns the queryable entry index, or nil when the catalog is disabled.
func (c *Container) CatalogService() interfaces.CatalogService {
	return c.catalogSvc
}

// Syncer mirrors documents into the catalog, or nil when sync is disabled.
func (c *Container) Syncer() interfaces.Syncer {
	return c.syncer
}

// LoggerProvider returns the configured logging provider, which may be nil.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// BunDB exposes the catalog database handle for host integrations and tests.
func (c *Container) BunDB() *bun.DB {
	return c.bunDB
}

// Close releases resources owned by the container. Injected database handles
// are left open.
func (c *Container) Close() error {
	if !c.ownsDB || c.bunDB == nil {
		return nil
	}
	err := c.bunDB.Close()
	c.bunDB = nil
	c.ownsDB = false
	return err
}
