// Package bootstrap assembles the content module for the CLI entry points.
package bootstrap

import (
	"context"
	"fmt"
	"strings"

	content "github.com/goliatone/go-content"
	"github.com/goliatone/go-content/internal/logging"
	"github.com/goliatone/go-content/pkg/interfaces"
)

// Options captures the flags shared by the content CLIs.
type Options struct {
	ContentDir     string
	Pattern        string
	Recursive      bool
	DSN            string
	LogLevel       string
	LogFormat      string
	LoggerProvider interfaces.LoggerProvider
}

// Module wraps the content module plus the services the CLIs dispatch to.
type Module struct {
	Module  *content.Module
	Service interfaces.MarkdownService
	Linter  interfaces.Linter
	Catalog interfaces.CatalogService
	Syncer  interfaces.Syncer
	Logger  interfaces.Logger
}

// BuildModule constructs a content module configured from CLI options. The
// catalog schema is created eagerly so commands can run against a fresh DSN.
func BuildModule(opts Options) (*Module, error) {
	cfg := content.DefaultConfig()

	if dir := strings.TrimSpace(opts.ContentDir); dir != "" {
		cfg.Content.Dir = dir
	}
	if pattern := strings.TrimSpace(opts.Pattern); pattern != "" {
		cfg.Content.Pattern = pattern
	}
	cfg.Content.Recursive = opts.Recursive

	if dsn := strings.TrimSpace(opts.DSN); dsn != "" {
		cfg.Storage.DSN = dsn
	}

	cfg.Features.Logger = true
	cfg.Logging.Provider = "gologger"
	cfg.Logging.Format = "console"
	if level := strings.TrimSpace(opts.LogLevel); level != "" {
		cfg.Logging.Level = level
	}
	if format := strings.TrimSpace(opts.LogFormat); format != "" {
		cfg.Logging.Format = format
	}

	diOpts := []content.Option{}
	if opts.LoggerProvider != nil {
		diOpts = append(diOpts, content.WithLoggerProvider(opts.LoggerProvider))
	}

	module, err := content.New(cfg, diOpts...)
	if err != nil {
		return nil, fmt.Errorf("initialise content module: %w", err)
	}
	if err := module.Init(context.Background()); err != nil {
		module.Close()
		return nil, fmt.Errorf("prepare catalog schema: %w", err)
	}

	return &Module{
		Module:  module,
		Service: module.Markdown(),
		Linter:  module.Linter(),
		Catalog: module.Catalog(),
		Syncer:  module.Syncer(),
		Logger:  logging.ModuleLogger(module.LoggerProvider(), "content.cli"),
	}, nil
}

// Close releases the resources owned by the wrapped module.
func (m *Module) Close() error {
	if m == nil || m.Module == nil {
		return nil
	}
	return m.Module.Close()
}
