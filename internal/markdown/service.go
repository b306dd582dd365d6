package markdown

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/goliatone/go-content/pkg/interfaces"
)

// Config controls how the service discovers and parses entry files.
type Config struct {
	BasePath  string
	Pattern   string
	Recursive bool
	Inspect   interfaces.InspectOptions
}

// Service implements interfaces.MarkdownService for filesystem-backed entries.
type Service struct {
	cfg       Config
	inspector interfaces.BodyInspector
	loader    *Loader
}

// NewService constructs a markdown service using an underlying loader. When
// inspector is nil, a goldmark inspector with the configured defaults is created.
func NewService(cfg Config, inspector interfaces.BodyInspector) (*Service, error) {
	filesystem, err := prepareFilesystem(cfg.BasePath)
	if err != nil {
		return nil, err
	}
	return NewServiceWithFS(cfg, inspector, filesystem)
}

// NewServiceWithFS constructs a service over the supplied filesystem. Tests
// and embedded corpora can pass an fstest.MapFS or embed.FS.
func NewServiceWithFS(cfg Config, inspector interfaces.BodyInspector, filesystem fs.FS) (*Service, error) {
	if filesystem == nil {
		return nil, errors.New("content service: filesystem is required")
	}

	if inspector == nil {
		inspector = NewGoldmarkInspector(cfg.Inspect)
	}

	loader := NewLoader(filesystem, LoaderConfig{
		BasePath:  cfg.BasePath,
		Pattern:   cfg.Pattern,
		Recursive: cfg.Recursive,
	})

	return &Service{
		cfg:       cfg,
		inspector: inspector,
		loader:    loader,
	}, nil
}

// Load reads a single entry relative to the configured base path.
func (s *Service) Load(ctx context.Context, path string, opts interfaces.LoadOptions) (*interfaces.Document, error) {
	result, err := s.loader.LoadFile(ctx, s.normalisePath(path), toLoaderParams(opts))
	if err != nil {
		return nil, err
	}
	return result.Document, nil
}

// LoadDirectory reads every entry within the supplied directory.
func (s *Service) LoadDirectory(ctx context.Context, dir string, opts interfaces.LoadOptions) ([]*interfaces.Document, error) {
	results, err := s.loader.LoadDirectory(ctx, s.normalisePath(dir), toLoaderParams(opts))
	if err != nil {
		return nil, err
	}

	docs := make([]*interfaces.Document, 0, len(results))
	for _, result := range results {
		docs = append(docs, result.Document)
	}

	sort.Slice(docs, func(i, j int) bool {
		return docs[i].FilePath < docs[j].FilePath
	})
	return docs, nil
}

// Inspect analyses Markdown bytes with the configured inspector.
func (s *Service) Inspect(ctx context.Context, markdown []byte, opts interfaces.InspectOptions) (*interfaces.BodyReport, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}
	return s.inspector.InspectWithOptions(markdown, mergeInspectOptions(s.cfg.Inspect, opts))
}

// InspectDocument analyses the document's Markdown body.
func (s *Service) InspectDocument(ctx context.Context, doc *interfaces.Document, opts interfaces.InspectOptions) (*interfaces.BodyReport, error) {
	if doc == nil {
		return nil, errors.New("content service: document is nil")
	}
	report, err := s.Inspect(ctx, doc.Body, opts)
	if err != nil {
		return nil, fmt.Errorf("inspect document %s: %w", doc.FilePath, err)
	}
	return report, nil
}

func (s *Service) normalisePath(path string) string {
	if strings.TrimSpace(path) == "" {
		return "."
	}
	clean := filepath.Clean(path)
	if filepath.IsAbs(clean) && strings.TrimSpace(s.cfg.BasePath) != "" {
		if rel, err := filepath.Rel(s.cfg.BasePath, clean); err == nil {
			return filepath.ToSlash(rel)
		}
	}
	return filepath.ToSlash(clean)
}

func mergeInspectOptions(base, override interfaces.InspectOptions) interfaces.InspectOptions {
	result := base
	if len(override.Extensions) > 0 {
		result.Extensions = append([]string(nil), override.Extensions...)
	}
	return result
}

func toLoaderParams(opts interfaces.LoadOptions) LoadParams {
	return LoadParams{
		Pattern:   opts.Pattern,
		Recursive: opts.Recursive,
	}
}

func prepareFilesystem(basePath string) (fs.FS, error) {
	if strings.TrimSpace(basePath) == "" {
		basePath = "."
	}
	if _, err := os.Stat(basePath); err != nil {
		return nil, fmt.Errorf("content service: stat base path %s: %w", basePath, err)
	}
	return os.DirFS(basePath), nil
}
