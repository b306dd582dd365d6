package catalog

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-content/internal/identity"
	"github.com/goliatone/go-content/internal/logging"
	"github.com/goliatone/go-content/internal/markdown"
	"github.com/goliatone/go-content/pkg/interfaces"
)

var (
	ErrCatalogServiceRequired = errors.New("catalog sync: catalog service is required")
	ErrDocumentPathMissing    = errors.New("catalog sync: document path is required")
)

// SyncerConfig encapsulates the dependencies needed to mirror documents into
// the catalog.
type SyncerConfig struct {
	Catalog   interfaces.CatalogService
	Inspector interfaces.BodyInspector
	Logger    interfaces.Logger
}

// Syncer mirrors loaded documents into the catalog index. Checksums decide
// whether a row needs rewriting, so unchanged files are skipped without
// touching the database. A file that moved keeps its slug but gets its
// stored path rewritten so location lookups stay accurate.
type Syncer struct {
	catalog   interfaces.CatalogService
	inspector interfaces.BodyInspector
	logger    interfaces.Logger
}

// NewSyncer builds a Syncer from the supplied configuration. A nil inspector
// gets a default goldmark inspector; a nil logger is replaced with a no-op.
func NewSyncer(cfg SyncerConfig) *Syncer {
	inspector := cfg.Inspector
	if inspector == nil {
		inspector = markdown.NewGoldmarkInspector(interfaces.InspectOptions{})
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NoOp()
	}
	return &Syncer{
		catalog:   cfg.Catalog,
		inspector: inspector,
		logger:    logger,
	}
}

// ImportDocument mirrors a single document into the catalog.
func (s *Syncer) ImportDocument(ctx context.Context, doc *interfaces.Document, opts interfaces.SyncOptions) (*interfaces.ImportResult, error) {
	if s.catalog == nil {
		return nil, ErrCatalogServiceRequired
	}
	acc := newImportAccumulator()
	if err := s.applyDocument(ctx, doc, opts, acc); err != nil {
		acc.addError(err)
	}
	return acc.result(), firstError(acc.errors)
}

// ImportDocuments mirrors a slice of documents. Two files that collapse to
// the same slug are a corpus defect; the first wins and the rest are
// reported as errors.
func (s *Syncer) ImportDocuments(ctx context.Context, docs []*interfaces.Document, opts interfaces.SyncOptions) (*interfaces.ImportResult, error) {
	if s.catalog == nil {
		return nil, ErrCatalogServiceRequired
	}

	acc := newImportAccumulator()
	seen := map[string]string{}

	for _, doc := range sortDocuments(docs) {
		slug := documentSlug(doc)
		if previous, ok := seen[slug]; ok && slug != "" {
			acc.addError(fmt.Errorf("catalog sync: slug %q of %s already used by %s", slug, doc.FilePath, previous))
			continue
		}
		if slug != "" {
			seen[slug] = doc.FilePath
		}
		if err := s.applyDocument(ctx, doc, opts, acc); err != nil {
			acc.addError(err)
		}
	}

	return acc.result(), firstError(acc.errors)
}

// SyncDocuments mirrors all provided documents and optionally deletes rows
// whose source file disappeared from the tree.
func (s *Syncer) SyncDocuments(ctx context.Context, docs []*interfaces.Document, opts interfaces.SyncOptions) (*interfaces.SyncResult, error) {
	if s.catalog == nil {
		return nil, ErrCatalogServiceRequired
	}

	imported, err := s.ImportDocuments(ctx, docs, opts)
	if err != nil && imported == nil {
		return nil, err
	}

	acc := newSyncAccumulator()
	acc.merge(imported)

	if opts.DeleteOrphaned {
		if err := s.deleteOrphaned(ctx, docs, opts, acc); err != nil {
			acc.addError(err)
		}
	}

	return acc.result(), firstError(acc.errors)
}

func (s *Syncer) applyDocument(ctx context.Context, doc *interfaces.Document, opts interfaces.SyncOptions, acc *importAccumulator) error {
	if doc == nil {
		return errors.New("catalog sync: nil document")
	}
	if strings.TrimSpace(doc.FilePath) == "" {
		return ErrDocumentPathMissing
	}

	slug := documentSlug(doc)
	wordCount, err := s.countWords(doc)
	if err != nil {
		return err
	}

	title := strings.TrimSpace(doc.FrontMatter.Title)
	if title == "" {
		title = fallbackTitle(slug)
	}

	existing, err := s.catalog.GetBySlug(ctx, slug)
	if err != nil && !IsNotFound(err) {
		return fmt.Errorf("catalog sync: lookup %s: %w", slug, err)
	}

	checksum := hex.EncodeToString(doc.Checksum)
	log := logging.WithEntryContext(s.logger, doc.FilePath, slug, "sync")

	if existing == nil {
		if opts.DryRun {
			acc.created(identity.EntryUUID(doc.FilePath))
			log.Debug("catalog.sync.would_create")
			return nil
		}

		record, createErr := s.catalog.Create(ctx, interfaces.EntryCreateRequest{
			Path:      doc.FilePath,
			Slug:      slug,
			Title:     title,
			Author:    optionalString(doc.FrontMatter.Author),
			Summary:   optionalString(doc.FrontMatter.Summary),
			Date:      entryDate(doc),
			Checksum:  checksum,
			WordCount: wordCount,
			Series:    doc.FrontMatter.Series,
			Tags:      doc.FrontMatter.Tags,
			Metadata:  documentMetadata(doc),
		})
		if createErr != nil {
			return fmt.Errorf("catalog sync: create %s: %w", slug, createErr)
		}
		acc.created(record.ID)
		log.Info("catalog.sync.created", "id", record.ID.String())
		return nil
	}

	if existing.Checksum == checksum && existing.Path == doc.FilePath {
		acc.skip(existing.ID)
		return nil
	}

	if opts.DryRun {
		acc.updated(existing.ID)
		log.Debug("catalog.sync.would_update")
		return nil
	}

	record, updateErr := s.catalog.Update(ctx, interfaces.EntryUpdateRequest{
		ID:        existing.ID,
		Path:      doc.FilePath,
		Title:     title,
		Author:    optionalString(doc.FrontMatter.Author),
		Summary:   optionalString(doc.FrontMatter.Summary),
		Date:      entryDate(doc),
		Checksum:  checksum,
		WordCount: wordCount,
		Series:    doc.FrontMatter.Series,
		Tags:      doc.FrontMatter.Tags,
		Metadata:  documentMetadata(doc),
	})
	if updateErr != nil {
		return fmt.Errorf("catalog sync: update %s: %w", slug, updateErr)
	}
	acc.updated(record.ID)
	log.Info("catalog.sync.updated", "id", record.ID.String())
	return nil
}

func (s *Syncer) deleteOrphaned(ctx context.Context, docs []*interfaces.Document, opts interfaces.SyncOptions, acc *syncAccumulator) error {
	existing, err := s.catalog.List(ctx, interfaces.EntryListOptions{})
	if err != nil {
		return fmt.Errorf("catalog sync: list entries: %w", err)
	}

	docSlugs := make(map[string]struct{}, len(docs))
	for _, doc := range docs {
		if slug := documentSlug(doc); slug != "" {
			docSlugs[slug] = struct{}{}
		}
	}

	for _, record := range existing {
		if _, ok := docSlugs[record.Slug]; ok {
			continue
		}
		if opts.DryRun {
			acc.deleted++
			continue
		}
		if err := s.catalog.Delete(ctx, interfaces.EntryDeleteRequest{ID: record.ID}); err != nil {
			return fmt.Errorf("catalog sync: delete %s: %w", record.Slug, err)
		}
		logging.WithEntryContext(s.logger, record.Path, record.Slug, "sync").
			Info("catalog.sync.deleted", "id", record.ID.String())
		acc.deleted++
	}

	return nil
}

func (s *Syncer) countWords(doc *interfaces.Document) (int, error) {
	if len(doc.Body) == 0 {
		return 0, nil
	}
	report, err := s.inspector.Inspect(doc.Body)
	if err != nil {
		return 0, fmt.Errorf("catalog sync: inspect %s: %w", doc.FilePath, err)
	}
	return report.WordCount, nil
}

func documentSlug(doc *interfaces.Document) string {
	if doc == nil {
		return ""
	}
	return markdown.SlugFromPath(doc.FilePath)
}

func sortDocuments(docs []*interfaces.Document) []*interfaces.Document {
	sorted := make([]*interfaces.Document, 0, len(docs))
	sorted = append(sorted, docs...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i] == nil || sorted[j] == nil {
			return sorted[j] == nil
		}
		return sorted[i].FilePath < sorted[j].FilePath
	})
	return sorted
}

func entryDate(doc *interfaces.Document) *time.Time {
	if !doc.FrontMatter.HasDate() {
		return nil
	}
	date := doc.FrontMatter.Date
	return &date
}

func fallbackTitle(slug string) string {
	if slug == "" {
		return "Untitled"
	}
	words := strings.FieldsFunc(slug, func(r rune) bool {
		return r == '-' || r == '_'
	})
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}

func documentMetadata(doc *interfaces.Document) map[string]any {
	return map[string]any{
		"source":        "markdown",
		"raw_date":      doc.FrontMatter.RawDate,
		"params":        doc.FrontMatter.Params,
		"custom":        doc.FrontMatter.Custom,
		"last_modified": doc.LastModified,
	}
}

func optionalString(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}

type importAccumulator struct {
	createdIDs []uuid.UUID
	updatedIDs []uuid.UUID
	skippedIDs []uuid.UUID
	errors     []error
}

func newImportAccumulator() *importAccumulator {
	return &importAccumulator{
		createdIDs: []uuid.UUID{},
		updatedIDs: []uuid.UUID{},
		skippedIDs: []uuid.UUID{},
		errors:     []error{},
	}
}

func (a *importAccumulator) created(id uuid.UUID) {
	if id != uuid.Nil {
		a.createdIDs = append(a.createdIDs, id)
	}
}

func (a *importAccumulator) updated(id uuid.UUID) {
	if id != uuid.Nil {
		a.updatedIDs = append(a.updatedIDs, id)
	}
}

func (a *importAccumulator) skip(id uuid.UUID) {
	if id != uuid.Nil {
		a.skippedIDs = append(a.skippedIDs, id)
	}
}

func (a *importAccumulator) addError(err error) {
	if err != nil {
		a.errors = append(a.errors, err)
	}
}

func (a *importAccumulator) result() *interfaces.ImportResult {
	return &interfaces.ImportResult{
		CreatedIDs: a.createdIDs,
		UpdatedIDs: a.updatedIDs,
		SkippedIDs: a.skippedIDs,
		Errors:     a.errors,
	}
}

type syncAccumulator struct {
	created int
	updated int
	deleted int
	skipped int
	errors  []error
}

func newSyncAccumulator() *syncAccumulator {
	return &syncAccumulator{
		errors: []error{},
	}
}

func (s *syncAccumulator) merge(res *interfaces.ImportResult) {
	if res == nil {
		return
	}
	s.created += len(res.CreatedIDs)
	s.updated += len(res.UpdatedIDs)
	s.skipped += len(res.SkippedIDs)
	s.errors = append(s.errors, res.Errors...)
}

func (s *syncAccumulator) addError(err error) {
	if err != nil {
		s.errors = append(s.errors, err)
	}
}

func (s *syncAccumulator) result() *interfaces.SyncResult {
	return &interfaces.SyncResult{
		Created: s.created,
		Updated: s.updated,
		Skipped: s.skipped,
		Deleted: s.deleted,
		Errors:  s.errors,
	}
}

func firstError(errs []error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
