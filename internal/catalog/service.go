// Package catalog maintains a queryable index of content entries in a bun
// managed database. The Markdown tree remains the source of truth; the
// catalog only mirrors what the loader read, so every row can be rebuilt
// from disk at any time.
package catalog

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/goliatone/go-repository-cache/cache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-content/internal/identity"
	"github.com/goliatone/go-content/internal/logging"
	"github.com/goliatone/go-content/internal/markdown"
	"github.com/goliatone/go-content/pkg/interfaces"
)

// ServiceConfig wires the dependencies of the catalog service. CacheService
// and KeySerializer are optional; when both are set every repository is
// wrapped with a read-through cache.
type ServiceConfig struct {
	DB            *bun.DB
	CacheService  cache.CacheService
	KeySerializer cache.KeySerializer
	Logger        interfaces.Logger
}

// Service implements interfaces.CatalogService on top of bun repositories.
type Service struct {
	entries *BunEntryRepository
	series  *BunSeriesRepository
	tags    *BunTagRepository
	logger  interfaces.Logger
}

// NewService constructs the catalog service.
func NewService(cfg ServiceConfig) *Service {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NoOp()
	}
	return &Service{
		entries: NewBunEntryRepositoryWithCache(cfg.DB, cfg.CacheService, cfg.KeySerializer),
		series:  NewBunSeriesRepositoryWithCache(cfg.DB, cfg.CacheService, cfg.KeySerializer),
		tags:    NewBunTagRepositoryWithCache(cfg.DB, cfg.CacheService, cfg.KeySerializer),
		logger:  logger,
	}
}

// Create indexes a new entry. The entry ID derives deterministically from the
// storage path, so re-indexing the same file always yields the same row.
func (s *Service) Create(ctx context.Context, req interfaces.EntryCreateRequest) (*interfaces.EntryRecord, error) {
	if err := validateCreateRequest(req); err != nil {
		return nil, err
	}

	if _, err := s.entries.GetBySlug(ctx, req.Slug); err == nil {
		return nil, fmt.Errorf("%w: slug=%s", ErrEntryExists, req.Slug)
	} else if !IsNotFound(err) {
		return nil, err
	}

	now := time.Now()
	entry := &Entry{
		ID:        identity.EntryUUID(req.Path),
		Path:      req.Path,
		Slug:      req.Slug,
		Title:     req.Title,
		Author:    req.Author,
		Summary:   req.Summary,
		Date:      req.Date,
		Checksum:  req.Checksum,
		WordCount: req.WordCount,
		Metadata:  req.Metadata,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.entries.Create(ctx, entry)
	if err != nil {
		return nil, err
	}
	if err := s.assignLabels(ctx, created.ID, req.Series, req.Tags); err != nil {
		return nil, err
	}

	logging.WithEntryContext(s.logger, req.Path, req.Slug, "create").
		Info("catalog.entry.created", "id", created.ID.String())

	return s.reload(ctx, created.ID)
}

// Update re-indexes an existing entry in place, replacing the row and its
// label joins. Slug is identity and never changes through updates; the path
// tracks the source file, so a moved file updates the stored location.
func (s *Service) Update(ctx context.Context, req interfaces.EntryUpdateRequest) (*interfaces.EntryRecord, error) {
	if req.ID == uuid.Nil {
		return nil, ErrEntryIDRequired
	}
	if strings.TrimSpace(req.Title) == "" {
		return nil, ErrEntryTitleRequired
	}

	existing, err := s.entries.GetByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if path := strings.TrimSpace(req.Path); path != "" {
		existing.Path = path
	}
	existing.Title = req.Title
	existing.Author = req.Author
	existing.Summary = req.Summary
	existing.Date = req.Date
	existing.Checksum = req.Checksum
	existing.WordCount = req.WordCount
	existing.Metadata = req.Metadata
	existing.UpdatedAt = time.Now()

	if _, err := s.entries.Update(ctx, existing); err != nil {
		return nil, err
	}
	if err := s.assignLabels(ctx, existing.ID, req.Series, req.Tags); err != nil {
		return nil, err
	}

	logging.WithEntryContext(s.logger, existing.Path, existing.Slug, "update").
		Info("catalog.entry.updated", "id", existing.ID.String())

	return s.reload(ctx, existing.ID)
}

// Delete removes an entry and its label joins from the index.
func (s *Service) Delete(ctx context.Context, req interfaces.EntryDeleteRequest) error {
	if req.ID == uuid.Nil {
		return ErrEntryIDRequired
	}

	existing, err := s.entries.GetByID(ctx, req.ID)
	if err != nil {
		return err
	}

	if err := s.entries.ReplaceSeriesLinks(ctx, existing.ID, nil); err != nil {
		return err
	}
	if err := s.entries.ReplaceTagLinks(ctx, existing.ID, nil); err != nil {
		return err
	}
	if err := s.entries.Delete(ctx, existing.ID); err != nil {
		return err
	}

	logging.WithEntryContext(s.logger, existing.Path, existing.Slug, "delete").
		Info("catalog.entry.deleted", "id", existing.ID.String())

	return nil
}

func (s *Service) GetBySlug(ctx context.Context, slug string) (*interfaces.EntryRecord, error) {
	entry, err := s.entries.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	return toRecord(entry), nil
}

func (s *Service) GetByPath(ctx context.Context, path string) (*interfaces.EntryRecord, error) {
	entry, err := s.entries.GetByPath(ctx, path)
	if err != nil {
		return nil, err
	}
	return toRecord(entry), nil
}

func (s *Service) List(ctx context.Context, opts interfaces.EntryListOptions) ([]*interfaces.EntryRecord, error) {
	entries, err := s.entries.List(ctx, opts.Limit, opts.Offset)
	if err != nil {
		return nil, err
	}
	return toRecords(entries), nil
}

// ListBySeries returns the entries labeled with the given series in
// publication order. An unknown label matches nothing rather than erroring,
// since labels are declarative and carry no registration step.
func (s *Service) ListBySeries(ctx context.Context, series string) ([]*interfaces.EntryRecord, error) {
	slug, err := markdown.NormalizeLabel(series)
	if err != nil {
		return nil, fmt.Errorf("catalog: normalize series label %q: %w", series, err)
	}

	record, err := s.series.GetBySlug(ctx, slug)
	if IsNotFound(err) {
		return []*interfaces.EntryRecord{}, nil
	}
	if err != nil {
		return nil, err
	}

	entries, err := s.entries.ListBySeries(ctx, record.ID)
	if err != nil {
		return nil, err
	}
	return toRecords(entries), nil
}

// ListByTag returns the entries labeled with the given tag in publication
// order.
func (s *Service) ListByTag(ctx context.Context, tag string) ([]*interfaces.EntryRecord, error) {
	slug, err := markdown.NormalizeLabel(tag)
	if err != nil {
		return nil, fmt.Errorf("catalog: normalize tag label %q: %w", tag, err)
	}

	record, err := s.tags.GetBySlug(ctx, slug)
	if IsNotFound(err) {
		return []*interfaces.EntryRecord{}, nil
	}
	if err != nil {
		return nil, err
	}

	entries, err := s.entries.ListByTag(ctx, record.ID)
	if err != nil {
		return nil, err
	}
	return toRecords(entries), nil
}

// Series lists every known series label alphabetically.
func (s *Service) Series(ctx context.Context) ([]string, error) {
	records, err := s.series.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	labels := make([]string, 0, len(records))
	for _, record := range records {
		labels = append(labels, record.Label)
	}
	return labels, nil
}

// Tags lists every known tag label alphabetically.
func (s *Service) Tags(ctx context.Context) ([]string, error) {
	records, err := s.tags.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	labels := make([]string, 0, len(records))
	for _, record := range records {
		labels = append(labels, record.Label)
	}
	return labels, nil
}

func (s *Service) assignLabels(ctx context.Context, entryID uuid.UUID, series, tags []string) error {
	seriesIDs, err := s.ensureSeries(ctx, series)
	if err != nil {
		return err
	}
	if err := s.entries.ReplaceSeriesLinks(ctx, entryID, seriesIDs); err != nil {
		return err
	}

	tagIDs, err := s.ensureTags(ctx, tags)
	if err != nil {
		return err
	}
	return s.entries.ReplaceTagLinks(ctx, entryID, tagIDs)
}

// ensureSeries resolves labels to series rows, creating missing ones with
// deterministic IDs. Duplicate labels collapse to a single membership.
func (s *Service) ensureSeries(ctx context.Context, labels []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(labels))
	seen := map[uuid.UUID]struct{}{}

	for _, label := range labels {
		label = strings.TrimSpace(label)
		if label == "" {
			continue
		}
		slug, err := markdown.NormalizeLabel(label)
		if err != nil {
			return nil, fmt.Errorf("catalog: normalize series label %q: %w", label, err)
		}

		record, err := s.series.GetBySlug(ctx, slug)
		if IsNotFound(err) {
			record, err = s.series.Create(ctx, &Series{
				ID:    identity.SeriesUUID(slug),
				Slug:  slug,
				Label: label,
			})
		}
		if err != nil {
			return nil, err
		}
		if _, ok := seen[record.ID]; ok {
			continue
		}
		seen[record.ID] = struct{}{}
		ids = append(ids, record.ID)
	}
	return ids, nil
}

func (s *Service) ensureTags(ctx context.Context, labels []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(labels))
	seen := map[uuid.UUID]struct{}{}

	for _, label := range labels {
		label = strings.TrimSpace(label)
		if label == "" {
			continue
		}
		slug, err := markdown.NormalizeLabel(label)
		if err != nil {
			return nil, fmt.Errorf("catalog: normalize tag label %q: %w", label, err)
		}

		record, err := s.tags.GetBySlug(ctx, slug)
		if IsNotFound(err) {
			record, err = s.tags.Create(ctx, &Tag{
				ID:    identity.TagUUID(slug),
				Slug:  slug,
				Label: label,
			})
		}
		if err != nil {
			return nil, err
		}
		if _, ok := seen[record.ID]; ok {
			continue
		}
		seen[record.ID] = struct{}{}
		ids = append(ids, record.ID)
	}
	return ids, nil
}

func (s *Service) reload(ctx context.Context, id uuid.UUID) (*interfaces.EntryRecord, error) {
	entry, err := s.entries.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toRecord(entry), nil
}

func validateCreateRequest(req interfaces.EntryCreateRequest) error {
	if strings.TrimSpace(req.Path) == "" {
		return ErrEntryPathRequired
	}
	if strings.TrimSpace(req.Slug) == "" {
		return ErrEntrySlugRequired
	}
	if !markdown.IsValidSlug(req.Slug) {
		return ErrEntrySlugInvalid
	}
	if strings.TrimSpace(req.Title) == "" {
		return ErrEntryTitleRequired
	}
	return nil
}

func toRecord(entry *Entry) *interfaces.EntryRecord {
	if entry == nil {
		return nil
	}

	record := &interfaces.EntryRecord{
		ID:        entry.ID,
		Path:      entry.Path,
		Slug:      entry.Slug,
		Title:     entry.Title,
		Author:    entry.Author,
		Summary:   entry.Summary,
		Date:      entry.Date,
		Checksum:  entry.Checksum,
		WordCount: entry.WordCount,
		Metadata:  entry.Metadata,
		CreatedAt: entry.CreatedAt,
		UpdatedAt: entry.UpdatedAt,
	}
	for _, series := range entry.Series {
		record.Series = append(record.Series, series.Label)
	}
	for _, tag := range entry.Tags {
		record.Tags = append(record.Tags, tag.Label)
	}
	sort.Strings(record.Series)
	sort.Strings(record.Tags)

	return record
}

func toRecords(entries []*Entry) []*interfaces.EntryRecord {
	records := make([]*interfaces.EntryRecord, 0, len(entries))
	for _, entry := range entries {
		records = append(records, toRecord(entry))
	}
	return records
}
