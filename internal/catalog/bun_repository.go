package catalog

import (
	"context"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// BunEntryRepository implements entry persistence with optional caching. Join
// rows for series and tags are managed here as well, so the service above can
// treat label assignment as a single replace operation.
type BunEntryRepository struct {
	db   *bun.DB
	repo repository.Repository[*Entry]
}

func NewBunEntryRepository(db *bun.DB) *BunEntryRepository {
	return NewBunEntryRepositoryWithCache(db, nil, nil)
}

func NewBunEntryRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunEntryRepository {
	base := NewEntryRepository(db)
	wrapped := wrapWithCache(base, cacheService, keySerializer)
	return &BunEntryRepository{db: db, repo: wrapped}
}

func (r *BunEntryRepository) Create(ctx context.Context, record *Entry) (*Entry, error) {
	created, err := r.repo.Create(ctx, record)
	if err != nil {
		return nil, fmt.Errorf("entry repository error: %w", err)
	}
	return created, nil
}

func (r *BunEntryRepository) Update(ctx context.Context, record *Entry) (*Entry, error) {
	updated, err := r.repo.Update(ctx, record, repository.UpdateByID(record.ID.String()))
	if err != nil {
		return nil, mapRepositoryError(err, "entry", record.ID.String())
	}
	return updated, nil
}

func (r *BunEntryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.repo.Delete(ctx, &Entry{ID: id}); err != nil {
		return mapRepositoryError(err, "entry", id.String())
	}
	return nil
}

// GetByID loads an entry with its series and tag labels attached.
func (r *BunEntryRepository) GetByID(ctx context.Context, id uuid.UUID) (*Entry, error) {
	return r.getOne(ctx, id.String(), func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("?TableAlias.id = ?", id)
	})
}

func (r *BunEntryRepository) GetBySlug(ctx context.Context, slug string) (*Entry, error) {
	return r.getOne(ctx, slug, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("?TableAlias.slug = ?", slug)
	})
}

func (r *BunEntryRepository) GetByPath(ctx context.Context, path string) (*Entry, error) {
	return r.getOne(ctx, path, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("?TableAlias.path = ?", path)
	})
}

func (r *BunEntryRepository) getOne(ctx context.Context, key string, where func(q *bun.SelectQuery) *bun.SelectQuery) (*Entry, error) {
	records, _, err := r.repo.List(ctx,
		withLabels,
		repository.SelectRawProcessor(where),
		repository.SelectPaginate(1, 0),
	)
	if err != nil {
		return nil, mapRepositoryError(err, "entry", key)
	}
	if len(records) == 0 {
		return nil, &NotFoundError{Resource: "entry", Key: key}
	}
	return records[0], nil
}

// List returns entries in publication order: dated entries first by ascending
// date, undated entries last, path as the tiebreaker.
func (r *BunEntryRepository) List(ctx context.Context, limit, offset int) ([]*Entry, error) {
	var (
		records []*Entry
		err     error
	)
	if limit > 0 {
		records, _, err = r.repo.List(ctx, withLabels, publicationOrder, repository.SelectPaginate(limit, offset))
	} else {
		records, _, err = r.repo.List(ctx, withLabels, publicationOrder)
	}
	if err != nil {
		return nil, fmt.Errorf("entry repository error: %w", err)
	}
	return records, nil
}

func (r *BunEntryRepository) ListBySeries(ctx context.Context, seriesID uuid.UUID) ([]*Entry, error) {
	records, _, err := r.repo.List(ctx,
		withLabels,
		publicationOrder,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.
				Join("JOIN entry_series AS es ON es.entry_id = ?TableAlias.id").
				Where("es.series_id = ?", seriesID)
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("entry repository error: %w", err)
	}
	return records, nil
}

func (r *BunEntryRepository) ListByTag(ctx context.Context, tagID uuid.UUID) ([]*Entry, error) {
	records, _, err := r.repo.List(ctx,
		withLabels,
		publicationOrder,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.
				Join("JOIN entry_tags AS et ON et.entry_id = ?TableAlias.id").
				Where("et.tag_id = ?", tagID)
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("entry repository error: %w", err)
	}
	return records, nil
}

// ReplaceSeriesLinks swaps the series memberships of an entry. Position
// follows the order of seriesIDs.
func (r *BunEntryRepository) ReplaceSeriesLinks(ctx context.Context, entryID uuid.UUID, seriesIDs []uuid.UUID) error {
	if _, err := r.db.NewDelete().
		Model((*EntrySeries)(nil)).
		Where("entry_id = ?", entryID).
		Exec(ctx); err != nil {
		return fmt.Errorf("entry repository error: clear series links: %w", err)
	}
	if len(seriesIDs) == 0 {
		return nil
	}

	rows := make([]*EntrySeries, 0, len(seriesIDs))
	for position, seriesID := range seriesIDs {
		rows = append(rows, &EntrySeries{
			EntryID:  entryID,
			SeriesID: seriesID,
			Position: position,
		})
	}
	if _, err := r.db.NewInsert().Model(&rows).Exec(ctx); err != nil {
		return fmt.Errorf("entry repository error: insert series links: %w", err)
	}
	return nil
}

// ReplaceTagLinks swaps the tag memberships of an entry.
func (r *BunEntryRepository) ReplaceTagLinks(ctx context.Context, entryID uuid.UUID, tagIDs []uuid.UUID) error {
	if _, err := r.db.NewDelete().
		Model((*EntryTag)(nil)).
		Where("entry_id = ?", entryID).
		Exec(ctx); err != nil {
		return fmt.Errorf("entry repository error: clear tag links: %w", err)
	}
	if len(tagIDs) == 0 {
		return nil
	}

	rows := make([]*EntryTag, 0, len(tagIDs))
	for _, tagID := range tagIDs {
		rows = append(rows, &EntryTag{
			EntryID: entryID,
			TagID:   tagID,
		})
	}
	if _, err := r.db.NewInsert().Model(&rows).Exec(ctx); err != nil {
		return fmt.Errorf("entry repository error: insert tag links: %w", err)
	}
	return nil
}

// BunSeriesRepository implements series persistence with optional caching.
type BunSeriesRepository struct {
	repo repository.Repository[*Series]
}

func NewBunSeriesRepository(db *bun.DB) *BunSeriesRepository {
	return NewBunSeriesRepositoryWithCache(db, nil, nil)
}

func NewBunSeriesRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunSeriesRepository {
	base := NewSeriesRepository(db)
	wrapped := wrapWithCache(base, cacheService, keySerializer)
	return &BunSeriesRepository{repo: wrapped}
}

func (r *BunSeriesRepository) Create(ctx context.Context, record *Series) (*Series, error) {
	created, err := r.repo.Create(ctx, record)
	if err != nil {
		return nil, fmt.Errorf("series repository error: %w", err)
	}
	return created, nil
}

func (r *BunSeriesRepository) GetBySlug(ctx context.Context, slug string) (*Series, error) {
	result, err := r.repo.GetByIdentifier(ctx, slug)
	if err != nil {
		return nil, mapRepositoryError(err, "series", slug)
	}
	return result, nil
}

func (r *BunSeriesRepository) ListAll(ctx context.Context) ([]*Series, error) {
	records, _, err := r.repo.List(ctx, repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Order("label ASC")
	}))
	if err != nil {
		return nil, fmt.Errorf("series repository error: %w", err)
	}
	return records, nil
}

// BunTagRepository implements tag persistence with optional caching.
type BunTagRepository struct {
	repo repository.Repository[*Tag]
}

func NewBunTagRepository(db *bun.DB) *BunTagRepository {
	return NewBunTagRepositoryWithCache(db, nil, nil)
}

func NewBunTagRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunTagRepository {
	base := NewTagRepository(db)
	wrapped := wrapWithCache(base, cacheService, keySerializer)
	return &BunTagRepository{repo: wrapped}
}

func (r *BunTagRepository) Create(ctx context.Context, record *Tag) (*Tag, error) {
	created, err := r.repo.Create(ctx, record)
	if err != nil {
		return nil, fmt.Errorf("tag repository error: %w", err)
	}
	return created, nil
}

func (r *BunTagRepository) GetBySlug(ctx context.Context, slug string) (*Tag, error) {
	result, err := r.repo.GetByIdentifier(ctx, slug)
	if err != nil {
		return nil, mapRepositoryError(err, "tag", slug)
	}
	return result, nil
}

func (r *BunTagRepository) ListAll(ctx context.Context) ([]*Tag, error) {
	records, _, err := r.repo.List(ctx, repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Order("label ASC")
	}))
	if err != nil {
		return nil, fmt.Errorf("tag repository error: %w", err)
	}
	return records, nil
}

var withLabels = repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
	return q.Relation("Series").Relation("Tags")
})

var publicationOrder = repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
	return q.OrderExpr("?TableAlias.date IS NULL ASC, ?TableAlias.date ASC, ?TableAlias.path ASC")
})

func mapRepositoryError(err error, resource, key string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &NotFoundError{
			Resource: resource,
			Key:      key,
		}
	}
	return fmt.Errorf("%s repository error: %w", resource, err)
}

func wrapWithCache[T any](base repository.Repository[T], cacheService cache.CacheService, keySerializer cache.KeySerializer) repository.Repository[T] {
	if cacheService == nil || keySerializer == nil {
		return base
	}
	return repositorycache.New(base, cacheService, keySerializer)
}
