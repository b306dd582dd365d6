package interfaces

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// EntryRecord is the catalog's view of a content entry. Series and tags are
// declarative labels carried over from front matter; the relation between
// entries is many-to-many and nothing in the catalog enforces referential
// integrity beyond the join rows themselves.
type EntryRecord struct {
	ID        uuid.UUID      `json:"id"`
	Path      string         `json:"path"`
	Slug      string         `json:"slug"`
	Title     string         `json:"title"`
	Author    *string        `json:"author,omitempty"`
	Summary   *string        `json:"summary,omitempty"`
	Date      *time.Time     `json:"date,omitempty"`
	Checksum  string         `json:"checksum"`
	WordCount int            `json:"word_count"`
	Series    []string       `json:"series,omitempty"`
	Tags      []string       `json:"tags,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// EntryCreateRequest captures the fields required to index a new entry.
type EntryCreateRequest struct {
	Path      string
	Slug      string
	Title     string
	Author    *string
	Summary   *string
	Date      *time.Time
	Checksum  string
	WordCount int
	Series    []string
	Tags      []string
	Metadata  map[string]any
}

// EntryUpdateRequest re-indexes an existing entry in place. Entries have no
// versioning; an update replaces the indexed row and its label joins. Path
// follows the source file when it moves; an empty Path leaves the stored
// location untouched.
type EntryUpdateRequest struct {
	ID        uuid.UUID
	Path      string
	Title     string
	Author    *string
	Summary   *string
	Date      *time.Time
	Checksum  string
	WordCount int
	Series    []string
	Tags      []string
	Metadata  map[string]any
}

// EntryDeleteRequest removes an entry from the index.
type EntryDeleteRequest struct {
	ID uuid.UUID
}

// EntryListOptions filters catalog listings. Zero values list everything in
// publication order (ascending date, undated entries last).
type EntryListOptions struct {
	Limit  int
	Offset int
}

// CatalogService indexes validated entries and answers corpus queries for
// external consumers. It is a read/sync index, not a content-management
// system: there is no authoring, workflow, or serving surface.
type CatalogService interface {
	Create(ctx context.Context, req EntryCreateRequest) (*EntryRecord, error)
	Update(ctx context.Context, req EntryUpdateRequest) (*EntryRecord, error)
	Delete(ctx context.Context, req EntryDeleteRequest) error
	GetBySlug(ctx context.Context, slug string) (*EntryRecord, error)
	GetByPath(ctx context.Context, path string) (*EntryRecord, error)
	List(ctx context.Context, opts EntryListOptions) ([]*EntryRecord, error)
	ListBySeries(ctx context.Context, series string) ([]*EntryRecord, error)
	ListByTag(ctx context.Context, tag string) ([]*EntryRecord, error)
	Series(ctx context.Context) ([]string, error)
	Tags(ctx context.Context) ([]string, error)
}

// SyncOptions controls how a content tree is mirrored into the catalog.
type SyncOptions struct {
	// DryRun previews create/update/delete decisions without persisting.
	DryRun bool
	// DeleteOrphaned removes catalog rows whose source file disappeared.
	DeleteOrphaned bool
}

// SyncResult aggregates the outcome of a sync run.
type SyncResult struct {
	Created int
	Updated int
	Skipped int
	Deleted int
	Errors  []error
}

// ImportResult reports per-entry outcomes when documents are pushed into the
// catalog outside of a full sync.
type ImportResult struct {
	CreatedIDs []uuid.UUID
	UpdatedIDs []uuid.UUID
	SkippedIDs []uuid.UUID
	Errors     []error
}

// Syncer mirrors a set of loaded documents into the catalog.
type Syncer interface {
	ImportDocument(ctx context.Context, doc *Document, opts SyncOptions) (*ImportResult, error)
	ImportDocuments(ctx context.Context, docs []*Document, opts SyncOptions) (*ImportResult, error)
	SyncDocuments(ctx context.Context, docs []*Document, opts SyncOptions) (*SyncResult, error)
}
