package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Entry is the indexed view of a content file. The row mirrors what the
// loader read from disk; the Markdown file stays the source of truth and the
// catalog never writes back to it.
type Entry struct {
	bun.BaseModel `bun:"table:entries,alias:e"`

	ID        uuid.UUID      `bun:",pk,type:uuid"          json:"id"`
	Path      string         `bun:"path,notnull,unique"    json:"path"`
	Slug      string         `bun:"slug,notnull,unique"    json:"slug"`
	Title     string         `bun:"title,notnull"          json:"title"`
	Author    *string        `bun:"author"                 json:"author,omitempty"`
	Summary   *string        `bun:"summary"                json:"summary,omitempty"`
	Date      *time.Time     `bun:"date,nullzero"          json:"date,omitempty"`
	Checksum  string         `bun:"checksum,notnull"       json:"checksum"`
	WordCount int            `bun:"word_count,notnull,default:0" json:"word_count"`
	Metadata  map[string]any `bun:"metadata,type:jsonb"    json:"metadata,omitempty"`
	CreatedAt time.Time      `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time      `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`

	Series []*Series `bun:"m2m:entry_series,join:Entry=Series" json:"series,omitempty"`
	Tags   []*Tag    `bun:"m2m:entry_tags,join:Entry=Tag"      json:"tags,omitempty"`
}

// Series is a declarative grouping label shared by related entries.
type Series struct {
	bun.BaseModel `bun:"table:series,alias:s"`

	ID        uuid.UUID `bun:",pk,type:uuid"       json:"id"`
	Slug      string    `bun:"slug,notnull,unique" json:"slug"`
	Label     string    `bun:"label,notnull"       json:"label"`
	CreatedAt time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
}

// Tag is a free-form topical label attached to entries.
type Tag struct {
	bun.BaseModel `bun:"table:tags,alias:t"`

	ID        uuid.UUID `bun:",pk,type:uuid"       json:"id"`
	Slug      string    `bun:"slug,notnull,unique" json:"slug"`
	Label     string    `bun:"label,notnull"       json:"label"`
	CreatedAt time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
}

// EntrySeries joins entries to series. Position preserves the order the
// labels appeared in front matter.
type EntrySeries struct {
	bun.BaseModel `bun:"table:entry_series,alias:es"`

	EntryID  uuid.UUID `bun:"entry_id,pk,type:uuid"  json:"entry_id"`
	SeriesID uuid.UUID `bun:"series_id,pk,type:uuid" json:"series_id"`
	Position int       `bun:"position,notnull,default:0" json:"position"`

	Entry  *Entry  `bun:"rel:belongs-to,join:entry_id=id"  json:"entry,omitempty"`
	Series *Series `bun:"rel:belongs-to,join:series_id=id" json:"series,omitempty"`
}

// EntryTag joins entries to tags.
type EntryTag struct {
	bun.BaseModel `bun:"table:entry_tags,alias:et"`

	EntryID uuid.UUID `bun:"entry_id,pk,type:uuid" json:"entry_id"`
	TagID   uuid.UUID `bun:"tag_id,pk,type:uuid"   json:"tag_id"`

	Entry *Entry `bun:"rel:belongs-to,join:entry_id=id" json:"entry,omitempty"`
	Tag   *Tag   `bun:"rel:belongs-to,join:tag_id=id"   json:"tag,omitempty"`
}
