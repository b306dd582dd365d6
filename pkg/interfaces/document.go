package interfaces

import "time"

// Document represents a single content entry on disk: a Markdown file with a
// front matter block. The struct is shared between the interfaces package and
// internal implementations so consumers can depend on a stable contract.
type Document struct {
	// FilePath is the slash-separated path relative to the content root. An
	// entry's identity derives from this location, not from a metadata field.
	FilePath     string
	FrontMatter  FrontMatter
	Body         []byte
	LastModified time.Time
	// Checksum stores a SHA-256 digest of the original file content so sync
	// workflows can detect edits without re-reading unchanged files.
	Checksum []byte
}

// FrontMatter models the recognized metadata keys of a content entry:
// title, date, summary, series, tags, and params.author. Everything else the
// author wrote is preserved in Params / Custom, and the full decoded block in
// Raw so validators can inspect unrecognized keys.
type FrontMatter struct {
	Title   string    `json:"title"`
	Date    time.Time `json:"date"`
	Summary string    `json:"summary"`
	Series  []string  `json:"series"`
	Tags    []string  `json:"tags"`
	Author  string    `json:"author"`
	// RawDate keeps the date exactly as authored; Date is zero when RawDate
	// does not parse as a calendar date.
	RawDate string         `json:"raw_date"`
	Params  map[string]any `json:"params"`
	Custom  map[string]any `json:"custom"`
	Raw     map[string]any `json:"raw"`
}

// HasDate reports whether the entry carries a parseable publication date.
func (fm FrontMatter) HasDate() bool {
	return !fm.Date.IsZero()
}

// LoadOptions fine-tunes how documents are discovered and parsed from disk.
type LoadOptions struct {
	Recursive *bool
	Pattern   string
}
