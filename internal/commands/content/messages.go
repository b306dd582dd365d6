package contentcmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	validateDirectoryMessageType = "content.markdown.validate_directory"
	syncDirectoryMessageType     = "content.catalog.sync_directory"
	listEntriesMessageType       = "content.catalog.list_entries"
)

// ValidateDirectoryCommand triggers a filesystem walk for Markdown entries
// under the provided Directory and runs the document checks over them: front
// matter key set, calendar dates, and media URL shape.
type ValidateDirectoryCommand struct {
	// Directory selects the filesystem path (relative or absolute) to load entries from.
	Directory string `json:"directory"`
	// Pattern overrides the default *.md glob applied during the walk.
	Pattern string `json:"pattern,omitempty"`
	// Strict promotes warnings to failures so CI runs can hold the line.
	Strict bool `json:"strict,omitempty"`
}

// Type implements command.Message.
func (ValidateDirectoryCommand) Type() string { return validateDirectoryMessageType }

// Validate ensures directory input is present before handlers execute.
func (cmd ValidateDirectoryCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Directory, validation.Required, validation.By(func(value any) error {
			if strings.TrimSpace(value.(string)) == "" {
				return validation.NewError("content.markdown.validate_directory.directory_required", "directory is required")
			}
			return nil
		})),
	)
}

// ListEntriesCommand queries the catalog index for entries in publication
// order, optionally filtered by a single series or tag label.
type ListEntriesCommand struct {
	// Series filters to entries carrying this series label.
	Series string `json:"series,omitempty"`
	// Tag filters to entries carrying this tag label.
	Tag string `json:"tag,omitempty"`
	// Limit caps the number of returned entries; zero returns everything.
	Limit int `json:"limit,omitempty"`
	// Offset skips the first N entries of the result.
	Offset int `json:"offset,omitempty"`
}

// Type implements command.Message.
func (ListEntriesCommand) Type() string { return listEntriesMessageType }

// Validate rejects conflicting filters and negative pagination values.
func (cmd ListEntriesCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Series, validation.By(func(any) error {
			if strings.TrimSpace(cmd.Series) != "" && strings.TrimSpace(cmd.Tag) != "" {
				return validation.NewError("content.catalog.list_entries.filter_conflict", "series and tag filters are mutually exclusive")
			}
			return nil
		})),
		validation.Field(&cmd.Limit, validation.Min(0)),
		validation.Field(&cmd.Offset, validation.Min(0)),
	)
}

// SyncDirectoryCommand mirrors a content tree into the catalog index,
// applying dry-run and orphan-deletion flags consistent with
// interfaces.SyncOptions.
type SyncDirectoryCommand struct {
	// Directory selects the filesystem path (relative or absolute) to load entries from.
	Directory string `json:"directory"`
	// Pattern overrides the default *.md glob applied during the walk.
	Pattern string `json:"pattern,omitempty"`
	// DryRun toggles preview mode to collect sync decisions without persisting changes.
	DryRun bool `json:"dry_run,omitempty"`
	// DeleteOrphaned removes catalog rows without a matching Markdown file when true.
	DeleteOrphaned bool `json:"delete_orphaned,omitempty"`
}

// Type implements command.Message.
func (SyncDirectoryCommand) Type() string { return syncDirectoryMessageType }

// Validate ensures directory input is present before handlers execute.
func (cmd SyncDirectoryCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Directory, validation.Required, validation.By(func(value any) error {
			if strings.TrimSpace(value.(string)) == "" {
				return validation.NewError("content.catalog.sync_directory.directory_required", "directory is required")
			}
			return nil
		})),
	)
}
