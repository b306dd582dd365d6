package contentcmd

import (
	"context"
	"errors"
	"fmt"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-content/internal/commands"
	"github.com/goliatone/go-content/internal/logging"
	"github.com/goliatone/go-content/pkg/interfaces"
)

const (
	validateOperation = "content.validate_directory"
	syncOperation     = "content.sync_directory"
	listOperation     = "content.list_entries"
)

var (
	// ErrLintFeatureDisabled is returned when the lint feature flag is disabled at runtime.
	ErrLintFeatureDisabled = errors.New("content command: lint feature disabled")
	// ErrSyncFeatureDisabled is returned when the sync feature flag is disabled at runtime.
	ErrSyncFeatureDisabled = errors.New("content command: sync feature disabled")
	// ErrCatalogFeatureDisabled is returned when the catalog feature flag is disabled at runtime.
	ErrCatalogFeatureDisabled = errors.New("content command: catalog feature disabled")
	// ErrLintIssuesFound signals that validation surfaced blocking findings.
	ErrLintIssuesFound = errors.New("content command: lint issues found")
)

var (
	_ command.Commander[ValidateDirectoryCommand] = (*ValidateDirectoryHandler)(nil)
	_ command.Commander[SyncDirectoryCommand]     = (*SyncDirectoryHandler)(nil)
	_ command.Commander[ListEntriesCommand]       = (*ListEntriesHandler)(nil)
)

// ReportSink receives the lint report produced by a validate run, letting
// callers render findings without re-running the checks.
type ReportSink func(ctx context.Context, report *interfaces.Report)

// ResultSink receives the outcome of a sync run.
type ResultSink func(ctx context.Context, result *interfaces.SyncResult)

// EntriesSink receives the entry records returned by a list run.
type EntriesSink func(ctx context.Context, entries []*interfaces.EntryRecord)

// ValidateDirectoryHandler loads a content tree and lints every entry via the
// shared command handler foundation.
type ValidateDirectoryHandler struct {
	inner *commands.Handler[ValidateDirectoryCommand]
}

// NewValidateDirectoryHandler creates a handler bound to the supplied loader
// service and linter. sink may be nil.
func NewValidateDirectoryHandler(service interfaces.MarkdownService, linter interfaces.Linter, logger interfaces.Logger, gates FeatureGates, sink ReportSink, opts ...commands.HandlerOption[ValidateDirectoryCommand]) *ValidateDirectoryHandler {
	baseLogger := commands.EnsureLogger(logger)

	exec := func(ctx context.Context, msg ValidateDirectoryCommand) error {
		if !gates.lintEnabled() {
			return ErrLintFeatureDisabled
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		docs, err := service.LoadDirectory(ctx, msg.Directory, interfaces.LoadOptions{
			Pattern: msg.Pattern,
		})
		if err != nil {
			return err
		}

		report, err := linter.CheckDocuments(ctx, docs)
		if err != nil {
			return err
		}
		if sink != nil {
			sink(ctx, report)
		}

		errCount, warnCount := report.Counts()
		logging.WithFields(baseLogger, map[string]any{
			"entry_count":   len(docs),
			"error_count":   errCount,
			"warning_count": warnCount,
			"strict":        msg.Strict,
		}).Info("content.command.validate_directory.completed")

		if errCount > 0 || (msg.Strict && warnCount > 0) {
			return fmt.Errorf("%w: %d errors, %d warnings", ErrLintIssuesFound, errCount, warnCount)
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[ValidateDirectoryCommand]{
		commands.WithLogger[ValidateDirectoryCommand](baseLogger),
		commands.WithOperation[ValidateDirectoryCommand](validateOperation),
		commands.WithMessageFields(func(msg ValidateDirectoryCommand) map[string]any {
			fields := map[string]any{
				"directory": msg.Directory,
			}
			if msg.Pattern != "" {
				fields["pattern"] = msg.Pattern
			}
			if msg.Strict {
				fields["strict"] = true
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[ValidateDirectoryCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &ValidateDirectoryHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[ValidateDirectoryCommand].
func (h *ValidateDirectoryHandler) Execute(ctx context.Context, msg ValidateDirectoryCommand) error {
	return h.inner.Execute(ctx, msg)
}

// SyncDirectoryHandler mirrors a content tree into the catalog via the shared
// command handler foundation.
type SyncDirectoryHandler struct {
	inner *commands.Handler[SyncDirectoryCommand]
}

// NewSyncDirectoryHandler creates a handler bound to the supplied loader
// service and syncer. sink may be nil.
func NewSyncDirectoryHandler(service interfaces.MarkdownService, syncer interfaces.Syncer, logger interfaces.Logger, gates FeatureGates, sink ResultSink, opts ...commands.HandlerOption[SyncDirectoryCommand]) *SyncDirectoryHandler {
	baseLogger := commands.EnsureLogger(logger)

	exec := func(ctx context.Context, msg SyncDirectoryCommand) error {
		if !gates.syncEnabled() {
			return ErrSyncFeatureDisabled
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		docs, err := service.LoadDirectory(ctx, msg.Directory, interfaces.LoadOptions{
			Pattern: msg.Pattern,
		})
		if err != nil {
			return err
		}

		result, err := syncer.SyncDocuments(ctx, docs, interfaces.SyncOptions{
			DryRun:         msg.DryRun,
			DeleteOrphaned: msg.DeleteOrphaned,
		})
		if err != nil {
			return err
		}
		if sink != nil {
			sink(ctx, result)
		}

		if result != nil {
			logging.WithFields(baseLogger, map[string]any{
				"created_count":  result.Created,
				"updated_count":  result.Updated,
				"skipped_count":  result.Skipped,
				"deleted_count":  result.Deleted,
				"error_count":    len(result.Errors),
				"dry_run":        msg.DryRun,
				"delete_orphans": msg.DeleteOrphaned,
			}).Info("content.command.sync_directory.completed")
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[SyncDirectoryCommand]{
		commands.WithLogger[SyncDirectoryCommand](baseLogger),
		commands.WithOperation[SyncDirectoryCommand](syncOperation),
		commands.WithMessageFields(func(msg SyncDirectoryCommand) map[string]any {
			fields := map[string]any{
				"directory": msg.Directory,
			}
			if msg.Pattern != "" {
				fields["pattern"] = msg.Pattern
			}
			if msg.DryRun {
				fields["dry_run"] = true
			}
			if msg.DeleteOrphaned {
				fields["delete_orphaned"] = true
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[SyncDirectoryCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &SyncDirectoryHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[SyncDirectoryCommand].
func (h *SyncDirectoryHandler) Execute(ctx context.Context, msg SyncDirectoryCommand) error {
	return h.inner.Execute(ctx, msg)
}

// ListEntriesHandler queries the catalog index via the shared command handler
// foundation.
type ListEntriesHandler struct {
	inner *commands.Handler[ListEntriesCommand]
}

// NewListEntriesHandler creates a handler bound to the supplied catalog
// service. sink may be nil.
func NewListEntriesHandler(catalog interfaces.CatalogService, logger interfaces.Logger, gates FeatureGates, sink EntriesSink, opts ...commands.HandlerOption[ListEntriesCommand]) *ListEntriesHandler {
	baseLogger := commands.EnsureLogger(logger)

	exec := func(ctx context.Context, msg ListEntriesCommand) error {
		if !gates.catalogEnabled() {
			return ErrCatalogFeatureDisabled
		}

		var (
			entries []*interfaces.EntryRecord
			err     error
		)
		switch {
		case msg.Series != "":
			entries, err = catalog.ListBySeries(ctx, msg.Series)
		case msg.Tag != "":
			entries, err = catalog.ListByTag(ctx, msg.Tag)
		default:
			entries, err = catalog.List(ctx, interfaces.EntryListOptions{
				Limit:  msg.Limit,
				Offset: msg.Offset,
			})
		}
		if err != nil {
			return err
		}
		if sink != nil {
			sink(ctx, entries)
		}

		logging.WithFields(baseLogger, map[string]any{
			"entry_count": len(entries),
		}).Info("content.command.list_entries.completed")
		return nil
	}

	handlerOpts := []commands.HandlerOption[ListEntriesCommand]{
		commands.WithLogger[ListEntriesCommand](baseLogger),
		commands.WithOperation[ListEntriesCommand](listOperation),
		commands.WithMessageFields(func(msg ListEntriesCommand) map[string]any {
			fields := map[string]any{}
			if msg.Series != "" {
				fields["series"] = msg.Series
			}
			if msg.Tag != "" {
				fields["tag"] = msg.Tag
			}
			if msg.Limit > 0 {
				fields["limit"] = msg.Limit
			}
			if msg.Offset > 0 {
				fields["offset"] = msg.Offset
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[ListEntriesCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &ListEntriesHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[ListEntriesCommand].
func (h *ListEntriesHandler) Execute(ctx context.Context, msg ListEntriesCommand) error {
	return h.inner.Execute(ctx, msg)
}
