package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/goliatone/go-content/cmd/content/internal/bootstrap"
	contentcmd "github.com/goliatone/go-content/internal/commands/content"
	"github.com/goliatone/go-content/pkg/interfaces"
)

var moduleBuilder = bootstrap.BuildModule

func main() {
	if err := runSync(os.Args[1:]); err != nil {
		log.Fatalf("content sync: %v", err)
	}
}

func runSync(args []string) error {
	fs := flag.NewFlagSet("content-sync", flag.ExitOnError)
	contentDir := fs.String("content-dir", "content", "Path to the Markdown content root")
	pattern := fs.String("pattern", "*.md", "Glob pattern applied when discovering entry files")
	directory := fs.String("directory", ".", "Directory to sync, relative to the content root")
	dsn := fs.String("dsn", "", "Catalog database DSN (defaults to file:content.db?cache=shared)")
	dryRun := fs.Bool("dry-run", false, "Preview create/update/delete decisions without persisting")
	deleteOrphaned := fs.Bool("delete-orphaned", false, "Remove catalog rows whose source file disappeared")
	logLevel := fs.String("log-level", "info", "Log level (trace, debug, info, warn, error)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	module, err := moduleBuilder(bootstrap.Options{
		ContentDir: *contentDir,
		Pattern:    *pattern,
		Recursive:  true,
		DSN:        *dsn,
		LogLevel:   *logLevel,
	})
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}
	defer module.Close()

	if module.Syncer == nil {
		return fmt.Errorf("syncer not configured; ensure Features.Catalog and Features.Sync are enabled")
	}

	handler := contentcmd.NewSyncDirectoryHandler(module.Service, module.Syncer, module.Logger, contentcmd.FeatureGates{}, printResult)

	cmd := contentcmd.SyncDirectoryCommand{
		Directory:      *directory,
		Pattern:        *pattern,
		DryRun:         *dryRun,
		DeleteOrphaned: *deleteOrphaned,
	}
	if err := handler.Execute(context.Background(), cmd); err != nil {
		return fmt.Errorf("execute sync command: %w", err)
	}
	return nil
}

func printResult(_ context.Context, result *interfaces.SyncResult) {
	if result == nil {
		return
	}
	fmt.Fprintf(os.Stdout, "content sync: created=%d updated=%d skipped=%d deleted=%d\n",
		result.Created, result.Updated, result.Skipped, result.Deleted)
	for _, err := range result.Errors {
		fmt.Fprintf(os.Stderr, "content sync error: %v\n", err)
	}
}
