package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/goliatone/go-content/cmd/content/internal/bootstrap"
	contentcmd "github.com/goliatone/go-content/internal/commands/content"
	"github.com/goliatone/go-content/pkg/interfaces"
)

var moduleBuilder = bootstrap.BuildModule

func main() {
	if err := runList(os.Args[1:]); err != nil {
		log.Fatalf("content list: %v", err)
	}
}

func runList(args []string) error {
	fs := flag.NewFlagSet("content-list", flag.ExitOnError)
	contentDir := fs.String("content-dir", "content", "Path to the Markdown content root")
	dsn := fs.String("dsn", "", "Catalog database DSN (defaults to file:content.db?cache=shared)")
	series := fs.String("series", "", "List only entries belonging to this series label")
	tag := fs.String("tag", "", "List only entries carrying this tag label")
	limit := fs.Int("limit", 0, "Maximum number of entries to print (0 lists everything)")
	offset := fs.Int("offset", 0, "Number of entries to skip")
	labels := fs.Bool("labels", false, "Print the known series and tag labels instead of entries")

	if err := fs.Parse(args); err != nil {
		return err
	}

	module, err := moduleBuilder(bootstrap.Options{
		ContentDir: *contentDir,
		Recursive:  true,
		DSN:        *dsn,
	})
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}
	defer module.Close()

	if module.Catalog == nil {
		return fmt.Errorf("catalog not configured; ensure Features.Catalog is enabled")
	}

	ctx := context.Background()

	if *labels {
		return printLabels(ctx, module.Catalog)
	}

	handler := contentcmd.NewListEntriesHandler(module.Catalog, module.Logger, contentcmd.FeatureGates{}, printEntries)

	cmd := contentcmd.ListEntriesCommand{
		Series: *series,
		Tag:    *tag,
		Limit:  *limit,
		Offset: *offset,
	}
	return handler.Execute(ctx, cmd)
}

func printEntries(_ context.Context, entries []*interfaces.EntryRecord) {
	for _, entry := range entries {
		fmt.Fprintln(os.Stdout, formatEntry(entry))
	}
}

func printLabels(ctx context.Context, catalog interfaces.CatalogService) error {
	series, err := catalog.Series(ctx)
	if err != nil {
		return fmt.Errorf("query series labels: %w", err)
	}
	tags, err := catalog.Tags(ctx)
	if err != nil {
		return fmt.Errorf("query tag labels: %w", err)
	}

	for _, label := range series {
		fmt.Fprintf(os.Stdout, "series\t%s\n", label)
	}
	for _, label := range tags {
		fmt.Fprintf(os.Stdout, "tag\t%s\n", label)
	}
	return nil
}

func formatEntry(entry *interfaces.EntryRecord) string {
	date := "undated"
	if entry.Date != nil {
		date = entry.Date.Format("2006-01-02")
	}

	line := fmt.Sprintf("%s\t%s\t%s", date, entry.Slug, entry.Title)
	if len(entry.Series) > 0 {
		line += "\tseries:" + strings.Join(entry.Series, ",")
	}
	if len(entry.Tags) > 0 {
		line += "\ttags:" + strings.Join(entry.Tags, ",")
	}
	return line
}
