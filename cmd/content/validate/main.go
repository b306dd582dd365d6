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
	if err := runValidate(os.Args[1:]); err != nil {
		log.Fatalf("content validate: %v", err)
	}
}

func runValidate(args []string) error {
	fs := flag.NewFlagSet("content-validate", flag.ExitOnError)
	contentDir := fs.String("content-dir", "content", "Path to the Markdown content root")
	pattern := fs.String("pattern", "*.md", "Glob pattern applied when discovering entry files")
	directory := fs.String("directory", ".", "Directory to validate, relative to the content root")
	strict := fs.Bool("strict", false, "Treat warnings as failures")
	logLevel := fs.String("log-level", "info", "Log level (trace, debug, info, warn, error)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	module, err := moduleBuilder(bootstrap.Options{
		ContentDir: *contentDir,
		Pattern:    *pattern,
		Recursive:  true,
		LogLevel:   *logLevel,
	})
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}
	defer module.Close()

	if module.Linter == nil {
		return fmt.Errorf("linter not configured; ensure Features.Lint is enabled")
	}

	handler := contentcmd.NewValidateDirectoryHandler(module.Service, module.Linter, module.Logger, contentcmd.FeatureGates{}, printReport)

	cmd := contentcmd.ValidateDirectoryCommand{
		Directory: *directory,
		Pattern:   *pattern,
		Strict:    *strict,
	}
	if err := handler.Execute(context.Background(), cmd); err != nil {
		return err
	}

	fmt.Fprintln(os.Stdout, "content validate: no blocking issues found")
	return nil
}

func printReport(_ context.Context, report *interfaces.Report) {
	if report == nil {
		return
	}
	for _, issue := range report.Issues {
		fmt.Fprintf(os.Stdout, "%s: %s [%s] %s\n", issue.Severity, issue.Path, issue.Rule, issue.Message)
	}
}
