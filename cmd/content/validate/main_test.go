package main

import (
	"context"
	"testing"

	"github.com/goliatone/go-content/cmd/content/internal/bootstrap"
	"github.com/goliatone/go-content/internal/logging"
	"github.com/goliatone/go-content/pkg/interfaces"
)

type stubMarkdownService struct {
	loadCalls int
	loadDir   string
}

func (s *stubMarkdownService) Load(context.Context, string, interfaces.LoadOptions) (*interfaces.Document, error) {
	return nil, nil
}

func (s *stubMarkdownService) LoadDirectory(_ context.Context, dir string, _ interfaces.LoadOptions) ([]*interfaces.Document, error) {
	s.loadCalls++
	s.loadDir = dir
	return []*interfaces.Document{{FilePath: "posts/a.md"}}, nil
}

func (s *stubMarkdownService) Inspect(context.Context, []byte, interfaces.InspectOptions) (*interfaces.BodyReport, error) {
	return &interfaces.BodyReport{}, nil
}

func (s *stubMarkdownService) InspectDocument(context.Context, *interfaces.Document, interfaces.InspectOptions) (*interfaces.BodyReport, error) {
	return &interfaces.BodyReport{}, nil
}

type stubLinter struct {
	report *interfaces.Report
}

func (s *stubLinter) CheckDocument(context.Context, *interfaces.Document) (*interfaces.Report, error) {
	return s.report, nil
}

func (s *stubLinter) CheckDocuments(context.Context, []*interfaces.Document) (*interfaces.Report, error) {
	return s.report, nil
}

func TestRunValidateUsesCommandHandler(t *testing.T) {
	original := moduleBuilder
	defer func() { moduleBuilder = original }()

	svc := &stubMarkdownService{}
	moduleBuilder = func(bootstrap.Options) (*bootstrap.Module, error) {
		return &bootstrap.Module{
			Service: svc,
			Linter:  &stubLinter{report: &interfaces.Report{}},
			Logger:  logging.NoOp(),
		}, nil
	}

	if err := runValidate([]string{"-directory", "posts"}); err != nil {
		t.Fatalf("runValidate returned error: %v", err)
	}
	if svc.loadCalls != 1 {
		t.Fatalf("expected one load call, got %d", svc.loadCalls)
	}
	if svc.loadDir != "posts" {
		t.Fatalf("expected directory posts, got %s", svc.loadDir)
	}
}

func TestRunValidateFailsOnLintErrors(t *testing.T) {
	original := moduleBuilder
	defer func() { moduleBuilder = original }()

	report := &interfaces.Report{Issues: []interfaces.Issue{{
		Path:     "posts/a.md",
		Rule:     "title-required",
		Severity: interfaces.SeverityError,
		Message:  "title is required",
	}}}
	moduleBuilder = func(bootstrap.Options) (*bootstrap.Module, error) {
		return &bootstrap.Module{
			Service: &stubMarkdownService{},
			Linter:  &stubLinter{report: report},
			Logger:  logging.NoOp(),
		}, nil
	}

	if err := runValidate([]string{"-directory", "posts"}); err == nil {
		t.Fatal("expected lint failure to surface as an error")
	}
}
