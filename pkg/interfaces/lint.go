package interfaces

import "context"

// Severity grades a lint finding. Errors fail CI; warnings are editorial
// nudges unless strict mode promotes them.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue is a single content-integrity finding against an entry.
type Issue struct {
	Path     string   `json:"path"`
	Rule     string   `json:"rule"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

// Report aggregates lint findings for a document set.
type Report struct {
	Issues []Issue `json:"issues"`
}

// HasErrors reports whether any finding carries error severity.
func (r *Report) HasErrors() bool {
	if r == nil {
		return false
	}
	for _, issue := range r.Issues {
		if issue.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Counts returns the number of errors and warnings in the report.
func (r *Report) Counts() (errors int, warnings int) {
	if r == nil {
		return 0, 0
	}
	for _, issue := range r.Issues {
		switch issue.Severity {
		case SeverityError:
			errors++
		case SeverityWarning:
			warnings++
		}
	}
	return errors, warnings
}

// Linter runs content-integrity checks over loaded documents: front matter
// conforms to the recognized key set, dates are valid calendar dates, and
// referenced media URLs are well-formed.
type Linter interface {
	CheckDocument(ctx context.Context, doc *Document) (*Report, error)
	CheckDocuments(ctx context.Context, docs []*Document) (*Report, error)
}
