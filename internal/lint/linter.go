// Package lint runs content-integrity checks over loaded entries: front
// matter conforms to the recognized key set, dates parse as calendar dates,
// and referenced media URLs are well-formed. Findings are editorial, not
// runtime failures; the linter never mutates the corpus.
package lint

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/goliatone/go-content/internal/logging"
	"github.com/goliatone/go-content/internal/markdown"
	"github.com/goliatone/go-content/pkg/interfaces"
)

const (
	RuleFrontMatterSchema = "frontmatter-schema"
	RuleUnknownKey        = "unknown-key"
	RuleTitleRequired     = "title-required"
	RuleDateMissing       = "date-missing"
	RuleDateInvalid       = "date-invalid"
	RuleSummaryMissing    = "summary-missing"
	RuleAuthorMissing     = "author-missing"
	RuleImageURL          = "image-url"
	RuleLinkURL           = "link-url"
	RuleDuplicateSlug     = "duplicate-slug"
	RuleLabelDrift        = "label-drift"
	RuleEmptyBody         = "empty-body"
)

// Config tunes linter behaviour.
type Config struct {
	// AllowedSchemes lists URL schemes accepted for media and links
	// (defaults to http and https).
	AllowedSchemes []string
	// RequireAbsoluteImages flags relative image references; the corpus hosts
	// no media of its own, so relative refs are almost always mistakes.
	RequireAbsoluteImages bool
}

// Linter implements interfaces.Linter.
type Linter struct {
	cfg       Config
	schemes   map[string]struct{}
	inspector interfaces.BodyInspector
	logger    interfaces.Logger
}

// New constructs a Linter. A nil inspector gets a default goldmark inspector;
// a nil logger is replaced with a no-op.
func New(cfg Config, inspector interfaces.BodyInspector, logger interfaces.Logger) *Linter {
	if inspector == nil {
		inspector = markdown.NewGoldmarkInspector(interfaces.InspectOptions{})
	}
	if logger == nil {
		logger = logging.NoOp()
	}

	allowed := cfg.AllowedSchemes
	if len(allowed) == 0 {
		allowed = []string{"http", "https"}
	}
	schemes := make(map[string]struct{}, len(allowed))
	for _, scheme := range allowed {
		schemes[strings.ToLower(strings.TrimSpace(scheme))] = struct{}{}
	}

	return &Linter{
		cfg:       cfg,
		schemes:   schemes,
		inspector: inspector,
		logger:    logger,
	}
}

// CheckDocument lints a single entry.
func (l *Linter) CheckDocument(ctx context.Context, doc *interfaces.Document) (*interfaces.Report, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if doc == nil {
		return &interfaces.Report{}, nil
	}

	report := &interfaces.Report{}
	l.checkFrontMatter(doc, report)
	if err := l.checkBody(doc, report); err != nil {
		return nil, err
	}

	errs, warns := report.Counts()
	logging.WithEntryContext(l.logger, doc.FilePath, markdown.SlugFromPath(doc.FilePath), "").
		Debug("lint.document.checked", "errors", errs, "warnings", warns)

	return report, nil
}

// CheckDocuments lints every entry and then applies corpus-level rules such
// as duplicate slug detection.
func (l *Linter) CheckDocuments(ctx context.Context, docs []*interfaces.Document) (*interfaces.Report, error) {
	report := &interfaces.Report{}

	for _, doc := range docs {
		partial, err := l.CheckDocument(ctx, doc)
		if err != nil {
			return nil, err
		}
		report.Issues = append(report.Issues, partial.Issues...)
	}

	l.checkDuplicateSlugs(docs, report)
	l.checkLabelDrift(docs, report)

	return report, nil
}

func (l *Linter) checkFrontMatter(doc *interfaces.Document, report *interfaces.Report) {
	fm := doc.FrontMatter

	if messages, err := validateFrontMatter(fm.Raw); err != nil {
		add(report, doc, RuleFrontMatterSchema, interfaces.SeverityError, err.Error())
	} else {
		for _, message := range messages {
			add(report, doc, RuleFrontMatterSchema, interfaces.SeverityError, message)
		}
	}

	// Custom holds exactly the keys the front matter parser did not recognize.
	for _, key := range sortedKeys(fm.Custom) {
		add(report, doc, RuleUnknownKey, interfaces.SeverityWarning,
			fmt.Sprintf("front matter key %q is not part of the recognized set", key))
	}

	if strings.TrimSpace(fm.Title) == "" {
		add(report, doc, RuleTitleRequired, interfaces.SeverityError, "title is required")
	}

	switch {
	case strings.TrimSpace(fm.RawDate) == "":
		add(report, doc, RuleDateMissing, interfaces.SeverityError, "date is required")
	case !fm.HasDate():
		add(report, doc, RuleDateInvalid, interfaces.SeverityError,
			fmt.Sprintf("date %q is not a valid calendar date", fm.RawDate))
	}

	if strings.TrimSpace(fm.Summary) == "" {
		add(report, doc, RuleSummaryMissing, interfaces.SeverityWarning, "summary is empty")
	}
	if strings.TrimSpace(fm.Author) == "" {
		add(report, doc, RuleAuthorMissing, interfaces.SeverityWarning, "params.author is empty")
	}
}

func (l *Linter) checkBody(doc *interfaces.Document, report *interfaces.Report) error {
	if len(strings.TrimSpace(string(doc.Body))) == 0 {
		add(report, doc, RuleEmptyBody, interfaces.SeverityWarning, "entry body is empty")
		return nil
	}

	body, err := l.inspector.Inspect(doc.Body)
	if err != nil {
		return fmt.Errorf("lint: inspect %s: %w", doc.FilePath, err)
	}

	for _, image := range body.Images {
		if severity, message, ok := l.checkURL(image.URL, l.cfg.RequireAbsoluteImages); ok {
			add(report, doc, RuleImageURL, severity, message)
		}
	}
	for _, link := range body.Links {
		if _, message, ok := l.checkURL(link.URL, false); ok {
			add(report, doc, RuleLinkURL, interfaces.SeverityWarning, message)
		}
	}

	return nil
}

// checkURL reports a finding for malformed or unexpected destinations. The
// second return is the message; ok is false when the URL is acceptable.
func (l *Linter) checkURL(raw string, requireAbsolute bool) (interfaces.Severity, string, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return interfaces.SeverityError, "destination URL is empty", true
	}

	parsed, err := url.Parse(trimmed)
	if err != nil {
		return interfaces.SeverityError, fmt.Sprintf("malformed URL %q: %v", trimmed, err), true
	}

	if parsed.Scheme == "" {
		if requireAbsolute {
			return interfaces.SeverityWarning,
				fmt.Sprintf("relative reference %q; media is externally hosted and should use absolute URLs", trimmed), true
		}
		return "", "", false
	}

	if _, ok := l.schemes[strings.ToLower(parsed.Scheme)]; !ok {
		return interfaces.SeverityError, fmt.Sprintf("URL scheme %q is not allowed: %q", parsed.Scheme, trimmed), true
	}
	if parsed.Host == "" {
		return interfaces.SeverityError, fmt.Sprintf("URL %q has no host", trimmed), true
	}

	return "", "", false
}

func (l *Linter) checkDuplicateSlugs(docs []*interfaces.Document, report *interfaces.Report) {
	seen := map[string]string{}
	for _, doc := range docs {
		if doc == nil {
			continue
		}
		slug := markdown.SlugFromPath(doc.FilePath)
		if slug == "" {
			continue
		}
		if previous, ok := seen[slug]; ok {
			add(report, doc, RuleDuplicateSlug, interfaces.SeverityError,
				fmt.Sprintf("slug %q already used by %s", slug, previous))
			continue
		}
		seen[slug] = doc.FilePath
	}
}

// checkLabelDrift flags series and tag labels that normalize to the same slug
// while differing in raw text, since the catalog would collapse them into a
// single label and the first spelling would win.
func (l *Linter) checkLabelDrift(docs []*interfaces.Document, report *interfaces.Report) {
	type labelSet struct {
		kind   string
		values func(*interfaces.Document) []string
	}
	sets := []labelSet{
		{kind: "series", values: func(doc *interfaces.Document) []string { return doc.FrontMatter.Series }},
		{kind: "tag", values: func(doc *interfaces.Document) []string { return doc.FrontMatter.Tags }},
	}

	for _, set := range sets {
		seen := map[string]string{}
		for _, doc := range docs {
			if doc == nil {
				continue
			}
			for _, label := range set.values(doc) {
				label = strings.TrimSpace(label)
				if label == "" {
					continue
				}
				slug, err := markdown.NormalizeLabel(label)
				if err != nil || slug == "" {
					continue
				}
				previous, ok := seen[slug]
				if !ok {
					seen[slug] = label
					continue
				}
				if previous != label {
					add(report, doc, RuleLabelDrift, interfaces.SeverityWarning,
						fmt.Sprintf("%s label %q drifts from earlier spelling %q", set.kind, label, previous))
				}
			}
		}
	}
}

func add(report *interfaces.Report, doc *interfaces.Document, rule string, severity interfaces.Severity, message string) {
	report.Issues = append(report.Issues, interfaces.Issue{
		Path:     doc.FilePath,
		Rule:     rule,
		Severity: severity,
		Message:  message,
	})
}

func sortedKeys(values map[string]any) []string {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
