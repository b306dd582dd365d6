package markdown

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/goliatone/go-content/pkg/interfaces"
)

// GoldmarkInspector implements interfaces.BodyInspector using the goldmark
// engine. Bodies are parsed to an AST and walked; nothing is rendered, since
// turning Markdown into pages is the hosting blog engine's job.
// The inspector is stateless so callers can reuse a single instance across
// requests without additional locking.
type GoldmarkInspector struct {
	defaultOptions interfaces.InspectOptions
}

// NewGoldmarkInspector constructs an inspector with the supplied defaults.
// With no extensions configured, GFM, Linkify, and TaskList are enabled.
func NewGoldmarkInspector(defaults interfaces.InspectOptions) *GoldmarkInspector {
	return &GoldmarkInspector{
		defaultOptions: defaults,
	}
}

// Inspect satisfies interfaces.BodyInspector using the inspector's default
// configuration.
func (p *GoldmarkInspector) Inspect(markdown []byte) (*interfaces.BodyReport, error) {
	return p.InspectWithOptions(markdown, p.defaultOptions)
}

// InspectWithOptions analyses the Markdown body using the provided options.
func (p *GoldmarkInspector) InspectWithOptions(markdown []byte, opts interfaces.InspectOptions) (*interfaces.BodyReport, error) {
	engine := newGoldmarkEngine(opts)

	reader := text.NewReader(markdown)
	root := engine.Parser().Parse(reader)

	report := &interfaces.BodyReport{}

	err := ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *ast.Heading:
			report.Headings = append(report.Headings, interfaces.Heading{
				Level: node.Level,
				Text:  string(node.Text(markdown)),
			})
		case *ast.Image:
			report.Images = append(report.Images, interfaces.MediaRef{
				URL: string(node.Destination),
				Alt: string(node.Text(markdown)),
			})
		case *ast.Link:
			report.Links = append(report.Links, interfaces.LinkRef{
				URL:  string(node.Destination),
				Text: string(node.Text(markdown)),
			})
		case *ast.AutoLink:
			report.Links = append(report.Links, interfaces.LinkRef{
				URL:  string(node.URL(markdown)),
				Text: string(node.Label(markdown)),
			})
		case *ast.FencedCodeBlock:
			listing := interfaces.CodeListing{
				Lines: node.Lines().Len(),
			}
			if lang := node.Language(markdown); lang != nil {
				listing.Language = string(lang)
			}
			report.Listings = append(report.Listings, listing)
		case *ast.CodeBlock:
			report.Listings = append(report.Listings, interfaces.CodeListing{
				Lines: node.Lines().Len(),
			})
		case *ast.Text:
			segment := node.Segment
			report.WordCount += len(strings.Fields(string(segment.Value(markdown))))
		}

		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, err
	}

	return report, nil
}

// newGoldmarkEngine builds a goldmark.Markdown configured based on the
// supplied options. Unsupported extension names are ignored.
func newGoldmarkEngine(opts interfaces.InspectOptions) goldmark.Markdown {
	exts := collectExtensions(opts.Extensions)

	engineOptions := []goldmark.Option{
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
	}

	if len(exts) > 0 {
		engineOptions = append(engineOptions, goldmark.WithExtensions(exts...))
	}

	return goldmark.New(engineOptions...)
}

var extensionRegistry = map[string]goldmark.Extender{
	"gfm":           extension.GFM,
	"table":         extension.Table,
	"tables":        extension.Table,
	"strikethrough": extension.Strikethrough,
	"linkify":       extension.Linkify,
	"autolink":      extension.Linkify,
	"tasklist":      extension.TaskList,
	"definition":    extension.DefinitionList,
	"footnote":      extension.Footnote,
}

func collectExtensions(names []string) []goldmark.Extender {
	if len(names) == 0 {
		return []goldmark.Extender{
			extension.GFM,
			extension.Linkify,
			extension.TaskList,
		}
	}

	var extenders []goldmark.Extender
	seen := map[string]struct{}{}

	for _, name := range names {
		key := strings.ToLower(strings.TrimSpace(name))
		if key == "" {
			continue
		}

		if _, ok := seen[key]; ok {
			continue
		}

		ext, ok := extensionRegistry[key]
		if !ok {
			continue
		}

		extenders = append(extenders, ext)
		seen[key] = struct{}{}
	}

	return extenders
}
