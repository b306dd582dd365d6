package interfaces

import "context"

// BodyInspector extracts structural facts from a Markdown body: embedded
// media references, links, code listings, and headings. Implementations parse
// only; converting Markdown to HTML is the hosting blog engine's job and is
// explicitly out of scope for this module.
type BodyInspector interface {
	// Inspect analyses Markdown using the inspector's default settings.
	Inspect(markdown []byte) (*BodyReport, error)
	// InspectWithOptions analyses Markdown using the supplied overrides.
	InspectWithOptions(markdown []byte, opts InspectOptions) (*BodyReport, error)
}

// InspectOptions customises Markdown inspection behaviour, keeping option
// names readable for configuration unmarshalling and CLI flags.
type InspectOptions struct {
	Extensions []string
}

// BodyReport summarises the structure of a Markdown body.
type BodyReport struct {
	Headings  []Heading
	Images    []MediaRef
	Links     []LinkRef
	Listings  []CodeListing
	WordCount int
}

// Heading captures a section heading and its level.
type Heading struct {
	Level int
	Text  string
}

// MediaRef is an embedded image reference. Bodies reference externally hosted
// assets by absolute URL; the repository does not own or serve them.
type MediaRef struct {
	URL string
	Alt string
}

// LinkRef is a hyperlink destination found in the body.
type LinkRef struct {
	URL  string
	Text string
}

// CodeListing describes a fenced code block shown for illustration.
type CodeListing struct {
	Language string
	Lines    int
}

// MarkdownService exposes the file workflows for content entries: loading
// single documents or whole directories, and inspecting bodies.
type MarkdownService interface {
	Load(ctx context.Context, path string, opts LoadOptions) (*Document, error)
	LoadDirectory(ctx context.Context, dir string, opts LoadOptions) ([]*Document, error)
	Inspect(ctx context.Context, markdown []byte, opts InspectOptions) (*BodyReport, error)
	InspectDocument(ctx context.Context, doc *Document, opts InspectOptions) (*BodyReport, error)
}
