package markdown

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/adrg/frontmatter"

	"github.com/goliatone/go-content/pkg/interfaces"
)

// dateLayouts are the calendar formats accepted for the date key.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05 -07:00",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseFrontMatter extracts metadata and Markdown body content from the
// provided source bytes. The block is decoded into a raw map first and typed
// fields are projected from it leniently, so a mistyped value (say, a numeric
// summary) still loads and surfaces as a lint finding instead of aborting the
// whole corpus walk.
func ParseFrontMatter(source []byte) (interfaces.FrontMatter, []byte, error) {
	var raw map[string]any

	reader := bytes.NewReader(source)
	body, err := frontmatter.Parse(reader, &raw)
	if err != nil {
		return interfaces.FrontMatter{}, nil, fmt.Errorf("parse frontmatter: %w", err)
	}

	return rawToFrontMatter(normalizeMap(raw)), body, nil
}

// ParseDate resolves a raw date value against the accepted calendar layouts.
func ParseDate(value string) (time.Time, bool) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if ts, err := time.Parse(layout, trimmed); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

// BuildDocument assembles an interfaces.Document from the supplied file path,
// raw content, and modification time.
func BuildDocument(path string, source []byte, modified time.Time) (*interfaces.Document, error) {
	frontmatter, body, err := ParseFrontMatter(source)
	if err != nil {
		return nil, err
	}

	return &interfaces.Document{
		FilePath:     path,
		FrontMatter:  frontmatter,
		Body:         body,
		LastModified: modified,
	}, nil
}

func rawToFrontMatter(raw map[string]any) interfaces.FrontMatter {
	fm := interfaces.FrontMatter{
		Params: map[string]any{},
		Custom: map[string]any{},
		Raw:    raw,
	}
	if raw == nil {
		fm.Raw = map[string]any{}
		return fm
	}

	for key, value := range raw {
		switch key {
		case "title":
			fm.Title = asString(value)
		case "date":
			fm.RawDate = asDateString(value)
		case "summary":
			fm.Summary = asString(value)
		case "series":
			fm.Series = asStringList(value)
		case "tags":
			fm.Tags = asStringList(value)
		case "params":
			if params, ok := value.(map[string]any); ok {
				fm.Params = params
				fm.Author = asString(params["author"])
			}
		default:
			fm.Custom[key] = value
		}
	}

	fm.Date, _ = ParseDate(fm.RawDate)
	return fm
}

func asString(value any) string {
	s, _ := value.(string)
	return s
}

// asDateString keeps the authored date in string form. YAML decoders hand
// back either a string or, for some layouts, an already-resolved time.Time.
func asDateString(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case time.Time:
		return v.Format(time.RFC3339)
	default:
		return ""
	}
}

// asStringList accepts both a sequence and a bare scalar, since authors write
// `series: WASI from scratch` and `series: [WASI from scratch]`
// interchangeably. Non-string items are dropped here; the front matter schema
// check reports them.
func asStringList(value any) []string {
	switch v := value.(type) {
	case string:
		if strings.TrimSpace(v) == "" {
			return nil
		}
		return []string{v}
	case []string:
		return append([]string(nil), v...)
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

// normalizeMap rewrites YAML-decoded values into JSON-compatible shapes:
// map[interface{}]interface{} becomes map[string]any, recursively.
func normalizeMap(input map[string]any) map[string]any {
	if input == nil {
		return nil
	}
	out := make(map[string]any, len(input))
	for key, value := range input {
		out[key] = normalizeValue(value)
	}
	return out
}

func normalizeValue(value any) any {
	switch v := value.(type) {
	case map[string]any:
		return normalizeMap(v)
	case map[any]any:
		out := make(map[string]any, len(v))
		for key, item := range v {
			out[fmt.Sprint(key)] = normalizeValue(item)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = normalizeValue(item)
		}
		return out
	default:
		return v
	}
}
