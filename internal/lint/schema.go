package lint

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// frontMatterSchema constrains the types of the recognized front matter keys:
// title, date, summary, series, tags, params. Keys outside this set are
// preserved by the loader and handled by a dedicated rule so they surface as
// warnings instead of schema failures.
var frontMatterSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"title":   map[string]any{"type": "string"},
		"date":    map[string]any{"type": "string"},
		"summary": map[string]any{"type": "string"},
		"series": map[string]any{
			"type":  "array",
			"items": map[string]any{"type": "string"},
		},
		"tags": map[string]any{
			"type":  "array",
			"items": map[string]any{"type": "string"},
		},
		"params": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"author": map[string]any{"type": "string"},
			},
			"additionalProperties": true,
		},
	},
	"additionalProperties": true,
}

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

func compiledFrontMatterSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		encoded, err := json.Marshal(frontMatterSchema)
		if err != nil {
			compileErr = err
			return
		}
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020
		if err := compiler.AddResource("frontmatter.json", bytes.NewReader(encoded)); err != nil {
			compileErr = err
			return
		}
		compiledSchema, compileErr = compiler.Compile("frontmatter.json")
	})
	return compiledSchema, compileErr
}

// validateFrontMatter checks the raw front matter block against the
// recognized key schema and returns one message per violation.
func validateFrontMatter(raw map[string]any) ([]string, error) {
	schema, err := compiledFrontMatterSchema()
	if err != nil {
		return nil, fmt.Errorf("lint: compile frontmatter schema: %w", err)
	}

	payload, err := jsonRoundTrip(raw)
	if err != nil {
		return nil, fmt.Errorf("lint: normalize frontmatter payload: %w", err)
	}

	if err := schema.Validate(payload); err != nil {
		var validationErr *jsonschema.ValidationError
		if ok := asValidationError(err, &validationErr); ok {
			return collectMessages(validationErr), nil
		}
		return []string{err.Error()}, nil
	}
	return nil, nil
}

// jsonRoundTrip converts YAML-decoded values ([]string, int, nested maps)
// into the JSON-compatible shapes the schema validator expects.
func jsonRoundTrip(raw map[string]any) (map[string]any, error) {
	if raw == nil {
		return map[string]any{}, nil
	}
	encoded, err := json.Marshal(raw)
	if err != nil {
		return nil, err
	}
	var payload map[string]any
	if err := json.Unmarshal(encoded, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

func asValidationError(err error, target **jsonschema.ValidationError) bool {
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return false
	}
	*target = ve
	return true
}

func collectMessages(err *jsonschema.ValidationError) []string {
	if err == nil {
		return nil
	}
	messages := []string{}
	var walk func(*jsonschema.ValidationError)
	walk = func(node *jsonschema.ValidationError) {
		if node == nil {
			return
		}
		if len(node.Causes) == 0 {
			location := strings.TrimSpace(node.InstanceLocation)
			if location == "" {
				location = "#"
			} else if !strings.HasPrefix(location, "#") {
				location = "#" + location
			}
			messages = append(messages, fmt.Sprintf("%s: %s", location, strings.TrimSpace(node.Message)))
			return
		}
		for _, cause := range node.Causes {
			walk(cause)
		}
	}
	walk(err)
	return messages
}
