package markdown

import (
	"path/filepath"
	"strings"

	"github.com/goliatone/go-slug"
)

// SlugFromPath derives an entry's slug from its storage location: the file
// basename without extension, normalized by go-slug. Front matter carries no
// slug key; the path is the entry's only identity.
func SlugFromPath(path string) string {
	base := filepath.Base(filepath.ToSlash(path))
	base = strings.TrimSuffix(base, filepath.Ext(base))
	normalized, err := slug.Normalize(base)
	if err != nil || normalized == "" {
		return strings.ToLower(strings.TrimSpace(base))
	}
	return normalized
}

// NormalizeLabel applies slug normalization to series and tag labels so
// lookups tolerate case and whitespace drift.
func NormalizeLabel(value string) (string, error) {
	return slug.Normalize(value)
}

// IsValidSlug reports whether the slug matches the default rules.
func IsValidSlug(value string) bool {
	return slug.IsValid(value)
}
