package catalog

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound           = errors.New("catalog: record not found")
	ErrEntryIDRequired    = errors.New("catalog: entry id is required")
	ErrEntryPathRequired  = errors.New("catalog: entry path is required")
	ErrEntrySlugRequired  = errors.New("catalog: entry slug is required")
	ErrEntrySlugInvalid   = errors.New("catalog: entry slug contains invalid characters")
	ErrEntryTitleRequired = errors.New("catalog: entry title is required")
	ErrEntryExists        = errors.New("catalog: entry already indexed")
)

// NotFoundError identifies the resource and key behind a missed lookup.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	if e == nil {
		return ErrNotFound.Error()
	}
	return fmt.Sprintf("catalog: %s %q not found", e.Resource, e.Key)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// IsNotFound reports whether err represents a missed catalog lookup.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
