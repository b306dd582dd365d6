package identity

import (
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

// UUID derives a deterministic UUID from a stable key using go-hashid.
//
// Callers must ensure key construction prevents cross-entity collisions (prefix by domain/type).
func UUID(key string) uuid.UUID {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return uuid.Nil
	}
	uid, err := hashid.NewUUID(trimmed, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(true))
	if err != nil || uid == uuid.Nil {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(trimmed))
	}
	return uid
}

// EntryUUID derives an entry's identity from its storage location. The
// repo-relative path is the only identity an entry has; no metadata field
// participates.
func EntryUUID(path string) uuid.UUID {
	return UUID("go-content:entry:" + strings.TrimSpace(strings.TrimPrefix(path, "./")))
}

func SeriesUUID(slug string) uuid.UUID {
	return UUID("go-content:series:" + strings.ToLower(strings.TrimSpace(slug)))
}

func TagUUID(slug string) uuid.UUID {
	return UUID("go-content:tag:" + strings.ToLower(strings.TrimSpace(slug)))
}
