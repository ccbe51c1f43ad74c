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

// ReleaseUUID keys a release record by its normalized version string.
func ReleaseUUID(version string) uuid.UUID {
	return UUID("go-relnotes:release:" + strings.TrimSpace(version))
}

// SearchDocumentUUID keys a search document by index name and object ID so
// re-indexing the same page lands on the same row.
func SearchDocumentUUID(indexName, objectID string) uuid.UUID {
	return UUID("go-relnotes:search_document:" + strings.TrimSpace(indexName) + "|" + strings.TrimSpace(objectID))
}
