package catalog

import (
	"errors"
	"fmt"
)

var (
	ErrVersionRequired    = errors.New("catalog: version is required")
	ErrContentDirRequired = errors.New("catalog: content directory is required")
	ErrIndexNameRequired  = errors.New("catalog: index name is required")
	ErrQueryRequired      = errors.New("catalog: search query is required")
	ErrReleaseNotFound    = errors.New("catalog: release not found")
	ErrDocumentNotFound   = errors.New("catalog: search document not found")
	ErrCatalogDisabled    = errors.New("catalog: feature disabled")
)

// NotFoundError reports a missing catalog record together with the resource
// kind and lookup key.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %q not found", e.Resource, e.Key)
}

func (e *NotFoundError) Unwrap() error {
	switch e.Resource {
	case "release":
		return ErrReleaseNotFound
	case "search_document":
		return ErrDocumentNotFound
	default:
		return nil
	}
}
