package catalog

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// MemoryReleaseRepository is an in-memory implementation for scaffolding and tests.
type MemoryReleaseRepository struct {
	mu           sync.RWMutex
	releases     map[uuid.UUID]*Release
	versionIndex map[string]uuid.UUID
}

// NewMemoryReleaseRepository creates an empty in-memory release repository.
func NewMemoryReleaseRepository() *MemoryReleaseRepository {
	return &MemoryReleaseRepository{
		releases:     make(map[uuid.UUID]*Release),
		versionIndex: make(map[string]uuid.UUID),
	}
}

// Upsert inserts the release or replaces the stored record with the same ID.
func (m *MemoryReleaseRepository) Upsert(_ context.Context, record *Release) (*Release, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := cloneRelease(record)
	if existing, ok := m.releases[copied.ID]; ok {
		copied.CreatedAt = existing.CreatedAt
	}
	m.releases[copied.ID] = copied
	m.versionIndex[copied.Version] = copied.ID
	return cloneRelease(copied), nil
}

// GetByVersion retrieves a release by version, returning NotFoundError when absent.
func (m *MemoryReleaseRepository) GetByVersion(_ context.Context, version string) (*Release, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.versionIndex[version]
	if !ok {
		return nil, &NotFoundError{Resource: "release", Key: version}
	}
	return cloneRelease(m.releases[id]), nil
}

// List returns all stored releases.
func (m *MemoryReleaseRepository) List(_ context.Context) ([]*Release, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Release, 0, len(m.releases))
	for _, rec := range m.releases {
		out = append(out, cloneRelease(rec))
	}
	return out, nil
}

// MemorySearchDocumentRepository stores search documents keyed by index and object ID.
type MemorySearchDocumentRepository struct {
	mu   sync.RWMutex
	docs map[uuid.UUID]*SearchDocument
}

// NewMemorySearchDocumentRepository constructs the repository.
func NewMemorySearchDocumentRepository() *MemorySearchDocumentRepository {
	return &MemorySearchDocumentRepository{
		docs: make(map[uuid.UUID]*SearchDocument),
	}
}

// Upsert inserts the document or replaces the stored record with the same ID.
func (m *MemorySearchDocumentRepository) Upsert(_ context.Context, record *SearchDocument) (*SearchDocument, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := cloneSearchDocument(record)
	if existing, ok := m.docs[copied.ID]; ok {
		copied.CreatedAt = existing.CreatedAt
	}
	m.docs[copied.ID] = copied
	return cloneSearchDocument(copied), nil
}

// GetByObjectID retrieves a live document by index name and object ID.
func (m *MemorySearchDocumentRepository) GetByObjectID(_ context.Context, index, objectID string) (*SearchDocument, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, rec := range m.docs {
		if rec.IndexName == index && rec.ObjectID == objectID && rec.DeletedAt == nil {
			return cloneSearchDocument(rec), nil
		}
	}
	return nil, &NotFoundError{Resource: "search_document", Key: index + "/" + objectID}
}

// ListByIndex returns the live documents of an index ordered by object ID.
func (m *MemorySearchDocumentRepository) ListByIndex(_ context.Context, index string) ([]*SearchDocument, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*SearchDocument, 0)
	for _, rec := range m.docs {
		if rec.IndexName != index || rec.DeletedAt != nil {
			continue
		}
		out = append(out, cloneSearchDocument(rec))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ObjectID < out[j].ObjectID })
	return out, nil
}

// Search matches the query as a case-insensitive substring over title and
// content, ordered by object ID.
func (m *MemorySearchDocumentRepository) Search(_ context.Context, index, query string, limit int) ([]*SearchDocument, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	needle := strings.ToLower(strings.TrimSpace(query))
	out := make([]*SearchDocument, 0)
	for _, rec := range m.docs {
		if rec.IndexName != index || rec.DeletedAt != nil {
			continue
		}
		if !strings.Contains(strings.ToLower(rec.Title), needle) &&
			!strings.Contains(strings.ToLower(rec.Content), needle) {
			continue
		}
		out = append(out, cloneSearchDocument(rec))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ObjectID < out[j].ObjectID })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func cloneRelease(src *Release) *Release {
	if src == nil {
		return nil
	}

	copied := *src
	copied.Sections = cloneStrings(src.Sections)
	copied.Connectors = cloneStrings(src.Connectors)
	if src.Metadata != nil {
		copied.Metadata = make(map[string]any, len(src.Metadata))
		for k, v := range src.Metadata {
			copied.Metadata[k] = v
		}
	}
	if src.Summary != nil {
		summary := *src.Summary
		copied.Summary = &summary
	}
	if len(src.Documents) > 0 {
		copied.Documents = make([]*SearchDocument, len(src.Documents))
		for i, doc := range src.Documents {
			copied.Documents[i] = cloneSearchDocument(doc)
		}
	}
	return &copied
}

func cloneSearchDocument(src *SearchDocument) *SearchDocument {
	if src == nil {
		return nil
	}

	copied := *src
	copied.Categories = cloneStrings(src.Categories)
	if src.Description != nil {
		description := *src.Description
		copied.Description = &description
	}
	if src.DeletedAt != nil {
		deleted := *src.DeletedAt
		copied.DeletedAt = &deleted
	}
	return &copied
}

func cloneStrings(src []string) []string {
	if src == nil {
		return nil
	}
	out := make([]string, len(src))
	copy(out, src)
	return out
}
