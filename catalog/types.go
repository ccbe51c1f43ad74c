package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Release is the catalog record for a shipped release note. Later versions
// supersede earlier ones without deleting them, so the table doubles as the
// release history.
type Release struct {
	bun.BaseModel `bun:"table:releases,alias:r"`

	ID             uuid.UUID      `bun:",pk,type:uuid"              json:"id"`
	Version        string         `bun:"version,notnull,unique"     json:"version"`
	Title          string         `bun:"title,notnull"              json:"title"`
	Date           string         `bun:"release_date"               json:"date,omitempty"`
	Path           string         `bun:"path,notnull"               json:"path"`
	Slug           string         `bun:"slug,notnull"               json:"slug"`
	Summary        *string        `bun:"summary"                    json:"summary,omitempty"`
	Checksum       string         `bun:"checksum,notnull"           json:"checksum"`
	Sections       []string       `bun:"sections,type:jsonb"        json:"sections,omitempty"`
	Connectors     []string       `bun:"connectors,type:jsonb"      json:"connectors,omitempty"`
	Metadata       map[string]any `bun:"metadata,type:jsonb"        json:"metadata,omitempty"`
	SectionCount   int            `bun:"section_count,notnull,default:0"   json:"section_count"`
	ConnectorCount int            `bun:"connector_count,notnull,default:0" json:"connector_count"`
	CreatedAt      time.Time      `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt      time.Time      `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`

	Documents []*SearchDocument `bun:"rel:has-many,join:version=version" json:"documents,omitempty"`
}

// SearchDocument is one indexed documentation page. The shape mirrors the
// records the docs site uploads to its search backend: an object id derived
// from the page slug, the page title and description, category segments, and
// the flattened page text.
type SearchDocument struct {
	bun.BaseModel `bun:"table:search_documents,alias:sd"`

	ID          uuid.UUID  `bun:",pk,type:uuid"           json:"id"`
	IndexName   string     `bun:"index_name,notnull"      json:"index_name"`
	ObjectID    string     `bun:"object_id,notnull"       json:"object_id"`
	Title       string     `bun:"title,notnull"           json:"title"`
	Description *string    `bun:"description"             json:"description,omitempty"`
	Categories  []string   `bun:"categories,type:jsonb"   json:"categories,omitempty"`
	Content     string     `bun:"content,notnull"         json:"content"`
	Version     string     `bun:"version,notnull"         json:"version"`
	Path        string     `bun:"path,notnull"            json:"path"`
	Truncated   bool       `bun:"truncated,notnull,default:false" json:"truncated"`
	DeletedAt   *time.Time `bun:"deleted_at,nullzero"     json:"deleted_at,omitempty"`
	CreatedAt   time.Time  `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt   time.Time  `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// IndexRequest describes a catalog build over one documentation version.
type IndexRequest struct {
	Version    string
	ContentDir string
	BaseIndex  string
}

// IndexResult reports the outcome of an indexing run. Failures are collected
// per file so a single bad page does not abort the batch.
type IndexResult struct {
	IndexName string         `json:"index_name"`
	Version   string         `json:"version"`
	Indexed   int            `json:"indexed"`
	Skipped   int            `json:"skipped"`
	Truncated int            `json:"truncated"`
	Failures  []IndexFailure `json:"failures,omitempty"`
}

// IndexFailure pairs a file path with the error that kept it out of the index.
type IndexFailure struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// SearchRequest queries indexed documents by substring match over title and
// content.
type SearchRequest struct {
	Index string
	Query string
	Limit int
}

// Service exposes the release catalog: indexing documentation trees and
// querying the resulting records.
type Service interface {
	Index(ctx context.Context, req IndexRequest) (*IndexResult, error)
	Releases(ctx context.Context) ([]*Release, error)
	Release(ctx context.Context, version string) (*Release, error)
	Search(ctx context.Context, req SearchRequest) ([]*SearchDocument, error)
	ReleaseURL(version, slug string) (string, error)
}

// ReleaseRepository persists catalog release records.
type ReleaseRepository interface {
	Upsert(ctx context.Context, record *Release) (*Release, error)
	GetByVersion(ctx context.Context, version string) (*Release, error)
	List(ctx context.Context) ([]*Release, error)
}

// SearchDocumentRepository persists indexed documentation pages.
type SearchDocumentRepository interface {
	Upsert(ctx context.Context, record *SearchDocument) (*SearchDocument, error)
	GetByObjectID(ctx context.Context, index, objectID string) (*SearchDocument, error)
	ListByIndex(ctx context.Context, index string) ([]*SearchDocument, error)
	Search(ctx context.Context, index, query string, limit int) ([]*SearchDocument, error)
}
