package catalog

import (
	"context"
	"fmt"
	"strings"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/uptrace/bun"
)

type BunReleaseRepository struct {
	repo repository.Repository[*Release]
}

func NewBunReleaseRepository(db *bun.DB) *BunReleaseRepository {
	return NewBunReleaseRepositoryWithCache(db, nil, nil)
}

// NewBunReleaseRepositoryWithCache constructs a ReleaseRepository with optional caching.
func NewBunReleaseRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunReleaseRepository {
	base := NewReleaseRepository(db)
	wrapped := wrapWithCache(base, cacheService, keySerializer)
	return &BunReleaseRepository{repo: wrapped}
}

func (r *BunReleaseRepository) Upsert(ctx context.Context, record *Release) (*Release, error) {
	existing, err := r.repo.GetByID(ctx, record.ID.String())
	if err != nil {
		if !goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
			return nil, mapRepositoryError(err, "release", record.ID.String())
		}
		created, err := r.repo.Create(ctx, record)
		if err != nil {
			return nil, mapRepositoryError(err, "release", record.Version)
		}
		return created, nil
	}

	record.CreatedAt = existing.CreatedAt
	updated, err := r.repo.Update(ctx, record,
		repository.UpdateByID(record.ID.String()),
		repository.UpdateColumns(
			"version",
			"title",
			"release_date",
			"path",
			"slug",
			"summary",
			"checksum",
			"sections",
			"connectors",
			"metadata",
			"section_count",
			"connector_count",
			"updated_at",
		),
	)
	if err != nil {
		return nil, mapRepositoryError(err, "release", record.Version)
	}
	return updated, nil
}

func (r *BunReleaseRepository) GetByVersion(ctx context.Context, version string) (*Release, error) {
	result, err := r.repo.GetByIdentifier(ctx, version)
	if err != nil {
		return nil, mapRepositoryError(err, "release", version)
	}
	return result, nil
}

func (r *BunReleaseRepository) List(ctx context.Context) ([]*Release, error) {
	records, _, err := r.repo.List(ctx)
	return records, err
}

type BunSearchDocumentRepository struct {
	repo repository.Repository[*SearchDocument]
}

func NewBunSearchDocumentRepository(db *bun.DB) *BunSearchDocumentRepository {
	return NewBunSearchDocumentRepositoryWithCache(db, nil, nil)
}

// NewBunSearchDocumentRepositoryWithCache constructs a SearchDocumentRepository with optional caching.
func NewBunSearchDocumentRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunSearchDocumentRepository {
	base := NewSearchDocumentRepository(db)
	wrapped := wrapWithCache(base, cacheService, keySerializer)
	return &BunSearchDocumentRepository{repo: wrapped}
}

func (r *BunSearchDocumentRepository) Upsert(ctx context.Context, record *SearchDocument) (*SearchDocument, error) {
	existing, err := r.repo.GetByID(ctx, record.ID.String())
	if err != nil {
		if !goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
			return nil, mapRepositoryError(err, "search_document", record.ID.String())
		}
		created, err := r.repo.Create(ctx, record)
		if err != nil {
			return nil, mapRepositoryError(err, "search_document", record.ObjectID)
		}
		return created, nil
	}

	record.CreatedAt = existing.CreatedAt
	updated, err := r.repo.Update(ctx, record,
		repository.UpdateByID(record.ID.String()),
		repository.UpdateColumns(
			"index_name",
			"object_id",
			"title",
			"description",
			"categories",
			"content",
			"version",
			"path",
			"truncated",
			"deleted_at",
			"updated_at",
		),
	)
	if err != nil {
		return nil, mapRepositoryError(err, "search_document", record.ObjectID)
	}
	return updated, nil
}

func (r *BunSearchDocumentRepository) GetByObjectID(ctx context.Context, index, objectID string) (*SearchDocument, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.index_name = ?", index).
				Where("?TableAlias.object_id = ?", objectID).
				Where("?TableAlias.deleted_at IS NULL")
		}),
		repository.SelectPaginate(1, 0),
	)
	if err != nil {
		return nil, mapRepositoryError(err, "search_document", objectID)
	}
	if len(records) == 0 {
		return nil, &NotFoundError{Resource: "search_document", Key: index + "/" + objectID}
	}
	return records[0], nil
}

func (r *BunSearchDocumentRepository) ListByIndex(ctx context.Context, index string) ([]*SearchDocument, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.index_name = ?", index).
				Where("?TableAlias.deleted_at IS NULL").
				OrderExpr("?TableAlias.object_id ASC")
		}),
	)
	if err != nil {
		return nil, mapRepositoryError(err, "search_document", index)
	}
	return records, nil
}

func (r *BunSearchDocumentRepository) Search(ctx context.Context, index, query string, limit int) ([]*SearchDocument, error) {
	pattern := "%" + strings.ToLower(strings.TrimSpace(query)) + "%"
	filter := repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("?TableAlias.index_name = ?", index).
			Where("?TableAlias.deleted_at IS NULL").
			Where("(LOWER(?TableAlias.title) LIKE ? OR LOWER(?TableAlias.content) LIKE ?)", pattern, pattern).
			OrderExpr("?TableAlias.object_id ASC")
	})

	var (
		records []*SearchDocument
		err     error
	)
	if limit > 0 {
		records, _, err = r.repo.List(ctx, filter, repository.SelectPaginate(limit, 0))
	} else {
		records, _, err = r.repo.List(ctx, filter)
	}
	if err != nil {
		return nil, mapRepositoryError(err, "search_document", query)
	}
	return records, nil
}

func mapRepositoryError(err error, resource, key string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &NotFoundError{
			Resource: resource,
			Key:      key,
		}
	}
	return fmt.Errorf("%s repository error: %w", resource, err)
}

func wrapWithCache[T any](base repository.Repository[T], cacheService cache.CacheService, keySerializer cache.KeySerializer) repository.Repository[T] {
	if cacheService == nil || keySerializer == nil {
		return base
	}
	return repositorycache.New(base, cacheService, keySerializer)
}
