package catalog

import publiccatalog "github.com/goliatone/go-relnotes/catalog"

type (
	Release                  = publiccatalog.Release
	SearchDocument           = publiccatalog.SearchDocument
	IndexRequest             = publiccatalog.IndexRequest
	IndexResult              = publiccatalog.IndexResult
	IndexFailure             = publiccatalog.IndexFailure
	SearchRequest            = publiccatalog.SearchRequest
	Service                  = publiccatalog.Service
	ReleaseRepository        = publiccatalog.ReleaseRepository
	SearchDocumentRepository = publiccatalog.SearchDocumentRepository
	NotFoundError            = publiccatalog.NotFoundError
)

var (
	ErrVersionRequired    = publiccatalog.ErrVersionRequired
	ErrContentDirRequired = publiccatalog.ErrContentDirRequired
	ErrIndexNameRequired  = publiccatalog.ErrIndexNameRequired
	ErrQueryRequired      = publiccatalog.ErrQueryRequired
	ErrReleaseNotFound    = publiccatalog.ErrReleaseNotFound
	ErrDocumentNotFound   = publiccatalog.ErrDocumentNotFound
	ErrCatalogDisabled    = publiccatalog.ErrCatalogDisabled
)
