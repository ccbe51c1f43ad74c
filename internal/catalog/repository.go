package catalog

import (
	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

func NewReleaseRepository(db *bun.DB) repository.Repository[*Release] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Release]{
		NewRecord: func() *Release { return &Release{} },
		GetID: func(r *Release) uuid.UUID {
			return r.ID
		},
		SetID: func(r *Release, id uuid.UUID) {
			r.ID = id
		},
		GetIdentifier: func() string {
			return "version"
		},
		GetIdentifierValue: func(r *Release) string {
			return r.Version
		},
	})
}

func NewSearchDocumentRepository(db *bun.DB) repository.Repository[*SearchDocument] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*SearchDocument]{
		NewRecord: func() *SearchDocument { return &SearchDocument{} },
		GetID: func(d *SearchDocument) uuid.UUID {
			return d.ID
		},
		SetID: func(d *SearchDocument, id uuid.UUID) {
			d.ID = id
		},
		GetIdentifier: func() string {
			return "object_id"
		},
		GetIdentifierValue: func(d *SearchDocument) string {
			return d.ObjectID
		},
	})
}
