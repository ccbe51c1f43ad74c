package relnotes

import (
	"embed"
)

//go:embed data/sql/migrations/*.sql
var migrationsFS embed.FS

// GetMigrationsFS returns the embedded catalog schema migrations. Hosts apply
// them in filename order before the first Index run against a fresh database.
func GetMigrationsFS() embed.FS {
	return migrationsFS
}
