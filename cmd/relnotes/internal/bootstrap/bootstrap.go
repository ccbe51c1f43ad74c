package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"path"
	"strings"

	relnotes "github.com/goliatone/go-relnotes"
	"github.com/goliatone/go-relnotes/catalog"
	"github.com/goliatone/go-relnotes/internal/di"
	"github.com/goliatone/go-relnotes/internal/generator"
	"github.com/goliatone/go-relnotes/lint"
	"github.com/goliatone/go-relnotes/notes"
	"github.com/goliatone/go-relnotes/pkg/interfaces"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// Options captures configuration shared by the relnotes CLI commands.
type Options struct {
	ContentDir     string
	Pattern        string
	Recursive      bool
	DefaultVersion string
	OutputDir      string
	NoteType       string
	BaseIndex      string
	BunDB          *bun.DB
	LoggerProvider interfaces.LoggerProvider
}

// Module groups the runtime facade with the services CLI commands call into.
type Module struct {
	Module    *relnotes.Module
	Lint      lint.Service
	Notes     notes.Service
	Generator relnotes.GeneratorService
	Catalog   catalog.Service
}

// BuildModule constructs a relnotes module configured for CLI operations.
func BuildModule(opts Options) (*Module, error) {
	cfg := relnotes.DefaultConfig()
	cfg.Markdown.ContentDir = strings.TrimSpace(opts.ContentDir)
	if cfg.Markdown.ContentDir == "" {
		cfg.Markdown.ContentDir = "content"
	}
	if trimmed := strings.TrimSpace(opts.Pattern); trimmed != "" {
		cfg.Markdown.Pattern = trimmed
	}
	cfg.Markdown.Recursive = opts.Recursive
	if trimmed := strings.TrimSpace(opts.DefaultVersion); trimmed != "" {
		cfg.Markdown.DefaultVersion = trimmed
	}
	if trimmed := strings.TrimSpace(opts.OutputDir); trimmed != "" {
		cfg.Generator.OutputDir = trimmed
	}
	if trimmed := strings.TrimSpace(opts.NoteType); trimmed != "" {
		cfg.Generator.NoteType = trimmed
	}
	if trimmed := strings.TrimSpace(opts.BaseIndex); trimmed != "" {
		cfg.Catalog.BaseIndex = trimmed
	}

	diOpts := []di.Option{}
	if opts.LoggerProvider != nil {
		diOpts = append(diOpts, di.WithLoggerProvider(opts.LoggerProvider))
	}
	if opts.BunDB != nil {
		diOpts = append(diOpts, di.WithBunDB(opts.BunDB))
	}

	module, err := relnotes.New(cfg, diOpts...)
	if err != nil {
		return nil, fmt.Errorf("initialise relnotes module: %w", err)
	}

	return &Module{
		Module:    module,
		Lint:      module.Lint(),
		Notes:     module.Notes(),
		Generator: module.Generator(),
		Catalog:   module.Catalog(),
	}, nil
}

// OpenDatabase opens a bun database for the given DSN, picking the driver
// from the DSN scheme. postgres:// and postgresql:// DSNs get a postgres
// connection; everything else is treated as a sqlite DSN.
func OpenDatabase(dsn string) (*bun.DB, error) {
	trimmed := strings.TrimSpace(dsn)
	if strings.HasPrefix(trimmed, "postgres://") || strings.HasPrefix(trimmed, "postgresql://") {
		return OpenPostgres(trimmed)
	}
	return OpenSQLite(trimmed)
}

// OpenPostgres opens a postgres-backed bun database suitable for CLI runs.
func OpenPostgres(dsn string) (*bun.DB, error) {
	trimmed := strings.TrimSpace(dsn)
	if trimmed == "" {
		return nil, fmt.Errorf("postgres dsn is required")
	}
	sqldb, err := sql.Open("postgres", trimmed)
	if err != nil {
		return nil, fmt.Errorf("open postgres database: %w", err)
	}
	return bun.NewDB(sqldb, pgdialect.New()), nil
}

// OpenSQLite opens a sqlite-backed bun database suitable for CLI runs.
func OpenSQLite(dsn string) (*bun.DB, error) {
	trimmed := strings.TrimSpace(dsn)
	if trimmed == "" {
		return nil, fmt.Errorf("sqlite dsn is required")
	}
	sqldb, err := sql.Open("sqlite3", trimmed)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	db := bun.NewDB(sqldb, sqlitedialect.New())
	db.SetMaxOpenConns(1)
	return db, nil
}

// ApplyMigrations executes the embedded schema migrations against db in
// filename order.
func ApplyMigrations(ctx context.Context, db *bun.DB) error {
	migrationsFS := relnotes.GetMigrationsFS()
	entries, err := fs.ReadDir(migrationsFS, "data/sql/migrations")
	if err != nil {
		return fmt.Errorf("read embedded migrations: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}
		name := path.Join("data/sql/migrations", entry.Name())
		script, err := fs.ReadFile(migrationsFS, name)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", entry.Name(), err)
		}
		if _, err := db.ExecContext(ctx, string(script)); err != nil {
			return fmt.Errorf("apply migration %s: %w", entry.Name(), err)
		}
	}
	return nil
}

// SplitList splits a separated list into trimmed, non-empty entries.
func SplitList(value, sep string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parts := strings.Split(value, sep)
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// ParseSection parses a "Heading=item;item" flag value into a section input.
func ParseSection(value string) (generator.SectionInput, error) {
	heading, rest, ok := strings.Cut(value, "=")
	heading = strings.TrimSpace(heading)
	if !ok || heading == "" {
		return generator.SectionInput{}, fmt.Errorf("section %q must look like \"Heading=item;item\"", value)
	}
	items := SplitList(rest, ";")
	if len(items) == 0 {
		return generator.SectionInput{}, fmt.Errorf("section %q needs at least one item", heading)
	}
	return generator.SectionInput{Heading: heading, Items: items}, nil
}

// ParseLink parses a "Text=URL" flag value into a note link.
func ParseLink(value string) (notes.Link, error) {
	text, url, ok := strings.Cut(value, "=")
	text = strings.TrimSpace(text)
	url = strings.TrimSpace(url)
	if !ok || text == "" || url == "" {
		return notes.Link{}, fmt.Errorf("link %q must look like \"Text=URL\"", value)
	}
	return notes.Link{Text: text, URL: url}, nil
}
