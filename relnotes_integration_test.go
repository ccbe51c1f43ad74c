package relnotes_test

import (
	"context"
	"errors"
	"io/fs"
	"path"
	"testing"
	"testing/fstest"
	"time"

	relnotes "github.com/goliatone/go-relnotes"
	"github.com/goliatone/go-relnotes/catalog"
	"github.com/goliatone/go-relnotes/internal/di"
	"github.com/goliatone/go-relnotes/internal/generator"
	"github.com/goliatone/go-relnotes/lint"
	"github.com/goliatone/go-relnotes/pkg/testsupport"
	"github.com/uptrace/bun"
)

const trinoPage = `---
title: Trino
slug: /connectors/trino
description: Query Trino clusters.
---

# Trino

Connect Trino clusters and query them alongside warehouse sources.
`

const menuPage = `---
title: Menu
---
`

func TestModuleIndexesReleaseTreeWithBunStorage(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	bunDB, err := testsupport.NewBunMemoryDB()
	if err != nil {
		t.Fatalf("new bun db: %v", err)
	}
	t.Cleanup(func() {
		_ = bunDB.Close()
	})
	applyMigrations(t, bunDB)

	fullTree := fstest.MapFS{
		"content/v0.5.0/releases/0.5.0.md":   &fstest.MapFile{Data: testsupport.ReleaseNote("0.5.0")},
		"content/v0.5.0/connectors/trino.md": &fstest.MapFile{Data: []byte(trinoPage)},
		"content/v0.5.0/menu.md":             &fstest.MapFile{Data: []byte(menuPage)},
	}

	first := time.Date(2021, time.October, 20, 12, 0, 0, 0, time.UTC)
	current := first
	clock := func() time.Time { return current }

	cfg := relnotes.DefaultConfig()
	cfg.Cache.Enabled = false

	module, err := relnotes.New(cfg,
		di.WithBunDB(bunDB),
		di.WithContentFS(fullTree),
		di.WithClock(clock),
	)
	if err != nil {
		t.Fatalf("new module: %v", err)
	}

	result, err := module.Catalog().Index(ctx, catalog.IndexRequest{Version: "v0.5.0"})
	if err != nil {
		t.Fatalf("index: %v", err)
	}
	if result.IndexName != "docs-0.5.0" {
		t.Fatalf("unexpected index name %q", result.IndexName)
	}
	if result.Indexed != 2 {
		t.Fatalf("expected 2 indexed pages, got %d (failures %v)", result.Indexed, result.Failures)
	}
	if len(result.Failures) != 0 {
		t.Fatalf("unexpected failures %v", result.Failures)
	}

	release, err := module.Catalog().Release(ctx, "v0.5.0")
	if err != nil {
		t.Fatalf("release: %v", err)
	}
	if release.Title != "0.5.0 Release" {
		t.Fatalf("unexpected title %q", release.Title)
	}
	if release.Date != "2021, October 19th" {
		t.Fatalf("unexpected date %q", release.Date)
	}
	if release.Slug != "/releases/0.5.0" {
		t.Fatalf("unexpected slug %q", release.Slug)
	}
	if release.Path != "content/v0.5.0/releases/0.5.0.md" {
		t.Fatalf("unexpected path %q", release.Path)
	}
	if !release.CreatedAt.Equal(first) {
		t.Fatalf("expected created_at %v, got %v", first, release.CreatedAt)
	}

	docs, err := module.Catalog().Search(ctx, catalog.SearchRequest{Index: result.IndexName, Query: "Trino"})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(docs))
	}
	if docs[0].ObjectID != "/connectors/trino" {
		t.Fatalf("unexpected first object id %q", docs[0].ObjectID)
	}
	if docs[0].Version != "0.5.0" {
		t.Fatalf("unexpected document version %q", docs[0].Version)
	}
	if len(docs[0].Categories) != 2 || docs[0].Categories[0] != "connectors" {
		t.Fatalf("unexpected categories %v", docs[0].Categories)
	}

	releases, err := module.Catalog().Releases(ctx)
	if err != nil {
		t.Fatalf("releases: %v", err)
	}
	if len(releases) != 1 {
		t.Fatalf("expected 1 release, got %d", len(releases))
	}

	// Re-run over a tree without the connector page: same database, later
	// clock. The release keeps its original created_at and the orphaned
	// document drops out of search.
	current = first.Add(time.Hour)
	prunedTree := fstest.MapFS{
		"content/v0.5.0/releases/0.5.0.md": &fstest.MapFile{Data: testsupport.ReleaseNote("0.5.0")},
	}
	rerun, err := relnotes.New(cfg,
		di.WithBunDB(bunDB),
		di.WithContentFS(prunedTree),
		di.WithClock(clock),
	)
	if err != nil {
		t.Fatalf("new module for rerun: %v", err)
	}

	second, err := rerun.Catalog().Index(ctx, catalog.IndexRequest{Version: "0.5.0"})
	if err != nil {
		t.Fatalf("re-index: %v", err)
	}
	if second.Indexed != 1 {
		t.Fatalf("expected 1 indexed page on rerun, got %d (failures %v)", second.Indexed, second.Failures)
	}

	releaseAfter, err := rerun.Catalog().Release(ctx, "0.5.0")
	if err != nil {
		t.Fatalf("release after rerun: %v", err)
	}
	if !releaseAfter.CreatedAt.Equal(first) {
		t.Fatalf("expected created_at preserved at %v, got %v", first, releaseAfter.CreatedAt)
	}
	if !releaseAfter.UpdatedAt.Equal(first.Add(time.Hour)) {
		t.Fatalf("expected updated_at %v, got %v", first.Add(time.Hour), releaseAfter.UpdatedAt)
	}

	docsAfter, err := rerun.Catalog().Search(ctx, catalog.SearchRequest{Index: second.IndexName, Query: "Trino"})
	if err != nil {
		t.Fatalf("search after rerun: %v", err)
	}
	if len(docsAfter) != 1 {
		t.Fatalf("expected stale document swept, got %d documents", len(docsAfter))
	}
	if docsAfter[0].ObjectID != "/releases/0.5.0" {
		t.Fatalf("unexpected surviving document %q", docsAfter[0].ObjectID)
	}
}

func TestModuleLintAndScaffoldRoundTrip(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	fsys := fstest.MapFS{
		"content/v0.5.0/releases/0.5.0.md": &fstest.MapFile{Data: testsupport.ReleaseNote("0.5.0")},
	}

	module, err := relnotes.New(relnotes.DefaultConfig(), di.WithContentFS(fsys))
	if err != nil {
		t.Fatalf("new module: %v", err)
	}

	reports, err := module.Lint().LintTree(ctx, "content/v0.5.0")
	if err != nil {
		t.Fatalf("lint tree: %v", err)
	}
	if len(reports) != 1 {
		t.Fatalf("expected 1 report, got %d", len(reports))
	}
	if err := reports[0].Err(); err != nil {
		t.Fatalf("fixture should lint clean: %v", err)
	}

	rendered, err := module.Generator().Render(ctx, generator.Input{
		Version:    "0.6.0",
		Date:       "2022, March 1st",
		Highlights: []string{"Faster indexing"},
		Sections: []generator.SectionInput{
			{Heading: "Connectors", Items: []string{"Trino"}},
		},
	})
	if err != nil {
		t.Fatalf("render scaffold: %v", err)
	}

	report, err := module.Lint().LintBytes(ctx, "releases/0.6.0.md", rendered)
	if err != nil {
		t.Fatalf("lint scaffold: %v", err)
	}
	if err := report.Err(); err != nil {
		t.Fatalf("scaffold should lint clean: %v", err)
	}

	note, err := module.Notes().ParseBytes(ctx, "releases/0.6.0.md", rendered)
	if err != nil {
		t.Fatalf("parse scaffold: %v", err)
	}
	if note.Version != "0.6.0" {
		t.Fatalf("unexpected version %q", note.Version)
	}
	if note.Date != "2022, March 1st" {
		t.Fatalf("unexpected date %q", note.Date)
	}
	if len(note.Connectors) != 1 || note.Connectors[0] != "Trino" {
		t.Fatalf("unexpected connectors %v", note.Connectors)
	}
}

func TestModuleFeatureGatesFailClosed(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	cfg := relnotes.DefaultConfig()
	cfg.Features.Lint = false
	cfg.Features.Scaffold = false
	cfg.Features.Catalog = false
	cfg.Cache.Enabled = false

	module, err := relnotes.New(cfg)
	if err != nil {
		t.Fatalf("new module: %v", err)
	}

	if module.Lint() == nil {
		t.Fatal("expected lint service instance")
	}
	if _, err := module.Lint().LintFile(ctx, "releases/0.5.0.md"); !errors.Is(err, lint.ErrLintDisabled) {
		t.Fatalf("expected ErrLintDisabled, got %v", err)
	}
	if _, err := module.Generator().Render(ctx, generator.Input{Version: "0.5.0"}); !errors.Is(err, generator.ErrServiceDisabled) {
		t.Fatalf("expected ErrServiceDisabled, got %v", err)
	}
	if _, err := module.Catalog().Releases(ctx); !errors.Is(err, catalog.ErrCatalogDisabled) {
		t.Fatalf("expected ErrCatalogDisabled, got %v", err)
	}
	if module.Notes() == nil {
		t.Fatal("expected notes parser even with features disabled")
	}
}

func applyMigrations(t *testing.T, db *bun.DB) {
	t.Helper()
	ctx := context.Background()

	migrationsFS := relnotes.GetMigrationsFS()
	entries, err := fs.ReadDir(migrationsFS, "data/sql/migrations")
	if err != nil {
		t.Fatalf("read migrations: %v", err)
	}
	for _, entry := range entries {
		if entry.IsDir() || path.Ext(entry.Name()) != ".sql" {
			continue
		}
		script, err := fs.ReadFile(migrationsFS, path.Join("data/sql/migrations", entry.Name()))
		if err != nil {
			t.Fatalf("read migration %s: %v", entry.Name(), err)
		}
		if _, err := db.ExecContext(ctx, string(script)); err != nil {
			t.Fatalf("apply migration %s: %v", entry.Name(), err)
		}
	}
}
