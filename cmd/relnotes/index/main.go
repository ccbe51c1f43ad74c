package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/goliatone/go-relnotes/catalog"
	"github.com/goliatone/go-relnotes/cmd/relnotes/internal/bootstrap"
)

var (
	moduleBuilder = bootstrap.BuildModule
	dbOpener      = bootstrap.OpenDatabase
)

func main() {
	if err := runIndex(os.Args[1:]); err != nil {
		log.Fatalf("relnotes index: %v", err)
	}
}

func runIndex(args []string) error {
	fs := flag.NewFlagSet("relnotes-index", flag.ExitOnError)
	version := fs.String("version", "", "Release version to index (required)")
	contentDir := fs.String("content-dir", "content", "Path to the markdown content root")
	pattern := fs.String("pattern", "*.md", "Glob pattern applied when discovering markdown files")
	baseIndex := fs.String("base-index", "docs", "Base search index name; the version is appended")
	dsn := fs.String("dsn", "file:relnotes.db?cache=shared", "Catalog store DSN; sqlite by default, postgres:// for postgres")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if strings.TrimSpace(*version) == "" {
		return fmt.Errorf("-version is required")
	}

	db, err := dbOpener(*dsn)
	if err != nil {
		return fmt.Errorf("open catalog store: %w", err)
	}
	defer db.Close()

	ctx := context.Background()
	if err := bootstrap.ApplyMigrations(ctx, db); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	module, err := moduleBuilder(bootstrap.Options{
		ContentDir: *contentDir,
		Pattern:    *pattern,
		Recursive:  true,
		BaseIndex:  *baseIndex,
		BunDB:      db,
	})
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}
	if module == nil || module.Catalog == nil {
		return fmt.Errorf("catalog service not configured; ensure Features.Catalog is enabled")
	}

	result, err := module.Catalog.Index(ctx, catalog.IndexRequest{Version: *version})
	if err != nil {
		return fmt.Errorf("index %s: %w", *version, err)
	}

	for _, failure := range result.Failures {
		fmt.Fprintf(os.Stderr, "%s: %s\n", failure.Path, failure.Message)
	}
	fmt.Fprintf(os.Stdout, "indexed %d pages into %s (skipped %d, truncated %d)\n",
		result.Indexed, result.IndexName, result.Skipped, result.Truncated)

	if len(result.Failures) > 0 {
		return fmt.Errorf("%d pages failed to index", len(result.Failures))
	}
	return nil
}
