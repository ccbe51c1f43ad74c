package markdown

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-relnotes/pkg/interfaces"
)

func testSiteFS() fstest.MapFS {
	return fstest.MapFS{
		"content/v0.5.0/releases/0.5.0.md": &fstest.MapFile{
			Data: []byte("---\ntitle: 0.5.0 Release\nslug: /releases/0-5-0\n---\n\n# 0.5.0 Release\n\n## Connectors\n- Trino\n"),
		},
		"content/v0.5.0/connectors/trino.md": &fstest.MapFile{
			Data: []byte("---\ntitle: Trino\ncollate: true\n---\n\n# Trino\n"),
		},
		"content/v0.4.0/releases/0.4.0.md": &fstest.MapFile{
			Data: []byte("# 0.4.0 Release\n"),
		},
		"content/v0.5.0/menu.md": &fstest.MapFile{
			Data: []byte("menu stub\n"),
		},
		"content/v0.5.0/notes.txt": &fstest.MapFile{
			Data: []byte("not markdown\n"),
		},
		"content/v0.5.0/compat/v0.4.0/trino.md": &fstest.MapFile{
			Data: []byte("# Trino compatibility\n"),
		},
	}
}

func TestLoaderLoadDetectsVersionAndChecksum(t *testing.T) {
	loader := NewLoader(testSiteFS(), LoaderConfig{Recursive: true})

	doc, err := loader.Load(context.Background(), "content/v0.5.0/releases/0.5.0.md", interfaces.LoadOptions{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if doc.Version != "0.5.0" {
		t.Fatalf("expected version 0.5.0, got %q", doc.Version)
	}
	if doc.FrontMatter.Title != "0.5.0 Release" {
		t.Fatalf("expected frontmatter title, got %q", doc.FrontMatter.Title)
	}
	if doc.FrontMatter.Slug != "/releases/0-5-0" {
		t.Fatalf("expected frontmatter slug, got %q", doc.FrontMatter.Slug)
	}
	if len(doc.Checksum) != 32 {
		t.Fatalf("expected sha256 checksum, got %d bytes", len(doc.Checksum))
	}
	if len(doc.Body) == 0 || len(doc.Source) <= len(doc.Body) {
		t.Fatalf("expected stripped body shorter than source")
	}
}

func TestLoaderLoadWithoutFrontmatter(t *testing.T) {
	loader := NewLoader(testSiteFS(), LoaderConfig{})

	doc, err := loader.Load(context.Background(), "content/v0.4.0/releases/0.4.0.md", interfaces.LoadOptions{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if doc.FrontMatter.Raw != nil {
		t.Fatalf("expected nil raw frontmatter, got %#v", doc.FrontMatter.Raw)
	}
	if doc.Version != "0.4.0" {
		t.Fatalf("expected version 0.4.0, got %q", doc.Version)
	}
}

func TestLoaderDiscoverSortsAndFilters(t *testing.T) {
	loader := NewLoader(testSiteFS(), LoaderConfig{Recursive: true})

	paths, err := loader.Discover(context.Background(), "content", interfaces.LoadOptions{})
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}

	want := []string{
		"content/v0.4.0/releases/0.4.0.md",
		"content/v0.5.0/compat/v0.4.0/trino.md",
		"content/v0.5.0/connectors/trino.md",
		"content/v0.5.0/menu.md",
		"content/v0.5.0/releases/0.5.0.md",
	}
	if len(paths) != len(want) {
		t.Fatalf("expected %d paths, got %d: %v", len(want), len(paths), paths)
	}
	for i, path := range want {
		if paths[i] != path {
			t.Fatalf("path %d: expected %s, got %s", i, path, paths[i])
		}
	}
}

func TestLoaderLoadDirectoryNonRecursiveOverride(t *testing.T) {
	loader := NewLoader(testSiteFS(), LoaderConfig{Recursive: true})

	no := false
	docs, err := loader.LoadDirectory(context.Background(), "content/v0.5.0", interfaces.LoadOptions{Recursive: &no})
	if err != nil {
		t.Fatalf("LoadDirectory: %v", err)
	}

	if len(docs) != 1 {
		t.Fatalf("expected 1 document, got %d", len(docs))
	}
	if docs[0].FilePath != "content/v0.5.0/menu.md" {
		t.Fatalf("expected menu.md, got %s", docs[0].FilePath)
	}
}

func TestLoaderVersionPatternOverride(t *testing.T) {
	loader := NewLoader(testSiteFS(), LoaderConfig{})

	// Built-in detection would pick v0.5.0; the pattern pins the later segment.
	doc, err := loader.Load(context.Background(), "content/v0.5.0/compat/v0.4.0/trino.md", interfaces.LoadOptions{
		VersionPattern: "content/v0.5.0/compat/*/*.md",
	})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if doc.Version != "0.4.0" {
		t.Fatalf("expected version from pattern, got %q", doc.Version)
	}
}

func TestLoaderLoadMissingFile(t *testing.T) {
	loader := NewLoader(testSiteFS(), LoaderConfig{})

	if _, err := loader.Load(context.Background(), "content/v9.9.9/missing.md", interfaces.LoadOptions{}); err == nil {
		t.Fatal("expected error for missing file")
	}
}
