package markdown

import (
	"context"
	"crypto/sha256"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/goliatone/go-relnotes/pkg/interfaces"
)

// LoaderConfig configures how markdown files are discovered within a base directory.
type LoaderConfig struct {
	// BasePath is the root directory where markdown documents live.
	BasePath string
	// DefaultVersion is used when no version can be inferred from the file path.
	DefaultVersion string
	// VersionPattern overrides the built-in path segment detection with a glob
	// whose first wildcard segment names the version directory.
	VersionPattern string
	// Pattern limits discovered files to those matching the supplied glob (defaults to "*.md").
	Pattern string
	// Recursive controls whether sub-directories are traversed.
	Recursive bool
}

// Loader turns filesystem paths into markdown documents with metadata.
type Loader struct {
	fs             fs.FS
	basePath       string
	defaultVersion string
	versionPattern string
	pattern        string
	recursive      bool
}

var _ interfaces.MarkdownLoader = (*Loader)(nil)

// NewLoader constructs a Loader using the provided filesystem and configuration.
func NewLoader(filesystem fs.FS, cfg LoaderConfig) *Loader {
	pattern := cfg.Pattern
	if strings.TrimSpace(pattern) == "" {
		pattern = "*.md"
	}

	return &Loader{
		fs:             filesystem,
		basePath:       filepath.Clean(cfg.BasePath),
		defaultVersion: cfg.DefaultVersion,
		versionPattern: cfg.VersionPattern,
		pattern:        pattern,
		recursive:      cfg.Recursive,
	}
}

// Load reads and parses a single markdown document.
func (l *Loader) Load(ctx context.Context, path string, opts interfaces.LoadOptions) (*interfaces.Document, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	rel, err := l.makeRelative(path)
	if err != nil {
		return nil, err
	}
	rel = filepath.ToSlash(rel)

	data, err := fs.ReadFile(l.fs, rel)
	if err != nil {
		return nil, fmt.Errorf("markdown loader read %s: %w", rel, err)
	}

	info, err := fs.Stat(l.fs, rel)
	if err != nil {
		return nil, fmt.Errorf("markdown loader stat %s: %w", rel, err)
	}

	doc, err := BuildDocument(rel, l.detectVersion(rel, opts.VersionPattern), data, info.ModTime())
	if err != nil {
		return nil, err
	}
	sum := sha256.Sum256(data)
	doc.Checksum = sum[:]

	return doc, nil
}

// LoadDirectory discovers markdown files under dir and returns parsed documents.
func (l *Loader) LoadDirectory(ctx context.Context, dir string, opts interfaces.LoadOptions) ([]*interfaces.Document, error) {
	paths, err := l.Discover(ctx, dir, opts)
	if err != nil {
		return nil, err
	}

	docs := make([]*interfaces.Document, 0, len(paths))
	for _, path := range paths {
		doc, err := l.Load(ctx, path, opts)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// Discover walks dir and returns the sorted relative paths Load would accept,
// without reading file bodies.
func (l *Loader) Discover(ctx context.Context, dir string, opts interfaces.LoadOptions) ([]string, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	root, err := l.makeRelative(dir)
	if err != nil {
		return nil, err
	}

	root = filepath.Clean(root)
	if root == "" {
		root = "."
	}

	var paths []string

	walkErr := fs.WalkDir(l.fs, root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}

		if d.IsDir() {
			if !l.shouldRecurse(root, path, opts.Recursive) {
				return fs.SkipDir
			}
			return nil
		}

		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		rel := filepath.ToSlash(path)
		if !l.matchesPattern(rel, opts.Pattern) {
			return nil
		}

		paths = append(paths, rel)
		return nil
	})

	if walkErr != nil {
		return nil, walkErr
	}

	sort.Strings(paths)
	return paths, nil
}

func (l *Loader) shouldRecurse(root, current string, override *bool) bool {
	recursive := l.recursive
	if override != nil {
		recursive = *override
	}
	if recursive {
		return true
	}
	// If recursion is disabled, only walk the root directory.
	cleanRoot := filepath.Clean(root)
	cleanCurrent := filepath.Clean(current)
	return cleanRoot == cleanCurrent
}

func (l *Loader) matchesPattern(path string, override string) bool {
	pattern := override
	if strings.TrimSpace(pattern) == "" {
		pattern = l.pattern
	}
	// Normalise to slash as fs.WalkDir returns slash-separated paths for DirFS.
	pattern = filepath.ToSlash(pattern)
	if strings.Contains(pattern, "**") {
		// Basic support for ** by stripping repeated separators.
		pattern = strings.ReplaceAll(pattern, "**/", "")
	}
	var target string
	if strings.Contains(pattern, "/") {
		target = path
	} else {
		target = filepath.Base(path)
	}
	match, err := filepath.Match(pattern, target)
	if err != nil {
		return false
	}
	return match
}

func (l *Loader) detectVersion(path string, overridePattern string) string {
	path = filepath.ToSlash(path)

	if version := matchVersionPattern(path, overridePattern); version != "" {
		return version
	}
	if version := matchVersionPattern(path, l.versionPattern); version != "" {
		return version
	}

	if version := DetectVersion(path); version != "" {
		return version
	}

	return l.defaultVersion
}

// matchVersionPattern applies a glob whose first wildcard segment names the
// version directory, e.g. "content/*/releases/*.md" lifts "v0.5.0" out of
// "content/v0.5.0/releases/0.5.0.md".
func matchVersionPattern(path, pattern string) string {
	pattern = strings.TrimSpace(filepath.ToSlash(pattern))
	if pattern == "" {
		return ""
	}

	match, err := filepath.Match(pattern, path)
	if err != nil || !match {
		return ""
	}

	patternSegments := strings.Split(pattern, "/")
	pathSegments := strings.Split(path, "/")
	if len(patternSegments) != len(pathSegments) {
		return ""
	}
	for i, segment := range patternSegments {
		if strings.ContainsAny(segment, "*?[") {
			return NormalizeVersion(pathSegments[i])
		}
	}
	return ""
}

func (l *Loader) makeRelative(path string) (string, error) {
	clean := filepath.Clean(path)
	if !filepath.IsAbs(clean) {
		return clean, nil
	}
	if l.basePath == "" {
		return "", fmt.Errorf("markdown loader: absolute path %s provided without base path", path)
	}
	rel, err := filepath.Rel(l.basePath, clean)
	if err != nil {
		return "", fmt.Errorf("markdown loader: make relative %s: %w", path, err)
	}
	return rel, nil
}
