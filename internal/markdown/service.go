package markdown

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/goliatone/go-relnotes/pkg/interfaces"
)

// Config controls how the markdown service discovers and loads files.
type Config struct {
	BasePath       string
	DefaultVersion string
	VersionPattern string
	Pattern        string
	Recursive      bool
}

// Service implements interfaces.MarkdownLoader for filesystem-backed documents.
// It prepares an fs.FS rooted at the configured base path and delegates to the
// underlying Loader for discovery, version detection, and frontmatter parsing.
type Service struct {
	cfg    Config
	loader *Loader
}

var _ interfaces.MarkdownLoader = (*Service)(nil)

// NewService constructs a markdown service rooted at cfg.BasePath on disk.
func NewService(cfg Config) (*Service, error) {
	filesystem, err := prepareFilesystem(cfg.BasePath)
	if err != nil {
		return nil, err
	}
	return NewServiceWithFS(filesystem, cfg), nil
}

// NewServiceWithFS constructs a markdown service over the supplied filesystem.
// Callers use this to point the service at embedded content or test fixtures.
func NewServiceWithFS(filesystem fs.FS, cfg Config) *Service {
	loader := NewLoader(filesystem, LoaderConfig{
		BasePath:       cfg.BasePath,
		DefaultVersion: cfg.DefaultVersion,
		VersionPattern: cfg.VersionPattern,
		Pattern:        cfg.Pattern,
		Recursive:      cfg.Recursive,
	})

	return &Service{
		cfg:    cfg,
		loader: loader,
	}
}

// Load reads a single markdown document relative to the configured base path.
func (s *Service) Load(ctx context.Context, path string, opts interfaces.LoadOptions) (*interfaces.Document, error) {
	return s.loader.Load(ctx, s.normalisePath(path), opts)
}

// LoadDirectory reads every markdown document within the supplied directory,
// sorted by file path.
func (s *Service) LoadDirectory(ctx context.Context, dir string, opts interfaces.LoadOptions) ([]*interfaces.Document, error) {
	docs, err := s.loader.LoadDirectory(ctx, s.normalisePath(dir), opts)
	if err != nil {
		return nil, err
	}

	sort.Slice(docs, func(i, j int) bool {
		return docs[i].FilePath < docs[j].FilePath
	})
	return docs, nil
}

// Discover lists the relative paths LoadDirectory would read.
func (s *Service) Discover(ctx context.Context, dir string, opts interfaces.LoadOptions) ([]string, error) {
	return s.loader.Discover(ctx, s.normalisePath(dir), opts)
}

func (s *Service) normalisePath(path string) string {
	if strings.TrimSpace(path) == "" {
		return "."
	}
	clean := filepath.Clean(path)
	if filepath.IsAbs(clean) && strings.TrimSpace(s.cfg.BasePath) != "" {
		if rel, err := filepath.Rel(s.cfg.BasePath, clean); err == nil {
			return filepath.ToSlash(rel)
		}
	}
	return filepath.ToSlash(clean)
}

func prepareFilesystem(basePath string) (fs.FS, error) {
	if strings.TrimSpace(basePath) == "" {
		basePath = "."
	}
	if _, err := os.Stat(basePath); err != nil {
		return nil, fmt.Errorf("markdown service: stat base path %s: %w", basePath, err)
	}
	return os.DirFS(basePath), nil
}
