package interfaces

import (
	"context"
	"time"
)

// MarkdownLoader discovers and loads markdown documents from a content root.
// Implementations read from an fs.FS so callers can point the loader at disk,
// embedded assets, or test fixtures without changing the contract.
type MarkdownLoader interface {
	// Load reads a single document. The path is relative to the content root.
	Load(ctx context.Context, path string, opts LoadOptions) (*Document, error)
	// LoadDirectory loads every document below dir that matches the options.
	LoadDirectory(ctx context.Context, dir string, opts LoadOptions) ([]*Document, error)
	// Discover returns the relative paths Load would accept, sorted, without
	// reading file bodies.
	Discover(ctx context.Context, dir string, opts LoadOptions) ([]string, error)
}

// Document represents a markdown file with parsed metadata and content. The
// struct is shared between the interfaces package and internal implementations
// so consumers can depend on a stable contract.
type Document struct {
	FilePath     string
	Version      string
	FrontMatter  FrontMatter
	Body         []byte
	Source       []byte
	LastModified time.Time
	// Checksum stores a SHA-256 digest of the original file content so
	// downstream consumers can detect changes without re-reading files.
	Checksum []byte
}

// FrontMatter models metadata extracted from markdown files. The docs content
// this module targets uses a small, stable header; anything else lands in
// Custom via the inline map.
type FrontMatter struct {
	Title       string         `yaml:"title" json:"title"`
	Slug        string         `yaml:"slug" json:"slug"`
	Description string         `yaml:"description" json:"description"`
	Collate     bool           `yaml:"collate" json:"collate"`
	Custom      map[string]any `yaml:",inline" json:"custom"`
	Raw         map[string]any `yaml:"-" json:"raw"`
}

// LoadOptions fine-tunes how documents are discovered and parsed from disk.
type LoadOptions struct {
	Recursive *bool
	Pattern   string
	// VersionPattern overrides the default path-based version detection
	// (segments shaped like v0.5.0 or a versioned file stem).
	VersionPattern string
}
