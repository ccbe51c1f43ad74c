package catalog

import (
	"errors"
	"fmt"
	"path"
	"regexp"
	"strings"

	"github.com/goliatone/go-relnotes/internal/identity"
	"github.com/goliatone/go-relnotes/internal/markdown"
	"github.com/goliatone/go-relnotes/pkg/interfaces"
	"github.com/goliatone/go-slug"
)

// DefaultTruncateLimit caps how much page content lands in a search document.
const DefaultTruncateLimit = 100000

// DefaultBaseIndex is the index family used when no base name is configured.
const DefaultBaseIndex = "docs"

// ErrSkipPage marks pages the builder deliberately leaves out of the index.
// Callers count these as skips, not failures.
var ErrSkipPage = errors.New("catalog: page skipped")

// contentTagPattern strips inline tag spans before the text is flattened.
var contentTagPattern = regexp.MustCompile(`(?s)<(.*?)>`)

var excludedStems = map[string]struct{}{
	"gdpr-banner": {},
	"menu":        {},
}

var excludedDirs = map[string]struct{}{
	"main-concepts": {},
}

// BuilderConfig tunes how documents become search records.
type BuilderConfig struct {
	// TruncateLimit caps the page content in bytes. Zero applies the default,
	// negative disables truncation.
	TruncateLimit int
}

// Builder turns loaded markdown documents into search documents following the
// docs-site indexing rules: excluded stems and directories never reach Build,
// collated pages and pages without a title are skipped, oversized content is
// truncated and flagged.
type Builder struct {
	truncateLimit int
}

// NewBuilder constructs a Builder.
func NewBuilder(cfg BuilderConfig) *Builder {
	limit := cfg.TruncateLimit
	if limit == 0 {
		limit = DefaultTruncateLimit
	}
	return &Builder{truncateLimit: limit}
}

// IndexName derives the per-version index name, e.g. "docs-0.5.0".
func IndexName(base, version string) string {
	trimmed := strings.TrimSpace(base)
	if trimmed == "" {
		trimmed = DefaultBaseIndex
	}
	return trimmed + "-" + markdown.NormalizeVersion(version)
}

// ShouldIndex reports whether the file at path participates in the index.
// Root helper pages (menu, gdpr-banner) and anything under a main-concepts
// directory stay out.
func (b *Builder) ShouldIndex(filePath string) bool {
	rel := strings.TrimPrefix(path.Clean(strings.ReplaceAll(filePath, "\\", "/")), "/")
	stem := strings.TrimSuffix(path.Base(rel), path.Ext(rel))
	if _, excluded := excludedStems[stem]; excluded {
		return false
	}

	segments := strings.Split(rel, "/")
	if len(segments) > 1 {
		for _, segment := range segments[:len(segments)-1] {
			if _, excluded := excludedDirs[segment]; excluded {
				return false
			}
		}
	}
	return true
}

// Build produces the search document for a loaded page. Pages flagged
// `collate: true` and pages without a title return ErrSkipPage.
func (b *Builder) Build(doc *interfaces.Document, indexName string) (*SearchDocument, error) {
	if doc == nil {
		return nil, errors.New("catalog: document is required")
	}
	if strings.TrimSpace(indexName) == "" {
		return nil, ErrIndexNameRequired
	}

	if doc.FrontMatter.Collate {
		return nil, fmt.Errorf("%w: collate page", ErrSkipPage)
	}

	title := strings.TrimSpace(doc.FrontMatter.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: missing title", ErrSkipPage)
	}

	objectID := normalizeSlugPath(doc.FrontMatter.Slug)
	if objectID == "" {
		objectID = normalizeSlugPath(deriveSlug(doc.FilePath, doc.Version))
	}
	if objectID == "" {
		return nil, fmt.Errorf("%w: missing slug", ErrSkipPage)
	}

	body := doc.Body
	truncated := false
	if b.truncateLimit > 0 && len(body) > b.truncateLimit {
		body = body[:b.truncateLimit]
		truncated = true
	}

	var description *string
	if trimmed := strings.TrimSpace(doc.FrontMatter.Description); trimmed != "" {
		description = &trimmed
	}

	return &SearchDocument{
		ID:          identity.SearchDocumentUUID(indexName, objectID),
		IndexName:   indexName,
		ObjectID:    objectID,
		Title:       title,
		Description: description,
		Categories:  splitCategories(objectID),
		Content:     PlainText(string(body)),
		Version:     markdown.NormalizeVersion(doc.Version),
		Path:        doc.FilePath,
		Truncated:   truncated,
	}, nil
}

// PlainText flattens page markdown for indexing: tag spans are removed, then
// newlines and heading markers are dropped so the text reads as one line.
func PlainText(content string) string {
	cleaned := contentTagPattern.ReplaceAllString(content, "")
	cleaned = strings.ReplaceAll(cleaned, "\n", "")
	return strings.ReplaceAll(cleaned, "#", "")
}

// slugSafeSegment matches segments that already look like docs-site slugs.
// Those pass through untouched so object IDs stay aligned with the site URLs
// (version segments like "0.5.0" keep their dots).
var slugSafeSegment = regexp.MustCompile(`^[a-z0-9._-]+$`)

// normalizeSlugPath normalizes each slug segment while preserving the path
// shape, so "/Deploy/Metadata IDs" becomes "/deploy/metadata-ids".
func normalizeSlugPath(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}

	parts := strings.Split(trimmed, "/")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		lowered := strings.ToLower(part)
		if slugSafeSegment.MatchString(lowered) {
			out = append(out, lowered)
			continue
		}
		if normalized, err := slug.Normalize(part); err == nil && normalized != "" {
			part = normalized
		}
		out = append(out, part)
	}
	if len(out) == 0 {
		return ""
	}
	return "/" + strings.Join(out, "/")
}

// deriveSlug falls back to a path-shaped slug relative to the version
// directory when the page has no frontmatter slug.
func deriveSlug(filePath, version string) string {
	rel := strings.ReplaceAll(filePath, "\\", "/")
	rel = strings.TrimSuffix(rel, path.Ext(rel))

	segments := strings.Split(strings.Trim(rel, "/"), "/")
	normalized := markdown.NormalizeVersion(version)
	for i, segment := range segments {
		if markdown.IsVersion(segment) && markdown.NormalizeVersion(segment) == normalized {
			segments = segments[i+1:]
			break
		}
	}
	if len(segments) == 0 {
		return ""
	}
	return "/" + strings.Join(segments, "/")
}

func splitCategories(slugPath string) []string {
	segments := strings.Split(strings.TrimPrefix(slugPath, "/"), "/")
	out := make([]string, 0, len(segments))
	for _, segment := range segments {
		if segment == "" {
			continue
		}
		out = append(out, segment)
	}
	return out
}
