package catalog

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"path"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/goliatone/go-relnotes/internal/identity"
	"github.com/goliatone/go-relnotes/internal/logging"
	"github.com/goliatone/go-relnotes/internal/markdown"
	"github.com/goliatone/go-relnotes/internal/notes"
	"github.com/goliatone/go-relnotes/pkg/interfaces"
)

const defaultSearchLimit = 10

// service indexes documentation trees and answers catalog queries. Document
// identity is deterministic, so running Index twice over the same tree lands
// on the same rows; pages that disappear between runs are soft deleted.
type service struct {
	releases  ReleaseRepository
	documents SearchDocumentRepository

	loader  interfaces.MarkdownLoader
	notes   notes.Service
	builder *Builder
	urls    *URLBuilder
	logger  interfaces.Logger
	now     func() time.Time

	contentDir string
	baseIndex  string
}

// ServiceOption customises service construction.
type ServiceOption func(*service)

// WithLoader wires the markdown loader used to discover and read pages.
func WithLoader(loader interfaces.MarkdownLoader) ServiceOption {
	return func(s *service) {
		if loader != nil {
			s.loader = loader
		}
	}
}

// WithNotesService wires the parser used to build release records from the
// version's release-note page.
func WithNotesService(svc notes.Service) ServiceOption {
	return func(s *service) {
		if svc != nil {
			s.notes = svc
		}
	}
}

// WithBuilder overrides the search document builder.
func WithBuilder(builder *Builder) ServiceOption {
	return func(s *service) {
		if builder != nil {
			s.builder = builder
		}
	}
}

// WithURLBuilder wires the permalink builder backing ReleaseURL.
func WithURLBuilder(urls *URLBuilder) ServiceOption {
	return func(s *service) {
		if urls != nil {
			s.urls = urls
		}
	}
}

// WithLogger attaches a logger used for structured diagnostics.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock overrides the time source used for record timestamps.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithContentDir sets the directory indexed when a request leaves ContentDir empty.
func WithContentDir(dir string) ServiceOption {
	return func(s *service) {
		s.contentDir = strings.TrimSpace(dir)
	}
}

// WithBaseIndex sets the index family used when a request leaves BaseIndex empty.
func WithBaseIndex(base string) ServiceOption {
	return func(s *service) {
		s.baseIndex = strings.TrimSpace(base)
	}
}

// NewService constructs the catalog service over the supplied repositories.
func NewService(releases ReleaseRepository, documents SearchDocumentRepository, opts ...ServiceOption) Service {
	svc := &service{
		releases:  releases,
		documents: documents,
		builder:   NewBuilder(BuilderConfig{}),
		logger:    logging.NoOp(),
		now:       time.Now,
		baseIndex: DefaultBaseIndex,
	}

	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

var _ Service = (*service)(nil)

// Index walks the version directory, builds one search document per indexable
// page, and upserts the release record extracted from the version's release
// note. Per-file problems land in the result instead of aborting the run.
func (s *service) Index(ctx context.Context, req IndexRequest) (*IndexResult, error) {
	version := markdown.NormalizeVersion(req.Version)
	if version == "" {
		return nil, ErrVersionRequired
	}
	if s.loader == nil {
		return nil, errors.New("catalog: markdown loader is required")
	}

	dir := strings.TrimSpace(req.ContentDir)
	if dir == "" {
		dir = s.contentDir
	}
	if dir == "" {
		return nil, ErrContentDirRequired
	}

	base := strings.TrimSpace(req.BaseIndex)
	if base == "" {
		base = s.baseIndex
	}
	indexName := IndexName(base, version)

	versionRoot := path.Join(dir, "v"+version)
	recursive := true
	paths, err := s.loader.Discover(ctx, versionRoot, interfaces.LoadOptions{Recursive: &recursive})
	if err != nil {
		return nil, fmt.Errorf("catalog: discover %s: %w", versionRoot, err)
	}

	logger := s.baseLogger(ctx)
	start := time.Now()
	result := &IndexResult{IndexName: indexName, Version: version}
	built := make(map[string]struct{})

	var releaseDoc *interfaces.Document

	for _, filePath := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !s.builder.ShouldIndex(filePath) {
			continue
		}

		doc, err := s.loader.Load(ctx, filePath, interfaces.LoadOptions{})
		if err != nil {
			result.Failures = append(result.Failures, IndexFailure{Path: filePath, Message: err.Error()})
			continue
		}

		if releaseDoc == nil && isReleaseNotePath(filePath, version) {
			releaseDoc = doc
		}

		record, err := s.builder.Build(doc, indexName)
		if err != nil {
			if errors.Is(err, ErrSkipPage) {
				result.Skipped++
				logger.Warn("catalog.index.page_skipped", "path", filePath, "reason", err.Error())
				continue
			}
			result.Failures = append(result.Failures, IndexFailure{Path: filePath, Message: err.Error()})
			continue
		}

		now := s.now()
		record.CreatedAt = now
		record.UpdatedAt = now
		if _, err := s.documents.Upsert(ctx, record); err != nil {
			result.Failures = append(result.Failures, IndexFailure{Path: filePath, Message: err.Error()})
			continue
		}

		built[record.ObjectID] = struct{}{}
		result.Indexed++
		if record.Truncated {
			result.Truncated++
		}
	}

	s.sweepStale(ctx, indexName, built, result)

	if releaseDoc != nil {
		if err := s.upsertRelease(ctx, version, releaseDoc); err != nil {
			result.Failures = append(result.Failures, IndexFailure{Path: releaseDoc.FilePath, Message: err.Error()})
		}
	}

	logging.WithFields(logger, map[string]any{
		"index":       indexName,
		"version":     version,
		"indexed":     result.Indexed,
		"skipped":     result.Skipped,
		"truncated":   result.Truncated,
		"failures":    len(result.Failures),
		"duration_ms": time.Since(start).Milliseconds(),
	}).Info("catalog.index.completed")

	return result, nil
}

// Releases lists the catalog ordered newest first.
func (s *service) Releases(ctx context.Context) ([]*Release, error) {
	records, err := s.releases.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(records, func(i, j int) bool {
		return compareVersions(records[i].Version, records[j].Version) > 0
	})
	return records, nil
}

// Release fetches one catalog record by version.
func (s *service) Release(ctx context.Context, version string) (*Release, error) {
	normalized := markdown.NormalizeVersion(version)
	if normalized == "" {
		return nil, ErrVersionRequired
	}
	return s.releases.GetByVersion(ctx, normalized)
}

// Search queries one index by substring match over title and content.
func (s *service) Search(ctx context.Context, req SearchRequest) ([]*SearchDocument, error) {
	index := strings.TrimSpace(req.Index)
	if index == "" {
		return nil, ErrIndexNameRequired
	}
	query := strings.TrimSpace(req.Query)
	if query == "" {
		return nil, ErrQueryRequired
	}
	limit := req.Limit
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	return s.documents.Search(ctx, index, query, limit)
}

// ReleaseURL builds the docs-site permalink for a release page.
func (s *service) ReleaseURL(version, slug string) (string, error) {
	if s.urls == nil {
		return "", errors.New("catalog: url routes not configured")
	}
	return s.urls.ReleaseURL(version, slug)
}

// sweepStale soft deletes documents that were present in the index but not in
// this run, mirroring a full index replacement.
func (s *service) sweepStale(ctx context.Context, indexName string, built map[string]struct{}, result *IndexResult) {
	existing, err := s.documents.ListByIndex(ctx, indexName)
	if err != nil {
		result.Failures = append(result.Failures, IndexFailure{Path: indexName, Message: fmt.Sprintf("list index: %v", err)})
		return
	}

	for _, doc := range existing {
		if _, ok := built[doc.ObjectID]; ok {
			continue
		}
		now := s.now()
		doc.DeletedAt = &now
		doc.UpdatedAt = now
		if _, err := s.documents.Upsert(ctx, doc); err != nil {
			result.Failures = append(result.Failures, IndexFailure{Path: doc.Path, Message: err.Error()})
		}
	}
}

func (s *service) upsertRelease(ctx context.Context, version string, doc *interfaces.Document) error {
	if s.notes == nil {
		return nil
	}

	note, err := s.notes.Parse(ctx, doc)
	if err != nil {
		return fmt.Errorf("parse release note: %w", err)
	}

	now := s.now()
	record := &Release{
		ID:             identity.ReleaseUUID(version),
		Version:        version,
		Title:          note.Title,
		Date:           note.Date,
		Path:           doc.FilePath,
		Slug:           releaseSlug(doc, note, version),
		Checksum:       hex.EncodeToString(doc.Checksum),
		Sections:       note.SectionHeadings(),
		Connectors:     note.Connectors,
		SectionCount:   len(note.Sections),
		ConnectorCount: len(note.Connectors),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if summary := releaseSummary(doc, note); summary != "" {
		record.Summary = &summary
	}
	if metadata := releaseMetadata(note); len(metadata) > 0 {
		record.Metadata = metadata
	}

	_, err = s.releases.Upsert(ctx, record)
	return err
}

// isReleaseNotePath reports whether the file stem names the indexed version,
// e.g. "content/v0.5.0/releases/0.5.0.md".
func isReleaseNotePath(filePath, version string) bool {
	rel := strings.ReplaceAll(filePath, "\\", "/")
	stem := strings.TrimSuffix(path.Base(rel), path.Ext(rel))
	return markdown.IsVersion(stem) && markdown.NormalizeVersion(stem) == version
}

func releaseSlug(doc *interfaces.Document, note *notes.ReleaseNote, version string) string {
	if slug := strings.TrimSpace(doc.FrontMatter.Slug); slug != "" {
		return slug
	}
	if slug := strings.TrimSpace(note.Slug); slug != "" {
		return slug
	}
	return "/releases/" + version
}

func releaseSummary(doc *interfaces.Document, note *notes.ReleaseNote) string {
	if description := strings.TrimSpace(doc.FrontMatter.Description); description != "" {
		return description
	}
	if len(note.Highlights) > 0 {
		return strings.TrimSpace(note.Highlights[0])
	}
	return ""
}

func releaseMetadata(note *notes.ReleaseNote) map[string]any {
	metadata := make(map[string]any)
	if note.NoteType != "" {
		metadata["note_type"] = note.NoteType
	}
	if len(note.Links) > 0 {
		metadata["announcement"] = note.Links[0].URL
	}
	return metadata
}

// compareVersions orders dotted numeric versions; non-numeric segments fall
// back to string comparison.
func compareVersions(a, b string) int {
	as := strings.Split(markdown.NormalizeVersion(a), ".")
	bs := strings.Split(markdown.NormalizeVersion(b), ".")

	for i := 0; i < len(as) || i < len(bs); i++ {
		var left, right string
		if i < len(as) {
			left = as[i]
		}
		if i < len(bs) {
			right = bs[i]
		}
		ln, lerr := strconv.Atoi(left)
		rn, rerr := strconv.Atoi(right)
		if lerr == nil && rerr == nil {
			if ln != rn {
				if ln < rn {
					return -1
				}
				return 1
			}
			continue
		}
		if left != right {
			if left < right {
				return -1
			}
			return 1
		}
	}
	return 0
}

func (s *service) baseLogger(ctx context.Context) interfaces.Logger {
	logger := s.logger
	if logger == nil {
		logger = logging.NoOp()
	}
	if ctx != nil {
		logger = logger.WithContext(ctx)
	}
	return logger
}

// NewDisabledService returns a Service whose operations fail with ErrCatalogDisabled.
func NewDisabledService() Service {
	return disabledService{}
}

type disabledService struct{}

func (disabledService) Index(context.Context, IndexRequest) (*IndexResult, error) {
	return nil, ErrCatalogDisabled
}

func (disabledService) Releases(context.Context) ([]*Release, error) {
	return nil, ErrCatalogDisabled
}

func (disabledService) Release(context.Context, string) (*Release, error) {
	return nil, ErrCatalogDisabled
}

func (disabledService) Search(context.Context, SearchRequest) ([]*SearchDocument, error) {
	return nil, ErrCatalogDisabled
}

func (disabledService) ReleaseURL(string, string) (string, error) {
	return "", ErrCatalogDisabled
}
