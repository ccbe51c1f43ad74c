package generator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-relnotes/internal/logging"
	"github.com/goliatone/go-relnotes/internal/markdown"
	"github.com/goliatone/go-relnotes/notes"
	"github.com/goliatone/go-relnotes/pkg/interfaces"
)

var (
	// ErrServiceDisabled indicates the scaffold feature is disabled.
	ErrServiceDisabled = errors.New("generator: service disabled")
	// ErrNoteExists indicates the target file already exists and Force was not set.
	ErrNoteExists = errors.New("generator: release note already exists")

	versionInputPattern = regexp.MustCompile(`^\d+(\.\d+)*$`)
)

// Service renders release-note scaffolds from structured input.
type Service interface {
	Render(ctx context.Context, in Input) ([]byte, error)
	Write(ctx context.Context, in Input, opts WriteOptions) (string, error)
	RenderAll(ctx context.Context, inputs []Input, opts BuildOptions) (*BuildResult, error)
}

// Config captures runtime behaviour toggles for the generator.
type Config struct {
	// OutputDir is where Write places scaffolds when no override is given.
	OutputDir string
	// NoteType is the callout flavour used when the input leaves it empty.
	NoteType string
	// Workers bounds RenderAll concurrency; zero means NumCPU.
	Workers int
}

// Input describes one release note to scaffold.
type Input struct {
	Version    string
	Date       string
	NoteType   string
	Highlights []string
	Sections   []SectionInput
	Links      []notes.Link
}

// SectionInput is one H2 section with its bullet items.
type SectionInput struct {
	Heading string
	Items   []string
}

// Validate reports structural problems that would produce a scaffold the
// linter rejects.
func (in Input) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Version, validation.Required, validation.Match(versionInputPattern)),
		validation.Field(&in.NoteType, validation.In("Tip", "Note", "Warning", "Danger")),
		validation.Field(&in.Sections, validation.By(validateSections)),
		validation.Field(&in.Links, validation.By(validateLinks)),
	)
}

func validateSections(value any) error {
	sections, ok := value.([]SectionInput)
	if !ok {
		return validation.NewError("validation_sections", "must be a section list")
	}
	for _, section := range sections {
		if strings.TrimSpace(section.Heading) == "" {
			return validation.NewError("validation_section_heading", "section heading must not be blank")
		}
		if len(section.Items) == 0 {
			return validation.NewError("validation_section_items", fmt.Sprintf("section %q needs at least one bullet item", section.Heading))
		}
		for _, item := range section.Items {
			if strings.TrimSpace(item) == "" {
				return validation.NewError("validation_section_items", fmt.Sprintf("section %q has a blank bullet item", section.Heading))
			}
		}
	}
	return nil
}

func validateLinks(value any) error {
	links, ok := value.([]notes.Link)
	if !ok {
		return validation.NewError("validation_links", "must be a link list")
	}
	for _, link := range links {
		if strings.TrimSpace(link.Text) == "" || strings.TrimSpace(link.URL) == "" {
			return validation.NewError("validation_links", "links need both text and url")
		}
	}
	return nil
}

// WriteOptions adjusts a single Write call.
type WriteOptions struct {
	// Dir overrides the configured output directory.
	Dir string
	// Force allows overwriting an existing file.
	Force bool
}

// BuildOptions narrows the scope of a batch render.
type BuildOptions struct {
	Workers int
}

// RenderedNote is one successful batch result.
type RenderedNote struct {
	Version string
	Content []byte
}

// RenderFailure records a per-version render problem without aborting the batch.
type RenderFailure struct {
	Version string
	Err     error
}

// BuildResult reports aggregated batch metadata, sorted by version for
// deterministic output.
type BuildResult struct {
	Rendered []RenderedNote
	Failures []RenderFailure
	Duration time.Duration
}

// ServiceOption customises the generator service.
type ServiceOption func(*service)

// WithLogger attaches a logger used for render diagnostics.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewService wires a generator implementation with the provided configuration.
func NewService(cfg Config, opts ...ServiceOption) Service {
	if strings.TrimSpace(cfg.NoteType) == "" {
		cfg.NoteType = "Tip"
	}
	svc := &service{
		cfg:    cfg,
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// NewDisabledService returns a Service that fails all operations with
// ErrServiceDisabled.
func NewDisabledService() Service {
	return disabledService{}
}

type service struct {
	cfg    Config
	logger interfaces.Logger
}

// Render produces the canonical markdown for one release note. Equal inputs
// always render equal bytes.
func (s *service) Render(ctx context.Context, in Input) ([]byte, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	in.Version = markdown.NormalizeVersion(in.Version)
	if strings.TrimSpace(in.NoteType) == "" {
		in.NoteType = s.cfg.NoteType
	}
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("generator: invalid input: %w", err)
	}

	var buf bytes.Buffer
	if err := releaseNoteTemplate.Execute(&buf, buildTemplateData(in)); err != nil {
		return nil, fmt.Errorf("generator: render %s: %w", in.Version, err)
	}
	out := normalise(buf.Bytes())

	logging.WithDocumentContext(s.logger.WithContext(ctx), "", in.Version, "render").
		Debug("generator.render.completed")
	return out, nil
}

// Write renders the input and persists it as <dir>/<version>.md. Existing
// files are preserved unless opts.Force is set.
func (s *service) Write(ctx context.Context, in Input, opts WriteOptions) (string, error) {
	content, err := s.Render(ctx, in)
	if err != nil {
		return "", err
	}

	dir := opts.Dir
	if strings.TrimSpace(dir) == "" {
		dir = s.cfg.OutputDir
	}
	if strings.TrimSpace(dir) == "" {
		dir = "."
	}

	target := filepath.Join(dir, markdown.NormalizeVersion(in.Version)+".md")
	if !opts.Force {
		if _, statErr := os.Stat(target); statErr == nil {
			return "", fmt.Errorf("%w: %s", ErrNoteExists, target)
		} else if !errors.Is(statErr, fs.ErrNotExist) {
			return "", fmt.Errorf("generator: stat %s: %w", target, statErr)
		}
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("generator: create %s: %w", dir, err)
	}
	if err := os.WriteFile(target, content, 0o644); err != nil {
		return "", fmt.Errorf("generator: write %s: %w", target, err)
	}

	logging.WithDocumentContext(s.logger.WithContext(ctx), target, markdown.NormalizeVersion(in.Version), "write").
		Info("generator.write.completed")
	return target, nil
}

// RenderAll renders every input with a bounded worker pool, collecting
// per-version failures without aborting the batch.
func (s *service) RenderAll(ctx context.Context, inputs []Input, opts BuildOptions) (*BuildResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	result := &BuildResult{}
	if len(inputs) == 0 {
		result.Duration = time.Since(start)
		return result, nil
	}

	var mu sync.Mutex
	collect := func(version string, content []byte, err error) {
		mu.Lock()
		defer mu.Unlock()
		if err != nil {
			result.Failures = append(result.Failures, RenderFailure{Version: version, Err: err})
			return
		}
		result.Rendered = append(result.Rendered, RenderedNote{Version: version, Content: content})
	}

	workers := s.effectiveWorkerCount(opts.Workers, len(inputs))
	if workers <= 1 || len(inputs) <= 1 {
		for _, in := range inputs {
			select {
			case <-ctx.Done():
				s.finalize(result, start)
				return result, ctx.Err()
			default:
				content, err := s.Render(ctx, in)
				collect(markdown.NormalizeVersion(in.Version), content, err)
			}
		}
		s.finalize(result, start)
		return result, nil
	}

	jobs := make(chan Input)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for in := range jobs {
				select {
				case <-ctx.Done():
					collect(markdown.NormalizeVersion(in.Version), nil, ctx.Err())
					return
				default:
					content, err := s.Render(ctx, in)
					collect(markdown.NormalizeVersion(in.Version), content, err)
				}
			}
		}()
	}

	for _, in := range inputs {
		select {
		case <-ctx.Done():
			close(jobs)
			wg.Wait()
			s.finalize(result, start)
			return result, ctx.Err()
		case jobs <- in:
		}
	}
	close(jobs)
	wg.Wait()

	s.finalize(result, start)
	return result, nil
}

func (s *service) finalize(result *BuildResult, start time.Time) {
	sort.Slice(result.Rendered, func(i, j int) bool {
		return result.Rendered[i].Version < result.Rendered[j].Version
	})
	sort.Slice(result.Failures, func(i, j int) bool {
		return result.Failures[i].Version < result.Failures[j].Version
	})
	result.Duration = time.Since(start)
}

func (s *service) effectiveWorkerCount(requested, jobCount int) int {
	workers := requested
	if workers <= 0 {
		workers = s.cfg.Workers
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers < 1 {
		workers = 1
	}
	if jobCount > 0 && workers > jobCount {
		return jobCount
	}
	return workers
}

type disabledService struct{}

func (disabledService) Render(context.Context, Input) ([]byte, error) {
	return nil, ErrServiceDisabled
}

func (disabledService) Write(context.Context, Input, WriteOptions) (string, error) {
	return "", ErrServiceDisabled
}

func (disabledService) RenderAll(context.Context, []Input, BuildOptions) (*BuildResult, error) {
	return nil, ErrServiceDisabled
}
