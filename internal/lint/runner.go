package lint

import (
	"context"
	"crypto/sha256"
	"os"
	"sort"
	"time"

	"github.com/goliatone/go-relnotes/internal/logging"
	"github.com/goliatone/go-relnotes/internal/markdown"
	"github.com/goliatone/go-relnotes/internal/notes"
	"github.com/goliatone/go-relnotes/internal/shortcode"
	"github.com/goliatone/go-relnotes/pkg/interfaces"
)

// Runner executes the configured rules over release-note documents. The
// runner prepares a Target once per document (AST, extracted shortcodes,
// parsed note) so rules stay cheap, and never stops at the first failure.
// Runners are stateless: linting the same bytes twice yields equal reports.
type Runner struct {
	loader     interfaces.MarkdownLoader
	engine     *markdown.Engine
	shortcodes interfaces.ShortcodeService
	notes      notes.Service
	rules      []Rule
	logger     interfaces.Logger
}

// RunnerOption customises runner construction.
type RunnerOption func(*Runner)

// WithLoader wires the loader used by LintFile and LintTree.
func WithLoader(loader interfaces.MarkdownLoader) RunnerOption {
	return func(r *Runner) {
		if loader != nil {
			r.loader = loader
		}
	}
}

// WithEngine overrides the markdown engine used for AST preparation.
func WithEngine(engine *markdown.Engine) RunnerOption {
	return func(r *Runner) {
		if engine != nil {
			r.engine = engine
		}
	}
}

// WithShortcodeService overrides the shortcode extractor shared with rules.
func WithShortcodeService(svc interfaces.ShortcodeService) RunnerOption {
	return func(r *Runner) {
		if svc != nil {
			r.shortcodes = svc
		}
	}
}

// WithNotesService overrides the release-note parser.
func WithNotesService(svc notes.Service) RunnerOption {
	return func(r *Runner) {
		if svc != nil {
			r.notes = svc
		}
	}
}

// WithRules replaces the default rule set. Order is preserved in reports.
func WithRules(rules ...Rule) RunnerOption {
	return func(r *Runner) {
		r.rules = rules
	}
}

// WithLogger attaches a logger used for structured diagnostics.
func WithLogger(logger interfaces.Logger) RunnerOption {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewRunner constructs a runner with the builtin rule set. Rules that need
// collaborators receive the runner's shortcode service so findings and
// extraction agree on what a balanced document looks like.
func NewRunner(opts ...RunnerOption) *Runner {
	runner := &Runner{
		engine: markdown.NewEngine(),
		logger: logging.NoOp(),
	}

	for _, opt := range opts {
		opt(runner)
	}

	if runner.shortcodes == nil {
		registry := shortcode.NewRegistry(shortcode.NewValidator())
		_ = shortcode.RegisterBuiltIns(registry, nil)
		runner.shortcodes = shortcode.NewService(registry)
	}
	if runner.notes == nil {
		runner.notes = notes.NewParser(
			notes.WithEngine(runner.engine),
			notes.WithShortcodeService(runner.shortcodes),
		)
	}
	if runner.rules == nil {
		runner.rules = DefaultRules(runner.shortcodes)
	}

	return runner
}

// DefaultRules returns the builtin rules in their canonical order.
func DefaultRules(shortcodes interfaces.ShortcodeService) []Rule {
	return []Rule{
		ReleaseHeadingRule{},
		BalancedShortcodesRule{Service: shortcodes},
		SectionBulletsRule{},
		FrontmatterSchemaRule{},
		LinkTargetsRule{},
	}
}

// Rules exposes the configured rule set in execution order.
func (r *Runner) Rules() []Rule {
	out := make([]Rule, len(r.rules))
	copy(out, r.rules)
	return out
}

// Lint runs every rule over the prepared target and aggregates findings in
// rule order, each rule's findings sorted by line.
func (r *Runner) Lint(ctx context.Context, target *Target) (*Report, error) {
	if target == nil || target.Document == nil {
		return nil, ErrTargetRequired
	}

	report := &Report{
		Path:    target.Document.FilePath,
		Version: target.Document.Version,
	}
	if target.Note != nil && target.Note.Version != "" {
		report.Version = target.Note.Version
	}

	start := time.Now()
	for _, rule := range r.rules {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		findings := rule.Check(ctx, target)
		sort.SliceStable(findings, func(i, j int) bool {
			return findings[i].Line < findings[j].Line
		})
		for i := range findings {
			if findings[i].Rule == "" {
				findings[i].Rule = rule.Name()
			}
			if findings[i].Path == "" {
				findings[i].Path = report.Path
			}
		}
		report.Findings = append(report.Findings, findings...)
	}

	errs, warnings := report.Counts()
	logging.WithFields(r.baseLogger(ctx), map[string]any{
		"document_path": report.Path,
		"errors":        errs,
		"warnings":      warnings,
		"duration_ms":   time.Since(start).Milliseconds(),
	}).Debug("lint.runner.completed")

	return report, nil
}

// LintBytes prepares a target from raw markdown source and lints it.
func (r *Runner) LintBytes(ctx context.Context, path string, src []byte) (*Report, error) {
	doc, err := markdown.BuildDocument(path, markdown.DetectVersion(path), src, time.Time{})
	if err != nil {
		return nil, err
	}
	checksum := sha256.Sum256(src)
	doc.Checksum = checksum[:]

	return r.Lint(ctx, r.Prepare(ctx, doc))
}

// LintFile loads path through the configured loader when present, falling
// back to the local filesystem, and lints it.
func (r *Runner) LintFile(ctx context.Context, path string) (*Report, error) {
	if r.loader != nil {
		doc, err := r.loader.Load(ctx, path, interfaces.LoadOptions{})
		if err != nil {
			return nil, err
		}
		return r.Lint(ctx, r.Prepare(ctx, doc))
	}

	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return r.LintBytes(ctx, path, src)
}

// LintTree lints every markdown document below dir, one report per file,
// ordered by path. A document that fails to load contributes a report with a
// single loader finding instead of aborting the walk.
func (r *Runner) LintTree(ctx context.Context, dir string) ([]*Report, error) {
	if r.loader == nil {
		return nil, ErrLoaderRequired
	}

	paths, err := r.loader.Discover(ctx, dir, interfaces.LoadOptions{})
	if err != nil {
		return nil, err
	}

	reports := make([]*Report, 0, len(paths))
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		doc, err := r.loader.Load(ctx, path, interfaces.LoadOptions{})
		if err != nil {
			reports = append(reports, &Report{
				Path: path,
				Findings: []Finding{{
					Rule:     "loader",
					Severity: SeverityError,
					Message:  err.Error(),
					Path:     path,
				}},
			})
			continue
		}

		report, err := r.Lint(ctx, r.Prepare(ctx, doc))
		if err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}
	return reports, nil
}

// Prepare bundles everything the rules inspect. Shortcode extraction happens
// once here; when it fails the raw body is parsed instead so structural rules
// still run, and the balance failure surfaces through the shortcode rule.
// Note stays nil when release-note extraction fails; rules tolerate that.
func (r *Runner) Prepare(ctx context.Context, doc *interfaces.Document) *Target {
	target := &Target{Document: doc}

	transformed, extracted, err := r.shortcodes.Extract(ctx, string(doc.Body))
	if err != nil {
		target.Source = doc.Body
	} else {
		target.Source = []byte(transformed)
		target.Shortcodes = extracted
	}

	target.AST = r.engine.ParseAST(target.Source)

	if note, err := r.notes.Parse(ctx, doc); err == nil {
		target.Note = note
	}

	return target
}

var _ Service = (*Runner)(nil)

func (r *Runner) baseLogger(ctx context.Context) interfaces.Logger {
	logger := r.logger
	if logger == nil {
		logger = logging.NoOp()
	}
	if ctx != nil {
		logger = logger.WithContext(ctx)
	}
	return logger
}

// NewDisabledService returns a Service whose operations fail with ErrLintDisabled.
func NewDisabledService() Service {
	return disabledService{}
}

type disabledService struct{}

func (disabledService) Lint(context.Context, *Target) (*Report, error) {
	return nil, ErrLintDisabled
}

func (disabledService) LintBytes(context.Context, string, []byte) (*Report, error) {
	return nil, ErrLintDisabled
}

func (disabledService) LintFile(context.Context, string) (*Report, error) {
	return nil, ErrLintDisabled
}

func (disabledService) LintTree(context.Context, string) ([]*Report, error) {
	return nil, ErrLintDisabled
}

func (disabledService) Rules() []Rule {
	return nil
}
