package lint

import (
	"context"

	"github.com/yuin/goldmark/ast"

	"github.com/goliatone/go-relnotes/notes"
	"github.com/goliatone/go-relnotes/pkg/interfaces"
)

// Severity classifies how a finding affects the document's acceptance.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Finding records a single structural violation discovered by a rule.
type Finding struct {
	Rule     string   `json:"rule"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
	Path     string   `json:"path,omitempty"`
	Line     int      `json:"line,omitempty"`
}

// Report aggregates the findings produced by a lint run over one document.
type Report struct {
	Path     string    `json:"path"`
	Version  string    `json:"version,omitempty"`
	Findings []Finding `json:"findings"`
}

// Err returns a non-nil error when the report contains at least one
// error-severity finding.
func (r *Report) Err() error {
	if r == nil {
		return nil
	}
	for _, finding := range r.Findings {
		if finding.Severity == SeverityError {
			return &FailedError{Report: r}
		}
	}
	return nil
}

// HasWarnings reports whether any warning-severity findings were recorded.
func (r *Report) HasWarnings() bool {
	if r == nil {
		return false
	}
	for _, finding := range r.Findings {
		if finding.Severity == SeverityWarning {
			return true
		}
	}
	return false
}

// Counts returns the number of error and warning findings.
func (r *Report) Counts() (errors int, warnings int) {
	if r == nil {
		return 0, 0
	}
	for _, finding := range r.Findings {
		switch finding.Severity {
		case SeverityError:
			errors++
		case SeverityWarning:
			warnings++
		}
	}
	return errors, warnings
}

// Target bundles everything a rule may inspect. The AST and extracted
// shortcodes are prepared once by the runner so individual rules stay cheap.
// Note is nil when structural extraction failed; rules must tolerate that.
type Target struct {
	Document   *interfaces.Document
	AST        ast.Node
	Source     []byte
	Shortcodes []interfaces.ParsedShortcode
	Note       *notes.ReleaseNote
}

// Rule checks one structural property of a release-note document. Rules must
// be stateless so the runner can share them across goroutines.
type Rule interface {
	Name() string
	Check(ctx context.Context, target *Target) []Finding
}

// Service runs the configured rules over documents.
type Service interface {
	Lint(ctx context.Context, target *Target) (*Report, error)
	LintBytes(ctx context.Context, path string, src []byte) (*Report, error)
	LintFile(ctx context.Context, path string) (*Report, error)
	LintTree(ctx context.Context, dir string) ([]*Report, error)
	Rules() []Rule
}
