package lint

import (
	"context"
	"errors"

	shortcodeparser "github.com/goliatone/go-relnotes/internal/shortcode/parser"
	"github.com/goliatone/go-relnotes/pkg/interfaces"
)

// BalancedShortcodesRule delegates to the shortcode service: tag errors from
// extraction (unterminated or mismatched blocks) and definition violations
// both surface as findings. Unknown shortcodes downgrade to warnings so new
// tags in the docs pipeline never block a release note.
type BalancedShortcodesRule struct {
	Service interfaces.ShortcodeService
}

func (BalancedShortcodesRule) Name() string { return "balanced_shortcodes" }

func (r BalancedShortcodesRule) Check(ctx context.Context, target *Target) []Finding {
	if r.Service == nil || target == nil || target.Document == nil {
		return nil
	}

	_, parsed, err := r.Service.Extract(ctx, string(target.Document.Body))
	if err != nil {
		line := 0
		var tagErr *shortcodeparser.TagError
		if errors.As(err, &tagErr) {
			line = tagErr.Line
		}
		return []Finding{{
			Severity: SeverityError,
			Message:  err.Error(),
			Line:     line,
		}}
	}

	var findings []Finding
	for _, issue := range r.Service.Validate(ctx, parsed) {
		severity := SeverityError
		if issue.Unknown {
			severity = SeverityWarning
		}
		findings = append(findings, Finding{
			Severity: severity,
			Message:  issue.Message,
			Line:     issue.Line,
		})
	}
	return findings
}
