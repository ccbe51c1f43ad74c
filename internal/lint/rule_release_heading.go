package lint

import (
	"context"
	"fmt"
	"regexp"

	"github.com/goliatone/go-relnotes/internal/markdown"
)

// releaseHeadingPattern matches release titles such as "0.5.0 Release".
var releaseHeadingPattern = regexp.MustCompile(`^v?(\d+(?:\.\d+)*)\s+Release$`)

// ReleaseHeadingRule enforces a single top-level "<version> Release" heading.
// When the document carries a detected version, the heading version must
// agree with it.
type ReleaseHeadingRule struct{}

func (ReleaseHeadingRule) Name() string { return "release_heading" }

func (ReleaseHeadingRule) Check(_ context.Context, target *Target) []Finding {
	if target == nil || target.AST == nil {
		return nil
	}

	var top []markdown.HeadingInfo
	for _, heading := range markdown.Headings(target.AST, target.Source) {
		if heading.Level == 1 {
			top = append(top, heading)
		}
	}

	if len(top) == 0 {
		return []Finding{{
			Severity: SeverityError,
			Message:  `document has no top level heading, expected exactly one "<version> Release" title`,
			Line:     1,
		}}
	}

	var findings []Finding
	for _, extra := range top[1:] {
		findings = append(findings, Finding{
			Severity: SeverityError,
			Message:  fmt.Sprintf("unexpected extra top level heading %q", extra.Text),
			Line:     extra.Line,
		})
	}

	title := top[0]
	match := releaseHeadingPattern.FindStringSubmatch(title.Text)
	if match == nil {
		findings = append(findings, Finding{
			Severity: SeverityError,
			Message:  fmt.Sprintf(`release heading %q does not match "<version> Release"`, title.Text),
			Line:     title.Line,
		})
		return findings
	}

	docVersion := ""
	if target.Document != nil {
		docVersion = markdown.NormalizeVersion(target.Document.Version)
	}
	if docVersion != "" && docVersion != match[1] {
		findings = append(findings, Finding{
			Severity: SeverityError,
			Message:  fmt.Sprintf("release heading version %s does not match document version %s", match[1], docVersion),
			Line:     title.Line,
		})
	}

	return findings
}
