package lint

import (
	"context"
	"fmt"

	"github.com/yuin/goldmark/ast"

	"github.com/goliatone/go-relnotes/internal/markdown"
)

// SectionBulletsRule requires every second-level heading to introduce a
// non-empty bullet list before the next heading or end of file.
type SectionBulletsRule struct{}

func (SectionBulletsRule) Name() string { return "section_bullets" }

func (SectionBulletsRule) Check(_ context.Context, target *Target) []Finding {
	if target == nil || target.AST == nil {
		return nil
	}

	var findings []Finding
	for node := target.AST.FirstChild(); node != nil; node = node.NextSibling() {
		heading, ok := node.(*ast.Heading)
		if !ok || heading.Level != 2 {
			continue
		}
		if sectionHasBullets(heading, target.Source) {
			continue
		}
		findings = append(findings, Finding{
			Severity: SeverityError,
			Message:  fmt.Sprintf("section %q has no bullet items", markdown.InlineText(heading, target.Source)),
			Line:     markdown.NodeLine(heading, target.Source),
		})
	}
	return findings
}

func sectionHasBullets(heading ast.Node, source []byte) bool {
	for sibling := heading.NextSibling(); sibling != nil; sibling = sibling.NextSibling() {
		if _, isHeading := sibling.(*ast.Heading); isHeading {
			return false
		}
		list, isList := sibling.(*ast.List)
		if !isList || list.IsOrdered() {
			continue
		}
		if len(markdown.ListItems(list, source)) > 0 {
			return true
		}
	}
	return false
}
