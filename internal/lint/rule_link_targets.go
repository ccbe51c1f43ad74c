package lint

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-relnotes/internal/markdown"
)

// LinkTargetsRule flags link destinations that are not absolute http(s)
// URLs. Site-relative paths and fragment anchors stay valid after publishing
// and pass; bare domains and other schemes get a warning so authors fix them
// before the docs build rewrites links.
type LinkTargetsRule struct{}

func (LinkTargetsRule) Name() string { return "link_targets" }

func (LinkTargetsRule) Check(_ context.Context, target *Target) []Finding {
	if target == nil || target.AST == nil {
		return nil
	}

	var findings []Finding
	for _, link := range markdown.Links(target.AST, target.Source) {
		url := strings.TrimSpace(link.URL)
		if url == "" {
			findings = append(findings, Finding{
				Severity: SeverityWarning,
				Message:  fmt.Sprintf("link %q has an empty target", link.Text),
				Line:     link.Line,
			})
			continue
		}
		if strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://") {
			continue
		}
		if strings.HasPrefix(url, "/") || strings.HasPrefix(url, "#") {
			continue
		}
		findings = append(findings, Finding{
			Severity: SeverityWarning,
			Message:  fmt.Sprintf("link target %q is not an absolute http(s) URL", url),
			Line:     link.Line,
		})
	}
	return findings
}
