package lint

import (
	"context"
	"fmt"

	"github.com/goliatone/go-relnotes/internal/validation"
)

// frontmatterSchema is the contract release-note frontmatter must satisfy
// when present. Extra keys are allowed so docs-site metadata passes through.
var frontmatterSchema = map[string]any{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"type":    "object",
	"properties": map[string]any{
		"title": map[string]any{
			"type":      "string",
			"minLength": 1,
		},
		"slug": map[string]any{
			"type":    "string",
			"pattern": "^/[A-Za-z0-9._/-]*$",
		},
		"description": map[string]any{
			"type": "string",
		},
		"collate": map[string]any{
			"type": "boolean",
		},
	},
	"required": []any{"title"},
}

// FrontmatterSchemaRule validates present frontmatter against the embedded
// JSON Schema. Documents without frontmatter pass.
type FrontmatterSchemaRule struct{}

func (FrontmatterSchemaRule) Name() string { return "frontmatter_schema" }

func (FrontmatterSchemaRule) Check(_ context.Context, target *Target) []Finding {
	if target == nil || target.Document == nil {
		return nil
	}
	raw := target.Document.FrontMatter.Raw
	if len(raw) == 0 {
		return nil
	}

	err := validation.ValidatePayload(frontmatterSchema, raw)
	if err == nil {
		return nil
	}

	var findings []Finding
	for _, issue := range validation.Issues(err) {
		message := issue.Message
		if issue.Location != "" {
			message = fmt.Sprintf("%s: %s", issue.Location, issue.Message)
		}
		findings = append(findings, Finding{
			Severity: SeverityError,
			Message:  "frontmatter " + message,
			Line:     1,
		})
	}
	if len(findings) == 0 {
		findings = append(findings, Finding{
			Severity: SeverityError,
			Message:  "frontmatter " + err.Error(),
			Line:     1,
		})
	}
	return findings
}
