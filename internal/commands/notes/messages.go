package notescmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-relnotes/internal/generator"
	"github.com/goliatone/go-relnotes/notes"
)

const (
	lintFileMessageType = "relnotes.notes.lint_file"
	lintTreeMessageType = "relnotes.notes.lint_tree"
	extractMessageType  = "relnotes.notes.extract"
	scaffoldMessageType = "relnotes.notes.scaffold"
)

func nonBlank(code, message string) validation.Rule {
	return validation.By(func(value any) error {
		s, _ := value.(string)
		if strings.TrimSpace(s) == "" {
			return validation.NewError(code, message)
		}
		return nil
	})
}

// LintFileCommand runs the structural rules over a single release-note file.
// The command fails when the document carries error-severity findings, so
// dispatch pipelines and schedulers surface regressions.
type LintFileCommand struct {
	// Path selects the markdown file to lint, relative to the content filesystem.
	Path string `json:"path"`
}

// Type implements command.Message.
func (LintFileCommand) Type() string { return lintFileMessageType }

// Validate ensures a path is present before handlers execute.
func (cmd LintFileCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Path, validation.Required,
			nonBlank("relnotes.notes.lint_file.path_required", "path is required")),
	)
}

// LintTreeCommand lints every discovered document under Dir. The command
// fails when any document carries error-severity findings.
type LintTreeCommand struct {
	// Dir selects the directory to walk, relative to the content filesystem.
	Dir string `json:"dir"`
}

// Type implements command.Message.
func (LintTreeCommand) Type() string { return lintTreeMessageType }

// Validate ensures a directory is present before handlers execute.
func (cmd LintTreeCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Dir, validation.Required,
			nonBlank("relnotes.notes.lint_tree.dir_required", "dir is required")),
	)
}

// ExtractCommand parses a release-note file into its structured form and logs
// a summary. It acts as a parse gate: the command fails when the document
// does not extract cleanly.
type ExtractCommand struct {
	// Path selects the markdown file to parse, relative to the content filesystem.
	Path string `json:"path"`
}

// Type implements command.Message.
func (ExtractCommand) Type() string { return extractMessageType }

// Validate ensures a path is present before handlers execute.
func (cmd ExtractCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Path, validation.Required,
			nonBlank("relnotes.notes.extract.path_required", "path is required")),
	)
}

// ScaffoldCommand renders a release-note scaffold and writes it to disk.
// Structural validation of the note content happens in the generator; the
// message only guarantees a version is present.
type ScaffoldCommand struct {
	// Version names the release, with or without a leading "v".
	Version string `json:"version"`
	// Date is the free-form release date rendered into the callout.
	Date string `json:"date,omitempty"`
	// NoteType overrides the configured callout flavour.
	NoteType string `json:"note_type,omitempty"`
	// Highlights are rendered as bullet items inside the callout.
	Highlights []string `json:"highlights,omitempty"`
	// Sections are the H2 groups with their bullet items.
	Sections []generator.SectionInput `json:"sections,omitempty"`
	// Links are appended to the callout, announcement first.
	Links []notes.Link `json:"links,omitempty"`
	// Dir overrides the configured output directory.
	Dir string `json:"dir,omitempty"`
	// Force allows overwriting an existing note file.
	Force bool `json:"force,omitempty"`
}

// Type implements command.Message.
func (ScaffoldCommand) Type() string { return scaffoldMessageType }

// Validate ensures a version is present before handlers execute.
func (cmd ScaffoldCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Version, validation.Required,
			nonBlank("relnotes.notes.scaffold.version_required", "version is required")),
	)
}
