package notescmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-relnotes/internal/commands"
	"github.com/goliatone/go-relnotes/internal/generator"
	"github.com/goliatone/go-relnotes/internal/logging"
	"github.com/goliatone/go-relnotes/lint"
	"github.com/goliatone/go-relnotes/notes"
	"github.com/goliatone/go-relnotes/pkg/interfaces"
	command "github.com/goliatone/go-command"
)

const (
	lintFileOperation = "notes.lint_file"
	lintTreeOperation = "notes.lint_tree"
	extractOperation  = "notes.extract"
	scaffoldOperation = "notes.scaffold"
)

var (
	// ErrLintFeatureDisabled is returned when the lint feature flag is disabled at runtime.
	ErrLintFeatureDisabled = errors.New("notes command: lint feature disabled")
	// ErrScaffoldFeatureDisabled is returned when the scaffold feature flag is disabled at runtime.
	ErrScaffoldFeatureDisabled = errors.New("notes command: scaffold feature disabled")
)

var (
	_ command.Commander[LintFileCommand] = (*LintFileHandler)(nil)
	_ command.Commander[LintTreeCommand] = (*LintTreeHandler)(nil)
	_ command.Commander[ExtractCommand]  = (*ExtractHandler)(nil)
	_ command.Commander[ScaffoldCommand] = (*ScaffoldHandler)(nil)
)

// LintFileHandler lints one document via the shared command handler foundation.
type LintFileHandler struct {
	inner *commands.Handler[LintFileCommand]
}

// NewLintFileHandler creates a handler bound to the supplied lint service.
func NewLintFileHandler(service lint.Service, logger interfaces.Logger, gates FeatureGates, opts ...commands.HandlerOption[LintFileCommand]) *LintFileHandler {
	baseLogger := commands.EnsureLogger(logger)

	exec := func(ctx context.Context, msg LintFileCommand) error {
		if !gates.lintEnabled() {
			return ErrLintFeatureDisabled
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		report, err := service.LintFile(ctx, msg.Path)
		if err != nil {
			return err
		}
		if report != nil {
			errCount, warnCount := report.Counts()
			logging.WithFields(baseLogger, map[string]any{
				"path":          report.Path,
				"version":       report.Version,
				"error_count":   errCount,
				"warning_count": warnCount,
			}).Info("notes.command.lint_file.completed")
		}
		return report.Err()
	}

	handlerOpts := []commands.HandlerOption[LintFileCommand]{
		commands.WithLogger[LintFileCommand](baseLogger),
		commands.WithOperation[LintFileCommand](lintFileOperation),
		commands.WithMessageFields(func(msg LintFileCommand) map[string]any {
			return map[string]any{"path": msg.Path}
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[LintFileCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &LintFileHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[LintFileCommand].
func (h *LintFileHandler) Execute(ctx context.Context, msg LintFileCommand) error {
	return h.inner.Execute(ctx, msg)
}

// LintTreeHandler lints every document under a directory via the shared
// command handler foundation.
type LintTreeHandler struct {
	inner *commands.Handler[LintTreeCommand]
}

// NewLintTreeHandler creates a handler bound to the supplied lint service.
func NewLintTreeHandler(service lint.Service, logger interfaces.Logger, gates FeatureGates, opts ...commands.HandlerOption[LintTreeCommand]) *LintTreeHandler {
	baseLogger := commands.EnsureLogger(logger)

	exec := func(ctx context.Context, msg LintTreeCommand) error {
		if !gates.lintEnabled() {
			return ErrLintFeatureDisabled
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		reports, err := service.LintTree(ctx, msg.Dir)
		if err != nil {
			return err
		}

		var errTotal, warnTotal, failedDocs int
		for _, report := range reports {
			errCount, warnCount := report.Counts()
			errTotal += errCount
			warnTotal += warnCount
			if errCount > 0 {
				failedDocs++
			}
		}
		logging.WithFields(baseLogger, map[string]any{
			"dir":              msg.Dir,
			"documents":        len(reports),
			"failed_documents": failedDocs,
			"error_count":      errTotal,
			"warning_count":    warnTotal,
		}).Info("notes.command.lint_tree.completed")

		if failedDocs > 0 {
			return fmt.Errorf("lint: %d of %d documents have error findings", failedDocs, len(reports))
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[LintTreeCommand]{
		commands.WithLogger[LintTreeCommand](baseLogger),
		commands.WithOperation[LintTreeCommand](lintTreeOperation),
		commands.WithMessageFields(func(msg LintTreeCommand) map[string]any {
			return map[string]any{"dir": msg.Dir}
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[LintTreeCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &LintTreeHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[LintTreeCommand].
func (h *LintTreeHandler) Execute(ctx context.Context, msg LintTreeCommand) error {
	return h.inner.Execute(ctx, msg)
}

// ExtractHandler parses one document via the shared command handler
// foundation. Parsing is always available, so the handler takes no gates.
type ExtractHandler struct {
	inner *commands.Handler[ExtractCommand]
}

// NewExtractHandler creates a handler bound to the supplied notes service.
func NewExtractHandler(service notes.Service, logger interfaces.Logger, opts ...commands.HandlerOption[ExtractCommand]) *ExtractHandler {
	baseLogger := commands.EnsureLogger(logger)

	exec := func(ctx context.Context, msg ExtractCommand) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		note, err := service.ParseFile(ctx, msg.Path)
		if err != nil {
			return err
		}
		if note != nil {
			logging.WithFields(baseLogger, map[string]any{
				"path":            msg.Path,
				"version":         note.Version,
				"section_count":   len(note.Sections),
				"connector_count": len(note.Connectors),
				"link_count":      len(note.Links),
			}).Info("notes.command.extract.completed")
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[ExtractCommand]{
		commands.WithLogger[ExtractCommand](baseLogger),
		commands.WithOperation[ExtractCommand](extractOperation),
		commands.WithMessageFields(func(msg ExtractCommand) map[string]any {
			return map[string]any{"path": msg.Path}
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[ExtractCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &ExtractHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[ExtractCommand].
func (h *ExtractHandler) Execute(ctx context.Context, msg ExtractCommand) error {
	return h.inner.Execute(ctx, msg)
}

// ScaffoldHandler writes release-note scaffolds via the shared command
// handler foundation.
type ScaffoldHandler struct {
	inner *commands.Handler[ScaffoldCommand]
}

// NewScaffoldHandler creates a handler bound to the supplied generator service.
func NewScaffoldHandler(service generator.Service, logger interfaces.Logger, gates FeatureGates, opts ...commands.HandlerOption[ScaffoldCommand]) *ScaffoldHandler {
	baseLogger := commands.EnsureLogger(logger)

	exec := func(ctx context.Context, msg ScaffoldCommand) error {
		if !gates.scaffoldEnabled() {
			return ErrScaffoldFeatureDisabled
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		in := generator.Input{
			Version:    msg.Version,
			Date:       msg.Date,
			NoteType:   msg.NoteType,
			Highlights: msg.Highlights,
			Sections:   msg.Sections,
			Links:      msg.Links,
		}
		target, err := service.Write(ctx, in, generator.WriteOptions{
			Dir:   msg.Dir,
			Force: msg.Force,
		})
		if err != nil {
			return err
		}
		logging.WithFields(baseLogger, map[string]any{
			"version": msg.Version,
			"target":  target,
			"force":   msg.Force,
		}).Info("notes.command.scaffold.completed")
		return nil
	}

	handlerOpts := []commands.HandlerOption[ScaffoldCommand]{
		commands.WithLogger[ScaffoldCommand](baseLogger),
		commands.WithOperation[ScaffoldCommand](scaffoldOperation),
		commands.WithMessageFields(func(msg ScaffoldCommand) map[string]any {
			fields := map[string]any{
				"version": msg.Version,
			}
			if msg.Dir != "" {
				fields["dir"] = msg.Dir
			}
			if msg.Force {
				fields["force"] = true
			}
			if len(msg.Sections) > 0 {
				fields["section_count"] = len(msg.Sections)
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[ScaffoldCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &ScaffoldHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[ScaffoldCommand].
func (h *ScaffoldHandler) Execute(ctx context.Context, msg ScaffoldCommand) error {
	return h.inner.Execute(ctx, msg)
}
