package notescmd

import (
	"context"
	"errors"

	"github.com/goliatone/go-relnotes/internal/commands"
	"github.com/goliatone/go-relnotes/internal/generator"
	"github.com/goliatone/go-relnotes/lint"
	"github.com/goliatone/go-relnotes/notes"
	"github.com/goliatone/go-relnotes/pkg/interfaces"
	command "github.com/goliatone/go-command"
)

// CommandRegistry is the minimal registration contract expected when wiring command handlers.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// CronRegistrar matches the function signature used by go-command registries.
type CronRegistrar func(command.HandlerConfig, any) error

// HandlerSet groups the release-note command handlers produced by RegisterNoteCommands.
type HandlerSet struct {
	LintFile *LintFileHandler
	LintTree *LintTreeHandler
	Extract  *ExtractHandler
	Scaffold *ScaffoldHandler
}

// Option customises handler wiring during registration.
type Option func(*options)

type options struct {
	lintFileHandlerOpts []commands.HandlerOption[LintFileCommand]
	lintTreeHandlerOpts []commands.HandlerOption[LintTreeCommand]
	extractHandlerOpts  []commands.HandlerOption[ExtractCommand]
	scaffoldHandlerOpts []commands.HandlerOption[ScaffoldCommand]
}

// WithLintFileHandlerOptions forwards options to the LintFileHandler constructor.
func WithLintFileHandlerOptions(opts ...commands.HandlerOption[LintFileCommand]) Option {
	return func(cfg *options) {
		cfg.lintFileHandlerOpts = append(cfg.lintFileHandlerOpts, opts...)
	}
}

// WithLintTreeHandlerOptions forwards options to the LintTreeHandler constructor.
func WithLintTreeHandlerOptions(opts ...commands.HandlerOption[LintTreeCommand]) Option {
	return func(cfg *options) {
		cfg.lintTreeHandlerOpts = append(cfg.lintTreeHandlerOpts, opts...)
	}
}

// WithExtractHandlerOptions forwards options to the ExtractHandler constructor.
func WithExtractHandlerOptions(opts ...commands.HandlerOption[ExtractCommand]) Option {
	return func(cfg *options) {
		cfg.extractHandlerOpts = append(cfg.extractHandlerOpts, opts...)
	}
}

// WithScaffoldHandlerOptions forwards options to the ScaffoldHandler constructor.
func WithScaffoldHandlerOptions(opts ...commands.HandlerOption[ScaffoldCommand]) Option {
	return func(cfg *options) {
		cfg.scaffoldHandlerOpts = append(cfg.scaffoldHandlerOpts, opts...)
	}
}

// RegisterNoteCommands builds the release-note command handlers and registers
// them with the provided registry. A HandlerSet containing the constructed
// handlers is returned so callers can wire additional integrations
// (dispatcher, cron) as needed.
func RegisterNoteCommands(reg CommandRegistry, lintService lint.Service, notesService notes.Service, scaffolds generator.Service, provider interfaces.LoggerProvider, gates FeatureGates, opts ...Option) (*HandlerSet, error) {
	if lintService == nil {
		return nil, errors.New("note command registration: lint service is nil")
	}
	if notesService == nil {
		return nil, errors.New("note command registration: notes service is nil")
	}
	if scaffolds == nil {
		return nil, errors.New("note command registration: generator service is nil")
	}

	cfg := options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	logger := commands.CommandLogger(provider, "notes")

	set := &HandlerSet{
		LintFile: NewLintFileHandler(lintService, logger, gates, cfg.lintFileHandlerOpts...),
		LintTree: NewLintTreeHandler(lintService, logger, gates, cfg.lintTreeHandlerOpts...),
		Extract:  NewExtractHandler(notesService, logger, cfg.extractHandlerOpts...),
		Scaffold: NewScaffoldHandler(scaffolds, logger, gates, cfg.scaffoldHandlerOpts...),
	}

	if reg != nil {
		for _, handler := range []any{set.LintFile, set.LintTree, set.Extract, set.Scaffold} {
			if err := reg.RegisterCommand(handler); err != nil {
				return nil, err
			}
		}
	}

	return set, nil
}

// RegisterLintCron wires the tree lint handler into a cron registrar using the
// supplied command configuration and message payload. The handler is executed
// with a background context.
func RegisterLintCron(reg CronRegistrar, handler *LintTreeHandler, cfg command.HandlerConfig, msg LintTreeCommand) error {
	if reg == nil || handler == nil {
		return nil
	}
	return reg(cfg, func() error {
		return handler.Execute(context.Background(), msg)
	})
}
