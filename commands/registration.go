package commands

import (
	"errors"
	"strings"

	internalcmd "github.com/goliatone/go-relnotes/internal/commands"
	catalogcmd "github.com/goliatone/go-relnotes/internal/commands/catalog"
	notescmd "github.com/goliatone/go-relnotes/internal/commands/notes"
	"github.com/goliatone/go-relnotes/internal/di"
	"github.com/goliatone/go-relnotes/pkg/interfaces"
	command "github.com/goliatone/go-command"
)

// CommandRegistry records command handlers so hosts can expose them via CLI or cron.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// CommandDispatcher subscribes command handlers to a dispatcher implementation.
type CommandDispatcher interface {
	RegisterCommand(handler any) (CommandSubscription, error)
}

// CommandSubscription allows hosts to tear down dispatcher subscriptions.
type CommandSubscription interface {
	Unsubscribe()
}

// CronRegistrar registers command handlers with a cron scheduler.
type CronRegistrar func(command.HandlerConfig, any) error

// RegistrationOptions configures how handlers are registered during construction.
type RegistrationOptions struct {
	Registry       CommandRegistry
	Dispatcher     CommandDispatcher
	CronRegistrar  CronRegistrar
	LoggerProvider interfaces.LoggerProvider
}

// RegistrationResult captures the constructed command handlers and any dispatcher subscriptions.
type RegistrationResult struct {
	Handlers      []any
	Subscriptions []CommandSubscription
}

// CommandLogger returns the scoped logger the built-in command handlers log
// through. Hosts can use it to keep their own handlers consistent.
func CommandLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	return internalcmd.CommandLogger(provider, module)
}

// RegisterContainerCommands builds the command handlers exposed by the provided
// container and optionally registers them with registry/dispatcher/cron
// integrations. Handlers follow the container's feature flags; cron jobs are
// wired from cfg.Commands when AutoRegisterCron is set. A disabled command
// surface yields an empty result.
func RegisterContainerCommands(container *di.Container, opts RegistrationOptions) (*RegistrationResult, error) {
	if container == nil {
		return &RegistrationResult{}, nil
	}

	cfg := container.Config
	if !cfg.Commands.Enabled {
		return &RegistrationResult{}, nil
	}

	provider := opts.LoggerProvider
	if provider == nil {
		provider = container.LoggerProvider()
	}

	result := &RegistrationResult{
		Handlers:      make([]any, 0),
		Subscriptions: make([]CommandSubscription, 0),
	}

	var errs error

	register := func(handler any) {
		if handler == nil {
			return
		}
		result.Handlers = append(result.Handlers, handler)

		if opts.Registry != nil {
			if err := opts.Registry.RegisterCommand(handler); err != nil {
				errs = errors.Join(errs, err)
			}
		}

		if opts.Dispatcher != nil {
			subscription, err := opts.Dispatcher.RegisterCommand(handler)
			if err != nil {
				errs = errors.Join(errs, err)
			} else if subscription != nil {
				result.Subscriptions = append(result.Subscriptions, subscription)
			}
		}
	}

	// Release-note commands.
	noteGates := notescmd.FeatureGates{
		LintEnabled:     func() bool { return cfg.Features.Lint },
		ScaffoldEnabled: func() bool { return cfg.Features.Scaffold },
	}
	noteSet, err := notescmd.RegisterNoteCommands(nil, container.LintService(), container.NotesService(), container.GeneratorService(), provider, noteGates)
	if err != nil {
		errs = errors.Join(errs, err)
	} else if noteSet != nil {
		if cfg.Features.Lint {
			register(noteSet.LintFile)
			register(noteSet.LintTree)
		}
		register(noteSet.Extract)
		if cfg.Features.Scaffold {
			register(noteSet.Scaffold)
		}
	}

	// Catalog commands.
	var catalogSet *catalogcmd.HandlerSet
	if cfg.Features.Catalog {
		gates := catalogcmd.FeatureGates{
			CatalogEnabled: func() bool { return cfg.Features.Catalog },
		}
		catalogSet, err = catalogcmd.RegisterCatalogCommands(nil, container.CatalogService(), provider, gates)
		if err != nil {
			errs = errors.Join(errs, err)
		} else if catalogSet != nil {
			register(catalogSet.Index)
		}
	}

	// Cron payloads come from configuration: the lint job walks the content
	// dir, the index job rebuilds the configured default version.
	if opts.CronRegistrar != nil && cfg.Commands.AutoRegisterCron {
		if noteSet != nil && cfg.Features.Lint {
			if expr := strings.TrimSpace(cfg.Commands.LintCron); expr != "" {
				err := notescmd.RegisterLintCron(
					notescmd.CronRegistrar(opts.CronRegistrar),
					noteSet.LintTree,
					command.HandlerConfig{Expression: expr},
					notescmd.LintTreeCommand{Dir: cfg.Markdown.ContentDir},
				)
				if err != nil {
					errs = errors.Join(errs, err)
				}
			}
		}
		if catalogSet != nil {
			expr := strings.TrimSpace(cfg.Commands.IndexCron)
			version := strings.TrimSpace(cfg.Markdown.DefaultVersion)
			if expr != "" && version != "" {
				err := catalogcmd.RegisterIndexCron(
					catalogcmd.CronRegistrar(opts.CronRegistrar),
					catalogSet.Index,
					command.HandlerConfig{Expression: expr},
					catalogcmd.IndexCommand{Version: version},
				)
				if err != nil {
					errs = errors.Join(errs, err)
				}
			}
		}
	}

	if errs != nil && len(result.Handlers) == 0 {
		return result, errs
	}

	if len(result.Handlers) == 0 {
		return result, errors.New("no command handlers registered; ensure services are configured and required features enabled")
	}

	return result, errs
}
