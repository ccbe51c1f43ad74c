package catalogcmd

import (
	"context"
	"errors"

	"github.com/goliatone/go-relnotes/catalog"
	"github.com/goliatone/go-relnotes/internal/commands"
	"github.com/goliatone/go-relnotes/pkg/interfaces"
	command "github.com/goliatone/go-command"
)

// CommandRegistry is the minimal registration contract expected when wiring command handlers.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// CronRegistrar matches the function signature used by go-command registries.
type CronRegistrar func(command.HandlerConfig, any) error

// HandlerSet groups the catalog command handlers produced by RegisterCatalogCommands.
type HandlerSet struct {
	Index *IndexHandler
}

// Option customises handler wiring during registration.
type Option func(*options)

type options struct {
	indexHandlerOpts []commands.HandlerOption[IndexCommand]
}

// WithIndexHandlerOptions forwards options to the IndexHandler constructor.
func WithIndexHandlerOptions(opts ...commands.HandlerOption[IndexCommand]) Option {
	return func(cfg *options) {
		cfg.indexHandlerOpts = append(cfg.indexHandlerOpts, opts...)
	}
}

// RegisterCatalogCommands builds the catalog command handlers and registers
// them with the provided registry.
func RegisterCatalogCommands(reg CommandRegistry, service catalog.Service, provider interfaces.LoggerProvider, gates FeatureGates, opts ...Option) (*HandlerSet, error) {
	if service == nil {
		return nil, errors.New("catalog command registration: service is nil")
	}

	cfg := options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	logger := commands.CommandLogger(provider, "catalog")

	indexHandler := NewIndexHandler(service, logger, gates, cfg.indexHandlerOpts...)

	if reg != nil {
		if err := reg.RegisterCommand(indexHandler); err != nil {
			return nil, err
		}
	}

	return &HandlerSet{
		Index: indexHandler,
	}, nil
}

// RegisterIndexCron wires the index handler into a cron registrar using the
// supplied command configuration and message payload. The handler is executed
// with a background context.
func RegisterIndexCron(reg CronRegistrar, handler *IndexHandler, cfg command.HandlerConfig, msg IndexCommand) error {
	if reg == nil || handler == nil {
		return nil
	}
	return reg(cfg, func() error {
		return handler.Execute(context.Background(), msg)
	})
}
