package commands

import (
	"testing"

	catalogcmd "github.com/goliatone/go-relnotes/internal/commands/catalog"
	notescmd "github.com/goliatone/go-relnotes/internal/commands/notes"
	"github.com/goliatone/go-relnotes/internal/di"
	"github.com/goliatone/go-relnotes/internal/runtimeconfig"
	command "github.com/goliatone/go-command"
)

func TestRegisterContainerCommandsBuildsHandlers(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Commands.Enabled = true
	cfg.Commands.AutoRegisterCron = true
	cfg.Commands.LintCron = "@daily"
	cfg.Commands.IndexCron = "@hourly"
	cfg.Markdown.DefaultVersion = "v0.5.0"

	registry := &recordingRegistry{}
	dispatcher := &recordingDispatcher{}
	cron := &recordingCron{}

	container, err := di.NewContainer(cfg)
	if err != nil {
		t.Fatalf("new container: %v", err)
	}

	result, err := RegisterContainerCommands(container, RegistrationOptions{
		Registry:      registry,
		Dispatcher:    dispatcher,
		CronRegistrar: cron.Registrar(),
	})
	if err != nil {
		t.Fatalf("register commands: %v", err)
	}

	if len(result.Handlers) != 5 {
		t.Fatalf("expected lint file/tree, extract, scaffold and index handlers, got %d", len(result.Handlers))
	}
	if len(result.Handlers) != len(registry.handlers) {
		t.Fatalf("expected registry to record all handlers, got %d of %d", len(registry.handlers), len(result.Handlers))
	}
	if len(dispatcher.subscriptions) != len(result.Handlers) {
		t.Fatalf("expected a dispatcher subscription per handler, got %d", len(dispatcher.subscriptions))
	}
	if len(cron.registrations) != 2 {
		t.Fatalf("expected lint and index cron registrations, got %d", len(cron.registrations))
	}
	if got := cron.registrations[0].config.Expression; got != "@daily" {
		t.Fatalf("expected lint cron expression, got %q", got)
	}
	if got := cron.registrations[1].config.Expression; got != "@hourly" {
		t.Fatalf("expected index cron expression, got %q", got)
	}
}

func TestRegisterContainerCommandsWithoutRegistrars(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Commands.Enabled = true

	container, err := di.NewContainer(cfg)
	if err != nil {
		t.Fatalf("new container: %v", err)
	}

	result, err := RegisterContainerCommands(container, RegistrationOptions{})
	if err != nil {
		t.Fatalf("register commands: %v", err)
	}
	if len(result.Handlers) == 0 {
		t.Fatal("expected handlers to be built even without registrars")
	}
	if len(result.Subscriptions) != 0 {
		t.Fatalf("expected no dispatcher subscriptions without dispatcher, got %d", len(result.Subscriptions))
	}
}

func TestRegisterContainerCommandsDisabledSurface(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()

	container, err := di.NewContainer(cfg)
	if err != nil {
		t.Fatalf("new container: %v", err)
	}

	result, err := RegisterContainerCommands(container, RegistrationOptions{})
	if err != nil {
		t.Fatalf("register commands: %v", err)
	}
	if len(result.Handlers) != 0 {
		t.Fatalf("expected no handlers while commands are disabled, got %d", len(result.Handlers))
	}
}

func TestRegisterContainerCommandsSkipsScaffoldWhenDisabled(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Commands.Enabled = true
	cfg.Features.Scaffold = false

	container, err := di.NewContainer(cfg)
	if err != nil {
		t.Fatalf("new container: %v", err)
	}

	result, err := RegisterContainerCommands(container, RegistrationOptions{})
	if err != nil {
		t.Fatalf("register commands: %v", err)
	}

	var hasExtract bool
	for _, handler := range result.Handlers {
		switch handler.(type) {
		case *notescmd.ScaffoldHandler:
			t.Fatal("expected scaffold handler not to be registered when scaffolding is disabled")
		case *notescmd.ExtractHandler:
			hasExtract = true
		}
	}
	if !hasExtract {
		t.Fatal("expected extract handler to stay registered")
	}
}

func TestRegisterContainerCommandsSkipsLintWhenDisabled(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Commands.Enabled = true
	cfg.Features.Lint = false

	container, err := di.NewContainer(cfg)
	if err != nil {
		t.Fatalf("new container: %v", err)
	}

	result, err := RegisterContainerCommands(container, RegistrationOptions{})
	if err != nil {
		t.Fatalf("register commands: %v", err)
	}

	var hasIndex bool
	for _, handler := range result.Handlers {
		switch handler.(type) {
		case *notescmd.LintFileHandler, *notescmd.LintTreeHandler:
			t.Fatal("expected lint handlers not to be registered when linting is disabled")
		case *catalogcmd.IndexHandler:
			hasIndex = true
		}
	}
	if !hasIndex {
		t.Fatal("expected index handler to stay registered")
	}
}

func TestRegisterContainerCommandsSkipsCronWithoutPayload(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Commands.Enabled = true
	cfg.Commands.AutoRegisterCron = true
	cfg.Commands.IndexCron = "@hourly"
	// No default version configured, so the index job has nothing to rebuild.

	cron := &recordingCron{}

	container, err := di.NewContainer(cfg)
	if err != nil {
		t.Fatalf("new container: %v", err)
	}

	if _, err := RegisterContainerCommands(container, RegistrationOptions{CronRegistrar: cron.Registrar()}); err != nil {
		t.Fatalf("register commands: %v", err)
	}
	if len(cron.registrations) != 0 {
		t.Fatalf("expected no cron registrations without payloads, got %d", len(cron.registrations))
	}
}

type recordingRegistry struct {
	handlers []any
}

func (r *recordingRegistry) RegisterCommand(handler any) error {
	r.handlers = append(r.handlers, handler)
	return nil
}

type cronRegistration struct {
	config  command.HandlerConfig
	handler func() error
}

type recordingCron struct {
	registrations []cronRegistration
	err           error
}

func (c *recordingCron) Registrar() CronRegistrar {
	return func(cfg command.HandlerConfig, handler any) error {
		if c.err != nil {
			return c.err
		}
		var fn func() error
		if h, ok := handler.(func() error); ok {
			fn = h
		}
		c.registrations = append(c.registrations, cronRegistration{
			config:  cfg,
			handler: fn,
		})
		return nil
	}
}

type recordingDispatcher struct {
	handlers      []any
	subscriptions []*recordingSubscription
	err           error
}

func (d *recordingDispatcher) RegisterCommand(handler any) (CommandSubscription, error) {
	if d.err != nil {
		return nil, d.err
	}
	d.handlers = append(d.handlers, handler)
	sub := &recordingSubscription{handler: handler}
	d.subscriptions = append(d.subscriptions, sub)
	return sub, nil
}

type recordingSubscription struct {
	handler      any
	unsubscribed bool
}

func (s *recordingSubscription) Unsubscribe() {
	s.unsubscribed = true
}
