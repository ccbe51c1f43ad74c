package di

import (
	"testing"

	"github.com/goliatone/go-relnotes/internal/logging/gologger"
	"github.com/goliatone/go-relnotes/internal/runtimeconfig"
)

func TestConfigureLoggerProviderUsesGoLoggerAdapter(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Logger = true
	cfg.Logging.Provider = "gologger"
	cfg.Logging.Level = "debug"
	cfg.Logging.Format = "json"

	container, err := NewContainer(cfg)
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}

	provider, ok := container.loggerProvider.(*gologger.Provider)
	if !ok {
		t.Fatalf("expected go-logger provider, got %T", container.loggerProvider)
	}

	logger := provider.GetLogger("relnotes.test")
	if logger == nil {
		t.Fatal("expected logger from go-logger provider, got nil")
	}
}

func TestConfigureLoggerProviderDefaultsToConsole(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()

	container, err := NewContainer(cfg)
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}

	if container.loggerProvider == nil {
		t.Fatal("expected a default logger provider")
	}
	if _, ok := container.loggerProvider.(*gologger.Provider); ok {
		t.Fatal("expected the console provider by default, not gologger")
	}
}

func TestConfigureCacheDefaults(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()

	container, err := NewContainer(cfg)
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}

	if container.cacheService == nil {
		t.Fatal("expected cache service when caching is enabled")
	}
	if container.keySerializer == nil {
		t.Fatal("expected key serializer when caching is enabled")
	}
}

func TestConfigureCacheDisabled(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Cache.Enabled = false

	container, err := NewContainer(cfg)
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}

	if container.cacheService != nil {
		t.Fatalf("expected no cache service, got %T", container.cacheService)
	}
}
