package runtimeconfig_test

import (
	"errors"
	"testing"

	"github.com/goliatone/go-relnotes/internal/runtimeconfig"
)

func TestConfigValidate_DefaultsPass(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() returned unexpected error: %v", err)
	}
}

func TestConfigValidate_AllowsDisabledScaffoldWithoutOutput(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Scaffold = false
	cfg.Generator.OutputDir = ""

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() returned unexpected error: %v", err)
	}
}

func TestConfigValidate_RequiresOutputDirWhenScaffoldEnabled(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Generator.OutputDir = " "

	err := cfg.Validate()
	if !errors.Is(err, runtimeconfig.ErrGeneratorOutputDirRequired) {
		t.Fatalf("expected ErrGeneratorOutputDirRequired, got %v", err)
	}
}

func TestConfigValidate_RequiresContentDirForTreeFeatures(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Markdown.ContentDir = ""

	err := cfg.Validate()
	if !errors.Is(err, runtimeconfig.ErrMarkdownContentDirRequired) {
		t.Fatalf("expected ErrMarkdownContentDirRequired, got %v", err)
	}
}

func TestConfigValidate_AllowsBlankContentDirWhenTreeFeaturesDisabled(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Markdown.ContentDir = ""
	cfg.Features.Lint = false
	cfg.Features.Catalog = false
	cfg.Cache.Enabled = false

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() returned unexpected error: %v", err)
	}
}

func TestConfigValidate_RequiresBaseIndexWhenCatalogEnabled(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Catalog.BaseIndex = " "

	err := cfg.Validate()
	if !errors.Is(err, runtimeconfig.ErrCatalogBaseIndexRequired) {
		t.Fatalf("expected ErrCatalogBaseIndexRequired, got %v", err)
	}
}

func TestConfigValidate_CacheRequiresCatalog(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Catalog = false

	err := cfg.Validate()
	if !errors.Is(err, runtimeconfig.ErrCacheRequiresCatalog) {
		t.Fatalf("expected ErrCacheRequiresCatalog, got %v", err)
	}
}

func TestConfigValidate_RejectsNegativeWorkers(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Generator.Workers = -1

	err := cfg.Validate()
	if !errors.Is(err, runtimeconfig.ErrGeneratorWorkersInvalid) {
		t.Fatalf("expected ErrGeneratorWorkersInvalid, got %v", err)
	}
}

func TestConfigValidate_CronRequiresCommands(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Commands.Enabled = false
	cfg.Commands.AutoRegisterCron = true

	err := cfg.Validate()
	if !errors.Is(err, runtimeconfig.ErrCommandsCronRequiresCommands) {
		t.Fatalf("expected ErrCommandsCronRequiresCommands, got %v", err)
	}
}

func TestConfigValidate_RequiresLoggingProviderWhenFeatureEnabled(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Logger = true
	cfg.Logging.Provider = ""

	err := cfg.Validate()
	if !errors.Is(err, runtimeconfig.ErrLoggingProviderRequired) {
		t.Fatalf("expected ErrLoggingProviderRequired, got %v", err)
	}
}

func TestConfigValidate_RejectsUnknownLoggingProvider(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Logger = true
	cfg.Logging.Provider = "syslog"

	err := cfg.Validate()
	if !errors.Is(err, runtimeconfig.ErrLoggingProviderUnknown) {
		t.Fatalf("expected ErrLoggingProviderUnknown, got %v", err)
	}
}

func TestConfigValidate_RejectsInvalidLoggingLevel(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Logger = true
	cfg.Logging.Provider = "console"
	cfg.Logging.Level = "verbose"

	err := cfg.Validate()
	if !errors.Is(err, runtimeconfig.ErrLoggingLevelInvalid) {
		t.Fatalf("expected ErrLoggingLevelInvalid, got %v", err)
	}
}

func TestConfigValidate_RejectsInvalidLoggingFormat(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Logger = true
	cfg.Logging.Provider = "gologger"
	cfg.Logging.Format = "xml"

	err := cfg.Validate()
	if !errors.Is(err, runtimeconfig.ErrLoggingFormatInvalid) {
		t.Fatalf("expected ErrLoggingFormatInvalid, got %v", err)
	}
}
