package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"

	urlkit "github.com/goliatone/go-urlkit"
)

// ErrMarkdownContentDirRequired indicates a tree-walking feature has no content root.
var ErrMarkdownContentDirRequired = errors.New("relnotes config: markdown content directory is required when lint or catalog is enabled")

// ErrGeneratorOutputDirRequired indicates scaffolding has nowhere to write.
var ErrGeneratorOutputDirRequired = errors.New("relnotes config: generator output directory is required when scaffolding is enabled")

// ErrCatalogBaseIndexRequired ensures the search index family is named when the catalog runs.
var ErrCatalogBaseIndexRequired = errors.New("relnotes config: catalog base index is required when catalog is enabled")

// ErrCacheRequiresCatalog ensures the repository cache only builds over catalog storage.
var ErrCacheRequiresCatalog = errors.New("relnotes config: cache requires the catalog feature to be enabled")

// ErrCommandsCronRequiresCommands ensures automatic cron wiring only runs when commands are enabled.
var ErrCommandsCronRequiresCommands = errors.New("relnotes config: command cron auto-registration requires commands to be enabled")
var ErrGeneratorWorkersInvalid = errors.New("relnotes config: generator workers must be zero or positive")
var ErrLoggingProviderRequired = errors.New("relnotes config: logging provider is required when logging feature is enabled")
var ErrLoggingProviderUnknown = errors.New("relnotes config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("relnotes config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("relnotes config: logging format is invalid")

// Config aggregates feature flags and adapter bindings for the release notes module.
// Fields intentionally use simple types so host applications can extend them later.
type Config struct {
	Enabled   bool
	Markdown  MarkdownConfig
	Generator GeneratorConfig
	Catalog   CatalogConfig
	Cache     CacheConfig
	Routes    RoutesConfig
	Features  Features
	Commands  CommandsConfig
	Logging   LoggingConfig
}

// MarkdownConfig captures filesystem discovery behaviour for markdown ingestion.
type MarkdownConfig struct {
	ContentDir     string
	Pattern        string
	Recursive      bool
	DefaultVersion string
	VersionPattern string
}

// GeneratorConfig captures behaviour for the release note scaffolder.
type GeneratorConfig struct {
	OutputDir string
	NoteType  string
	Workers   int
}

// CatalogConfig captures search index build behaviour.
type CatalogConfig struct {
	// BaseIndex is the index family; the per-version name appends the
	// normalized version, e.g. "docs" becomes "docs-0.5.0".
	BaseIndex string
	// TruncateLimit caps indexed page content in bytes. Zero applies the
	// built-in default, negative disables truncation.
	TruncateLimit int
}

// CacheConfig captures repository cache behaviour toggles.
type CacheConfig struct {
	Enabled    bool
	DefaultTTL time.Duration
}

// RoutesConfig captures go-urlkit routing configuration for release permalinks.
// A nil Config leaves URL building unconfigured and ReleaseURL returns errors.
type RoutesConfig struct {
	Config       *urlkit.Config
	Group        string
	Route        string
	VersionParam string
	SlugParam    string
}

// Features toggles module functionality.
type Features struct {
	Lint     bool
	Scaffold bool
	Catalog  bool
	Logger   bool
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// CommandsConfig captures optional command-layer behaviour. Cron expressions
// are only honored when AutoRegisterCron is set; blank expressions skip the
// corresponding job.
type CommandsConfig struct {
	Enabled          bool
	AutoRegisterCron bool
	LintCron         string
	IndexCron        string
}

// DefaultConfig returns opinionated defaults for a docs-site content tree.
func DefaultConfig() Config {
	return Config{
		Enabled: true,
		Markdown: MarkdownConfig{
			ContentDir: "content",
			Pattern:    "*.md",
			Recursive:  true,
		},
		Generator: GeneratorConfig{
			OutputDir: "releases",
			NoteType:  "Tip",
			Workers:   0,
		},
		Catalog: CatalogConfig{
			BaseIndex: "docs",
		},
		Cache: CacheConfig{
			Enabled:    true,
			DefaultTTL: time.Minute,
		},
		Routes: RoutesConfig{},
		Features: Features{
			Lint:     true,
			Scaffold: true,
			Catalog:  true,
		},
		Commands: CommandsConfig{},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
			Format:   "",
		},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if cfg.Features.Lint || cfg.Features.Catalog {
		if strings.TrimSpace(cfg.Markdown.ContentDir) == "" {
			return ErrMarkdownContentDirRequired
		}
	}
	if cfg.Features.Scaffold {
		if strings.TrimSpace(cfg.Generator.OutputDir) == "" {
			return ErrGeneratorOutputDirRequired
		}
	}
	if cfg.Generator.Workers < 0 {
		return fmt.Errorf("%w: %d", ErrGeneratorWorkersInvalid, cfg.Generator.Workers)
	}
	if cfg.Features.Catalog {
		if strings.TrimSpace(cfg.Catalog.BaseIndex) == "" {
			return ErrCatalogBaseIndexRequired
		}
	}
	if cfg.Cache.Enabled && !cfg.Features.Catalog {
		return ErrCacheRequiresCatalog
	}
	if cfg.Commands.AutoRegisterCron && !cfg.Commands.Enabled {
		return ErrCommandsCronRequiresCommands
	}
	if cfg.Features.Logger {
		provider := normalizeProvider(cfg.Logging.Provider)
		if provider == "" {
			return ErrLoggingProviderRequired
		}
		if !isSupportedProvider(provider) {
			return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
		}
		if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
		}
		if provider == "gologger" {
			if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
				return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
			}
		}
	}
	return nil
}

func normalizeProvider(provider string) string {
	return strings.ToLower(strings.TrimSpace(provider))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
