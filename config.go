package relnotes

import "github.com/goliatone/go-relnotes/internal/runtimeconfig"

var (
	ErrMarkdownContentDirRequired   = runtimeconfig.ErrMarkdownContentDirRequired
	ErrGeneratorOutputDirRequired   = runtimeconfig.ErrGeneratorOutputDirRequired
	ErrGeneratorWorkersInvalid      = runtimeconfig.ErrGeneratorWorkersInvalid
	ErrCatalogBaseIndexRequired     = runtimeconfig.ErrCatalogBaseIndexRequired
	ErrCacheRequiresCatalog         = runtimeconfig.ErrCacheRequiresCatalog
	ErrCommandsCronRequiresCommands = runtimeconfig.ErrCommandsCronRequiresCommands
	ErrLoggingProviderRequired      = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown       = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid          = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid         = runtimeconfig.ErrLoggingFormatInvalid
)

type (
	Config          = runtimeconfig.Config
	MarkdownConfig  = runtimeconfig.MarkdownConfig
	GeneratorConfig = runtimeconfig.GeneratorConfig
	CatalogConfig   = runtimeconfig.CatalogConfig
	CacheConfig     = runtimeconfig.CacheConfig
	RoutesConfig    = runtimeconfig.RoutesConfig
	Features        = runtimeconfig.Features
	CommandsConfig  = runtimeconfig.CommandsConfig
	LoggingConfig   = runtimeconfig.LoggingConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
