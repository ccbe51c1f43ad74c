package logging

import (
	"context"
	"strings"

	"github.com/goliatone/go-relnotes/pkg/interfaces"
)

const (
	rootModule      = "relnotes"
	notesModule     = "relnotes.notes"
	lintModule      = "relnotes.lint"
	markdownModule  = "relnotes.markdown"
	catalogModule   = "relnotes.catalog"
	generatorModule = "relnotes.generator"
)

const (
	fieldDocumentPath    = "document_path"
	fieldDocumentVersion = "version"
	fieldDocumentAction  = "action"
)

// ModuleLogger returns a module-scoped logger, defaulting to a no-op
// implementation when no provider is supplied. The returned logger attaches
// the module identifier as structured context so downstream entries can be
// filtered predictably.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	if fieldsLogger, ok := logger.(interfaces.FieldsLogger); ok {
		return fieldsLogger.WithFields(map[string]any{
			"module": module,
		})
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// NotesLogger returns the logger namespace reserved for release-note parsing.
func NotesLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, notesModule)
}

// LintLogger returns the logger namespace reserved for the lint runner.
func LintLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, lintModule)
}

// MarkdownLogger returns the logger namespace reserved for markdown loading.
func MarkdownLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, markdownModule)
}

// CatalogLogger returns the logger namespace reserved for catalog indexing.
func CatalogLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, catalogModule)
}

// GeneratorLogger returns the logger namespace reserved for scaffolding.
func GeneratorLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, generatorModule)
}

// WithDocumentContext enriches the provided logger with common document fields
// such as file path, version, and the running action. Empty values are ignored.
func WithDocumentContext(logger interfaces.Logger, path, version, action string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(path); trimmed != "" {
		fields[fieldDocumentPath] = trimmed
	}
	if trimmed := strings.TrimSpace(version); trimmed != "" {
		fields[fieldDocumentVersion] = trimmed
	}
	if trimmed := strings.TrimSpace(action); trimmed != "" {
		fields[fieldDocumentAction] = trimmed
	}
	return WithFields(logger, fields)
}

// NoOp returns a logger that drops every log entry. It satisfies the Logger
// contract so services can safely operate when logging is disabled.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
