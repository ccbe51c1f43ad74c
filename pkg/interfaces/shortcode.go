package interfaces

import (
	"context"
	"time"
)

// ShortcodeRegistry describes the lifecycle contract for registering and
// resolving shortcode definitions. Implementations must be safe for
// concurrent use.
type ShortcodeRegistry interface {
	// Register stores a definition and returns an error when a shortcode
	// with the same name already exists or the definition fails validation.
	Register(definition ShortcodeDefinition) error

	// Get returns the definition for the supplied shortcode name.
	Get(name string) (ShortcodeDefinition, bool)

	// List exposes the current catalogue, sorted at the implementor's discretion.
	List() []ShortcodeDefinition

	// Remove deletes the shortcode from the registry. Removing an unknown
	// shortcode must be a no-op.
	Remove(name string)
}

// ShortcodeParser extracts shortcode invocations from arbitrary content.
// Rendering is out of scope for this module: parsed shortcodes describe
// structure only and are never expanded into output.
type ShortcodeParser interface {
	Parse(content string) ([]ParsedShortcode, error)
	Extract(content string) (placeholders string, shortcodes []ParsedShortcode, err error)
}

// ShortcodeDefinition captures the metadata and parameter schema the registry
// stores. Definitions carry no templates or handlers; downstream renderers
// are external collaborators.
type ShortcodeDefinition struct {
	Name        string
	Version     string
	Description string
	Category    string
	AllowInner  bool
	Schema      ShortcodeSchema
}

// ShortcodeSchema defines the contract for parameters accepted by a shortcode.
type ShortcodeSchema struct {
	Params   []ShortcodeParam
	Defaults map[string]any
}

// ShortcodeParam describes a single parameter, including optional custom validation.
type ShortcodeParam struct {
	Name     string
	Type     ShortcodeParamType
	Required bool
	Default  any
	Enum     []string
	Validate ShortcodeValidator
}

// ShortcodeParamType enumerates the supported parameter coercions.
type ShortcodeParamType string

const (
	ShortcodeParamString ShortcodeParamType = "string"
	ShortcodeParamInt    ShortcodeParamType = "int"
	ShortcodeParamBool   ShortcodeParamType = "bool"
	ShortcodeParamArray  ShortcodeParamType = "array"
	ShortcodeParamURL    ShortcodeParamType = "url"
)

// ShortcodeValidator allows definitions to perform custom validation.
type ShortcodeValidator func(value any) error

// ParsedShortcode represents a parsed invocation discovered by the parser layer.
type ParsedShortcode struct {
	Name   string
	Params map[string]any
	Inner  string
	Line   int
}

// ShortcodeIssue flags an invocation that fails definition checks.
type ShortcodeIssue struct {
	Name    string // shortcode name as written in the document
	Line    int    // 1-based line of the opening tag
	Message string // human readable explanation
	Unknown bool   // set when the shortcode has no registered definition
}

// ShortcodeService extracts shortcode invocations and validates them against
// the registered definitions.
type ShortcodeService interface {
	Extract(ctx context.Context, content string) (string, []ParsedShortcode, error)
	Validate(ctx context.Context, shortcodes []ParsedShortcode) []ShortcodeIssue
	ValidateDocument(ctx context.Context, doc *Document) ([]ShortcodeIssue, error)
	Registry() ShortcodeRegistry
}

// ShortcodeMetrics receives counters for parser and validation activity.
type ShortcodeMetrics interface {
	ObserveExtractDuration(d time.Duration)
	IncrementParseError()
	IncrementIssue(shortcode string)
}
