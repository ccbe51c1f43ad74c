package relnotes

import (
	"github.com/goliatone/go-relnotes/catalog"
	"github.com/goliatone/go-relnotes/internal/di"
	"github.com/goliatone/go-relnotes/internal/generator"
	"github.com/goliatone/go-relnotes/lint"
	"github.com/goliatone/go-relnotes/notes"
	"github.com/goliatone/go-relnotes/pkg/interfaces"
)

// NotesService exports the release-note parsing contract for consumers of the relnotes package.
type NotesService = notes.Service

// LintService exports the structural lint contract.
type LintService = lint.Service

// CatalogService exports the release catalog contract.
type CatalogService = catalog.Service

// GeneratorService exports the scaffold generator contract.
type GeneratorService = generator.Service

// Module represents the top level release-notes runtime façade.
type Module struct {
	container *di.Container
}

// New constructs a relnotes module using the provided configuration and optional DI overrides.
func New(cfg Config, opts ...di.Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Notes returns the configured release-note parser.
func (m *Module) Notes() NotesService {
	return m.container.NotesService()
}

// Lint returns the configured lint service.
func (m *Module) Lint() LintService {
	return m.container.LintService()
}

// Catalog returns the configured catalog service.
func (m *Module) Catalog() CatalogService {
	return m.container.CatalogService()
}

// Generator returns the configured scaffold service.
func (m *Module) Generator() GeneratorService {
	return m.container.GeneratorService()
}

// Markdown returns the markdown loader used by the module.
func (m *Module) Markdown() interfaces.MarkdownLoader {
	return m.container.MarkdownLoader()
}

// Shortcodes returns the configured shortcode service.
func (m *Module) Shortcodes() interfaces.ShortcodeService {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.ShortcodeService()
}
