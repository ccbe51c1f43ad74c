package di

import (
	"io/fs"
	"strings"
	"time"

	"github.com/goliatone/go-relnotes/internal/catalog"
	"github.com/goliatone/go-relnotes/internal/generator"
	"github.com/goliatone/go-relnotes/internal/lint"
	"github.com/goliatone/go-relnotes/internal/logging"
	"github.com/goliatone/go-relnotes/internal/logging/console"
	"github.com/goliatone/go-relnotes/internal/logging/gologger"
	"github.com/goliatone/go-relnotes/internal/markdown"
	"github.com/goliatone/go-relnotes/internal/notes"
	"github.com/goliatone/go-relnotes/internal/runtimeconfig"
	"github.com/goliatone/go-relnotes/internal/shortcode"
	"github.com/goliatone/go-relnotes/pkg/interfaces"
	repocache "github.com/goliatone/go-repository-cache/cache"
	urlkit "github.com/goliatone/go-urlkit"
	"github.com/uptrace/bun"
)

// Container wires module dependencies. Repositories default to in-memory
// implementations and upgrade to bun-backed ones when a *bun.DB is supplied.
type Container struct {
	Config runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider

	bunDB         *bun.DB
	cacheTTL      time.Duration
	cacheService  repocache.CacheService
	keySerializer repocache.KeySerializer

	contentFS fs.FS
	clock     func() time.Time

	releaseRepo  catalog.ReleaseRepository
	documentRepo catalog.SearchDocumentRepository

	routeManager *urlkit.RouteManager
	urlBuilder   *catalog.URLBuilder

	engine           *markdown.Engine
	loader           interfaces.MarkdownLoader
	shortcodeMetrics interfaces.ShortcodeMetrics

	shortcodeSvc interfaces.ShortcodeService
	notesSvc     notes.Service
	lintSvc      lint.Service
	generatorSvc generator.Service
	catalogSvc   catalog.Service
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithLoggerProvider overrides the default logger provider.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.loggerProvider = provider
	}
}

// WithBunDB binds a bun database handle, upgrading catalog storage from the
// in-memory default.
func WithBunDB(db *bun.DB) Option {
	return func(c *Container) {
		c.bunDB = db
	}
}

// WithCache overrides the default repository cache service.
func WithCache(service repocache.CacheService, serializer repocache.KeySerializer) Option {
	return func(c *Container) {
		c.cacheService = service
		c.keySerializer = serializer
	}
}

// WithContentFS points the markdown loader at the supplied filesystem instead
// of the working directory, e.g. embedded content or test fixtures.
func WithContentFS(fsys fs.FS) Option {
	return func(c *Container) {
		c.contentFS = fsys
	}
}

// WithClock overrides the time source used for catalog timestamps.
func WithClock(now func() time.Time) Option {
	return func(c *Container) {
		c.clock = now
	}
}

// WithRouteManager binds an already-built go-urlkit route manager.
func WithRouteManager(manager *urlkit.RouteManager) Option {
	return func(c *Container) {
		c.routeManager = manager
	}
}

// WithMarkdownLoader overrides the default markdown loader binding.
func WithMarkdownLoader(loader interfaces.MarkdownLoader) Option {
	return func(c *Container) {
		c.loader = loader
	}
}

// WithShortcodeService overrides the default shortcode service binding.
func WithShortcodeService(svc interfaces.ShortcodeService) Option {
	return func(c *Container) {
		c.shortcodeSvc = svc
	}
}

// WithShortcodeMetrics attaches a metrics sink to the default shortcode service.
func WithShortcodeMetrics(metrics interfaces.ShortcodeMetrics) Option {
	return func(c *Container) {
		c.shortcodeMetrics = metrics
	}
}

// WithNotesService overrides the default release-note parser binding.
func WithNotesService(svc notes.Service) Option {
	return func(c *Container) {
		c.notesSvc = svc
	}
}

// WithLintService overrides the default lint service binding.
func WithLintService(svc lint.Service) Option {
	return func(c *Container) {
		c.lintSvc = svc
	}
}

// WithGeneratorService overrides the default scaffold service binding.
func WithGeneratorService(svc generator.Service) Option {
	return func(c *Container) {
		c.generatorSvc = svc
	}
}

// WithCatalogService overrides the default catalog service binding.
func WithCatalogService(svc catalog.Service) Option {
	return func(c *Container) {
		c.catalogSvc = svc
	}
}

// NewContainer creates a container with the provided configuration.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cacheTTL := cfg.Cache.DefaultTTL
	if cacheTTL <= 0 {
		cacheTTL = time.Minute
	}

	c := &Container{
		Config:       cfg,
		cacheTTL:     cacheTTL,
		releaseRepo:  catalog.NewMemoryReleaseRepository(),
		documentRepo: catalog.NewMemorySearchDocumentRepository(),
	}

	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	if err := c.configureLogging(); err != nil {
		return nil, err
	}
	c.configureCacheDefaults()
	c.configureRepositories()
	c.configureRoutes()
	if err := c.configureMarkdown(); err != nil {
		return nil, err
	}
	if err := c.configureShortcodes(); err != nil {
		return nil, err
	}
	c.configureNotes()
	c.configureLint()
	c.configureGenerator()
	c.configureCatalog()

	return c, nil
}

func (c *Container) configureLogging() error {
	if c.loggerProvider != nil {
		return nil
	}

	logCfg := c.Config.Logging
	provider := strings.ToLower(strings.TrimSpace(logCfg.Provider))

	if c.Config.Features.Logger && provider == "gologger" {
		built, err := gologger.NewProvider(gologger.Config{
			Level:     logCfg.Level,
			Format:    logCfg.Format,
			AddSource: logCfg.AddSource,
			Focus:     logCfg.Focus,
		})
		if err != nil {
			return err
		}
		c.loggerProvider = built
		return nil
	}

	c.loggerProvider = console.NewProvider(console.Options{
		MinLevel: consoleLevel(logCfg.Level),
	})
	return nil
}

func (c *Container) configureCacheDefaults() {
	if !c.Config.Cache.Enabled {
		return
	}

	if c.cacheService == nil {
		cfg := repocache.DefaultConfig()
		if c.cacheTTL > 0 {
			cfg.TTL = c.cacheTTL
		}
		service, err := repocache.NewCacheService(cfg)
		if err == nil {
			c.cacheService = service
		}
	}

	if c.cacheService != nil && c.keySerializer == nil {
		c.keySerializer = repocache.NewDefaultKeySerializer()
	}
}

func (c *Container) configureRepositories() {
	if c.bunDB == nil {
		return
	}

	c.releaseRepo = catalog.NewBunReleaseRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
	c.documentRepo = catalog.NewBunSearchDocumentRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
}

func (c *Container) configureRoutes() {
	routes := c.Config.Routes
	if c.routeManager == nil && routes.Config != nil {
		c.routeManager = urlkit.NewRouteManager(routes.Config)
	}
	if c.urlBuilder != nil || c.routeManager == nil {
		return
	}

	c.urlBuilder = catalog.NewURLBuilder(catalog.URLBuilderOptions{
		Manager:      c.routeManager,
		Group:        strings.TrimSpace(routes.Group),
		Route:        strings.TrimSpace(routes.Route),
		VersionParam: routes.VersionParam,
		SlugParam:    routes.SlugParam,
	})
}

func (c *Container) configureMarkdown() error {
	if c.engine == nil {
		c.engine = markdown.NewEngine()
	}
	if c.loader != nil {
		return nil
	}

	mdCfg := markdown.Config{
		DefaultVersion: c.Config.Markdown.DefaultVersion,
		VersionPattern: c.Config.Markdown.VersionPattern,
		Pattern:        c.Config.Markdown.Pattern,
		Recursive:      c.Config.Markdown.Recursive,
	}

	if c.contentFS != nil {
		c.loader = markdown.NewServiceWithFS(c.contentFS, mdCfg)
		return nil
	}

	// Rooted at the working directory so document paths keep the content
	// dir prefix; the catalog and lint walk cfg.Markdown.ContentDir below it.
	service, err := markdown.NewService(mdCfg)
	if err != nil {
		return err
	}
	c.loader = service
	return nil
}

func (c *Container) configureShortcodes() error {
	if c.shortcodeSvc != nil {
		return nil
	}

	registry := shortcode.NewRegistry(shortcode.NewValidator())
	if err := shortcode.RegisterBuiltIns(registry, nil); err != nil {
		return err
	}

	svcOpts := []shortcode.ServiceOption{
		shortcode.WithLogger(logging.ModuleLogger(c.loggerProvider, "relnotes.shortcodes")),
	}
	if c.shortcodeMetrics != nil {
		svcOpts = append(svcOpts, shortcode.WithMetrics(c.shortcodeMetrics))
	}

	c.shortcodeSvc = shortcode.NewService(registry, svcOpts...)
	return nil
}

func (c *Container) configureNotes() {
	if c.notesSvc != nil {
		return
	}

	c.notesSvc = notes.NewParser(
		notes.WithEngine(c.engine),
		notes.WithShortcodeService(c.shortcodeSvc),
		notes.WithLogger(logging.NotesLogger(c.loggerProvider)),
	)
}

func (c *Container) configureLint() {
	if c.lintSvc != nil {
		return
	}

	if !c.Config.Features.Lint {
		c.lintSvc = lint.NewDisabledService()
		return
	}

	runner := lint.NewRunner(
		lint.WithLoader(c.loader),
		lint.WithEngine(c.engine),
		lint.WithShortcodeService(c.shortcodeSvc),
		lint.WithNotesService(c.notesSvc),
		lint.WithLogger(logging.LintLogger(c.loggerProvider)),
	)
	c.lintSvc = runner

	logging.LintLogger(c.loggerProvider).Info("lint.configured",
		"rules", len(runner.Rules()),
	)
}

func (c *Container) configureGenerator() {
	if c.generatorSvc != nil {
		return
	}

	if !c.Config.Features.Scaffold {
		c.generatorSvc = generator.NewDisabledService()
		return
	}

	c.generatorSvc = generator.NewService(generator.Config{
		OutputDir: c.Config.Generator.OutputDir,
		NoteType:  c.Config.Generator.NoteType,
		Workers:   c.Config.Generator.Workers,
	}, generator.WithLogger(logging.GeneratorLogger(c.loggerProvider)))

	logging.GeneratorLogger(c.loggerProvider).Info("scaffold.configured",
		"output_dir", c.Config.Generator.OutputDir,
	)
}

func (c *Container) configureCatalog() {
	if c.catalogSvc != nil {
		return
	}

	if !c.Config.Features.Catalog {
		c.catalogSvc = catalog.NewDisabledService()
		return
	}

	svcOpts := []catalog.ServiceOption{
		catalog.WithLoader(c.loader),
		catalog.WithNotesService(c.notesSvc),
		catalog.WithBuilder(catalog.NewBuilder(catalog.BuilderConfig{
			TruncateLimit: c.Config.Catalog.TruncateLimit,
		})),
		catalog.WithLogger(logging.CatalogLogger(c.loggerProvider)),
		catalog.WithContentDir(c.Config.Markdown.ContentDir),
		catalog.WithBaseIndex(c.Config.Catalog.BaseIndex),
	}
	if c.urlBuilder != nil {
		svcOpts = append(svcOpts, catalog.WithURLBuilder(c.urlBuilder))
	}
	if c.clock != nil {
		svcOpts = append(svcOpts, catalog.WithClock(c.clock))
	}

	c.catalogSvc = catalog.NewService(c.releaseRepo, c.documentRepo, svcOpts...)

	storage := "memory"
	if c.bunDB != nil {
		storage = "bun"
	}
	logging.CatalogLogger(c.loggerProvider).Info("catalog.configured",
		"storage", storage,
		"cache", c.Config.Cache.Enabled && c.cacheService != nil,
	)
}

// LoggerProvider exposes the configured logger provider.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// MarkdownLoader exposes the configured markdown loader.
func (c *Container) MarkdownLoader() interfaces.MarkdownLoader {
	return c.loader
}

// Engine exposes the shared goldmark engine.
func (c *Container) Engine() *markdown.Engine {
	return c.engine
}

// ShortcodeService returns the configured shortcode service.
func (c *Container) ShortcodeService() interfaces.ShortcodeService {
	return c.shortcodeSvc
}

// NotesService returns the configured release-note parser.
func (c *Container) NotesService() notes.Service {
	return c.notesSvc
}

// LintService returns the configured lint service.
func (c *Container) LintService() lint.Service {
	return c.lintSvc
}

// GeneratorService returns the configured scaffold service.
func (c *Container) GeneratorService() generator.Service {
	return c.generatorSvc
}

// CatalogService returns the configured catalog service.
func (c *Container) CatalogService() catalog.Service {
	return c.catalogSvc
}

// ReleaseRepository exposes the configured release repository.
func (c *Container) ReleaseRepository() catalog.ReleaseRepository {
	return c.releaseRepo
}

// SearchDocumentRepository exposes the configured search document repository.
func (c *Container) SearchDocumentRepository() catalog.SearchDocumentRepository {
	return c.documentRepo
}

// RouteManager exposes the go-urlkit route manager when routing is configured.
func (c *Container) RouteManager() *urlkit.RouteManager {
	return c.routeManager
}

func consoleLevel(name string) *console.Level {
	var level console.Level
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "trace":
		level = console.LevelTrace
	case "debug":
		level = console.LevelDebug
	case "info":
		level = console.LevelInfo
	case "warn", "warning":
		level = console.LevelWarn
	case "error":
		level = console.LevelError
	case "fatal":
		level = console.LevelFatal
	default:
		return nil
	}
	return &level
}
