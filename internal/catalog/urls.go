package catalog

import (
	"fmt"
	"path"
	"strings"
	"sync"

	"github.com/goliatone/go-relnotes/internal/markdown"
	urlkit "github.com/goliatone/go-urlkit"
)

// URLBuilderOptions configures the go-urlkit backed release URL builder.
type URLBuilderOptions struct {
	Manager      *urlkit.RouteManager
	Group        string
	Route        string
	VersionParam string
	SlugParam    string
}

// URLBuilder resolves release permalinks through a go-urlkit RouteManager.
type URLBuilder struct {
	manager *urlkit.RouteManager

	group        string
	route        string
	versionParam string
	slugParam    string

	groupCache map[string]*urlkit.Group
	mu         sync.RWMutex
}

// NewURLBuilder constructs a release URL builder backed by go-urlkit.
func NewURLBuilder(opts URLBuilderOptions) *URLBuilder {
	if strings.TrimSpace(opts.Group) == "" {
		opts.Group = "docs.releases"
	}
	if strings.TrimSpace(opts.Route) == "" {
		opts.Route = "release"
	}
	if opts.VersionParam == "" {
		opts.VersionParam = "version"
	}
	if opts.SlugParam == "" {
		opts.SlugParam = "slug"
	}

	return &URLBuilder{
		manager:      opts.Manager,
		group:        strings.TrimSpace(opts.Group),
		route:        strings.TrimSpace(opts.Route),
		versionParam: opts.VersionParam,
		slugParam:    opts.SlugParam,
		groupCache:   make(map[string]*urlkit.Group),
	}
}

// ReleaseURL builds the permalink for one release page. The slug may be a
// full page path; only its last segment feeds the route parameter.
func (b *URLBuilder) ReleaseURL(version, slug string) (string, error) {
	if b == nil || b.manager == nil {
		return "", fmt.Errorf("catalog: url route manager not configured")
	}

	normalized := markdown.NormalizeVersion(version)
	if normalized == "" {
		return "", ErrVersionRequired
	}

	group, err := b.groupForPath(b.group)
	if err != nil {
		return "", err
	}

	builder, err := safeBuilder(group, b.route)
	if err != nil {
		return "", err
	}

	builder.WithParam(b.versionParam, "v"+normalized)
	builder.WithParam(b.slugParam, slugSegment(slug, normalized))

	url, err := builder.Build()
	if err != nil {
		return "", err
	}
	return url, nil
}

// slugSegment lifts the final path segment out of a slug like
// "/releases/0.5.0"; empty slugs fall back to the version itself.
func slugSegment(slug, version string) string {
	trimmed := strings.Trim(strings.TrimSpace(slug), "/")
	if trimmed == "" {
		return version
	}
	return path.Base(trimmed)
}

func (b *URLBuilder) groupForPath(groupPath string) (*urlkit.Group, error) {
	b.mu.RLock()
	group, ok := b.groupCache[groupPath]
	b.mu.RUnlock()
	if ok {
		return group, nil
	}

	parts := strings.Split(groupPath, ".")
	if len(parts) == 0 {
		return nil, fmt.Errorf("catalog: invalid route group path %q", groupPath)
	}

	root, err := lookupGroup(b.manager, parts[0])
	if err != nil {
		return nil, err
	}
	current := root
	for _, part := range parts[1:] {
		current, err = lookupChildGroup(current, part)
		if err != nil {
			return nil, err
		}
	}

	b.mu.Lock()
	b.groupCache[groupPath] = current
	b.mu.Unlock()
	return current, nil
}

// The urlkit lookups panic on unknown names, so every call site recovers into
// an error. Named results keep the recovered error visible to callers.

func safeBuilder(group *urlkit.Group, route string) (builder *urlkit.Builder, err error) {
	if group == nil {
		return nil, fmt.Errorf("catalog: urlkit group is nil")
	}
	defer func() {
		if rec := recover(); rec != nil {
			builder = nil
			err = fmt.Errorf("catalog: urlkit builder panic: %v", rec)
		}
	}()
	builder = group.Builder(route)
	return builder, nil
}

func lookupGroup(manager *urlkit.RouteManager, name string) (group *urlkit.Group, err error) {
	if manager == nil {
		return nil, fmt.Errorf("catalog: route manager not configured")
	}
	defer func() {
		if rec := recover(); rec != nil {
			group = nil
			err = fmt.Errorf("catalog: route group %q not found", name)
		}
	}()
	group = manager.Group(name)
	return group, nil
}

func lookupChildGroup(parent *urlkit.Group, name string) (group *urlkit.Group, err error) {
	if parent == nil {
		return nil, fmt.Errorf("catalog: parent group is nil")
	}
	defer func() {
		if rec := recover(); rec != nil {
			group = nil
			err = fmt.Errorf("catalog: child group %q not found", name)
		}
	}()
	group = parent.Group(name)
	return group, nil
}
