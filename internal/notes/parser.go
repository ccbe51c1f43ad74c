package notes

import (
	"bytes"
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/goliatone/go-relnotes/internal/logging"
	"github.com/goliatone/go-relnotes/internal/markdown"
	"github.com/goliatone/go-relnotes/internal/shortcode"
	parserpkg "github.com/goliatone/go-relnotes/internal/shortcode/parser"
	"github.com/goliatone/go-relnotes/pkg/interfaces"
	"github.com/yuin/goldmark/ast"
)

// releaseHeadingPattern matches release titles such as "0.5.0 Release".
var releaseHeadingPattern = regexp.MustCompile(`^v?(\d+(?:\.\d+)*)\s+Release$`)

// Parser extracts ReleaseNote structures from markdown documents. It walks
// the goldmark AST for headings, sections, and links, and mines note callouts
// for the release date and announcement references. Parsing is stateless:
// the same input always yields deeply equal results and the input document is
// never mutated.
type Parser struct {
	engine     *markdown.Engine
	shortcodes interfaces.ShortcodeService
	logger     interfaces.Logger
}

// ParserOption customises parser construction.
type ParserOption func(*Parser)

// WithEngine overrides the markdown engine.
func WithEngine(engine *markdown.Engine) ParserOption {
	return func(p *Parser) {
		if engine != nil {
			p.engine = engine
		}
	}
}

// WithShortcodeService overrides the shortcode extractor.
func WithShortcodeService(svc interfaces.ShortcodeService) ParserOption {
	return func(p *Parser) {
		if svc != nil {
			p.shortcodes = svc
		}
	}
}

// WithLogger attaches a logger used for structured diagnostics.
func WithLogger(logger interfaces.Logger) ParserOption {
	return func(p *Parser) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// NewParser constructs a parser with the default engine and shortcode catalogue.
func NewParser(opts ...ParserOption) *Parser {
	parser := &Parser{
		engine:     markdown.NewEngine(),
		shortcodes: defaultShortcodeService(),
		logger:     logging.NoOp(),
	}

	for _, opt := range opts {
		opt(parser)
	}
	return parser
}

func defaultShortcodeService() interfaces.ShortcodeService {
	registry := shortcode.NewRegistry(shortcode.NewValidator())
	_ = shortcode.RegisterBuiltIns(registry, nil)
	return shortcode.NewService(registry)
}

// Parse builds a ReleaseNote from a loaded document.
//
// Links from note callouts precede links found in the remaining body; within
// each group document order is preserved. Highlights collect bullet lists
// inside note callouts followed by bullet lists appearing before the first
// second-level heading.
func (p *Parser) Parse(ctx context.Context, doc *interfaces.Document) (*ReleaseNote, error) {
	if doc == nil {
		return nil, ErrDocumentRequired
	}
	if len(bytes.TrimSpace(doc.Body)) == 0 {
		return nil, &ParseError{Path: doc.FilePath, Message: "document body is empty", Err: ErrEmptyDocument}
	}

	transformed, extracted, err := p.shortcodes.Extract(ctx, string(doc.Body))
	if err != nil {
		perr := &ParseError{Path: doc.FilePath, Message: err.Error(), Err: err}
		var tagErr *parserpkg.TagError
		if errors.As(err, &tagErr) {
			perr.Line = tagErr.Line
		}
		return nil, perr
	}

	source := []byte(transformed)
	root := p.engine.ParseAST(source)

	title, titleLine := firstTitle(root, source)
	if title == "" {
		return nil, &ParseError{Path: doc.FilePath, Message: "missing top level release heading", Err: ErrNoReleaseHeading}
	}

	version := markdown.NormalizeVersion(doc.Version)
	if m := releaseHeadingPattern.FindStringSubmatch(title); m != nil {
		headingVersion := m[1]
		if version == "" {
			version = headingVersion
		} else if version != headingVersion {
			return nil, &ParseError{
				Path:    doc.FilePath,
				Line:    titleLine,
				Message: fmt.Sprintf("heading version %s does not match document version %s", headingVersion, version),
				Err:     ErrVersionMismatch,
			}
		}
	}

	note := &ReleaseNote{
		Version:  version,
		Title:    title,
		FilePath: doc.FilePath,
		Slug:     doc.FrontMatter.Slug,
		Checksum: bytes.Clone(doc.Checksum),
	}

	var (
		sections []Section
		current  *Section
		intro    []string
	)

	flush := func() {
		if current != nil {
			sections = append(sections, *current)
			current = nil
		}
	}

	for child := root.FirstChild(); child != nil; child = child.NextSibling() {
		switch node := child.(type) {
		case *ast.Heading:
			if node.Level == 1 {
				continue
			}
			if node.Level == 2 {
				flush()
				current = &Section{
					Heading: markdown.InlineText(node, source),
					Level:   node.Level,
				}
			}
			// deeper headings subdivide the current section; their lists
			// still accumulate into it
		case *ast.List:
			items := markdown.ListItems(node, source)
			if current != nil {
				current.Items = append(current.Items, items...)
			} else {
				intro = append(intro, items...)
			}
		}
	}
	flush()
	note.Sections = sections

	var (
		highlights []string
		links      []Link
	)

	firstCallout := true
	for _, sc := range extracted {
		if !strings.EqualFold(sc.Name, "note") {
			continue
		}
		date, calloutHighlights, calloutLinks := p.calloutContent(sc.Inner)
		if firstCallout {
			firstCallout = false
			note.Date = date
			if v, ok := sc.Params["noteType"].(string); ok {
				note.NoteType = v
			}
		}
		highlights = append(highlights, calloutHighlights...)
		links = append(links, calloutLinks...)
	}

	for _, link := range markdown.Links(root, source) {
		links = append(links, Link{Text: link.Text, URL: link.URL})
	}
	note.Links = links
	note.Highlights = append(highlights, intro...)

	if connectors, ok := note.Section("Connectors"); ok {
		for _, item := range connectors.Items {
			if label := connectorLabel(item); label != "" {
				note.Connectors = append(note.Connectors, label)
			}
		}
	}

	logging.WithFields(p.baseLogger(ctx), map[string]any{
		"document_path": doc.FilePath,
		"version":       note.Version,
		"sections":      len(note.Sections),
	}).Debug("notes.parser.parsed")

	return note, nil
}

// ParseBytes loads the supplied source and parses it, detecting the version
// from the path.
func (p *Parser) ParseBytes(ctx context.Context, path string, src []byte) (*ReleaseNote, error) {
	doc, err := markdown.BuildDocument(path, markdown.DetectVersion(path), src, time.Time{})
	if err != nil {
		return nil, &ParseError{Path: path, Message: err.Error(), Err: err}
	}

	checksum := sha256.Sum256(src)
	doc.Checksum = checksum[:]

	return p.Parse(ctx, doc)
}

// ParseFile reads path from disk and parses it.
func (p *Parser) ParseFile(ctx context.Context, path string) (*ReleaseNote, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, &ParseError{Path: path, Message: err.Error(), Err: err}
	}
	return p.ParseBytes(ctx, path, src)
}

// Ensure Parser complies with the public service contract.
var _ Service = (*Parser)(nil)

// firstTitle returns the text and line of the first level-1 heading.
func firstTitle(root ast.Node, source []byte) (string, int) {
	for _, heading := range markdown.Headings(root, source) {
		if heading.Level == 1 {
			return strings.TrimSpace(heading.Text), heading.Line
		}
	}
	return "", 0
}

// calloutContent mines a note callout body for the release date (first bold
// run), highlight bullets, and announcement links.
func (p *Parser) calloutContent(inner string) (string, []string, []Link) {
	src := []byte(inner)
	root := p.engine.ParseAST(src)

	var (
		date       string
		highlights []string
	)

	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.Emphasis:
			if node.Level == 2 && date == "" {
				date = markdown.InlineText(node, src)
			}
			return ast.WalkSkipChildren, nil
		case *ast.List:
			highlights = append(highlights, markdown.ListItems(node, src)...)
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})

	var links []Link
	for _, link := range markdown.Links(root, src) {
		links = append(links, Link{Text: link.Text, URL: link.URL})
	}
	return date, highlights, links
}

// connectorLabel strips the qualifier from a connector bullet, so
// "Trino - federation support" yields "Trino".
func connectorLabel(item string) string {
	label := strings.TrimSpace(item)
	if idx := strings.Index(label, " - "); idx >= 0 {
		label = label[:idx]
	}
	if idx := strings.Index(label, ": "); idx >= 0 {
		label = label[:idx]
	}
	return strings.TrimSpace(label)
}

func (p *Parser) baseLogger(ctx context.Context) interfaces.Logger {
	logger := p.logger
	if logger == nil {
		logger = logging.NoOp()
	}
	if ctx != nil {
		logger = logger.WithContext(ctx)
	}
	return logger
}
