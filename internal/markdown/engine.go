package markdown

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// Engine parses markdown into a goldmark AST for structural analysis. The
// engine never renders: release-note tooling inspects document structure and
// leaves HTML generation to the docs site.
type Engine struct {
	md goldmark.Markdown
}

// NewEngine constructs an Engine with the GFM extension set the docs content
// relies on. The engine is stateless and safe for concurrent use.
func NewEngine(extensions ...string) *Engine {
	exts := collectExtensions(extensions)

	return &Engine{
		md: goldmark.New(
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
			goldmark.WithExtensions(exts...),
		),
	}
}

// ParseAST parses source into the goldmark document node.
func (e *Engine) ParseAST(source []byte) ast.Node {
	reader := text.NewReader(source)
	return e.md.Parser().Parse(reader)
}

var extensionRegistry = map[string]goldmark.Extender{
	"gfm":           extension.GFM,
	"table":         extension.Table,
	"tables":        extension.Table,
	"strikethrough": extension.Strikethrough,
	"linkify":       extension.Linkify,
	"autolink":      extension.Linkify,
	"tasklist":      extension.TaskList,
	"definition":    extension.DefinitionList,
	"footnote":      extension.Footnote,
}

func collectExtensions(names []string) []goldmark.Extender {
	if len(names) == 0 {
		return []goldmark.Extender{
			extension.GFM,
			extension.Linkify,
		}
	}

	var extenders []goldmark.Extender
	seen := map[string]struct{}{}

	for _, name := range names {
		key := strings.ToLower(strings.TrimSpace(name))
		if key == "" {
			continue
		}

		if _, ok := seen[key]; ok {
			continue
		}

		ext, ok := extensionRegistry[key]
		if !ok {
			continue
		}

		extenders = append(extenders, ext)
		seen[key] = struct{}{}
	}

	return extenders
}

// HeadingInfo captures one heading with its document position.
type HeadingInfo struct {
	Level int
	Text  string
	Line  int
	Node  *ast.Heading
}

// Headings collects every heading in document order.
func Headings(root ast.Node, source []byte) []HeadingInfo {
	var headings []HeadingInfo

	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		heading, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}
		headings = append(headings, HeadingInfo{
			Level: heading.Level,
			Text:  InlineText(heading, source),
			Line:  NodeLine(heading, source),
			Node:  heading,
		})
		return ast.WalkSkipChildren, nil
	})

	return headings
}

// LinkInfo captures an inline link discovered in the document body.
type LinkInfo struct {
	Text string
	URL  string
	Line int
}

// Links collects inline and auto links in document order.
func Links(root ast.Node, source []byte) []LinkInfo {
	var links []LinkInfo

	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch link := n.(type) {
		case *ast.Link:
			links = append(links, LinkInfo{
				Text: InlineText(link, source),
				URL:  string(link.Destination),
				Line: NodeLine(link, source),
			})
			return ast.WalkSkipChildren, nil
		case *ast.AutoLink:
			url := string(link.URL(source))
			links = append(links, LinkInfo{
				Text: url,
				URL:  url,
				Line: NodeLine(link, source),
			})
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})

	return links
}

// InlineText flattens a node's inline content into plain text, dropping
// markup while keeping link and emphasis text.
func InlineText(node ast.Node, source []byte) string {
	if node == nil {
		return ""
	}

	var buf bytes.Buffer
	_ = ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := n.(type) {
		case *ast.Text:
			buf.Write(t.Segment.Value(source))
			if t.SoftLineBreak() || t.HardLineBreak() {
				buf.WriteByte(' ')
			}
		case *ast.CodeSpan:
			for child := t.FirstChild(); child != nil; child = child.NextSibling() {
				if txt, ok := child.(*ast.Text); ok {
					buf.Write(txt.Segment.Value(source))
				}
			}
			return ast.WalkSkipChildren, nil
		case *ast.AutoLink:
			buf.Write(t.URL(source))
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})

	return strings.TrimSpace(buf.String())
}

// ListItemText extracts the text of a list item's own paragraph, ignoring any
// nested sub-lists.
func ListItemText(item ast.Node, source []byte) string {
	if item == nil {
		return ""
	}
	for child := item.FirstChild(); child != nil; child = child.NextSibling() {
		switch child.(type) {
		case *ast.TextBlock, *ast.Paragraph:
			return InlineText(child, source)
		}
	}
	return InlineText(item, source)
}

// ListItems returns the flattened text of each direct item of a list node.
func ListItems(list ast.Node, source []byte) []string {
	if list == nil {
		return nil
	}
	var items []string
	for item := list.FirstChild(); item != nil; item = item.NextSibling() {
		if _, ok := item.(*ast.ListItem); !ok {
			continue
		}
		if text := ListItemText(item, source); text != "" {
			items = append(items, text)
		}
	}
	return items
}

// NodeLine resolves the 1-based source line a block or inline node starts on.
// Nodes without position information resolve to 0.
func NodeLine(node ast.Node, source []byte) int {
	offset, ok := nodeOffset(node)
	if !ok {
		return 0
	}
	return LineAt(source, offset)
}

func nodeOffset(node ast.Node) (int, bool) {
	for current := node; current != nil; current = current.FirstChild() {
		if current.Type() == ast.TypeBlock {
			if lines := current.Lines(); lines != nil && lines.Len() > 0 {
				return lines.At(0).Start, true
			}
		}
		if txt, ok := current.(*ast.Text); ok {
			return txt.Segment.Start, true
		}
	}
	return 0, false
}

// LineAt converts a byte offset into a 1-based line number.
func LineAt(source []byte, offset int) int {
	if offset < 0 {
		return 0
	}
	if offset > len(source) {
		offset = len(source)
	}
	return bytes.Count(source[:offset], []byte("\n")) + 1
}
