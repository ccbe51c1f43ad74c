package parser

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/goliatone/go-relnotes/pkg/interfaces"
)

var (
	openTagPattern  = regexp.MustCompile(`\{%\s*([^\s/%}]+)([^%}]*)%\}`)
	closeTagPattern = regexp.MustCompile(`\{%\s*/\s*([^\s%}]+)\s*%\}`)
)

var (
	// ErrUnexpectedClose indicates a closing tag with no open tag on the stack.
	ErrUnexpectedClose = errors.New("shortcode: unexpected closing tag")
	// ErrMismatchedClose indicates a closing tag that does not pair with the innermost open tag.
	ErrMismatchedClose = errors.New("shortcode: mismatched closing tag")
	// ErrUnterminated indicates an open tag that never receives its closing tag.
	ErrUnterminated = errors.New("shortcode: unterminated tag")
)

// TagError decorates a balance failure with the offending tag name and source line.
type TagError struct {
	Err      error
	Name     string
	Expected string
	Line     int
}

func (e *TagError) Error() string {
	if e.Expected != "" {
		return fmt.Sprintf("%s %q at line %d, expected %q", e.Err, e.Name, e.Line, e.Expected)
	}
	return fmt.Sprintf("%s %q at line %d", e.Err, e.Name, e.Line)
}

func (e *TagError) Unwrap() error { return e.Err }

// MarkdocParser parses Markdoc-style tags ({% name attr="value" %}).
// Tags without a trailing /%} marker must be closed by a matching {% /name %}.
type MarkdocParser struct {
}

// NewMarkdocParser creates a parser instance.
func NewMarkdocParser() *MarkdocParser {
	return &MarkdocParser{}
}

// Parse returns the list of parsed shortcodes in the content.
func (p *MarkdocParser) Parse(content string) ([]interfaces.ParsedShortcode, error) {
	_, shortcodes, err := p.Extract(content)
	return shortcodes, err
}

// Extract replaces shortcodes with placeholders and returns both the transformed
// content and the extracted invocations in completion order.
func (p *MarkdocParser) Extract(content string) (string, []interfaces.ParsedShortcode, error) {
	type stackEntry struct {
		name       string
		startIndex int
		line       int
		params     map[string]any
	}

	var (
		result     []rune
		shortcodes []interfaces.ParsedShortcode
		stack      []stackEntry
		position   int
	)

	appendString := func(s string) {
		result = append(result, []rune(s)...)
	}
	lineAt := func(offset int) int {
		return strings.Count(content[:offset], "\n") + 1
	}

	for position < len(content) {
		openLoc := openTagPattern.FindStringIndex(content[position:])
		closeLoc := closeTagPattern.FindStringIndex(content[position:])

		if openLoc == nil && closeLoc == nil {
			appendString(content[position:])
			break
		}

		openPos := -1
		if openLoc != nil {
			openPos = position + openLoc[0]
		}

		closePos := -1
		if closeLoc != nil {
			closePos = position + closeLoc[0]
		}

		if openPos >= 0 && (closePos == -1 || openPos < closePos) {
			// append text preceding tag
			appendString(content[position:openPos])

			matches := openTagPattern.FindStringSubmatch(content[openPos:])
			if len(matches) < 3 {
				return "", nil, fmt.Errorf("shortcode: invalid open tag at line %d", lineAt(openPos))
			}
			name := matches[1]
			rawParams := strings.TrimSpace(matches[2])

			selfClosing := strings.HasSuffix(rawParams, "/")
			if selfClosing {
				rawParams = strings.TrimSpace(strings.TrimSuffix(rawParams, "/"))
			}
			params := parseParams(rawParams)
			line := lineAt(openPos)

			if selfClosing {
				placeholder := fmt.Sprintf("<!-- shortcode:%d -->", len(shortcodes))
				appendString(placeholder)
				shortcodes = append(shortcodes, interfaces.ParsedShortcode{
					Name:   name,
					Params: params,
					Line:   line,
				})
				position = openPos + len(matches[0])
				continue
			}

			stack = append(stack, stackEntry{
				name:       name,
				startIndex: len(result),
				line:       line,
				params:     params,
			})

			position = openPos + len(matches[0])
			continue
		}

		if closePos >= 0 {
			appendString(content[position:closePos])

			matches := closeTagPattern.FindStringSubmatch(content[closePos:])
			if len(matches) < 2 {
				return "", nil, fmt.Errorf("shortcode: invalid closing tag at line %d", lineAt(closePos))
			}
			name := matches[1]
			if len(stack) == 0 {
				return "", nil, &TagError{Err: ErrUnexpectedClose, Name: name, Line: lineAt(closePos)}
			}

			entry := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if entry.name != name {
				return "", nil, &TagError{Err: ErrMismatchedClose, Name: name, Expected: entry.name, Line: lineAt(closePos)}
			}

			inner := string(result[entry.startIndex:])
			result = result[:entry.startIndex]

			placeholder := fmt.Sprintf("<!-- shortcode:%d -->", len(shortcodes))
			appendString(placeholder)

			shortcodes = append(shortcodes, interfaces.ParsedShortcode{
				Name:   name,
				Params: entry.params,
				Inner:  inner,
				Line:   entry.line,
			})

			position = closePos + len(matches[0])
			continue
		}
	}

	if len(stack) > 0 {
		entry := stack[len(stack)-1]
		return "", nil, &TagError{Err: ErrUnterminated, Name: entry.name, Line: entry.line}
	}

	return string(result), shortcodes, nil
}

func parseParams(raw string) map[string]any {
	if raw == "" {
		return map[string]any{}
	}
	parts := splitParams(raw)
	params := make(map[string]any, len(parts))
	for _, part := range parts {
		kv := strings.SplitN(part, "=", 2)
		if len(kv) == 2 {
			key := strings.TrimSpace(kv[0])
			value := strings.Trim(kv[1], `"`)
			params[key] = value
		} else {
			params[fmt.Sprintf("param%d", len(params)+1)] = strings.Trim(part, `"`)
		}
	}
	return params
}

// splitParams splits an attribute string on whitespace while keeping quoted
// values intact, so alt="release banner" stays a single token.
func splitParams(raw string) []string {
	var (
		tokens  []string
		current strings.Builder
		quoted  bool
	)
	for _, r := range raw {
		switch {
		case r == '"':
			quoted = !quoted
			current.WriteRune(r)
		case !quoted && unicode.IsSpace(r):
			if current.Len() > 0 {
				tokens = append(tokens, current.String())
				current.Reset()
			}
		default:
			current.WriteRune(r)
		}
	}
	if current.Len() > 0 {
		tokens = append(tokens, current.String())
	}
	return tokens
}
