package notes

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrDocumentRequired = errors.New("notes: document is required")
	ErrEmptyDocument    = errors.New("notes: document body is empty")
	ErrNoReleaseHeading = errors.New("notes: release heading not found")
	ErrVersionMismatch  = errors.New("notes: heading version does not match document version")
)

// ParseError decorates extraction failures with the offending file and line so
// callers can point authors at the exact location.
type ParseError struct {
	Path    string
	Line    int
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	if e == nil {
		return "notes: parse error"
	}
	var sb strings.Builder
	sb.WriteString("notes: parse error")
	if path := strings.TrimSpace(e.Path); path != "" {
		sb.WriteString(": ")
		sb.WriteString(path)
		if e.Line > 0 {
			sb.WriteString(fmt.Sprintf(":%d", e.Line))
		}
	}
	if msg := strings.TrimSpace(e.Message); msg != "" {
		sb.WriteString(": ")
		sb.WriteString(msg)
	}
	return sb.String()
}

func (e *ParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
