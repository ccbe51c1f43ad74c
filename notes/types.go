package notes

import (
	"context"
	"strings"

	"github.com/goliatone/go-relnotes/pkg/interfaces"
)

// ReleaseNote is the structure extracted from a release-note markdown
// document: a version heading, an optional dated callout, and a set of
// categorized bullet sections.
type ReleaseNote struct {
	Version    string    `json:"version"`
	Title      string    `json:"title"`
	Date       string    `json:"date,omitempty"`
	NoteType   string    `json:"note_type,omitempty"`
	Highlights []string  `json:"highlights,omitempty"`
	Sections   []Section `json:"sections"`
	Links      []Link    `json:"links,omitempty"`
	Connectors []string  `json:"connectors,omitempty"`

	FilePath string `json:"file_path,omitempty"`
	Slug     string `json:"slug,omitempty"`
	Checksum []byte `json:"checksum,omitempty"`
}

// Section groups the bullet items introduced by a second-level heading.
// Items are plain text with inline markdown markup flattened.
type Section struct {
	Heading string   `json:"heading"`
	Level   int      `json:"level"`
	Items   []string `json:"items"`
}

// Link references an external resource mentioned by the document, typically
// the release announcement post.
type Link struct {
	Text string `json:"text"`
	URL  string `json:"url"`
}

// Service parses release-note documents into their extracted structure.
// Implementations must be stateless: parsing the same input twice yields
// deeply equal results.
type Service interface {
	Parse(ctx context.Context, doc *interfaces.Document) (*ReleaseNote, error)
	ParseBytes(ctx context.Context, path string, src []byte) (*ReleaseNote, error)
	ParseFile(ctx context.Context, path string) (*ReleaseNote, error)
}

// Section returns the section whose heading matches the supplied text,
// ignoring case and surrounding whitespace.
func (n *ReleaseNote) Section(heading string) (Section, bool) {
	if n == nil {
		return Section{}, false
	}
	want := strings.ToLower(strings.TrimSpace(heading))
	for _, section := range n.Sections {
		if strings.ToLower(strings.TrimSpace(section.Heading)) == want {
			return section, true
		}
	}
	return Section{}, false
}

// SectionHeadings lists the section headings in document order.
func (n *ReleaseNote) SectionHeadings() []string {
	if n == nil || len(n.Sections) == 0 {
		return nil
	}
	headings := make([]string, 0, len(n.Sections))
	for _, section := range n.Sections {
		headings = append(headings, section.Heading)
	}
	return headings
}
