package notes

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	parserpkg "github.com/goliatone/go-relnotes/internal/shortcode/parser"
	"github.com/goliatone/go-relnotes/pkg/interfaces"
)

func TestParserGoldenRelease(t *testing.T) {
	parser := NewParser()

	note, err := parser.ParseFile(context.Background(), filepath.Join("testdata", "0.5.0.md"))
	if err != nil {
		t.Fatalf("ParseFile() unexpected error: %v", err)
	}

	if note.Title != "0.5.0 Release" {
		t.Fatalf("title mismatch, got %q", note.Title)
	}
	if note.Version != "0.5.0" {
		t.Fatalf("version mismatch, got %q", note.Version)
	}
	if note.Date != "2021, October 19th" {
		t.Fatalf("date mismatch, got %q", note.Date)
	}
	if note.NoteType != "Tip" {
		t.Fatalf("noteType mismatch, got %q", note.NoteType)
	}

	wantSections := []string{
		"Support for Lineage",
		"Data Reliability",
		"Complex Types",
		"Connectors",
		"Other features",
	}
	if got := note.SectionHeadings(); !reflect.DeepEqual(got, wantSections) {
		t.Fatalf("section headings mismatch\n got: %v\nwant: %v", got, wantSections)
	}

	connectors, ok := note.Section("Connectors")
	if !ok {
		t.Fatal("expected Connectors section")
	}
	if !reflect.DeepEqual(connectors.Items, []string{"Trino", "Redash"}) {
		t.Fatalf("connector items mismatch, got %v", connectors.Items)
	}
	if !reflect.DeepEqual(note.Connectors, []string{"Trino", "Redash"}) {
		t.Fatalf("connectors mismatch, got %v", note.Connectors)
	}

	if len(note.Links) != 1 {
		t.Fatalf("expected 1 link, got %d: %v", len(note.Links), note.Links)
	}
	if note.Links[0].Text != "release announcement" {
		t.Fatalf("link text mismatch, got %q", note.Links[0].Text)
	}
	if note.Links[0].URL != "https://blog.open-metadata.org/openmetadata-0-5-0-4a4aa58dbe9a" {
		t.Fatalf("link url mismatch, got %q", note.Links[0].URL)
	}

	if note.Slug != "/releases/0.5.0" {
		t.Fatalf("slug mismatch, got %q", note.Slug)
	}
	if len(note.Checksum) == 0 {
		t.Fatal("expected checksum to be populated")
	}
}

func TestParserIdempotent(t *testing.T) {
	parser := NewParser()
	path := filepath.Join("testdata", "0.5.0.md")

	first, err := parser.ParseFile(context.Background(), path)
	if err != nil {
		t.Fatalf("first parse: %v", err)
	}
	second, err := parser.ParseFile(context.Background(), path)
	if err != nil {
		t.Fatalf("second parse: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("re-parsing produced different structure\nfirst: %+v\nsecond: %+v", first, second)
	}
}

func TestParserMissingHeading(t *testing.T) {
	parser := NewParser()

	_, err := parser.ParseBytes(context.Background(), "0.5.0.md", []byte("plain text without heading\n"))
	if !errors.Is(err, ErrNoReleaseHeading) {
		t.Fatalf("expected ErrNoReleaseHeading, got %v", err)
	}
}

func TestParserEmptyDocument(t *testing.T) {
	parser := NewParser()

	_, err := parser.ParseBytes(context.Background(), "0.5.0.md", []byte("  \n\t\n"))
	if !errors.Is(err, ErrEmptyDocument) {
		t.Fatalf("expected ErrEmptyDocument, got %v", err)
	}
}

func TestParserNilDocument(t *testing.T) {
	parser := NewParser()

	if _, err := parser.Parse(context.Background(), nil); !errors.Is(err, ErrDocumentRequired) {
		t.Fatalf("expected ErrDocumentRequired, got %v", err)
	}
}

func TestParserUnbalancedCallout(t *testing.T) {
	parser := NewParser()
	src := []byte("# 0.5.0 Release\n\n{% note %}\nnever closed\n")

	_, err := parser.ParseBytes(context.Background(), "0.5.0.md", src)
	if !errors.Is(err, parserpkg.ErrUnterminated) {
		t.Fatalf("expected ErrUnterminated, got %v", err)
	}

	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected ParseError, got %T", err)
	}
	if perr.Line != 3 {
		t.Fatalf("expected line 3, got %d", perr.Line)
	}
}

func TestParserVersionMismatch(t *testing.T) {
	parser := NewParser()
	src := []byte("# 0.5.0 Release\n\n## Connectors\n\n- Trino\n")

	_, err := parser.ParseBytes(context.Background(), "content/v0.4.0/releases/0.5.0.md", src)
	if !errors.Is(err, ErrVersionMismatch) {
		t.Fatalf("expected ErrVersionMismatch, got %v", err)
	}
}

func TestParserConnectorQualifiers(t *testing.T) {
	parser := NewParser()
	src := []byte("# 0.4.0 Release\n\n## Connectors\n\n- Trino - Query federation support\n- Redash: dashboard ingestion\n")

	note, err := parser.ParseBytes(context.Background(), "0.4.0.md", src)
	if err != nil {
		t.Fatalf("ParseBytes() unexpected error: %v", err)
	}

	if !reflect.DeepEqual(note.Connectors, []string{"Trino", "Redash"}) {
		t.Fatalf("connectors mismatch, got %v", note.Connectors)
	}

	connectors, _ := note.Section("connectors")
	if connectors.Items[0] != "Trino - Query federation support" {
		t.Fatalf("section items should keep qualifiers, got %q", connectors.Items[0])
	}
}

func TestParserHighlights(t *testing.T) {
	parser := NewParser()
	src := []byte(`# 0.5.0 Release

{% note %}
- Lineage support across services
- Data profiler integration
{% /note %}

- Trino and Redash connectors

## Other features

- Pipeline entities are supported.
`)

	note, err := parser.ParseBytes(context.Background(), "0.5.0.md", src)
	if err != nil {
		t.Fatalf("ParseBytes() unexpected error: %v", err)
	}

	want := []string{
		"Lineage support across services",
		"Data profiler integration",
		"Trino and Redash connectors",
	}
	if !reflect.DeepEqual(note.Highlights, want) {
		t.Fatalf("highlights mismatch\n got: %v\nwant: %v", note.Highlights, want)
	}

	other, ok := note.Section("Other features")
	if !ok || len(other.Items) != 1 {
		t.Fatalf("expected Other features section with 1 item, got %+v", other)
	}
}

func TestParserDoesNotMutateDocument(t *testing.T) {
	parser := NewParser()
	body := []byte("# 0.5.0 Release\n\n## Connectors\n\n- Trino\n")
	doc := &interfaces.Document{
		FilePath: "releases/0.5.0.md",
		Version:  "0.5.0",
		Body:     body,
		Source:   body,
		Checksum: []byte{0x01, 0x02},
	}

	note, err := parser.Parse(context.Background(), doc)
	if err != nil {
		t.Fatalf("Parse() unexpected error: %v", err)
	}

	note.Checksum[0] = 0xff
	if doc.Checksum[0] != 0x01 {
		t.Fatal("parse result aliases the document checksum")
	}
	if string(doc.Body) != "# 0.5.0 Release\n\n## Connectors\n\n- Trino\n" {
		t.Fatal("document body mutated")
	}
}

func TestConnectorLabel(t *testing.T) {
	cases := []struct {
		item string
		want string
	}{
		{"Trino", "Trino"},
		{"Trino - Query federation", "Trino"},
		{"Redash: dashboards", "Redash"},
		{"Metabase - BI: dashboards", "Metabase"},
		{"  Looker  ", "Looker"},
	}

	for _, tc := range cases {
		if got := connectorLabel(tc.item); got != tc.want {
			t.Fatalf("connectorLabel(%q) = %q, want %q", tc.item, got, tc.want)
		}
	}
}
