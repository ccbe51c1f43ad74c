package parser

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestMarkdocParser_Extract(t *testing.T) {
	parser := NewMarkdocParser()

	input := mustReadFile(t, "markdoc_basic_input.md")
	wantOutput := mustReadFile(t, "markdoc_basic_output.golden")

	gotContent, shortcodes, err := parser.Extract(input)
	if err != nil {
		t.Fatalf("Extract() unexpected error: %v", err)
	}

	if strings.TrimSpace(gotContent) != strings.TrimSpace(wantOutput) {
		t.Fatalf("Extract() output mismatch\n got: %q\nwant: %q", gotContent, wantOutput)
	}

	if len(shortcodes) != 2 {
		t.Fatalf("expected 2 shortcodes, got %d", len(shortcodes))
	}
	if shortcodes[0].Name != "note" {
		t.Fatalf("expected first shortcode note, got %s", shortcodes[0].Name)
	}
	if shortcodes[0].Params["noteType"] != "Tip" {
		t.Fatalf("expected noteType Tip, got %v", shortcodes[0].Params["noteType"])
	}
	if got := strings.TrimSpace(shortcodes[0].Inner); got != "Released on **2021, October 19th**." {
		t.Fatalf("note inner mismatch, got %q", got)
	}
	if shortcodes[0].Line != 3 {
		t.Fatalf("expected note on line 3, got %d", shortcodes[0].Line)
	}
	if shortcodes[1].Name != "image" {
		t.Fatalf("expected second shortcode image, got %s", shortcodes[1].Name)
	}
	if shortcodes[1].Line != 11 {
		t.Fatalf("expected image on line 11, got %d", shortcodes[1].Line)
	}
}

func TestMarkdocParser_NestedTags(t *testing.T) {
	parser := NewMarkdocParser()
	input := "{% note %}\n{% image src=\"/images/lineage.png\" /%}\n{% /note %}"

	_, shortcodes, err := parser.Extract(input)
	if err != nil {
		t.Fatalf("Extract() unexpected error: %v", err)
	}

	if len(shortcodes) != 2 {
		t.Fatalf("expected 2 shortcodes, got %d", len(shortcodes))
	}
	if shortcodes[0].Name != "image" || shortcodes[0].Line != 2 {
		t.Fatalf("expected nested image on line 2, got %s line %d", shortcodes[0].Name, shortcodes[0].Line)
	}
	if shortcodes[1].Name != "note" || shortcodes[1].Line != 1 {
		t.Fatalf("expected note on line 1, got %s line %d", shortcodes[1].Name, shortcodes[1].Line)
	}
	if !strings.Contains(shortcodes[1].Inner, "<!-- shortcode:0 -->") {
		t.Fatalf("expected note inner to hold nested placeholder, got %q", shortcodes[1].Inner)
	}
}

func TestMarkdocParser_QuotedParams(t *testing.T) {
	parser := NewMarkdocParser()
	input := `{% image src="/images/profiler.png" alt="data profiler summary" /%}`

	_, shortcodes, err := parser.Extract(input)
	if err != nil {
		t.Fatalf("Extract() unexpected error: %v", err)
	}
	if len(shortcodes) != 1 {
		t.Fatalf("expected 1 shortcode, got %d", len(shortcodes))
	}
	if shortcodes[0].Params["alt"] != "data profiler summary" {
		t.Fatalf("quoted value split, got %v", shortcodes[0].Params["alt"])
	}
}

func TestMarkdocParser_Mismatched(t *testing.T) {
	parser := NewMarkdocParser()
	input := "{% note noteType=\"Warning\" %}Oops{% /image %}"

	_, _, err := parser.Extract(input)
	if !errors.Is(err, ErrMismatchedClose) {
		t.Fatalf("expected ErrMismatchedClose, got %v", err)
	}

	var tagErr *TagError
	if !errors.As(err, &tagErr) {
		t.Fatalf("expected TagError, got %T", err)
	}
	if tagErr.Name != "image" || tagErr.Expected != "note" {
		t.Fatalf("unexpected tag error fields: %+v", tagErr)
	}
}

func TestMarkdocParser_UnexpectedClose(t *testing.T) {
	parser := NewMarkdocParser()

	_, _, err := parser.Extract("intro\n{% /note %}")
	if !errors.Is(err, ErrUnexpectedClose) {
		t.Fatalf("expected ErrUnexpectedClose, got %v", err)
	}

	var tagErr *TagError
	if !errors.As(err, &tagErr) {
		t.Fatalf("expected TagError, got %T", err)
	}
	if tagErr.Line != 2 {
		t.Fatalf("expected line 2, got %d", tagErr.Line)
	}
}

func TestMarkdocParser_Unterminated(t *testing.T) {
	parser := NewMarkdocParser()

	_, _, err := parser.Extract("{% note %}\nstill open")
	if !errors.Is(err, ErrUnterminated) {
		t.Fatalf("expected ErrUnterminated, got %v", err)
	}

	var tagErr *TagError
	if !errors.As(err, &tagErr) {
		t.Fatalf("expected TagError, got %T", err)
	}
	if tagErr.Name != "note" || tagErr.Line != 1 {
		t.Fatalf("unexpected tag error fields: %+v", tagErr)
	}
}

func mustReadFile(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join("testdata", name)
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", name, err)
	}
	return string(data)
}
