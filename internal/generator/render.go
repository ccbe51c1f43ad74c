package generator

import (
	_ "embed"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/goliatone/go-relnotes/notes"
)

//go:embed templates/release_note.tpl.md
var releaseNoteTplFile string

var releaseNoteTemplate = template.Must(template.New("release_note").Parse(releaseNoteTplFile))

// templateData is the shape the embedded template consumes. Callout controls
// whether the note block renders at all; it is true whenever the block would
// carry content.
type templateData struct {
	Title      string
	Slug       string
	Version    string
	NoteType   string
	Date       string
	Highlights []string
	Links      []notes.Link
	Sections   []SectionInput
	Callout    bool
}

func buildTemplateData(in Input) templateData {
	return templateData{
		Title:      in.Version + " Release",
		Slug:       "/releases/" + in.Version,
		Version:    in.Version,
		NoteType:   in.NoteType,
		Date:       in.Date,
		Highlights: in.Highlights,
		Links:      in.Links,
		Sections:   in.Sections,
		Callout:    in.Date != "" || len(in.Highlights) > 0 || len(in.Links) > 0,
	}
}

// normalise canonicalises template whitespace: blank-line runs collapse to a
// single separator, no blank line sits before a closing tag, and the output
// ends with exactly one newline. Equal inputs therefore render equal bytes.
func normalise(raw []byte) []byte {
	text := strings.ReplaceAll(string(raw), "\r\n", "\n")

	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		trimmed := strings.TrimRight(line, " \t")
		if trimmed == "" {
			if len(out) == 0 || out[len(out)-1] == "" {
				continue
			}
			out = append(out, "")
			continue
		}
		if strings.HasPrefix(trimmed, "{% /") && len(out) > 0 && out[len(out)-1] == "" {
			out = out[:len(out)-1]
		}
		out = append(out, trimmed)
	}
	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}

	return []byte(strings.Join(out, "\n") + "\n")
}

// FormatReleaseDate renders t in the prose style release notes use, for
// example "2021, October 19th".
func FormatReleaseDate(t time.Time) string {
	return fmt.Sprintf("%d, %s %s", t.Year(), t.Month().String(), ordinalDay(t.Day()))
}

func ordinalDay(day int) string {
	suffix := "th"
	switch {
	case day%100 >= 11 && day%100 <= 13:
	case day%10 == 1:
		suffix = "st"
	case day%10 == 2:
		suffix = "nd"
	case day%10 == 3:
		suffix = "rd"
	}
	return fmt.Sprintf("%d%s", day, suffix)
}
