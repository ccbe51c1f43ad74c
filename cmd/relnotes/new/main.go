package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/goliatone/go-relnotes/cmd/relnotes/internal/bootstrap"
	"github.com/goliatone/go-relnotes/internal/generator"
	"github.com/goliatone/go-relnotes/internal/markdown"
	"github.com/goliatone/go-relnotes/notes"
)

var moduleBuilder = bootstrap.BuildModule

func main() {
	if err := runNew(os.Args[1:]); err != nil {
		log.Fatalf("relnotes new: %v", err)
	}
}

type stringList struct {
	values []string
}

func (l *stringList) String() string { return strings.Join(l.values, ",") }

func (l *stringList) Set(value string) error {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return fmt.Errorf("value cannot be empty")
	}
	l.values = append(l.values, trimmed)
	return nil
}

type sectionList struct {
	sections []generator.SectionInput
}

func (l *sectionList) String() string { return "" }

func (l *sectionList) Set(value string) error {
	section, err := bootstrap.ParseSection(value)
	if err != nil {
		return err
	}
	l.sections = append(l.sections, section)
	return nil
}

type linkList struct {
	links []notes.Link
}

func (l *linkList) String() string { return "" }

func (l *linkList) Set(value string) error {
	link, err := bootstrap.ParseLink(value)
	if err != nil {
		return err
	}
	l.links = append(l.links, link)
	return nil
}

func runNew(args []string) error {
	fs := flag.NewFlagSet("relnotes-new", flag.ExitOnError)
	version := fs.String("version", "", "Release version to scaffold (required)")
	date := fs.String("date", "", "Human readable release date, e.g. \"2021, October 19th\"")
	noteType := fs.String("note-type", "", "Release note admonition type: Tip, Note, Warning or Danger")
	outputDir := fs.String("output-dir", "releases", "Directory release notes are written to")
	force := fs.Bool("force", false, "Overwrite an existing release note")
	toStdout := fs.Bool("stdout", false, "Render to stdout instead of writing a file")

	var highlights stringList
	var sections sectionList
	var links linkList
	fs.Var(&highlights, "highlight", "Highlight bullet, repeatable")
	fs.Var(&sections, "section", "Section as \"Heading=item;item\", repeatable")
	fs.Var(&links, "link", "Related link as \"Text=URL\", repeatable")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if strings.TrimSpace(*version) == "" {
		return fmt.Errorf("-version is required")
	}

	module, err := moduleBuilder(bootstrap.Options{
		OutputDir: *outputDir,
	})
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}
	if module == nil || module.Generator == nil {
		return fmt.Errorf("generator service not configured; ensure Features.Scaffold is enabled")
	}

	input := generator.Input{
		Version:    markdown.NormalizeVersion(*version),
		Date:       strings.TrimSpace(*date),
		NoteType:   strings.TrimSpace(*noteType),
		Highlights: highlights.values,
		Sections:   sections.sections,
		Links:      links.links,
	}

	ctx := context.Background()
	if *toStdout {
		rendered, err := module.Generator.Render(ctx, input)
		if err != nil {
			return fmt.Errorf("render release note: %w", err)
		}
		_, err = os.Stdout.Write(rendered)
		return err
	}

	path, err := module.Generator.Write(ctx, input, generator.WriteOptions{Force: *force})
	if err != nil {
		return fmt.Errorf("write release note: %w", err)
	}
	fmt.Fprintf(os.Stdout, "release note written to %s\n", path)
	return nil
}
