package main

import (
	"context"
	"strings"
	"testing"

	"github.com/goliatone/go-relnotes/cmd/relnotes/internal/bootstrap"
	"github.com/goliatone/go-relnotes/internal/generator"
)

type stubGeneratorService struct {
	renderCalls int
	writeCalls  int
	input       generator.Input
	writeOpts   generator.WriteOptions
}

func (s *stubGeneratorService) Render(_ context.Context, in generator.Input) ([]byte, error) {
	s.renderCalls++
	s.input = in
	return []byte("---\n"), nil
}

func (s *stubGeneratorService) Write(_ context.Context, in generator.Input, opts generator.WriteOptions) (string, error) {
	s.writeCalls++
	s.input = in
	s.writeOpts = opts
	return "releases/0.5.0.md", nil
}

func (s *stubGeneratorService) RenderAll(context.Context, []generator.Input, generator.BuildOptions) (*generator.BuildResult, error) {
	return nil, nil
}

func TestRunNewWritesScaffold(t *testing.T) {
	original := moduleBuilder
	defer func() { moduleBuilder = original }()

	svc := &stubGeneratorService{}
	var builtWith bootstrap.Options
	moduleBuilder = func(opts bootstrap.Options) (*bootstrap.Module, error) {
		builtWith = opts
		return &bootstrap.Module{Generator: svc}, nil
	}

	err := runNew([]string{
		"-version", "v0.5.0",
		"-date", "2021, October 19th",
		"-highlight", "Faster incremental indexing",
		"-section", "Connectors=Trino;Redash",
		"-link", "Docs=https://docs.example.com/releases/0.5.0",
		"-force",
	})
	if err != nil {
		t.Fatalf("runNew returned error: %v", err)
	}

	if builtWith.OutputDir != "releases" {
		t.Fatalf("expected default output dir releases, got %q", builtWith.OutputDir)
	}
	if svc.writeCalls != 1 {
		t.Fatalf("expected one write, got %d", svc.writeCalls)
	}
	if svc.input.Version != "0.5.0" {
		t.Fatalf("expected normalized version 0.5.0, got %q", svc.input.Version)
	}
	if svc.input.Date != "2021, October 19th" {
		t.Fatalf("unexpected date %q", svc.input.Date)
	}
	if len(svc.input.Highlights) != 1 || svc.input.Highlights[0] != "Faster incremental indexing" {
		t.Fatalf("unexpected highlights %v", svc.input.Highlights)
	}
	if len(svc.input.Sections) != 1 {
		t.Fatalf("expected one section, got %d", len(svc.input.Sections))
	}
	section := svc.input.Sections[0]
	if section.Heading != "Connectors" || len(section.Items) != 2 || section.Items[1] != "Redash" {
		t.Fatalf("unexpected section %+v", section)
	}
	if len(svc.input.Links) != 1 || svc.input.Links[0].Text != "Docs" {
		t.Fatalf("unexpected links %v", svc.input.Links)
	}
	if !svc.writeOpts.Force {
		t.Fatal("expected force write")
	}
}

func TestRunNewRequiresVersion(t *testing.T) {
	original := moduleBuilder
	defer func() { moduleBuilder = original }()

	moduleBuilder = func(bootstrap.Options) (*bootstrap.Module, error) {
		t.Fatal("module should not be built without a version")
		return nil, nil
	}

	err := runNew(nil)
	if err == nil || !strings.Contains(err.Error(), "-version") {
		t.Fatalf("expected missing version error, got %v", err)
	}
}

func TestRunNewRendersToStdout(t *testing.T) {
	original := moduleBuilder
	defer func() { moduleBuilder = original }()

	svc := &stubGeneratorService{}
	moduleBuilder = func(bootstrap.Options) (*bootstrap.Module, error) {
		return &bootstrap.Module{Generator: svc}, nil
	}

	if err := runNew([]string{"-version", "0.6.0", "-stdout"}); err != nil {
		t.Fatalf("runNew returned error: %v", err)
	}
	if svc.renderCalls != 1 {
		t.Fatalf("expected one render, got %d", svc.renderCalls)
	}
	if svc.writeCalls != 0 {
		t.Fatalf("expected no writes, got %d", svc.writeCalls)
	}
}
