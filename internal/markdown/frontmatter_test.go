package markdown

import (
	"testing"
	"time"
)

func TestParseFrontMatterExtractsKnownFields(t *testing.T) {
	source := []byte(`---
title: 0.5.0 Release
slug: /releases/0-5-0
description: What changed in 0.5.0
collate: true
audience: operators
---

# 0.5.0 Release
`)

	fm, body, err := ParseFrontMatter(source)
	if err != nil {
		t.Fatalf("ParseFrontMatter: %v", err)
	}

	if fm.Title != "0.5.0 Release" {
		t.Fatalf("expected title, got %q", fm.Title)
	}
	if fm.Slug != "/releases/0-5-0" {
		t.Fatalf("expected slug, got %q", fm.Slug)
	}
	if fm.Description != "What changed in 0.5.0" {
		t.Fatalf("expected description, got %q", fm.Description)
	}
	if !fm.Collate {
		t.Fatal("expected collate true")
	}
	if fm.Custom["audience"] != "operators" {
		t.Fatalf("expected custom key in Custom, got %#v", fm.Custom)
	}
	if fm.Raw["title"] != "0.5.0 Release" || fm.Raw["audience"] != "operators" {
		t.Fatalf("expected raw map populated, got %#v", fm.Raw)
	}
	if string(body) != "\n# 0.5.0 Release\n" {
		t.Fatalf("unexpected body: %q", string(body))
	}
}

func TestParseFrontMatterWithoutBlock(t *testing.T) {
	source := []byte("# 0.5.0 Release\n")

	fm, body, err := ParseFrontMatter(source)
	if err != nil {
		t.Fatalf("ParseFrontMatter: %v", err)
	}
	if fm.Raw != nil {
		t.Fatalf("expected nil raw map, got %#v", fm.Raw)
	}
	if string(body) != string(source) {
		t.Fatalf("expected body to equal source, got %q", string(body))
	}
}

func TestBuildDocumentStampsMetadata(t *testing.T) {
	modified := time.Date(2021, 10, 19, 12, 0, 0, 0, time.UTC)
	doc, err := BuildDocument("releases/0.5.0.md", "0.5.0", []byte("# 0.5.0 Release\n"), modified)
	if err != nil {
		t.Fatalf("BuildDocument: %v", err)
	}

	if doc.FilePath != "releases/0.5.0.md" {
		t.Fatalf("unexpected path %q", doc.FilePath)
	}
	if doc.Version != "0.5.0" {
		t.Fatalf("unexpected version %q", doc.Version)
	}
	if !doc.LastModified.Equal(modified) {
		t.Fatalf("unexpected modified time %v", doc.LastModified)
	}
	if len(doc.Source) == 0 || len(doc.Body) == 0 {
		t.Fatal("expected source and body populated")
	}
}
