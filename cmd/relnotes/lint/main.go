package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/goliatone/go-relnotes/cmd/relnotes/internal/bootstrap"
	"github.com/goliatone/go-relnotes/lint"
)

var moduleBuilder = bootstrap.BuildModule

func main() {
	if err := runLint(os.Args[1:]); err != nil {
		log.Fatalf("relnotes lint: %v", err)
	}
}

func runLint(args []string) error {
	fs := flag.NewFlagSet("relnotes-lint", flag.ExitOnError)
	contentDir := fs.String("content-dir", "content", "Path to the markdown content root")
	pattern := fs.String("pattern", "*.md", "Glob pattern applied when discovering markdown files")
	file := fs.String("path", "", "Lint a single markdown file relative to the working directory")
	dir := fs.String("dir", "", "Directory to lint (defaults to the content root)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	module, err := moduleBuilder(bootstrap.Options{
		ContentDir: *contentDir,
		Pattern:    *pattern,
		Recursive:  true,
	})
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}
	if module == nil || module.Lint == nil {
		return fmt.Errorf("lint service not configured; ensure Features.Lint is enabled")
	}

	ctx := context.Background()

	var reports []*lint.Report
	if target := strings.TrimSpace(*file); target != "" {
		report, err := module.Lint.LintFile(ctx, target)
		if err != nil {
			return fmt.Errorf("lint %s: %w", target, err)
		}
		reports = append(reports, report)
	} else {
		root := strings.TrimSpace(*dir)
		if root == "" {
			root = strings.TrimSpace(*contentDir)
		}
		reports, err = module.Lint.LintTree(ctx, root)
		if err != nil {
			return fmt.Errorf("lint tree %s: %w", root, err)
		}
	}

	errorCount := 0
	for _, report := range reports {
		errs, _ := report.Counts()
		errorCount += errs
		for _, finding := range report.Findings {
			fmt.Fprintf(os.Stdout, "%s:%d: %s: %s: %s\n", report.Path, finding.Line, finding.Severity, finding.Rule, finding.Message)
		}
	}

	if errorCount > 0 {
		return fmt.Errorf("found %d problems in %d files", errorCount, len(reports))
	}
	fmt.Fprintf(os.Stdout, "%d files lint clean\n", len(reports))
	return nil
}
