package lint

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-relnotes/internal/markdown"
	"github.com/goliatone/go-relnotes/pkg/testsupport"
)

func TestLintGoldenRelease(t *testing.T) {
	runner := NewRunner()

	report, err := runner.LintFile(context.Background(), filepath.Join("testdata", "0.5.0.md"))
	if err != nil {
		t.Fatalf("LintFile() unexpected error: %v", err)
	}

	if len(report.Findings) != 0 {
		t.Fatalf("golden release should be clean, got %v", report.Findings)
	}
	if report.Version != "0.5.0" {
		t.Fatalf("version mismatch, got %q", report.Version)
	}
	if err := report.Err(); err != nil {
		t.Fatalf("clean report should not fail: %v", err)
	}
	if report.HasWarnings() {
		t.Fatal("clean report should carry no warnings")
	}
}

func TestLintReportsDeterministic(t *testing.T) {
	src, err := testsupport.LoadFixture(filepath.Join("testdata", "0.5.0.md"))
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}

	runner := NewRunner()
	first, err := runner.LintBytes(context.Background(), "releases/0.5.0.md", src)
	if err != nil {
		t.Fatalf("first lint: %v", err)
	}
	second, err := runner.LintBytes(context.Background(), "releases/0.5.0.md", src)
	if err != nil {
		t.Fatalf("second lint: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("re-linting produced different reports\nfirst: %+v\nsecond: %+v", first, second)
	}
}

func TestLintNilTarget(t *testing.T) {
	runner := NewRunner()

	if _, err := runner.Lint(context.Background(), nil); !errors.Is(err, ErrTargetRequired) {
		t.Fatalf("expected ErrTargetRequired, got %v", err)
	}
}

func TestLintAggregatesInRuleOrder(t *testing.T) {
	src := "## Connectors\n\nProse [dashboard](www.example.com) only.\n"
	report := lintSource(t, "releases/0.5.0.md", src)

	var rules []string
	for _, finding := range report.Findings {
		rules = append(rules, finding.Rule)
	}

	want := []string{"release_heading", "section_bullets", "link_targets"}
	if !reflect.DeepEqual(rules, want) {
		t.Fatalf("rule order mismatch\n got: %v\nwant: %v", rules, want)
	}
	if err := report.Err(); err == nil {
		t.Fatal("expected report to fail")
	}
}

func TestLintTreeReports(t *testing.T) {
	fsys := fstest.MapFS{
		"releases/0.3.0.md": &fstest.MapFile{
			Data: []byte("---\ntitle: \"unterminated\n---\n\n# 0.3.0 Release\n"),
		},
		"releases/0.4.0.md": &fstest.MapFile{
			Data: []byte("# 0.4.0 Release\n\n## Connectors\n\n- Trino\n"),
		},
		"releases/0.5.0.md": &fstest.MapFile{
			Data: []byte("# 0.5.0 Release\n\n## Connectors\n\nNo list here.\n"),
		},
		"releases/notes.txt": &fstest.MapFile{
			Data: []byte("ignored"),
		},
	}

	loader := markdown.NewServiceWithFS(fsys, markdown.Config{Recursive: true})
	runner := NewRunner(WithLoader(loader))

	reports, err := runner.LintTree(context.Background(), "releases")
	if err != nil {
		t.Fatalf("LintTree() unexpected error: %v", err)
	}
	if len(reports) != 3 {
		t.Fatalf("expected 3 reports, got %d", len(reports))
	}

	if reports[0].Path != "releases/0.3.0.md" {
		t.Fatalf("report order mismatch, got %q first", reports[0].Path)
	}
	if len(reports[0].Findings) != 1 || reports[0].Findings[0].Rule != "loader" {
		t.Fatalf("expected loader finding for broken frontmatter, got %v", reports[0].Findings)
	}

	if reports[1].Path != "releases/0.4.0.md" {
		t.Fatalf("report order mismatch, got %q second", reports[1].Path)
	}
	if err := reports[1].Err(); err != nil {
		t.Fatalf("0.4.0 should be clean: %v", err)
	}

	if reports[2].Path != "releases/0.5.0.md" {
		t.Fatalf("report order mismatch, got %q third", reports[2].Path)
	}
	if err := reports[2].Err(); err == nil {
		t.Fatal("0.5.0 should fail section_bullets")
	}
}

func TestLintTreeRequiresLoader(t *testing.T) {
	runner := NewRunner()

	if _, err := runner.LintTree(context.Background(), "releases"); !errors.Is(err, ErrLoaderRequired) {
		t.Fatalf("expected ErrLoaderRequired, got %v", err)
	}
}

func TestRunnerRuleOrder(t *testing.T) {
	runner := NewRunner()

	var names []string
	for _, rule := range runner.Rules() {
		names = append(names, rule.Name())
	}

	want := []string{
		"release_heading",
		"balanced_shortcodes",
		"section_bullets",
		"frontmatter_schema",
		"link_targets",
	}
	if !reflect.DeepEqual(names, want) {
		t.Fatalf("rule set mismatch\n got: %v\nwant: %v", names, want)
	}
}
