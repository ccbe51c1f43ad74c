package markdown

import "testing"

func TestDetectVersion(t *testing.T) {
	cases := []struct {
		path string
		want string
	}{
		{"content/v0.5.0/releases/0.5.0.md", "0.5.0"},
		{"content/v1.2/page.md", "1.2"},
		{"releases/0.5.0.md", "0.5.0"},
		{"docs/guide.md", ""},
		{"content/latest/page.md", ""},
		{"v2/index.md", "2"},
		{"0.5.0.md", "0.5.0"},
	}

	for _, tc := range cases {
		if got := DetectVersion(tc.path); got != tc.want {
			t.Fatalf("DetectVersion(%q): expected %q, got %q", tc.path, tc.want, got)
		}
	}
}

func TestNormalizeVersion(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"v0.5.0", "0.5.0"},
		{"0.5.0", "0.5.0"},
		{" v1.0 ", "1.0"},
		{"latest", "latest"},
		{"", ""},
	}

	for _, tc := range cases {
		if got := NormalizeVersion(tc.in); got != tc.want {
			t.Fatalf("NormalizeVersion(%q): expected %q, got %q", tc.in, tc.want, got)
		}
	}
}

func TestIsVersion(t *testing.T) {
	if !IsVersion("0.5.0") || !IsVersion("v1.2.3") {
		t.Fatal("expected version identifiers to match")
	}
	if IsVersion("release-0.5.0") || IsVersion("") {
		t.Fatal("expected non-version strings to be rejected")
	}
}
