package testsupport

import (
	"fmt"
	"os"
)

// LoadFixture reads a testdata fixture from disk.
func LoadFixture(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// ReleaseNote returns a canonical release-note document for version: the
// frontmatter, H1 heading, note callout, and connector section the linter
// accepts without findings.
func ReleaseNote(version string) []byte {
	return []byte(fmt.Sprintf(`---
title: %[1]s Release
slug: /releases/%[1]s
---

# %[1]s Release

{%% note noteType="Tip" %%}
Released on **2021, October 19th**.
{%% /note %%}

## Connectors

- Trino
`, version))
}
