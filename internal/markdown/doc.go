// Package markdown ingests documentation source files: filesystem discovery,
// frontmatter and version extraction, checksumming, and goldmark AST parsing
// for structural analysis. The package never renders markdown to HTML; that is
// the job of the docs site consuming these files.
package markdown
