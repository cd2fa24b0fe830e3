// Package pipeline implements the page conversion stages of a site build.
//
// A page flows through four stages:
//   - Markdown preprocessing (line endings, BOM, Unicode normalization)
//   - Markdown to HTML conversion via the native dialect engine or Goldmark
//   - Template injection of the page title and content
//   - Base path rewriting of root-relative links
//
// Each stage is a small interface with one default implementation so the
// root mdsite package can swap any of them in tests.
package pipeline
