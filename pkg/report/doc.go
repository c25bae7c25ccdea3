// Package report renders the structured rejection errors produced by the
// builder and component packages into human-readable diagnostics. Templates
// are pongo2 documents; embedded defaults can be overridden with a custom
// template filesystem, and a theme selector can contribute presentation
// tokens.
package report
