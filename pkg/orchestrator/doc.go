// Package orchestrator coordinates the full pipeline: declaration ingestion,
// component validation, staged building, and rejection reporting.
package orchestrator
