// Package cli implements the command-line interface for ref-stats.
//
// The cli package provides the Cobra-based CLI that drives the extraction
// and enrichment pipeline: it reads saved referee HTML pages from an input
// directory, skips documents that fail extraction (logging which
// precondition was unmet), resolves game locations through the geocoding
// client, and writes the enriched referee records as a single JSON snapshot.
package cli
