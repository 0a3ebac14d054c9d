// Package dataprocessing implements the order event transform pipeline:
// dimension loading, event loading with last-writer-wins deduplication,
// per-record financial enrichment, and multi-dimensional aggregation.
//
// The pipeline is a single deterministic pass. Malformed rows are dropped or
// defaulted silently per the row rules; only resource I/O failures surface as
// errors. All monetary arithmetic is fixed-point integer arithmetic rounded
// by domain.RoundDiv.
package dataprocessing
