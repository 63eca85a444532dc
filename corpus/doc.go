// Package corpus provides reference-record sources for index building: a
// built-in sample gazetteer for development and tests, and a JSONL loader
// for bulk data produced by external acquisition pipelines.
package corpus
