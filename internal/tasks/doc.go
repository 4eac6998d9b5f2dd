// Package tasks runs long catalog operations with progress reporting.
//
// # Bulk Export
//
// [Exporter.BulkExport] fetches entries by id with a pool of workers, paced by
// a shared [rate.Limiter], and writes each one to its own file named
// <id>_<slug>.<ext>. A failed entry is recorded and the batch carries on. When
// all entries are done an export_manifest.json summarizing the run is written
// next to them.
//
// # Progress Reporting
//
// Operations send [ProgressUpdate] values on an optional channel. Sends never
// block: when the channel is full the update is dropped.
package tasks
