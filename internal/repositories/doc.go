// Package repositories implements SQLite persistence for the local history.
//
// Each repository handles CRUD operations with atomic sequence generation for human-readable ordering.
// All repositories support soft deletes via deleted_at timestamps and exclude deleted records from queries by default.
//
// Key Implementations:
//   - [VideoRepository] : cache of fetched video metadata, unique per video id
//   - [ExportRepository] : log of spreadsheets and other exports written by the CLI
//   - [VideoCacheAdapter], [ExportLogAdapter] : bridges to the tasks package's optional history hooks
//
// The [NextSequence] function atomically increments per-table sequence counters in dedicated sequence tables.
package repositories
