// Package models defines domain entities and persistence interfaces for ytxl.
//
// The package contains two categories of types:
//
// 1. Records: read-only projections of YouTube Data API responses, built from one response and written to one spreadsheet row
//   - [VideoRecord] : Video metadata and statistics
//   - [PlaylistItem] : One entry of a playlist, in playlist order
//   - [PlaylistRecord] : Playlist metadata with its ordered items
//   - [MixPlaylistEntry] : A mix playlist entry with a back-reference to its seed video
//
// 2. Persistent Entities: rows in the local SQLite history
//   - [PersistedVideo] : Cached [VideoRecord] keyed by platform video id
//   - [ExportJob] : A spreadsheet written by the CLI
//
// Records are never validated or deduplicated; missing API fields are replaced with placeholder strings at display time.
// All persistent entities implement the [Model] interface and are stored through a [Repository].
package models
