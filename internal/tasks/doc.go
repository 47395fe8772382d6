// Package tasks runs the operations of the CLI menu with real-time progress reporting.
//
// # Core Operations
//
// [Engine] exposes one method per operation:
//
//  1. [Engine.VideoInfo] : details and statistics of the video behind a URL
//  2. [Engine.MixPlaylist] : the mix playlist (RD + video id) seeded by the video behind a URL
//  3. [Engine.PlaylistVideos] : every video of a playlist URL with statistics, fetched in batches of 50;
//     [Engine.PlaylistItems] and [Engine.VideoDetails] run its two steps separately
//  4. [Engine.MixPlaylists] : the mixes of a list of seed video ids, read from a spreadsheet by the caller
//  5. [Engine.AddToPlaylist] : inserts video ids into the user's "music video" playlist, creating it when absent
//
// [Engine.ExportVideos] and [Engine.ExportMixes] write results through the formatter package.
//
// # Error Policy
//
// Single-item operations return the service error. Batch operations (4 and 5) record each failed item in the
// result, report it as a progress update and carry on with the next one.
//
// # Progress Reporting
//
// The [ProgressUpdate] struct contains phase, step counters, messages, and optional data for advanced UI rendering.
// Updates use select with default to prevent blocking.
//
// # Local History
//
// The optional [VideoCacher] and [ExportRecorder] interfaces persist fetched videos and written exports.
// Both are called silently (errors ignored) so that history never disrupts an operation.
package tasks
