// package services defines interface Service for the YouTube Data API
package services

import (
	"context"

	"github.com/desertthunder/ytxl/internal/models"
)

// maxPageSize is the largest maxResults (and id batch) the Data API accepts.
const maxPageSize = 50

// Service defines the YouTube Data API operations used by the CLI.
//
// Every method is a thin wrapper over one remote endpoint; none retries.
type Service interface {
	// GetVideos fetches snippet, content details and statistics for ids, in batches of 50.
	// Unknown ids are silently absent from the result.
	GetVideos(ctx context.Context, ids []string) ([]models.VideoRecord, error)

	// ListPlaylistItems returns up to limit items of a playlist in remote order (limit <= 0 means all).
	ListPlaylistItems(ctx context.Context, playlistID string, limit int) ([]models.PlaylistItem, error)

	// ListMyPlaylists returns the playlists owned by the authenticated user.
	ListMyPlaylists(ctx context.Context) ([]models.PlaylistRecord, error)

	// CreatePlaylist creates a playlist owned by the authenticated user.
	CreatePlaylist(ctx context.Context, title, description, privacy string) (*models.PlaylistRecord, error)

	// AddPlaylistItem appends a video to a playlist.
	AddPlaylistItem(ctx context.Context, playlistID, videoID string) error

	// Name returns the name of the service
	Name() string
}
