package models

import "strconv"

// Placeholders substituted for fields the API did not return.
const (
	Unknown        = "Unknown"
	UnknownTitle   = "Unknown Title"
	UnknownChannel = "Unknown Channel"
	UnknownID      = "Unknown ID"
	NotAvailable   = "N/A"
)

// VideoRecord is a projection of a videos.list item.
//
// Counts are nil when the response carried no statistics part.
type VideoRecord struct {
	ID           string  `json:"video_id"`
	Title        string  `json:"title"`
	ChannelID    string  `json:"channel_id"`
	ChannelTitle string  `json:"channel_title"`
	PublishedAt  string  `json:"published_at"`
	ViewCount    *uint64 `json:"view_count,omitempty"`
	LikeCount    *uint64 `json:"like_count,omitempty"`
	CommentCount *uint64 `json:"comment_count,omitempty"`
	Duration     string  `json:"duration,omitempty"`
}

// PlaylistItem is a projection of a playlistItems.list item.
type PlaylistItem struct {
	VideoID           string `json:"video_id"`
	Title             string `json:"title"`
	ChannelID         string `json:"channel_id"`
	ChannelTitle      string `json:"channel_title"`
	OwnerChannelTitle string `json:"owner_channel_title,omitempty"` // uploader of the video, not of the playlist
	Position          int64  `json:"position"`
}

// PlaylistRecord is a playlist and, when fetched, its items in remote order.
type PlaylistRecord struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description,omitempty"`
	Privacy     string         `json:"privacy,omitempty"`
	Items       []PlaylistItem `json:"items,omitempty"`
}

// MixPlaylistEntry is one video of a mix playlist together with the seed video that produced the mix.
type MixPlaylistEntry struct {
	SourceVideoID string `json:"source_video_id"`
	VideoID       string `json:"video_id"`
	Title         string `json:"title"`
	Channel       string `json:"channel"`
}

// Or returns s, or fallback when s is empty.
func Or(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

// FormatCount renders a statistics count, or [NotAvailable] when absent.
func FormatCount(n *uint64) string {
	if n == nil {
		return NotAvailable
	}
	return strconv.FormatUint(*n, 10)
}

// Uint64 returns a pointer to n.
func Uint64(n uint64) *uint64 {
	return &n
}

// NewMixPlaylistEntry converts a mix playlist item into an entry seeded by sourceID, applying placeholders.
func NewMixPlaylistEntry(sourceID string, item PlaylistItem) MixPlaylistEntry {
	return MixPlaylistEntry{
		SourceVideoID: Or(sourceID, Unknown),
		VideoID:       Or(item.VideoID, UnknownID),
		Title:         Or(item.Title, UnknownTitle),
		Channel:       Or(item.OwnerChannelTitle, UnknownChannel),
	}
}

// VideoIDs returns the video ids of items in order.
func VideoIDs(items []PlaylistItem) []string {
	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.VideoID)
	}
	return ids
}
