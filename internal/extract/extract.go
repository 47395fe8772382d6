// Package extract pulls video and playlist identifiers out of YouTube URLs and builds canonical URLs from them.
package extract

import (
	"regexp"
	"strings"
)

const (
	watchBaseURL = "https://www.youtube.com/watch"
	mixPrefix    = "RD"
)

// videoPatterns are tried in order; the first match wins.
var videoPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:v=|/)([0-9A-Za-z_-]{11}).*`),
	regexp.MustCompile(`(?:embed/|v/|youtu\.be/)([0-9A-Za-z_-]{11})`),
	regexp.MustCompile(`(?:watch\?v=)([0-9A-Za-z_-]{11})`),
}

var playlistPattern = regexp.MustCompile(`(?:list=)([a-zA-Z0-9_-]+)`)

// VideoID returns the 11-character video identifier embedded in url.
//
// Supports watch, short-link, embed, v/ and shorts URL shapes.
// Reports false when no pattern matches.
func VideoID(url string) (string, bool) {
	url = strings.TrimSpace(url)
	for _, re := range videoPatterns {
		if m := re.FindStringSubmatch(url); m != nil {
			return m[1], true
		}
	}
	return "", false
}

// PlaylistID returns the value of the list= query parameter in url.
func PlaylistID(url string) (string, bool) {
	m := playlistPattern.FindStringSubmatch(strings.TrimSpace(url))
	if m == nil {
		return "", false
	}
	return m[1], true
}

// MixPlaylistID returns the id of the platform-generated mix seeded by videoID.
func MixPlaylistID(videoID string) string {
	return mixPrefix + videoID
}

// IsMixPlaylist reports whether playlistID names a mix playlist.
func IsMixPlaylist(playlistID string) bool {
	return strings.HasPrefix(playlistID, mixPrefix)
}

// WatchURL returns the canonical watch URL for videoID.
func WatchURL(videoID string) string {
	return watchBaseURL + "?v=" + videoID
}

// MixURL returns the watch URL that plays the mix seeded by videoID.
func MixURL(videoID string) string {
	return WatchURL(videoID) + "&list=" + MixPlaylistID(videoID)
}
