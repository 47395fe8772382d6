// Package services defines the [Service] interface over the YouTube Data API v3 and implements it with
// the generated google.golang.org/api client.
//
// # Authentication
//
// [YouTubeService] accepts either an API key (read-only: videos and playlist items) or an OAuth2 token
// source (required for listing, creating and mutating the user's playlists). [OAuthClient] loads a Google
// installed-app client secrets file and produces the consent URL and token source for the latter.
//
// # Pagination
//
// List endpoints return at most 50 items per page plus a continuation token. [Paginate] drives any such
// endpoint until the token runs out or a caller-supplied cap is reached, truncating to the cap.
//
// # Rate Limiting
//
// Every request waits on a [rate.Limiter] shared by the service instance.
//
// # Error Handling
//
// Services use typed errors from shared package:
//   - [shared.ErrMissingCredentials] : no API key or token source
//   - [shared.ErrNotAuthenticated] : the API answered 401
//   - [shared.ErrPlaylistNotFound] / [shared.ErrVideoNotFound] : the API answered 404
//   - [shared.ErrAPIRequest] : any other failed request
//
// # API Mappings
//
// Responses are projected onto [models.VideoRecord], [models.PlaylistItem] and [models.PlaylistRecord].
// Statistics are left nil when the response has no statistics part.
package services
