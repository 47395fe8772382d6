// YouTube Data API v3 [Service] implementation
//
// Wraps the generated google.golang.org/api client. Read-only calls work with an API key,
// playlist mutations need an OAuth2 token source.
package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/desertthunder/ytxl/internal/models"
	"github.com/desertthunder/ytxl/internal/shared"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	htransport "google.golang.org/api/transport/http"
	"google.golang.org/api/youtube/v3"
)

const (
	resourceKindVideo        = "youtube#video"
	defaultRequestsPerSecond = 5.0
)

var (
	videoParts        = []string{"snippet", "contentDetails", "statistics"}
	playlistItemParts = []string{"snippet", "contentDetails"}
	playlistParts     = []string{"snippet", "status"}
)

// YouTubeOpts configures [NewYouTubeService].
//
// At least one of APIKey, TokenSource or HTTPClient must be set. An HTTPClient replaces both.
type YouTubeOpts struct {
	APIKey            string
	TokenSource       oauth2.TokenSource
	HTTPClient        *http.Client
	Endpoint          string  // overrides the API base path, e.g. for tests
	RequestsPerSecond float64 // zero uses the default of 5
}

// YouTubeService implements the Service interface for the YouTube Data API.
type YouTubeService struct {
	api     *youtube.Service
	limiter *rate.Limiter
	stats   *statisticsRecorder
}

// NewYouTubeService creates a client authenticated by opts.
func NewYouTubeService(ctx context.Context, opts YouTubeOpts) (*YouTubeService, error) {
	client, err := newHTTPClient(ctx, opts)
	if err != nil {
		return nil, err
	}

	stats := newStatisticsRecorder(client.Transport)
	clientOpts := []option.ClientOption{
		option.WithHTTPClient(&http.Client{
			Transport:     stats,
			CheckRedirect: client.CheckRedirect,
			Jar:           client.Jar,
			Timeout:       client.Timeout,
		}),
	}
	if opts.Endpoint != "" {
		clientOpts = append(clientOpts, option.WithEndpoint(opts.Endpoint))
	}

	api, err := youtube.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrServiceUnavailable, err)
	}

	rps := opts.RequestsPerSecond
	if rps <= 0 {
		rps = defaultRequestsPerSecond
	}

	return &YouTubeService{api: api, limiter: rate.NewLimiter(rate.Limit(rps), 1), stats: stats}, nil
}

// newHTTPClient builds the authenticated transport; an explicit HTTPClient wins over a token source or key.
func newHTTPClient(ctx context.Context, opts YouTubeOpts) (*http.Client, error) {
	var auth option.ClientOption
	switch {
	case opts.HTTPClient != nil:
		return opts.HTTPClient, nil
	case opts.TokenSource != nil:
		auth = option.WithTokenSource(opts.TokenSource)
	case opts.APIKey != "":
		auth = option.WithAPIKey(opts.APIKey)
	default:
		return nil, fmt.Errorf("%w: an API key or OAuth token is required", shared.ErrMissingCredentials)
	}

	client, _, err := htransport.NewClient(ctx, auth)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrServiceUnavailable, err)
	}
	return client, nil
}

// Name returns the service name.
func (y *YouTubeService) Name() string {
	return "YouTube"
}

// GetVideos calls videos.list once per batch of up to 50 ids.
func (y *YouTubeService) GetVideos(ctx context.Context, ids []string) ([]models.VideoRecord, error) {
	records := make([]models.VideoRecord, 0, len(ids))

	for start := 0; start < len(ids); start += maxPageSize {
		batch := ids[start:min(start+maxPageSize, len(ids))]

		if err := y.limiter.Wait(ctx); err != nil {
			return records, err
		}

		resp, err := y.api.Videos.List(videoParts).Id(batch...).Context(ctx).Do()
		if err != nil {
			return records, apiError("videos.list", shared.ErrVideoNotFound, err)
		}

		for _, item := range resp.Items {
			record := videoRecord(item)
			y.stats.dropMissing(&record)
			records = append(records, record)
		}
		y.stats.forget(batch)
	}
	return records, nil
}

// ListPlaylistItems pages through playlistItems.list.
func (y *YouTubeService) ListPlaylistItems(ctx context.Context, playlistID string, limit int) ([]models.PlaylistItem, error) {
	if playlistID == "" {
		return nil, fmt.Errorf("%w: playlist id", shared.ErrMissingArgument)
	}

	return Paginate(ctx, limit, func(ctx context.Context, token string, size int64) (Page[models.PlaylistItem], error) {
		if err := y.limiter.Wait(ctx); err != nil {
			return Page[models.PlaylistItem]{}, err
		}

		call := y.api.PlaylistItems.List(playlistItemParts).PlaylistId(playlistID).MaxResults(size).Context(ctx)
		if token != "" {
			call = call.PageToken(token)
		}

		resp, err := call.Do()
		if err != nil {
			return Page[models.PlaylistItem]{}, apiError("playlistItems.list", shared.ErrPlaylistNotFound, err)
		}

		page := Page[models.PlaylistItem]{NextPageToken: resp.NextPageToken}
		for _, item := range resp.Items {
			page.Items = append(page.Items, playlistItem(item))
		}
		return page, nil
	})
}

// ListMyPlaylists pages through playlists.list with mine=true.
func (y *YouTubeService) ListMyPlaylists(ctx context.Context) ([]models.PlaylistRecord, error) {
	return Paginate(ctx, 0, func(ctx context.Context, token string, size int64) (Page[models.PlaylistRecord], error) {
		if err := y.limiter.Wait(ctx); err != nil {
			return Page[models.PlaylistRecord]{}, err
		}

		call := y.api.Playlists.List(playlistParts).Mine(true).MaxResults(size).Context(ctx)
		if token != "" {
			call = call.PageToken(token)
		}

		resp, err := call.Do()
		if err != nil {
			return Page[models.PlaylistRecord]{}, apiError("playlists.list", shared.ErrPlaylistNotFound, err)
		}

		page := Page[models.PlaylistRecord]{NextPageToken: resp.NextPageToken}
		for _, p := range resp.Items {
			page.Items = append(page.Items, playlistRecord(p))
		}
		return page, nil
	})
}

// CreatePlaylist calls playlists.insert.
func (y *YouTubeService) CreatePlaylist(ctx context.Context, title, description, privacy string) (*models.PlaylistRecord, error) {
	if title == "" {
		return nil, fmt.Errorf("%w: playlist title", shared.ErrMissingArgument)
	}

	if err := y.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	playlist := &youtube.Playlist{
		Snippet: &youtube.PlaylistSnippet{Title: title, Description: description},
		Status:  &youtube.PlaylistStatus{PrivacyStatus: privacy},
	}

	created, err := y.api.Playlists.Insert(playlistParts, playlist).Context(ctx).Do()
	if err != nil {
		return nil, apiError("playlists.insert", shared.ErrPlaylistNotFound, err)
	}

	record := playlistRecord(created)
	return &record, nil
}

// AddPlaylistItem calls playlistItems.insert with a video resource id.
func (y *YouTubeService) AddPlaylistItem(ctx context.Context, playlistID, videoID string) error {
	if playlistID == "" || videoID == "" {
		return fmt.Errorf("%w: playlist id and video id", shared.ErrMissingArgument)
	}

	if err := y.limiter.Wait(ctx); err != nil {
		return err
	}

	item := &youtube.PlaylistItem{
		Snippet: &youtube.PlaylistItemSnippet{
			PlaylistId: playlistID,
			ResourceId: &youtube.ResourceId{Kind: resourceKindVideo, VideoId: videoID},
		},
	}

	if _, err := y.api.PlaylistItems.Insert([]string{"snippet"}, item).Context(ctx).Do(); err != nil {
		return apiError("playlistItems.insert", shared.ErrVideoNotFound, err)
	}
	return nil
}

func videoRecord(v *youtube.Video) models.VideoRecord {
	record := models.VideoRecord{ID: v.Id}

	if s := v.Snippet; s != nil {
		record.Title = s.Title
		record.ChannelID = s.ChannelId
		record.ChannelTitle = s.ChannelTitle
		record.PublishedAt = s.PublishedAt
	}
	if st := v.Statistics; st != nil {
		record.ViewCount = models.Uint64(st.ViewCount)
		record.LikeCount = models.Uint64(st.LikeCount)
		record.CommentCount = models.Uint64(st.CommentCount)
	}
	if cd := v.ContentDetails; cd != nil {
		record.Duration = cd.Duration
	}
	return record
}

func playlistItem(p *youtube.PlaylistItem) models.PlaylistItem {
	var item models.PlaylistItem

	if s := p.Snippet; s != nil {
		item.Title = s.Title
		item.ChannelID = s.ChannelId
		item.ChannelTitle = s.ChannelTitle
		item.OwnerChannelTitle = s.VideoOwnerChannelTitle
		item.Position = s.Position
		if s.ResourceId != nil {
			item.VideoID = s.ResourceId.VideoId
		}
	}
	if item.VideoID == "" && p.ContentDetails != nil {
		item.VideoID = p.ContentDetails.VideoId
	}
	return item
}

func playlistRecord(p *youtube.Playlist) models.PlaylistRecord {
	record := models.PlaylistRecord{ID: p.Id}
	if s := p.Snippet; s != nil {
		record.Title = s.Title
		record.Description = s.Description
	}
	if p.Status != nil {
		record.Privacy = p.Status.PrivacyStatus
	}
	return record
}

// apiError maps a client error to a shared sentinel; 404 responses map to notFound.
func apiError(op string, notFound, err error) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		switch gerr.Code {
		case http.StatusNotFound:
			return fmt.Errorf("%w: %s: %s", notFound, op, gerr.Message)
		case http.StatusUnauthorized:
			return fmt.Errorf("%w: %s: %s", shared.ErrNotAuthenticated, op, gerr.Message)
		case http.StatusServiceUnavailable:
			return fmt.Errorf("%w: %s: %s", shared.ErrServiceUnavailable, op, gerr.Message)
		}
	}
	return fmt.Errorf("%w: %s: %w", shared.ErrAPIRequest, op, err)
}
