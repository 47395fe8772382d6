// package tasks implements the video, mix playlist and playlist operations behind the CLI menu.
//
// The core abstraction is Engine, which resolves URLs, calls the Data API through a [services.Service] and writes exports.
// Operations emit progress updates via channels for non-blocking status reporting to CLI/UI layers.
package tasks

import (
	"context"
	"fmt"

	"github.com/desertthunder/ytxl/internal/extract"
	"github.com/desertthunder/ytxl/internal/formatter"
	"github.com/desertthunder/ytxl/internal/models"
	"github.com/desertthunder/ytxl/internal/services"
	"github.com/desertthunder/ytxl/internal/shared"
)

const (
	DefaultMixMaxResults      = 10
	DefaultPlaylistMaxResults = 50

	DefaultPlaylistTitle       = "music video"
	DefaultPlaylistDescription = "A playlist for music videos"
	DefaultPlaylistPrivacy     = "private"
)

// VideoCacher persists fetched video details.
type VideoCacher interface {
	CacheVideo(record models.VideoRecord) error
}

// ExportRecorder records a written export file.
type ExportRecorder interface {
	RecordExport(kind models.ExportKind, source, path string, rows int) error
}

// MixResult is the mix playlist seeded by one video.
type MixResult struct {
	SourceVideoID string
	PlaylistID    string
	URL           string
	Entries       []models.MixPlaylistEntry
}

// ItemFailure is a seed or video that failed and was skipped.
type ItemFailure struct {
	VideoID string
	Err     error
}

// MixBatchResult contains the mixes of every seed of a batch, concatenated in seed order.
type MixBatchResult struct {
	Entries   []models.MixPlaylistEntry
	Seeds     int
	Succeeded int
	Empty     []string // seeds whose mix had no items
	Failed    []ItemFailure
}

// PlaylistOpts names the playlist [Engine.AddToPlaylist] finds or creates. Blank fields use the defaults.
type PlaylistOpts struct {
	Title       string
	Description string
	Privacy     string
}

func (o PlaylistOpts) withDefaults() PlaylistOpts {
	return PlaylistOpts{
		Title:       models.Or(o.Title, DefaultPlaylistTitle),
		Description: models.Or(o.Description, DefaultPlaylistDescription),
		Privacy:     models.Or(o.Privacy, DefaultPlaylistPrivacy),
	}
}

// AddResult contains the outcome of [Engine.AddToPlaylist].
type AddResult struct {
	Playlist *models.PlaylistRecord
	Created  bool
	Added    []string
	Failed   []ItemFailure
}

// Engine runs the CLI operations against a [services.Service].
type Engine struct {
	svc      services.Service
	cache    VideoCacher
	recorder ExportRecorder
}

// NewEngine creates an Engine. Caching and export recording are off until set.
func NewEngine(svc services.Service) *Engine {
	return &Engine{svc: svc}
}

// SetVideoCacher enables caching of fetched videos.
func (e *Engine) SetVideoCacher(c VideoCacher) { e.cache = c }

// SetExportRecorder enables recording of written exports.
func (e *Engine) SetExportRecorder(r ExportRecorder) { e.recorder = r }

// sendProgress sends a progress update through the channel without blocking.
func (e *Engine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

func (e *Engine) service() (services.Service, error) {
	if e.svc == nil {
		return nil, fmt.Errorf("%w: YouTube service not initialized", shared.ErrServiceUnavailable)
	}
	return e.svc, nil
}

// cacheVideos stores records silently; cache failures never interrupt an operation.
func (e *Engine) cacheVideos(records []models.VideoRecord) {
	if e.cache == nil {
		return
	}
	for _, r := range records {
		_ = e.cache.CacheVideo(r)
	}
}

func (e *Engine) recordExport(kind models.ExportKind, source, path string, rows int) {
	if e.recorder == nil {
		return
	}
	_ = e.recorder.RecordExport(kind, source, path, rows)
}

// VideoInfo fetches the details of the video referenced by rawURL.
func (e *Engine) VideoInfo(ctx context.Context, rawURL string) (*models.VideoRecord, error) {
	svc, err := e.service()
	if err != nil {
		return nil, err
	}

	videoID, ok := extract.VideoID(rawURL)
	if !ok {
		return nil, fmt.Errorf("%w: could not extract video ID from '%s'", shared.ErrInvalidURL, rawURL)
	}

	videos, err := svc.GetVideos(ctx, []string{videoID})
	if err != nil {
		return nil, err
	}
	if len(videos) == 0 {
		return nil, fmt.Errorf("%w: %s", shared.ErrVideoNotFound, videoID)
	}

	e.cacheVideos(videos)
	return &videos[0], nil
}

// MixPlaylist fetches up to limit entries of the mix seeded by the video referenced by rawURL.
//
// An empty mix is not an error; the result has no entries.
func (e *Engine) MixPlaylist(ctx context.Context, rawURL string, limit int) (*MixResult, error) {
	videoID, ok := extract.VideoID(rawURL)
	if !ok {
		return nil, fmt.Errorf("%w: could not extract video ID from '%s'", shared.ErrInvalidURL, rawURL)
	}
	return e.mixForVideo(ctx, videoID, limit)
}

func (e *Engine) mixForVideo(ctx context.Context, videoID string, limit int) (*MixResult, error) {
	svc, err := e.service()
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultMixMaxResults
	}

	playlistID := extract.MixPlaylistID(videoID)
	items, err := svc.ListPlaylistItems(ctx, playlistID, limit)
	if err != nil {
		return nil, err
	}

	result := &MixResult{
		SourceVideoID: videoID,
		PlaylistID:    playlistID,
		URL:           extract.MixURL(videoID),
		Entries:       make([]models.MixPlaylistEntry, 0, len(items)),
	}
	for _, item := range items {
		result.Entries = append(result.Entries, models.NewMixPlaylistEntry(videoID, item))
	}
	return result, nil
}

// PlaylistVideos fetches up to limit videos of the playlist referenced by rawURL, with full statistics.
func (e *Engine) PlaylistVideos(ctx context.Context, rawURL string, limit int, progress chan<- ProgressUpdate) ([]models.VideoRecord, error) {
	items, err := e.PlaylistItems(ctx, rawURL, limit, progress)
	if err != nil || len(items) == 0 {
		return nil, err
	}
	return e.VideoDetails(ctx, models.VideoIDs(items), progress)
}

// PlaylistItems lists up to limit items of the playlist referenced by rawURL (default 50).
func (e *Engine) PlaylistItems(ctx context.Context, rawURL string, limit int, progress chan<- ProgressUpdate) ([]models.PlaylistItem, error) {
	svc, err := e.service()
	if err != nil {
		return nil, err
	}

	playlistID, ok := extract.PlaylistID(rawURL)
	if !ok {
		return nil, fmt.Errorf("%w: could not extract playlist ID from '%s'", shared.ErrInvalidURL, rawURL)
	}
	if limit <= 0 {
		limit = DefaultPlaylistMaxResults
	}

	e.sendProgress(progress, fetchPlaylistUpdate(playlistID))
	return svc.ListPlaylistItems(ctx, playlistID, limit)
}

// VideoDetails fetches snippet, statistics and duration of ids and caches them.
func (e *Engine) VideoDetails(ctx context.Context, ids []string, progress chan<- ProgressUpdate) ([]models.VideoRecord, error) {
	svc, err := e.service()
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}

	e.sendProgress(progress, fetchVideosUpdate(len(ids)))
	videos, err := svc.GetVideos(ctx, ids)
	if err != nil {
		return nil, err
	}

	e.cacheVideos(videos)
	return videos, nil
}

// MixPlaylists fetches the mix of each seed id in order. A failed or empty seed is reported and skipped.
//
// Only context cancellation stops the batch early; the entries gathered so far are returned with the error.
func (e *Engine) MixPlaylists(ctx context.Context, videoIDs []string, limit int, progress chan<- ProgressUpdate) (*MixBatchResult, error) {
	if _, err := e.service(); err != nil {
		return nil, err
	}

	result := &MixBatchResult{Seeds: len(videoIDs)}
	for i, id := range videoIDs {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		e.sendProgress(progress, fetchMixUpdate(i+1, len(videoIDs), id))

		mix, err := e.mixForVideo(ctx, id, limit)
		if err != nil {
			result.Failed = append(result.Failed, ItemFailure{VideoID: id, Err: err})
			e.sendProgress(progress, mixFailedUpdate(i+1, len(videoIDs), id, err))
			continue
		}

		if len(mix.Entries) == 0 {
			result.Empty = append(result.Empty, id)
			e.sendProgress(progress, mixEmptyUpdate(i+1, len(videoIDs), id))
			continue
		}

		result.Succeeded++
		result.Entries = append(result.Entries, mix.Entries...)
	}
	return result, nil
}

// FindOrCreatePlaylist returns the user's playlist titled exactly opts.Title, creating it when absent.
func (e *Engine) FindOrCreatePlaylist(ctx context.Context, opts PlaylistOpts, progress chan<- ProgressUpdate) (*models.PlaylistRecord, bool, error) {
	svc, err := e.service()
	if err != nil {
		return nil, false, err
	}
	opts = opts.withDefaults()

	e.sendProgress(progress, findPlaylistUpdate(opts.Title))
	playlists, err := svc.ListMyPlaylists(ctx)
	if err != nil {
		return nil, false, err
	}

	for i := range playlists {
		if playlists[i].Title == opts.Title {
			e.sendProgress(progress, playlistReadyUpdate(&playlists[i], false))
			return &playlists[i], false, nil
		}
	}

	created, err := svc.CreatePlaylist(ctx, opts.Title, opts.Description, opts.Privacy)
	if err != nil {
		return nil, false, err
	}
	e.sendProgress(progress, playlistReadyUpdate(created, true))
	return created, true, nil
}

// AddToPlaylist inserts every video id into the playlist chosen by opts. A failed insert is reported and skipped.
func (e *Engine) AddToPlaylist(ctx context.Context, videoIDs []string, opts PlaylistOpts, progress chan<- ProgressUpdate) (*AddResult, error) {
	svc, err := e.service()
	if err != nil {
		return nil, err
	}

	playlist, created, err := e.FindOrCreatePlaylist(ctx, opts, progress)
	if err != nil {
		return nil, err
	}

	result := &AddResult{Playlist: playlist, Created: created}
	for i, id := range videoIDs {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		if err := svc.AddPlaylistItem(ctx, playlist.ID, id); err != nil {
			result.Failed = append(result.Failed, ItemFailure{VideoID: id, Err: err})
			e.sendProgress(progress, addFailedUpdate(i+1, len(videoIDs), id, err))
			continue
		}

		result.Added = append(result.Added, id)
		e.sendProgress(progress, addVideoUpdate(i+1, len(videoIDs), id))
	}
	return result, nil
}

// ExportVideos writes videos to path in format and records the export against source.
func (e *Engine) ExportVideos(path string, format formatter.Format, source, title string, videos []models.VideoRecord, progress chan<- ProgressUpdate) error {
	if err := formatter.WriteVideos(path, format, title, videos); err != nil {
		return err
	}
	e.recordExport(models.ExportPlaylist, source, path, len(videos))
	e.sendProgress(progress, exportWrittenUpdate(path, len(videos)))
	return nil
}

// ExportMixes writes mix entries to the spreadsheet at path and records the export against source.
func (e *Engine) ExportMixes(path string, kind models.ExportKind, source string, entries []models.MixPlaylistEntry, progress chan<- ProgressUpdate) error {
	if err := formatter.WriteMixSheet(path, entries); err != nil {
		return err
	}
	e.recordExport(kind, source, path, len(entries))
	e.sendProgress(progress, exportWrittenUpdate(path, len(entries)))
	return nil
}
