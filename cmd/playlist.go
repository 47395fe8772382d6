package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/ytxl/internal/formatter"
	"github.com/desertthunder/ytxl/internal/models"
	"github.com/desertthunder/ytxl/internal/shared"
	"github.com/desertthunder/ytxl/internal/tasks"
	"github.com/urfave/cli/v3"
)

// PlaylistExport fetches the videos of a playlist with their statistics and writes them to a file.
func (r *Runner) PlaylistExport(ctx context.Context, cmd *cli.Command) error {
	url := cmd.StringArg("url")
	if url == "" {
		return fmt.Errorf("%w: playlist URL", shared.ErrMissingArgument)
	}

	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	videos, err := r.fetchPlaylist(ctx, url, r.maxResults(cmd, r.config.Export.PlaylistMaxResults))
	if err != nil {
		return err
	}

	path := formatter.WithExt(cmd.String("output"), r.config.Export.PlaylistFile, format.Ext())
	if err := r.engine.ExportVideos(path, format, url, "Playlist Videos", videos, nil); err != nil {
		return err
	}
	return r.writePlain("Data exported successfully to: %s\n", path)
}

func (r *Runner) fetchPlaylist(ctx context.Context, url string, limit int) ([]models.VideoRecord, error) {
	r.logger.Info("fetching videos from playlist", "url", url, "max", limit)

	progress, stop := r.logProgress()
	defer stop()

	items, err := r.engine.PlaylistItems(ctx, url, limit, progress)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: could not retrieve videos from the playlist or playlist is empty", shared.ErrPlaylistNotFound)
	}

	r.writePlain("Found %d videos in the playlist.\n", len(items))
	r.writePlain("Fetching detailed statistics for each video...\n")
	return r.engine.VideoDetails(ctx, models.VideoIDs(items), progress)
}

// PlaylistAdd adds every video listed in a spreadsheet to the user's playlist, creating the playlist when needed.
//
// Requires OAuth credentials; the browser flow runs when no token has been saved yet.
func (r *Runner) PlaylistAdd(ctx context.Context, cmd *cli.Command) error {
	input := cmd.StringArg("path")
	if input == "" {
		input = r.config.Export.MixFile
	}

	ids, err := formatter.ReadVideoIDs(input)
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		return fmt.Errorf("%w: no valid video IDs found in '%s'", shared.ErrInvalidInput, input)
	}

	opts := tasks.PlaylistOpts{
		Title:       cmd.String("title"),
		Description: r.config.Playlist.Description,
		Privacy:     r.config.Playlist.Privacy,
	}
	if opts.Title == "" {
		opts.Title = r.config.Playlist.Title
	}

	engine, err := r.userEngine(ctx)
	if err != nil {
		return err
	}

	r.logger.Info("adding videos to playlist", "playlist", opts.Title, "videos", len(ids))

	progress, stop := r.logProgress()
	result, err := engine.AddToPlaylist(ctx, ids, opts, progress)
	stop()
	if result != nil {
		writeAddResult(r.output, result)
	}
	return err
}
