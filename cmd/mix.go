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

// MixGet prints the mix playlist seeded by a video and optionally exports it.
func (r *Runner) MixGet(ctx context.Context, cmd *cli.Command) error {
	url := cmd.StringArg("url")
	if url == "" {
		return fmt.Errorf("%w: video URL", shared.ErrMissingArgument)
	}

	r.logger.Info("fetching mix playlist videos", "url", url)

	mix, err := r.engine.MixPlaylist(ctx, url, r.maxResults(cmd, r.config.Export.MixMaxResults))
	if err != nil {
		return err
	}
	if len(mix.Entries) == 0 {
		return fmt.Errorf("%w: mix playlist %s is empty", shared.ErrPlaylistNotFound, mix.PlaylistID)
	}

	if cmd.Bool("json") {
		if err := r.writeJSON(mix, cmd.Bool("pretty")); err != nil {
			return err
		}
	} else {
		writeMix(r.output, mix)
	}

	if output := cmd.String("output"); output != "" {
		path := formatter.EnsureExt(output, r.config.Export.MixFile)
		if err := r.engine.ExportMixes(path, models.ExportMix, mix.SourceVideoID, mix.Entries, nil); err != nil {
			return err
		}
		r.logger.Info("mix playlist exported", "path", path, "rows", len(mix.Entries))
	}
	return nil
}

// MixBatch fetches the mix of every video listed in a spreadsheet and exports them to one sheet.
func (r *Runner) MixBatch(ctx context.Context, cmd *cli.Command) error {
	input := cmd.StringArg("path")
	if input == "" {
		return fmt.Errorf("%w: spreadsheet path", shared.ErrMissingArgument)
	}

	ids, err := r.readSeeds(input)
	if err != nil {
		return err
	}

	result, err := r.fetchMixBatch(ctx, ids, r.maxResults(cmd, r.config.Export.MixMaxResults))
	if err != nil {
		return err
	}

	return r.exportMixBatch(input, formatter.EnsureExt(cmd.String("output"), r.config.Export.MixFile), result)
}

// readSeeds reads the video ids of the spreadsheet at input.
func (r *Runner) readSeeds(input string) ([]string, error) {
	ids, err := formatter.ReadVideoIDs(input)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: no valid video IDs found in '%s'", shared.ErrInvalidInput, input)
	}

	r.writePlain("Found %d videos in the Excel file.\n", len(ids))
	return ids, nil
}

func (r *Runner) fetchMixBatch(ctx context.Context, ids []string, limit int) (*tasks.MixBatchResult, error) {
	r.writePlain("\nFetching mix playlists for %d videos...\n", len(ids))
	r.logger.Info("fetching mix playlists", "videos", len(ids), "max", limit)

	progress, stop := r.logProgress()
	result, err := r.engine.MixPlaylists(ctx, ids, limit, progress)
	stop()
	if err != nil {
		return nil, err
	}

	writeMixBatch(r.output, result)
	if len(result.Entries) == 0 {
		return nil, fmt.Errorf("%w: could not retrieve any mix playlists", shared.ErrPlaylistNotFound)
	}
	return result, nil
}

func (r *Runner) exportMixBatch(input, output string, result *tasks.MixBatchResult) error {
	if err := r.engine.ExportMixes(output, models.ExportMixBatch, input, result.Entries, nil); err != nil {
		return err
	}
	return r.writePlain("Mix playlists data exported successfully to: %s\n", output)
}

// maxResults reads --max, falling back to configured when the flag is unset or not positive.
func (r *Runner) maxResults(cmd *cli.Command, configured int) int {
	if n := cmd.Int("max"); n > 0 {
		return n
	}
	return configured
}
