package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/ytxl/internal/shared"
	"github.com/urfave/cli/v3"
)

// VideoInfo prints the title, channel, statistics and duration of one video.
func (r *Runner) VideoInfo(ctx context.Context, cmd *cli.Command) error {
	url := cmd.StringArg("url")
	if url == "" {
		return fmt.Errorf("%w: video URL", shared.ErrMissingArgument)
	}

	r.logger.Debug("fetching video information", "url", url)

	video, err := r.engine.VideoInfo(ctx, url)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(video, cmd.Bool("pretty"))
	}

	writeVideoInfo(r.output, video)
	return nil
}
